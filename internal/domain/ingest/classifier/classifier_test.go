package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		mediaType string
		filename  string
		want      DocumentKind
		wantErr   bool
	}{
		{"jpeg receipt", "image/jpeg", "receipt.jpg", ImageReceipt, false},
		{"png receipt", "image/png", "scan.png", ImageReceipt, false},
		{"gif", "image/gif", "r.gif", ImageReceipt, false},
		{"pdf is provisional", "application/pdf", "statement.pdf", PdfDocument, false},
		{"csv", "text/csv", "export.csv", CsvStatement, false},
		{"legacy excel alias maps to csv", "application/vnd.ms-excel", "export.csv", CsvStatement, false},
		{"legacy alias with xlsx extension", "application/vnd.ms-excel", "book.xlsx", SpreadsheetStatement, false},
		{"xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "book.xlsx", SpreadsheetStatement, false},
		{"generic type with csv suffix", "application/octet-stream", "transactions.csv", CsvStatement, false},
		{"media type parameters stripped", "text/csv; charset=utf-8", "export.csv", CsvStatement, false},
		{"zip rejected", "application/zip", "archive.zip", Unsupported, true},
		{"tiff rejected", "image/tiff", "scan.tiff", Unsupported, true},
		{"empty type without suffix", "", "mystery", Unsupported, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, err := Classify(tt.mediaType, tt.filename)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnsupportedMediaType)
				// The offending media type is surfaced verbatim.
				assert.Contains(t, err.Error(), tt.mediaType)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, kind)
		})
	}
}

func TestResolvePdfKind(t *testing.T) {
	assert.Equal(t, PdfReceipt, ResolvePdfKind("STORE\nTotal: $12.00"))
	assert.Equal(t, PdfReceipt, ResolvePdfKind("Amount due 4.99"))
	assert.Equal(t, PdfStatement, ResolvePdfKind("01/02/2024 COFFEE -4.50\n01/03/2024 SALARY +2000"))
}
