package csvnorm

// Template is the downloadable import template. The header names are the
// canonical column synonyms; example rows show ISO dates and signed amounts
// (negative for expenses, positive for income).
const Template = "date,description,amount,category\n" +
	"2024-01-15,\"Grocery Store\",-45.67,\"Food & Dining\"\n" +
	"2024-01-16,\"Salary Deposit\",2500.00,\"Income\"\n" +
	"2024-01-17,\"Gas Station\",-32.50,\"Transportation\"\n"

// TemplateFilename is the suggested download name for the template.
const TemplateFilename = "transaction_import_template.csv"
