package categorization

// Category names exposed to clients. CategoryOther is the default for
// anything the rule table cannot place.
const (
	CategoryFoodDining    = "Food & Dining"
	CategoryTransport     = "Transportation"
	CategoryShopping      = "Shopping"
	CategoryEntertainment = "Entertainment"
	CategoryHealthFitness = "Health & Fitness"
	CategoryUtilities     = "Bills & Utilities"
	CategoryTravel        = "Travel"
	CategoryIncome        = "Income"
	CategoryOther         = "Other"
)

// Rule maps a set of merchant keywords to one category. Rules are ordered:
// when keywords from several rules hit the same description, the rule listed
// first wins.
type Rule struct {
	Keywords []string
	Category string
}

// DefaultTaxonomy returns the built-in rule table. Keywords are matched as
// lowercase substrings, so they are chosen long enough not to fire inside
// unrelated merchant names.
func DefaultTaxonomy() []Rule {
	return []Rule{
		{
			Category: CategoryFoodDining,
			Keywords: []string{
				"restaurant", "coffee", "starbucks", "dunkin", "mcdonald",
				"whole foods", "grocery", "groceries", "pizza", "burger",
				"bakery", "deli ", "trader joe", "safeway", "kroger",
			},
		},
		{
			Category: CategoryTransport,
			Keywords: []string{
				"uber", "lyft", "taxi", "gas station", "shell", "chevron",
				"exxon", "fuel", "parking", "transit", "metro card", "amtrak",
			},
		},
		{
			Category: CategoryShopping,
			Keywords: []string{
				"amazon", "walmart", "target", "costco", "ebay", "etsy",
				"best buy", "ikea", "nordstrom", "macys",
			},
		},
		{
			Category: CategoryEntertainment,
			Keywords: []string{
				"netflix", "spotify", "hulu", "disney", "cinema", "theatre",
				"concert", "playstation", "nintendo", "twitch",
			},
		},
		{
			Category: CategoryHealthFitness,
			Keywords: []string{
				"pharmacy", "fitness", "gym membership", "walgreens",
				"cvs ", "doctor", "dental", "clinic", "hospital",
			},
		},
		{
			Category: CategoryUtilities,
			Keywords: []string{
				"comcast", "verizon", "t-mobile", "at&t", "electric",
				"water bill", "internet", "utility", "insurance",
			},
		},
		{
			Category: CategoryTravel,
			Keywords: []string{
				"airbnb", "airline", "airways", "hotel", "hostel", "expedia",
				"booking.com", "delta air", "united air", "southwest",
			},
		},
		{
			Category: CategoryIncome,
			Keywords: []string{
				"salary", "payroll", "paycheck", "direct deposit",
			},
		},
	}
}
