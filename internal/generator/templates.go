package generator

import "time"

// CategoryIncome is the category whose amounts follow the inflow sign
// convention (negative = money in).
const CategoryIncome = "income"

// Filler amount ranges, in the expense sign convention.
const (
	fillerIncomeMin  = -200
	fillerIncomeMax  = -50
	fillerExpenseMin = 5
	fillerExpenseMax = 200
)

// Template is a fixed generation rule for one kind of synthetic transaction.
// A recurring template produces exactly one transaction per month on a
// deterministic day; a special template produces at most one, gated by an
// optional month allow-list and an occurrence probability.
type Template struct {
	Name        string
	Category    string
	Subcategory string
	AmountMin   float64
	AmountMax   float64
	Months      []time.Month // empty = eligible every month
	Probability float64      // special templates only
}

// DefaultRecurring returns the built-in recurring templates: the fixed
// income and bills that anchor every generated month.
func DefaultRecurring() []Template {
	return []Template{
		{Name: "Salaire", Category: CategoryIncome, Subcategory: "salary", AmountMin: -2000, AmountMax: -1800},
		{Name: "Loyer", Category: "payment", Subcategory: "bills", AmountMin: 600, AmountMax: 1200},
		{Name: "Internet", Category: "payment", Subcategory: "bills", AmountMin: 30, AmountMax: 60},
		{Name: "Électricité", Category: "payment", Subcategory: "bills", AmountMin: 40, AmountMax: 120},
		{Name: "Netflix", Category: "entertainment", Subcategory: "subscriptions", AmountMin: 9, AmountMax: 18},
	}
}

// DefaultSpecial returns the built-in probabilistic and seasonal templates.
func DefaultSpecial() []Template {
	return []Template{
		{Name: "Restaurant Gastronomique", Category: "foodAndDrink", Subcategory: "restaurants",
			AmountMin: 80, AmountMax: 200, Probability: 0.2},
		{Name: "Apple Store", Category: "shopping", Subcategory: "electronics",
			AmountMin: 100, AmountMax: 1200, Probability: 0.15},
		{Name: "Prime", Category: CategoryIncome, Subcategory: "salary",
			AmountMin: -1000, AmountMax: -300, Probability: 0.1},
		{Name: "Transport Vacances", Category: "travel", Subcategory: "trainTickets",
			AmountMin: 80, AmountMax: 300, Months: []time.Month{time.June, time.July, time.August}, Probability: 0.6},
		{Name: "Cadeaux Noël", Category: "shopping", Subcategory: "clothing",
			AmountMin: 50, AmountMax: 300, Months: []time.Month{time.December}, Probability: 0.8},
	}
}

// DefaultMerchants maps category ids to the merchant names used for filler
// transactions.
func DefaultMerchants() map[string][]string {
	return map[string][]string{
		"foodAndDrink":  {"Restaurant Le Gourmet", "Carrefour"},
		"shopping":      {"Amazon", "Zara"},
		"transport":     {"RATP", "Uber"},
		"travel":        {"Booking.com", "Air France"},
		"transfer":      {"BNP Paribas", "Société Générale"},
		"payment":       {"EDF", "Orange"},
		"health":        {"Pharmacie Centrale", "Dr Martin"},
		"entertainment": {"Netflix", "Spotify"},
		CategoryIncome:  {"Entreprise XYZ", "Freelance"},
		"other":         {"Frais Bancaires", "Divers"},
	}
}
