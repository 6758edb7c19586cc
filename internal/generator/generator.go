// Package generator produces realistic, schema-conformant synthetic
// transactions for demo mode and tests. Generation is calendar-aware:
// recurring templates land on fixed days every month, special templates are
// gated by month eligibility and probability, and filler transactions top a
// month up to a minimum density.
package generator

import (
	"math/rand"
	"sort"
	"time"

	"fjacquet/cashsense/internal/logging"
	"fjacquet/cashsense/internal/models"
	"fjacquet/cashsense/internal/normalizer"
	"fjacquet/cashsense/internal/schema"

	"github.com/shopspring/decimal"
)

// Generator produces synthetic transactions for a loaded category schema.
// A Generator is not safe for concurrent use; create one per goroutine.
// GenerateRange fans out internally with per-month child generators.
type Generator struct {
	schema      *schema.Schema
	recurring   []Template
	special     []Template
	merchants   map[string][]string
	rng         *rand.Rand
	now         func() time.Time
	minPerMonth int
	log         logging.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithRand sets the random source, making output reproducible.
func WithRand(rng *rand.Rand) Option {
	return func(g *Generator) { g.rng = rng }
}

// WithClock overrides the time source used to anchor date ranges.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// WithTemplates replaces the built-in recurring and special templates.
func WithTemplates(recurring, special []Template) Option {
	return func(g *Generator) {
		g.recurring = recurring
		g.special = special
	}
}

// WithMerchants replaces the built-in filler merchant names.
func WithMerchants(merchants map[string][]string) Option {
	return func(g *Generator) { g.merchants = merchants }
}

// WithMinPerMonth sets the per-month minimum density used by GenerateRange.
func WithMinPerMonth(n int) Option {
	return func(g *Generator) { g.minPerMonth = n }
}

// WithLogger sets the logger.
func WithLogger(log logging.Logger) Option {
	return func(g *Generator) { g.log = log }
}

// New creates a Generator with the default templates and merchants.
func New(sch *schema.Schema, opts ...Option) *Generator {
	g := &Generator{
		schema:      sch,
		recurring:   DefaultRecurring(),
		special:     DefaultSpecial(),
		merchants:   DefaultMerchants(),
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
		now:         time.Now,
		minPerMonth: 15,
		log:         logging.GetLogger(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// GenerateMonth produces the transactions of a single calendar month,
// optionally clipped to [rangeStart, rangeEnd] (zero values disable the
// clip). Recurring templates are exempt from the clip: monthly income and
// bills must appear in every generated month to keep balances stable across
// demo periods. At least minCount transactions are produced unless the month
// falls entirely outside the clip; no truncation ever happens here.
// The result is sorted by date, most recent first.
func (g *Generator) GenerateMonth(year int, month time.Month, rangeStart, rangeEnd time.Time, minCount int) []models.Transaction {
	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)
	lastDay := monthEnd.Day()

	rangeStart = truncateDay(rangeStart)
	rangeEnd = truncateDay(rangeEnd)

	if (!rangeStart.IsZero() && rangeStart.After(monthEnd)) ||
		(!rangeEnd.IsZero() && rangeEnd.Before(monthStart)) {
		return nil
	}

	actualStart := monthStart
	if !rangeStart.IsZero() && rangeStart.After(actualStart) {
		actualStart = rangeStart
	}
	actualEnd := monthEnd
	if !rangeEnd.IsZero() && rangeEnd.Before(actualEnd) {
		actualEnd = rangeEnd
	}
	if actualStart.After(actualEnd) {
		return nil
	}

	var transactions []models.Transaction

	// Recurring pass: one transaction per template on day (index mod 5)+1,
	// regardless of the clip window.
	for index, tpl := range g.recurring {
		fixedDay := (index % 5) + 1
		if fixedDay > lastDay {
			continue
		}
		date := time.Date(year, month, fixedDay, 0, 0, 0, 0, time.UTC)
		transactions = append(transactions, g.newTransaction(tpl.Name, tpl.Category, tpl.Subcategory, tpl.AmountMin, tpl.AmountMax, date))
	}

	// Special pass: zero or one per template, inside the clipped window.
	for _, tpl := range g.special {
		if len(tpl.Months) > 0 && !monthEligible(tpl.Months, month) {
			continue
		}
		if g.rng.Float64() > tpl.Probability {
			continue
		}
		date := g.randomDate(actualStart, actualEnd)
		transactions = append(transactions, g.newTransaction(tpl.Name, tpl.Category, tpl.Subcategory, tpl.AmountMin, tpl.AmountMax, date))
	}

	// Filler pass: top up to the minimum density.
	for len(transactions) < minCount {
		transactions = append(transactions, g.fillerTransaction(g.randomDate(actualStart, actualEnd)))
	}

	sortByDateDesc(transactions)
	return transactions
}

// fillerTransaction produces one randomly categorized transaction on the
// given date.
func (g *Generator) fillerTransaction(date time.Time) models.Transaction {
	categoryID, subcategoryID := g.randomCategory()
	name := g.randomMerchant(categoryID)

	amountMin, amountMax := float64(fillerExpenseMin), float64(fillerExpenseMax)
	if categoryID == CategoryIncome {
		amountMin, amountMax = fillerIncomeMin, fillerIncomeMax
	}

	return g.newTransaction(name, categoryID, subcategoryID, amountMin, amountMax, date)
}

// newTransaction draws an amount and runs the record through the normalizer
// so every generated transaction carries the canonical shape and a fresh id.
func (g *Generator) newTransaction(name, categoryID, subcategoryID string, amountMin, amountMax float64, date time.Time) models.Transaction {
	amount := g.randomAmount(amountMin, amountMax)
	raw := map[string]any{
		"amount":          amount,
		"date":            date.Format(models.DateLayout),
		"merchant_name":   name,
		"payment_channel": g.paymentChannel(amount),
		"pending":         false,
		"category": map[string]any{
			"id": categoryID,
			"subcategory": map[string]any{
				"id": subcategoryID,
			},
		},
		"is_test_data": true,
	}
	return normalizer.Normalize(raw)
}

func (g *Generator) randomAmount(amountMin, amountMax float64) decimal.Decimal {
	value := amountMin + g.rng.Float64()*(amountMax-amountMin)
	return decimal.NewFromFloat(value).Round(2)
}

func (g *Generator) paymentChannel(amount decimal.Decimal) string {
	if amount.IsNegative() {
		return models.ChannelOnline
	}
	if g.rng.Intn(2) == 0 {
		return models.ChannelInStore
	}
	return models.ChannelOnline
}

func (g *Generator) randomCategory() (string, string) {
	categoryIDs := g.schema.Categories.CategoryIDs()
	if len(categoryIDs) == 0 {
		return models.CategoryOther, models.SubcategoryUnknown
	}
	categoryID := categoryIDs[g.rng.Intn(len(categoryIDs))]

	subcategoryIDs := g.schema.Categories[categoryID].SubcategoryIDs()
	if len(subcategoryIDs) == 0 {
		return categoryID, models.SubcategoryUnknown
	}
	return categoryID, subcategoryIDs[g.rng.Intn(len(subcategoryIDs))]
}

func (g *Generator) randomMerchant(categoryID string) string {
	names := g.merchants[categoryID]
	if len(names) == 0 {
		return models.FillerMerchant
	}
	return names[g.rng.Intn(len(names))]
}

// randomDate picks a uniformly random day in [start, end], both inclusive.
func (g *Generator) randomDate(start, end time.Time) time.Time {
	days := int(end.Sub(start).Hours()/24) + 1
	return start.AddDate(0, 0, g.rng.Intn(days))
}

func monthEligible(months []time.Month, month time.Month) bool {
	for _, m := range months {
		if m == month {
			return true
		}
	}
	return false
}

func truncateDay(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func sortByDateDesc(transactions []models.Transaction) {
	sort.SliceStable(transactions, func(i, j int) bool {
		return transactions[i].Date > transactions[j].Date
	})
}
