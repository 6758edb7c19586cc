package generator

import (
	"math/rand"
	"time"

	"fjacquet/cashsense/internal/logging"
	"fjacquet/cashsense/internal/models"

	"golang.org/x/sync/errgroup"
)

// GenerateRange produces transactions covering the last `days` days, walking
// calendar months from the start month through the current month inclusive.
// Each month is generated with the configured per-month minimum density.
//
// When targetCount is positive the result is adjusted to exactly that many
// transactions: short results are padded with filler transactions dated
// anywhere in the range, long results are truncated to the first targetCount
// items of the month-ordered concatenation. Truncation happens before the
// final sort, so it follows month-iteration order rather than recency.
//
// The result is sorted by date, most recent first.
func (g *Generator) GenerateRange(days, targetCount int) []models.Transaction {
	end := truncateDay(g.now())
	start := end.AddDate(0, 0, -days)

	// Collect the months to generate, drawing each month's seed from the
	// parent source up front so fan-out stays reproducible.
	type monthJob struct {
		year  int
		month time.Month
		seed  int64
	}
	var months []monthJob
	for cursor := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC); !cursor.After(end); cursor = cursor.AddDate(0, 1, 0) {
		months = append(months, monthJob{year: cursor.Year(), month: cursor.Month(), seed: g.rng.Int63()})
	}

	results := make([][]models.Transaction, len(months))
	var eg errgroup.Group
	for i, job := range months {
		eg.Go(func() error {
			child := g.withRand(rand.New(rand.NewSource(job.seed)))
			results[i] = child.GenerateMonth(job.year, job.month, start, end, g.minPerMonth)
			return nil
		})
	}
	// Month workers never return errors; Wait only synchronizes.
	_ = eg.Wait()

	var all []models.Transaction
	for _, monthly := range results {
		all = append(all, monthly...)
	}

	if targetCount > 0 {
		for len(all) < targetCount {
			date := start.AddDate(0, 0, g.rng.Intn(days+1))
			all = append(all, g.fillerTransaction(date))
		}
		if len(all) > targetCount {
			all = all[:targetCount]
		}
	}

	sortByDateDesc(all)

	g.log.Debug("Generated transaction range",
		logging.F("days", days),
		logging.F("months", len(months)),
		logging.F("count", len(all)))

	return all
}

// withRand returns a copy of the generator driven by the given source.
func (g *Generator) withRand(rng *rand.Rand) *Generator {
	clone := *g
	clone.rng = rng
	return &clone
}
