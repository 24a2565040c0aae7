// Package performance turns monthly rep summaries and daily cohort buckets
// into per-rep scorecards and team averages.
package performance

import (
	"github.com/hammah12/SalesDash/internal/domain/cohort"
	"github.com/hammah12/SalesDash/internal/domain/model"
)

// UnderperformThreshold marks a rep as underperforming when their
// conversion performance or cohort conversion rate falls below it.
const UnderperformThreshold = 50.0

// Scorecard is the derived per-rep view.
type Scorecard struct {
	RepName               string  `json:"rep_name"`
	Conversions           float64 `json:"conversions"`
	ConversionDollars     float64 `json:"conversion_dollars"`
	Uploads               float64 `json:"uploads"`
	TalkTime              float64 `json:"talk_time"`
	CohortConversionRate  float64 `json:"cohort_conversion_rate"`
	ConversionPerformance float64 `json:"conversion_performance"`
	UploadsPerformance    float64 `json:"uploads_performance"`
	TalkTimePerformance   float64 `json:"talk_time_performance"`
	IsUnderperforming     bool    `json:"is_underperforming"`
}

// TeamAverage holds the arithmetic means across all scorecards.
type TeamAverage struct {
	Conversions          float64 `json:"conversions"`
	ConversionDollars    float64 `json:"conversion_dollars"`
	Uploads              float64 `json:"uploads"`
	TalkTime             float64 `json:"talk_time"`
	CohortConversionRate float64 `json:"cohort_conversion_rate"`
}

// Compute builds one scorecard per distinct rep in the monthly summary and
// the team average over them. Output order follows the monthly summary; a
// duplicate rep name overwrites the seeded monthly values but keeps its
// original position.
func Compute(monthly []model.RepMonthlySummary, buckets cohort.Map) ([]Scorecard, TeamAverage) {
	order := make([]string, 0, len(monthly))
	byName := make(map[string]*Scorecard, len(monthly))

	for _, row := range monthly {
		card, ok := byName[row.RepName]
		if !ok {
			card = &Scorecard{RepName: row.RepName}
			byName[row.RepName] = card
			order = append(order, row.RepName)
		}
		card.Conversions = row.MTDUnits
		card.ConversionDollars = row.MTDDollars
	}

	for _, name := range order {
		byName[name].CohortConversionRate = cohortRate(name, buckets)
	}

	avg := average(order, byName)

	for _, name := range order {
		card := byName[name]
		card.ConversionPerformance = ratio(card.Conversions, avg.Conversions)
		card.UploadsPerformance = ratio(card.Uploads, avg.Uploads)
		card.TalkTimePerformance = ratio(card.TalkTime, avg.TalkTime)
		card.IsUnderperforming = card.ConversionPerformance < UnderperformThreshold ||
			card.CohortConversionRate < UnderperformThreshold
	}

	cards := make([]Scorecard, 0, len(order))
	for _, name := range order {
		cards = append(cards, *byName[name])
	}
	return cards, avg
}

// cohortRate estimates a rep's conversion rate from the daily buckets. The
// rep's share of each day's conversions attributes a proportional share of
// that day's leads to them.
func cohortRate(name string, buckets cohort.Map) float64 {
	var estLeads, conversions float64
	for _, b := range buckets {
		repConv := float64(b.RepConversions[name])
		if repConv == 0 {
			continue
		}
		conversions += repConv
		if b.Conversions > 0 {
			estLeads += b.LeadsGrabbed * repConv / float64(b.Conversions)
		}
	}
	if estLeads == 0 {
		return 0
	}
	return 100 * conversions / estLeads
}

func average(order []string, byName map[string]*Scorecard) TeamAverage {
	var avg TeamAverage
	if len(order) == 0 {
		return avg
	}
	for _, name := range order {
		card := byName[name]
		avg.Conversions += card.Conversions
		avg.ConversionDollars += card.ConversionDollars
		avg.Uploads += card.Uploads
		avg.TalkTime += card.TalkTime
		avg.CohortConversionRate += card.CohortConversionRate
	}
	n := float64(len(order))
	avg.Conversions /= n
	avg.ConversionDollars /= n
	avg.Uploads /= n
	avg.TalkTime /= n
	avg.CohortConversionRate /= n
	return avg
}

func ratio(value, avg float64) float64 {
	if avg == 0 {
		return 0
	}
	return 100 * value / avg
}
