// Package signals derives anomalies, insights, coaching recommendations and
// notifications from the normalized series and scorecards.
package signals

import (
	"fmt"
	"strconv"

	"github.com/hammah12/SalesDash/internal/domain/model"
)

const (
	// TalkTimeDropRatio fires the talk-time anomaly when today's minutes
	// fall below this fraction of the trailing average.
	TalkTimeDropRatio = 0.5
	// ConversionDropRatio fires the conversion anomaly when today's count
	// falls below this fraction of the trailing average.
	ConversionDropRatio = 0.3
	// TrailingWindowDays is the span of the baseline window. The window
	// covers the entries immediately preceding the latest one, so a rule
	// needs TrailingWindowDays+1 points before it can fire.
	TrailingWindowDays = 7
)

// Anomaly is a detected deviation from the trailing baseline.
type Anomaly struct {
	Type     string `json:"type"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// DetectAnomalies checks today's talk time and conversion count against
// their trailing 7-day averages. The latest entry is excluded from its own
// baseline.
func DetectAnomalies(talk []model.TalkTimeDay, conv []model.ConversionDay, today model.Day) []Anomaly {
	anomalies := make([]Anomaly, 0, 2)

	if len(talk) > TrailingWindowDays {
		window := talk[len(talk)-TrailingWindowDays-1 : len(talk)-1]
		var sum float64
		for _, d := range window {
			sum += d.TotalMinutes
		}
		avg := sum / TrailingWindowDays
		todayMinutes := 0.0
		if row, ok := model.TodayOrLatest(talk, today); ok {
			todayMinutes = row.TotalMinutes
		}
		if todayMinutes < avg*TalkTimeDropRatio {
			anomalies = append(anomalies, Anomaly{
				Type:     "Low Talk Time",
				Severity: "high",
				Message:  fmt.Sprintf("Today's talk time (%s min) is 50%% below 7-day average (%.1f min)", formatNumber(todayMinutes), avg),
			})
		}
	}

	if len(conv) > TrailingWindowDays {
		window := conv[len(conv)-TrailingWindowDays-1 : len(conv)-1]
		var sum float64
		for _, d := range window {
			sum += d.Count
		}
		avg := sum / TrailingWindowDays
		todayConversions := 0.0
		if row, ok := model.TodayOrLatest(conv, today); ok {
			todayConversions = row.Count
		}
		if todayConversions < avg*ConversionDropRatio {
			anomalies = append(anomalies, Anomaly{
				Type:     "Low Conversions",
				Severity: "high",
				Message:  fmt.Sprintf("Today's conversions (%s) are 70%% below 7-day average (%.1f)", formatNumber(todayConversions), avg),
			})
		}
	}

	return anomalies
}

// formatNumber renders a metric value in plain decimal notation with no
// trailing zeros, never scientific notation.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
