package signals

import (
	"fmt"

	"github.com/hammah12/SalesDash/internal/domain/model"
	"github.com/hammah12/SalesDash/internal/domain/performance"
)

// Insight is a human-readable observation with a suggested action.
type Insight struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Action  string `json:"action"`
}

// GenerateInsights produces the top-performer callout and the
// talk-time-without-conversions opportunity.
func GenerateInsights(cards []performance.Scorecard, talk []model.TalkTimeDay, conv []model.ConversionDay, today model.Day) []Insight {
	insights := make([]Insight, 0, 2)

	if len(cards) > 0 {
		top := cards[0]
		for _, c := range cards[1:] {
			if c.ConversionPerformance > top.ConversionPerformance {
				top = c
			}
		}
		if top.RepName != "" {
			insights = append(insights, Insight{
				Type:    "Top Performer",
				Message: fmt.Sprintf("%s is leading with %.1f%% conversion rate", top.RepName, top.CohortConversionRate),
				Action:  "Consider having them mentor underperformers",
			})
		}
	}

	talkToday := 0.0
	if row, ok := model.TodayOrLatest(talk, today); ok {
		talkToday = row.TotalMinutes
	}
	convToday := 0.0
	if row, ok := model.TodayOrLatest(conv, today); ok {
		convToday = row.Count
	}
	if talkToday > 0 && convToday == 0 {
		insights = append(insights, Insight{
			Type:    "Conversion Opportunity",
			Message: fmt.Sprintf("High talk time (%s min) but no conversions today", formatNumber(talkToday)),
			Action:  "Review call quality and closing techniques",
		})
	}

	return insights
}
