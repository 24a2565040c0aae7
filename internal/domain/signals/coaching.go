package signals

import (
	"sort"

	"github.com/hammah12/SalesDash/internal/domain/performance"
)

const (
	// CoachingThreshold is the performance ratio below which a skill area
	// needs coaching.
	CoachingThreshold = 70.0
	// HighPriorityThreshold escalates a recommendation to high priority.
	HighPriorityThreshold = 50.0
)

// Recommendation lists the skill areas a rep should work on.
type Recommendation struct {
	RepName     string   `json:"rep_name"`
	Priority    string   `json:"priority"`
	Areas       []string `json:"areas"`
	Performance float64  `json:"performance"`
}

// GenerateCoaching flags each scorecard dimension below the coaching
// threshold. Recommendations come back high priority first, with the input
// order preserved within each priority.
func GenerateCoaching(cards []performance.Scorecard) []Recommendation {
	recs := make([]Recommendation, 0, len(cards))

	for _, card := range cards {
		var areas []string
		if card.ConversionPerformance < CoachingThreshold {
			areas = append(areas, "Conversion techniques")
		}
		if card.TalkTimePerformance < CoachingThreshold {
			areas = append(areas, "Call engagement")
		}
		if card.UploadsPerformance < CoachingThreshold {
			areas = append(areas, "Documentation process")
		}
		if len(areas) == 0 {
			continue
		}
		priority := "medium"
		if card.ConversionPerformance < HighPriorityThreshold {
			priority = "high"
		}
		recs = append(recs, Recommendation{
			RepName:     card.RepName,
			Priority:    priority,
			Areas:       areas,
			Performance: card.ConversionPerformance,
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Priority == "high" && recs[j].Priority != "high"
	})
	return recs
}
