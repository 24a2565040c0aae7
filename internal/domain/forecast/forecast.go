// Package forecast projects monthly conversion volume and estimates
// staffing needs from current throughput.
package forecast

import (
	"math"
	"time"

	"github.com/hammah12/SalesDash/internal/domain/model"
)

// ForecastWindowDays is the span of the trailing window used for the
// daily average.
const ForecastWindowDays = 7

// Forecast projects month-end conversion volume from recent throughput.
type Forecast struct {
	ProjectedMonthly    float64 `json:"projected_monthly"`
	ProjectedAdditional float64 `json:"projected_additional"`
	DailyAverage        float64 `json:"daily_average"`
	Confidence          string  `json:"confidence"`
}

// Project extrapolates the last seven days of conversions over the current
// month. Returns nil when there is not enough history to average.
func Project(conv []model.ConversionDay, now time.Time) *Forecast {
	if len(conv) < ForecastWindowDays {
		return nil
	}

	window := conv[len(conv)-ForecastWindowDays:]
	var sum float64
	for _, d := range window {
		sum += d.Count
	}
	avg := sum / ForecastWindowDays

	daysInMonth := time.Date(now.Year(), now.Month()+1, 0, 0, 0, 0, 0, now.Location()).Day()
	daysRemaining := daysInMonth - now.Day()

	return &Forecast{
		ProjectedMonthly:    math.Round(avg * float64(daysInMonth)),
		ProjectedAdditional: math.Round(avg * float64(daysRemaining)),
		DailyAverage:        avg,
		Confidence:          "high",
	}
}
