package signals

import (
	"fmt"
	"time"

	"github.com/hammah12/SalesDash/internal/domain/performance"
)

// Notification is a dated entry for the notification center.
type Notification struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Severity  string    `json:"severity"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// BuildNotifications emits one alert per anomaly and one warning per
// underperforming rep.
func BuildNotifications(anomalies []Anomaly, cards []performance.Scorecard, now time.Time) []Notification {
	notifs := make([]Notification, 0, len(anomalies)+len(cards))

	for _, a := range anomalies {
		notifs = append(notifs, Notification{
			ID:        "anomaly-" + a.Type,
			Type:      "alert",
			Severity:  a.Severity,
			Message:   a.Message,
			Timestamp: now,
		})
	}

	for _, card := range cards {
		if !card.IsUnderperforming {
			continue
		}
		notifs = append(notifs, Notification{
			ID:        "underperform-" + card.RepName,
			Type:      "warning",
			Severity:  "medium",
			Message:   fmt.Sprintf("%s is performing below 50%% of team average", card.RepName),
			Timestamp: now,
		})
	}

	return notifs
}
