// Package cohort buckets leads and same-day conversions by calendar day.
// The buckets are the basis for the cohort conversion rate: only conversions
// whose lead was created the same day they converted belong to a cohort.
package cohort

import (
	"github.com/hammah12/SalesDash/internal/domain/model"
)

// Bucket holds one day's cohort statistics.
type Bucket struct {
	LeadsGrabbed   float64        `json:"leads_grabbed"`
	Conversions    int            `json:"conversions"`
	RepConversions map[string]int `json:"rep_conversions"`
}

// Map is the aggregation output keyed by canonical day ("2006-01-02").
type Map map[string]*Bucket

// Aggregate builds per-day cohort buckets. Lead intake is summed per day;
// conversion events count only when lead date and conversion date match at
// day granularity. Cross-day conversions are excluded from cohort
// statistics by design.
func Aggregate(leads []model.LeadsGrabbedDay, convs []model.RepDailyConversion) Map {
	buckets := make(Map)

	for _, l := range leads {
		if l.Date.IsZero() {
			continue
		}
		buckets.get(l.Date.Key()).LeadsGrabbed += l.LeadsGrabbed
	}

	for _, c := range convs {
		if c.LeadDate.IsZero() || !c.LeadDate.Equal(c.ConversionDate) {
			continue
		}
		b := buckets.get(c.LeadDate.Key())
		b.Conversions++
		b.RepConversions[c.Rep]++
	}

	return buckets
}

func (m Map) get(key string) *Bucket {
	b, ok := m[key]
	if !ok {
		b = &Bucket{RepConversions: make(map[string]int)}
		m[key] = b
	}
	return b
}
