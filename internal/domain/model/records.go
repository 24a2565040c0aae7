// Package model contains the typed records produced by the normalizer and
// passed between pipeline stages. Raw, untyped rows never travel past the
// normalization boundary.
package model

// TalkTimeDay is one day of aggregated call activity.
type TalkTimeDay struct {
	Date         Day     `json:"date"`
	TotalMinutes float64 `json:"total_minutes"`
	CallCount    float64 `json:"call_count"`
}

// ConversionDay is one day of conversion totals.
type ConversionDay struct {
	Date         Day     `json:"date"`
	Count        float64 `json:"count"`
	TotalDollars float64 `json:"total_dollars"`
}

// LeadsGrabbedDay is one day of lead intake totals.
type LeadsGrabbedDay struct {
	Date         Day     `json:"date"`
	LeadsGrabbed float64 `json:"leads_grabbed"`
}

// WeeklyUpload is one week of uploaded-unit totals.
type WeeklyUpload struct {
	Week         string  `json:"week"`
	UnitCount    float64 `json:"unit_count"`
	TotalDollars float64 `json:"total_dollars"`
}

// LeadsBehindRow is one rep's backlog of unattended leads and opportunities.
type LeadsBehindRow struct {
	Owner       string  `json:"owner"`
	LeadsBehind float64 `json:"leads_behind"`
	OppsBehind  float64 `json:"opps_behind"`
	Total       float64 `json:"total"`
}

// RepMonthlySummary is one roster row of month-to-date totals.
type RepMonthlySummary struct {
	RepName    string  `json:"rep_name"`
	MTDUnits   float64 `json:"mtd_units"`
	MTDDollars float64 `json:"mtd_dollars"`
}

// RepDailyConversion is one conversion event attributed to a rep.
type RepDailyConversion struct {
	LeadDate       Day    `json:"lead_date"`
	ConversionDate Day    `json:"conversion_date"`
	Rep            string `json:"rep"`
}

// Dated is satisfied by time-series records that carry a calendar day.
type Dated interface {
	Day() Day
}

func (r TalkTimeDay) Day() Day        { return r.Date }
func (r ConversionDay) Day() Day      { return r.Date }
func (r LeadsGrabbedDay) Day() Day    { return r.Date }
func (r RepDailyConversion) Day() Day { return r.LeadDate }

// TodayOrLatest returns the row matching today, falling back to the latest
// row when no exact match exists. The second return is false only for an
// empty series.
func TodayOrLatest[T Dated](rows []T, today Day) (T, bool) {
	var zero T
	if len(rows) == 0 {
		return zero, false
	}
	for _, r := range rows {
		if r.Day().Equal(today) {
			return r, true
		}
	}
	return rows[len(rows)-1], true
}

// YesterdayRow returns the row exactly matching the day before today. It
// requires at least two rows of history and has no fallback.
func YesterdayRow[T Dated](rows []T, today Day) (T, bool) {
	var zero T
	if len(rows) < 2 {
		return zero, false
	}
	yesterday := DayOf(today.Time().AddDate(0, 0, -1))
	for _, r := range rows {
		if r.Day().Equal(yesterday) {
			return r, true
		}
	}
	return zero, false
}
