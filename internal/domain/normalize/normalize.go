// Package normalize converts raw source rows into typed, sorted record
// sequences. This is the alias-resolution boundary: each logical field may
// arrive under one of several column names and the first present alias wins.
// Missing fields default to zero or empty; a row is never rejected.
package normalize

import (
	"math"
	"sort"

	"github.com/hammah12/SalesDash/internal/adapters/source"
	"github.com/hammah12/SalesDash/internal/domain/model"
)

// TalkTime normalizes the daily talk-time table. The derived TotalMinutes
// column is the raw duration sum rounded to two decimal places.
func TalkTime(rows []source.Row) []model.TalkTimeDay {
	out := make([]model.TalkTimeDay, 0, len(rows))
	for _, row := range rows {
		out = append(out, model.TalkTimeDay{
			Date:         day(row, "Created Date", "Date"),
			TotalMinutes: round2(number(row, "sum Duration", "Total Minutes")),
			CallCount:    number(row, "count Duration"),
		})
	}
	sortByDay(out)
	return out
}

// Conversions normalizes the daily conversion table, aliasing the raw
// dollar-sum column to TotalDollars.
func Conversions(rows []source.Row) []model.ConversionDay {
	out := make([]model.ConversionDay, 0, len(rows))
	for _, row := range rows {
		out = append(out, model.ConversionDay{
			Date:         day(row, "Created Date", "Date"),
			Count:        number(row, "count Loan Value"),
			TotalDollars: number(row, "sum Loan Value", "Total Dollars"),
		})
	}
	sortByDay(out)
	return out
}

// LeadsGrabbed normalizes the daily lead-intake table.
func LeadsGrabbed(rows []source.Row) []model.LeadsGrabbedDay {
	out := make([]model.LeadsGrabbedDay, 0, len(rows))
	for _, row := range rows {
		out = append(out, model.LeadsGrabbedDay{
			Date:         day(row, "Date"),
			LeadsGrabbed: number(row, "Leads Grabbed"),
		})
	}
	sortByDay(out)
	return out
}

// WeeklyUploads normalizes the weekly uploaded-units table. Input order is
// preserved.
func WeeklyUploads(rows []source.Row) []model.WeeklyUpload {
	out := make([]model.WeeklyUpload, 0, len(rows))
	for _, row := range rows {
		out = append(out, model.WeeklyUpload{
			Week:         str(row, "Week", "Date"),
			UnitCount:    number(row, "Unit Count"),
			TotalDollars: number(row, "sum Loan Value", "Total Dollars"),
		})
	}
	return out
}

// LeadsBehind normalizes the backlog summary, sorted descending by Total to
// surface the most urgent entries first. The published header for the leads
// column carries a trailing space.
func LeadsBehind(rows []source.Row) []model.LeadsBehindRow {
	out := make([]model.LeadsBehindRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, model.LeadsBehindRow{
			Owner:       str(row, "Lead Owner"),
			LeadsBehind: number(row, "Leads Behind ", "Leads Behind"),
			OppsBehind:  number(row, "Opp Behind"),
			Total:       number(row, "Total"),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Total > out[j].Total })
	return out
}

// RepMonthly normalizes the roster/MTD table, parsing currency-formatted
// dollars and sorting descending by MTD dollars to surface the most
// productive reps first.
func RepMonthly(rows []source.Row) []model.RepMonthlySummary {
	out := make([]model.RepMonthlySummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, model.RepMonthlySummary{
			RepName:    str(row, "Rep Name"),
			MTDUnits:   number(row, "MTD Units"),
			MTDDollars: number(row, "MTD Dollars"),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].MTDDollars > out[j].MTDDollars })
	return out
}

// RepDaily normalizes the per-rep conversion event table.
func RepDaily(rows []source.Row) []model.RepDailyConversion {
	out := make([]model.RepDailyConversion, 0, len(rows))
	for _, row := range rows {
		out = append(out, model.RepDailyConversion{
			LeadDate:       day(row, "Lead Created Date", "Date"),
			ConversionDate: day(row, "Conversion Date", "Date"),
			Rep:            str(row, "Rep Name", "Rep"),
		})
	}
	sortByDay(out)
	return out
}

// pick returns the first present, non-nil alias value in the row.
func pick(row source.Row, aliases ...string) any {
	for _, name := range aliases {
		if v, ok := row[name]; ok && v != nil {
			return v
		}
	}
	return nil
}

// day resolves an aliased date field; missing or malformed dates yield the
// zero day.
func day(row source.Row, aliases ...string) model.Day {
	d, _ := model.ParseDay(pick(row, aliases...))
	return d
}

// number resolves an aliased numeric field. Numeric cells pass through;
// currency-formatted text is parsed; anything else defaults to zero.
func number(row source.Row, aliases ...string) float64 {
	return parseNumber(pick(row, aliases...))
}

// str resolves an aliased text field, defaulting to empty.
func str(row source.Row, aliases ...string) string {
	switch v := pick(row, aliases...).(type) {
	case string:
		return v
	default:
		return ""
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// sortByDay sorts a normalized time series ascending by calendar day,
// preserving input order for ties.
func sortByDay[T model.Dated](rows []T) {
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Day().Before(rows[j].Day()) })
}
