package service

import (
	"time"

	"github.com/hammah12/SalesDash/internal/domain/forecast"
	"github.com/hammah12/SalesDash/internal/domain/model"
	"github.com/hammah12/SalesDash/internal/domain/performance"
	"github.com/hammah12/SalesDash/internal/domain/signals"
)

// Snapshot is one refresh cycle's complete output. Every derived view in it
// was computed from the same fetch, so readers never see a mix of old and
// new data.
type Snapshot struct {
	CycleID     string    `json:"cycle_id"`
	RefreshedAt time.Time `json:"refreshed_at"`

	WeeklyUploads     []model.WeeklyUpload       `json:"weekly_uploads"`
	TalkTimeDaily     []model.TalkTimeDay        `json:"talk_time_daily"`
	ConversionDaily   []model.ConversionDay      `json:"conversion_daily"`
	LeadsGrabbedDaily []model.LeadsGrabbedDay    `json:"leads_grabbed_daily"`
	LeadsBehind       []model.LeadsBehindRow     `json:"leads_behind"`
	RepMonthly        []model.RepMonthlySummary  `json:"rep_monthly"`
	RepDaily          []model.RepDailyConversion `json:"rep_daily"`

	Scorecards  []performance.Scorecard `json:"scorecards"`
	TeamAverage performance.TeamAverage `json:"team_average"`

	Anomalies     []signals.Anomaly        `json:"anomalies"`
	Insights      []signals.Insight        `json:"insights"`
	Coaching      []signals.Recommendation `json:"coaching"`
	Notifications []signals.Notification   `json:"notifications"`

	Forecast *forecast.Forecast `json:"forecast"`
	Staffing forecast.Staffing  `json:"staffing"`

	KPIs        KPISummary   `json:"kpis"`
	Comparisons []Comparison `json:"comparisons"`
}

// KPISummary carries the headline figures. Weekly units come from the last
// weekly upload row; the daily figures come from the last row of each daily
// series.
type KPISummary struct {
	WeeklyUnits      float64 `json:"weekly_units"`
	CallsToday       float64 `json:"calls_today"`
	ConversionsToday float64 `json:"conversions_today"`
	LeadsToday       float64 `json:"leads_today"`
}

// Comparison pairs today's value with yesterday's for one metric. Yesterday
// stays zero unless an exact previous-day row exists.
type Comparison struct {
	Metric    string  `json:"metric"`
	Yesterday float64 `json:"yesterday"`
	Today     float64 `json:"today"`
	Change    float64 `json:"change"`
}

func buildKPIs(s *Snapshot) KPISummary {
	var k KPISummary
	if n := len(s.WeeklyUploads); n > 0 {
		k.WeeklyUnits = s.WeeklyUploads[n-1].UnitCount
	}
	if n := len(s.TalkTimeDaily); n > 0 {
		k.CallsToday = s.TalkTimeDaily[n-1].CallCount
	}
	if n := len(s.ConversionDaily); n > 0 {
		k.ConversionsToday = s.ConversionDaily[n-1].Count
	}
	if n := len(s.LeadsGrabbedDaily); n > 0 {
		k.LeadsToday = s.LeadsGrabbedDaily[n-1].LeadsGrabbed
	}
	return k
}

func buildComparisons(s *Snapshot, today model.Day) []Comparison {
	var talkToday, talkYest float64
	if row, ok := model.TodayOrLatest(s.TalkTimeDaily, today); ok {
		talkToday = row.TotalMinutes
	}
	if row, ok := model.YesterdayRow(s.TalkTimeDaily, today); ok {
		talkYest = row.TotalMinutes
	}

	var convToday, convYest float64
	if row, ok := model.TodayOrLatest(s.ConversionDaily, today); ok {
		convToday = row.Count
	}
	if row, ok := model.YesterdayRow(s.ConversionDaily, today); ok {
		convYest = row.Count
	}

	var leadsToday, leadsYest float64
	if row, ok := model.TodayOrLatest(s.LeadsGrabbedDaily, today); ok {
		leadsToday = row.LeadsGrabbed
	}
	if row, ok := model.YesterdayRow(s.LeadsGrabbedDaily, today); ok {
		leadsYest = row.LeadsGrabbed
	}

	return []Comparison{
		{Metric: "talk_time_minutes", Yesterday: talkYest, Today: talkToday, Change: talkToday - talkYest},
		{Metric: "conversions", Yesterday: convYest, Today: convToday, Change: convToday - convYest},
		{Metric: "leads_grabbed", Yesterday: leadsYest, Today: leadsToday, Change: leadsToday - leadsYest},
	}
}
