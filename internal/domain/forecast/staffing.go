package forecast

import (
	"math"

	"github.com/hammah12/SalesDash/internal/domain/model"
)

const (
	// TargetConversionRate is the lead-to-conversion percentage the plan
	// treats as full efficiency.
	TargetConversionRate = 15.0
	// TargetCallsPerRep is the daily lead load one rep is expected to work.
	TargetCallsPerRep = 50.0
	// MinEfficiencyFloor clamps the efficiency divisor so a cold day never
	// inflates the headcount estimate unboundedly.
	MinEfficiencyFloor = 0.5
)

// Staffing is the headcount recommendation for today's lead volume.
type Staffing struct {
	CurrentStaff     int     `json:"current_staff"`
	RecommendedStaff int     `json:"recommended_staff"`
	ConversionRate   float64 `json:"conversion_rate"`
	AvgCallDuration  float64 `json:"avg_call_duration"`
	Efficiency       float64 `json:"efficiency"`
}

// PlanStaffing sizes the team from today's leads, conversions and talk time.
// Every ratio is guarded so missing or zero inputs produce zeros rather
// than NaN.
func PlanStaffing(leads []model.LeadsGrabbedDay, conv []model.ConversionDay, talk []model.TalkTimeDay, repCount int, today model.Day) Staffing {
	var leadsToday, convToday, talkToday float64
	if row, ok := model.TodayOrLatest(leads, today); ok {
		leadsToday = row.LeadsGrabbed
	}
	if row, ok := model.TodayOrLatest(conv, today); ok {
		convToday = row.Count
	}
	if row, ok := model.TodayOrLatest(talk, today); ok {
		talkToday = row.TotalMinutes
	}

	var rate float64
	if leadsToday > 0 {
		rate = 100 * convToday / leadsToday
	}
	var avgCall float64
	if convToday > 0 {
		avgCall = talkToday / convToday
	}

	efficiency := rate / TargetConversionRate
	recommended := int(math.Ceil(leadsToday / (TargetCallsPerRep * math.Max(efficiency, MinEfficiencyFloor))))

	return Staffing{
		CurrentStaff:     repCount,
		RecommendedStaff: recommended,
		ConversionRate:   rate,
		AvgCallDuration:  avgCall,
		Efficiency:       efficiency * 100,
	}
}
