package signals

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/hammah12/SalesDash/internal/domain/model"
	"github.com/hammah12/SalesDash/internal/domain/performance"
)

func day(t *testing.T, s string) model.Day {
	t.Helper()
	d, ok := model.ParseDay(s)
	if !ok {
		t.Fatalf("bad day fixture %q", s)
	}
	return d
}

func talkSeries(t *testing.T, minutes ...float64) []model.TalkTimeDay {
	t.Helper()
	rows := make([]model.TalkTimeDay, len(minutes))
	for i, m := range minutes {
		rows[i] = model.TalkTimeDay{
			Date:         day(t, time.Date(2024, 3, i+1, 0, 0, 0, 0, time.UTC).Format("2006-01-02")),
			TotalMinutes: m,
		}
	}
	return rows
}

func convSeries(t *testing.T, counts ...float64) []model.ConversionDay {
	t.Helper()
	rows := make([]model.ConversionDay, len(counts))
	for i, c := range counts {
		rows[i] = model.ConversionDay{
			Date:  day(t, time.Date(2024, 3, i+1, 0, 0, 0, 0, time.UTC).Format("2006-01-02")),
			Count: c,
		}
	}
	return rows
}

func TestDetectAnomalies(t *testing.T) {
	Convey("Given eight days of talk time with a sharp drop today", t, func() {
		talk := talkSeries(t, 100, 100, 100, 100, 100, 100, 100, 30)
		today := day(t, "2024-03-08")

		Convey("When detected", func() {
			anomalies := DetectAnomalies(talk, nil, today)

			Convey("Then the talk-time anomaly fires against the prior 7-day mean", func() {
				So(anomalies, ShouldHaveLength, 1)
				So(anomalies[0].Type, ShouldEqual, "Low Talk Time")
				So(anomalies[0].Severity, ShouldEqual, "high")
				So(anomalies[0].Message, ShouldEqual,
					"Today's talk time (30 min) is 50% below 7-day average (100.0 min)")
			})
		})
	})

	Convey("Given only seven days of history", t, func() {
		talk := talkSeries(t, 100, 100, 100, 100, 100, 100, 10)

		Convey("Then no anomaly fires for lack of a baseline", func() {
			So(DetectAnomalies(talk, nil, day(t, "2024-03-07")), ShouldBeEmpty)
		})
	})

	Convey("Given a conversion series collapsing today", t, func() {
		conv := convSeries(t, 10, 10, 10, 10, 10, 10, 10, 1)
		today := day(t, "2024-03-08")

		Convey("Then the conversion anomaly fires", func() {
			anomalies := DetectAnomalies(nil, conv, today)

			So(anomalies, ShouldHaveLength, 1)
			So(anomalies[0].Type, ShouldEqual, "Low Conversions")
			So(anomalies[0].Message, ShouldEqual,
				"Today's conversions (1) are 70% below 7-day average (10.0)")
		})
	})

	Convey("Given very large talk-time values", t, func() {
		talk := talkSeries(t, 5000000, 5000000, 5000000, 5000000, 5000000, 5000000, 5000000, 2000000)
		today := day(t, "2024-03-08")

		Convey("Then the message stays in plain decimal notation", func() {
			anomalies := DetectAnomalies(talk, nil, today)

			So(anomalies, ShouldHaveLength, 1)
			So(anomalies[0].Message, ShouldEqual,
				"Today's talk time (2000000 min) is 50% below 7-day average (5000000.0 min)")
			So(anomalies[0].Message, ShouldNotContainSubstring, "e+")
		})
	})

	Convey("Given values within the normal band", t, func() {
		talk := talkSeries(t, 100, 100, 100, 100, 100, 100, 100, 60)
		conv := convSeries(t, 10, 10, 10, 10, 10, 10, 10, 5)

		Convey("Then nothing fires", func() {
			So(DetectAnomalies(talk, conv, day(t, "2024-03-08")), ShouldBeEmpty)
		})
	})
}

func TestGenerateInsights(t *testing.T) {
	Convey("Given scorecards with a clear leader", t, func() {
		cards := []performance.Scorecard{
			{RepName: "Bob", ConversionPerformance: 80, CohortConversionRate: 12.5},
			{RepName: "Alice", ConversionPerformance: 140, CohortConversionRate: 22.34},
		}

		Convey("Then the top performer insight cites their cohort rate", func() {
			insights := GenerateInsights(cards, nil, nil, model.Day{})

			So(insights, ShouldHaveLength, 1)
			So(insights[0].Type, ShouldEqual, "Top Performer")
			So(insights[0].Message, ShouldEqual, "Alice is leading with 22.3% conversion rate")
			So(insights[0].Action, ShouldEqual, "Consider having them mentor underperformers")
		})
	})

	Convey("Given tied performances the first card wins", t, func() {
		cards := []performance.Scorecard{
			{RepName: "Cara", ConversionPerformance: 100, CohortConversionRate: 10},
			{RepName: "Dave", ConversionPerformance: 100, CohortConversionRate: 20},
		}

		insights := GenerateInsights(cards, nil, nil, model.Day{})

		So(insights[0].Message, ShouldStartWith, "Cara")
	})

	Convey("Given talk time today but zero conversions", t, func() {
		talk := talkSeries(t, 120)
		conv := convSeries(t, 0)
		today := day(t, "2024-03-01")

		Convey("Then the opportunity insight fires", func() {
			insights := GenerateInsights(nil, talk, conv, today)

			So(insights, ShouldHaveLength, 1)
			So(insights[0].Type, ShouldEqual, "Conversion Opportunity")
			So(insights[0].Message, ShouldEqual, "High talk time (120 min) but no conversions today")
		})
	})

	Convey("Given a very large talk-time figure and zero conversions", t, func() {
		talk := talkSeries(t, 1234567)
		conv := convSeries(t, 0)
		today := day(t, "2024-03-01")

		insights := GenerateInsights(nil, talk, conv, today)

		So(insights, ShouldHaveLength, 1)
		So(insights[0].Message, ShouldEqual, "High talk time (1234567 min) but no conversions today")
	})

	Convey("Given no cards and no activity", t, func() {
		So(GenerateInsights(nil, nil, nil, model.Day{}), ShouldBeEmpty)
	})
}

func TestGenerateCoaching(t *testing.T) {
	Convey("Given scorecards on both sides of the threshold", t, func() {
		cards := []performance.Scorecard{
			{RepName: "Alice", ConversionPerformance: 120, TalkTimePerformance: 110, UploadsPerformance: 90},
			{RepName: "Bob", ConversionPerformance: 60, TalkTimePerformance: 50, UploadsPerformance: 80},
			{RepName: "Cara", ConversionPerformance: 30, TalkTimePerformance: 90, UploadsPerformance: 40},
		}

		Convey("When coaching is generated", func() {
			recs := GenerateCoaching(cards)

			Convey("Then each weak area is listed", func() {
				So(recs, ShouldHaveLength, 2)
				So(recs[1].RepName, ShouldEqual, "Bob")
				So(recs[1].Areas, ShouldResemble, []string{"Conversion techniques", "Call engagement"})
				So(recs[1].Priority, ShouldEqual, "medium")
			})

			Convey("And high priority sorts first", func() {
				So(recs[0].RepName, ShouldEqual, "Cara")
				So(recs[0].Priority, ShouldEqual, "high")
				So(recs[0].Areas, ShouldResemble, []string{"Conversion techniques", "Documentation process"})
			})
		})
	})

	Convey("Given two high-priority reps their relative order is stable", t, func() {
		cards := []performance.Scorecard{
			{RepName: "Dave", ConversionPerformance: 40},
			{RepName: "Eve", ConversionPerformance: 45},
		}

		recs := GenerateCoaching(cards)

		So(recs[0].RepName, ShouldEqual, "Dave")
		So(recs[1].RepName, ShouldEqual, "Eve")
	})
}

func TestBuildNotifications(t *testing.T) {
	Convey("Given anomalies and underperformers", t, func() {
		now := time.Date(2024, 3, 8, 12, 0, 0, 0, time.UTC)
		anomalies := []Anomaly{{Type: "Low Talk Time", Severity: "high", Message: "drop"}}
		cards := []performance.Scorecard{
			{RepName: "Alice", IsUnderperforming: false},
			{RepName: "Bob", IsUnderperforming: true},
		}

		Convey("When notifications are built", func() {
			notifs := BuildNotifications(anomalies, cards, now)

			So(notifs, ShouldHaveLength, 2)
			So(notifs[0].ID, ShouldEqual, "anomaly-Low Talk Time")
			So(notifs[0].Type, ShouldEqual, "alert")
			So(notifs[0].Severity, ShouldEqual, "high")
			So(notifs[1].ID, ShouldEqual, "underperform-Bob")
			So(notifs[1].Type, ShouldEqual, "warning")
			So(notifs[1].Message, ShouldEqual, "Bob is performing below 50% of team average")
			So(notifs[1].Timestamp, ShouldResemble, now)
		})
	})
}
