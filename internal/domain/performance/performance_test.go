package performance

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/hammah12/SalesDash/internal/domain/cohort"
	"github.com/hammah12/SalesDash/internal/domain/model"
)

func TestCompute(t *testing.T) {
	Convey("Given monthly summaries and cohort buckets", t, func() {
		monthly := []model.RepMonthlySummary{
			{RepName: "Alice", MTDUnits: 10, MTDDollars: 50000},
			{RepName: "Bob", MTDUnits: 2, MTDDollars: 8000},
		}
		buckets := cohort.Map{
			"2024-03-01": {
				LeadsGrabbed: 20,
				Conversions:  4,
				RepConversions: map[string]int{
					"Alice": 3,
					"Bob":   1,
				},
			},
		}

		Convey("When computed", func() {
			cards, avg := Compute(monthly, buckets)

			Convey("Then output order follows the monthly summary", func() {
				So(cards, ShouldHaveLength, 2)
				So(cards[0].RepName, ShouldEqual, "Alice")
				So(cards[1].RepName, ShouldEqual, "Bob")
			})

			Convey("And cohort rate uses proportional lead attribution", func() {
				// Alice: estLeads = 20*3/4 = 15, rate = 100*3/15 = 20
				So(cards[0].CohortConversionRate, ShouldAlmostEqual, 20)
				// Bob: estLeads = 20*1/4 = 5, rate = 100*1/5 = 20
				So(cards[1].CohortConversionRate, ShouldAlmostEqual, 20)
			})

			Convey("And team averages are arithmetic means", func() {
				So(avg.Conversions, ShouldAlmostEqual, 6)
				So(avg.ConversionDollars, ShouldAlmostEqual, 29000)
				So(avg.CohortConversionRate, ShouldAlmostEqual, 20)
			})

			Convey("And performance ratios compare against the average", func() {
				So(cards[0].ConversionPerformance, ShouldAlmostEqual, 100*10.0/6.0)
				So(cards[1].ConversionPerformance, ShouldAlmostEqual, 100*2.0/6.0)
			})

			Convey("And reps below threshold are flagged", func() {
				So(cards[0].IsUnderperforming, ShouldBeTrue) // cohort rate 20 < 50
				So(cards[1].IsUnderperforming, ShouldBeTrue)
			})
		})
	})

	Convey("Given no monthly summaries", t, func() {
		cards, avg := Compute(nil, cohort.Map{})

		Convey("Then the result is empty with a zero average", func() {
			So(cards, ShouldBeEmpty)
			So(avg.Conversions, ShouldEqual, 0)
			So(avg.CohortConversionRate, ShouldEqual, 0)
		})
	})

	Convey("Given a rep with no cohort conversions", t, func() {
		monthly := []model.RepMonthlySummary{{RepName: "Cara", MTDUnits: 5}}

		Convey("Then their cohort rate stays at zero", func() {
			cards, _ := Compute(monthly, cohort.Map{})
			So(cards[0].CohortConversionRate, ShouldEqual, 0)
		})
	})

	Convey("Given duplicate rep names in the monthly summary", t, func() {
		monthly := []model.RepMonthlySummary{
			{RepName: "Dave", MTDUnits: 1, MTDDollars: 1000},
			{RepName: "Eve", MTDUnits: 3, MTDDollars: 3000},
			{RepName: "Dave", MTDUnits: 7, MTDDollars: 7000},
		}

		Convey("Then the later row overwrites values but keeps position", func() {
			cards, _ := Compute(monthly, cohort.Map{})

			So(cards, ShouldHaveLength, 2)
			So(cards[0].RepName, ShouldEqual, "Dave")
			So(cards[0].Conversions, ShouldEqual, 7)
			So(cards[0].ConversionDollars, ShouldEqual, 7000)
			So(cards[1].RepName, ShouldEqual, "Eve")
		})
	})

	Convey("Given a team average of zero", t, func() {
		monthly := []model.RepMonthlySummary{
			{RepName: "Fay", MTDUnits: 0},
			{RepName: "Gus", MTDUnits: 0},
		}

		Convey("Then performance ratios fall back to zero", func() {
			cards, avg := Compute(monthly, cohort.Map{})

			So(avg.Conversions, ShouldEqual, 0)
			So(cards[0].ConversionPerformance, ShouldEqual, 0)
			So(cards[1].ConversionPerformance, ShouldEqual, 0)
		})
	})
}
