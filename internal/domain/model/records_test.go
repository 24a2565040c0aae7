package model_test

import (
	"testing"
	"time"

	"github.com/hammah12/SalesDash/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func day(s string) model.Day {
	d, ok := model.ParseDay(s)
	if !ok {
		panic("bad test date: " + s)
	}
	return d
}

func TestParseDay(t *testing.T) {
	Convey("Given raw date cells", t, func() {
		Convey("When parsing ISO dates", func() {
			d, ok := model.ParseDay("2024-01-02")
			So(ok, ShouldBeTrue)
			So(d.Key(), ShouldEqual, "2024-01-02")
		})

		Convey("When parsing US-style dates", func() {
			d, ok := model.ParseDay("1/2/2024")
			So(ok, ShouldBeTrue)
			So(d.Key(), ShouldEqual, "2024-01-02")

			d, ok = model.ParseDay("01/02/2024")
			So(ok, ShouldBeTrue)
			So(d.Key(), ShouldEqual, "2024-01-02")
		})

		Convey("When the cell carries a time component", func() {
			d, ok := model.ParseDay("2024-01-02T09:15:00")
			So(ok, ShouldBeTrue)
			So(d.Key(), ShouldEqual, "2024-01-02")

			d, ok = model.ParseDay("1/2/2024 09:15")
			So(ok, ShouldBeTrue)
			So(d.Key(), ShouldEqual, "2024-01-02")
		})

		Convey("When the cell is a time value", func() {
			d, ok := model.ParseDay(time.Date(2024, 3, 4, 15, 30, 0, 0, time.Local))
			So(ok, ShouldBeTrue)
			So(d.Key(), ShouldEqual, "2024-03-04")
		})

		Convey("When the cell is garbage", func() {
			for _, v := range []any{"", "not a date", 42.0, nil} {
				d, ok := model.ParseDay(v)
				So(ok, ShouldBeFalse)
				So(d.IsZero(), ShouldBeTrue)
			}
		})
	})

	Convey("Given two days", t, func() {
		a := day("2024-01-01")
		b := day("2024-01-02")

		Convey("Then comparisons work at day granularity", func() {
			So(a.Before(b), ShouldBeTrue)
			So(b.Before(a), ShouldBeFalse)
			So(a.Equal(day("2024-01-01")), ShouldBeTrue)
		})
	})
}

func TestTodayAndYesterdaySelection(t *testing.T) {
	series := []model.TalkTimeDay{
		{Date: day("2024-01-01"), TotalMinutes: 100},
		{Date: day("2024-01-02"), TotalMinutes: 200},
		{Date: day("2024-01-03"), TotalMinutes: 300},
	}

	Convey("Given a talk-time series", t, func() {
		Convey("When today matches a row", func() {
			row, ok := model.TodayOrLatest(series, day("2024-01-02"))
			So(ok, ShouldBeTrue)
			So(row.TotalMinutes, ShouldEqual, 200)
		})

		Convey("When today has no row", func() {
			row, ok := model.TodayOrLatest(series, day("2024-02-15"))

			Convey("Then it falls back to the latest row", func() {
				So(ok, ShouldBeTrue)
				So(row.TotalMinutes, ShouldEqual, 300)
			})
		})

		Convey("When the series is empty", func() {
			_, ok := model.TodayOrLatest([]model.TalkTimeDay{}, day("2024-01-01"))
			So(ok, ShouldBeFalse)
		})

		Convey("When asking for yesterday", func() {
			row, ok := model.YesterdayRow(series, day("2024-01-03"))
			So(ok, ShouldBeTrue)
			So(row.TotalMinutes, ShouldEqual, 200)
		})

		Convey("When yesterday has no exact match", func() {
			_, ok := model.YesterdayRow(series, day("2024-02-15"))
			So(ok, ShouldBeFalse)
		})

		Convey("When history is too short for yesterday", func() {
			_, ok := model.YesterdayRow(series[:1], day("2024-01-02"))
			So(ok, ShouldBeFalse)
		})
	})
}
