// Command seed-sheets serves deterministic fixture CSVs shaped like the
// seven published spreadsheet tables, so the dashboard can be exercised
// end to end without a live spreadsheet.
//
// Point the service at it with:
//
//	SALESDASH_BASE_SHEET_URL="http://localhost:9091/pub?" \
//	SALESDASH_WEEKLY_UPLOADS_GID=weekly ... ./salesdash
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	defaultAddr = ":9091"
	defaultDays = 14
)

func main() {
	var (
		addr = flag.String("addr", defaultAddr, "Address to serve fixture CSVs on")
		days = flag.Int("days", defaultDays, "Days of daily history to generate")
		seed = flag.Int64("seed", 1, "Random seed for generated figures")
	)
	flag.Parse()

	gen := newGenerator(*days, *seed)

	mux := http.NewServeMux()
	mux.HandleFunc("/pub", func(w http.ResponseWriter, r *http.Request) {
		table := r.URL.Query().Get("gid")
		body, ok := gen.table(table)
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		_, _ = w.Write([]byte(body))
	})

	fmt.Println("serving fixture sheets on", *addr)
	if err := http.ListenAndServe(*addr, mux); err != nil {
		os.Stderr.WriteString("seed server failed: " + err.Error() + "\n")
	}
}

type generator struct {
	days int
	rng  *rand.Rand
	now  time.Time
}

func newGenerator(days int, seed int64) *generator {
	return &generator{
		days: days,
		rng:  rand.New(rand.NewSource(seed)),
		now:  time.Now().UTC(),
	}
}

var reps = []string{"Alice Nguyen", "Bob Ferreira", "Cara Osei", "Dan Kowalski", "Eve Marino"}

func (g *generator) table(name string) (string, bool) {
	switch name {
	case "weekly":
		return g.weekly(), true
	case "talk":
		return g.talk(), true
	case "conversion":
		return g.conversion(), true
	case "leads":
		return g.leads(), true
	case "behind":
		return g.behind(), true
	case "monthly":
		return g.monthly(), true
	case "daily":
		return g.daily(), true
	}
	return "", false
}

func (g *generator) day(offset int) string {
	return g.now.AddDate(0, 0, -offset).Format("2006-01-02")
}

func (g *generator) weekly() string {
	var b strings.Builder
	b.WriteString("Week,Unit Count,Total Dollars\n")
	for w := 3; w >= 0; w-- {
		units := 8 + g.rng.Intn(10)
		fmt.Fprintf(&b, "%s,%d,%d\n", g.day(w*7), units, units*4000)
	}
	return b.String()
}

func (g *generator) talk() string {
	var b strings.Builder
	b.WriteString("Date,sum Duration,count Duration\n")
	for d := g.days - 1; d >= 0; d-- {
		minutes := 90 + g.rng.Float64()*120
		fmt.Fprintf(&b, "%s,%.2f,%d\n", g.day(d), minutes, 15+g.rng.Intn(20))
	}
	return b.String()
}

func (g *generator) conversion() string {
	var b strings.Builder
	b.WriteString("Date,count Loan Value,sum Loan Value\n")
	for d := g.days - 1; d >= 0; d-- {
		count := 2 + g.rng.Intn(6)
		fmt.Fprintf(&b, "%s,%d,%d\n", g.day(d), count, count*3000)
	}
	return b.String()
}

func (g *generator) leads() string {
	var b strings.Builder
	b.WriteString("Date,Leads Grabbed\n")
	for d := g.days - 1; d >= 0; d-- {
		fmt.Fprintf(&b, "%s,%d\n", g.day(d), 25+g.rng.Intn(30))
	}
	return b.String()
}

func (g *generator) behind() string {
	var b strings.Builder
	// The published sheet carries a trailing space in this header.
	b.WriteString("Lead Owner,Leads Behind ,Opp Behind,Total\n")
	for _, rep := range reps {
		leads := g.rng.Intn(6)
		opps := g.rng.Intn(4)
		fmt.Fprintf(&b, "%s,%d,%d,%d\n", rep, leads, opps, leads+opps)
	}
	return b.String()
}

func (g *generator) monthly() string {
	var b strings.Builder
	b.WriteString("Rep Name,MTD Units,MTD Dollars\n")
	for _, rep := range reps {
		units := 2 + g.rng.Intn(12)
		fmt.Fprintf(&b, "%s,%d,\"$%d,000.00\"\n", rep, units, units*4)
	}
	return b.String()
}

func (g *generator) daily() string {
	var b strings.Builder
	b.WriteString("Lead Created Date,Conversion Date,Rep Name\n")
	for d := g.days - 1; d >= 0; d-- {
		for i := 0; i < 1+g.rng.Intn(3); i++ {
			rep := reps[g.rng.Intn(len(reps))]
			convOffset := d
			// A handful of conversions land a day after the lead.
			if g.rng.Intn(5) == 0 && d > 0 {
				convOffset = d - 1
			}
			fmt.Fprintf(&b, "%s,%s,%s\n", g.day(d), g.day(convOffset), rep)
		}
	}
	return b.String()
}
