// Package report prints a dashboard view as plain-text tables.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"studentdash/internal/analytics"
	"studentdash/internal/config"
)

// Write prints every section of d to w under the given headings.
func Write(w io.Writer, d *analytics.Dashboard, sections config.SectionsConfig) error {
	p := &printer{w: w}

	p.printf("Activities: %s\n", strings.Join(d.Selection.Activities, ", "))
	p.printf("Intensity levels: %s\n", strings.Join(d.Selection.Intensities, ", "))
	p.printf("Rows: %d\n", d.RowCount)

	p.heading(sections.ActivityVsGPA)
	shares := make(map[string]float64, len(d.GPAShare))
	for _, s := range d.GPAShare {
		shares[s.Category] = s.Percent
	}
	t := p.table("Activity", "Students", "Average GPA", "Share")
	for _, m := range d.AvgGPA {
		t.Append([]string{m.Category, strconv.Itoa(m.Count), num(m.Mean), fmt.Sprintf("%.1f%%", shares[m.Category])})
	}
	t.Render()

	p.heading(sections.IntensityVsWellBeing)
	p.printf("Well-being\n")
	boxTable(p, d.WellBeingBoxes)
	p.printf("GPA\n")
	boxTable(p, d.GPABoxes)

	p.heading(sections.BestForWellBeing)
	t = p.table("Rank", "Activity", "Average Well-being")
	for i, m := range d.TopWellBeing {
		t.Append([]string{strconv.Itoa(i + 1), m.Category, num(m.Mean)})
	}
	t.Render()

	p.heading(sections.Correlation)
	p.printf("Correlation between GPA and Well-being: %s\n", d.Correlation)
	if d.TrendlineNotice != "" {
		p.printf("Note: %s\n", d.TrendlineNotice)
	} else {
		t = p.table("Activity", "Points", "Slope", "Intercept", "R²")
		for _, g := range d.Scatter {
			if g.Trend == nil {
				t.Append([]string{g.Activity, strconv.Itoa(len(g.Points)), analytics.NotAvailable, analytics.NotAvailable, analytics.NotAvailable})
				continue
			}
			t.Append([]string{g.Activity, strconv.Itoa(len(g.Points)), num(g.Trend.Slope), num(g.Trend.Intercept), num(g.Trend.RSquared)})
		}
		t.Render()
	}

	return p.err
}

// WriteNoData prints the empty-selection notice.
func WriteNoData(w io.Writer) error {
	_, err := fmt.Fprintln(w, analytics.NoticeNoData)
	return err
}

func boxTable(p *printer, boxes []analytics.Box) {
	t := p.table("Intensity", "Students", "Min", "Q1", "Median", "Q3", "Max", "Outliers")
	for _, b := range boxes {
		if !b.HasData() {
			t.Append([]string{b.Level, "0", "-", "-", "-", "-", "-", "-"})
			continue
		}
		t.Append([]string{
			b.Level, strconv.Itoa(b.Count),
			num(b.Min), num(b.Q1), num(b.Median), num(b.Q3), num(b.Max),
			strconv.Itoa(len(b.Outliers)),
		})
	}
	t.Render()
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// printer remembers the first write error so the report reads linearly.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) heading(title string) {
	p.printf("\n%s\n%s\n", title, strings.Repeat("=", len([]rune(title))))
}

func (p *printer) table(header ...string) *tablewriter.Table {
	t := tablewriter.NewWriter(p.w)
	t.SetHeader(header)
	t.SetAutoFormatHeaders(false)
	t.SetAlignment(tablewriter.ALIGN_LEFT)
	return t
}
