package services

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"kc-house-sales/models"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5"))
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3"))
	valueStyle   = lipgloss.NewStyle().Bold(true)
	upStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	downStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	mutedStyle   = lipgloss.NewStyle().Faint(true)
)

const ruleWidth = 54

// Printer renders overviews and views as a terminal report.
type Printer struct {
	w io.Writer
}

// NewPrinter creates a Printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Overview prints the whole-dataset summary.
func (p *Printer) Overview(o models.Overview) {
	p.title("KING COUNTY HOUSE SALES")
	p.section("Dataset")
	p.line("Number of transactions", valueStyle.Render(fmt.Sprintf("%d", o.Transactions)))
	p.line("Avg. price $", valueStyle.Render(fmt.Sprintf("%d", o.AvgPrice)))
	p.line("Avg. area [sqft]", valueStyle.Render(fmt.Sprintf("%d", o.AvgArea)))
	fmt.Fprintf(p.w, "\n%s\n\n", titleStyle.Render(strings.Repeat("═", ruleWidth)))
}

// View prints metrics, both series and the first maxRows rows of the subset.
func (p *Printer) View(v *models.View, maxRows int) {
	p.title("HOUSE SALES IN KING COUNTY")

	p.section("Metrics")
	p.line("Average price $ per "+v.Query.Measure.Label(),
		fmt.Sprintf("%s  %s", valueStyle.Render(fmt.Sprintf("%d", v.AvgPrice)), renderDelta(v.AvgPriceDelta, true)))
	p.line("Number of transactions",
		fmt.Sprintf("%s  %s", valueStyle.Render(fmt.Sprintf("%d", v.Counts.Transactions)), mutedStyle.Render(v.Counts.TransactionsShare.Label)))
	p.line("Average house area [sqft]",
		fmt.Sprintf("%s  %s", valueStyle.Render(fmt.Sprintf("%d", v.Counts.HouseArea)), renderDelta(v.Counts.HouseAreaDelta, false)))
	p.line("Average lot area [sqft]",
		fmt.Sprintf("%s  %s", valueStyle.Render(fmt.Sprintf("%d", v.Counts.LotArea)), renderDelta(v.Counts.LotAreaDelta, false)))
	fmt.Fprintln(p.w)

	p.section(fmt.Sprintf("Average price per %s (%s, %s chart)", v.Query.Measure.Label(), v.Query.Granularity, v.Chart))
	p.series(v.PriceSeries, "%.2f")

	p.section(fmt.Sprintf("Number of transactions (%s, %s chart)", v.Query.Granularity, v.Chart))
	p.series(v.TransactionSeries, "%.0f")

	p.section("Price distribution")
	p.histogram(v.Histogram)

	p.section("Raw data")
	p.rows(v.Subset, maxRows)

	fmt.Fprintf(p.w, "\n%s\n\n", titleStyle.Render(strings.Repeat("═", ruleWidth)))
}

func (p *Printer) title(s string) {
	sep := strings.Repeat("═", ruleWidth)
	fmt.Fprintf(p.w, "\n%s\n", titleStyle.Render(sep))
	fmt.Fprintf(p.w, "%s\n", titleStyle.Render("  "+s))
	fmt.Fprintf(p.w, "%s\n\n", titleStyle.Render(sep))
}

func (p *Printer) section(s string) {
	fmt.Fprintf(p.w, "%s\n", sectionStyle.Render("  "+s))
	fmt.Fprintf(p.w, "  %s\n", strings.Repeat("─", ruleWidth))
}

func (p *Printer) line(label, value string) {
	fmt.Fprintf(p.w, "  %-32s: %s\n", label, value)
}

func (p *Printer) series(buckets []models.Bucket, valueFormat string) {
	if len(buckets) == 0 {
		fmt.Fprintf(p.w, "  No data for the selected filters\n\n")
		return
	}
	for _, b := range buckets {
		fmt.Fprintf(p.w, "  %s  "+valueFormat+"  %s\n",
			b.Start.Format(models.DateLayout), b.Value, mutedStyle.Render(fmt.Sprintf("(%d)", b.Count)))
	}
	fmt.Fprintln(p.w)
}

func (p *Printer) histogram(bins []models.HistogramBin) {
	if len(bins) == 0 {
		fmt.Fprintf(p.w, "  No data for the selected filters\n\n")
		return
	}
	peak := 0
	for _, b := range bins {
		peak = max(peak, b.Count)
	}
	for _, b := range bins {
		if b.Count == 0 {
			continue
		}
		bar := strings.Repeat("█", max(1, b.Count*30/peak))
		fmt.Fprintf(p.w, "  %10.0f - %-10.0f %s (%d)\n", b.Low, b.High, bar, b.Count)
	}
	fmt.Fprintln(p.w)
}

func (p *Printer) rows(subset []models.Record, maxRows int) {
	if len(subset) == 0 {
		fmt.Fprintf(p.w, "  No transactions match the selected filters\n")
		return
	}
	fmt.Fprintf(p.w, "  %-12s %-10s %10s %4s %8s %9s %6s\n",
		"id", "date", "price", "bed", "sqft", "lot", "built")
	for i, r := range subset {
		if maxRows > 0 && i >= maxRows {
			fmt.Fprintf(p.w, "  %s\n", mutedStyle.Render(fmt.Sprintf("... %d more rows", len(subset)-maxRows)))
			break
		}
		fmt.Fprintf(p.w, "  %-12d %-10s %10.0f %4d %8.0f %9.0f %6d\n",
			r.ID, r.Date.Format(models.DateLayout), r.Price, r.Bedrooms, r.SqftLiving, r.SqftLot, r.YrBuilt)
	}
}

// renderDelta colours a delta. For prices a rise is shown in red.
func renderDelta(d models.Delta, inverse bool) string {
	switch {
	case d.Percent > 0 && !inverse, d.Percent < 0 && inverse:
		return upStyle.Render(d.Label)
	case d.Percent != 0:
		return downStyle.Render(d.Label)
	}
	return mutedStyle.Render(d.Label)
}
