// Package export renders period reports as downloadable documents.
package export

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/shopspring/decimal"
	"github.com/wcharczuk/go-chart/v2"

	"github.com/transfer-desk/backend/internal/application/adapter"
	"github.com/transfer-desk/backend/internal/domain/balance"
	domainerror "github.com/transfer-desk/backend/internal/domain/error"
)

const (
	reportTitle  = "Récapitulatif des Transactions"
	displayDate  = "02/01/2006"
	chartWidth   = 1024
	chartHeight  = 512
	chartBarSize = 40
)

var tableHeader = []string{"Client", "Montant Envoyé", "Montant à Payer", "Montant Payé", "Dette Totale"}

// reportFormatter implements adapter.ReportFormatter.
type reportFormatter struct {
	currency string
	now      func() time.Time
}

// NewReportFormatter creates a formatter labelling amounts with currency.
func NewReportFormatter(currency string) adapter.ReportFormatter {
	return &reportFormatter{currency: currency, now: time.Now}
}

// Render renders report in the requested format.
func (f *reportFormatter) Render(report *balance.PeriodReport, format adapter.ReportFormat) (*adapter.Document, error) {
	switch format {
	case adapter.ReportFormatText:
		return &adapter.Document{
			ContentType: "text/plain; charset=utf-8",
			Extension:   "txt",
			Body:        f.renderTable(report, false),
		}, nil
	case adapter.ReportFormatMarkdown:
		return &adapter.Document{
			ContentType: "text/markdown; charset=utf-8",
			Extension:   "md",
			Body:        f.renderTable(report, true),
		}, nil
	case adapter.ReportFormatPNG:
		body, err := f.renderChart(report)
		if err != nil {
			return nil, err
		}
		return &adapter.Document{
			ContentType: "image/png",
			Extension:   "png",
			Body:        body,
		}, nil
	default:
		return nil, domainerror.ErrUnsupportedExportFormat
	}
}

func (f *reportFormatter) renderTable(report *balance.PeriodReport, markdown bool) []byte {
	var buf bytes.Buffer

	period := fmt.Sprintf("Période : du %s au %s", report.Start.Format(displayDate), report.End.Format(displayDate))
	if markdown {
		fmt.Fprintf(&buf, "# %s\n\n%s\n\n", reportTitle, period)
	} else {
		fmt.Fprintf(&buf, "%s\n%s\n\n", reportTitle, period)
	}

	table := tablewriter.NewWriter(&buf)
	table.SetHeader(tableHeader)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
	})
	if markdown {
		table.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
		table.SetCenterSeparator("|")
	}

	for _, row := range report.Rows {
		table.Append([]string{
			row.ClientName,
			f.amount(row.TotalSent),
			f.amount(row.TotalToPay),
			f.amount(row.TotalPaid),
			f.amount(row.TotalDebt),
		})
	}
	table.Render()

	prefix := ""
	if markdown {
		prefix = "- "
	}
	fmt.Fprintf(&buf, "\nTotaux Généraux :\n")
	fmt.Fprintf(&buf, "%sTotal Envoyé : %s\n", prefix, f.amount(report.TotalSent))
	fmt.Fprintf(&buf, "%sTotal à Payer : %s\n", prefix, f.amount(report.TotalToPay))
	fmt.Fprintf(&buf, "%sTotal Payé : %s\n", prefix, f.amount(report.TotalPaid))
	fmt.Fprintf(&buf, "%sDette Totale : %s\n", prefix, f.amount(report.TotalDebt))
	fmt.Fprintf(&buf, "\nGénéré le %s\n", f.now().Format("02/01/2006 à 15:04"))

	return buf.Bytes()
}

// renderChart draws one bar per client showing its total debt at the end of the window.
func (f *reportFormatter) renderChart(report *balance.PeriodReport) ([]byte, error) {
	if len(report.Rows) == 0 {
		return nil, domainerror.ErrNoTransactionsInRange
	}

	bars := make([]chart.Value, 0, len(report.Rows))
	low, high := 0.0, 0.0
	for _, row := range report.Rows {
		v := balance.RoundForDisplay(row.TotalDebt).InexactFloat64()
		low = math.Min(low, v)
		high = math.Max(high, v)
		bars = append(bars, chart.Value{Label: row.ClientName, Value: v})
	}
	if high == low {
		high = low + 1
	}

	graph := chart.BarChart{
		Title: fmt.Sprintf("Dette Totale au %s", report.End.Format(displayDate)),
		Background: chart.Style{
			Padding: chart.Box{
				Top:    40,
				Left:   20,
				Right:  20,
				Bottom: 20,
			},
		},
		Width:    chartWidth,
		Height:   chartHeight,
		BarWidth: chartBarSize,
		Bars:     bars,
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: low, Max: high},
			ValueFormatter: func(v interface{}) string {
				if vf, isFloat := v.(float64); isFloat {
					return f.amount(decimal.NewFromFloat(vf))
				}
				return ""
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	return buf.Bytes(), nil
}

// amount renders a value rounded to whole units, grouped by thousands with
// spaces, followed by the currency label: "1 234 567 FCFA".
func (f *reportFormatter) amount(v decimal.Decimal) string {
	digits := balance.RoundForDisplay(v).String()
	sign := ""
	if strings.HasPrefix(digits, "-") {
		sign, digits = "-", digits[1:]
	}

	var grouped strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			grouped.WriteByte(' ')
		}
		grouped.WriteRune(r)
	}

	if f.currency == "" {
		return sign + grouped.String()
	}
	return sign + grouped.String() + " " + f.currency
}
