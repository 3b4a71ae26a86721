// Package chart renders dashboard series and reports as PNG images.
package chart

import (
	"errors"
	"fmt"

	"github.com/go-analyze/charts"
	"gitlab.com/yelinaung/freelance-ledger/internal/models"
)

// ErrNoData is returned when there is nothing to draw.
var ErrNoData = errors.New("no data to chart")

// StatusPNG renders the status distribution as a pie chart. Statuses with
// no projects are left out.
func StatusPNG(data models.ChartData) ([]byte, error) {
	if len(data.Datasets) == 0 {
		return nil, ErrNoData
	}
	values, labels := nonZero(data.Datasets[0].Data, data.Labels)
	if len(values) == 0 {
		return nil, ErrNoData
	}
	return pie("Project Status", values, labels)
}

// IncomePNG renders the monthly income series as a bar chart.
func IncomePNG(data models.ChartData, currency models.Currency) ([]byte, error) {
	if len(data.Datasets) == 0 || len(data.Labels) == 0 {
		return nil, ErrNoData
	}
	if values, _ := nonZero(data.Datasets[0].Data, data.Labels); len(values) == 0 {
		return nil, ErrNoData
	}

	p, err := charts.BarRender(
		[][]float64{data.Datasets[0].Data},
		charts.TitleOptionFunc(charts.TitleOption{
			Text: fmt.Sprintf("Monthly Income (%s)", currency),
		}),
		charts.XAxisLabelsOptionFunc(data.Labels),
		charts.LegendLabelsOptionFunc([]string{string(currency)}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create chart: %w", err)
	}

	return render(p)
}

// ReportPNG renders a report's income by service type as a pie chart.
func ReportPNG(r models.Report) ([]byte, error) {
	values := make([]float64, 0, len(r.ProjectBreakdown))
	labels := make([]string, 0, len(r.ProjectBreakdown))
	for _, s := range r.ProjectBreakdown {
		values = append(values, s.Income.InexactFloat64())
		labels = append(labels, string(s.ServiceType))
	}

	values, labels = nonZero(values, labels)
	if len(values) == 0 {
		return nil, ErrNoData
	}
	return pie(fmt.Sprintf("Income by Service - %s", r.Period.Label), values, labels)
}

func pie(title string, values []float64, labels []string) ([]byte, error) {
	p, err := charts.PieRender(
		values,
		charts.TitleOptionFunc(charts.TitleOption{
			Text: title,
		}),
		charts.LegendLabelsOptionFunc(labels),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create chart: %w", err)
	}

	return render(p)
}

func render(p *charts.Painter) ([]byte, error) {
	buf, err := p.Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	return buf, nil
}

// nonZero keeps the positive values and their labels.
func nonZero(values []float64, labels []string) ([]float64, []string) {
	var outValues []float64
	var outLabels []string
	for i, v := range values {
		if v <= 0 {
			continue
		}
		label := ""
		if i < len(labels) {
			label = labels[i]
		}
		outValues = append(outValues, v)
		outLabels = append(outLabels, label)
	}
	return outValues, outLabels
}
