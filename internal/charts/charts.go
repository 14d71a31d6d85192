package charts

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/akazantsev/kopilka/internal/service"
)

// ChartGenerator рендерит рассчитанные отчеты в PNG
type ChartGenerator struct{}

// NewChartGenerator создает новый генератор графиков
func NewChartGenerator() *ChartGenerator {
	return &ChartGenerator{}
}

// GenerateSpendingChart строит столбчатую диаграмму дневной серии:
// по столбцу на каждую дату окна, подписи — день недели и число.
func (g *ChartGenerator) GenerateSpendingChart(report *service.ChartReport) ([]byte, error) {
	if len(report.Buckets) == 0 {
		return nil, nil // Нет данных для графика
	}

	bars := make([]chart.Value, 0, len(report.Buckets))
	for i, b := range report.Buckets {
		bars = append(bars, chart.Value{
			Label: fmt.Sprintf("%s %s", b.Label, b.Date),
			Value: float64(report.Values[i]),
		})
	}

	graph := chart.BarChart{
		Width:    1200,
		Height:   600,
		BarWidth: 40,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    50,
				Left:   50,
				Right:  50,
				Bottom: 50,
			},
			FillColor: chart.ColorWhite,
		},
		XAxis: chart.Style{
			FontSize:  10,
			FontColor: chart.ColorBlack,
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%.0f₽", v.(float64))
			},
			Style: chart.Style{
				FontSize:  12,
				FontColor: chart.ColorBlack,
			},
		},
		Bars: bars,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render spending chart: %w", err)
	}

	return buffer.Bytes(), nil
}

// GenerateBreakdownPie строит круговую диаграмму разбивки по категориям
func (g *ChartGenerator) GenerateBreakdownPie(title string, slices []service.CategorySlice) ([]byte, error) {
	values := make([]chart.Value, 0, len(slices))
	for _, s := range slices {
		if s.Amount <= 0 {
			continue
		}
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s: %d₽ (%d%%)", s.Name, s.Amount, s.Percentage),
			Value: float64(s.Amount),
		})
	}
	if len(values) == 0 {
		return nil, nil // Нет данных для графика
	}

	pie := chart.PieChart{
		Title:  title,
		Width:  800,
		Height: 800,
		Values: values,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    50,
				Left:   50,
				Right:  50,
				Bottom: 50,
			},
			FillColor: chart.ColorWhite,
		},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := pie.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render breakdown pie: %w", err)
	}

	return buffer.Bytes(), nil
}
