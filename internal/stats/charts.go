package stats

import "github.com/vilaca/issue-dashboard/internal/domain"

// ChartData is a chart-ready dataset in the shape Chart.js consumes.
type ChartData struct {
	Labels   []string      `json:"labels"`
	Datasets []ChartSeries `json:"datasets"`
}

// ChartSeries is one data series of a chart.
type ChartSeries struct {
	Label           string   `json:"label,omitempty"`
	Data            []int    `json:"data"`
	BackgroundColor []string `json:"backgroundColor"`
	BorderColor     []string `json:"borderColor"`
	BorderWidth     int      `json:"borderWidth"`
}

// Red, yellow, green.
var (
	pieBackground = []string{"#f87171", "#fbbf24", "#34d399"}
	pieBorder     = []string{"#fca5a5", "#fcd34d", "#6ee7b7"}
)

const (
	barBackground = "#60a5fa"
	barBorder     = "#3b82f6"
	barLabel      = "# of Issues"
)

// StatusChart builds the pie dataset of issues by status.
func StatusChart(issues []domain.Issue) ChartData {
	return pieChart(tally(issues, domain.Issue.NormalizedStatus))
}

// CategoryChart builds the bar dataset of issues by category.
func CategoryChart(issues []domain.Issue) ChartData {
	return barChart(tally(issues, domain.Issue.NormalizedCategory))
}

func pieChart(labels []string, counts map[string]int) ChartData {
	series := ChartSeries{
		Data:            values(labels, counts),
		BackgroundColor: make([]string, len(labels)),
		BorderColor:     make([]string, len(labels)),
		BorderWidth:     1,
	}
	for i := range labels {
		series.BackgroundColor[i] = pieBackground[i%len(pieBackground)]
		series.BorderColor[i] = pieBorder[i%len(pieBorder)]
	}
	return ChartData{Labels: nonNil(labels), Datasets: []ChartSeries{series}}
}

func barChart(labels []string, counts map[string]int) ChartData {
	series := ChartSeries{
		Label:           barLabel,
		Data:            values(labels, counts),
		BackgroundColor: make([]string, len(labels)),
		BorderColor:     make([]string, len(labels)),
		BorderWidth:     1,
	}
	for i := range labels {
		series.BackgroundColor[i] = barBackground
		series.BorderColor[i] = barBorder
	}
	return ChartData{Labels: nonNil(labels), Datasets: []ChartSeries{series}}
}

func values(labels []string, counts map[string]int) []int {
	data := make([]int, len(labels))
	for i, label := range labels {
		data[i] = counts[label]
	}
	return data
}

// nonNil keeps empty label lists encoding as [] rather than null.
func nonNil(labels []string) []string {
	if labels == nil {
		return []string{}
	}
	return labels
}
