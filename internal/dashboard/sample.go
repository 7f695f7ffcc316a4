package dashboard

// Series is a labelled set of monthly values, in millions.
type Series struct {
	Labels   []string  `json:"labels"`
	Revenues []float64 `json:"revenues"`
	Expenses []float64 `json:"expenses"`
	Profits  []float64 `json:"profits,omitempty"`
}

// SampleSeries holds placeholder chart data. It is not derived from stored
// records, which carry no history to chart.
type SampleSeries struct {
	Sample      bool   `json:"sample"`
	Trend       Series `json:"revenueExpenseTrend"`
	Performance Series `json:"monthlyPerformance"`
}

var sampleMonths = []string{"يناير", "فبراير", "مارس", "أبريل", "مايو", "يونيو"}

// SampleData returns the placeholder series. Profits are derived from the
// performance revenues and expenses.
func SampleData() SampleSeries {
	perf := Series{
		Labels:   append([]string(nil), sampleMonths...),
		Revenues: []float64{1.2, 1.5, 2.0, 2.1, 5.5, 4.2},
		Expenses: []float64{0.9, 1.1, 1.3, 1.6, 2.8, 2.5},
	}
	perf.Profits = make([]float64, len(perf.Revenues))
	for i := range perf.Revenues {
		perf.Profits[i] = perf.Revenues[i] - perf.Expenses[i]
	}

	return SampleSeries{
		Sample: true,
		Trend: Series{
			Labels:   append([]string(nil), sampleMonths...),
			Revenues: []float64{1.2, 1.5, 1.8, 2.1, 2.6, 2.2},
			Expenses: []float64{0.9, 1.1, 1.3, 1.6, 1.8, 1.5},
		},
		Performance: perf,
	}
}
