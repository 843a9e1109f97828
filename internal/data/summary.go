package data

import "github.com/shopspring/decimal"

// Summary is the aggregate envelope returned by the list endpoint.
type Summary struct {
	TotalMovies     int      `json:"totalMovies"`
	AverageDuration float64  `json:"averageDuration"`
	Movies          []*Movie `json:"movies"`
}

// Summarize counts movies and averages their durations. Movies without a
// duration count as 0 minutes; the average is rounded to 2 decimal places
// and is 0 for an empty list.
func Summarize(movies []*Movie) Summary {
	if movies == nil {
		movies = []*Movie{}
	}

	summary := Summary{
		TotalMovies: len(movies),
		Movies:      movies,
	}
	if len(movies) == 0 {
		return summary
	}

	total := decimal.Zero
	for _, m := range movies {
		if m.Duration != nil {
			total = total.Add(decimal.NewFromInt32(*m.Duration))
		}
	}

	summary.AverageDuration = total.
		Div(decimal.NewFromInt(int64(len(movies)))).
		Round(2).
		InexactFloat64()
	return summary
}
