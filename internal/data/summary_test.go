package data

import "testing"

func minutes(n int32) *int32 { return &n }

func TestSummarize(t *testing.T) {
	tests := []struct {
		name      string
		durations []*int32
		wantAvg   float64
	}{
		{"empty", nil, 0},
		{"single", []*int32{minutes(155)}, 155},
		{"exact", []*int32{minutes(100), minutes(120)}, 110},
		{"rounded down", []*int32{minutes(100), minutes(100), minutes(101)}, 100.33},
		{"rounded up", []*int32{minutes(100), minutes(101), minutes(101)}, 100.67},
		{"missing counts as zero", []*int32{minutes(120), nil}, 60},
		{"all missing", []*int32{nil, nil}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var movies []*Movie
			for _, d := range tt.durations {
				movies = append(movies, &Movie{Duration: d})
			}

			got := Summarize(movies)
			if got.TotalMovies != len(tt.durations) {
				t.Errorf("TotalMovies = %d; want %d", got.TotalMovies, len(tt.durations))
			}
			if got.AverageDuration != tt.wantAvg {
				t.Errorf("AverageDuration = %v; want %v", got.AverageDuration, tt.wantAvg)
			}
			if got.Movies == nil {
				t.Error("Movies is nil; want an empty slice so it encodes as []")
			}
		})
	}
}
