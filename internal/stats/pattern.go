package stats

import (
	"math"
	"time"
)

// PatternOptions tunes DetectDayOfWeekPattern.
type PatternOptions struct {
	Threshold      float64
	MinOccurrences int
}

// DefaultPatternOptions matches the thresholds used across the evaluators.
var DefaultPatternOptions = PatternOptions{Threshold: 0.3, MinOccurrences: 3}

// DayPattern is one weekday that deviates from the overall mean.
type DayPattern struct {
	Weekday     time.Weekday `json:"weekday"`
	Average     float64      `json:"average"`
	Deviation   float64      `json:"deviation"`
	Occurrences int          `json:"occurrences"`
	IsHigher    bool         `json:"is_higher"`
}

// PatternResult is the outcome of DetectDayOfWeekPattern.
type PatternResult struct {
	Detected       bool         `json:"detected"`
	Patterns       []DayPattern `json:"patterns"`
	OverallAverage float64      `json:"overall_average"`
}

// Find returns the pattern for a weekday, if any.
func (r PatternResult) Find(day time.Weekday) (DayPattern, bool) {
	for _, p := range r.Patterns {
		if p.Weekday == day {
			return p, true
		}
	}
	return DayPattern{}, false
}

// DetectDayOfWeekPattern groups values by weekday and reports the weekdays
// with at least MinOccurrences samples whose mean deviates from the overall
// mean by more than Threshold (relative). Patterns are ordered Sunday first.
func DetectDayOfWeekPattern[T Dated](entries []T, get func(T) *float64, opts PatternOptions) PatternResult {
	if len(entries) < opts.MinOccurrences {
		return PatternResult{}
	}

	var byDay [7][]float64
	var all []float64
	for _, e := range entries {
		v := get(e)
		if v == nil || math.IsNaN(*v) {
			continue
		}
		wd := e.Day().Weekday()
		byDay[wd] = append(byDay[wd], *v)
		all = append(all, *v)
	}

	overall := mean(all)
	base := overall
	if base == 0 {
		base = 1
	}

	res := PatternResult{OverallAverage: overall}
	for wd, vs := range byDay {
		if len(vs) < opts.MinOccurrences {
			continue
		}
		avg := mean(vs)
		dev := (avg - overall) / base
		if math.Abs(dev) > opts.Threshold {
			res.Patterns = append(res.Patterns, DayPattern{
				Weekday:     time.Weekday(wd),
				Average:     avg,
				Deviation:   dev,
				Occurrences: len(vs),
				IsHigher:    dev > 0,
			})
		}
	}
	res.Detected = len(res.Patterns) > 0
	return res
}

// CategoryResult is the outcome of DetectDominantCategory.
type CategoryResult struct {
	Detected bool    `json:"detected"`
	Category string  `json:"category,omitempty"`
	Count    int     `json:"count"`
	Total    int     `json:"total"`
	Share    float64 `json:"share"`
}

// DetectDominantCategory finds the mode of a categorical field and reports it
// when its share of the non-empty samples is at least threshold. Ties go to
// the value seen first.
func DetectDominantCategory[T any](entries []T, get func(T) string, threshold float64) CategoryResult {
	counts := make(map[string]int)
	var order []string
	total := 0
	for _, e := range entries {
		c := get(e)
		if c == "" {
			continue
		}
		if _, seen := counts[c]; !seen {
			order = append(order, c)
		}
		counts[c]++
		total++
	}
	if total == 0 {
		return CategoryResult{}
	}

	var best string
	var bestN int
	for _, c := range order {
		if counts[c] > bestN {
			best, bestN = c, counts[c]
		}
	}
	share := float64(bestN) / float64(total)
	return CategoryResult{
		Detected: share >= threshold,
		Category: best,
		Count:    bestN,
		Total:    total,
		Share:    share,
	}
}
