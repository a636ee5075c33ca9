// Package stats provides the small set of descriptive statistics the
// feedback evaluators apply to a user's recent history.
//
// Series are slices of *float64: a nil element is a missing measurement and
// is excluded from every aggregate rather than treated as zero.
package stats

import (
	"math"
	"time"
)

// Dated is anything that belongs to a calendar day.
type Dated interface {
	Day() time.Time
}

// Direction is the outcome of Trend.
type Direction string

const (
	Increasing Direction = "increasing"
	Decreasing Direction = "decreasing"
	Stable     Direction = "stable"
)

// DefaultTrendThreshold is the relative change Trend needs to leave Stable.
const DefaultTrendThreshold = 0.05

// F returns a pointer to v, for building series by hand.
func F(v float64) *float64 { return &v }

// Present returns the non-missing, non-NaN values of a series.
func Present(values []*float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if v != nil && !math.IsNaN(*v) {
			out = append(out, *v)
		}
	}
	return out
}

// Values extracts a series from entries.
func Values[T any](entries []T, get func(T) *float64) []*float64 {
	out := make([]*float64, len(entries))
	for i, e := range entries {
		out[i] = get(e)
	}
	return out
}

func mean(vs []float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vs {
		sum += v
	}
	return sum / float64(len(vs))
}

// Average is the mean of the present values, or 0 when there are none.
func Average(values []*float64) float64 {
	return mean(Present(values))
}

// StandardDeviation is the population standard deviation of the present
// values. Fewer than two values yield 0.
func StandardDeviation(values []*float64) float64 {
	vs := Present(values)
	if len(vs) < 2 {
		return 0
	}
	avg := mean(vs)
	var sq float64
	for _, v := range vs {
		sq += (v - avg) * (v - avg)
	}
	return math.Sqrt(sq / float64(len(vs)))
}

// WeekdayAverage averages get(entry) over entries dated Monday to Friday.
func WeekdayAverage[T Dated](entries []T, get func(T) *float64) float64 {
	var vs []*float64
	for _, e := range entries {
		if !IsWeekend(e.Day()) {
			vs = append(vs, get(e))
		}
	}
	return Average(vs)
}

// WeekendAverage averages get(entry) over entries dated Saturday or Sunday.
func WeekendAverage[T Dated](entries []T, get func(T) *float64) float64 {
	var vs []*float64
	for _, e := range entries {
		if IsWeekend(e.Day()) {
			vs = append(vs, get(e))
		}
	}
	return Average(vs)
}

// Trend compares the mean of the second half of a chronological series with
// the first half. A zero first half is Increasing when the second half is
// positive.
func Trend(values []*float64, threshold float64) Direction {
	vs := Present(values)
	if len(vs) < 2 {
		return Stable
	}
	mid := len(vs) / 2
	first, second := mean(vs[:mid]), mean(vs[mid:])
	if first == 0 {
		if second > 0 {
			return Increasing
		}
		return Stable
	}
	change := (second - first) / math.Abs(first)
	switch {
	case change > threshold:
		return Increasing
	case change < -threshold:
		return Decreasing
	default:
		return Stable
	}
}

// PercentageChange is (current-previous)/|previous| as a fraction. A zero
// previous value counts a positive current as +100%.
func PercentageChange(current, previous float64) float64 {
	if previous == 0 {
		if current > 0 {
			return 1
		}
		return 0
	}
	return (current - previous) / math.Abs(previous)
}

// Streak counts leading entries that satisfy pred, stopping at the first
// failure. Pass entries newest-first to get the current run.
func Streak[T any](entries []T, pred func(T) bool) int {
	n := 0
	for _, e := range entries {
		if !pred(e) {
			break
		}
		n++
	}
	return n
}

// CountMeeting counts entries satisfying pred.
func CountMeeting[T any](entries []T, pred func(T) bool) int {
	n := 0
	for _, e := range entries {
		if pred(e) {
			n++
		}
	}
	return n
}

// GoalCompletionRate is the fraction of entries with a positive goal whose
// value reached it. A missing value never reaches the goal.
func GoalCompletionRate[T any](entries []T, goal, value func(T) *float64) float64 {
	var total, done int
	for _, e := range entries {
		g := goal(e)
		if g == nil || *g <= 0 {
			continue
		}
		total++
		if v := value(e); v != nil && *v >= *g {
			done++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(done) / float64(total)
}

// Correlation is the Pearson coefficient over index-aligned pairs where both
// values are present. Series of different lengths, fewer than three pairs, or
// a zero variance yield 0.
func Correlation(a, b []*float64) float64 {
	if len(a) != len(b) || len(a) < 3 {
		return 0
	}
	var xs, ys []float64
	for i := range a {
		if a[i] == nil || b[i] == nil || math.IsNaN(*a[i]) || math.IsNaN(*b[i]) {
			continue
		}
		xs = append(xs, *a[i])
		ys = append(ys, *b[i])
	}
	if len(xs) < 3 {
		return 0
	}
	mx, my := mean(xs), mean(ys)
	var num, dx2, dy2 float64
	for i := range xs {
		dx, dy := xs[i]-mx, ys[i]-my
		num += dx * dy
		dx2 += dx * dx
		dy2 += dy * dy
	}
	den := math.Sqrt(dx2 * dy2)
	if den == 0 {
		return 0
	}
	return num / den
}

// WeekComparison is the result of WeekOverWeek.
type WeekComparison struct {
	ThisWeek         float64 `json:"this_week"`
	LastWeek         float64 `json:"last_week"`
	Change           float64 `json:"change"`
	PercentageChange float64 `json:"percentage_change"`
	ThisWeekSamples  int     `json:"this_week_samples"`
	LastWeekSamples  int     `json:"last_week_samples"`
}

// Both reports whether each week had at least one present value.
func (c WeekComparison) Both() bool {
	return c.ThisWeekSamples > 0 && c.LastWeekSamples > 0
}

// WeekOverWeek compares the mean of get over entries dated in [now-7d, now]
// against [now-14d, now-7d).
func WeekOverWeek[T Dated](entries []T, get func(T) *float64, now time.Time) WeekComparison {
	oneWeekAgo := now.AddDate(0, 0, -7)
	twoWeeksAgo := now.AddDate(0, 0, -14)

	var this, last []*float64
	for _, e := range entries {
		d := e.Day()
		switch {
		case !d.Before(oneWeekAgo) && !d.After(now):
			this = append(this, get(e))
		case !d.Before(twoWeeksAgo) && d.Before(oneWeekAgo):
			last = append(last, get(e))
		}
	}
	thisVals, lastVals := Present(this), Present(last)
	thisAvg, lastAvg := mean(thisVals), mean(lastVals)
	return WeekComparison{
		ThisWeek:         thisAvg,
		LastWeek:         lastAvg,
		Change:           thisAvg - lastAvg,
		PercentageChange: PercentageChange(thisAvg, lastAvg),
		ThisWeekSamples:  len(thisVals),
		LastWeekSamples:  len(lastVals),
	}
}

// WithinLastNDays keeps entries dated on or after the start of the day n days
// before now. Order is preserved.
func WithinLastNDays[T Dated](entries []T, n int, now time.Time) []T {
	cutoff := StartOfDay(now).AddDate(0, 0, -n)
	out := make([]T, 0, len(entries))
	for _, e := range entries {
		if !e.Day().Before(cutoff) {
			out = append(out, e)
		}
	}
	return out
}
