// Package stats implements the report post-processing math: growth-rate
// summaries, least-squares trend prediction, confidence intervals, battle
// score significance, and topic share normalization. Everything here is
// pure and deterministic; callers own all I/O.
package stats

import (
	"math"
	"sort"

	"github.com/9mit/Youtube-Intelligence/internal/model"
)

// Thresholds holds the product heuristics behind trend labels and battle
// verdicts. They are tuning knobs, not statistical claims.
type Thresholds struct {
	// Average subscriber growth boundaries, in percent. Comparisons are
	// strictly greater-than, so an average of exactly RapidGrowthPct
	// classifies one bucket down.
	RapidGrowthPct  float64
	SteadyGrowthPct float64
	StablePct       float64

	// R-squared boundaries for trend strength labels.
	StrongR2   float64
	ModerateR2 float64

	// Battles: competition is close when the score standard deviation is
	// below CloseStdDev, and the winner is decisive when the lead over
	// the runner-up exceeds DecisiveStdDevs standard deviations.
	CloseStdDev     float64
	DecisiveStdDevs float64
}

// DefaultThresholds returns the stock heuristics.
func DefaultThresholds() Thresholds {
	return Thresholds{
		RapidGrowthPct:  10,
		SteadyGrowthPct: 0,
		StablePct:       -5,
		StrongR2:        0.7,
		ModerateR2:      0.4,
		CloseStdDev:     10,
		DecisiveStdDevs: 1,
	}
}

// Confidence interval defaults used by the truth score.
const (
	DefaultSampleSize = 100
	DefaultConfidence = 0.95
)

const insufficientData = "insufficient_data"

// GrowthStatistics summarizes year-over-year growth for a timeline.
// Rows with a missing year, subscriber, or video count are dropped and
// the rest sorted by year before computing. Fewer than two usable rows
// yields the insufficient_data trend with zero averages and no latest
// counts.
func GrowthStatistics(points []model.GrowthPoint, th Thresholds) model.GrowthStatistics {
	rows := usableRows(points)
	if len(rows) < 2 {
		return model.GrowthStatistics{GrowthTrend: model.TrendInsufficientData}
	}

	subs := make([]float64, len(rows))
	vids := make([]float64, len(rows))
	for i, r := range rows {
		subs[i] = r.Subscribers.Float64()
		vids[i] = r.Videos.Float64()
	}

	avgSub := meanPctChange(subs)
	avgVid := meanPctChange(vids)

	var trend string
	switch {
	case avgSub > th.RapidGrowthPct:
		trend = model.TrendRapidGrowth
	case avgSub > th.SteadyGrowthPct:
		trend = model.TrendSteadyGrowth
	case avgSub > th.StablePct:
		trend = model.TrendStable
	default:
		trend = model.TrendDeclining
	}

	latestSubs := int64(subs[len(subs)-1])
	latestVids := int64(vids[len(vids)-1])

	return model.GrowthStatistics{
		AvgSubscriberGrowth: round2(avgSub),
		AvgVideoGrowth:      round2(avgVid),
		GrowthTrend:         trend,
		LatestSubscribers:   &latestSubs,
		LatestVideos:        &latestVids,
	}
}

// TrendPrediction fits an ordinary least-squares line over row index vs
// subscriber count and forecasts the next period. The fit is per period,
// not per calendar year; gaps in the timeline do not stretch the x axis.
// Returns nil when fewer than three usable rows exist.
func TrendPrediction(points []model.GrowthPoint, th Thresholds) *model.TrendPrediction {
	rows := usableRows(points)
	if len(rows) < 3 {
		return nil
	}

	n := float64(len(rows))
	var sumX, sumY, sumXY, sumXX float64
	for i, r := range rows {
		x, y := float64(i), r.Subscribers.Float64()
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}

	slope := (n*sumXY - sumX*sumY) / (n*sumXX - sumX*sumX)
	intercept := (sumY - slope*sumX) / n

	meanY := sumY / n
	var ssRes, ssTot float64
	for i, r := range rows {
		y := r.Subscribers.Float64()
		fit := slope*float64(i) + intercept
		ssRes += (y - fit) * (y - fit)
		ssTot += (y - meanY) * (y - meanY)
	}
	rSquared := 0.0
	if ssTot > 0 {
		rSquared = 1 - ssRes/ssTot
	}

	var strength string
	switch {
	case rSquared > th.StrongR2:
		strength = "strong"
	case rSquared > th.ModerateR2:
		strength = "moderate"
	default:
		strength = "weak"
	}

	return &model.TrendPrediction{
		PredictionAvailable: true,
		Slope:               slope,
		RSquared:            rSquared,
		TrendStrength:       strength,
		PredictedNextYear:   int64(slope*n + intercept),
	}
}

// ConfidenceInterval computes a normal-approximation interval for a
// 0-100 score. The z value is 1.96 at 0.95 confidence, 2.576 at 0.99,
// and 1.645 otherwise. Bounds are clamped to [0, 100] and everything is
// reported to one decimal place.
func ConfidenceInterval(score float64, sampleSize int, confidence float64) model.ScoreConfidence {
	if sampleSize < 1 {
		sampleSize = 1
	}
	p := score / 100
	if p < 0 {
		p = 0
	} else if p > 1 {
		p = 1
	}

	se := math.Sqrt(p * (1 - p) / float64(sampleSize))

	var z float64
	switch confidence {
	case 0.95:
		z = 1.96
	case 0.99:
		z = 2.576
	default:
		z = 1.645
	}

	margin := z * se * 100
	lower := math.Max(0, score-margin)
	upper := math.Min(100, score+margin)

	return model.ScoreConfidence{
		Score:         round1(score),
		LowerBound:    round1(lower),
		UpperBound:    round1(upper),
		MarginOfError: round1(margin),
	}
}

// BattleStatistics computes significance measures over the overall
// scores of a battle. Non-finite scores are ignored; fewer than two
// usable scores yields the insufficient_data marker. The standard
// deviation is the sample one (n-1 divisor), and the winner is decisive
// when the gap to the runner-up exceeds DecisiveStdDevs standard
// deviations. Duplicate top scores make the gap zero, never decisive.
func BattleStatistics(overall []float64, th Thresholds) model.BattleStatistics {
	scores := make([]float64, 0, len(overall))
	for _, v := range overall {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			scores = append(scores, v)
		}
	}
	if len(scores) < 2 {
		return model.BattleStatistics{Analysis: insufficientData}
	}

	var sum float64
	for _, v := range scores {
		sum += v
	}
	mean := sum / float64(len(scores))

	var ss float64
	for _, v := range scores {
		ss += (v - mean) * (v - mean)
	}
	std := math.Sqrt(ss / float64(len(scores)-1))

	sorted := make([]float64, len(scores))
	copy(sorted, scores)
	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))

	diff := sorted[0] - sorted[1]

	return model.BattleStatistics{
		MeanScore:        mean,
		StdDev:           std,
		ScoreRange:       sorted[0] - sorted[len(sorted)-1],
		CloseCompetition: std < th.CloseStdDev,
		DecisiveWinner:   diff > th.DecisiveStdDevs*std,
		ScoreDifference:  diff,
	}
}

// NormalizeTopics recomputes each topic's percentage share of the total
// and sorts by raw value, largest first. Items with no usable value get
// a zero percentage and sort last. The input slice is not modified.
func NormalizeTopics(items []model.TopicItem) []model.TopicItem {
	if len(items) == 0 {
		return nil
	}

	out := make([]model.TopicItem, len(items))
	copy(out, items)

	var total float64
	for _, it := range out {
		if it.Value.Valid() {
			total += it.Value.Float64()
		}
	}

	for i := range out {
		if total > 0 && out[i].Value.Valid() {
			out[i].Percentage = round2(out[i].Value.Float64() / total * 100)
		} else {
			out[i].Percentage = 0
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Value.Valid() {
			return false
		}
		if !out[j].Value.Valid() {
			return true
		}
		return out[i].Value.Float64() > out[j].Value.Float64()
	})

	return out
}

// usableRows drops timeline rows missing any of year, subscribers, or
// videos, and sorts the rest by year ascending.
func usableRows(points []model.GrowthPoint) []model.GrowthPoint {
	rows := make([]model.GrowthPoint, 0, len(points))
	for _, p := range points {
		if p.Year.Valid() && p.Subscribers.Valid() && p.Videos.Valid() {
			rows = append(rows, p)
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Year.Float64() < rows[j].Year.Float64()
	})
	return rows
}

// meanPctChange averages the period-over-period percent changes of a
// series, skipping changes where the previous value is zero.
func meanPctChange(vals []float64) float64 {
	var sum float64
	var n int
	for i := 1; i < len(vals); i++ {
		prev := vals[i-1]
		if prev == 0 {
			continue
		}
		change := (vals[i] - prev) / prev * 100
		if math.IsNaN(change) || math.IsInf(change, 0) {
			continue
		}
		sum += change
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func round1(v float64) float64 { return math.Round(v*10) / 10 }
