package model

// ChannelReport is the full channel intelligence report returned by
// channel analysis. Field names match the model's report schema; the
// computed sections (growthStatistics, trendPrediction, topic percentages,
// sources) are attached after the model response is parsed.
type ChannelReport struct {
	ChannelName       string             `json:"channelName"`
	Stats             *ChannelStats      `json:"stats,omitempty"`
	GrowthTimeline    []GrowthPoint      `json:"growthTimeline"`
	TopicAnalysis     *TopicAnalysis     `json:"topicAnalysis,omitempty"`
	SentimentAnalysis *SentimentAnalysis `json:"sentimentAnalysis,omitempty"`
	Biography         *Biography         `json:"biography,omitempty"`
	Recommendation    *Recommendation    `json:"recommendation,omitempty"`
	GrowthStatistics  *GrowthStatistics  `json:"growthStatistics,omitempty"`
	TrendPrediction   *TrendPrediction   `json:"trendPrediction,omitempty"`
	Sources           []Source           `json:"sources"`
}

// ChannelStats holds the headline channel numbers as the model reports
// them. Free-form display strings ("301M", "~850"), never parsed.
type ChannelStats struct {
	Subscribers string `json:"subscribers"`
	TotalVideos string `json:"totalVideos"`
	Country     string `json:"country"`
	ShortsCount string `json:"shortsCount"`
}

// GrowthPoint is one year of the channel's growth timeline.
type GrowthPoint struct {
	Year        Numeric `json:"year"`
	Subscribers Numeric `json:"subscribers"`
	Videos      Numeric `json:"videos"`
}

// TopicAnalysis describes what the channel publishes about.
type TopicAnalysis struct {
	Timeline          []TopicYear `json:"timeline,omitempty"`
	TopicDistribution []TopicItem `json:"topicDistribution,omitempty"`
	MostFrequentTheme string      `json:"mostFrequentTheme,omitempty"`
}

// TopicYear pairs a year with its dominant topic.
type TopicYear struct {
	Year  string `json:"year"`
	Topic string `json:"topic"`
}

// TopicItem is one slice of the topic distribution. Percentage is computed
// during normalization, not taken from the model.
type TopicItem struct {
	Name       string  `json:"name"`
	Value      Numeric `json:"value"`
	Percentage float64 `json:"percentage"`
}

// SentimentAnalysis summarizes audience sentiment and perceived bias.
type SentimentAnalysis struct {
	PositivePct Numeric `json:"positivePct"`
	NeutralPct  Numeric `json:"neutralPct"`
	NegativePct Numeric `json:"negativePct"`
	BiasScore   Numeric `json:"biasScore"`
	Bias        string  `json:"bias"`
	Reputation  string  `json:"reputation"`
}

// Biography is the narrative section of a channel report.
type Biography struct {
	Summary           string `json:"summary"`
	Origin            string `json:"origin"`
	Evolution         string `json:"evolution"`
	Milestones        string `json:"milestones"`
	AudienceSentiment string `json:"audienceSentiment"`
	BiasReputation    string `json:"biasReputation"`
}

// Recommendation is the follow-or-pass verdict for a channel.
type Recommendation struct {
	Status           string            `json:"status"`
	Reason           string            `json:"reason"`
	CriteriaAnalysis *CriteriaAnalysis `json:"criteriaAnalysis,omitempty"`
}

// CriteriaAnalysis breaks the recommendation down by criterion.
type CriteriaAnalysis struct {
	Quality     string `json:"quality"`
	Consistency string `json:"consistency"`
	Bias        string `json:"bias"`
	Perception  string `json:"perception"`
}

// GrowthStatistics is the computed growth summary. The latest_* fields are
// omitted when the timeline held fewer than two usable points.
type GrowthStatistics struct {
	AvgSubscriberGrowth float64 `json:"avg_subscriber_growth"`
	AvgVideoGrowth      float64 `json:"avg_video_growth"`
	GrowthTrend         string  `json:"growth_trend"`
	LatestSubscribers   *int64  `json:"latest_subscribers,omitempty"`
	LatestVideos        *int64  `json:"latest_videos,omitempty"`
}

// Growth trend labels produced by the statistics layer.
const (
	TrendRapidGrowth      = "rapid_growth"
	TrendSteadyGrowth     = "steady_growth"
	TrendStable           = "stable"
	TrendDeclining        = "declining"
	TrendInsufficientData = "insufficient_data"
)

// TrendPrediction is the least-squares subscriber forecast. Only attached
// to a report when at least three timeline points were usable.
type TrendPrediction struct {
	PredictionAvailable bool    `json:"prediction_available"`
	Slope               float64 `json:"slope"`
	RSquared            float64 `json:"r_squared"`
	TrendStrength       string  `json:"trend_strength"`
	PredictedNextYear   int64   `json:"predicted_next_year"`
}

// Source is one cited web source from search grounding. Lists of sources
// are deduplicated by URI, first occurrence wins.
type Source struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}
