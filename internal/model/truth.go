package model

// TruthReport is the fact-check report for a single video. VideoTitle and
// CreatorName always carry the oEmbed-verified values, overriding whatever
// the model produced.
type TruthReport struct {
	VideoTitle           string           `json:"videoTitle"`
	CreatorName          string           `json:"creatorName"`
	Language             string           `json:"language,omitempty"`
	DetectedLanguageCode string           `json:"detectedLanguageCode,omitempty"`
	TruthScore           *Numeric         `json:"truthScore,omitempty"`
	SummaryVerdict       string           `json:"summaryVerdict,omitempty"`
	IsFakingFacts        bool             `json:"isFakingFacts"`
	ToneAnalysis         string           `json:"toneAnalysis,omitempty"`
	Claims               []Claim          `json:"claims"`
	ScoreConfidence      *ScoreConfidence `json:"scoreConfidence,omitempty"`
	References           []Source         `json:"references"`
}

// Claim is one factual claim attributed to the video.
type Claim struct {
	Statement string `json:"statement"`
	Status    string `json:"status"`
	Evidence  string `json:"evidence,omitempty"`
	SourceURL string `json:"sourceUrl,omitempty"`
}

// Claim verification statuses the model is instructed to use.
const (
	ClaimVerified   = "Verified"
	ClaimMisleading = "Misleading"
	ClaimFalse      = "False"
	ClaimUnverified = "Unverified"
)

// ScoreConfidence is the normal-approximation confidence interval computed
// for a truth score. All values are on the 0-100 scale, rounded to one
// decimal.
type ScoreConfidence struct {
	Score         float64 `json:"score"`
	LowerBound    float64 `json:"lower_bound"`
	UpperBound    float64 `json:"upper_bound"`
	MarginOfError float64 `json:"margin_of_error"`
}
