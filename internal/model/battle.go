package model

import "encoding/json"

// BattleResult is the response for a multi-channel battle: the per-channel
// reports, the synthesis scores and verdict, and the computed score
// statistics.
type BattleResult struct {
	Channels   []*ChannelReport  `json:"channels"`
	Scores     []BattleScore     `json:"scores"`
	Verdict    *BattleVerdict    `json:"verdict"`
	Statistics *BattleStatistics `json:"statistics"`
}

// BattleScore holds one channel's five 0-100 metrics from the synthesis
// call.
type BattleScore struct {
	ChannelName string  `json:"channelName"`
	Quality     Numeric `json:"quality"`
	Consistency Numeric `json:"consistency"`
	Trust       Numeric `json:"trust"`
	Variety     Numeric `json:"variety"`
	Overall     Numeric `json:"overall"`
}

// BattleVerdict names the winner and explains the call.
type BattleVerdict struct {
	Winner    string `json:"winner"`
	Reasoning string `json:"reasoning"`
	Narrative string `json:"narrative"`
}

// BattleStatistics summarizes the spread of the overall scores. When fewer
// than two scores were available only Analysis is set and the encoding is
// the bare insufficient-data marker.
type BattleStatistics struct {
	Analysis         string
	MeanScore        float64
	StdDev           float64
	ScoreRange       float64
	CloseCompetition bool
	DecisiveWinner   bool
	ScoreDifference  float64
}

func (s BattleStatistics) MarshalJSON() ([]byte, error) {
	if s.Analysis != "" {
		return json.Marshal(struct {
			Analysis string `json:"statistical_analysis"`
		}{s.Analysis})
	}
	return json.Marshal(struct {
		MeanScore        float64 `json:"mean_score"`
		StdDev           float64 `json:"std_dev"`
		ScoreRange       float64 `json:"score_range"`
		CloseCompetition bool    `json:"close_competition"`
		DecisiveWinner   bool    `json:"decisive_winner"`
		ScoreDifference  float64 `json:"score_difference"`
	}{s.MeanScore, s.StdDev, s.ScoreRange, s.CloseCompetition, s.DecisiveWinner, s.ScoreDifference})
}
