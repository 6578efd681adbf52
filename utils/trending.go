package utils

import (
	"math"
)

// =============================================================================
// Trend Score Utilities
// =============================================================================

// LogScore log-scales a vote score so early votes dominate the curve.
// Non-positive vote scores contribute nothing.
func LogScore(voteScore int) float64 {
	if voteScore <= 0 {
		return 0
	}
	return math.Log(float64(voteScore) + 1)
}

// TimeDecay calculates a decay multiplier based on article age.
// Decay is bounded to [minDecay, 1.0] with halfLife hours as the
// softening constant: 12h old halves the multiplier, and very old
// articles keep a floor instead of vanishing entirely.
func TimeDecay(hoursSincePublish, halfLife, minDecay float64) float64 {
	if hoursSincePublish < 0 {
		hoursSincePublish = 0
	}
	decay := 1.0 / (1.0 + hoursSincePublish/halfLife)
	return math.Max(minDecay, decay)
}

// TrendScore combines the log-scaled vote score with an upvote bonus,
// both damped by time decay.
func TrendScore(voteScore, upvotes int, decay, upvoteWeight float64) float64 {
	return LogScore(voteScore)*decay + float64(upvotes)*upvoteWeight*decay
}

// IsTrending reports whether a score crosses the trending threshold.
// Articles at or below zero vote score are never trending.
func IsTrending(trendScore float64, voteScore int, threshold float64) bool {
	return trendScore > threshold && voteScore > 0
}
