// Package srs implements the spaced repetition scheduling algorithm:
// the Ebbinghaus memory decay model and the SM-2 style deterministic
// interval baseline. Everything in this package is pure; persistence and
// the learned interval predictor live elsewhere.
package srs

import "math"

// minDifficultyScore floors the topic difficulty used in the memory
// strength denominator so it can never blow up the division.
const minDifficultyScore = 0.1

// MemoryStrength derives the stability S of a memory trace from the review
// state and learner traits. Higher strength means slower forgetting.
//
//	S = (repetitions+1) * easeFactor * memoryCoefficient / difficultyScore
func MemoryStrength(repetitions int, easeFactor, memoryCoefficient, difficultyScore float64) float64 {
	if difficultyScore < minDifficultyScore {
		difficultyScore = minDifficultyScore
	}
	if memoryCoefficient <= 0 {
		memoryCoefficient = 1.0
	}
	return float64(repetitions+1) * easeFactor * memoryCoefficient / difficultyScore
}

// Retention returns the modeled probability of recalling a memory after
// elapsedDays, following the Ebbinghaus forgetting curve R = e^(-t/S).
// Deterministic and side-effect free.
func Retention(elapsedDays, strength float64) float64 {
	if elapsedDays < 0 {
		elapsedDays = 0
	}
	if strength <= 0 {
		return 0
	}
	return math.Exp(-elapsedDays / strength)
}

// ForgettingProbability is the complement of Retention, clamped to [0,1].
func ForgettingProbability(elapsedDays, strength float64) float64 {
	p := 1 - Retention(elapsedDays, strength)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
