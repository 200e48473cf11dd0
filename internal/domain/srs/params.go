package srs

// Score thresholds for the performance buckets. A review below PassScore
// counts as a lapse and resets the repetition streak.
const (
	ExcellentScore = 90.0
	GoodScore      = 80.0
	PassScore      = 60.0
	PoorScore      = 40.0
)

// Params defines the tunable knobs of the deterministic interval baseline.
type Params struct {
	// Interval multipliers per performance bucket.
	ExcellentMultiplier float64
	GoodMultiplier      float64
	FairMultiplier      float64
	PoorMultiplier      float64
	FailMultiplier      float64

	// Ease factor deltas per performance bucket. There is no upper ease
	// bound: an excellent streak keeps growing the factor.
	ExcellentEaseDelta float64
	FairEaseDelta      float64
	FailEaseDelta      float64

	// Fixed intervals for the first and second successful reviews.
	FirstInterval  int
	SecondInterval int

	// Confidence ramp: base plus step per recorded review, capped.
	ConfidenceBase float64
	ConfidenceStep float64
	ConfidenceCap  float64
}

// DefaultParams returns the standard SM-2 style parameter set.
func DefaultParams() *Params {
	return &Params{
		ExcellentMultiplier: 1.5,
		GoodMultiplier:      1.2,
		FairMultiplier:      1.0,
		PoorMultiplier:      0.7,
		FailMultiplier:      0.5,

		ExcellentEaseDelta: 0.1,
		FairEaseDelta:      -0.1,
		FailEaseDelta:      -0.2,

		FirstInterval:  1,
		SecondInterval: 6,

		ConfidenceBase: 0.5,
		ConfidenceStep: 0.05,
		ConfidenceCap:  0.95,
	}
}
