package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRepetitionState(t *testing.T) {
	t.Parallel()
	now := time.Now().UTC()

	s, err := NewRepetitionState(uuid.New(), uuid.New(), now)
	require.NoError(t, err)

	assert.Zero(t, s.Repetitions)
	assert.Equal(t, InitialEaseFactor, s.EaseFactor)
	assert.Equal(t, MinIntervalDays, s.IntervalDays)
	assert.True(t, s.NextReviewAt.Equal(now), "a fresh topic is due immediately")
	assert.Equal(t, 1.0, s.ForgettingProbability)

	_, err = NewRepetitionState(uuid.Nil, uuid.New(), now)
	assert.ErrorIs(t, err, ErrStateUserIDEmpty)
}

func TestRepetitionStateValidate(t *testing.T) {
	t.Parallel()
	now := time.Now().UTC()

	valid := func() *RepetitionState {
		s, err := NewRepetitionState(uuid.New(), uuid.New(), now)
		require.NoError(t, err)
		return s
	}

	testCases := []struct {
		name     string
		mutate   func(*RepetitionState)
		expected error
	}{
		{"ease below floor", func(s *RepetitionState) { s.EaseFactor = 1.2 }, ErrInvalidEaseFactor},
		{"interval zero", func(s *RepetitionState) { s.IntervalDays = 0 }, ErrInvalidInterval},
		{"interval above cap", func(s *RepetitionState) { s.IntervalDays = 400 }, ErrInvalidInterval},
		{"negative repetitions", func(s *RepetitionState) { s.Repetitions = -1 }, ErrInvalidRepetitions},
		{"forgetting above one", func(s *RepetitionState) { s.ForgettingProbability = 1.5 }, ErrInvalidForgetting},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			s := valid()
			tc.mutate(s)
			assert.ErrorIs(t, s.Validate(), tc.expected)
		})
	}
}

func TestRepetitionStateClone(t *testing.T) {
	t.Parallel()

	s, err := NewRepetitionState(uuid.New(), uuid.New(), time.Now().UTC())
	require.NoError(t, err)
	s.PerformanceHistory = []float64{80, 90}

	dup := s.Clone()
	dup.PerformanceHistory[0] = 10
	dup.Repetitions = 7

	assert.Equal(t, 80.0, s.PerformanceHistory[0])
	assert.Zero(t, s.Repetitions)
}

func TestRecentScores(t *testing.T) {
	t.Parallel()

	s := &RepetitionState{PerformanceHistory: []float64{1, 2, 3, 4, 5}}

	assert.Equal(t, []float64{3, 4, 5}, s.RecentScores(3))
	assert.Equal(t, []float64{1, 2, 3, 4, 5}, s.RecentScores(10))
}

func TestNewReviewRecord(t *testing.T) {
	t.Parallel()
	now := time.Now().UTC()

	r, err := NewReviewRecord(uuid.New(), uuid.New(), 85, DifficultyMedium, 6, 2.5, now)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, r.ID)
	assert.Equal(t, 85.0, r.Score)

	_, err = NewReviewRecord(uuid.New(), uuid.New(), 120, DifficultyMedium, 6, 2.5, now)
	assert.ErrorIs(t, err, ErrInvalidScore)

	_, err = NewReviewRecord(uuid.New(), uuid.New(), 85, "savage", 6, 2.5, now)
	assert.ErrorIs(t, err, ErrInvalidDifficulty)
}
