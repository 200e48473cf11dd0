package mocks

import (
	"context"

	"github.com/google/uuid"

	"github.com/recallio/pace-api/internal/ml"
)

// RecordedSample is one captured training observation.
type RecordedSample struct {
	UserID       uuid.UUID
	TopicID      uuid.UUID
	Features     ml.Features
	IntervalDays int
	Score        float64
}

// MockSampleRecorder implements review.SampleRecorder for testing
type MockSampleRecorder struct {
	RecordFn func(ctx context.Context, userID, topicID uuid.UUID, features ml.Features, intervalDays int, score float64) error

	Samples     []RecordedSample
	RecordError error
}

// NewMockSampleRecorder creates a new mock recorder
func NewMockSampleRecorder() *MockSampleRecorder {
	return &MockSampleRecorder{}
}

// Record implements the SampleRecorder interface
func (m *MockSampleRecorder) Record(ctx context.Context, userID, topicID uuid.UUID, features ml.Features, intervalDays int, score float64) error {
	if m.RecordFn != nil {
		return m.RecordFn(ctx, userID, topicID, features, intervalDays, score)
	}
	if m.RecordError != nil {
		return m.RecordError
	}
	m.Samples = append(m.Samples, RecordedSample{
		UserID:       userID,
		TopicID:      topicID,
		Features:     features,
		IntervalDays: intervalDays,
		Score:        score,
	})
	return nil
}
