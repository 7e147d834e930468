package app

import (
	"context"
	"time"

	"movie-quiz/internal/domain"
)

// DataSource fetches the movie catalogue. Failures are *domain.DataError.
type DataSource interface {
	FetchCatalogue(ctx context.Context) (domain.Catalogue, error)
}

// ImageLoader downloads the raw poster bytes for an image reference.
type ImageLoader interface {
	LoadImage(ctx context.Context, ref string) ([]byte, error)
}

// ImageDecoder turns a raw payload into something a presenter can render.
type ImageDecoder interface {
	Decode(data []byte) (domain.Picture, error)
}

// KeyValueStore is the opaque scalar store behind StatisticsStore.
// SetMany must apply all values or none.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	SetMany(ctx context.Context, values map[string]string) error
}

// QuestionSource is what the engine needs from a question factory.
type QuestionSource interface {
	LoadCatalogue(ctx context.Context) error
	NextQuestion(ctx context.Context) (domain.QuizQuestion, error)
}

// StatisticsRecorder persists a finished session and returns the updated aggregate.
type StatisticsRecorder interface {
	Record(ctx context.Context, correct, total int) (domain.Stats, error)
}

// PresentationPort is implemented by whatever renders the quiz.
// The engine calls it only from the interaction context.
type PresentationPort interface {
	ShowStep(step domain.QuizStep)
	ShowResult(title, message, action string)
	SetInputEnabled(enabled bool)
	SetLoading(loading bool)
	ShowError(message string)
	HighlightFeedback(isCorrect bool)
}

// Scheduler owns the interaction context.
//
// Go runs work elsewhere and then runs the continuation it returns on the
// interaction context. After runs fn on the interaction context once d has elapsed.
type Scheduler interface {
	Go(work func() func())
	After(d time.Duration, fn func())
}
