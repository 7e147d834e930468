package app

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"time"

	"movie-quiz/internal/domain"
)

const (
	minThreshold = 5.0
	maxThreshold = 10.0
)

// Rand is the randomness a factory draws from. *rand.Rand satisfies it.
type Rand interface {
	Shuffle(n int, swap func(i, j int))
	Float64() float64
	Intn(n int) int
}

// QuestionFactory owns the catalogue and the shuffled working pool and turns
// one movie into one question per request.
type QuestionFactory struct {
	source DataSource
	images ImageLoader
	locale Locale

	mu        sync.Mutex
	rnd       Rand
	catalogue []domain.Movie
	pool      []domain.Movie
}

type FactoryOption func(*QuestionFactory)

// WithRand replaces the factory's random source.
func WithRand(r Rand) FactoryOption {
	return func(f *QuestionFactory) { f.rnd = r }
}

func WithLocale(l Locale) FactoryOption {
	return func(f *QuestionFactory) { f.locale = l }
}

func NewQuestionFactory(source DataSource, images ImageLoader, opts ...FactoryOption) *QuestionFactory {
	f := &QuestionFactory{
		source: source,
		images: images,
		locale: English,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// LoadCatalogue fetches the catalogue and builds a fresh working pool.
// Source errors are returned unchanged.
func (f *QuestionFactory) LoadCatalogue(ctx context.Context) error {
	catalogue, err := f.source.FetchCatalogue(ctx)
	if err != nil {
		return err
	}
	if len(catalogue.Items) == 0 {
		return &domain.DataError{Kind: domain.DataErrorNoData, Message: "empty catalogue"}
	}

	items := make([]domain.Movie, len(catalogue.Items))
	copy(items, catalogue.Items)

	f.mu.Lock()
	f.catalogue = items
	f.pool = f.shuffledLocked()
	f.mu.Unlock()
	return nil
}

// CatalogueSize is the number of movies loaded, 0 before LoadCatalogue succeeds.
func (f *QuestionFactory) CatalogueSize() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.catalogue)
}

// NextQuestion draws the next movie and generates a question for it.
func (f *QuestionFactory) NextQuestion(ctx context.Context) (domain.QuizQuestion, error) {
	movie, err := f.pop()
	if err != nil {
		return domain.QuizQuestion{}, err
	}

	image, err := f.images.LoadImage(ctx, movie.ImageURL)
	if err != nil {
		return domain.QuizQuestion{}, fmt.Errorf("%w: %s: %w", domain.ErrImageCorrupted, movie.ID, err)
	}
	if len(image) == 0 {
		return domain.QuizQuestion{}, fmt.Errorf("%w: %s: empty payload", domain.ErrImageCorrupted, movie.ID)
	}

	rating, err := parseRating(movie.Rating)
	if err != nil {
		return domain.QuizQuestion{}, fmt.Errorf("%w: %s: %v", domain.ErrMissingRating, movie.ID, err)
	}

	threshold, cmp := f.draw()
	return domain.QuizQuestion{
		Image:         image,
		Text:          f.locale.QuestionText(cmp, threshold),
		CorrectAnswer: cmp.Apply(rating, threshold),
	}, nil
}

func (f *QuestionFactory) pop() (domain.Movie, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.catalogue) == 0 {
		return domain.Movie{}, domain.ErrCatalogueNotLoaded
	}
	if len(f.pool) == 0 {
		f.pool = f.shuffledLocked()
	}
	movie := f.pool[0]
	f.pool = f.pool[1:]
	return movie, nil
}

func (f *QuestionFactory) shuffledLocked() []domain.Movie {
	pool := make([]domain.Movie, len(f.catalogue))
	copy(pool, f.catalogue)
	f.rnd.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	return pool
}

func (f *QuestionFactory) draw() (float64, Comparator) {
	f.mu.Lock()
	defer f.mu.Unlock()
	threshold := minThreshold + f.rnd.Float64()*(maxThreshold-minThreshold)
	cmp := Greater
	if f.rnd.Intn(2) == 1 {
		cmp = Less
	}
	return threshold, cmp
}

func parseRating(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("empty rating")
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("rating %q is not finite", raw)
	}
	return v, nil
}
