package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"movie-quiz/internal/domain"
)

// Persisted statistics keys.
const (
	KeyGamesCount   = "gamesCount"
	KeyBestCorrect  = "bestGame.correct"
	KeyBestTotal    = "bestGame.total"
	KeyBestDate     = "bestGame.date"
	KeyTotalCorrect = "totalCorrect"
	KeyTotalAmount  = "totalAmount"
)

// ErrStatistics wraps every failure of the statistics store.
var ErrStatistics = errors.New("statistics store")

// StatisticsStore keeps cross-session aggregates in a KeyValueStore.
type StatisticsStore struct {
	kv        KeyValueStore
	namespace string
	now       func() time.Time

	// serializes read-modify-write in Record
	mu sync.Mutex
}

type StatisticsOption func(*StatisticsStore)

// WithNamespace prefixes every key with "<ns>:", giving each namespace its own aggregate.
func WithNamespace(ns string) StatisticsOption {
	return func(s *StatisticsStore) { s.namespace = ns }
}

// WithClock is used by tests for deterministic best-game dates.
func WithClock(now func() time.Time) StatisticsOption {
	return func(s *StatisticsStore) { s.now = now }
}

func NewStatisticsStore(kv KeyValueStore, opts ...StatisticsOption) *StatisticsStore {
	s := &StatisticsStore{kv: kv, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Record adds one finished game to the aggregate and returns the new aggregate.
func (s *StatisticsStore) Record(ctx context.Context, correct, total int) (domain.Stats, error) {
	if correct < 0 || total < 0 || correct > total {
		return domain.Stats{}, fmt.Errorf("%w: invalid result %d/%d", ErrStatistics, correct, total)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stats, err := s.read(ctx)
	if err != nil {
		return domain.Stats{}, err
	}

	stats.GamesCount++
	stats.TotalCorrect += correct
	stats.TotalAmount += total
	result := domain.GameResult{Correct: correct, Total: total, Date: s.now().UTC()}
	if stats.GamesCount == 1 || result.IsBetterThan(stats.BestGame) {
		stats.BestGame = result
	}

	values := map[string]string{
		s.key(KeyGamesCount):   strconv.Itoa(stats.GamesCount),
		s.key(KeyBestCorrect):  strconv.Itoa(stats.BestGame.Correct),
		s.key(KeyBestTotal):    strconv.Itoa(stats.BestGame.Total),
		s.key(KeyBestDate):     stats.BestGame.Date.UTC().Format(time.RFC3339Nano),
		s.key(KeyTotalCorrect): strconv.Itoa(stats.TotalCorrect),
		s.key(KeyTotalAmount):  strconv.Itoa(stats.TotalAmount),
	}
	if err := s.kv.SetMany(ctx, values); err != nil {
		return domain.Stats{}, fmt.Errorf("%w: write: %w", ErrStatistics, err)
	}
	return stats, nil
}

// Snapshot reads the current aggregate. Missing keys read as zero values.
func (s *StatisticsStore) Snapshot(ctx context.Context) (domain.Stats, error) {
	return s.read(ctx)
}

func (s *StatisticsStore) BestGame(ctx context.Context) (domain.GameResult, error) {
	stats, err := s.read(ctx)
	return stats.BestGame, err
}

func (s *StatisticsStore) GamesCount(ctx context.Context) (int, error) {
	stats, err := s.read(ctx)
	return stats.GamesCount, err
}

func (s *StatisticsStore) TotalAccuracy(ctx context.Context) (float64, error) {
	stats, err := s.read(ctx)
	return stats.Accuracy(), err
}

func (s *StatisticsStore) read(ctx context.Context) (domain.Stats, error) {
	stats := domain.Stats{BestGame: domain.GameResult{Date: time.Unix(0, 0).UTC()}}

	ints := []struct {
		key string
		dst *int
	}{
		{KeyGamesCount, &stats.GamesCount},
		{KeyBestCorrect, &stats.BestGame.Correct},
		{KeyBestTotal, &stats.BestGame.Total},
		{KeyTotalCorrect, &stats.TotalCorrect},
		{KeyTotalAmount, &stats.TotalAmount},
	}
	for _, f := range ints {
		raw, ok, err := s.kv.Get(ctx, s.key(f.key))
		if err != nil {
			return domain.Stats{}, fmt.Errorf("%w: read %s: %w", ErrStatistics, f.key, err)
		}
		if !ok || raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return domain.Stats{}, fmt.Errorf("%w: parse %s: %w", ErrStatistics, f.key, err)
		}
		*f.dst = v
	}

	raw, ok, err := s.kv.Get(ctx, s.key(KeyBestDate))
	if err != nil {
		return domain.Stats{}, fmt.Errorf("%w: read %s: %w", ErrStatistics, KeyBestDate, err)
	}
	if ok && raw != "" {
		date, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return domain.Stats{}, fmt.Errorf("%w: parse %s: %w", ErrStatistics, KeyBestDate, err)
		}
		stats.BestGame.Date = date
	}
	return stats, nil
}

func (s *StatisticsStore) key(name string) string {
	if s.namespace == "" {
		return name
	}
	return s.namespace + ":" + name
}
