package app_test

import (
	"context"
	"errors"
	"sort"
	"time"

	"movie-quiz/internal/app"
	"movie-quiz/internal/domain"
)

// manualScheduler runs work synchronously and queues continuations until
// Drain; timers fire only when the fake clock is advanced.
type manualScheduler struct {
	now    time.Duration
	seq    int
	queue  []func()
	timers []manualTimer
}

type manualTimer struct {
	at  time.Duration
	seq int
	fn  func()
}

func (s *manualScheduler) Go(work func() func()) {
	if cont := work(); cont != nil {
		s.queue = append(s.queue, cont)
	}
}

func (s *manualScheduler) After(d time.Duration, fn func()) {
	s.seq++
	s.timers = append(s.timers, manualTimer{at: s.now + d, seq: s.seq, fn: fn})
}

// Drain runs queued continuations, including ones they queue.
func (s *manualScheduler) Drain() {
	for len(s.queue) > 0 {
		fn := s.queue[0]
		s.queue = s.queue[1:]
		fn()
	}
}

// RunTimers moves the clock forward by d and fires due timers without draining.
func (s *manualScheduler) RunTimers(d time.Duration) {
	target := s.now + d
	for {
		sort.Slice(s.timers, func(i, j int) bool {
			if s.timers[i].at != s.timers[j].at {
				return s.timers[i].at < s.timers[j].at
			}
			return s.timers[i].seq < s.timers[j].seq
		})
		if len(s.timers) == 0 || s.timers[0].at > target {
			break
		}
		t := s.timers[0]
		s.timers = s.timers[1:]
		s.now = t.at
		t.fn()
	}
	s.now = target
}

// Advance drains, then repeatedly fires timers and drains until nothing is due.
func (s *manualScheduler) Advance(d time.Duration) {
	target := s.now + d
	s.Drain()
	for {
		due := false
		for _, t := range s.timers {
			if t.at <= target {
				due = true
				break
			}
		}
		if !due {
			break
		}
		s.RunTimers(target - s.now)
		s.Drain()
	}
	s.now = target
}

type recordingPort struct {
	steps    []domain.QuizStep
	results  []result
	errors   []string
	inputs   []bool
	loading  []bool
	feedback []bool
}

type result struct {
	title, message, action string
}

func (p *recordingPort) ShowStep(step domain.QuizStep) { p.steps = append(p.steps, step) }
func (p *recordingPort) ShowResult(title, message, action string) {
	p.results = append(p.results, result{title, message, action})
}
func (p *recordingPort) SetInputEnabled(enabled bool) { p.inputs = append(p.inputs, enabled) }
func (p *recordingPort) SetLoading(loading bool)      { p.loading = append(p.loading, loading) }
func (p *recordingPort) ShowError(message string)     { p.errors = append(p.errors, message) }
func (p *recordingPort) HighlightFeedback(isCorrect bool) {
	p.feedback = append(p.feedback, isCorrect)
}

func (p *recordingPort) lastLoading() (bool, bool) {
	if len(p.loading) == 0 {
		return false, false
	}
	return p.loading[len(p.loading)-1], true
}

type stubQuestions struct {
	loadErrs  []error
	loadCalls int
	nextCalls int
	next      func(call int) (domain.QuizQuestion, error)
}

func (s *stubQuestions) LoadCatalogue(context.Context) error {
	s.loadCalls++
	if len(s.loadErrs) == 0 {
		return nil
	}
	err := s.loadErrs[0]
	s.loadErrs = s.loadErrs[1:]
	return err
}

func (s *stubQuestions) NextQuestion(context.Context) (domain.QuizQuestion, error) {
	s.nextCalls++
	if s.next == nil {
		return domain.QuizQuestion{Image: []byte("poster"), Text: "Question?", CorrectAnswer: true}, nil
	}
	return s.next(s.nextCalls)
}

type stubDecoder struct{}

func (stubDecoder) Decode(data []byte) (domain.Picture, error) {
	if string(data) == "broken" || len(data) == 0 {
		return domain.Picture{}, errors.New("unknown format")
	}
	return domain.Picture{Data: data, Format: "png", Width: 1, Height: 1}, nil
}

type failingStats struct {
	calls int
}

func (s *failingStats) Record(context.Context, int, int) (domain.Stats, error) {
	s.calls++
	return domain.Stats{}, errors.Join(app.ErrStatistics, errors.New("disk full"))
}

// memoryKV is a minimal KeyValueStore for statistics tests.
type memoryKV struct {
	values  map[string]string
	failGet error
	failSet error
}

func newMemoryKV() *memoryKV { return &memoryKV{values: map[string]string{}} }

func (m *memoryKV) Get(_ context.Context, key string) (string, bool, error) {
	if m.failGet != nil {
		return "", false, m.failGet
	}
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memoryKV) SetMany(_ context.Context, values map[string]string) error {
	if m.failSet != nil {
		return m.failSet
	}
	for k, v := range values {
		m.values[k] = v
	}
	return nil
}
