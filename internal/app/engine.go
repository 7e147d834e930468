package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"movie-quiz/internal/domain"
)

const (
	DefaultQuestionsAmount    = 10
	DefaultFeedbackDelay      = time.Second
	DefaultFirstQuestionDelay = 100 * time.Millisecond
)

// State is the engine's position in a session.
type State int

const (
	StateIdle State = iota
	StateLoading
	StatePresenting
	StateAnswering
	StateScoring
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StatePresenting:
		return "presenting"
	case StateAnswering:
		return "answering"
	case StateScoring:
		return "scoring"
	case StateFinished:
		return "finished"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// SessionState is the engine-owned progress of the running session.
type SessionState struct {
	Index     int
	Correct   int
	Answering bool
	Epoch     uint64
}

type EngineConfig struct {
	QuestionsAmount    int
	FeedbackDelay      time.Duration
	FirstQuestionDelay time.Duration
	Locale             Locale
	Logger             *log.Logger
}

func (c EngineConfig) withDefaults() EngineConfig {
	if c.QuestionsAmount <= 0 {
		c.QuestionsAmount = DefaultQuestionsAmount
	}
	if c.FeedbackDelay <= 0 {
		c.FeedbackDelay = DefaultFeedbackDelay
	}
	if c.FirstQuestionDelay <= 0 {
		c.FirstQuestionDelay = DefaultFirstQuestionDelay
	}
	if c.Locale.Tag == "" {
		c.Locale = English
	}
	if c.Logger == nil {
		c.Logger = log.Default()
	}
	return c
}

// Engine drives one player's quiz sessions. Start, SubmitAnswer and Restart must
// be called on the scheduler's interaction context; the engine only touches its
// state from there.
type Engine struct {
	questions QuestionSource
	stats     StatisticsRecorder
	decoder   ImageDecoder
	port      PresentationPort
	sched     Scheduler
	cfg       EngineConfig

	ctx             context.Context
	state           State
	session         SessionState
	current         *domain.QuizQuestion
	catalogueLoaded bool
}

func NewEngine(questions QuestionSource, stats StatisticsRecorder, decoder ImageDecoder, port PresentationPort, sched Scheduler, cfg EngineConfig) *Engine {
	return &Engine{
		questions: questions,
		stats:     stats,
		decoder:   decoder,
		port:      port,
		sched:     sched,
		cfg:       cfg.withDefaults(),
		state:     StateIdle,
	}
}

func (e *Engine) State() State { return e.state }

func (e *Engine) Session() SessionState { return e.session }

func (e *Engine) QuestionsAmount() int { return e.cfg.QuestionsAmount }

// Start loads the catalogue and, on success, presents the first question.
// It is a no-op unless the engine is idle.
func (e *Engine) Start(ctx context.Context) {
	if e.state != StateIdle {
		return
	}
	e.ctx = ctx
	e.loadCatalogue()
}

// SubmitAnswer scores the current question. Only one answer per question is
// accepted; the return value reports whether this one was.
func (e *Engine) SubmitAnswer(given bool) bool {
	if e.state != StatePresenting || e.session.Answering || e.current == nil {
		return false
	}
	e.session.Answering = true
	e.state = StateAnswering
	e.port.SetInputEnabled(false)

	isCorrect := given == e.current.CorrectAnswer
	e.state = StateScoring
	if isCorrect {
		e.session.Correct++
	}
	e.port.HighlightFeedback(isCorrect)

	epoch := e.session.Epoch
	e.sched.After(e.cfg.FeedbackDelay, func() { e.afterFeedback(epoch) })
	return true
}

// Restart begins a new session. Aggregated statistics are left alone and any
// result still in flight from the previous session is discarded.
func (e *Engine) Restart() {
	if e.ctx == nil {
		e.ctx = context.Background()
	}
	e.session = SessionState{Epoch: e.session.Epoch + 1}
	e.current = nil
	e.port.SetInputEnabled(true)

	if !e.catalogueLoaded {
		e.loadCatalogue()
		return
	}
	e.state = StateLoading
	e.port.SetLoading(true)
	e.requestQuestion()
}

func (e *Engine) loadCatalogue() {
	e.state = StateLoading
	e.port.SetLoading(true)

	ctx, epoch := e.ctx, e.session.Epoch
	e.sched.Go(func() func() {
		err := e.questions.LoadCatalogue(ctx)
		return func() { e.onCatalogue(epoch, err) }
	})
}

func (e *Engine) onCatalogue(epoch uint64, err error) {
	if e.stale(epoch, "catalogue") {
		return
	}
	if err != nil {
		e.onLoadFailure(err)
		return
	}
	e.catalogueLoaded = true
	e.sched.After(e.cfg.FirstQuestionDelay, func() {
		if e.stale(epoch, "first question") {
			return
		}
		e.port.SetLoading(true)
		e.requestQuestion()
	})
}

func (e *Engine) requestQuestion() {
	e.state = StateLoading
	ctx, epoch := e.ctx, e.session.Epoch
	e.sched.Go(func() func() {
		q, err := e.questions.NextQuestion(ctx)
		return func() { e.onQuestion(epoch, q, err) }
	})
}

func (e *Engine) onQuestion(epoch uint64, q domain.QuizQuestion, err error) {
	if e.stale(epoch, "question") {
		return
	}
	if e.state != StateLoading {
		e.cfg.Logger.Printf("quiz: question arrived in state %s, dropped", e.state)
		return
	}
	if err != nil {
		e.onLoadFailure(err)
		return
	}

	picture, err := e.decoder.Decode(q.Image)
	if err != nil {
		e.onLoadFailure(fmt.Errorf("%w: %w", domain.ErrImageCorrupted, err))
		return
	}

	e.current = &q
	e.state = StatePresenting
	e.port.SetLoading(false)
	e.port.ShowStep(domain.QuizStep{
		Picture:  picture,
		Question: q.Text,
		Number:   fmt.Sprintf("%d/%d", e.session.Index+1, e.cfg.QuestionsAmount),
	})
}

func (e *Engine) afterFeedback(epoch uint64) {
	if e.stale(epoch, "feedback") {
		return
	}
	e.session.Answering = false
	e.current = nil
	e.port.SetInputEnabled(true)

	if e.session.Index == e.cfg.QuestionsAmount-1 {
		e.finalize()
		return
	}
	e.session.Index++
	e.port.SetLoading(true)
	e.requestQuestion()
}

func (e *Engine) finalize() {
	e.state = StateFinished
	ctx, epoch := e.ctx, e.session.Epoch
	correct, total := e.session.Correct, e.cfg.QuestionsAmount
	e.sched.Go(func() func() {
		stats, err := e.stats.Record(ctx, correct, total)
		return func() { e.onRecorded(epoch, correct, total, stats, err) }
	})
}

func (e *Engine) onRecorded(epoch uint64, correct, total int, stats domain.Stats, err error) {
	if e.stale(epoch, "results") {
		return
	}
	locale := e.cfg.Locale
	message := locale.ResultsMessage(correct, total, stats)
	if err != nil {
		e.cfg.Logger.Printf("quiz: record statistics: %v", err)
		e.port.ShowError(locale.ErrorMessage(err))
		message = fmt.Sprintf(locale.ResultLine, correct, total)
	}
	e.port.ShowResult(locale.ResultTitle, message, locale.ResultAction)
}

func (e *Engine) onLoadFailure(err error) {
	e.cfg.Logger.Printf("quiz: load failed in state %s: %v", e.state, err)
	e.port.SetLoading(false)
	e.port.ShowError(e.cfg.Locale.ErrorMessage(err))
}

func (e *Engine) stale(epoch uint64, what string) bool {
	if epoch == e.session.Epoch {
		return false
	}
	e.cfg.Logger.Printf("quiz: stale %s from session %d discarded (current %d)", what, epoch, e.session.Epoch)
	return true
}
