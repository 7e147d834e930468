package http

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"movie-quiz/internal/app"
	"movie-quiz/internal/domain"
)

// EngineFactory builds the engine for one connection. player is the optional
// ?player= query value and scopes that player's statistics.
type EngineFactory func(port app.PresentationPort, sched app.Scheduler, player string) *app.Engine

// WSHandler plays one single-player quiz per websocket connection.
type WSHandler struct {
	newEngine EngineFactory
	upgrader  websocket.Upgrader
}

func NewWSHandler(newEngine EngineFactory) *WSHandler {
	return &WSHandler{
		newEngine: newEngine,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type answerPayload struct {
	Answer *bool `json:"answer"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

type resultPayload struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Action  string `json:"action"`
}

type feedbackPayload struct {
	Correct bool `json:"correct"`
}

type inputPayload struct {
	Enabled bool `json:"enabled"`
}

type loadingPayload struct {
	Loading bool `json:"loading"`
}

// wsPresenter turns engine callbacks into outbound messages. It is only
// called from the connection's loop goroutine.
type wsPresenter struct {
	send chan<- outboundMessage[any]
	done <-chan struct{}
}

func (p *wsPresenter) emit(typ string, payload any) {
	select {
	case p.send <- outboundMessage[any]{Type: typ, Payload: payload}:
	case <-p.done:
	}
}

func (p *wsPresenter) ShowStep(step domain.QuizStep) { p.emit("step", step) }
func (p *wsPresenter) ShowResult(title, message, action string) {
	p.emit("result", resultPayload{Title: title, Message: message, Action: action})
}
func (p *wsPresenter) SetInputEnabled(enabled bool) { p.emit("input", inputPayload{Enabled: enabled}) }
func (p *wsPresenter) SetLoading(loading bool)      { p.emit("loading", loadingPayload{Loading: loading}) }
func (p *wsPresenter) ShowError(message string)     { p.emit("error", errorPayload{Message: message}) }
func (p *wsPresenter) HighlightFeedback(isCorrect bool) {
	p.emit("feedback", feedbackPayload{Correct: isCorrect})
}

// ServeWS upgrades HTTP requests to websockets and runs a quiz engine for the connection.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	player := r.URL.Query().Get("player")
	connID := uuid.NewString()

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()
	log.Printf("ws %s: connected player=%q", connID, player)

	send := make(chan outboundMessage[any], 32)
	closeSignals := make(chan struct{})
	writerDone := make(chan struct{})
	loopDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("ws %s: write error: %v", connID, err)
				// keep draining so the loop never blocks on a dead socket
				for range send {
				}
				return
			}
		}
	}()

	ctx, cancel := context.WithCancel(r.Context())
	loop := app.NewLoop(32)
	presenter := &wsPresenter{send: send, done: closeSignals}
	engine := h.newEngine(presenter, loop, player)
	go func() {
		defer close(loopDone)
		_ = loop.Run(ctx)
	}()
	loop.Post(func() { engine.Start(ctx) })

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		switch inbound.Type {
		case "answer":
			var payload answerPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil || payload.Answer == nil {
				loop.Post(func() { presenter.ShowError("invalid answer payload") })
				continue
			}
			given := *payload.Answer
			loop.Post(func() { engine.SubmitAnswer(given) })
		case "restart":
			loop.Post(engine.Restart)
		default:
			loop.Post(func() { presenter.ShowError("unsupported message type") })
		}
	}

	cancel()
	close(closeSignals)
	<-loopDone
	close(send)
	<-writerDone
	log.Printf("ws %s: disconnected", connID)
}
