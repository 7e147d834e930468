package terminal

import (
	"bufio"
	"context"
	"io"
	"strings"

	"movie-quiz/internal/app"
)

// Command is one line of player input.
type Command int

const (
	CommandUnknown Command = iota
	CommandYes
	CommandNo
	CommandRestart
	CommandQuit
)

// ParseCommand accepts y/yes/n/no/r/restart/q/quit, plus д/н for Russian layouts.
func ParseCommand(line string) Command {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes", "д", "да":
		return CommandYes
	case "n", "no", "н", "нет":
		return CommandNo
	case "r", "restart", "retry":
		return CommandRestart
	case "q", "quit", "exit":
		return CommandQuit
	}
	return CommandUnknown
}

// Play runs the engine on loop until the player quits, input ends or ctx is canceled.
func Play(ctx context.Context, in io.Reader, loop *app.Loop, engine *app.Engine) error {
	go func() {
		defer loop.Stop()
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			switch ParseCommand(scanner.Text()) {
			case CommandYes:
				loop.Post(func() { engine.SubmitAnswer(true) })
			case CommandNo:
				loop.Post(func() { engine.SubmitAnswer(false) })
			case CommandRestart:
				loop.Post(engine.Restart)
			case CommandQuit:
				return
			}
		}
	}()

	loop.Post(func() { engine.Start(ctx) })
	if err := loop.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
