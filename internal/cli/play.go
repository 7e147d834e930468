package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"movie-quiz/internal/app"
	"movie-quiz/internal/config"
	"movie-quiz/internal/transport/terminal"
)

// NewPlayCmd plays the quiz in the current terminal.
func NewPlayCmd(configPath *string) *cobra.Command {
	var player string
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play the quiz in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runPlay(ctx, cfg, player)
		},
	}
	cmd.Flags().StringVar(&player, "player", "", "player id used to keep separate statistics")
	return cmd
}

func runPlay(ctx context.Context, cfg config.Config, player string) error {
	d, err := buildDeps(ctx, cfg)
	if err != nil {
		return err
	}
	defer d.Close()

	loop := app.NewLoop(16)
	engine := d.newEngine(cfg, terminal.NewPresenter(os.Stdout), loop, playerNamespace(cfg.Stats.Namespace, player))
	return terminal.Play(ctx, os.Stdin, loop, engine)
}
