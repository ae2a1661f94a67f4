package cli

import (
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tatianab/mystery-game/internal/archive"
	"github.com/tatianab/mystery-game/internal/engine"
	"github.com/tatianab/mystery-game/internal/hints"
	"github.com/tatianab/mystery-game/internal/models"
	"github.com/tatianab/mystery-game/internal/tui"
)

func (a *app) playCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play the configured case (the default command)",
		Args:  cobra.NoArgs,
		RunE:  a.runPlay,
	}
	addPlayFlags(cmd)
	return cmd
}

func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("plain", false, "Use the line console instead of the full-screen interface")
	cmd.Flags().Uint64("seed", 0, "Seed for generated names and opponent moves (default: $MYSTERY_SEED)")
	cmd.Flags().String("hints", "", "Hint provider: static, gemini or openai (default: $MYSTERY_HINTS)")
}

func (a *app) runPlay(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	flags := cmd.Flags()
	if flags.Changed("hints") {
		a.cfg.Hints, _ = flags.GetString("hints")
		if err := a.cfg.Validate(); err != nil {
			return err
		}
	}
	if flags.Changed("seed") {
		a.cfg.Seed, _ = flags.GetUint64("seed")
		a.cfg.HasSeed = true
	}

	c, err := a.loadCase(cmd)
	if err != nil {
		return err
	}

	hinter, closeHinter, err := hints.New(ctx, a.cfg.Hints, a.cfg.GeminiAPIKey, a.cfg.OpenAIAPIKey)
	if err != nil {
		return err
	}
	defer closeHinter()

	opts := []engine.Option{
		engine.WithSaves(models.NewSaveFile(a.cfg.SaveFile)),
		engine.WithLogger(a.logger),
		engine.WithHinter(hinter),
	}
	if a.cfg.HasSeed {
		opts = append(opts, engine.WithRand(rand.New(rand.NewPCG(a.cfg.Seed, a.cfg.Seed))))
	}

	store, err := archive.Open(a.cfg.ArchiveDB)
	if err != nil {
		a.logger.Warn("case archive unavailable", zap.String("path", a.cfg.ArchiveDB), zap.Error(err))
	} else {
		defer store.Close()
		opts = append(opts, engine.WithRecorder(store))
	}

	a.logger.Info("starting game",
		zap.String("case", c.Title),
		zap.String("save", a.cfg.SaveFile),
		zap.String("hints", a.cfg.Hints),
	)

	g := engine.New(c, opts...)
	if plain, _ := flags.GetBool("plain"); plain {
		return engine.RunConsole(ctx, g, cmd.InOrStdin(), cmd.OutOrStdout())
	}
	return tui.Run(ctx, g)
}
