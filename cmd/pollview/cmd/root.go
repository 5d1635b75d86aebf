package cmd

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/vncsmyrnk/lunchpoll/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/lunchpoll/internal/adapters/ui"
	"github.com/vncsmyrnk/lunchpoll/internal/adapters/view/terminal"
	"github.com/vncsmyrnk/lunchpoll/internal/config"
	"github.com/vncsmyrnk/lunchpoll/internal/core/services"
	"github.com/vncsmyrnk/lunchpoll/internal/log"
)

const rootCmdLongDesc = `pollview shows a lunch poll in the terminal. Restaurants are listed in the
order they were proposed; type a row number to vote for it, "add" to propose
a restaurant and "quit" to leave.

Flags fall back to the POLL_ID, VOTER_ID, REFRESH_INTERVAL and LOG_LEVEL
environment variables.`

var rootCmd = &cobra.Command{
	Use:   "pollview",
	Short: "Vote on a lunch poll from the terminal",
	Long:  rootCmdLongDesc,
	Args:  cobra.NoArgs,
	RunE:  runPollView,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.Flags()
	flags.String("poll", "", "id of the poll to show")
	flags.String("voter", "", "id of the voting user")
	flags.Duration("refresh", 0, "reload interval for other voters' changes, 0 disables it")
	flags.String("log-level", "warn", "logger level ('debug', 'info', 'warn', 'error')")
}

func bindFlags(cmd *cobra.Command, v *viper.Viper) error {
	bindings := map[string]string{
		"POLL_ID":          "poll",
		"VOTER_ID":         "voter",
		"REFRESH_INTERVAL": "refresh",
		"LOG_LEVEL":        "log-level",
	}
	for key, flag := range bindings {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return fmt.Errorf("failed to bind --%s: %w", flag, err)
		}
	}
	v.SetDefault("LOG_LEVEL", "warn")
	return nil
}

func parseID(v *viper.Viper, key string) (uuid.UUID, error) {
	raw := v.GetString(key)
	if raw == "" {
		return uuid.Nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return id, nil
}

func runPollView(cmd *cobra.Command, _ []string) error {
	v := config.NewViper()
	if err := bindFlags(cmd, v); err != nil {
		return err
	}

	cfg, err := config.FromViper(v)
	if err != nil {
		return err
	}

	logger, err := log.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	log.SetDefault(logger)
	defer logger.Sync()

	pollID, err := parseID(v, "POLL_ID")
	if err != nil {
		return err
	}
	voterID, err := parseID(v, "VOTER_ID")
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to reach database: %w", err)
	}

	pollRepo := postgres.NewPollRepository(db)
	voteRepo := postgres.NewVoteRepository(db)
	resultRepo := postgres.NewPollResultRepository(db)

	pollService := services.NewPollService(pollRepo)
	summaryService := services.NewSummaryService(pollRepo, resultRepo)
	voteService := services.NewVoteService(pollRepo, voteRepo, summaryService)

	title := "lunch poll"
	if pollID != uuid.Nil {
		poll, err := pollService.GetPoll(ctx, pollID.String())
		if err != nil {
			return fmt.Errorf("failed to open poll %s: %w", pollID, err)
		}
		title = poll.Title
	}

	out := cmd.OutOrStdout()
	loop := ui.NewEventLoop()

	provider := services.NewPollStateService(pollService, voteService, loop, logger,
		services.WithPollID(pollID),
		services.WithVoterID(voterID),
		services.WithRefreshInterval(cfg.RefreshInterval),
	)
	list := terminal.NewCandidateListView(out, title)
	prompt := terminal.NewPrompt(out)
	snackbar := terminal.NewSnackbar(out)

	reconciler := services.NewPollStateReconciler(provider, list, snackbar, prompt, logger)
	att, err := reconciler.Attach(ctx)
	if err != nil {
		return err
	}
	defer att.Detach()

	screen := terminal.NewScreen(out, loop, list, prompt, snackbar, logger)
	screen.OnQuit = cancel
	screen.OnRefresh = func() { provider.Refresh(ctx) }

	go func() {
		if err := screen.ReadInput(ctx, cmd.InOrStdin()); err != nil && !errors.Is(err, context.Canceled) {
			logger.Warn("input closed", zap.Error(err))
			cancel()
		}
	}()

	logger.Info("poll view started", zap.Stringer("poll_id", pollID), zap.Stringer("voter_id", voterID))

	if err := loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
