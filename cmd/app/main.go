package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tiagokriok/taskboard/internal/application"
	"github.com/tiagokriok/taskboard/internal/config"
	"github.com/tiagokriok/taskboard/internal/domain"
	"github.com/tiagokriok/taskboard/internal/infrastructure/boardfile"
	"github.com/tiagokriok/taskboard/internal/infrastructure/providers"
	"github.com/tiagokriok/taskboard/internal/infrastructure/repositories"
	"github.com/tiagokriok/taskboard/internal/ui"
)

var Version = "dev"

type rootOptions struct {
	configPath string
	boardPath  string
	debug      bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "taskboard",
		Short:         "Kanban task board in the terminal",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBoard(cmd.Context(), opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to config file (default $XDG_CONFIG_HOME/taskboard/config.yaml)")
	cmd.PersistentFlags().StringVar(&opts.boardPath, "board", "", "YAML board definition (default: built-in sample board)")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "log at debug level")

	cmd.AddCommand(newValidateCmd(opts))
	cmd.AddCommand(newDumpCmd(opts))
	return cmd
}

// loadConfig merges the config file with command line overrides.
func loadConfig(opts *rootOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.boardPath != "" {
		cfg.BoardFile = opts.boardPath
	}
	if opts.debug {
		cfg.Log.Level = log.DebugLevel.String()
	}
	return cfg, nil
}

// session holds the wired services behind one board.
type session struct {
	cfg       *config.Config
	logger    *log.Logger
	repo      *repositories.BoardRepository
	service   *application.TaskService
	bootstrap application.BootstrapResult
}

func openSession(ctx context.Context, cfg *config.Config, logger *log.Logger) (*session, error) {
	ids, err := providers.NewIDGenerator(cfg.TaskIDs)
	if err != nil {
		return nil, err
	}
	clock := providers.SystemClock{}

	var source domain.BoardSource
	if cfg.BoardFile != "" {
		source = boardfile.NewSource(cfg.BoardFile, clock, ids)
	}

	repo := repositories.NewBoardRepository()
	bootstrapService := application.NewBootstrapService(source, repo, logger)
	result, err := bootstrapService.EnsureInitialBoard(ctx)
	if err != nil {
		return nil, err
	}

	engine := application.NewEngine(
		application.WithClock(clock),
		application.WithIDGenerator(ids),
	)
	return &session{
		cfg:       cfg,
		logger:    logger,
		repo:      repo,
		service:   application.NewTaskService(repo, engine, logger),
		bootstrap: result,
	}, nil
}

func runBoard(ctx context.Context, opts *rootOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	logger, closeLog, err := newFileLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	s, err := openSession(ctx, cfg, logger)
	if err != nil {
		return err
	}

	model := ui.NewModel(s.service, ui.Options{
		View:        cfg.UI.View,
		ShowDetails: cfg.UI.ShowDetails,
		Logger:      logger,
	})
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}
	logger.WithField("version", s.repo.Version()).Info("session closed")
	return nil
}
