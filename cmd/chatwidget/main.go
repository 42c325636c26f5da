package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jask/chatwidget/internal/chat"
	"github.com/jask/chatwidget/internal/config"
	"github.com/jask/chatwidget/internal/logger"
	"github.com/jask/chatwidget/internal/tui"
)

var (
	configFlag   string
	endpointFlag string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "chatwidget",
		Short:         "Floating chat widget for the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runWidget,
	}
	root.PersistentFlags().StringVar(&configFlag, "config", "", "Config file (default ~/.config/chatwidget/config.toml)")
	root.Flags().StringVar(&endpointFlag, "endpoint", "", "Override chat endpoint URL")

	root.AddCommand(newStubCmd(), newConfigCmd())
	return root
}

// loadConfig applies flag overrides on top of config.Load.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configFlag)
	if err != nil {
		return config.Config{}, fmt.Errorf("config: %w", err)
	}
	if ep := strings.TrimSpace(endpointFlag); ep != "" {
		cfg.Chat.Endpoint = ep
		if err := cfg.Validate(); err != nil {
			return config.Config{}, err
		}
	}
	return cfg, nil
}

func setupLogger(cfg config.Config) (zerolog.Logger, func() error) {
	log, closeFn, err := logger.New(cfg.LoggerConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "warn: logging disabled: %v\n", err)
	}
	return log, closeFn
}

func runWidget(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, closeLog := setupLogger(cfg)
	defer closeLog()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := chat.NewClient(cfg.Chat.Endpoint,
		chat.WithLogger(log),
		chat.WithTimeout(cfg.Chat.RequestTimeout),
	)
	log.Info().Str("endpoint", client.Endpoint()).Msg("widget starting")

	p := tea.NewProgram(tui.New(ctx, cfg.UI, client, log), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("run widget: %w", err)
	}
	return nil
}
