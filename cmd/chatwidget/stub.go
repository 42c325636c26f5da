package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jask/chatwidget/internal/stubserver"
)

func newStubCmd() *cobra.Command {
	var (
		addr  string
		reply string
		delay time.Duration
	)
	cmd := &cobra.Command{
		Use:   "stub",
		Short: "Serve a local chat endpoint that always answers with a fixed reply",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Stub.Addr = addr
			}
			if cmd.Flags().Changed("reply") {
				cfg.Stub.Reply = reply
			}
			if cmd.Flags().Changed("delay") {
				cfg.Stub.Delay = delay
			}
			log, closeLog := setupLogger(cfg)
			defer closeLog()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			cmd.Printf("stub chat endpoint on %s/chat\n", cfg.Stub.Addr)
			return stubserver.New(cfg.Stub, log).Run(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "Listen address")
	cmd.Flags().StringVar(&reply, "reply", "Thank you for your message!", "Reply text")
	cmd.Flags().DurationVar(&delay, "delay", time.Second, "Delay before replying")
	return cmd
}
