package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-mentor/internal/catalog"
	"github.com/jonathan/career-mentor/internal/chat"
	"github.com/jonathan/career-mentor/internal/observability"
	"github.com/jonathan/career-mentor/internal/responder"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Ask the simulated mentor one question",
	Long:  "Sends one message to the simulated mentor, waits for the reply and prints the conversation.",
	RunE:  runChat,
}

var (
	chatMessage string
	chatLatency time.Duration
)

func init() {
	chatCmd.Flags().StringVarP(&chatMessage, "message", "m", "", "Message to send (required)")
	chatCmd.Flags().DurationVar(&chatLatency, "latency", 0, "Simulated reply latency (default from config)")

	if err := chatCmd.MarkFlagRequired("message"); err != nil {
		panic(fmt.Sprintf("failed to mark message flag as required: %v", err))
	}

	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("latency") {
		cfg.Chat.Latency = chatLatency
	}

	cat, err := catalog.Default()
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	r := responder.NewChat(cat.Replies(), responder.Options{
		Latency: cfg.Chat.Latency,
		Timeout: cfg.Chat.Timeout,
		Retry:   responder.RetryPolicy{Attempts: cfg.Chat.RetryAttempts, Backoff: cfg.Chat.RetryBackoff},
		Seed:    cfg.Chat.Seed,
	})
	flow := chat.New(r, chat.Options{
		Greeting:       cat.Greeting(),
		QuickQuestions: cat.QuickQuestions(),
		Logger:         observability.Discard(),
	})
	defer flow.Close()

	pending, err := flow.Send(chatMessage)
	if err != nil {
		return err
	}

	// The responder stack enforces its own timeout; this only guards the wait.
	limit := time.Duration(cfg.Chat.RetryAttempts)*(cfg.Chat.Timeout+cfg.Chat.RetryBackoff) + time.Second
	ctx, cancel := context.WithTimeout(cmd.Context(), limit)
	defer cancel()

	select {
	case <-pending.Done():
	case <-ctx.Done():
		return fmt.Errorf("mentor reply: %w", ctx.Err())
	}

	observability.NewPrinter(cmd.OutOrStdout()).PrintTranscript(flow.Messages())
	if outcome := pending.Outcome(); outcome.Err != nil {
		return fmt.Errorf("mentor reply failed: %w", outcome.Err)
	}
	return nil
}
