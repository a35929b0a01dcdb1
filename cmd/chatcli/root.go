package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"jusbook/internal/api/booking"
	"jusbook/internal/api/chat"
	"jusbook/internal/config"
	"jusbook/pkg/utils"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	verbose  bool
	seedDays int
}

func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "chatcli",
		Short:         "Talk to the Jusbook booking assistant from a terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log debug output to stderr")
	root.PersistentFlags().IntVar(&opts.seedDays, "days", 14, "days of slots to seed")

	root.AddCommand(newReplCmd(opts))
	root.AddCommand(newClassifyCmd(opts))
	root.AddCommand(newSlotsCmd(opts))

	return root
}

func (o *rootOptions) stack() (*config.Stack, error) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	if o.verbose {
		logger.SetOutput(os.Stderr)
		logger.SetLevel(logrus.DebugLevel)
	}

	return config.NewStack(logger, config.AppConfig{
		SessionStore: config.SessionStoreMemory,
		SeedDays:     o.seedDays,
	}, utils.New(), nil)
}

func newReplCmd(opts *rootOptions) *cobra.Command {
	var sessionID string

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive conversation (type \"quit\" to exit)",
		RunE: func(cmd *cobra.Command, args []string) error {
			stack, err := opts.stack()
			if err != nil {
				return err
			}
			return runRepl(cmd.Context(), stack, sessionID, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&sessionID, "session", "console", "conversation session id")

	return cmd
}

func runRepl(ctx context.Context, stack *config.Stack, sessionID string, in io.Reader, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	fmt.Fprintln(out, "Jusbook assistant. Type \"quit\" to exit.")
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "you> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		line := scanner.Text()
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "quit", "exit":
			return nil
		}

		resp, err := stack.Chat.ProcessMessage(ctx, chat.ChatRequest{Message: &line, SessionID: sessionID})
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			continue
		}

		fmt.Fprintf(out, "bot> %s\n", strings.ReplaceAll(resp.Reply, "\n", "\n     "))
		if resp.State != "idle" {
			fmt.Fprintf(out, "     [%s: waiting for %s]\n", resp.PendingIntent, strings.Join(resp.MissingFields, ", "))
		}
	}
}

func newClassifyCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "classify <message>",
		Short: "Show intent, confidence and entities for a message",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stack, err := opts.stack()
			if err != nil {
				return err
			}

			analysis, result := stack.Processor.Process(strings.Join(args, " "))
			out, err := jsoniter.MarshalIndent(map[string]interface{}{
				"normalized": analysis.Normalized,
				"intent":     result.Intent,
				"confidence": result.Confidence,
				"forced":     result.Forced,
				"matches":    result.Matches,
				"entities":   analysis.Entities.Items,
				"invalid":    analysis.Entities.Invalid,
			}, "", "  ")
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
}

func newSlotsCmd(opts *rootOptions) *cobra.Command {
	var filter booking.SlotFilter

	cmd := &cobra.Command{
		Use:   "slots",
		Short: "List seeded slots",
		RunE: func(cmd *cobra.Command, args []string) error {
			stack, err := opts.stack()
			if err != nil {
				return err
			}

			slots, err := stack.Bookings.ListSlots(context.Background(), filter)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for _, slot := range slots {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", slot.ID, slot.Date, slot.Time, slot.Service, slot.Status)
			}
			fmt.Fprintf(w, "%d slot(s)\n", len(slots))
			return nil
		},
	}
	cmd.Flags().StringVar(&filter.Date, "date", "", "only slots on this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&filter.Service, "service", "", "only slots for this service id")
	cmd.Flags().IntVar(&filter.Limit, "limit", 0, "maximum number of slots")
	cmd.Flags().BoolVar(&filter.IncludeBooked, "all", false, "include booked slots")

	return cmd
}
