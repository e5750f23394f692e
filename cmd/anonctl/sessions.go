package main

import (
	"anon-chat/domain/event"
	"anon-chat/infrastructure/storage"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/mama165/sdk-go/logs"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func newSessionsCmd(cfg Config) *cobra.Command {
	var (
		dbPath string
		limit  int
		cursor string
	)
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List ended sessions, most recent first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := badger.Open(badger.DefaultOptions(dbPath).
				WithReadOnly(true).
				WithLoggingLevel(badger.ERROR))
			if err != nil {
				return fmt.Errorf("open ledger %s: %w", dbPath, err)
			}
			defer db.Close()

			repository := storage.NewOutcomeRepository(db, logs.GetLoggerFromLevel(slog.LevelError), lo.ToPtr(limit))
			var from *string
			if cursor != "" {
				from = &cursor
			}
			outcomes, next, err := repository.GetOutcomes(from)
			if err != nil {
				return err
			}
			renderOutcomes(cmd.OutOrStdout(), outcomes)
			if len(outcomes) == limit && next != nil {
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "\nnext page: --cursor %s\n", *next)
			}
			return err
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", cfg.BadgerFilepath, "Path to the badger ledger")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of sessions")
	cmd.Flags().StringVar(&cursor, "cursor", "", "Resume after this cursor")
	return cmd
}

func renderOutcomes(w io.Writer, outcomes []storage.DiskOutcome) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Session", "Reason", "Ended", "Duration", "Relayed"})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	for _, o := range outcomes {
		table.Append([]string{
			o.ID.String(),
			reasonColour(o.Reason).Render(string(o.Reason)),
			o.EndedAt.Format(time.DateTime),
			o.EndedAt.Sub(o.StartedAt).Round(time.Second).String(),
			strconv.Itoa(o.Relayed),
		})
	}
	table.Render()
}

func reasonColour(reason event.EndReason) color.Style {
	switch reason {
	case event.EndRevealed:
		return color.New(color.FgGreen, color.OpBold)
	case event.EndDeclined:
		return color.New(color.FgRed)
	case event.EndStopped:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgGray)
	}
}
