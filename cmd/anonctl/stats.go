package main

import (
	"anon-chat/domain/event"
	"anon-chat/infrastructure/api"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newStatsCmd(cfg Config) *cobra.Command {
	var url string
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show live lobby, outcome and process stats of a running bot",
		RunE: func(cmd *cobra.Command, _ []string) error {
			token, err := issueToken(cfg, "anonctl", time.Minute)
			if err != nil {
				return err
			}
			stats, err := fetchStats(url, token)
			if err != nil {
				return err
			}
			renderStats(cmd.OutOrStdout(), stats)
			return nil
		},
	}
	cmd.Flags().StringVar(&url, "url", cfg.AdminURL, "Base URL of the bot")
	return cmd
}

func fetchStats(baseURL, token string) (api.StatsResponse, error) {
	var stats api.StatsResponse
	agent := fiber.Get(strings.TrimRight(baseURL, "/")+"/admin/stats").
		Set(fiber.HeaderAuthorization, "Bearer "+token).
		Timeout(5 * time.Second)
	code, body, errs := agent.Struct(&stats)
	if len(errs) > 0 {
		return stats, fmt.Errorf("stats request: %w", errs[0])
	}
	if code != fiber.StatusOK {
		return stats, fmt.Errorf("stats request: status %d: %s", code, body)
	}
	return stats, nil
}

func renderStats(w io.Writer, stats api.StatsResponse) {
	title := color.New(color.BgBlack, color.FgGreen)
	_, _ = fmt.Fprintln(w, title.Render(" LOBBY "))
	table := tablewriter.NewWriter(w)
	table.SetBorder(false)
	table.SetHeader([]string{"Participants", "Waiting", "Sessions"})
	table.Append([]string{
		fmt.Sprint(stats.Lobby.Participants),
		fmt.Sprint(stats.Lobby.Waiting),
		fmt.Sprint(stats.Lobby.Sessions),
	})
	table.Render()

	_, _ = fmt.Fprintln(w, title.Render(" OUTCOMES "))
	table = tablewriter.NewWriter(w)
	table.SetBorder(false)
	table.SetHeader([]string{"Reason", "Sessions"})
	for _, reason := range []event.EndReason{event.EndRevealed, event.EndDeclined, event.EndStopped, event.EndOrphaned} {
		table.Append([]string{reasonColour(reason).Render(string(reason)), fmt.Sprint(stats.Outcomes.Ended[reason])})
	}
	table.SetFooter([]string{"started " + fmt.Sprint(stats.Outcomes.Started), "avg " + stats.Outcomes.AverageDuration.Round(time.Second).String()})
	table.Render()

	_, _ = fmt.Fprintln(w, title.Render(" PROCESS "))
	_, _ = fmt.Fprintf(w, "pid %d  cpu %.1f%%  rss %d MiB  goroutines %d  updates %d (dup %d)  delivery failures %d\n",
		stats.Process.Pid, stats.Process.CpuPercent, stats.Process.RssBytes/1024/1024,
		stats.Process.NumGoroutines, stats.Process.UpdatesReceived, stats.Process.UpdatesDuplicate,
		stats.Process.DeliveryFailures)
}
