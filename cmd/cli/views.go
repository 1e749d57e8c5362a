package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/matchday/internal/engine"
	"github.com/mauv0809/matchday/internal/match"
	"github.com/mauv0809/matchday/internal/metrics"
	"github.com/mauv0809/matchday/internal/viewer"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

// clearScreen moves the cursor home and clears the terminal.
const clearScreen = "\033[H\033[2J"

func init() {
	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(manageCmd)

	for _, cmd := range []*cobra.Command{boardCmd, manageCmd} {
		cmd.Flags().String("status", string(match.StatusCurrent), "Filter by status: current, live, upcoming, finished or all")
		cmd.Flags().Duration("interval", viewer.DefaultListInterval, "How often to refresh the list")
	}
	watchCmd.Flags().Duration("interval", viewer.DefaultDetailInterval, "How often to refresh the match")
	manageCmd.Flags().Duration("tick", engine.DefaultTickInterval, "How often the match clock advances")
}

// sessionContext is cancelled on Ctrl-C or SIGTERM.
func sessionContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
}

// sessionMetrics keeps CLI metrics off the process-wide default registry.
func sessionMetrics() metrics.Metrics {
	return metrics.NewService(prometheus.NewRegistry())
}

func startListView(cmd *cobra.Command, m metrics.Metrics) (*viewer.ListView, error) {
	status, _ := cmd.Flags().GetString("status")
	interval, _ := cmd.Flags().GetDuration("interval")

	view := viewer.NewListView(newClient(), m, nil, interval)
	if err := view.SetStatus(match.Status(status)); err != nil {
		return nil, err
	}
	view.OnChange(func(visible []match.Match) {
		fmt.Print(clearScreen)
		renderBoard(os.Stdout, visible, time.Now())
	})
	return view, nil
}

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Follow the match list, refreshed while it is open",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := sessionContext(cmd)
		defer cancel()

		view, err := startListView(cmd, sessionMetrics())
		if err != nil {
			return err
		}
		view.Start(ctx)
		defer view.Stop()

		<-ctx.Done()
		return nil
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch <id>",
	Short: "Follow one match, refreshed while it is open",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := sessionContext(cmd)
		defer cancel()

		interval, _ := cmd.Flags().GetDuration("interval")
		view := viewer.NewDetailView(newClient(), sessionMetrics(), nil, interval)
		view.OnChange(func(m match.Match, ok bool) {
			fmt.Print(clearScreen)
			if !ok {
				fmt.Printf("Match %s not found.\n", args[0])
				return
			}
			renderDetail(os.Stdout, m)
		})
		view.Watch(ctx, args[0])
		defer view.Stop()

		<-ctx.Done()
		return nil
	},
}

var manageCmd = &cobra.Command{
	Use:   "manage",
	Short: "Run the match clock for live matches while following the list",
	Long: `Opens an admin session: the match list is refreshed and every running
match advances by one minute each tick. The clock stops when the session ends.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := sessionContext(cmd)
		defer cancel()

		m := sessionMetrics()
		view, err := startListView(cmd, m)
		if err != nil {
			return err
		}
		view.Start(ctx)
		defer view.Stop()

		tick, _ := cmd.Flags().GetDuration("tick")
		clock := engine.New(newClient(), m, nil, tick).Start(ctx, view)
		defer clock.Stop()
		log.Debug("Admin session started", "tick", tick)

		<-ctx.Done()
		return nil
	},
}
