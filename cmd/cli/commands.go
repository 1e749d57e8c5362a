package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mauv0809/matchday/internal/match"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(matchesCmd)
	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(goLiveCmd)
	rootCmd.AddCommand(endLiveCmd)
	rootCmd.AddCommand(pauseCmd)
	rootCmd.AddCommand(finishCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(minuteCmd)
	rootCmd.AddCommand(extraTimeCmd)

	matchesCmd.Flags().String("status", string(match.StatusAll), "Filter by status: current, live, upcoming, finished or all")

	createCmd.Flags().String("team1", "", "Home team name")
	createCmd.Flags().String("team2", "", "Away team name")
	createCmd.Flags().String("league", "", "League name")
	createCmd.Flags().String("venue", "", "Venue")
	createCmd.Flags().String("start", "", "Kick-off time in RFC 3339, e.g. 2026-10-17T15:00:00Z")
	createCmd.Flags().String("formation1", "", "Home formation, e.g. 4-4-2")
	createCmd.Flags().String("formation2", "", "Away formation, e.g. 4-3-3")
	_ = createCmd.MarkFlagRequired("team1")
	_ = createCmd.MarkFlagRequired("team2")

	finishCmd.Flags().BoolP("yes", "y", false, "Finish without asking for confirmation")
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := newClient().Health(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("OK!")
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the persistent match counters",
	RunE: func(cmd *cobra.Command, args []string) error {
		stats, err := newClient().Stats(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(stats)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

var matchesCmd = &cobra.Command{
	Use:   "matches",
	Short: "List matches",
	RunE: func(cmd *cobra.Command, args []string) error {
		status, _ := cmd.Flags().GetString("status")
		matches, err := newClient().ListMatchesByStatus(cmd.Context(), match.Status(status))
		if err != nil {
			return err
		}
		renderBoard(os.Stdout, matches, time.Now())
		return nil
	},
}

var matchCmd = &cobra.Command{
	Use:   "match <id>",
	Short: "Show one match with its lineups",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := newClient().GetMatch(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		renderDetail(os.Stdout, m)
		return nil
	},
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Schedule a new match",
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		n := match.NewMatch{}
		n.Team1Name, _ = flags.GetString("team1")
		n.Team2Name, _ = flags.GetString("team2")
		n.LeagueName, _ = flags.GetString("league")
		n.Venue, _ = flags.GetString("venue")
		n.Lineups.Team1.Formation, _ = flags.GetString("formation1")
		n.Lineups.Team2.Formation, _ = flags.GetString("formation2")
		if start, _ := flags.GetString("start"); start != "" {
			t, err := time.Parse(time.RFC3339, start)
			if err != nil {
				return fmt.Errorf("invalid --start: %w", err)
			}
			n.StartTime = t
		}

		m, err := newClient().CreateMatch(cmd.Context(), n)
		if err != nil {
			return err
		}
		fmt.Printf("Created match %s: %s vs %s\n", m.ID, m.Team1Name, m.Team2Name)
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a match",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := newClient().DeleteMatch(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted match %s\n", args[0])
		return nil
	},
}

var goLiveCmd = &cobra.Command{
	Use:   "go-live <id>",
	Short: "Kick off a scheduled match",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return printResult(newClient().GoLive(cmd.Context(), args[0]))
	},
}

var endLiveCmd = &cobra.Command{
	Use:   "end-live <id>",
	Short: "Take a live match back to scheduled",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return printResult(newClient().EndLive(cmd.Context(), args[0]))
	},
}

var pauseCmd = &cobra.Command{
	Use:   "pause <id>",
	Short: "Pause a running match or resume a paused one",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return printResult(newClient().TogglePause(cmd.Context(), args[0]))
	},
}

var finishCmd = &cobra.Command{
	Use:   "finish <id>",
	Short: "Blow the final whistle. This cannot be undone",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := newClient()
		id := args[0]
		confirmed, _ := cmd.Flags().GetBool("yes")
		if !confirmed {
			m, err := c.GetMatch(cmd.Context(), id)
			if err != nil {
				return err
			}
			prompt := fmt.Sprintf("Finish %s at %s? This cannot be undone", m.ScoreLine(), m.ClockLabel())
			confirmed, err = confirm(os.Stdin, os.Stdout, prompt)
			if err != nil {
				return err
			}
			if !confirmed {
				fmt.Println("Aborted.")
				return nil
			}
		}
		return printResult(c.FinishMatch(cmd.Context(), id, true))
	},
}

var scoreCmd = &cobra.Command{
	Use:   "score <id> <team1|team2> <+1|-1>",
	Short: "Add or remove a goal",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		team, err := match.ParseTeam(args[1])
		if err != nil {
			return err
		}
		delta, err := parseDelta(args[2])
		if err != nil {
			return err
		}
		return printResult(newClient().AdjustScore(cmd.Context(), args[0], team, delta))
	},
}

var minuteCmd = &cobra.Command{
	Use:   "minute <id> <minute>",
	Short: "Correct the match minute",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		minute, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid minute %q: %w", args[1], err)
		}
		return printResult(newClient().SetMinute(cmd.Context(), args[0], minute))
	},
}

var extraTimeCmd = &cobra.Command{
	Use:   "extra-time <id> <minutes>",
	Short: "Announce added time",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		extra, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid extra time %q: %w", args[1], err)
		}
		return printResult(newClient().SetExtraTime(cmd.Context(), args[0], extra))
	},
}

// parseDelta accepts "+1", "1", "-1", "up" and "down".
func parseDelta(s string) (int, error) {
	switch strings.TrimSpace(s) {
	case "+1", "1", "up", "+":
		return 1, nil
	case "-1", "down", "-":
		return -1, nil
	}
	return 0, fmt.Errorf("score change must be +1 or -1, got %q", s)
}

// confirm asks a yes/no question. Anything but y or yes is a no.
func confirm(in io.Reader, out io.Writer, prompt string) (bool, error) {
	fmt.Fprintf(out, "%s [y/N]: ", prompt)
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

func printResult(m match.Match, err error) error {
	if err != nil {
		return err
	}
	fmt.Printf("%s  %s  %s\n", m.ScoreLine(), m.ClockLabel(), m.State())
	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func performGetRequest(endpoint string) error {
	url := host + endpoint

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s returned %d: %s", endpoint, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	fmt.Print(string(body))
	return nil
}
