package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/mauv0809/matchday/internal/database"
	"github.com/mauv0809/matchday/internal/match"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// fixtureFile is the YAML document the seeder reads.
type fixtureFile struct {
	Matches []match.NewMatch `yaml:"matches"`
}

// loadFixtures reads and validates every fixture in path.
func loadFixtures(path string) ([]match.NewMatch, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixtures: %w", err)
	}
	var f fixtureFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("failed to parse fixtures %s: %w", path, err)
	}
	for i, n := range f.Matches {
		if err := n.Validate(); err != nil {
			return nil, fmt.Errorf("fixture %d (%s vs %s): %w", i+1, n.Team1Name, n.Team2Name, err)
		}
	}
	return f.Matches, nil
}

// seed creates every fixture. With wipe set every stored match is deleted
// first.
func seed(ctx context.Context, store match.Store, fixtures []match.NewMatch, wipe bool) (int, error) {
	if wipe {
		existing, err := store.ListMatches(ctx)
		if err != nil {
			return 0, err
		}
		for _, m := range existing {
			if err := store.DeleteMatch(ctx, m.ID); err != nil {
				return 0, fmt.Errorf("failed to delete match %s: %w", m.ID, err)
			}
		}
		log.Info("Cleared existing matches", "count", len(existing))
	}
	for i, n := range fixtures {
		m, err := store.CreateMatch(ctx, n)
		if err != nil {
			return i, fmt.Errorf("failed to create %s vs %s: %w", n.Team1Name, n.Team2Name, err)
		}
		log.Info("Seeded match", "id", m.ID, "team1", m.Team1Name, "team2", m.Team2Name, "start", m.StartTime)
	}
	return len(fixtures), nil
}

var rootCmd = &cobra.Command{
	Use:   "seeder [fixtures.yaml]",
	Short: "Load match fixtures from YAML into the database",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "fixtures.yaml"
		if len(args) == 1 {
			path = args[0]
		}
		wipe, _ := cmd.Flags().GetBool("clear")

		if err := godotenv.Load(); err != nil {
			log.Warn("No .env file found, reading from environment variables")
		}
		dbName := os.Getenv("DB_NAME")
		if dbName == "" {
			dbName = "matchday.db"
		}

		fixtures, err := loadFixtures(path)
		if err != nil {
			return err
		}

		db, teardown, err := database.InitDB(dbName, os.Getenv("TURSO_PRIMARY_URL"), os.Getenv("TURSO_AUTH_TOKEN"))
		if err != nil {
			return err
		}
		defer teardown()

		n, err := seed(cmd.Context(), match.NewStore(db), fixtures, wipe)
		if err != nil {
			return err
		}
		log.Info("Database seeding complete!", "matches", n)
		return nil
	},
}

func main() {
	log.Info("Starting database seeder...")
	rootCmd.Flags().Bool("clear", false, "Delete every stored match before seeding")
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Seeding failed: %s", err)
	}
}
