package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/syssam/relgraph"
	"github.com/syssam/relgraph/internal/config"
	gsql "github.com/syssam/relgraph/dialect/sql"
)

var seedFixturesFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Replay a fixture file of seed instructions",
	Long: `seed loads an ordered list of row/update instructions from a YAML
fixtures file and replays them, allocating real primary keys for any
"$placeholder"-prefixed values along the way.`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringVarP(&seedFixturesFile, "fixtures", "f", "",
		"Path to the fixtures YAML file (required)")
	seedCmd.MarkFlagRequired("fixtures")
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(GetConfigFile())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	schema, err := LoadSchema(cfg.Migration.Dir + "/schema.json")
	if err != nil {
		return fmt.Errorf("failed to load schema: %w", err)
	}
	raw, err := config.LoadFixtures(seedFixturesFile)
	if err != nil {
		return fmt.Errorf("failed to load fixtures: %w", err)
	}

	driver, err := gsql.OpenDriver(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer driver.Close()

	instructions := make([]relgraph.Instruction, 0, len(raw))
	for _, f := range raw {
		switch f.Kind {
		case "row":
			instructions = append(instructions, relgraph.SeedRow{
				Table: f.Table,
				Value: translateValues(f.Value),
			})
		case "update":
			instructions = append(instructions, relgraph.SeedUpdate{
				Table: f.Table,
				ID:    translateScalar(f.ID),
				Value: translateValues(f.Value),
			})
		default:
			return fmt.Errorf("fixture instruction has unknown kind %q", f.Kind)
		}
	}

	ctx := context.Background()
	ids, err := relgraph.Seed(ctx, driver, schema, instructions)
	if err != nil {
		return fmt.Errorf("seed failed: %w", err)
	}
	for ph, id := range ids {
		cmd.Printf("%s -> %d\n", ph, id)
	}
	return nil
}

// translateValues rewrites every "$name" string in value into a
// relgraph.Placeholder, the fixtures file's notation for a not-yet-real id.
func translateValues(value map[string]any) map[string]any {
	out := make(map[string]any, len(value))
	for k, v := range value {
		out[k] = translateScalar(v)
	}
	return out
}

func translateScalar(v any) any {
	s, ok := v.(string)
	if !ok {
		return v
	}
	if strings.HasPrefix(s, "$") {
		return relgraph.Placeholder(strings.TrimPrefix(s, "$"))
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	return v
}
