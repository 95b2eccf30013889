package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/spf13/cobra"

	"github.com/syssam/relgraph"
	gsql "github.com/syssam/relgraph/dialect/sql"
	"github.com/syssam/relgraph/internal/config"
	"github.com/syssam/relgraph/internal/logx"
)

var (
	querySchemaFile  string
	queryFile        string
	queryFiltersFile string
	queryJoinProp    string
	queryRootIDs     []int64
)

// graphDriver is the subset of dialect/sql.Driver relgraph.Run needs,
// satisfied by both the plain driver and its stats-collecting wrapper.
type graphDriver interface {
	QueryRows(ctx context.Context, query string, args []any) ([]gsql.Row, error)
}

// filterDoc is the on-disk JSON shape of one filter-parameter entry,
// kept as an ordered array (not a map) so clause emission order matches
// the file's declared order.
type filterDoc struct {
	Prop     string `json:"prop"`
	Op       string `json:"op"`
	Value    any    `json:"value"`
	MinDepth int    `json:"min_depth,omitempty"`
	MaxDepth int    `json:"max_depth,omitempty"`
}

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Run a graph query and print the assembled result",
	Long: `query loads a schema document and a JSON query shape, runs it
against the configured database for the given root ids, and prints the
assembled nested result as JSON.`,
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().StringVarP(&querySchemaFile, "schema", "s", "",
		"Path to the schema JSON document (required)")
	queryCmd.Flags().StringVarP(&queryFile, "query", "q", "",
		"Path to the query JSON document (required)")
	queryCmd.Flags().StringVar(&queryJoinProp, "root-prop", "id",
		"Root id property label (cosmetic only)")
	queryCmd.Flags().Int64SliceVar(&queryRootIDs, "root-ids", nil,
		"Root ids to query (required)")
	queryCmd.Flags().StringVar(&queryFiltersFile, "filters", "",
		"Path to an optional filter-parameters JSON document")
	queryCmd.MarkFlagRequired("schema")
	queryCmd.MarkFlagRequired("query")
	queryCmd.MarkFlagRequired("root-ids")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(GetConfigFile())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	schema, err := LoadSchema(querySchemaFile)
	if err != nil {
		return fmt.Errorf("failed to load schema: %w", err)
	}
	queryDoc, err := os.ReadFile(queryFile)
	if err != nil {
		return fmt.Errorf("failed to read query file: %w", err)
	}
	q, err := ParseQuery(queryDoc)
	if err != nil {
		return fmt.Errorf("failed to parse query: %w", err)
	}

	filters, err := loadFilters(schema, queryFiltersFile)
	if err != nil {
		return fmt.Errorf("failed to load filters: %w", err)
	}

	driver, err := gsql.OpenDriver(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer driver.Close()

	logger := logx.Build(cfg.Log.Level, cfg.Log.Format)

	var runDriver graphDriver = driver
	if cfg.Log.Stats {
		statsDriver := gsql.NewStatsDriver(driver, gsql.WithSlowQueryLog())
		defer func() {
			s := statsDriver.QueryStats().Stats()
			logger.Logger.Info("query stats", "summary", s.String())
		}()
		runDriver = statsDriver
	}

	rootIDs := make([]any, len(queryRootIDs))
	for i, id := range queryRootIDs {
		rootIDs[i] = id
	}

	ctx := context.Background()
	records, err := relgraph.Run(ctx, runDriver, schema, queryJoinProp, q, rootIDs, filters, relgraph.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	out, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	cmd.Println(string(out))
	return nil
}

// loadFilters reads an optional filters document into relgraph.Filters.
// An empty path yields nil filters (no WHERE clauses added at any depth).
func loadFilters(schema *relgraph.Schema, path string) (*relgraph.Filters, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read filters %s: %w", path, err)
	}
	var docs []filterDoc
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("parse filters %s: %w", path, err)
	}
	params := orderedmap.NewOrderedMap[string, relgraph.Rule]()
	for _, d := range docs {
		params.Set(d.Prop, relgraph.Rule{
			Op:       relgraph.Comparator(d.Op),
			Value:    d.Value,
			MinDepth: d.MinDepth,
			MaxDepth: d.MaxDepth,
		})
	}
	return relgraph.FilterParamsToFilters(schema, params)
}
