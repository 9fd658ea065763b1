package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/jortega/sqlens/output"
	"github.com/jortega/sqlens/pipeline"
	"github.com/jortega/sqlens/schema"
)

var (
	queryFlag   = flag.String("q", "", "SQL query to analyze (e.g., \"SELECT id FROM students WHERE age > 18\")")
	formatFlag  = flag.String("f", "table", "Output format: table, json, tree, dot, csv")
	schemaFlag  = flag.String("schema", "", "Schema source: a .json catalog or a .parquet file (default: built-in demo schema)")
	tableFlag   = flag.String("table", "", "Table name for a parquet schema (default: file name without extension)")
	strictFlag  = flag.Bool("strict", false, "Require exact type equality in comparisons (no INTEGER/FLOAT unification)")
	verboseFlag = flag.Bool("v", false, "Verbose logging to stderr")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] [queries.sql]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "A step-by-step SQL analyzer: tokens, syntax tree, and symbol table\n")
		fmt.Fprintf(os.Stderr, "for a SELECT subset, checked against a table catalog.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -q \"SELECT id, name FROM students WHERE age > 18\"\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -f json -q \"SELECT * FROM courses\"\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -schema catalog.json -q \"SELECT sku FROM products\"\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -schema data.parquet -q \"SELECT id FROM data\"\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s examples/queries.sql\n", os.Args[0])
	}
	flag.Parse()

	logrus.SetOutput(os.Stderr)
	logrus.SetLevel(logrus.WarnLevel)
	if *verboseFlag {
		logrus.SetLevel(logrus.DebugLevel)
	}

	reg, err := loadSchema(*schemaFlag, *tableFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading schema: %v\n", err)
		os.Exit(1)
	}
	logrus.WithField("tables", reg.TableNames()).Debug("catalog loaded")

	queries, err := collectQueries(*queryFlag, flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(queries) == 0 {
		fmt.Fprintf(os.Stderr, "Error: no query given (use -q, a .sql file, or pipe to stdin)\n\n")
		flag.Usage()
		os.Exit(1)
	}

	formatter, err := output.New(*formatFlag, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	opts := pipeline.Options{StrictNumeric: *strictFlag}
	failed := false
	for _, query := range queries {
		res := pipeline.RunWith(query, reg, opts)
		logrus.WithFields(logrus.Fields{
			"run":         res.ID,
			"phase":       res.Phase.String(),
			"tokens":      res.Metrics.Tokens,
			"ast_nodes":   res.Metrics.ASTNodes,
			"symbols":     res.Metrics.Symbols,
			"diagnostics": len(res.Diagnostics),
		}).Debug("analysis complete")

		if err := formatter.Format(res); err != nil {
			fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
			os.Exit(1)
		}
		if res.HasErrors() {
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

// loadSchema builds the catalog the analyzer validates against. An
// empty source selects the built-in demo schema.
func loadSchema(source, tableName string) (*schema.Registry, error) {
	if source == "" {
		return schema.Demo(), nil
	}
	switch ext := strings.ToLower(filepath.Ext(source)); ext {
	case ".json":
		return schema.LoadJSON(source)
	case ".parquet":
		if tableName == "" {
			tableName = strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
		}
		table, err := schema.FromParquet(source, tableName)
		if err != nil {
			return nil, err
		}
		reg := schema.NewRegistry()
		if err := reg.Add(table); err != nil {
			return nil, err
		}
		return reg, nil
	default:
		return nil, fmt.Errorf("unsupported schema source %q (want .json or .parquet)", source)
	}
}

// collectQueries gathers the queries to analyze: the -q flag, a .sql
// file given as a positional argument, or stdin when piped.
func collectQueries(q string, args []string) ([]string, error) {
	if q != "" {
		return []string{q}, nil
	}
	if len(args) >= 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return readQueries(f)
	}
	stat, err := os.Stdin.Stat()
	if err == nil && (stat.Mode()&os.ModeCharDevice) == 0 {
		return readQueries(os.Stdin)
	}
	return nil, nil
}

// readQueries reads one query per line, skipping blanks and
// -- comments.
func readQueries(r io.Reader) ([]string, error) {
	var queries []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		queries = append(queries, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return queries, nil
}
