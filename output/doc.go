// Package output renders analysis results for humans and machines.
//
// Currently supported formats:
//   - table: aligned text tables for tokens, symbols, and diagnostics
//   - json: one JSON document describing the full run
//   - tree: indented dump of the syntax tree
//   - dot: Graphviz source for the syntax tree
//   - csv: the token stream as comma-separated values
//
// Example usage:
//
//	res := pipeline.Run(query, schema.Demo())
//	formatter := output.NewTableFormatter(os.Stdout)
//	if err := formatter.Format(res); err != nil {
//	    log.Fatal(err)
//	}
package output
