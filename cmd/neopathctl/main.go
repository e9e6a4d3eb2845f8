// Command neopathctl is a small interactive and scriptable front-end
// over the neopath query compiler: it turns a handful of textual
// MATCH/CONNECTED/TO/BY/WITH/WHERE lines into a rendered Cypher query
// and parameter map, without ever talking to a database.
package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ritamzico/neopath"
	"github.com/ritamzico/neopath/internal/script"
)

const helpText = `neopathctl REPL

Commands:
  MATCH <label> [AS <var>]               start the path at a node
  CONNECTED <label> [HOPS m..M] [AS var] traverse an edge
  TO <label> [AS <var>]                  add a node, ->  from the edge
  BY <label> [AS <var>]                  add a node, <-  from the edge
  WITH <label> [AS <var>]                add a node, undirected
  WHERE <fragment>                       attach a raw condition
  render                                 print the compiled query so far
  reset                                  discard the current query
  help                                   show this help message
  exit / quit                            leave the REPL
`

func printResult(cypher string, params map[string]any) {
	fmt.Println(cypher)
	if len(params) == 0 {
		return
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	fmt.Print("params: {")
	for i, k := range keys {
		if i > 0 {
			fmt.Print(", ")
		}
		fmt.Printf("%s: %v", k, params[k])
	}
	fmt.Println("}")
}

func newCompileCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "compile [file]",
		Short: "Compile a script of builder lines into a Cypher query",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r *os.File
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			} else {
				r = os.Stdin
			}

			var lines []string
			scanner := bufio.NewScanner(r)
			for scanner.Scan() {
				lines = append(lines, scanner.Text())
			}
			if err := scanner.Err(); err != nil {
				return err
			}

			q, err := script.ApplyScript(lines)
			if err != nil {
				return err
			}
			cypher, params := q.Build()

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(struct {
					Cypher string         `json:"cypher"`
					Params map[string]any `json:"params"`
				}{cypher, params})
			}
			printResult(cypher, params)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit {cypher, params} as JSON instead of plain text")
	return cmd
}

func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactively build and render a query line by line",
		RunE: func(cmd *cobra.Command, args []string) error {
			q := neopath.NewQuery()
			scanner := bufio.NewScanner(os.Stdin)
			fmt.Println("neopathctl — Cypher pattern-match compiler")
			fmt.Println(`Type "help" for available commands.`)
			fmt.Println()

			for {
				fmt.Print("neopath> ")
				if !scanner.Scan() {
					break
				}
				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					continue
				}

				switch strings.ToLower(line) {
				case "exit", "quit":
					return nil
				case "help":
					fmt.Print(helpText)
					continue
				case "reset":
					q = neopath.NewQuery()
					fmt.Println("query reset")
					continue
				case "render":
					cypher, params := q.Build()
					printResult(cypher, params)
					continue
				}

				next, err := script.ApplyLine(q, line)
				if err != nil {
					fmt.Fprintf(os.Stderr, "error: %v\n", err)
					continue
				}
				q = next
			}
			return nil
		},
	}
}

func main() {
	root := &cobra.Command{
		Use:   "neopathctl",
		Short: "Compile graph-pattern match descriptions into Cypher",
	}
	root.AddCommand(newCompileCmd(), newReplCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
