// rill - line-oriented stream transformer
//
// Applies pattern/command rules to input lines: each rule's command is a
// small expression whose value becomes an output line.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"rill"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	flagBegin   string
	flagEnd     string
	flagFS      string
	flagOFS     string
	flagImports []string
	flagVars    []string
	flagInPlace string
	flagStrict  bool
)

var rootCmd = &cobra.Command{
	Use:   "rill [flags] [[!]/pattern/]command ...",
	Short: "Transform lines of text with expression rules",
	Long: `rill reads input line by line and applies each rule in order.

A rule is an optional /pattern/ guard followed by a command expression.
The value of the command's last expression becomes an output line:
a string or number prints as-is, a list is joined with the output
delimiter, true prints the input line, and false or nil prints nothing.

Context bindings available to commands:
  line  raw input line (terminator kept)    l   right-trimmed line
  f     list of fields                      nf  number of fields
  n     1-based line number                 m   pattern match groups
  t     accumulator, "" at start, persists across lines

With no rules, every line is printed (or accumulated into t when an
end expression is set). Input is read from stdin unless -I is given.`,
	Example: `  cat access.log | rill '/GET (\S+)/m[0]'
  seq 3 | rill -E t 't += line'
  rill -I config.ini '!/^#/l'`,
	Args:          cobra.ArbitraryArgs,
	RunE:          run,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	rootCmd.Version = version

	rootCmd.Flags().StringVarP(&flagBegin, "begin", "B", "", "expression evaluated before the first line")
	rootCmd.Flags().StringVarP(&flagEnd, "end", "E", "", "expression evaluated after the last line")
	rootCmd.Flags().StringVarP(&flagFS, "field-sep", "F", "", "input field delimiter (default: whitespace runs)")
	rootCmd.Flags().StringVarP(&flagOFS, "output-sep", "O", " ", "output delimiter for list results")
	rootCmd.Flags().StringSliceVarP(&flagImports, "import", "i", nil, "modules whose members are bound by name")
	rootCmd.Flags().StringArrayVarP(&flagVars, "var", "v", nil, "pre-seeded variable (name=value, repeatable)")
	rootCmd.Flags().StringVarP(&flagInPlace, "in-place", "I", "", "edit file in place, keeping a ~ backup")
	rootCmd.Flags().BoolVar(&flagStrict, "strict", false, "abort on the first evaluation error")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "rill: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	config := &rill.Config{
		Begin:   flagBegin,
		End:     flagEnd,
		FS:      flagFS,
		OFS:     flagOFS,
		Strict:  flagStrict,
		Imports: flagImports,
		Stderr:  os.Stderr,
	}

	for _, v := range flagVars {
		name, value, ok := strings.Cut(v, "=")
		if !ok {
			return fmt.Errorf("invalid variable assignment %q (expected name=value)", v)
		}
		if config.Variables == nil {
			config.Variables = make(map[string]string)
		}
		config.Variables[name] = value
	}

	if flagInPlace != "" {
		return runInPlace(flagInPlace, args, config)
	}

	out := bufio.NewWriter(os.Stdout)
	if err := rill.Exec(args, os.Stdin, out, config); err != nil {
		return err
	}
	return out.Flush()
}
