package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"codemap/internal/domain"
)

var symbolsCmd = &cobra.Command{
	Use:   "symbols <kind>",
	Short: "List every indexed symbol of one kind",
	Long: `List all symbols of a given kind across the project, in index order.

Kinds: function, method, struct, class, interface, enum, constant,
variable, type-alias, module.

Example:
  codemap symbols struct`,
	Args: cobra.ExactArgs(1),
	RunE: runSymbols,
}

var importersCmd = &cobra.Command{
	Use:   "importers <module>",
	Short: "List files that import a module",
	Long: `List every indexed file whose import statements mention the given
module name, by substring match.

Example:
  codemap importers fsnotify`,
	Args: cobra.ExactArgs(1),
	RunE: runImporters,
}

func init() {
	rootCmd.AddCommand(symbolsCmd)
	rootCmd.AddCommand(importersCmd)
}

func runSymbols(cmd *cobra.Command, args []string) error {
	path, err := resolveTarget(nil)
	if err != nil {
		return err
	}

	idx, _, err := buildIndex(path)
	if err != nil {
		return err
	}

	results := idx.SearchByKind(domain.SymbolKind(args[0]))
	if len(results) == 0 {
		fmt.Printf("No %s symbols found\n", args[0])
		return nil
	}

	for _, r := range results {
		fmt.Printf("%s %s  %s\n",
			iconStyle.Render(r.Symbol.Kind.Icon()),
			nameStyle.Render(r.Symbol.Name),
			pathStyle.Render(fmt.Sprintf("%s:%d", r.FilePath, r.Symbol.Line)),
		)
	}
	fmt.Printf("%d symbol(s)\n", len(results))
	return nil
}

func runImporters(cmd *cobra.Command, args []string) error {
	path, err := resolveTarget(nil)
	if err != nil {
		return err
	}

	idx, _, err := buildIndex(path)
	if err != nil {
		return err
	}

	paths := idx.FindImporters(args[0])
	if len(paths) == 0 {
		fmt.Printf("Nothing imports %q\n", args[0])
		return nil
	}

	for _, p := range paths {
		fmt.Println(p)
	}
	return nil
}
