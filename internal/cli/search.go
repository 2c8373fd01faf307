package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"codemap/internal/domain"
)

var (
	searchMax   int
	searchKind  string
	searchExact bool
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search indexed symbols by name",
	Long: `Build the index over the target directory and search it for symbols
matching the query. Matching is ranked: exact name beats case-insensitive
exact, then prefix, substring and fuzzy subsequence matches.

Examples:
  codemap search parseConfig          # Ranked fuzzy search
  codemap search Config --kind struct # Restrict to one symbol kind
  codemap search main --exact         # First symbol named exactly "main"`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchMax, "max", "n", 0, "maximum results (default from config)")
	searchCmd.Flags().StringVarP(&searchKind, "kind", "k", "", "filter by symbol kind (function, struct, class, ...)")
	searchCmd.Flags().BoolVar(&searchExact, "exact", false, "exact name match only")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	path, err := resolveTarget(nil)
	if err != nil {
		return err
	}

	idx, _, err := buildIndex(path)
	if err != nil {
		return err
	}

	max := searchMax
	if max <= 0 {
		max = GetConfig().Search.MaxResults
	}

	if searchExact {
		r, ok := idx.FindExact(query)
		if !ok {
			fmt.Printf("No symbol named %q\n", query)
			return nil
		}
		fmt.Print(formatResult(r))
		return nil
	}

	results := idx.Search(query, max)
	if searchKind != "" {
		kind := domain.SymbolKind(searchKind)
		filtered := results[:0:0]
		for _, r := range results {
			if r.Symbol.Kind == kind {
				filtered = append(filtered, r)
			}
		}
		results = filtered
	}

	if len(results) == 0 {
		fmt.Printf("No results for %q\n", query)
		return nil
	}

	for _, r := range results {
		fmt.Print(formatResult(r))
	}
	fmt.Printf("%d result(s)\n", len(results))
	return nil
}
