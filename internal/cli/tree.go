package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"codemap/internal/adapter/treeview"
)

var (
	treeDepth    int
	treeChildren int
)

var treeCmd = &cobra.Command{
	Use:   "tree [path]",
	Short: "Print the indexed project structure",
	Long: `Render the indexed files as a directory tree, directories first,
bounded by depth and per-directory entry count.

Example:
  codemap tree --depth 3`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTree,
}

func init() {
	treeCmd.Flags().IntVar(&treeDepth, "depth", 0, "maximum tree depth (default from config)")
	treeCmd.Flags().IntVar(&treeChildren, "children", 0, "maximum entries per directory (default from config)")
	rootCmd.AddCommand(treeCmd)
}

func runTree(cmd *cobra.Command, args []string) error {
	path, err := resolveTarget(args)
	if err != nil {
		return err
	}

	idx, _, err := buildIndex(path)
	if err != nil {
		return err
	}

	rel := make([]string, 0)
	for _, p := range idx.Paths() {
		r, err := filepath.Rel(path, p)
		if err != nil {
			r = p
		}
		rel = append(rel, r)
	}

	depth := treeDepth
	if depth <= 0 {
		depth = GetConfig().Tree.MaxDepth
	}
	children := treeChildren
	if children <= 0 {
		children = GetConfig().Tree.MaxChildren
	}

	fmt.Println(filepath.Base(path) + "/")
	fmt.Print(treeview.Build(rel).Render(depth, children))
	return nil
}
