// Package treeview renders a depth- and width-bounded directory tree
// from a flat list of paths, producing a compact project-structure
// summary for prompt assembly.
package treeview

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

const (
	// DefaultMaxDepth bounds how deep the rendered tree descends.
	DefaultMaxDepth = 4

	// DefaultMaxChildren bounds how many entries one directory shows
	// before a truncation marker.
	DefaultMaxChildren = 50
)

// Node is one entry in the rendered tree.
type Node struct {
	Name     string
	IsDir    bool
	children map[string]*Node
}

// Tree is an n-ary directory tree built from relative paths.
type Tree struct {
	root *Node
}

// Build constructs a tree from a flat list of slash- or
// OS-separated relative paths. Safe to call with any path list; it is
// independent of the live index.
func Build(paths []string) *Tree {
	root := &Node{Name: ".", IsDir: true, children: make(map[string]*Node)}

	for _, p := range paths {
		p = filepath.ToSlash(p)
		parts := strings.Split(p, "/")
		node := root
		for i, part := range parts {
			if part == "" || part == "." {
				continue
			}
			child, ok := node.children[part]
			if !ok {
				child = &Node{
					Name:     part,
					IsDir:    i < len(parts)-1,
					children: make(map[string]*Node),
				}
				node.children[part] = child
			}
			if i < len(parts)-1 {
				child.IsDir = true
			}
			node = child
		}
	}

	return &Tree{root: root}
}

// Render produces indented box-drawing text. Directories sort before
// files, each group alphabetically. Rendering stops at maxDepth
// levels, and a directory with more than maxChildren entries gets a
// "more files truncated" marker. Non-positive bounds fall back to the
// defaults.
func (t *Tree) Render(maxDepth, maxChildren int) string {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	if maxChildren <= 0 {
		maxChildren = DefaultMaxChildren
	}

	var sb strings.Builder
	renderChildren(&sb, t.root, "", 1, maxDepth, maxChildren)
	return sb.String()
}

func renderChildren(sb *strings.Builder, node *Node, prefix string, depth, maxDepth, maxChildren int) {
	if depth > maxDepth {
		return
	}

	children := sortedChildren(node)

	shown := children
	truncated := 0
	if len(children) > maxChildren {
		shown = children[:maxChildren]
		truncated = len(children) - maxChildren
	}

	for i, child := range shown {
		last := i == len(shown)-1 && truncated == 0

		branch := "├── "
		childPrefix := prefix + "│   "
		if last {
			branch = "└── "
			childPrefix = prefix + "    "
		}

		name := child.Name
		if child.IsDir {
			name += "/"
		}
		sb.WriteString(prefix + branch + name + "\n")

		if child.IsDir {
			renderChildren(sb, child, childPrefix, depth+1, maxDepth, maxChildren)
		}
	}

	if truncated > 0 {
		sb.WriteString(prefix + fmt.Sprintf("└── ... %d more files truncated\n", truncated))
	}
}

// sortedChildren orders a directory's entries: directories first, then
// files, each alphabetically.
func sortedChildren(node *Node) []*Node {
	children := make([]*Node, 0, len(node.children))
	for _, c := range node.children {
		children = append(children, c)
	}
	sort.Slice(children, func(i, j int) bool {
		a, b := children[i], children[j]
		if a.IsDir != b.IsDir {
			return a.IsDir
		}
		return a.Name < b.Name
	})
	return children
}
