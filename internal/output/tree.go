package output

import (
	"path/filepath"
	"sort"
	"strings"
)

const (
	// Tree characters
	treeEdge  = "├── "
	treeLast  = "└── "
	treeVert  = "│   "
	treeSpace = "    "

	// Note alignment column
	noteColumn = 40
)

// FileEntry is a path with an optional status note shown in the plan tree.
type FileEntry struct {
	Path string
	Note string
}

// treeNode represents a node in the file tree.
type treeNode struct {
	name     string
	note     string
	isDir    bool
	children []*treeNode
}

// RenderFileTree renders the generation plan as a file tree rooted at root,
// with status notes aligned at a fixed column.
func RenderFileTree(root string, entries []FileEntry) string {
	if len(entries) == 0 {
		return ""
	}

	top := &treeNode{name: root, isDir: true}

	for _, e := range entries {
		parts := strings.Split(filepath.ToSlash(e.Path), "/")
		current := top

		for i, part := range parts {
			isLast := i == len(parts)-1

			var child *treeNode
			for _, c := range current.children {
				if c.name == part {
					child = c
					break
				}
			}

			if child == nil {
				child = &treeNode{name: part, isDir: !isLast}
				current.children = append(current.children, child)
			}

			if isLast {
				child.note = e.Note
			}

			current = child
		}
	}

	sortTree(top)

	var sb strings.Builder
	renderNode(&sb, top, "", true, true)
	return sb.String()
}

// sortTree recursively sorts tree nodes (directories first, then alphabetically).
func sortTree(node *treeNode) {
	if len(node.children) == 0 {
		return
	}

	sort.Slice(node.children, func(i, j int) bool {
		if node.children[i].isDir != node.children[j].isDir {
			return node.children[i].isDir
		}
		return node.children[i].name < node.children[j].name
	})

	for _, child := range node.children {
		sortTree(child)
	}
}

// renderNode recursively renders a tree node with proper indentation and styling.
func renderNode(sb *strings.Builder, node *treeNode, prefix string, isRoot, isLast bool) {
	styles := GetStyles()

	if isRoot {
		sb.WriteString(styles.Bold.Render(node.name + "/"))
		sb.WriteString("\n")
	} else {
		connector := treeEdge
		if isLast {
			connector = treeLast
		}

		name := node.name
		if node.isDir {
			name += "/"
		}

		line := prefix + connector + name

		if node.note != "" {
			padding := noteColumn - len(line)
			if padding < 2 {
				padding = 2
			}
			line += strings.Repeat(" ", padding)
			line += StatusStyle(node.note).Render(node.note)
		}

		sb.WriteString(line)
		sb.WriteString("\n")
	}

	for i, child := range node.children {
		childIsLast := i == len(node.children)-1

		var childPrefix string
		if isRoot {
			childPrefix = ""
		} else if isLast {
			childPrefix = prefix + treeSpace
		} else {
			childPrefix = prefix + treeVert
		}

		renderNode(sb, child, childPrefix, false, childIsLast)
	}
}
