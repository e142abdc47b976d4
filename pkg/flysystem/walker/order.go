package walker

import (
	"fmt"
	"path/filepath"

	"github.com/gammazero/toposort"
)

// DeletionOrder returns the absolute paths of entries and of absRoot ordered
// so that every child precedes its parent; absRoot always comes last.
// Removing them in this order only ever removes empty directories.
func DeletionOrder(absRoot string, entries []Entry) ([]string, error) {
	absRoot = filepath.Clean(absRoot)
	if len(entries) == 0 {
		return []string{absRoot}, nil
	}

	// Edge is [2]interface{} where element 0 comes before element 1,
	// so child -> parent (the child must be removed first)
	edges := make([]toposort.Edge, 0, len(entries))
	for _, entry := range entries {
		child := filepath.Clean(entry.AbsPath)
		edges = append(edges, toposort.Edge{child, filepath.Dir(child)})
	}

	sorted, err := toposort.Toposort(edges)
	if err != nil {
		return nil, fmt.Errorf("failed to order entries for deletion: %w", err)
	}

	order := make([]string, 0, len(sorted))
	for _, node := range sorted {
		path, ok := node.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected type in topological sort result: %T", node)
		}
		order = append(order, path)
	}

	if len(order) == 0 || order[len(order)-1] != absRoot {
		return nil, fmt.Errorf("entries are not all below %s", absRoot)
	}
	return order, nil
}
