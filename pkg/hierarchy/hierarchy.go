// Package hierarchy answers reachability questions over the group forest.
//
// A Hierarchy is a snapshot: it is built from the full list of groups and
// never refreshed. Callers that need current data call Load again.
package hierarchy

import (
	"context"
	"errors"
	"fmt"

	"github.com/adminwarden/warden/pkg/model"
)

var (
	// ErrGroupNotFound is returned when an id names no group in the snapshot
	ErrGroupNotFound = errors.New("group not found")
	// ErrCycleDetected is returned when a traversal revisits a group
	ErrCycleDetected = errors.New("group hierarchy contains a cycle")
)

// GroupLister is the storage the hierarchy is loaded from
type GroupLister interface {
	ListGroups(ctx context.Context) ([]model.Group, error)
}

type node struct {
	id       string
	parent   int // -1 for roots
	children []int
}

// Hierarchy is an immutable snapshot of the group forest
type Hierarchy struct {
	nodes []node
	index map[string]int
}

// Load reads every group from l and builds a Hierarchy
func Load(ctx context.Context, l GroupLister) (*Hierarchy, error) {
	groups, err := l.ListGroups(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading groups: %w", err)
	}
	return New(groups), nil
}

// New builds a Hierarchy. A group whose parent is unknown is treated as a root.
func New(groups []model.Group) *Hierarchy {
	h := &Hierarchy{
		nodes: make([]node, 0, len(groups)),
		index: make(map[string]int, len(groups)),
	}
	for _, g := range groups {
		if _, dup := h.index[g.ID]; dup {
			continue
		}
		h.index[g.ID] = len(h.nodes)
		h.nodes = append(h.nodes, node{id: g.ID, parent: -1})
	}
	for _, g := range groups {
		i := h.index[g.ID]
		if h.nodes[i].parent != -1 {
			continue
		}
		p, ok := h.index[g.Parent()]
		if !ok {
			continue
		}
		h.nodes[i].parent = p
		h.nodes[p].children = append(h.nodes[p].children, i)
	}
	return h
}

// Len returns the number of groups in the snapshot
func (h *Hierarchy) Len() int {
	return len(h.nodes)
}

// Contains reports whether id names a group in the snapshot
func (h *Hierarchy) Contains(id string) bool {
	_, ok := h.index[id]
	return ok
}

// DescendantsOf returns id followed by every group below it, breadth first
func (h *Hierarchy) DescendantsOf(id string) ([]string, error) {
	start, ok := h.index[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGroupNotFound, id)
	}

	visited := make([]bool, len(h.nodes))
	visited[start] = true
	queue := []int{start}
	out := make([]string, 0, 1)

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		out = append(out, h.nodes[cur].id)
		for _, child := range h.nodes[cur].children {
			if visited[child] {
				return nil, fmt.Errorf("%w: at %s", ErrCycleDetected, h.nodes[child].id)
			}
			visited[child] = true
			queue = append(queue, child)
		}
	}
	return out, nil
}

// AncestorsOf returns the path from id up to its root, both included
func (h *Hierarchy) AncestorsOf(id string) ([]string, error) {
	cur, ok := h.index[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGroupNotFound, id)
	}

	visited := make([]bool, len(h.nodes))
	var out []string
	for cur != -1 {
		if visited[cur] {
			return nil, fmt.Errorf("%w: at %s", ErrCycleDetected, h.nodes[cur].id)
		}
		visited[cur] = true
		out = append(out, h.nodes[cur].id)
		cur = h.nodes[cur].parent
	}
	return out, nil
}

// Closure returns every group at or below any of ids. Unknown ids contribute nothing.
func (h *Hierarchy) Closure(ids []string) (map[string]struct{}, error) {
	out := make(map[string]struct{})
	for _, id := range ids {
		if !h.Contains(id) {
			continue
		}
		if _, done := out[id]; done {
			continue
		}
		desc, err := h.DescendantsOf(id)
		if err != nil {
			return nil, err
		}
		for _, d := range desc {
			out[d] = struct{}{}
		}
	}
	return out, nil
}

// CheckParent reports ErrCycleDetected if making parentID the parent of id
// would close a loop. An empty parentID (a root) is always allowed.
func (h *Hierarchy) CheckParent(id, parentID string) error {
	if parentID == "" {
		return nil
	}
	if id == parentID {
		return fmt.Errorf("%w: %s cannot be its own parent", ErrCycleDetected, id)
	}
	if !h.Contains(parentID) {
		return fmt.Errorf("%w: %s", ErrGroupNotFound, parentID)
	}
	ancestors, err := h.AncestorsOf(parentID)
	if err != nil {
		return err
	}
	for _, a := range ancestors {
		if a == id {
			return fmt.Errorf("%w: %s is above %s", ErrCycleDetected, id, parentID)
		}
	}
	return nil
}
