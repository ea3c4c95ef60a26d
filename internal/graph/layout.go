package graph

import "sort"

// LayoutOptions are the geometry constants for the default placement.
type LayoutOptions struct {
	LayerGap     float64 // horizontal distance between levels
	MarginX      float64
	MarginY      float64
	HeaderHeight float64 // fixed card header
	RowHeight    float64 // per-symbol row
	MinHeight    float64 // floor for units with few symbols
	VerticalGap  float64 // gap between cards in a column
}

// DefaultLayoutOptions returns the geometry the default view is tuned for.
func DefaultLayoutOptions() LayoutOptions {
	return LayoutOptions{
		LayerGap:     280,
		MarginX:      60,
		MarginY:      60,
		HeaderHeight: 42,
		RowHeight:    16,
		MinHeight:    70,
		VerticalGap:  36,
	}
}

func (o LayoutOptions) withDefaults() LayoutOptions {
	def := DefaultLayoutOptions()
	if o.LayerGap <= 0 {
		o.LayerGap = def.LayerGap
	}
	if o.MarginX <= 0 {
		o.MarginX = def.MarginX
	}
	if o.MarginY <= 0 {
		o.MarginY = def.MarginY
	}
	if o.HeaderHeight <= 0 {
		o.HeaderHeight = def.HeaderHeight
	}
	if o.RowHeight <= 0 {
		o.RowHeight = def.RowHeight
	}
	if o.MinHeight <= 0 {
		o.MinHeight = def.MinHeight
	}
	if o.VerticalGap <= 0 {
		o.VerticalGap = def.VerticalGap
	}
	return o
}

// nodeHeight is the card height the renderer will draw: header plus one row
// per symbol, floored at the minimum.
func nodeHeight(u *SourceUnit, opts LayoutOptions) float64 {
	h := opts.HeaderHeight + opts.RowHeight*float64(len(u.Symbols))
	if h < opts.MinHeight {
		h = opts.MinHeight
	}
	return h
}

// ComputeLevels assigns an integer level per node approximating topological
// depth. Iteration is bounded by the node count, which guarantees
// termination even when the edge set contains cycles: inside a cycle levels
// simply stop advancing once the budget is spent. That under-count is an
// accepted approximation, not an error.
func ComputeLevels(g *Graph) map[string]int {
	levels := make(map[string]int, len(g.Nodes))
	for _, n := range g.Nodes {
		levels[n.ID] = 0
	}
	for i := 0; i < len(g.Nodes); i++ {
		changed := false
		for _, e := range g.Links {
			if levels[e.Target] < levels[e.Source]+1 {
				levels[e.Target] = levels[e.Source] + 1
				changed = true
			}
		}
		if !changed {
			break
		}
	}
	return levels
}

// ApplyLayout computes a deterministic default position for every node that
// does not already carry one. Nodes are columned by level; within a column
// they sort by (group, name) and stack top to bottom, each advancing the
// cursor by its own visual height plus a fixed gap. Nodes with an explicit
// cached position keep it — only their height is recomputed.
func ApplyLayout(g *Graph, opts LayoutOptions) {
	opts = opts.withDefaults()
	levels := ComputeLevels(g)

	byLevel := make(map[int][]*SourceUnit)
	maxLevel := 0
	for _, n := range g.Nodes {
		lv := levels[n.ID]
		byLevel[lv] = append(byLevel[lv], n)
		if lv > maxLevel {
			maxLevel = lv
		}
	}

	for lv := 0; lv <= maxLevel; lv++ {
		column := byLevel[lv]
		sort.Slice(column, func(i, j int) bool {
			if column[i].Group != column[j].Group {
				return column[i].Group < column[j].Group
			}
			return column[i].Name < column[j].Name
		})

		x := opts.MarginX + float64(lv)*opts.LayerGap
		y := opts.MarginY
		for _, n := range column {
			n.Height = nodeHeight(n, opts)
			if n.X == nil || n.Y == nil {
				nx, ny := x, y
				n.X, n.Y = &nx, &ny
			}
			y += n.Height + opts.VerticalGap
		}
	}
}
