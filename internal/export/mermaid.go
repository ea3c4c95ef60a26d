package export

import (
	"fmt"
	"strings"

	"github.com/dusk-indust/codeatlas/internal/graph"
)

// Mermaid renders the dependency graph as a Mermaid flowchart, one node per
// source unit and one arrow per edge, labeled with the edge reason.
func Mermaid(g *graph.Graph) string {
	var b strings.Builder
	b.WriteString("graph LR\n")

	ids := make(map[string]string, len(g.Nodes))
	for i, n := range g.Nodes {
		mid := fmt.Sprintf("n%d", i)
		ids[n.ID] = mid
		fmt.Fprintf(&b, "    %s[\"%s\"]\n", mid, escapeMermaid(n.ID))
	}
	for _, e := range g.Links {
		src, ok := ids[e.Source]
		if !ok {
			continue
		}
		dst, ok := ids[e.Target]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "    %s -->|%s| %s\n", src, e.Reason, dst)
	}
	return b.String()
}

func escapeMermaid(s string) string {
	s = strings.ReplaceAll(s, `"`, "'")
	return strings.ReplaceAll(s, "\n", " ")
}
