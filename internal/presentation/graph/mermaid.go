package graph

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/aretw0/clui/pkg/domain"
)

// Overlay marks runtime state on the chart.
type Overlay struct {
	// Visible is the number of root steps revealed so far.
	Visible int
}

// GenerateMermaid renders a script as a Mermaid flowchart (graph TD).
// Steps are chained in order; shapes follow the kind:
//   - message: [Rectangle]
//   - prompt: [/Parallelogram/]
//   - confirm: {Rhombus}
//   - session: a subgraph holding its own chain
//
// Follow-ups declared under insert hang off their prompt with the answer as label.
func GenerateMermaid(script domain.Script, overlay *Overlay) string {
	g := &generator{}
	g.line("graph TD")
	g.line(`    start(("%s"))`, escape(nameOr(script.Name, "start")))
	roots := g.chain("s", script.Steps, "    ", "start", "s_0")

	if overlay != nil && overlay.Visible > 0 {
		g.line("")
		g.line("    %% Overlay Styles")
		g.line("    classDef visible fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;")
		g.line("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;")
		n := min(overlay.Visible, len(roots))
		for i := 0; i < n-1; i++ {
			g.line("    class %s visible;", roots[i])
		}
		if n > 0 {
			g.line("    class %s current;", roots[n-1])
		}
	}
	return g.sb.String()
}

type generator struct {
	sb strings.Builder
}

func (g *generator) line(format string, args ...any) {
	fmt.Fprintf(&g.sb, format+"\n", args...)
}

// chain writes the steps in order, links them from prev and returns their ids.
// root is the first step of the owning session, the target of a reset.
func (g *generator) chain(prefix string, specs []domain.StepSpec, indent, prev, root string) []string {
	ids := make([]string, 0, len(specs))
	for i, spec := range specs {
		id := fmt.Sprintf("%s_%d", prefix, i)
		ids = append(ids, id)
		g.node(id, spec, indent, root)
		if prev != "" {
			g.line("%s%s --> %s", indent, prev, id)
		}
		prev = id
	}
	return ids
}

func (g *generator) node(id string, spec domain.StepSpec, indent, root string) {
	switch spec.Kind {
	case domain.KindSession:
		g.line(`%ssubgraph %s ["%s"]`, indent, id, escape(nameOr(spec.Key, spec.Text, "session")))
		g.chain(id, spec.Steps, indent+"    ", "", id+"_0")
		g.line("%send", indent)
		return
	case domain.KindPrompt:
		g.line(`%s%s[/"%s"/]`, indent, id, escape(spec.Text))
	case domain.KindConfirm:
		g.line(`%s%s{"%s"}`, indent, id, escape(spec.Text))
		if spec.ResetOnNo {
			g.line(`%s%s -. "no" .-> %s`, indent, id, root)
		}
	default:
		g.line(`%s%s["%s"]`, indent, id, escape(spec.Text))
	}

	for _, answer := range sortedKeys(spec.Insert) {
		branch := fmt.Sprintf("%s_%s", id, sanitizeID(answer))
		ids := g.chain(branch, spec.Insert[answer], indent, "", root)
		if len(ids) > 0 {
			g.line(`%s%s -- "%s" --> %s`, indent, id, escape(answer), ids[0])
		}
	}
}

func sortedKeys(m map[string][]domain.StepSpec) []string {
	return slices.Sorted(maps.Keys(m))
}

func nameOr(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func escape(label string) string {
	label = strings.ReplaceAll(label, "\"", "'")
	return strings.ReplaceAll(label, "\n", "<br/>")
}

func sanitizeID(id string) string {
	if id == domain.AnyAnswer {
		return "any"
	}
	var sb strings.Builder
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			sb.WriteRune(r)
		default:
			sb.WriteRune('_')
		}
	}
	return sb.String()
}
