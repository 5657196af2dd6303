package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/wordchain/pkg/chain"
)

// Options configures diagram generation.
type Options struct {
	// Detailed adds the node index and out-degree to each label.
	Detailed bool
	// OnlyPath drops every node and edge that is not part of the chain.
	OnlyPath bool
}

const highlight = "#f5b942"

// ToDOT converts g to Graphviz DOT with the chain best highlighted.
func ToDOT(g *chain.Graph, best chain.Path, opts Options) string {
	pos := make(map[int]int, len(best))
	for i, id := range best {
		pos[id] = i
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=\"monospace\", fontsize=18];\n")
	buf.WriteString("  edge [color=grey50];\n")
	buf.WriteString("\n")

	for u := range g.NodeCount() {
		i, on := pos[u]
		if opts.OnlyPath && !on {
			continue
		}
		attrs := []string{`label="` + escapeLabel(fmtLabel(g, u, opts.Detailed)) + `"`}
		if on {
			attrs = append(attrs, "fillcolor=\""+highlight+"\"", "penwidth=2", fmt.Sprintf("xlabel=\"%d\"", i+1))
		}
		fmt.Fprintf(&buf, "  n%d [%s];\n", u, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for u := range g.NodeCount() {
		for _, v := range g.Neighbors(u) {
			step := isStep(pos, u, v)
			switch {
			case step:
				fmt.Fprintf(&buf, "  n%d -> n%d [color=\"%s\", penwidth=3];\n", u, v, highlight)
			case !opts.OnlyPath:
				fmt.Fprintf(&buf, "  n%d -> n%d;\n", u, v)
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(g *chain.Graph, u int, detailed bool) string {
	item := g.Item(u)
	if !detailed {
		return item
	}
	return fmt.Sprintf("%s\n#%d out: %d", item, u, g.OutDegree(u))
}

func isStep(pos map[int]int, u, v int) bool {
	i, ok := pos[u]
	if !ok {
		return false
	}
	j, ok := pos[v]
	return ok && j == i+1
}

// RenderSVG lays out and renders DOT source to SVG.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the SVG scales from a
// zero-origin viewBox instead of Graphviz's point-based width and height.
func normalizeViewBox(svg []byte) []byte {
	m := viewBoxRe.FindSubmatch(svg)
	if m == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(m[3]), 64)
	h, _ := strconv.ParseFloat(string(m[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}

// escapeLabel quotes s for a DOT string. Newlines become the \n line break;
// other control characters have no DOT spelling and are dropped.
func escapeLabel(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r == '"' || r == '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r == '\n':
			b.WriteString(`\n`)
		case unicode.IsControl(r):
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
