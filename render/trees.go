package render

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"

	"github.com/YuminosukeSato/boostviz/boosting"
	"github.com/YuminosukeSato/boostviz/pkg/errors"
	"github.com/YuminosukeSato/boostviz/pkg/log"
	"github.com/YuminosukeSato/boostviz/tree"
)

// Format is an output format for tree diagrams.
type Format string

// Supported tree diagram formats.
const (
	FormatDOT Format = "dot"
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

// DefaultTreeLimit is the default number of tree diagrams the CLI draws.
const DefaultTreeLimit = 3

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatDOT, FormatSVG, FormatPNG:
		return f, nil
	default:
		return "", errors.NewValidationError("format", "must be one of dot, svg, png", s)
	}
}

func (f Format) graphviz() graphviz.Format {
	switch f {
	case FormatSVG:
		return graphviz.SVG
	case FormatPNG:
		return graphviz.PNG
	default:
		return graphviz.XDOT
	}
}

// TreeGraph builds a Graphviz graph of t. Splits are labelled "X ≤ t";
// leaves are boxes labelled with their value and sample count. The caller
// must Close both returned values.
func TreeGraph(t *tree.Tree) (*graphviz.Graphviz, *cgraph.Graph, error) {
	if t == nil || t.Root == nil {
		return nil, nil, errors.NewValueError("render.TreeGraph", "nil tree")
	}

	g := graphviz.New()
	graph, err := g.Graph()
	if err != nil {
		g.Close()
		return nil, nil, errors.Wrap(err, "render: create graph")
	}

	d := &drawer{graph: graph}
	if err := d.draw(t.Root, nil); err != nil {
		graph.Close()
		g.Close()
		return nil, nil, err
	}
	return g, graph, nil
}

type drawer struct {
	graph *cgraph.Graph
	next  int
}

func (d *drawer) draw(n tree.Node, parent *cgraph.Node) error {
	node, err := d.graph.CreateNode("n" + strconv.Itoa(d.next))
	if err != nil {
		return errors.Wrap(err, "render: create node")
	}
	d.next++

	if parent != nil {
		if _, err := d.graph.CreateEdge("", parent, node); err != nil {
			return errors.Wrap(err, "render: create edge")
		}
	}

	switch v := n.(type) {
	case *tree.Leaf:
		// \\n is the graphviz line break; a raw newline would split the attribute.
		node.SetLabel(fmt.Sprintf("%s\\nn=%d", tree.Label(v), v.Samples))
		if node.SetShape(cgraph.BoxShape).Get("shape") != string(cgraph.BoxShape) {
			return errors.New("render: leaf shape not applied")
		}
	case *tree.Split:
		node.SetLabel(tree.Label(v))
		if err := d.draw(v.Left, node); err != nil {
			return err
		}
		if err := d.draw(v.Right, node); err != nil {
			return err
		}
	}
	return nil
}

// RenderTree writes the diagram of t to w.
func RenderTree(t *tree.Tree, format Format, w io.Writer) error {
	g, graph, err := TreeGraph(t)
	if err != nil {
		return err
	}
	defer func() {
		graph.Close()
		g.Close()
	}()

	if err := g.Render(graph, format.graphviz(), w); err != nil {
		return errors.Wrapf(err, "render: tree %d", t.ID)
	}
	return nil
}

// RenderTrees writes the diagrams of the first limit trees of res into dir as
// tree_00000.<format>, tree_00001.<format>, ... and returns the written paths.
// A limit of zero or less draws nothing.
func RenderTrees(res *boosting.RunResult, dir string, format Format, limit int) ([]string, error) {
	if res == nil {
		return nil, errors.NewValueError("render.RenderTrees", "nil run result")
	}
	if limit <= 0 {
		return nil, nil
	}
	if limit > len(res.Trees) {
		limit = len(res.Trees)
	}

	logger := log.GetLoggerWithName("render").With(log.OperationKey, log.OperationRender)

	paths := make([]string, 0, limit)
	for _, t := range res.Trees[:limit] {
		path := filepath.Join(dir, fmt.Sprintf("tree_%05d.%s", t.ID, format))
		if err := renderTreeFile(t, format, path); err != nil {
			return paths, err
		}
		logger.Debug("Tree rendered",
			log.TreeIDKey, t.ID,
			log.TreeLeavesKey, len(t.Leaves()),
			"path", path,
		)
		paths = append(paths, path)
	}
	return paths, nil
}

func renderTreeFile(t *tree.Tree, format Format, path string) error {
	g, graph, err := TreeGraph(t)
	if err != nil {
		return err
	}
	defer func() {
		graph.Close()
		g.Close()
	}()

	if err := g.RenderFilename(graph, format.graphviz(), path); err != nil {
		return errors.Wrapf(err, "render: write %s", path)
	}
	return nil
}
