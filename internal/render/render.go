// Package render assembles a resolved chain into a Cypher MATCH / WITH /
// WHERE / RETURN statement and its parameter map. It is the only package
// that allocates auto-generated variable and parameter names, and it
// does so in a single pass over the chain's segments in order.
package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ritamzico/neopath/internal/algebra"
	"github.com/ritamzico/neopath/internal/chain"
	"github.com/ritamzico/neopath/internal/nameset"
)

type resolvedNode struct {
	Var       string
	Inline    string
	Where     string
	Direction chain.Direction
}

type resolvedEdge struct {
	hasHops bool

	// plain edge
	Var    string
	Inline string
	Where  string

	// hop-bearing edge
	PathVar  string
	EdgesVar string
	NodesVar string
	HopShape string
}

// representative is the variable a WHERE condition attached to this
// segment renders against.
func (e resolvedEdge) representative() string {
	if e.hasHops {
		return e.PathVar
	}
	return e.Var
}

// Render lowers c into a complete Cypher statement and its parameter
// map. It returns an error when a label/type expression fails to lower
// (e.g. two distinct edge types conjoined on one edge segment), when a
// condition fails to render, or when the chain does not end on a node
// segment (for example, a chain whose last operation appended an edge).
func Render(c *chain.Chain) (string, map[string]any, error) {
	reserved := collectReserved(c)
	alloc := nameset.NewAllocator(reserved)
	params := map[string]any{}

	nodes := make([]resolvedNode, 0)
	edges := make([]resolvedEdge, 0)
	segmentVar := make([]string, len(c.Segments))

	for i, seg := range c.Segments {
		switch s := seg.(type) {
		case *chain.NodeSegment:
			v := s.UserVar
			if v == "" {
				v = alloc.NextVar()
			}
			inline, where, err := algebra.Lower(s.Expr, algebra.NodeContext, v)
			if err != nil {
				return "", nil, err
			}
			nodes = append(nodes, resolvedNode{Var: v, Inline: inline, Where: where, Direction: s.Direction})
			segmentVar[i] = v

		case *chain.EdgeSegment:
			if s.Hops != nil {
				// Consumed in this order to match the auxiliary naming
				// a hop-bearing edge needs for its WITH-clause unpacking:
				// the edges-collection name, then the nodes-collection
				// name, then the path name used in the MATCH clause.
				edgesVar := alloc.NextVar()
				nodesVar := alloc.NextVar()
				pathVar := alloc.NextVar()
				inline, where, err := algebra.Lower(s.Expr, algebra.EdgeContext, pathVar)
				if err != nil {
					return "", nil, err
				}
				e := resolvedEdge{
					hasHops:  true,
					PathVar:  pathVar,
					EdgesVar: edgesVar,
					NodesVar: nodesVar,
					HopShape: s.Hops.Shape(),
					Inline:   inline,
					Where:    where,
				}
				edges = append(edges, e)
				segmentVar[i] = pathVar
			} else {
				v := s.UserVar
				if v == "" {
					v = alloc.NextVar()
				}
				inline, where, err := algebra.Lower(s.Expr, algebra.EdgeContext, v)
				if err != nil {
					return "", nil, err
				}
				edges = append(edges, resolvedEdge{Var: v, Inline: inline, Where: where})
				segmentVar[i] = v
			}
		}
	}

	if len(nodes) == 0 || len(edges) != len(nodes)-1 {
		return "", nil, fmt.Errorf("neopath render: incomplete chain (%d nodes, %d edges); a path must end on a node", len(nodes), len(edges))
	}

	matchClause := renderMatch(nodes, edges)
	withClause := renderWith(edges)
	whereClause, err := renderWhere(c, segmentVar, alloc, params)
	if err != nil {
		return "", nil, err
	}
	returnClause := renderReturn(nodes, edges)

	sections := []string{matchClause}
	if withClause != "" {
		sections = append(sections, withClause)
	}
	if whereClause != "" {
		sections = append(sections, whereClause)
	}
	sections = append(sections, returnClause)

	return strings.Join(sections, "\n"), params, nil
}

func collectReserved(c *chain.Chain) map[string]struct{} {
	reserved := map[string]struct{}{}
	for _, seg := range c.Segments {
		switch s := seg.(type) {
		case *chain.NodeSegment:
			if s.UserVar != "" {
				reserved[s.UserVar] = struct{}{}
			}
		case *chain.EdgeSegment:
			if s.UserVar != "" {
				reserved[s.UserVar] = struct{}{}
			}
		}
	}
	return reserved
}

func nodeParen(n resolvedNode) string {
	return "(" + n.Var + n.Inline + ")"
}

func renderMatch(nodes []resolvedNode, edges []resolvedEdge) string {
	if len(edges) == 0 {
		return "MATCH " + nodeParen(nodes[0])
	}

	triples := make([]string, 0, len(edges))
	for i, e := range edges {
		start := nodes[i]
		end := nodes[i+1]

		var bracket string
		var prefix string
		if e.hasHops {
			bracket = "[" + e.Inline + e.HopShape + "]"
			prefix = e.PathVar + " = "
		} else {
			bracket = "[" + e.Var + e.Inline + "]"
		}

		left := "-"
		if end.Direction == chain.DirLeft {
			left = "<-"
		}
		right := "-"
		if end.Direction == chain.DirRight {
			right = "->"
		}

		triples = append(triples, prefix+nodeParen(start)+left+bracket+right+nodeParen(end))
	}

	return "MATCH " + strings.Join(triples, ",\n      ")
}

func renderWith(edges []resolvedEdge) string {
	parts := make([]string, 0)
	for _, e := range edges {
		if !e.hasHops {
			continue
		}
		parts = append(parts, "relationships("+e.PathVar+") AS "+e.EdgesVar+", nodes("+e.PathVar+")[1..-1] AS "+e.NodesVar)
	}
	if len(parts) == 0 {
		return ""
	}
	return "WITH *, " + strings.Join(parts, ",\n        ")
}

func renderWhere(c *chain.Chain, segmentVar []string, alloc *nameset.Allocator, params map[string]any) (string, error) {
	if len(c.Conditions) == 0 {
		return "", nil
	}
	parts := make([]string, 0, len(c.Conditions))
	for _, ac := range c.Conditions {
		frag, err := ac.Condition.Render(segmentVar[ac.SegmentIndex], alloc, params)
		if err != nil {
			return "", err
		}
		parts = append(parts, frag)
	}
	return "WHERE " + strings.Join(parts, "\n  AND "), nil
}

func renderReturn(nodes []resolvedNode, edges []resolvedEdge) string {
	names := make([]string, 0, len(nodes)+len(edges))
	for _, n := range nodes {
		names = append(names, n.Var)
	}
	for _, e := range edges {
		if e.hasHops {
			names = append(names, e.EdgesVar, e.NodesVar)
		} else {
			names = append(names, e.Var)
		}
	}

	seen := map[string]struct{}{}
	unique := make([]string, 0, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		unique = append(unique, n)
	}
	sort.Strings(unique)

	return "RETURN " + strings.Join(unique, ", ")
}
