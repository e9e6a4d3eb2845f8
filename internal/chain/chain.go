// Package chain models the linear sequence of alternating node and edge
// segments a query describes, and enforces the match-then-alternating
// well-formedness state machine while it is built.
package chain

import (
	"fmt"

	"github.com/ritamzico/neopath/internal/algebra"
	"github.com/ritamzico/neopath/internal/neopatherr"
	"github.com/ritamzico/neopath/internal/predicate"
)

// Direction records how a node segment connects to the edge preceding
// it: undirected, connected from the left (`<-`), or from the right
// (`->`).
type Direction int

const (
	DirNone Direction = iota
	DirLeft
	DirRight
)

// HopSpec is the optional variable-length-path annotation on an edge
// segment. Either bound may be absent.
type HopSpec struct {
	Min *int
	Max *int
}

// Shape renders the `*min..max` annotation, or "" when both bounds are
// absent.
func (h HopSpec) Shape() string {
	switch {
	case h.Min == nil && h.Max == nil:
		return ""
	case h.Min != nil && h.Max == nil:
		return fmt.Sprintf("*%d..", *h.Min)
	case h.Min == nil && h.Max != nil:
		return fmt.Sprintf("*..%d", *h.Max)
	default:
		return fmt.Sprintf("*%d..%d", *h.Min, *h.Max)
	}
}

// Segment is one position (node or edge) in a path chain.
type Segment interface {
	isSegment()
}

// NodeSegment is a node position: its label expression and how it
// connects to the preceding edge.
type NodeSegment struct {
	UserVar   string // "" when the allocator should fill one in
	Expr      algebra.Expr
	Direction Direction
}

// EdgeSegment is an edge position: its type expression and an optional
// variable-length hops descriptor.
type EdgeSegment struct {
	UserVar string // "" when the allocator should fill one in
	Expr    algebra.Expr
	Hops    *HopSpec
}

func (*NodeSegment) isSegment() {}
func (*EdgeSegment) isSegment() {}

// AttachedCondition is a predicate bound to the segment it was declared
// against.
type AttachedCondition struct {
	SegmentIndex int
	Condition    predicate.Condition
}

// Chain is the immutable, ordered sequence of segments and their
// attached conditions. Every append operation returns a new Chain value;
// the receiver is left unmodified.
type Chain struct {
	Segments   []Segment
	Conditions []AttachedCondition
}

// Empty returns the zero-length starting chain.
func Empty() *Chain {
	return &Chain{}
}

func (c *Chain) lastIsNode() (bool, bool) {
	if len(c.Segments) == 0 {
		return false, false
	}
	_, ok := c.Segments[len(c.Segments)-1].(*NodeSegment)
	return ok, true
}

func (c *Chain) cloneSegments(extra Segment) []Segment {
	next := make([]Segment, len(c.Segments)+1)
	copy(next, c.Segments)
	next[len(c.Segments)] = extra
	return next
}

// AppendNode appends a node segment. isMatch distinguishes the `match`
// operation (legal only on an empty chain) from `to`/`by`/`with_`
// (legal only right after an edge segment).
func (c *Chain) AppendNode(expr algebra.Expr, userVar string, dir Direction, isMatch bool) (*Chain, error) {
	lastIsNode, nonEmpty := c.lastIsNode()

	if !nonEmpty {
		if !isMatch {
			return nil, neopatherr.BadQuery(neopatherr.StartWithMatch)
		}
		seg := &NodeSegment{UserVar: userVar, Expr: expr, Direction: DirNone}
		return &Chain{Segments: c.cloneSegments(seg), Conditions: c.Conditions}, nil
	}

	if lastIsNode {
		if isMatch {
			return nil, neopatherr.BadQuery(neopatherr.DoubleMatch)
		}
		return nil, neopatherr.BadQuery(neopatherr.EdgeBeforeNode)
	}

	if isMatch {
		return nil, neopatherr.BadQuery(neopatherr.DoubleMatch)
	}
	seg := &NodeSegment{UserVar: userVar, Expr: expr, Direction: dir}
	return &Chain{Segments: c.cloneSegments(seg), Conditions: c.Conditions}, nil
}

// AppendEdge appends an edge segment (`connected_through`); legal only
// right after a node segment.
func (c *Chain) AppendEdge(expr algebra.Expr, userVar string, hops *HopSpec) (*Chain, error) {
	lastIsNode, nonEmpty := c.lastIsNode()

	if !nonEmpty {
		return nil, neopatherr.BadQuery(neopatherr.StartWithMatch)
	}
	if !lastIsNode {
		return nil, neopatherr.BadQuery(neopatherr.EdgeAfterEdge)
	}

	seg := &EdgeSegment{UserVar: userVar, Expr: expr, Hops: hops}
	return &Chain{Segments: c.cloneSegments(seg), Conditions: c.Conditions}, nil
}

// AppendCondition attaches a condition to the last segment on the chain.
func (c *Chain) AppendCondition(cond predicate.Condition) (*Chain, error) {
	if len(c.Segments) == 0 {
		return nil, neopatherr.BadQuery(neopatherr.StartWithMatch)
	}

	nextConditions := make([]AttachedCondition, len(c.Conditions)+1)
	copy(nextConditions, c.Conditions)
	nextConditions[len(c.Conditions)] = AttachedCondition{
		SegmentIndex: len(c.Segments) - 1,
		Condition:    cond,
	}
	return &Chain{Segments: c.Segments, Conditions: nextConditions}, nil
}
