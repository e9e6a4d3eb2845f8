// Package algebra implements the label/type expression tree — conjunction,
// disjunction, exclusive-or, and negation over raw labels, node-schema
// references, and edge-schema references — and its lowering into either an
// inline `:Label1:Label2` identifier or a WHERE fragment.
package algebra

import (
	"fmt"
	"strings"

	"github.com/ritamzico/neopath/internal/neopatherr"
	"github.com/ritamzico/neopath/internal/schema"
)

// Context says whether an expression is being lowered for a node segment
// or an edge segment; the two contexts lower very differently.
type Context int

const (
	NodeContext Context = iota
	EdgeContext
)

// Expr is a label/type expression tree node. It is implemented by Leaf,
// NodeRef, EdgeRef, And, Or, Xor, and Not.
type Expr interface {
	isExpr()
}

// Leaf is a raw, opaque label or type string, e.g. "SomeLabel" or
// "SomeLabel:OtherLabel". An empty Leaf contributes nothing when lowered.
type Leaf struct{ Label string }

// NodeRef is a label expression leaf referencing a node schema; it
// contributes the schema's whole canonical label tuple.
type NodeRef struct{ Schema *schema.NodeSchema }

// EdgeRef is a label expression leaf referencing an edge schema; it
// contributes the schema's single type string.
type EdgeRef struct{ Schema *schema.EdgeSchema }

// And is a conjunction of child expressions.
type And struct{ Children []Expr }

// Or is a disjunction of child expressions.
type Or struct{ Children []Expr }

// Xor is an exclusive-or of child expressions.
type Xor struct{ Children []Expr }

// Not negates a single child expression. Only meaningful in NodeContext.
type Not struct{ Child Expr }

func (Leaf) isExpr()    {}
func (NodeRef) isExpr() {}
func (EdgeRef) isExpr() {}
func (*And) isExpr()    {}
func (*Or) isExpr()     {}
func (*Xor) isExpr()    {}
func (*Not) isExpr()    {}

// NewAnd builds a conjunction, flattening nested And children and
// dropping duplicate/empty leaves, mirroring the two-pass
// dedupe-then-flatten construction of the original Logic base class.
func NewAnd(children ...Expr) Expr { return &And{Children: foldSameKind[*And](children)} }

// NewOr builds a disjunction with the same flatten/dedupe rules as NewAnd.
func NewOr(children ...Expr) Expr { return &Or{Children: foldSameKind[*Or](children)} }

// NewXor builds an exclusive-or with the same flatten/dedupe rules as
// NewAnd.
func NewXor(children ...Expr) Expr { return &Xor{Children: foldSameKind[*Xor](children)} }

// NewNot negates a single child expression.
func NewNot(child Expr) Expr { return &Not{Child: child} }

// foldSameKind implements the original `Logic.__init__`: drop falsy
// (empty-label) entries and exact duplicates (first occurrence kept),
// then expand any direct child of the same concrete kind K into its own
// children rather than nesting it.
func foldSameKind[K Expr](children []Expr) []Expr {
	unique := make([]Expr, 0, len(children))
	seen := make(map[string]struct{}, len(children))
	for _, c := range children {
		if isFalsy(c) {
			continue
		}
		key := dedupeKey(c)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, c)
	}

	flattened := make([]Expr, 0, len(unique))
	for _, c := range unique {
		if same, ok := c.(K); ok {
			flattened = append(flattened, childrenOf(same)...)
		} else {
			flattened = append(flattened, c)
		}
	}
	return flattened
}

func isFalsy(e Expr) bool {
	switch v := e.(type) {
	case Leaf:
		return v.Label == ""
	case *And:
		return len(v.Children) == 0
	case *Or:
		return len(v.Children) == 0
	case *Xor:
		return len(v.Children) == 0
	default:
		return false
	}
}

func childrenOf(e Expr) []Expr {
	switch v := e.(type) {
	case *And:
		return v.Children
	case *Or:
		return v.Children
	case *Xor:
		return v.Children
	default:
		return nil
	}
}

func dedupeKey(e Expr) string {
	switch v := e.(type) {
	case Leaf:
		return "L:" + v.Label
	case NodeRef:
		return "N:" + v.Schema.Name
	case EdgeRef:
		return "E:" + v.Schema.Name
	case *And:
		return "And(" + joinKeys(v.Children) + ")"
	case *Or:
		return "Or(" + joinKeys(v.Children) + ")"
	case *Xor:
		return "Xor(" + joinKeys(v.Children) + ")"
	case *Not:
		return "Not(" + dedupeKey(v.Child) + ")"
	default:
		return fmt.Sprintf("%v", e)
	}
}

func joinKeys(children []Expr) string {
	keys := make([]string, len(children))
	for i, c := range children {
		keys[i] = dedupeKey(c)
	}
	return strings.Join(keys, ",")
}

// Lower resolves expr into either an inline identifier (e.g.
// ":Label1:Label2" or ":Type1|:Type2") or a WHERE fragment referencing
// varName, per the rules in the component design. Exactly one of the two
// returned strings is non-empty, except for a bare empty Leaf (both
// empty) and a conjunction whose only non-composite part is empty (where
// non-empty, inline empty).
func Lower(expr Expr, ctx Context, varName string) (inline string, where string, err error) {
	switch v := expr.(type) {
	case Leaf:
		if v.Label == "" {
			return "", "", nil
		}
		return ":" + v.Label, "", nil

	case NodeRef:
		return ":" + strings.Join(v.Schema.Labels, ":"), "", nil

	case EdgeRef:
		return ":" + v.Schema.Type, "", nil

	case *And:
		return lowerAnd(v, ctx, varName)

	case *Or:
		return lowerOr(v, ctx, varName, "OR")

	case *Xor:
		if ctx == EdgeContext {
			// A segment can traverse only one relationship type at a
			// time, so Xor on edges lowers exactly like Or.
			return lowerOr(&Or{Children: v.Children}, ctx, varName, "OR")
		}
		return lowerOr(&Or{Children: v.Children}, ctx, varName, "XOR")

	case *Not:
		return lowerNot(v, ctx, varName)

	default:
		return "", "", fmt.Errorf("neopath algebra: unknown expression type %T", expr)
	}
}

func lowerAnd(a *And, ctx Context, varName string) (string, string, error) {
	if ctx == EdgeContext {
		return "", "", neopatherr.MultipleEdgeTypes()
	}

	if allPlainLabels(a.Children) {
		parts := collectPlainLabels(a.Children)
		return ":" + strings.Join(parts, ":"), "", nil
	}

	plain := collectPlainLabels(a.Children)
	whereParts := []string{varName + ":" + strings.Join(plain, ":")}
	for _, c := range a.Children {
		if isPlainLabelExpr(c) {
			continue
		}
		_, subWhere, err := Lower(c, ctx, varName)
		if err != nil {
			return "", "", err
		}
		whereParts = append(whereParts, "("+subWhere+")")
	}
	return "", strings.Join(whereParts, " AND "), nil
}

func lowerOr(o *Or, ctx Context, varName, sep string) (string, string, error) {
	if ctx == EdgeContext {
		parts := make([]string, 0, len(o.Children))
		for _, c := range o.Children {
			part, err := edgeIdentifierPart(c, varName)
			if err != nil {
				return "", "", err
			}
			parts = append(parts, part)
		}
		return ":" + strings.Join(parts, "|:"), "", nil
	}

	parts := make([]string, 0, len(o.Children))
	for _, c := range o.Children {
		part, err := wherePart(c, ctx, varName)
		if err != nil {
			return "", "", err
		}
		parts = append(parts, part)
	}
	return "", strings.Join(parts, " "+sep+" "), nil
}

func lowerNot(n *Not, ctx Context, varName string) (string, string, error) {
	if ctx == EdgeContext {
		return "", "", fmt.Errorf("neopath algebra: negation is not defined in edge context")
	}

	innerInline, innerWhere, err := Lower(n.Child, ctx, varName)
	if err != nil {
		return "", "", err
	}

	var fragment string
	if innerInline != "" {
		fragment = varName + innerInline
	} else {
		fragment = innerWhere
	}
	return "", "NOT (" + fragment + ")", nil
}

func edgeIdentifierPart(e Expr, varName string) (string, error) {
	switch v := e.(type) {
	case Leaf:
		return v.Label, nil
	case EdgeRef:
		return v.Schema.Type, nil
	default:
		inline, _, err := Lower(e, EdgeContext, varName)
		if err != nil {
			return "", err
		}
		return strings.TrimPrefix(inline, ":"), nil
	}
}

func wherePart(e Expr, ctx Context, varName string) (string, error) {
	switch v := e.(type) {
	case Leaf:
		return varName + ":" + v.Label, nil
	case NodeRef:
		return varName + ":" + strings.Join(v.Schema.Labels, ":"), nil
	case EdgeRef:
		return varName + ":" + v.Schema.Type, nil
	default:
		inline, where, err := Lower(e, ctx, varName)
		if err != nil {
			return "", err
		}
		if inline != "" {
			return varName + inline, nil
		}
		return "(" + where + ")", nil
	}
}

func isPlainLabelExpr(e Expr) bool {
	switch e.(type) {
	case Leaf, NodeRef:
		return true
	default:
		return false
	}
}

func allPlainLabels(children []Expr) bool {
	for _, c := range children {
		if !isPlainLabelExpr(c) {
			return false
		}
	}
	return true
}

// collectPlainLabels flattens children's labels into a single list,
// deduplicating across the whole conjunction (not just across
// expressions) while preserving first occurrence, per §4.2's
// "deduplication preserving first occurrence" rule.
func collectPlainLabels(children []Expr) []string {
	parts := make([]string, 0, len(children))
	seen := make(map[string]struct{}, len(children))
	add := func(label string) {
		if _, ok := seen[label]; ok {
			return
		}
		seen[label] = struct{}{}
		parts = append(parts, label)
	}
	for _, c := range children {
		switch v := c.(type) {
		case Leaf:
			add(v.Label)
		case NodeRef:
			for _, l := range v.Schema.Labels {
				add(l)
			}
		}
	}
	return parts
}
