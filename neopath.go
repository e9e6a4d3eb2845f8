// Package neopath is a typed, fluent builder that compiles graph-pattern
// match descriptions into Cypher query strings and their accompanying
// parameter maps. It does not connect to a database, decode results, or
// execute anything: it is a pure string/parameter producer.
//
// A user declares node and edge schemas once, links typed property
// descriptors to them, then chains Match/ConnectedThrough/To/By/With/
// Where calls to describe a path. Every call returns a fresh Query value;
// the receiver is left untouched, so a Query is safe to branch from and
// share.
package neopath

import (
	"fmt"

	"github.com/ritamzico/neopath/internal/algebra"
	"github.com/ritamzico/neopath/internal/chain"
	"github.com/ritamzico/neopath/internal/neopatherr"
	"github.com/ritamzico/neopath/internal/predicate"
	"github.com/ritamzico/neopath/internal/render"
	"github.com/ritamzico/neopath/internal/schema"
)

// Error is the common interface every error this package returns
// implements: a normal Go error plus a stable, matchable Kind string
// (one of BadNodeLabels, BadEdgeType, BadQuery's rule names, or
// MultipleEdgeTypes).
type Error = neopatherr.Error

// NodeSchema and EdgeSchema are immutable descriptors for a node kind
// (its canonical, sorted, deduplicated labels) and an edge kind (its
// single relationship type), registered once at startup.
type (
	NodeSchema = schema.NodeSchema
	EdgeSchema = schema.EdgeSchema
	ValueKind  = schema.ValueKind
)

// Runtime value kinds a Property may accept.
const (
	AnyKind    = schema.AnyKind
	IntKind    = schema.IntKind
	FloatKind  = schema.FloatKind
	StringKind = schema.StringKind
	BoolKind   = schema.BoolKind
)

// RegisterNode declares a node schema. When labels is empty the sole
// label defaults to name.
func RegisterNode(name string, labels ...string) (*NodeSchema, error) {
	return schema.RegisterNode(name, labels...)
}

// RegisterEdge declares an edge schema. When typ is empty it defaults to
// the uppercased declared name.
func RegisterEdge(name string, typ string) (*EdgeSchema, error) {
	return schema.RegisterEdge(name, typ)
}

// Condition is a predicate attached to one chain segment: an opaque
// Cypher fragment, a property comparison, an existence check, or a
// negation of another Condition.
type Condition = predicate.Condition

// Property is a typed, named field of a node or edge schema. Its
// comparison methods (Eq, Ne, Exists, StartsWith, IsNull) build
// Conditions that resolve against whichever segment a Where call
// attaches them to.
type Property struct{ *schema.Property }

// NewProperty links a property descriptor back to owner (a *NodeSchema
// or *EdgeSchema) and records the runtime kinds it accepts. With no
// kinds given, any value passes its type check.
func NewProperty(owner any, propName string, kinds ...ValueKind) Property {
	return Property{schema.NewProperty(owner, propName, kinds...)}
}

// NewIntProperty declares an integer property constrained to the signed
// 64-bit range.
func NewIntProperty(owner any, propName string) Property {
	return Property{schema.NewIntProperty(owner, propName)}
}

func (p Property) Eq(value any) Condition         { return predicate.Eq(p.Property, value) }
func (p Property) Ne(value any) Condition         { return predicate.Ne(p.Property, value) }
func (p Property) Exists() Condition              { return predicate.Exists(p.Property) }
func (p Property) StartsWith(value any) Condition { return predicate.StartsWith(p.Property, value) }
func (p Property) IsNull() Condition              { return predicate.IsNull(p.Property) }

// On binds this property to an explicit chain variable, for referencing
// a segment other than the one a condition is attached to.
func (p Property) On(varName string) Ref { return Ref{predicate.On(p.Property, varName)} }

// Ref is a property descriptor bound to an explicit chain variable. Its
// comparison methods are promoted from the embedded predicate.Ref.
type Ref struct{ predicate.Ref }

// Expr is a label/type expression: a raw label, a schema reference, or a
// composite built from And, Or, Xor, and Not.
type Expr = algebra.Expr

// Label wraps a raw, opaque label or type string.
func Label(s string) Expr { return algebra.Leaf{Label: s} }

// And builds a conjunction, flattening nested And children and dropping
// duplicate/empty leaves.
func And(children ...Expr) Expr { return algebra.NewAnd(children...) }

// Or builds a disjunction with the same flatten/dedupe rules as And.
func Or(children ...Expr) Expr { return algebra.NewOr(children...) }

// Xor builds an exclusive-or with the same flatten/dedupe rules as And.
func Xor(children ...Expr) Expr { return algebra.NewXor(children...) }

// Not negates a single child expression. Only meaningful in node
// context; passing it to ConnectedThrough returns an error from that
// call.
func Not(child Expr) Expr { return algebra.NewNot(child) }

// nodeRef and edgeRef let toExpr accept a bare *NodeSchema/*EdgeSchema
// as shorthand for a whole-schema label/type reference.
func nodeRef(s *NodeSchema) Expr { return algebra.NodeRef{Schema: s} }
func edgeRef(s *EdgeSchema) Expr { return algebra.EdgeRef{Schema: s} }

// toExpr accepts the three forms §4.4 allows as an `ident`: a raw
// string, a schema reference, or an already-built Expr.
func toExpr(ident any) (Expr, error) {
	switch v := ident.(type) {
	case string:
		return Label(v), nil
	case *NodeSchema:
		return nodeRef(v), nil
	case *EdgeSchema:
		return edgeRef(v), nil
	case Expr:
		return v, nil
	default:
		return nil, fmt.Errorf("neopath: unsupported identifier type %T (want string, *NodeSchema, *EdgeSchema, or Expr)", ident)
	}
}

func firstOrEmpty(vs []string) string {
	if len(vs) == 0 {
		return ""
	}
	return vs[0]
}

// HopOption configures a ConnectedThrough call's variable-length-path
// annotation and variable name.
type HopOption func(*hopConfig)

type hopConfig struct {
	userVar string
	min     *int
	max     *int
}

// Var sets the explicit variable name for the edge segment (or, for a
// variable-length edge, is accepted but unused — see §4.5).
func Var(name string) HopOption {
	return func(h *hopConfig) { h.userVar = name }
}

// MinHops sets the lower bound of a variable-length path.
func MinHops(n int) HopOption {
	return func(h *hopConfig) { h.min = &n }
}

// MaxHops sets the upper bound of a variable-length path.
func MaxHops(n int) HopOption {
	return func(h *hopConfig) { h.max = &n }
}

// Query is the immutable fluent builder. Every method returns a new
// Query value; the receiver is never mutated.
type Query struct {
	c *chain.Chain
}

// NewQuery returns the empty starting query.
func NewQuery() Query { return Query{c: chain.Empty()} }

// Match places the first node segment. Legal only on an empty query.
func (q Query) Match(ident any, userVar ...string) (Query, error) {
	expr, err := toExpr(ident)
	if err != nil {
		return Query{}, err
	}
	nc, err := q.c.AppendNode(expr, firstOrEmpty(userVar), chain.DirNone, true)
	if err != nil {
		return Query{}, err
	}
	return Query{c: nc}, nil
}

// To appends a node segment connected from the preceding edge with a
// right-pointing arrow (`->`). Legal only right after ConnectedThrough.
func (q Query) To(ident any, userVar ...string) (Query, error) {
	return q.appendNode(ident, firstOrEmpty(userVar), chain.DirRight)
}

// By appends a node segment connected from the preceding edge with a
// left-pointing arrow (`<-`). Legal only right after ConnectedThrough.
func (q Query) By(ident any, userVar ...string) (Query, error) {
	return q.appendNode(ident, firstOrEmpty(userVar), chain.DirLeft)
}

// With appends an undirected node segment. Legal only right after
// ConnectedThrough.
func (q Query) With(ident any, userVar ...string) (Query, error) {
	return q.appendNode(ident, firstOrEmpty(userVar), chain.DirNone)
}

func (q Query) appendNode(ident any, userVar string, dir chain.Direction) (Query, error) {
	expr, err := toExpr(ident)
	if err != nil {
		return Query{}, err
	}
	nc, err := q.c.AppendNode(expr, userVar, dir, false)
	if err != nil {
		return Query{}, err
	}
	return Query{c: nc}, nil
}

// ConnectedThrough appends an edge segment. Legal only right after a
// node segment. MinHops/MaxHops/Var configure the optional
// variable-length-path annotation and explicit variable name.
//
// A conjunction of distinct edge types is invalid in edge context; this
// is checked eagerly here (rather than deferred to Build) so the error
// surfaces from the offending call, matching the earliest-detection
// error-handling design.
func (q Query) ConnectedThrough(ident any, opts ...HopOption) (Query, error) {
	expr, err := toExpr(ident)
	if err != nil {
		return Query{}, err
	}
	if _, _, err := algebra.Lower(expr, algebra.EdgeContext, ""); err != nil {
		return Query{}, err
	}

	cfg := &hopConfig{}
	for _, o := range opts {
		o(cfg)
	}
	var hops *chain.HopSpec
	if cfg.min != nil || cfg.max != nil {
		hops = &chain.HopSpec{Min: cfg.min, Max: cfg.max}
	}

	nc, err := q.c.AppendEdge(expr, cfg.userVar, hops)
	if err != nil {
		return Query{}, err
	}
	return Query{c: nc}, nil
}

// Where attaches a condition — a raw Cypher fragment string or a
// Condition built from a Property or Ref — to the most recently
// appended segment.
func (q Query) Where(cond any) (Query, error) {
	var c Condition
	switch v := cond.(type) {
	case string:
		c = predicate.RawCondition{Fragment: v}
	case Condition:
		c = v
	default:
		return Query{}, fmt.Errorf("neopath: where() accepts a string fragment or a Condition, got %T", cond)
	}

	nc, err := q.c.AppendCondition(c)
	if err != nil {
		return Query{}, err
	}
	return Query{c: nc}, nil
}

// Build renders the query into its Cypher string and parameter map. A
// Query assembled exclusively through this package's builder methods is
// always well-formed by construction, so rendering cannot fail; Build
// has no error return, matching §7's "rendering errors are absent by
// construction."
func (q Query) Build() (string, map[string]any) {
	cypher, params, err := render.Render(q.c)
	if err != nil {
		// Unreachable for a Query built exclusively through this API:
		// ConnectedThrough already rejects any edge expression that
		// would fail to lower, the only failure Render can report.
		panic(err)
	}
	return cypher, params
}
