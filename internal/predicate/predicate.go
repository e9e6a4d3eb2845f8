// Package predicate implements property references and the comparisons
// they can build (==, !=, exists, starts_with, is_null), plus the
// Condition variants a query's WHERE clause is assembled from.
//
// A comparison built directly from a Property (Eq, Ne, Exists, ...) is
// unbound: it renders against whichever segment variable the renderer
// resolves for the segment the condition was attached to via Where. A
// comparison built from a Ref (obtained with On) is bound to an explicit
// variable instead, for the rarer case of referencing a segment other
// than the one the condition is attached to.
package predicate

import (
	"fmt"

	"github.com/ritamzico/neopath/internal/nameset"
	"github.com/ritamzico/neopath/internal/schema"
)

// Condition is a predicate attached to one chain segment. Render emits
// the Cypher fragment for this condition, binding to segmentVar when the
// condition is unbound, allocating a parameter name via alloc when the
// condition binds a value.
type Condition interface {
	Render(segmentVar string, alloc *nameset.Allocator, params map[string]any) (string, error)
}

// RawCondition is an opaque Cypher fragment passed through verbatim.
type RawCondition struct{ Fragment string }

func (c RawCondition) Render(string, *nameset.Allocator, map[string]any) (string, error) {
	return c.Fragment, nil
}

// NotCondition negates another condition.
type NotCondition struct{ Inner Condition }

func (c NotCondition) Render(segmentVar string, alloc *nameset.Allocator, params map[string]any) (string, error) {
	inner, err := c.Inner.Render(segmentVar, alloc, params)
	if err != nil {
		return "", err
	}
	return "NOT (" + inner + ")", nil
}

// Ref is a property descriptor explicitly bound to a chain variable,
// e.g. On(SomeNode.Attr, "f") for the "f" segment's "attr" property,
// independent of the segment the resulting condition is attached to.
type Ref struct {
	Prop *schema.Property
	Var  string
}

// On binds a property descriptor to an explicit chain variable.
func On(p *schema.Property, varName string) Ref {
	return Ref{Prop: p, Var: varName}
}

// --- unbound comparisons (resolved against the attach segment) ---

type unboundComparison struct {
	prop  *schema.Property
	op    string
	value any
}

func (c unboundComparison) Render(segmentVar string, alloc *nameset.Allocator, params map[string]any) (string, error) {
	name := alloc.NextParam()
	params[name] = c.value
	return fmt.Sprintf("%s.%s %s $%s", segmentVar, c.prop.PropName, c.op, name), nil
}

type unboundExists struct{ prop *schema.Property }

func (c unboundExists) Render(segmentVar string, _ *nameset.Allocator, _ map[string]any) (string, error) {
	return fmt.Sprintf("exists(%s.%s)", segmentVar, c.prop.PropName), nil
}

type unboundIsNull struct{ prop *schema.Property }

func (c unboundIsNull) Render(segmentVar string, _ *nameset.Allocator, _ map[string]any) (string, error) {
	return fmt.Sprintf("%s.%s IS NULL", segmentVar, c.prop.PropName), nil
}

type unboundStartsWith struct {
	prop  *schema.Property
	value any
}

func (c unboundStartsWith) Render(segmentVar string, alloc *nameset.Allocator, params map[string]any) (string, error) {
	name := alloc.NextParam()
	params[name] = c.value
	return fmt.Sprintf("%s.%s STARTS WITH $%s", segmentVar, c.prop.PropName, name), nil
}

// Eq builds an unbound `{segmentVar}.{prop} = $name` condition.
func Eq(p *schema.Property, value any) Condition {
	return unboundComparison{prop: p, op: "=", value: value}
}

// Ne builds an unbound `{segmentVar}.{prop} <> $name` condition.
func Ne(p *schema.Property, value any) Condition {
	return unboundComparison{prop: p, op: "<>", value: value}
}

// Exists builds an unbound `exists(x.p)` condition; it binds no
// parameter.
func Exists(p *schema.Property) Condition { return unboundExists{prop: p} }

// StartsWith builds an unbound `{segmentVar}.{prop} STARTS WITH $name`
// condition.
func StartsWith(p *schema.Property, value any) Condition {
	return unboundStartsWith{prop: p, value: value}
}

// IsNull builds an unbound `{segmentVar}.{prop} IS NULL` condition; it
// binds no parameter.
func IsNull(p *schema.Property) Condition { return unboundIsNull{prop: p} }

// --- bound comparisons (explicit variable via Ref) ---

type boundComparison struct {
	ref Ref
	op  string
	val any
}

func (c boundComparison) Render(_ string, alloc *nameset.Allocator, params map[string]any) (string, error) {
	name := alloc.NextParam()
	params[name] = c.val
	return fmt.Sprintf("%s.%s %s $%s", c.ref.Var, c.ref.Prop.PropName, c.op, name), nil
}

type boundExists struct{ ref Ref }

func (c boundExists) Render(string, *nameset.Allocator, map[string]any) (string, error) {
	return fmt.Sprintf("exists(%s.%s)", c.ref.Var, c.ref.Prop.PropName), nil
}

type boundIsNull struct{ ref Ref }

func (c boundIsNull) Render(string, *nameset.Allocator, map[string]any) (string, error) {
	return fmt.Sprintf("%s.%s IS NULL", c.ref.Var, c.ref.Prop.PropName), nil
}

type boundStartsWith struct {
	ref Ref
	val any
}

func (c boundStartsWith) Render(_ string, alloc *nameset.Allocator, params map[string]any) (string, error) {
	name := alloc.NextParam()
	params[name] = c.val
	return fmt.Sprintf("%s.%s STARTS WITH $%s", c.ref.Var, c.ref.Prop.PropName, name), nil
}

// Eq builds a `{var}.{prop} = $name` condition bound to r's variable.
func (r Ref) Eq(value any) Condition { return boundComparison{ref: r, op: "=", val: value} }

// Ne builds a `{var}.{prop} <> $name` condition bound to r's variable.
func (r Ref) Ne(value any) Condition { return boundComparison{ref: r, op: "<>", val: value} }

// Exists builds an `exists(x.p)` condition bound to r's variable.
func (r Ref) Exists() Condition { return boundExists{ref: r} }

// StartsWith builds a `{var}.{prop} STARTS WITH $name` condition bound
// to r's variable.
func (r Ref) StartsWith(value any) Condition { return boundStartsWith{ref: r, val: value} }

// IsNull builds a `{var}.{prop} IS NULL` condition bound to r's
// variable.
func (r Ref) IsNull() Condition { return boundIsNull{ref: r} }
