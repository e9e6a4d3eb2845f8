// Package schema implements the immutable descriptor registry for node
// labels, edge types, and typed properties that the query compiler treats
// as an external, read-only collaborator.
package schema

import (
	"math"
	"sort"

	"github.com/ritamzico/neopath/internal/neopatherr"
)

// NodeSchema is an immutable descriptor for a node kind: a canonical,
// sorted, deduplicated, non-empty set of labels.
type NodeSchema struct {
	Name   string
	Labels []string
}

// EdgeSchema is an immutable descriptor for an edge kind: a single
// non-empty relationship type.
type EdgeSchema struct {
	Name string
	Type string
}

// RegisterNode declares a node schema. When labels is empty the sole
// label defaults to name. Labels are sorted and deduplicated so the
// inline rendering form is deterministic.
func RegisterNode(name string, labels ...string) (*NodeSchema, error) {
	if name == "" {
		return nil, neopatherr.BadNodeLabels("node schema name must not be empty")
	}

	if len(labels) == 0 {
		labels = []string{name}
	}

	seen := make(map[string]struct{}, len(labels))
	unique := make([]string, 0, len(labels))
	for _, l := range labels {
		if l == "" {
			return nil, neopatherr.BadNodeLabels("labels must be non-empty strings")
		}
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		unique = append(unique, l)
	}

	if len(unique) == 0 {
		return nil, neopatherr.BadNodeLabels("labels must be a non-empty iterable of strings")
	}

	sort.Strings(unique)

	return &NodeSchema{Name: name, Labels: unique}, nil
}

// RegisterEdge declares an edge schema. When typ is empty it defaults to
// the uppercased declared name.
func RegisterEdge(name string, typ string) (*EdgeSchema, error) {
	if name == "" {
		return nil, neopatherr.BadEdgeType("edge schema name must not be empty")
	}

	if typ == "" {
		typ = upper(name)
	}

	return &EdgeSchema{Name: name, Type: typ}, nil
}

func upper(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - ('a' - 'A')
		}
	}
	return string(b)
}

// ValueKind enumerates the runtime value kinds a Property may accept,
// mirroring the attribute-type surface the original attribute descriptors
// expose (Int, String, Bool, Any, ...) without reflecting on arbitrary Go
// types.
type ValueKind int

const (
	AnyKind ValueKind = iota
	IntKind
	FloatKind
	StringKind
	BoolKind
)

// Property is an immutable descriptor for one typed field of a node or
// edge schema, owned by the schema it was declared on.
type Property struct {
	Owner        any // *NodeSchema or *EdgeSchema
	PropName     string
	AllowedKinds []ValueKind
	Constraint   func(v any) bool // nil means "always true"
}

// NewProperty links a property descriptor back to its owning schema and
// records the runtime kinds it accepts. With no kinds given, any value
// passes CheckType.
func NewProperty(owner any, propName string, kinds ...ValueKind) *Property {
	if len(kinds) == 0 {
		kinds = []ValueKind{AnyKind}
	}
	return &Property{Owner: owner, PropName: propName, AllowedKinds: kinds}
}

// NewIntProperty declares an integer property constrained to the signed
// 64-bit range, matching the original Int attribute's INT64_MIN/INT64_MAX
// constraint.
func NewIntProperty(owner any, propName string) *Property {
	p := NewProperty(owner, propName, IntKind)
	p.Constraint = func(v any) bool {
		switch n := v.(type) {
		case int:
			return int64(n) >= math.MinInt64 && int64(n) <= math.MaxInt64
		case int8, int16, int32:
			return true
		case int64:
			return n >= math.MinInt64 && n <= math.MaxInt64
		default:
			return false
		}
	}
	return p
}

// CheckType reports whether value is an instance of one of the property's
// allowed runtime kinds.
func (p *Property) CheckType(value any) bool {
	for _, k := range p.AllowedKinds {
		if k == AnyKind {
			return true
		}
		if kindMatches(k, value) {
			return true
		}
	}
	return false
}

func kindMatches(k ValueKind, value any) bool {
	switch k {
	case IntKind:
		switch value.(type) {
		case int, int8, int16, int32, int64:
			return true
		}
		return false
	case FloatKind:
		switch value.(type) {
		case float32, float64:
			return true
		}
		return false
	case StringKind:
		_, ok := value.(string)
		return ok
	case BoolKind:
		_, ok := value.(bool)
		return ok
	default:
		return false
	}
}

// CheckConstraints reports whether value satisfies the property's
// constraint predicate. A property with no constraint always passes.
func (p *Property) CheckConstraints(value any) bool {
	if p.Constraint == nil {
		return true
	}
	return p.Constraint(value)
}

// Check is the conjunction of CheckType and CheckConstraints, evaluated
// in that order.
func (p *Property) Check(value any) bool {
	return p.CheckType(value) && p.CheckConstraints(value)
}
