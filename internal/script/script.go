package script

import (
	"fmt"
	"strings"

	"github.com/ritamzico/neopath"
)

func labeledVar(s *string) []string {
	if s == nil {
		return nil
	}
	return []string{*s}
}

func hopOptions(h *HopsClause, v *string) []neopath.HopOption {
	var opts []neopath.HopOption
	if h != nil {
		if h.Min != nil {
			opts = append(opts, neopath.MinHops(*h.Min))
		}
		if h.Max != nil {
			opts = append(opts, neopath.MaxHops(*h.Max))
		}
	}
	if v != nil {
		opts = append(opts, neopath.Var(*v))
	}
	return opts
}

func cutPrefixFold(s, prefix string) (string, bool) {
	if len(s) < len(prefix) || !strings.EqualFold(s[:len(prefix)], prefix) {
		return "", false
	}
	return s[len(prefix):], true
}

// ApplyLine interprets one line of the mini-language against q,
// returning the resulting query. A line beginning with "WHERE " carries
// a raw Cypher fragment through verbatim rather than going through the
// structured grammar, since a condition fragment is free-form text.
func ApplyLine(q neopath.Query, line string) (neopath.Query, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return q, nil
	}
	if rest, ok := cutPrefixFold(trimmed, "WHERE "); ok {
		return q.Where(strings.TrimSpace(rest))
	}

	stmt, err := parseStatement(trimmed)
	if err != nil {
		return neopath.Query{}, fmt.Errorf("parse error: %w", err)
	}

	switch {
	case stmt.Match != nil:
		return q.Match(stmt.Match.Label, labeledVar(stmt.Match.Var)...)
	case stmt.To != nil:
		return q.To(stmt.To.Label, labeledVar(stmt.To.Var)...)
	case stmt.By != nil:
		return q.By(stmt.By.Label, labeledVar(stmt.By.Var)...)
	case stmt.With != nil:
		return q.With(stmt.With.Label, labeledVar(stmt.With.Var)...)
	case stmt.Connected != nil:
		return q.ConnectedThrough(stmt.Connected.Label, hopOptions(stmt.Connected.Hops, stmt.Connected.Var)...)
	default:
		return neopath.Query{}, fmt.Errorf("empty statement")
	}
}

// ApplyScript interprets every non-empty, non-comment line in lines in
// order, starting from an empty query, and returns the fully built
// result.
func ApplyScript(lines []string) (neopath.Query, error) {
	q := neopath.NewQuery()
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		var err error
		q, err = ApplyLine(q, line)
		if err != nil {
			return neopath.Query{}, fmt.Errorf("line %d: %w", i+1, err)
		}
	}
	return q, nil
}
