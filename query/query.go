// Package query selects values from a decoded tree with RFC 9535 JSONPath
// expressions and reports where each one lives as a jsonuri path, so the
// results can be fed straight back into the path operations.
package query

import (
	"fmt"

	"github.com/linkjun/jsonuri/uripath"
	"github.com/theory/jsonpath"
	"github.com/theory/jsonpath/spec"
)

// Match is one selected value and its location.
type Match struct {
	// Path is the normalized jsonuri path of Value.
	Path  string
	Value any
}

// Query is a compiled JSONPath expression.
type Query struct {
	expr string
	path *jsonpath.Path
}

// Compile parses a JSONPath expression.
//
// Example:
//
//	q, err := query.Compile("$.menu.id[?@ > 15]")
func Compile(expr string) (*Query, error) {
	p, err := jsonpath.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid JSONPath %q: %w", expr, err)
	}
	return &Query{expr: expr, path: p}, nil
}

// String returns the expression the query was compiled from.
func (q *Query) String() string {
	return q.expr
}

// Select returns every match in data, in the order the expression yields
// them.
func (q *Query) Select(data any) []Match {
	located := q.path.SelectLocated(data)
	matches := make([]Match, 0, len(located))
	for _, node := range located {
		matches = append(matches, Match{
			Path:  toPath(node.Path),
			Value: node.Node,
		})
	}
	return matches
}

// Select compiles expr and runs it against data.
func Select(data any, expr string) ([]Match, error) {
	q, err := Compile(expr)
	if err != nil {
		return nil, err
	}
	return q.Select(data), nil
}

// Paths returns the jsonuri paths of every match of expr in data.
func Paths(data any, expr string) ([]string, error) {
	matches, err := Select(data, expr)
	if err != nil {
		return nil, err
	}
	paths := make([]string, len(matches))
	for i, m := range matches {
		paths[i] = m.Path
	}
	return paths, nil
}

func toPath(np spec.NormalizedPath) string {
	keys := make([]any, 0, len(np))
	for _, sel := range np {
		switch s := sel.(type) {
		case spec.Name:
			keys = append(keys, string(s))
		case spec.Index:
			keys = append(keys, int(s))
		}
	}
	return uripath.Build(keys...)
}
