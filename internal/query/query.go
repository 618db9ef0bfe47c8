// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package query builds VNDB filter expressions and request payloads.
//
// The VNDB API encodes boolean filter expressions as nested JSON arrays:
// a predicate is ["field", "op", value] and a group is ["and"|"or", expr...].
// Expressions are built fresh per request and are immutable once constructed;
// they serialize directly into the outbound request body.
package query

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/aryoshi/vnfetch/internal/catalog"
)

// Fields is the projection requested for every query.
const Fields = "id, title, rating, votecount, released, languages, image.url, description, tags.name"

// Tag logic modes for multiple required tags.
const (
	LogicAny = "any" // union: a title matching any required tag qualifies
	LogicAll = "all" // intersection: every required tag must be present
)

// ErrNoTags is returned when a tag-based query is built with neither
// required nor excluded tags.
var ErrNoTags = errors.New("at least one required or excluded tag must be provided")

// Expr is a node in a filter expression tree.
type Expr interface {
	json.Marshaler
}

// Pred is a comparison over a single field, e.g. ["rating", ">=", 60].
type Pred struct {
	Field string
	Op    string
	Value any
}

// marshalExpr encodes without HTML escaping. json.Marshal would turn the
// ">=" operator into "\u003e=" on the wire.
func marshalExpr(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// MarshalJSON encodes the predicate as a three-element array.
func (p Pred) MarshalJSON() ([]byte, error) {
	return marshalExpr([]any{p.Field, p.Op, p.Value})
}

// Group combines sub-expressions with a boolean operator.
type Group struct {
	Op    string
	Exprs []Expr
}

// MarshalJSON encodes the group as [op, expr, expr, ...].
func (g Group) MarshalJSON() ([]byte, error) {
	arr := make([]any, 0, len(g.Exprs)+1)
	arr = append(arr, g.Op)
	for _, e := range g.Exprs {
		arr = append(arr, e)
	}
	return marshalExpr(arr)
}

// Eq returns an equality predicate.
func Eq(field string, value any) Pred { return Pred{Field: field, Op: "=", Value: value} }

// Ne returns an inequality predicate.
func Ne(field string, value any) Pred { return Pred{Field: field, Op: "!=", Value: value} }

// Gte returns a greater-or-equal predicate.
func Gte(field string, value any) Pred { return Pred{Field: field, Op: ">=", Value: value} }

// And groups expressions with AND.
func And(exprs ...Expr) Group { return Group{Op: "and", Exprs: exprs} }

// Or groups expressions with OR.
func Or(exprs ...Expr) Group { return Group{Op: "or", Exprs: exprs} }

// BaseFilters returns the filters every query carries: language, rating
// floor, and vote-count floor.
func BaseFilters(language string, minRating, minVotes int) []Expr {
	return []Expr{
		Eq("lang", language),
		Gte("rating", minRating),
		Gte("votecount", minVotes),
	}
}

// BuildTagFilters resolves tag names through the catalog and returns the
// tag clauses for a query.
//
// A single required tag emits one equality clause. Multiple required tags
// emit an OR-group under LogicAny (union semantics); any other mode gets
// one top-level clause per tag (intersection). Excluded tags always emit
// individual inequality clauses regardless of logic mode.
func BuildTagFilters(cat *catalog.Catalog, required, excluded []string, logic string) []Expr {
	var filters []Expr

	if len(required) > 0 {
		resolved := cat.Resolve(required)
		if len(resolved) == 1 {
			filters = append(filters, Eq("tag", resolved[0]))
		} else if logic == LogicAny {
			group := Group{Op: "or"}
			for _, tag := range resolved {
				group.Exprs = append(group.Exprs, Eq("tag", tag))
			}
			filters = append(filters, group)
		} else {
			for _, tag := range resolved {
				filters = append(filters, Eq("tag", tag))
			}
		}
	}

	for _, tag := range cat.Resolve(excluded) {
		filters = append(filters, Ne("tag", tag))
	}

	return filters
}

// Payload is the JSON body of a VNDB query request.
type Payload struct {
	Filters Expr   `json:"filters"`
	Fields  string `json:"fields"`
	Results int    `json:"results"`
	Page    int    `json:"page,omitempty"`
	Sort    string `json:"sort,omitempty"`
	Reverse bool   `json:"reverse,omitempty"`
}
