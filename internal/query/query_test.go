// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package query

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/aryoshi/vnfetch/internal/catalog"
)

// marshal encodes with HTML escaping off, like the request encoder does,
// so operators stay literal and the expected strings below are readable.
func marshal(t *testing.T, e Expr) string {
	t.Helper()
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(e); err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func TestPredMarshal(t *testing.T) {
	tests := []struct {
		name string
		expr Expr
		want string
	}{
		{"eq string", Eq("lang", "en"), `["lang","=","en"]`},
		{"gte int", Gte("rating", 60), `["rating",">=",60]`},
		{"ne tag", Ne("tag", "g7"), `["tag","!=","g7"]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := marshal(t, tt.expr); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

// MarshalJSON itself must not HTML-escape the comparison operators; the
// request encoder relies on that to send them as literal bytes.
func TestPredMarshalNotHTMLEscaped(t *testing.T) {
	data, err := Gte("rating", 60).MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(data), `\u003e`) {
		t.Errorf("operator was HTML-escaped: %s", data)
	}
}

func TestGroupMarshal(t *testing.T) {
	expr := And(Eq("lang", "en"), Or(Eq("tag", "g96"), Eq("tag", "g104")))
	want := `["and",["lang","=","en"],["or",["tag","=","g96"],["tag","=","g104"]]]`
	if got := marshal(t, expr); got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestBuildTagFiltersSingleRequired(t *testing.T) {
	cat := catalog.New()
	filters := BuildTagFilters(cat, []string{"Romance"}, nil, LogicAny)
	if len(filters) != 1 {
		t.Fatalf("got %d filters, want 1", len(filters))
	}
	if got := marshal(t, filters[0]); got != `["tag","=","g96"]` {
		t.Errorf("got %s", got)
	}
}

func TestBuildTagFiltersAnyLogic(t *testing.T) {
	cat := catalog.New()
	filters := BuildTagFilters(cat, []string{"Romance", "Comedy"}, nil, LogicAny)
	if len(filters) != 1 {
		t.Fatalf("got %d filters, want 1 OR-group", len(filters))
	}
	want := `["or",["tag","=","g96"],["tag","=","g104"]]`
	if got := marshal(t, filters[0]); got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestBuildTagFiltersAllLogic(t *testing.T) {
	cat := catalog.New()
	filters := BuildTagFilters(cat, []string{"Romance", "Comedy"}, nil, LogicAll)
	if len(filters) != 2 {
		t.Fatalf("got %d filters, want 2 top-level clauses", len(filters))
	}
	if got := marshal(t, filters[0]); got != `["tag","=","g96"]` {
		t.Errorf("first clause = %s", got)
	}
	if got := marshal(t, filters[1]); got != `["tag","=","g104"]` {
		t.Errorf("second clause = %s", got)
	}
}

// Any mode other than "any" falls back to intersection semantics.
func TestBuildTagFiltersUnknownLogicMeansAll(t *testing.T) {
	cat := catalog.New()
	filters := BuildTagFilters(cat, []string{"Romance", "Comedy"}, nil, "every")
	if len(filters) != 2 {
		t.Fatalf("got %d filters, want 2 top-level clauses", len(filters))
	}
	if got := marshal(t, filters[0]); got != `["tag","=","g96"]` {
		t.Errorf("first clause = %s", got)
	}
}

func TestBuildTagFiltersExcluded(t *testing.T) {
	cat := catalog.New()

	// Excluded tags emit individual != clauses in both logic modes.
	for _, logic := range []string{LogicAny, LogicAll} {
		filters := BuildTagFilters(cat, nil, []string{"Horror", "Thriller"}, logic)
		if len(filters) != 2 {
			t.Fatalf("logic %s: got %d filters, want 2", logic, len(filters))
		}
		if got := marshal(t, filters[0]); got != `["tag","!=","g7"]` {
			t.Errorf("logic %s: got %s", logic, got)
		}
	}
}

// Required tags {Romance, Comedy} with any-logic plus excluded {Horror}:
// the full expression ANDs the base floors with an OR-group and a NOT-equality.
func TestCombinedFilterExpression(t *testing.T) {
	cat := catalog.New()

	exprs := BaseFilters("en", 60, 50)
	exprs = append(exprs, BuildTagFilters(cat, []string{"Romance", "Comedy"}, []string{"Horror"}, LogicAny)...)
	full := And(exprs...)

	want := `["and",` +
		`["lang","=","en"],` +
		`["rating",">=",60],` +
		`["votecount",">=",50],` +
		`["or",["tag","=","g96"],["tag","=","g104"]],` +
		`["tag","!=","g7"]]`
	if got := marshal(t, full); got != want {
		t.Errorf("got %s\nwant %s", got, want)
	}
}

func TestBuildTagFiltersUnknownTagPassesThrough(t *testing.T) {
	cat := catalog.New()
	filters := BuildTagFilters(cat, []string{"g1234"}, nil, LogicAny)
	if got := marshal(t, filters[0]); got != `["tag","=","g1234"]` {
		t.Errorf("got %s", got)
	}
}

func TestPayloadMarshal(t *testing.T) {
	p := Payload{
		Filters: And(Eq("lang", "en")),
		Fields:  Fields,
		Results: 30,
		Sort:    "rating",
		Reverse: true,
	}
	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded["fields"] != Fields {
		t.Errorf("fields = %v", decoded["fields"])
	}
	if decoded["results"] != float64(30) {
		t.Errorf("results = %v", decoded["results"])
	}
	if _, ok := decoded["page"]; ok {
		t.Error("zero page should be omitted")
	}
	if decoded["reverse"] != true {
		t.Errorf("reverse = %v", decoded["reverse"])
	}
}
