package condition

import (
	"fmt"
	"strings"
	"time"
)

// Clause is one condition of a rule reduced to what evaluation needs.
type Clause struct {
	Attribute string
	Operator  Operator
	Values    []interface{}
	// Join is the query operator ("and" or "or") linking this clause to the
	// next one. It is ignored on the last clause.
	Join string
}

// Result is the outcome of evaluating a list of clauses.
type Result struct {
	Matched bool   `json:"matched"`
	Clauses []bool `json:"clauses"`
}

// Evaluate applies clauses to attrs (attribute key → value). Clauses are
// joined left to right by their query operator, AND binding tighter than OR,
// so "a and b or c" reads as "(a and b) or c". Every clause is evaluated so
// that the per-clause outcome can be shown.
func Evaluate(clauses []Clause, attrs map[string]interface{}, now time.Time) (*Result, error) {
	res := &Result{Clauses: make([]bool, len(clauses))}
	if len(clauses) == 0 {
		return res, nil
	}
	for i, c := range clauses {
		ok, err := apply(c.Operator, attrs[c.Attribute], c.Values, now)
		if err != nil {
			return nil, fmt.Errorf("clause %d (%s %s): %w", i, c.Attribute, c.Operator, err)
		}
		res.Clauses[i] = ok
	}

	group := true
	for i, c := range clauses {
		group = group && res.Clauses[i]
		last := i == len(clauses)-1
		if last || strings.EqualFold(c.Join, "or") {
			if group {
				res.Matched = true
				break // short-circuit
			}
			group = true
		}
	}
	return res, nil
}
