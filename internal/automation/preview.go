package automation

import (
	"fmt"
	"time"

	"github.com/gyaneshwarpardhi/automation/internal/condition"
	"github.com/gyaneshwarpardhi/automation/internal/event"
)

// Preview dry-runs the conditions of r against a sample event. The event must
// be of the rule's event type; the rule's actions are not run.
func (e *Editor) Preview(r *Rule, ev *event.Event, now time.Time) (*condition.Result, error) {
	if ev.Name != "" && ev.Name != r.EventName {
		return &condition.Result{Clauses: make([]bool, len(r.Conditions))}, nil
	}
	clauses := make([]condition.Clause, 0, len(r.Conditions))
	for i, c := range r.Conditions {
		if _, err := e.InputType(r, c.AttributeKey); err != nil {
			return nil, fmt.Errorf("condition %d: %w", i, err)
		}
		clauses = append(clauses, condition.Clause{
			Attribute: c.AttributeKey,
			Operator:  condition.Operator(c.FilterOperator),
			Values:    c.Values,
			Join:      c.QueryOperator,
		})
	}
	return condition.Evaluate(clauses, ev.Attributes, now)
}
