package catalog

import (
	"fmt"
	"sort"
	"strings"
)

// Validate checks the catalog for:
//   - Required fields (version, at least one event and action)
//   - Duplicate condition keys within an event and duplicate action keys
//   - Selectable conditions without filter operators
//   - Defaults that point at keys the catalog does not declare
func Validate(c *Catalog) error {
	if c.Version == "" {
		return fmt.Errorf("catalog: version is required")
	}
	var errs []string

	if len(c.Events) == 0 {
		errs = append(errs, "events must not be empty")
	}
	names := c.EventNames()
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	for _, name := range names {
		validateEvent(string(name), c.Events[name], &errs)
	}

	if len(c.Actions) == 0 {
		errs = append(errs, "actions must not be empty")
	}
	keys := make(map[string]int)
	for i, a := range c.Actions {
		if a.Key == "" {
			errs = append(errs, fmt.Sprintf("actions[%d]: key is required", i))
			continue
		}
		if prev, ok := keys[a.Key]; ok {
			errs = append(errs, fmt.Sprintf("duplicate action %q (actions[%d] and actions[%d])", a.Key, prev, i))
		} else {
			keys[a.Key] = i
		}
		if a.InputType != "" && !a.InputType.Known() {
			errs = append(errs, fmt.Sprintf("action %s: unknown input_type %q", a.Key, a.InputType))
		}
	}
	if c.DefaultAction == "" {
		errs = append(errs, "default_action is required")
	} else if _, ok := keys[c.DefaultAction]; !ok {
		errs = append(errs, fmt.Sprintf("default_action %q is not a declared action", c.DefaultAction))
	}

	if len(errs) > 0 {
		return fmt.Errorf("catalog validation errors:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

func validateEvent(name string, def EventDef, errs *[]string) {
	if len(def.Conditions) == 0 {
		*errs = append(*errs, fmt.Sprintf("event %s: conditions must not be empty", name))
		return
	}
	seen := make(map[string]ConditionType)
	for j, ct := range def.Conditions {
		if ct.Key == "" {
			*errs = append(*errs, fmt.Sprintf("event %s: conditions[%d]: key is required", name, j))
			continue
		}
		if _, ok := seen[ct.Key]; ok {
			*errs = append(*errs, fmt.Sprintf("event %s: duplicate condition %q", name, ct.Key))
			continue
		}
		seen[ct.Key] = ct
		if ct.Disabled {
			continue
		}
		if !ct.InputType.Known() {
			*errs = append(*errs, fmt.Sprintf("event %s: condition %s: unknown input_type %q", name, ct.Key, ct.InputType))
		}
		if len(ct.FilterOperators) == 0 {
			*errs = append(*errs, fmt.Sprintf("event %s: condition %s: filter_operators must not be empty", name, ct.Key))
		}
	}

	dc := def.DefaultCondition
	ct, ok := seen[dc.AttributeKey]
	if !ok {
		*errs = append(*errs, fmt.Sprintf("event %s: default_condition key %q is not a declared condition", name, dc.AttributeKey))
		return
	}
	if !hasOperator(ct.FilterOperators, dc.FilterOperator) {
		*errs = append(*errs, fmt.Sprintf("event %s: default_condition operator %q is not offered by %s", name, dc.FilterOperator, ct.Key))
	}
	if dc.QueryOperator != "and" && dc.QueryOperator != "or" {
		*errs = append(*errs, fmt.Sprintf("event %s: default_condition query_operator must be 'and' or 'or', got %q", name, dc.QueryOperator))
	}
}

func hasOperator(ops []Operator, value string) bool {
	for _, op := range ops {
		if op.Value == value {
			return true
		}
	}
	return false
}
