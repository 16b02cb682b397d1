package condition

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// Operator is a filter operator as stored on a rule condition.
type Operator string

const (
	OpEqualTo        Operator = "equal_to"
	OpNotEqualTo     Operator = "not_equal_to"
	OpContains       Operator = "contains"
	OpDoesNotContain Operator = "does_not_contain"
	OpIsPresent      Operator = "is_present"
	OpIsNotPresent   Operator = "is_not_present"
	OpGreaterThan    Operator = "is_greater_than"
	OpLessThan       Operator = "is_less_than"
	OpDaysBefore     Operator = "days_before"
	OpStartsWith     Operator = "starts_with"
)

var (
	// ErrUnknownOperator is returned for a filter operator the evaluator does not implement.
	ErrUnknownOperator = errors.New("unknown operator")
	// ErrInvalidOperand is returned when a condition value or attribute value
	// cannot be used with its operator.
	ErrInvalidOperand = errors.New("invalid operand")
)

var dateLayouts = []string{time.RFC3339, "2006-01-02"}

// toFloat64 coerces a numeric value to float64.
func toFloat64(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func toTime(v interface{}) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		for _, layout := range dateLayouts {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed, true
			}
		}
	}
	return time.Time{}, false
}

// apply runs op against the attribute value actual and the condition values.
// A list-valued attribute (labels) matches when any of its elements does.
func apply(op Operator, actual interface{}, values []interface{}, now time.Time) (bool, error) {
	switch op {
	case OpEqualTo:
		return anyMatch(actual, values, equal), nil
	case OpNotEqualTo:
		return !anyMatch(actual, values, equal), nil
	case OpContains:
		return anyMatch(actual, values, containsFold), nil
	case OpDoesNotContain:
		return !anyMatch(actual, values, containsFold), nil
	case OpStartsWith:
		return anyMatch(actual, values, startsWithFold), nil
	case OpIsPresent:
		return present(actual), nil
	case OpIsNotPresent:
		return !present(actual), nil
	case OpGreaterThan, OpLessThan:
		if len(values) == 0 {
			return false, fmt.Errorf("%w: operator %s requires a value", ErrInvalidOperand, op)
		}
		return orderedCompare(op, actual, values[0])
	case OpDaysBefore:
		return daysBefore(actual, values, now)
	default:
		return false, fmt.Errorf("%w: %s", ErrUnknownOperator, op)
	}
}

func anyMatch(actual interface{}, values []interface{}, match func(a, v interface{}) bool) bool {
	candidates := []interface{}{actual}
	if list, ok := actual.([]interface{}); ok {
		candidates = list
	}
	for _, a := range candidates {
		if a == nil {
			continue
		}
		for _, v := range values {
			if match(a, v) {
				return true
			}
		}
	}
	return false
}

// equal does deep-ish equality: numeric types are compared by value.
func equal(left, right interface{}) bool {
	lf, lok := toFloat64(left)
	rf, rok := toFloat64(right)
	if lok && rok {
		return math.Abs(lf-rf) < 1e-9
	}
	if lb, ok := left.(bool); ok {
		if rb, ok := right.(bool); ok {
			return lb == rb
		}
		return false
	}
	// string fallback
	return fmt.Sprintf("%v", left) == fmt.Sprintf("%v", right)
}

func containsFold(a, v interface{}) bool {
	return strings.Contains(strings.ToLower(fmt.Sprint(a)), strings.ToLower(fmt.Sprint(v)))
}

func startsWithFold(a, v interface{}) bool {
	return strings.HasPrefix(strings.ToLower(fmt.Sprint(a)), strings.ToLower(fmt.Sprint(v)))
}

func present(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(t) != ""
	case []interface{}:
		return len(t) > 0
	}
	return true
}

func orderedCompare(op Operator, left, right interface{}) (bool, error) {
	if left == nil {
		return false, nil
	}
	if lf, lok := toFloat64(left); lok {
		rf, rok := toFloat64(right)
		if !rok {
			return false, fmt.Errorf("%w: operator %s cannot compare number with %T", ErrInvalidOperand, op, right)
		}
		if op == OpGreaterThan {
			return lf > rf, nil
		}
		return lf < rf, nil
	}
	lt, lok := toTime(left)
	rt, rok := toTime(right)
	if !lok || !rok {
		return false, fmt.Errorf("%w: operator %s requires numeric or date operands, got %T and %T", ErrInvalidOperand, op, left, right)
	}
	if op == OpGreaterThan {
		return lt.After(rt), nil
	}
	return lt.Before(rt), nil
}

// daysBefore is true when the attribute date lies more than N days before now.
func daysBefore(actual interface{}, values []interface{}, now time.Time) (bool, error) {
	if actual == nil {
		return false, nil
	}
	if len(values) == 0 {
		return false, fmt.Errorf("%w: operator %s requires a number of days", ErrInvalidOperand, OpDaysBefore)
	}
	days, ok := toFloat64(values[0])
	if !ok {
		if s, isStr := values[0].(string); isStr {
			_, err := fmt.Sscanf(s, "%g", &days)
			ok = err == nil
		}
	}
	if !ok {
		return false, fmt.Errorf("%w: operator %s: %v is not a number of days", ErrInvalidOperand, OpDaysBefore, values[0])
	}
	t, ok := toTime(actual)
	if !ok {
		return false, fmt.Errorf("%w: operator %s: attribute value %v is not a date", ErrInvalidOperand, OpDaysBefore, actual)
	}
	cutoff := now.Add(-time.Duration(days * float64(24*time.Hour)))
	return t.Before(cutoff), nil
}
