package automation

import (
	"fmt"
	"strings"

	"github.com/gyaneshwarpardhi/automation/internal/catalog"
	"github.com/gyaneshwarpardhi/automation/internal/metrics"
	"github.com/gyaneshwarpardhi/automation/internal/options"
)

// ManifestConditions converts the stored conditions of r to their display
// shape. r is not modified.
//
//   - plain_text and date show the first stored value ("" when none)
//   - comma_separated_plain_text shows the values joined by ","
//   - every other type shows the selected options, in option order
func (e *Editor) ManifestConditions(r *Rule) ([]ConditionView, error) {
	out := make([]ConditionView, 0, len(r.Conditions))
	for i, c := range r.Conditions {
		it, err := e.InputType(r, c.AttributeKey)
		if err != nil {
			return nil, fmt.Errorf("condition %d: %w", i, err)
		}
		view := ConditionView{
			AttributeKey:        c.AttributeKey,
			FilterOperator:      c.FilterOperator,
			QueryOperator:       c.QueryOperator,
			CustomAttributeType: c.CustomAttributeType,
		}
		switch it {
		case catalog.InputPlainText, catalog.InputDate:
			var first interface{} = ""
			if len(c.Values) > 0 {
				first = c.Values[0]
			}
			view.Values = ScalarValue(first)
		case catalog.InputCommaSeparated:
			parts := make([]string, len(c.Values))
			for j, v := range c.Values {
				parts[j] = fmt.Sprint(v)
			}
			view.Values = ScalarValue(strings.Join(parts, ","))
		default:
			if view.QueryOperator == "" {
				view.QueryOperator = QueryAnd
			}
			view.Values = OptionsValue(options.Filter(e.resolver.ConditionOptions(c.AttributeKey), c.Values))
		}
		out = append(out, view)
	}
	return out, nil
}

// ManifestActions expands the stored params of r's actions into options.
// Actions without params keep an empty list.
func (e *Editor) ManifestActions(r *Rule) ([]ActionView, error) {
	out := make([]ActionView, 0, len(r.Actions))
	for i, a := range r.Actions {
		view := ActionView{ActionName: a.ActionName, ActionParams: RawParams([]interface{}{})}
		if len(a.ActionParams) > 0 {
			params, err := e.expandParams(a)
			if err != nil {
				return nil, fmt.Errorf("action %d: %w", i, err)
			}
			view.ActionParams = params
		}
		out = append(out, view)
	}
	return out, nil
}

func (e *Editor) expandParams(a Action) (ActionParams, error) {
	at, err := e.catalog.ActionType(a.ActionName)
	if err != nil {
		return ActionParams{}, err
	}
	switch at.InputType {
	case catalog.InputMultiSelect, catalog.InputSearchSelect:
		return ActionParams{
			Kind:    ParamsOptions,
			Options: options.Filter(e.resolver.ActionOptions(a.ActionName), a.ActionParams),
		}, nil
	case catalog.InputTeamMessage:
		tm := teamMessageOf(a.ActionParams)
		return ActionParams{Kind: ParamsTeamMessage, TeamMessage: TeamMessageView{
			TeamIDs: options.Filter(e.resolver.ActionOptions(a.ActionName), tm.TeamIDs),
			Message: tm.Message,
		}}, nil
	default:
		raw := make([]interface{}, len(a.ActionParams))
		copy(raw, a.ActionParams)
		return RawParams(raw), nil
	}
}

// Format returns r with conditions and actions in display shape.
func (e *Editor) Format(r *Rule) (*RuleView, error) {
	conds, err := e.ManifestConditions(r)
	if err != nil {
		return nil, err
	}
	acts, err := e.ManifestActions(r)
	if err != nil {
		return nil, err
	}
	metrics.RulesFormatted.Inc()
	return &RuleView{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Active:      r.Active,
		EventName:   r.EventName,
		Conditions:  conds,
		Actions:     acts,
	}, nil
}

// ToStored converts an edited rule back to its stored shape: scalars become
// one-element lists, comma-separated text is split, options become their ids.
func (e *Editor) ToStored(v *RuleView) (*Rule, error) {
	r := &Rule{
		ID:          v.ID,
		Name:        v.Name,
		Description: v.Description,
		Active:      v.Active,
		EventName:   v.EventName,
		Conditions:  make([]Condition, 0, len(v.Conditions)),
		Actions:     make([]Action, 0, len(v.Actions)),
	}
	for i, cv := range v.Conditions {
		it, err := e.InputType(r, cv.AttributeKey)
		if err != nil {
			return nil, fmt.Errorf("condition %d: %w", i, err)
		}
		r.Conditions = append(r.Conditions, Condition{
			AttributeKey:        cv.AttributeKey,
			FilterOperator:      cv.FilterOperator,
			QueryOperator:       cv.QueryOperator,
			Values:              storedValues(it, cv.Values),
			CustomAttributeType: cv.CustomAttributeType,
		})
	}
	for i, av := range v.Actions {
		params, err := e.storedParams(av)
		if err != nil {
			return nil, fmt.Errorf("action %d: %w", i, err)
		}
		r.Actions = append(r.Actions, Action{ActionName: av.ActionName, ActionParams: params})
	}
	return r, nil
}

func storedValues(it catalog.InputType, v ConditionValue) Values {
	if v.Kind == ValueOptions {
		return Values(options.IDs(v.Options))
	}
	if v.Scalar == nil || v.Scalar == "" {
		return Values{}
	}
	if s, ok := v.Scalar.(string); ok && it == catalog.InputCommaSeparated {
		var out Values
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out
	}
	return Values{v.Scalar}
}

func (e *Editor) storedParams(av ActionView) ([]interface{}, error) {
	p := av.ActionParams
	switch p.Kind {
	case ParamsTeamMessage:
		return []interface{}{TeamMessage{
			TeamIDs: options.IDs(p.TeamMessage.TeamIDs),
			Message: p.TeamMessage.Message,
		}}, nil
	case ParamsOptions:
		return options.IDs(p.Options), nil
	}
	if len(p.Raw) == 0 {
		return []interface{}{}, nil
	}
	at, err := e.catalog.ActionType(av.ActionName)
	if err != nil {
		return nil, err
	}
	switch at.InputType {
	case catalog.InputMultiSelect, catalog.InputSearchSelect:
		return options.IDs(optionsOf(p.Raw)), nil
	default:
		out := make([]interface{}, len(p.Raw))
		copy(out, p.Raw)
		return out, nil
	}
}
