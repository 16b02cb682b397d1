package automation

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/gyaneshwarpardhi/automation/internal/event"
	"github.com/gyaneshwarpardhi/automation/internal/options"
)

// RuleView is a rule in the shape the editor binds its widgets to.
type RuleView struct {
	ID          string          `json:"id,omitempty"`
	Name        string          `json:"name,omitempty"`
	Description string          `json:"description,omitempty"`
	Active      bool            `json:"active"`
	EventName   event.Name      `json:"event_name"`
	Conditions  []ConditionView `json:"conditions"`
	Actions     []ActionView    `json:"actions"`
}

// ConditionView is a condition whose values are shaped for its input type.
type ConditionView struct {
	AttributeKey        string         `json:"attribute_key"`
	FilterOperator      string         `json:"filter_operator"`
	QueryOperator       string         `json:"query_operator,omitempty"`
	Values              ConditionValue `json:"values"`
	CustomAttributeType string         `json:"custom_attribute_type,omitempty"`
}

// ActionView is an action whose params are expanded into option objects.
type ActionView struct {
	ActionName   string       `json:"action_name"`
	ActionParams ActionParams `json:"action_params"`
}

// ValueKind tags the variant held by a ConditionValue.
type ValueKind int

const (
	// ValueScalar holds a single value: text, a date, or a comma-joined list.
	ValueScalar ValueKind = iota
	// ValueOptions holds the selected dropdown options.
	ValueOptions
)

// ConditionValue is the display value of a condition.
type ConditionValue struct {
	Kind    ValueKind
	Scalar  interface{}
	Options []options.Option
}

// ScalarValue wraps a single value.
func ScalarValue(v interface{}) ConditionValue {
	return ConditionValue{Kind: ValueScalar, Scalar: v}
}

// OptionsValue wraps a list of selected options.
func OptionsValue(opts []options.Option) ConditionValue {
	if opts == nil {
		opts = []options.Option{}
	}
	return ConditionValue{Kind: ValueOptions, Options: opts}
}

func (v ConditionValue) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case ValueScalar:
		if v.Scalar == nil {
			return []byte(`""`), nil
		}
		return json.Marshal(v.Scalar)
	case ValueOptions:
		if v.Options == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.Options)
	default:
		return nil, fmt.Errorf("condition value: unknown kind %d", v.Kind)
	}
}

func (v *ConditionValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var list []interface{}
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		*v = OptionsValue(optionsOf(list))
		return nil
	}
	var scalar interface{}
	if err := json.Unmarshal(data, &scalar); err != nil {
		return err
	}
	*v = ScalarValue(scalar)
	return nil
}

// ParamKind tags the variant held by ActionParams.
type ParamKind int

const (
	// ParamsRaw holds params exactly as stored.
	ParamsRaw ParamKind = iota
	// ParamsOptions holds params expanded into options.
	ParamsOptions
	// ParamsTeamMessage holds the team/message pair of a team_message action.
	ParamsTeamMessage
)

// TeamMessageView is a team_message param with its teams expanded.
type TeamMessageView struct {
	TeamIDs []options.Option `json:"team_ids"`
	Message string           `json:"message"`
}

// ActionParams is the display form of an action's params.
type ActionParams struct {
	Kind        ParamKind
	Raw         []interface{}
	Options     []options.Option
	TeamMessage TeamMessageView
}

// RawParams wraps params that need no expansion.
func RawParams(raw []interface{}) ActionParams {
	if raw == nil {
		raw = []interface{}{}
	}
	return ActionParams{Kind: ParamsRaw, Raw: raw}
}

func (p ActionParams) MarshalJSON() ([]byte, error) {
	switch p.Kind {
	case ParamsRaw:
		if p.Raw == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(p.Raw)
	case ParamsOptions:
		if p.Options == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(p.Options)
	case ParamsTeamMessage:
		tm := p.TeamMessage
		if tm.TeamIDs == nil {
			tm.TeamIDs = []options.Option{}
		}
		return json.Marshal(tm)
	default:
		return nil, fmt.Errorf("action params: unknown kind %d", p.Kind)
	}
}

// UnmarshalJSON keeps arrays raw: whether they hold options or plain values
// is only known once the action's input type is looked up.
func (p *ActionParams) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var tm struct {
			TeamIDs []interface{} `json:"team_ids"`
			Message string        `json:"message"`
		}
		if err := json.Unmarshal(data, &tm); err != nil {
			return err
		}
		*p = ActionParams{Kind: ParamsTeamMessage, TeamMessage: TeamMessageView{
			TeamIDs: optionsOf(tm.TeamIDs),
			Message: tm.Message,
		}}
		return nil
	}
	var raw []interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = RawParams(raw)
	return nil
}

// optionsOf reads decoded JSON values as options: objects carrying an "id"
// are options, bare values are taken as ids.
func optionsOf(list []interface{}) []options.Option {
	out := make([]options.Option, 0, len(list))
	for _, item := range list {
		out = append(out, optionOf(item))
	}
	return out
}

func optionOf(item interface{}) options.Option {
	switch it := item.(type) {
	case options.Option:
		return it
	case map[string]interface{}:
		if id, ok := it["id"]; ok {
			name, _ := it["name"].(string)
			return options.Option{ID: id, Name: name}
		}
	}
	return options.Option{ID: item}
}
