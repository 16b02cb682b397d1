package catalog

import "github.com/gyaneshwarpardhi/automation/internal/event"

// InputType names the widget a condition or action value is edited with.
// It also decides how stored values are shaped for display.
type InputType string

const (
	InputPlainText      InputType = "plain_text"
	InputDate           InputType = "date"
	InputCommaSeparated InputType = "comma_separated_plain_text"
	InputMultiSelect    InputType = "multi_select"
	InputSearchSelect   InputType = "search_select"
	InputTeamMessage    InputType = "team_message"
	InputEmail          InputType = "email"
	InputTextarea       InputType = "textarea"
	InputURL            InputType = "url"
	InputAttachment     InputType = "attachment"
)

// Known reports whether t is one of the declared input types.
func (t InputType) Known() bool {
	switch t {
	case InputPlainText, InputDate, InputCommaSeparated, InputMultiSelect,
		InputSearchSelect, InputTeamMessage, InputEmail, InputTextarea,
		InputURL, InputAttachment:
		return true
	}
	return false
}

// Operator is one entry of a condition's filter operator list.
type Operator struct {
	Value string `yaml:"value" json:"value"`
	Label string `yaml:"label" json:"label"`
}

// ConditionType describes one attribute a rule may filter on.
type ConditionType struct {
	Key                 string     `yaml:"key" json:"key"`
	Name                string     `yaml:"name" json:"name"`
	InputType           InputType  `yaml:"input_type" json:"inputType"`
	FilterOperators     []Operator `yaml:"filter_operators" json:"filterOperators"`
	CustomAttributeType string     `yaml:"custom_attribute_type,omitempty" json:"customAttributeType,omitempty"`
	Disabled            bool       `yaml:"disabled,omitempty" json:"disabled,omitempty"`
}

// ActionType describes one action a rule may run.
type ActionType struct {
	Key       string    `yaml:"key" json:"key"`
	Name      string    `yaml:"name" json:"name"`
	InputType InputType `yaml:"input_type,omitempty" json:"inputType,omitempty"`
}

// DefaultCondition is the condition a rule starts with for an event.
type DefaultCondition struct {
	AttributeKey   string `yaml:"attribute_key" json:"attribute_key"`
	FilterOperator string `yaml:"filter_operator" json:"filter_operator"`
	QueryOperator  string `yaml:"query_operator" json:"query_operator"`
}

// EventDef is the condition catalog of a single event.
type EventDef struct {
	Conditions       []ConditionType  `yaml:"conditions" json:"conditions"`
	DefaultCondition DefaultCondition `yaml:"default_condition" json:"default_condition"`
}

// HeaderLabels are the locale keys of the group headers inserted in front of
// merged custom attributes.
type HeaderLabels struct {
	Conversation string `yaml:"conversation" json:"conversation"`
	Contact      string `yaml:"contact" json:"contact"`
}

// Catalog is the top-level YAML structure: the per-event condition catalog
// and the action catalog. A Catalog is treated as immutable once loaded.
type Catalog struct {
	Version       string                  `yaml:"version" json:"version"`
	Events        map[event.Name]EventDef `yaml:"events" json:"events"`
	Actions       []ActionType            `yaml:"actions" json:"actions"`
	DefaultAction string                  `yaml:"default_action" json:"default_action"`
	HeaderLabels  HeaderLabels            `yaml:"custom_attribute_headers" json:"custom_attribute_headers"`
}
