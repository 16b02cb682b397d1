package catalog

import "github.com/gyaneshwarpardhi/automation/internal/event"

// DisplayType is the declared display type of a custom attribute.
type DisplayType string

const (
	DisplayText     DisplayType = "text"
	DisplayNumber   DisplayType = "number"
	DisplayLink     DisplayType = "link"
	DisplayDate     DisplayType = "date"
	DisplayList     DisplayType = "list"
	DisplayCheckbox DisplayType = "checkbox"
)

// Model says which record a custom attribute is defined on.
type Model string

const (
	ConversationAttribute Model = "conversation_attribute"
	ContactAttribute      Model = "contact_attribute"
)

// Header keys of the disabled group entries placed before merged attributes.
const (
	ConversationCustomAttributeHeader = "conversation_custom_attribute"
	ContactCustomAttributeHeader      = "contact_custom_attribute"
)

// CustomAttribute is a user-defined field on a conversation or contact.
type CustomAttribute struct {
	AttributeKey string      `yaml:"attribute_key" json:"attribute_key"`
	DisplayName  string      `yaml:"attribute_display_name" json:"attribute_display_name"`
	DisplayType  DisplayType `yaml:"attribute_display_type" json:"attribute_display_type"`
	Model        Model       `yaml:"attribute_model" json:"attribute_model"`
	Values       []string    `yaml:"attribute_values,omitempty" json:"attribute_values,omitempty"`
}

var (
	equalityOperators = []Operator{
		{Value: "equal_to", Label: "Equal to"},
		{Value: "not_equal_to", Label: "Not equal to"},
	}
	textOperators = []Operator{
		{Value: "equal_to", Label: "Equal to"},
		{Value: "not_equal_to", Label: "Not equal to"},
		{Value: "contains", Label: "Contains"},
		{Value: "does_not_contain", Label: "Does not contain"},
	}
	dateOperators = []Operator{
		{Value: "equal_to", Label: "Equal to"},
		{Value: "not_equal_to", Label: "Not equal to"},
		{Value: "is_greater_than", Label: "Is greater than"},
		{Value: "is_less_than", Label: "Is less than"},
	}
)

// InputTypeFor maps a custom attribute display type to its input widget.
func InputTypeFor(dt DisplayType) InputType {
	switch dt {
	case DisplayDate:
		return InputDate
	case DisplayText:
		return InputPlainText
	case DisplayList, DisplayCheckbox:
		return InputSearchSelect
	default:
		return InputPlainText
	}
}

// OperatorsFor returns a fresh copy of the operator set of a display type.
func OperatorsFor(dt DisplayType) []Operator {
	var ops []Operator
	switch dt {
	case DisplayText:
		ops = textOperators
	case DisplayDate:
		ops = dateOperators
	default:
		ops = equalityOperators
	}
	out := make([]Operator, len(ops))
	copy(out, ops)
	return out
}

// FindCustomAttribute returns the custom attribute registered under key.
func FindCustomAttribute(attrs []CustomAttribute, key string) (CustomAttribute, bool) {
	for _, a := range attrs {
		if a.AttributeKey == key {
			return a, true
		}
	}
	return CustomAttribute{}, false
}

// AttributesByModel returns the attributes defined on model, in input order.
func AttributesByModel(attrs []CustomAttribute, model Model) []CustomAttribute {
	var out []CustomAttribute
	for _, a := range attrs {
		if a.Model == model {
			out = append(out, a)
		}
	}
	return out
}

// ConditionTypesFor turns the attributes of one model into condition types.
func ConditionTypesFor(attrs []CustomAttribute, model Model) []ConditionType {
	var out []ConditionType
	for _, a := range AttributesByModel(attrs, model) {
		out = append(out, ConditionType{
			Key:                 a.AttributeKey,
			Name:                a.DisplayName,
			InputType:           InputTypeFor(a.DisplayType),
			FilterOperators:     OperatorsFor(a.DisplayType),
			CustomAttributeType: string(model),
		})
	}
	return out
}

// WithCustomAttributes builds a new catalog whose custom-attribute events
// offer the given attributes after their standard conditions. Each non-empty
// group is preceded by a disabled header entry. base is left untouched, so
// calling this again on the same base yields the same result.
func WithCustomAttributes(base *Catalog, attrs []CustomAttribute, headers HeaderLabels) *Catalog {
	var extra []ConditionType
	if conv := ConditionTypesFor(attrs, ConversationAttribute); len(conv) > 0 {
		extra = append(extra, ConditionType{Key: ConversationCustomAttributeHeader, Name: headers.Conversation, Disabled: true})
		extra = append(extra, conv...)
	}
	if contact := ConditionTypesFor(attrs, ContactAttribute); len(contact) > 0 {
		extra = append(extra, ConditionType{Key: ContactCustomAttributeHeader, Name: headers.Contact, Disabled: true})
		extra = append(extra, contact...)
	}

	out := base.clone()
	if len(extra) == 0 {
		return out
	}
	for _, name := range event.CustomAttributeEvents {
		def, ok := out.Events[name]
		if !ok {
			continue
		}
		def.Conditions = append(def.Conditions, extra...)
		out.Events[name] = def
	}
	return out
}
