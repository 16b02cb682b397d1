package automation

import (
	"errors"
	"fmt"

	"github.com/gyaneshwarpardhi/automation/internal/catalog"
	"github.com/gyaneshwarpardhi/automation/internal/event"
	"github.com/gyaneshwarpardhi/automation/internal/locale"
	"github.com/gyaneshwarpardhi/automation/internal/metrics"
	"github.com/gyaneshwarpardhi/automation/internal/notify"
	"github.com/gyaneshwarpardhi/automation/internal/options"
)

// ErrIndexOutOfRange is returned when a condition or action index does not exist.
var ErrIndexOutOfRange = errors.New("index out of range")

// Mode is the editor mode; custom attribute operators differ when editing.
type Mode string

const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
)

// Editor holds the read-only context a rule is edited against: the catalog
// merged with the account's custom attributes, option data, strings and a
// notification sink. Rules themselves are owned by the caller.
type Editor struct {
	catalog  *catalog.Catalog
	attrs    []catalog.CustomAttribute
	resolver *options.Resolver
	tr       locale.Translator
	notifier notify.Notifier
}

// NewEditor builds an editing context. The custom attributes of p are merged
// into a copy of base; base is not modified.
func NewEditor(base *catalog.Catalog, p options.Providers, tr locale.Translator, n notify.Notifier) *Editor {
	attrs := p.CustomAttributes()
	headers := catalog.HeaderLabels{
		Conversation: tr.T(base.HeaderLabels.Conversation),
		Contact:      tr.T(base.HeaderLabels.Contact),
	}
	if n == nil {
		n = notify.NewLogger(nil)
	}
	return &Editor{
		catalog:  catalog.WithCustomAttributes(base, attrs, headers),
		attrs:    attrs,
		resolver: options.NewResolver(p, tr),
		tr:       tr,
		notifier: n,
	}
}

// WithNotifier returns a copy of the editor that sends notices to n.
func (e *Editor) WithNotifier(n notify.Notifier) *Editor {
	cp := *e
	cp.notifier = n
	return &cp
}

// Catalog returns the merged catalog.
func (e *Editor) Catalog() *catalog.Catalog { return e.catalog }

// Attributes returns the condition types offered for an event.
func (e *Editor) Attributes(name event.Name) ([]catalog.ConditionType, error) {
	return e.catalog.Attributes(name)
}

// ConditionOptions returns the dropdown values of a condition attribute.
func (e *Editor) ConditionOptions(key string) []options.Option {
	return e.resolver.ConditionOptions(key)
}

// ActionOptions returns the dropdown values of an action.
func (e *Editor) ActionOptions(name string) []options.Option {
	return e.resolver.ActionOptions(name)
}

// DefaultConditions returns the conditions a rule for ev starts with.
func (e *Editor) DefaultConditions(ev event.Name) ([]Condition, error) {
	def, err := e.catalog.Event(ev)
	if err != nil {
		return nil, err
	}
	dc := def.DefaultCondition
	return []Condition{{
		AttributeKey:   dc.AttributeKey,
		FilterOperator: dc.FilterOperator,
		QueryOperator:  dc.QueryOperator,
		Values:         Values{},
	}}, nil
}

// DefaultActions returns the actions a new rule starts with.
func (e *Editor) DefaultActions() []Action {
	return []Action{{ActionName: e.catalog.DefaultAction, ActionParams: []interface{}{}}}
}

// OnEventChange discards the rule's conditions and actions and replaces them
// with the defaults of its current event.
func (e *Editor) OnEventChange(r *Rule) error {
	conds, err := e.DefaultConditions(r.EventName)
	if err != nil {
		return err
	}
	r.Conditions = conds
	r.Actions = e.DefaultActions()
	metrics.EventChanges.WithLabelValues(string(r.EventName)).Inc()
	return nil
}

// AppendCondition adds the event's default condition to the end of the rule.
func (e *Editor) AppendCondition(r *Rule) error {
	conds, err := e.DefaultConditions(r.EventName)
	if err != nil {
		return err
	}
	r.Conditions = append(r.Conditions, conds...)
	return nil
}

// AppendAction adds the default action to the end of the rule.
func (e *Editor) AppendAction(r *Rule) {
	r.Actions = append(r.Actions, e.DefaultActions()...)
}

// RemoveCondition deletes the condition at i. The last remaining condition is
// never removed; the user is told instead and the rule is left unchanged.
func (e *Editor) RemoveCondition(r *Rule, i int) error {
	if len(r.Conditions) <= 1 {
		metrics.RemovalsRefused.WithLabelValues("condition").Inc()
		e.notifier.Notify(e.tr.T("AUTOMATION.CONDITION.DELETE_MESSAGE"))
		return nil
	}
	if i < 0 || i >= len(r.Conditions) {
		return fmt.Errorf("remove condition %d of %d: %w", i, len(r.Conditions), ErrIndexOutOfRange)
	}
	r.Conditions = append(r.Conditions[:i:i], r.Conditions[i+1:]...)
	return nil
}

// RemoveAction deletes the action at i, keeping at least one action.
func (e *Editor) RemoveAction(r *Rule, i int) error {
	if len(r.Actions) <= 1 {
		metrics.RemovalsRefused.WithLabelValues("action").Inc()
		e.notifier.Notify(e.tr.T("AUTOMATION.ACTION.DELETE_MESSAGE"))
		return nil
	}
	if i < 0 || i >= len(r.Actions) {
		return fmt.Errorf("remove action %d of %d: %w", i, len(r.Actions), ErrIndexOutOfRange)
	}
	r.Actions = append(r.Actions[:i:i], r.Actions[i+1:]...)
	return nil
}

// ResetConditionOperator is called after the attribute of condition i
// changed: the operator becomes the first one the new attribute offers and
// the values are cleared.
func (e *Editor) ResetConditionOperator(r *Rule, i int) error {
	if i < 0 || i >= len(r.Conditions) {
		return fmt.Errorf("reset condition %d of %d: %w", i, len(r.Conditions), ErrIndexOutOfRange)
	}
	c := &r.Conditions[i]
	ct, err := e.catalog.ConditionType(r.EventName, c.AttributeKey)
	if err != nil {
		return err
	}
	if ct.Disabled || len(ct.FilterOperators) == 0 {
		return fmt.Errorf("%w %q: offers no filter operators", catalog.ErrUnknownCondition, c.AttributeKey)
	}
	c.FilterOperator = ct.FilterOperators[0].Value
	c.CustomAttributeType = ct.CustomAttributeType
	c.Values = Values{}
	return nil
}

// ResetActionParams clears the params of action i after its name changed.
func (e *Editor) ResetActionParams(r *Rule, i int) error {
	if i < 0 || i >= len(r.Actions) {
		return fmt.Errorf("reset action %d of %d: %w", i, len(r.Actions), ErrIndexOutOfRange)
	}
	r.Actions[i].ActionParams = []interface{}{}
	return nil
}

// ShowActionInput reports whether an action needs an input widget. Team
// emails and messages render their own composer, so they never do.
func (e *Editor) ShowActionInput(name string) (bool, error) {
	if name == "send_email_to_team" || name == "send_message" {
		return false, nil
	}
	at, err := e.catalog.ActionType(name)
	if err != nil {
		return false, err
	}
	return at.InputType != "", nil
}

// InputType resolves the input type of a condition attribute for the rule's
// event. Custom attributes take their type from their display type.
func (e *Editor) InputType(r *Rule, key string) (catalog.InputType, error) {
	if a, ok := catalog.FindCustomAttribute(e.attrs, key); ok {
		return catalog.InputTypeFor(a.DisplayType), nil
	}
	ct, err := e.catalog.ConditionType(r.EventName, key)
	if err != nil {
		return "", err
	}
	return ct.InputType, nil
}

// Operators returns the filter operators offered for a condition attribute.
func (e *Editor) Operators(r *Rule, mode Mode, key string) ([]catalog.Operator, error) {
	if mode == ModeEdit {
		if a, ok := catalog.FindCustomAttribute(e.attrs, key); ok {
			return catalog.OperatorsFor(a.DisplayType), nil
		}
	}
	ct, err := e.catalog.ConditionType(r.EventName, key)
	if err != nil {
		return nil, err
	}
	return ct.FilterOperators, nil
}

// CustomAttributeType returns the model ("conversation_attribute" or
// "contact_attribute") of a merged custom attribute, or "" for standard ones.
func (e *Editor) CustomAttributeType(r *Rule, key string) (string, error) {
	ct, err := e.catalog.ConditionType(r.EventName, key)
	if err != nil {
		return "", err
	}
	return ct.CustomAttributeType, nil
}
