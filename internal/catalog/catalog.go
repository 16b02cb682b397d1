package catalog

import (
	"errors"
	"fmt"

	"github.com/gyaneshwarpardhi/automation/internal/event"
)

var (
	ErrUnknownEvent     = errors.New("unknown event")
	ErrUnknownCondition = errors.New("unknown condition attribute")
	ErrUnknownAction    = errors.New("unknown action")
)

// Event returns the condition catalog of an event.
func (c *Catalog) Event(name event.Name) (EventDef, error) {
	def, ok := c.Events[name]
	if !ok {
		return EventDef{}, fmt.Errorf("%w %q", ErrUnknownEvent, name)
	}
	return def, nil
}

// Attributes returns the condition types offered for an event.
func (c *Catalog) Attributes(name event.Name) ([]ConditionType, error) {
	def, err := c.Event(name)
	if err != nil {
		return nil, err
	}
	return def.Conditions, nil
}

// ConditionType looks up the condition type registered under key for an event.
func (c *Catalog) ConditionType(name event.Name, key string) (ConditionType, error) {
	def, err := c.Event(name)
	if err != nil {
		return ConditionType{}, err
	}
	for _, ct := range def.Conditions {
		if ct.Key == key {
			return ct, nil
		}
	}
	return ConditionType{}, fmt.Errorf("%w %q for event %q", ErrUnknownCondition, key, name)
}

// ActionType looks up an action by key.
func (c *Catalog) ActionType(key string) (ActionType, error) {
	for _, at := range c.Actions {
		if at.Key == key {
			return at, nil
		}
	}
	return ActionType{}, fmt.Errorf("%w %q", ErrUnknownAction, key)
}

// EventNames returns the events present in the catalog.
func (c *Catalog) EventNames() []event.Name {
	out := make([]event.Name, 0, len(c.Events))
	for name := range c.Events {
		out = append(out, name)
	}
	return out
}

// clone copies the catalog deeply enough that appending to any event's
// condition list never touches the receiver.
func (c *Catalog) clone() *Catalog {
	out := *c
	out.Events = make(map[event.Name]EventDef, len(c.Events))
	for name, def := range c.Events {
		conds := make([]ConditionType, len(def.Conditions))
		copy(conds, def.Conditions)
		def.Conditions = conds
		out.Events[name] = def
	}
	out.Actions = make([]ActionType, len(c.Actions))
	copy(out.Actions, c.Actions)
	return &out
}
