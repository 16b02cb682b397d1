package automation

import (
	"bytes"
	"encoding/json"

	"github.com/gyaneshwarpardhi/automation/internal/event"
)

// Query operators joining a condition to the next one.
const (
	QueryAnd = "and"
	QueryOr  = "or"
)

// Rule is an automation rule in its stored shape.
type Rule struct {
	ID          string      `json:"id,omitempty"`
	Name        string      `json:"name,omitempty"`
	Description string      `json:"description,omitempty"`
	Active      bool        `json:"active"`
	EventName   event.Name  `json:"event_name"`
	Conditions  []Condition `json:"conditions"`
	Actions     []Action    `json:"actions"`
}

// Condition is one stored predicate of a rule.
type Condition struct {
	AttributeKey        string `json:"attribute_key"`
	FilterOperator      string `json:"filter_operator"`
	QueryOperator       string `json:"query_operator,omitempty"`
	Values              Values `json:"values"`
	CustomAttributeType string `json:"custom_attribute_type,omitempty"`
}

// Action is one stored effect of a rule.
type Action struct {
	ActionName   string        `json:"action_name"`
	ActionParams []interface{} `json:"action_params"`
}

// Values is the stored value list of a condition. Editors sometimes post a
// bare scalar (or an empty string after a reset); those decode to a list of
// one element, or to an empty list.
type Values []interface{}

func (v *Values) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var list []interface{}
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		*v = list
		return nil
	}
	var scalar interface{}
	if err := json.Unmarshal(data, &scalar); err != nil {
		return err
	}
	if scalar == nil || scalar == "" {
		*v = Values{}
		return nil
	}
	*v = Values{scalar}
	return nil
}

func (v Values) MarshalJSON() ([]byte, error) {
	if v == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]interface{}(v))
}

// TeamMessage is the stored parameter of a team_message action.
type TeamMessage struct {
	TeamIDs []interface{} `json:"team_ids"`
	Message string        `json:"message"`
}

// teamMessageOf reads the first parameter of a team_message action, which is
// either a TeamMessage or the map it decodes to from JSON.
func teamMessageOf(params []interface{}) TeamMessage {
	if len(params) == 0 {
		return TeamMessage{}
	}
	switch p := params[0].(type) {
	case TeamMessage:
		return p
	case *TeamMessage:
		if p != nil {
			return *p
		}
	case map[string]interface{}:
		var tm TeamMessage
		if ids, ok := p["team_ids"].([]interface{}); ok {
			tm.TeamIDs = ids
		}
		tm.Message, _ = p["message"].(string)
		return tm
	}
	return TeamMessage{}
}
