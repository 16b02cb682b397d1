package automation_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gyaneshwarpardhi/automation/internal/automation"
	"github.com/gyaneshwarpardhi/automation/internal/catalog"
	"github.com/gyaneshwarpardhi/automation/internal/event"
)

func TestPreview(t *testing.T) {
	ed, _ := newTestEditor()
	r := &automation.Rule{
		EventName: event.MessageCreated,
		Conditions: []automation.Condition{
			{AttributeKey: "content", FilterOperator: "contains", QueryOperator: "and", Values: automation.Values{"refund", "chargeback"}},
			{AttributeKey: "inbox_id", FilterOperator: "equal_to", Values: automation.Values{float64(2)}},
		},
	}

	ev := &event.Event{ID: "e1", Name: event.MessageCreated, Attributes: map[string]interface{}{
		"content":  "I want a REFUND now",
		"inbox_id": 2,
	}}
	res, err := ed.Preview(r, ev, time.Now())
	require.NoError(t, err)
	assert.True(t, res.Matched)
	assert.Equal(t, []bool{true, true}, res.Clauses)

	ev.Attributes["inbox_id"] = 1
	res, err = ed.Preview(r, ev, time.Now())
	require.NoError(t, err)
	assert.False(t, res.Matched)
	assert.Equal(t, []bool{true, false}, res.Clauses)
}

func TestPreview_OtherEventNeverMatches(t *testing.T) {
	ed, _ := newTestEditor()
	r := &automation.Rule{
		EventName:  event.MessageCreated,
		Conditions: []automation.Condition{{AttributeKey: "email", FilterOperator: "is_present"}},
	}
	res, err := ed.Preview(r, &event.Event{Name: event.ConversationOpened, Attributes: map[string]interface{}{"email": "a@b.c"}}, time.Now())
	require.NoError(t, err)
	assert.False(t, res.Matched)
}

func TestPreview_UnknownAttribute(t *testing.T) {
	ed, _ := newTestEditor()
	r := &automation.Rule{
		EventName:  event.MessageCreated,
		Conditions: []automation.Condition{{AttributeKey: "nope", FilterOperator: "equal_to"}},
	}
	_, err := ed.Preview(r, &event.Event{}, time.Now())
	assert.ErrorIs(t, err, catalog.ErrUnknownCondition)
}
