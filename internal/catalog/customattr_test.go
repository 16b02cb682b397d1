package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gyaneshwarpardhi/automation/internal/event"
)

var testAttrs = []CustomAttribute{
	{AttributeKey: "plan", DisplayName: "Plan", DisplayType: DisplayList, Model: ConversationAttribute, Values: []string{"free", "pro"}},
	{AttributeKey: "signed_up_at", DisplayName: "Signed up", DisplayType: DisplayDate, Model: ContactAttribute},
	{AttributeKey: "company", DisplayName: "Company", DisplayType: DisplayText, Model: ContactAttribute},
}

func TestInputTypeFor(t *testing.T) {
	cases := map[DisplayType]InputType{
		DisplayDate:     InputDate,
		DisplayText:     InputPlainText,
		DisplayList:     InputSearchSelect,
		DisplayCheckbox: InputSearchSelect,
		DisplayNumber:   InputPlainText,
		DisplayLink:     InputPlainText,
	}
	for dt, want := range cases {
		assert.Equal(t, want, InputTypeFor(dt), dt)
	}
}

func TestOperatorsFor(t *testing.T) {
	values := func(ops []Operator) []string {
		out := make([]string, len(ops))
		for i, op := range ops {
			out[i] = op.Value
		}
		return out
	}
	assert.Equal(t, []string{"equal_to", "not_equal_to", "contains", "does_not_contain"}, values(OperatorsFor(DisplayText)))
	assert.Equal(t, []string{"equal_to", "not_equal_to", "is_greater_than", "is_less_than"}, values(OperatorsFor(DisplayDate)))
	assert.Equal(t, []string{"equal_to", "not_equal_to"}, values(OperatorsFor(DisplayList)))
	assert.Equal(t, []string{"equal_to", "not_equal_to"}, values(OperatorsFor(DisplayNumber)))

	// Callers get their own copy.
	ops := OperatorsFor(DisplayText)
	ops[0].Value = "changed"
	assert.Equal(t, "equal_to", OperatorsFor(DisplayText)[0].Value)
}

func TestAttributesByModel(t *testing.T) {
	contact := AttributesByModel(testAttrs, ContactAttribute)
	require.Len(t, contact, 2)
	assert.Equal(t, "signed_up_at", contact[0].AttributeKey)
	assert.Equal(t, "company", contact[1].AttributeKey)

	conv := AttributesByModel(testAttrs, ConversationAttribute)
	require.Len(t, conv, 1)
	assert.Equal(t, "plan", conv[0].AttributeKey)

	assert.Empty(t, AttributesByModel(nil, ContactAttribute))
}

func TestConditionTypesFor(t *testing.T) {
	conv := ConditionTypesFor(testAttrs, ConversationAttribute)
	require.Len(t, conv, 1)
	assert.Equal(t, "plan", conv[0].Key)
	assert.Equal(t, "Plan", conv[0].Name)
	assert.Equal(t, string(ConversationAttribute), conv[0].CustomAttributeType)

	contact := ConditionTypesFor(testAttrs, ContactAttribute)
	require.Len(t, contact, 2)
	assert.Equal(t, InputDate, contact[0].InputType)
	assert.Equal(t, InputPlainText, contact[1].InputType)

	assert.Empty(t, ConditionTypesFor(nil, ContactAttribute))
}

func TestWithCustomAttributes(t *testing.T) {
	base := validCatalog()
	base.Events[event.MessageCreated] = base.Events[event.ConversationCreated]
	base.Events[event.ConversationResolved] = base.Events[event.ConversationCreated]
	headers := HeaderLabels{Conversation: "Conversation attrs", Contact: "Contact attrs"}

	merged := WithCustomAttributes(base, testAttrs, headers)

	for _, name := range []event.Name{event.ConversationCreated, event.MessageCreated} {
		conds := merged.Events[name].Conditions
		require.Len(t, conds, 2+5, name)
		keys := make([]string, len(conds))
		for i, c := range conds {
			keys[i] = c.Key
		}
		assert.Equal(t, []string{
			"status", "header",
			ConversationCustomAttributeHeader, "plan",
			ContactCustomAttributeHeader, "signed_up_at", "company",
		}, keys, name)
		assert.True(t, conds[2].Disabled)
		assert.Equal(t, "Conversation attrs", conds[2].Name)
		assert.Equal(t, "Contact attrs", conds[4].Name)
	}

	assert.Len(t, merged.Events[event.ConversationResolved].Conditions, 2, "resolved is not a custom attribute event")
	assert.Len(t, base.Events[event.ConversationCreated].Conditions, 2, "base untouched")

	again := WithCustomAttributes(base, testAttrs, headers)
	assert.Equal(t, merged, again)
}

func TestWithCustomAttributes_SkipsEmptyGroups(t *testing.T) {
	base := validCatalog()
	onlyContact := []CustomAttribute{testAttrs[2]}

	merged := WithCustomAttributes(base, onlyContact, HeaderLabels{})
	conds := merged.Events[event.ConversationCreated].Conditions
	require.Len(t, conds, 4)
	assert.Equal(t, ContactCustomAttributeHeader, conds[2].Key)

	none := WithCustomAttributes(base, nil, HeaderLabels{})
	assert.Equal(t, base.Events, none.Events)
	assert.NotSame(t, base, none)
}

func TestFindCustomAttribute(t *testing.T) {
	a, ok := FindCustomAttribute(testAttrs, "company")
	require.True(t, ok)
	assert.Equal(t, DisplayText, a.DisplayType)

	_, ok = FindCustomAttribute(testAttrs, "nope")
	assert.False(t, ok)
}
