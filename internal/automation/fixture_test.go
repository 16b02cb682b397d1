package automation_test

import (
	"github.com/gyaneshwarpardhi/automation/internal/automation"
	"github.com/gyaneshwarpardhi/automation/internal/catalog"
	"github.com/gyaneshwarpardhi/automation/internal/directory"
	"github.com/gyaneshwarpardhi/automation/internal/event"
	"github.com/gyaneshwarpardhi/automation/internal/locale"
	"github.com/gyaneshwarpardhi/automation/internal/notify"
	"github.com/gyaneshwarpardhi/automation/internal/options"
)

var (
	equality = []catalog.Operator{{Value: "equal_to"}, {Value: "not_equal_to"}}
	presence = []catalog.Operator{{Value: "equal_to"}, {Value: "not_equal_to"}, {Value: "is_present"}, {Value: "is_not_present"}}
	text     = []catalog.Operator{{Value: "equal_to"}, {Value: "not_equal_to"}, {Value: "contains"}, {Value: "does_not_contain"}}
)

func testCatalog() *catalog.Catalog {
	return &catalog.Catalog{
		Version: "1",
		Events: map[event.Name]catalog.EventDef{
			event.MessageCreated: {
				DefaultCondition: catalog.DefaultCondition{AttributeKey: "message_type", FilterOperator: "equal_to", QueryOperator: "and"},
				Conditions: []catalog.ConditionType{
					{Key: "message_type", InputType: catalog.InputSearchSelect, FilterOperators: equality},
					{Key: "content", InputType: catalog.InputCommaSeparated, FilterOperators: []catalog.Operator{{Value: "contains"}, {Value: "does_not_contain"}}},
					{Key: "email", InputType: catalog.InputPlainText, FilterOperators: text},
					{Key: "inbox_id", InputType: catalog.InputMultiSelect, FilterOperators: equality},
				},
			},
			event.ConversationCreated: {
				DefaultCondition: catalog.DefaultCondition{AttributeKey: "status", FilterOperator: "equal_to", QueryOperator: "and"},
				Conditions: []catalog.ConditionType{
					{Key: "status", InputType: catalog.InputMultiSelect, FilterOperators: equality},
					{Key: "mail_subject", InputType: catalog.InputPlainText, FilterOperators: text},
					{Key: "inbox_id", InputType: catalog.InputMultiSelect, FilterOperators: equality},
					{Key: "priority", InputType: catalog.InputMultiSelect, FilterOperators: []catalog.Operator{{Value: "eq"}, {Value: "neq"}}},
				},
			},
			event.ConversationUpdated: {
				DefaultCondition: catalog.DefaultCondition{AttributeKey: "status", FilterOperator: "equal_to", QueryOperator: "and"},
				Conditions: []catalog.ConditionType{
					{Key: "status", InputType: catalog.InputMultiSelect, FilterOperators: equality},
					{Key: "assignee_id", InputType: catalog.InputSearchSelect, FilterOperators: presence},
					{Key: "team_id", InputType: catalog.InputSearchSelect, FilterOperators: presence},
				},
			},
			event.ConversationOpened: {
				DefaultCondition: catalog.DefaultCondition{AttributeKey: "browser_language", FilterOperator: "equal_to", QueryOperator: "and"},
				Conditions: []catalog.ConditionType{
					{Key: "browser_language", InputType: catalog.InputSearchSelect, FilterOperators: equality},
				},
			},
			event.ConversationResolved: {
				DefaultCondition: catalog.DefaultCondition{AttributeKey: "inbox_id", FilterOperator: "equal_to", QueryOperator: "and"},
				Conditions: []catalog.ConditionType{
					{Key: "inbox_id", InputType: catalog.InputMultiSelect, FilterOperators: equality},
				},
			},
		},
		Actions: []catalog.ActionType{
			{Key: "assign_agent", InputType: catalog.InputSearchSelect},
			{Key: "assign_team", InputType: catalog.InputSearchSelect},
			{Key: "add_label", InputType: catalog.InputMultiSelect},
			{Key: "send_email_to_team", InputType: catalog.InputTeamMessage},
			{Key: "send_message", InputType: catalog.InputTextarea},
			{Key: "send_webhook_event", InputType: catalog.InputURL},
			{Key: "mute_conversation"},
		},
		DefaultAction: "assign_agent",
		HeaderLabels: catalog.HeaderLabels{
			Conversation: "AUTOMATION.CONDITION.CONVERSATION_CUSTOM_ATTR_LABEL",
			Contact:      "AUTOMATION.CONDITION.CONTACT_CUSTOM_ATTR_LABEL",
		},
	}
}

func testDirectory() *directory.Snapshot {
	return &directory.Snapshot{
		AgentList: []options.Option{{ID: 1, Name: "John"}, {ID: 2, Name: "Jane"}},
		TeamList:  []options.Option{{ID: 1, Name: "sales"}, {ID: 2, Name: "support"}},
		InboxList: []options.Option{{ID: 1, Name: "Website"}, {ID: 2, Name: "X"}, {ID: 5, Name: "Y"}},
		LabelList: []options.Titled{{ID: 1, Title: "billing"}, {ID: 2, Title: "bug"}, {ID: 3, Title: "vip"}},
		CustomAttributeList: []catalog.CustomAttribute{
			{AttributeKey: "plan", DisplayName: "Plan", DisplayType: catalog.DisplayList, Model: catalog.ConversationAttribute, Values: []string{"free", "pro"}},
			{AttributeKey: "escalated", DisplayName: "Escalated", DisplayType: catalog.DisplayCheckbox, Model: catalog.ConversationAttribute},
			{AttributeKey: "company", DisplayName: "Company", DisplayType: catalog.DisplayText, Model: catalog.ContactAttribute},
		},
	}
}

func testBundle() *locale.Bundle {
	return &locale.Bundle{
		Locale: "en",
		Messages: map[string]string{
			"CHAT_LIST.FILTER_ALL":                                "All",
			"FILTER.ATTRIBUTE_LABELS.TRUE":                        "True",
			"FILTER.ATTRIBUTE_LABELS.FALSE":                       "False",
			"AUTOMATION.CONDITION.DELETE_MESSAGE":                 "keep one condition",
			"AUTOMATION.ACTION.DELETE_MESSAGE":                    "keep one action",
			"AUTOMATION.NONE_OPTION":                              "None",
			"AUTOMATION.CONDITION.CONVERSATION_CUSTOM_ATTR_LABEL": "Custom Attributes",
			"AUTOMATION.CONDITION.CONTACT_CUSTOM_ATTR_LABEL":      "Contact Custom Attributes",
		},
		Statuses: []locale.StatusItem{{ID: "open", Text: "Open"}, {ID: "resolved", Text: "Resolved"}},
	}
}

func newTestEditor() (*automation.Editor, *notify.Recorder) {
	rec := notify.NewRecorder(nil)
	return automation.NewEditor(testCatalog(), testDirectory(), testBundle(), rec), rec
}
