package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gyaneshwarpardhi/automation/internal/catalog"
	"github.com/gyaneshwarpardhi/automation/internal/locale"
)

type fakeProviders struct {
	agents, contacts, inboxes, teams, slas, languages, countries []Option
	campaigns, labels                                            []Titled
	attrs                                                        []catalog.CustomAttribute
}

func (f *fakeProviders) Agents() []Option                            { return f.agents }
func (f *fakeProviders) Campaigns() []Titled                         { return f.campaigns }
func (f *fakeProviders) Contacts() []Option                          { return f.contacts }
func (f *fakeProviders) Inboxes() []Option                           { return f.inboxes }
func (f *fakeProviders) Labels() []Titled                            { return f.labels }
func (f *fakeProviders) Teams() []Option                             { return f.teams }
func (f *fakeProviders) SLAPolicies() []Option                       { return f.slas }
func (f *fakeProviders) Languages() []Option                         { return f.languages }
func (f *fakeProviders) Countries() []Option                         { return f.countries }
func (f *fakeProviders) CustomAttributes() []catalog.CustomAttribute { return f.attrs }

func newTestResolver() (*Resolver, *fakeProviders) {
	p := &fakeProviders{
		agents:    []Option{{ID: 1, Name: "John"}},
		contacts:  []Option{{ID: 7, Name: "Ada"}},
		inboxes:   []Option{{ID: 1, Name: "Website"}, {ID: 2, Name: "Email"}},
		teams:     []Option{{ID: 3, Name: "sales"}},
		slas:      []Option{{ID: 9, Name: "Gold"}},
		languages: []Option{{ID: "en", Name: "English"}},
		countries: []Option{{ID: "IN", Name: "India"}},
		campaigns: []Titled{{ID: 11, Title: "Spring"}},
		labels:    []Titled{{ID: 1, Title: "billing"}},
		attrs: []catalog.CustomAttribute{
			{AttributeKey: "plan", DisplayType: catalog.DisplayList, Model: catalog.ConversationAttribute, Values: []string{"free", "pro"}},
			{AttributeKey: "escalated", DisplayType: catalog.DisplayCheckbox, Model: catalog.ConversationAttribute},
			{AttributeKey: "company", DisplayType: catalog.DisplayText, Model: catalog.ContactAttribute},
		},
	}
	tr := &locale.Bundle{
		Messages: map[string]string{
			"CHAT_LIST.FILTER_ALL":          "All",
			"FILTER.ATTRIBUTE_LABELS.TRUE":  "Yes",
			"FILTER.ATTRIBUTE_LABELS.FALSE": "No",
			"AUTOMATION.NONE_OPTION":        "None",
		},
		Statuses: []locale.StatusItem{{ID: "open", Text: "Open"}, {ID: "snoozed", Text: "Snoozed"}},
	}
	return NewResolver(p, tr), p
}

func TestConditionOptions(t *testing.T) {
	r, _ := newTestResolver()
	cases := []struct {
		key  string
		want []Option
	}{
		{"status", []Option{{ID: "open", Name: "Open"}, {ID: "snoozed", Name: "Snoozed"}, {ID: "all", Name: "All"}}},
		{"assignee_id", []Option{{ID: 1, Name: "John"}}},
		{"contact", []Option{{ID: 7, Name: "Ada"}}},
		{"inbox_id", []Option{{ID: 1, Name: "Website"}, {ID: 2, Name: "Email"}}},
		{"team_id", []Option{{ID: 3, Name: "sales"}}},
		{"campaigns", []Option{{ID: 11, Name: "Spring"}}},
		{"browser_language", []Option{{ID: "en", Name: "English"}}},
		{"conversation_language", []Option{{ID: "en", Name: "English"}}},
		{"country_code", []Option{{ID: "IN", Name: "India"}}},
		{"message_type", messageTypes},
		{"priority", priorities},
		{"plan", []Option{{ID: "free", Name: "free"}, {ID: "pro", Name: "pro"}}},
		{"escalated", []Option{{ID: true, Name: "Yes"}, {ID: false, Name: "No"}}},
		{"company", []Option{}},
		{"mail_subject", []Option{}},
	}
	for _, tc := range cases {
		t.Run(tc.key, func(t *testing.T) {
			assert.Equal(t, tc.want, r.ConditionOptions(tc.key))
		})
	}
}

func TestActionOptions(t *testing.T) {
	r, _ := newTestResolver()
	cases := []struct {
		name string
		want []Option
	}{
		{"assign_agent", []Option{{ID: NoneID, Name: "None"}, {ID: 1, Name: "John"}}},
		{"assign_team", []Option{{ID: NoneID, Name: "None"}, {ID: 3, Name: "sales"}}},
		{"send_email_to_team", []Option{{ID: 3, Name: "sales"}}},
		{"add_label", []Option{{ID: "billing", Name: "billing"}}},
		{"remove_label", []Option{{ID: "billing", Name: "billing"}}},
		{"change_priority", priorities},
		{"add_sla", []Option{{ID: 9, Name: "Gold"}}},
		{"send_message", []Option{}},
		{"mute_conversation", []Option{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, r.ActionOptions(tc.name))
		})
	}
}

func TestOptions_ReturnsCopies(t *testing.T) {
	r, p := newTestResolver()

	got := r.ConditionOptions("inbox_id")
	got[0].Name = "changed"
	assert.Equal(t, "Website", p.inboxes[0].Name)

	mt := r.ConditionOptions("message_type")
	mt[0].Name = "changed"
	assert.Equal(t, "Incoming Message", messageTypes[0].Name)
}

func TestOptions_PanicsOnUnknownSource(t *testing.T) {
	r, _ := newTestResolver()
	assert.Panics(t, func() { r.Options(Source(99), "") })
	assert.Equal(t, "unknown", Source(99).String())
	assert.Equal(t, "teams_with_none", SourceTeamsWithNone.String())
}

func TestSameID(t *testing.T) {
	cases := []struct {
		a, b interface{}
		want bool
	}{
		{1, float64(1), true},
		{int64(5), 5, true},
		{1, "1", false},
		{"nil", "nil", true},
		{"billing", "Billing", false},
		{true, true, true},
		{true, "true", false},
		{"true", true, false},
		{1, true, false},
		{float64(2), float64(3), false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, SameID(tc.a, tc.b), "%v (%T) vs %v (%T)", tc.a, tc.a, tc.b, tc.b)
	}
}

func TestFilter(t *testing.T) {
	opts := []Option{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}, {ID: 3, Name: "c"}}

	got := Filter(opts, []interface{}{float64(3), 1, "missing"})
	assert.Equal(t, []Option{{ID: 1, Name: "a"}, {ID: 3, Name: "c"}}, got)

	assert.Empty(t, Filter(opts, nil))
	assert.Empty(t, Filter(nil, []interface{}{1}))

	require.Len(t, IDs(got), 2)
	assert.Equal(t, []interface{}{1, 3}, IDs(got))
}

func TestConditionSource_StandardKeysWin(t *testing.T) {
	// A custom attribute sharing a standard key does not change the source.
	attrs := []catalog.CustomAttribute{{AttributeKey: "status", DisplayType: catalog.DisplayCheckbox}}
	assert.Equal(t, SourceStatus, ConditionSource("status", attrs))
	assert.Equal(t, SourceNone, ConditionSource("unknown", attrs))
}
