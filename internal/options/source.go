package options

import "github.com/gyaneshwarpardhi/automation/internal/catalog"

// Source identifies where the selectable values of a condition or action come
// from. Every condition key and action name maps to exactly one Source.
type Source int

const (
	SourceNone Source = iota
	SourceStatus
	SourceAgents
	SourceAgentsWithNone
	SourceContacts
	SourceInboxes
	SourceTeams
	SourceTeamsWithNone
	SourceCampaigns
	SourceLanguages
	SourceCountries
	SourceMessageTypes
	SourcePriorities
	SourceLabels
	SourceSLAPolicies
	SourceBoolean
	SourceCustomAttributeValues
)

var sourceNames = [...]string{
	SourceNone:                  "none",
	SourceStatus:                "status",
	SourceAgents:                "agents",
	SourceAgentsWithNone:        "agents_with_none",
	SourceContacts:              "contacts",
	SourceInboxes:               "inboxes",
	SourceTeams:                 "teams",
	SourceTeamsWithNone:         "teams_with_none",
	SourceCampaigns:             "campaigns",
	SourceLanguages:             "languages",
	SourceCountries:             "countries",
	SourceMessageTypes:          "message_types",
	SourcePriorities:            "priorities",
	SourceLabels:                "labels",
	SourceSLAPolicies:           "sla_policies",
	SourceBoolean:               "boolean",
	SourceCustomAttributeValues: "custom_attribute_values",
}

func (s Source) String() string {
	if s < 0 || int(s) >= len(sourceNames) {
		return "unknown"
	}
	return sourceNames[s]
}

// ConditionSource maps a condition attribute key to its option source.
// Keys that are not standard attributes are looked up among attrs: checkbox
// attributes offer true/false, list attributes offer their declared values.
func ConditionSource(key string, attrs []catalog.CustomAttribute) Source {
	switch key {
	case "status":
		return SourceStatus
	case "assignee_id":
		return SourceAgents
	case "contact":
		return SourceContacts
	case "inbox_id":
		return SourceInboxes
	case "team_id":
		return SourceTeams
	case "campaigns":
		return SourceCampaigns
	case "browser_language", "conversation_language":
		return SourceLanguages
	case "country_code":
		return SourceCountries
	case "message_type":
		return SourceMessageTypes
	case "priority":
		return SourcePriorities
	}
	if a, ok := catalog.FindCustomAttribute(attrs, key); ok {
		switch a.DisplayType {
		case catalog.DisplayCheckbox:
			return SourceBoolean
		case catalog.DisplayList:
			return SourceCustomAttributeValues
		}
	}
	return SourceNone
}

// ActionSource maps an action name to its option source.
func ActionSource(name string) Source {
	switch name {
	case "assign_agent":
		return SourceAgentsWithNone
	case "assign_team":
		return SourceTeamsWithNone
	case "send_email_to_team":
		return SourceTeams
	case "add_label", "remove_label":
		return SourceLabels
	case "change_priority":
		return SourcePriorities
	case "add_sla":
		return SourceSLAPolicies
	}
	return SourceNone
}
