package options

import (
	"github.com/gyaneshwarpardhi/automation/internal/catalog"
	"github.com/gyaneshwarpardhi/automation/internal/locale"
)

// Option is one selectable value of a dropdown.
type Option struct {
	ID   interface{} `yaml:"id" json:"id"`
	Name string      `yaml:"name" json:"name"`
}

// Titled is a record displayed by its title (campaigns, labels).
type Titled struct {
	ID    interface{} `yaml:"id" json:"id"`
	Title string      `yaml:"title" json:"title"`
}

// Providers exposes read-only snapshots of the account's domain data.
type Providers interface {
	Agents() []Option
	Campaigns() []Titled
	Contacts() []Option
	Inboxes() []Option
	Labels() []Titled
	Teams() []Option
	SLAPolicies() []Option
	Languages() []Option
	Countries() []Option
	CustomAttributes() []catalog.CustomAttribute
}

var (
	messageTypes = []Option{
		{ID: "incoming", Name: "Incoming Message"},
		{ID: "outgoing", Name: "Outgoing Message"},
	}
	priorities = []Option{
		{ID: "nil", Name: "None"},
		{ID: "low", Name: "Low"},
		{ID: "medium", Name: "Medium"},
		{ID: "high", Name: "High"},
		{ID: "urgent", Name: "Urgent"},
	}
)

// NoneID is the id of the "None" entry prepended to assignment dropdowns.
const NoneID = "nil"

// Resolver turns condition keys and action names into option lists.
type Resolver struct {
	providers Providers
	tr        locale.Translator
}

// NewResolver creates a Resolver over the given data and translator.
func NewResolver(p Providers, tr locale.Translator) *Resolver {
	return &Resolver{providers: p, tr: tr}
}

// ConditionOptions returns the selectable values for a condition attribute key.
func (r *Resolver) ConditionOptions(key string) []Option {
	return r.Options(ConditionSource(key, r.providers.CustomAttributes()), key)
}

// ActionOptions returns the selectable values for an action.
func (r *Resolver) ActionOptions(name string) []Option {
	return r.Options(ActionSource(name), name)
}

// Options resolves a source. key is only consulted for custom attribute values.
// The returned slice is always a fresh copy.
func (r *Resolver) Options(src Source, key string) []Option {
	p := r.providers
	switch src {
	case SourceNone:
		return []Option{}
	case SourceStatus:
		return r.StatusOptions()
	case SourceAgents:
		return clone(p.Agents())
	case SourceAgentsWithNone:
		return r.withNone(p.Agents())
	case SourceContacts:
		return clone(p.Contacts())
	case SourceInboxes:
		return clone(p.Inboxes())
	case SourceTeams:
		return clone(p.Teams())
	case SourceTeamsWithNone:
		return r.withNone(p.Teams())
	case SourceCampaigns:
		return byTitle(p.Campaigns(), false)
	case SourceLanguages:
		return clone(p.Languages())
	case SourceCountries:
		return clone(p.Countries())
	case SourceMessageTypes:
		return clone(messageTypes)
	case SourcePriorities:
		return clone(priorities)
	case SourceLabels:
		return byTitle(p.Labels(), true)
	case SourceSLAPolicies:
		return clone(p.SLAPolicies())
	case SourceBoolean:
		return r.BooleanOptions()
	case SourceCustomAttributeValues:
		a, _ := catalog.FindCustomAttribute(p.CustomAttributes(), key)
		out := make([]Option, len(a.Values))
		for i, v := range a.Values {
			out[i] = Option{ID: v, Name: v}
		}
		return out
	default:
		panic("options: unhandled source " + src.String())
	}
}

// BooleanOptions returns the localized true/false pair.
func (r *Resolver) BooleanOptions() []Option {
	return []Option{
		{ID: true, Name: r.tr.T("FILTER.ATTRIBUTE_LABELS.TRUE")},
		{ID: false, Name: r.tr.T("FILTER.ATTRIBUTE_LABELS.FALSE")},
	}
}

// StatusOptions returns the conversation status filters followed by "all".
func (r *Resolver) StatusOptions() []Option {
	items := r.tr.StatusFilterItems()
	out := make([]Option, 0, len(items)+1)
	for _, it := range items {
		out = append(out, Option{ID: it.ID, Name: it.Text})
	}
	return append(out, Option{ID: "all", Name: r.tr.T("CHAT_LIST.FILTER_ALL")})
}

func (r *Resolver) withNone(opts []Option) []Option {
	out := make([]Option, 0, len(opts)+1)
	out = append(out, Option{ID: NoneID, Name: r.tr.T("AUTOMATION.NONE_OPTION")})
	return append(out, opts...)
}

// byTitle converts titled records; labels are referenced by title, so their
// title doubles as the id.
func byTitle(items []Titled, titleAsID bool) []Option {
	out := make([]Option, len(items))
	for i, it := range items {
		id := it.ID
		if titleAsID {
			id = it.Title
		}
		out[i] = Option{ID: id, Name: it.Title}
	}
	return out
}

func clone(opts []Option) []Option {
	out := make([]Option, len(opts))
	copy(out, opts)
	return out
}
