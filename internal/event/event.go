package event

// Name identifies the conversation lifecycle event an automation rule listens to.
type Name string

const (
	ConversationCreated  Name = "conversation_created"
	ConversationUpdated  Name = "conversation_updated"
	ConversationOpened   Name = "conversation_opened"
	ConversationResolved Name = "conversation_resolved"
	MessageCreated       Name = "message_created"
)

// CustomAttributeEvents are the events whose condition lists also offer
// conversation and contact custom attributes.
var CustomAttributeEvents = []Name{
	MessageCreated,
	ConversationCreated,
	ConversationUpdated,
	ConversationOpened,
}

// Event is a sample occurrence used to dry-run a rule's conditions.
type Event struct {
	ID         string                 `json:"id"`
	Name       Name                   `json:"event_name"`
	Attributes map[string]interface{} `json:"attributes"` // attribute_key → value
}
