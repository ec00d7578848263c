package lifecycle

import (
	"time"

	"campusfound/beacon/pkg/docstore"
)

// Collection names used by the lifecycle engines.
const (
	CollectionItems         = "items"
	CollectionPreferences   = "notification_preferences"
	CollectionNotifications = "notifications"
	CollectionConversations = "conversations"
	CollectionMessages      = "messages"
)

// Status is the reported state of an item.
type Status string

const (
	// StatusLost marks an item reported as lost.
	StatusLost Status = "lost"
	// StatusFound marks an item reported as found.
	StatusFound Status = "found"
)

// Item is the canonical shape of a reported lost or found object.
// Raw stored records carry years of schema drift (type vs category,
// status vs kind, three image field spellings, four timestamp shapes);
// only the normalize package builds an Item from raw fields, and
// everything downstream sees this struct and nothing else.
type Item struct {
	ID          string
	Title       string
	Description string
	Category    string
	Status      Status
	FoundAt     *time.Time // set iff Status == StatusFound
	ImageURL    string
	OwnerID     string
	CreatedAt   *time.Time
}

// Preference is a subscriber's declared interests. One document per
// user, keyed by user id, owned by the external settings API.
type Preference struct {
	UserID       string
	Keywords     []string
	Categories   []string
	EmailEnabled bool
}

// PreferenceFromDocument decodes a stored preference record. Missing or
// malformed fields decode to zero values.
func PreferenceFromDocument(doc docstore.Document) Preference {
	return Preference{
		UserID:       doc.ID,
		Keywords:     StringSliceField(doc.Fields, "keywords"),
		Categories:   StringSliceField(doc.Fields, "categories"),
		EmailEnabled: BoolField(doc.Fields, "emailEnabled"),
	}
}

// Notification is a per-user alert created by the matching engine when
// a new item matches that user's preferences. The read flag and the
// record's eventual deletion belong to the external read API.
type Notification struct {
	ID          string
	UserID      string
	ItemID      string
	MatchReason string
	Read        bool
	CreatedAt   time.Time
}

// Fields returns the persisted representation of the notification.
func (n Notification) Fields() docstore.Fields {
	return docstore.Fields{
		"userId":      n.UserID,
		"itemId":      n.ItemID,
		"matchReason": n.MatchReason,
		"read":        n.Read,
		"createdAt":   n.CreatedAt,
	}
}

// Conversation is a two-party messaging thread scoped to one item.
// Created and appended to externally; destroyed only by the cascading
// deleter.
type Conversation struct {
	ID            string
	ItemID        string
	Participants  []string
	LastMessage   string
	LastMessageAt *time.Time
	CreatedAt     *time.Time
}

// ConversationFromDocument decodes a stored conversation record.
func ConversationFromDocument(doc docstore.Document) Conversation {
	return Conversation{
		ID:            doc.ID,
		ItemID:        StringField(doc.Fields, "itemId", "item_id"),
		Participants:  StringSliceField(doc.Fields, "participants"),
		LastMessage:   StringField(doc.Fields, "lastMessage"),
		LastMessageAt: TimeField(doc.Fields, "lastMessageAt"),
		CreatedAt:     TimeField(doc.Fields, "createdAt"),
	}
}

// Message is a single message inside a conversation. Messages are never
// deleted individually; they go only as a cascade effect of their
// conversation's destruction.
type Message struct {
	ID             string
	ConversationID string
	SenderID       string
	Text           string
	Timestamp      *time.Time
}

// MessageFromDocument decodes a stored message record.
func MessageFromDocument(doc docstore.Document) Message {
	return Message{
		ID:             doc.ID,
		ConversationID: StringField(doc.Fields, "conversationId", "conversation_id"),
		SenderID:       StringField(doc.Fields, "senderId"),
		Text:           StringField(doc.Fields, "text"),
		Timestamp:      TimeField(doc.Fields, "timestamp"),
	}
}
