package domain

// EntryType classifies a calendar entry.
type EntryType string

const (
	EntryTypeEvent    EntryType = "event"
	EntryTypeSchedule EntryType = "schedule"
	EntryTypeMemo     EntryType = "memo"
	EntryTypeTask     EntryType = "task"
)

func (t EntryType) String() string { return string(t) }

func (t EntryType) IsValid() bool {
	switch t {
	case EntryTypeEvent, EntryTypeSchedule, EntryTypeMemo, EntryTypeTask:
		return true
	}
	return false
}

// Relation names the BaaS tables that publish insert notifications.
type Relation string

const (
	RelationChatMessages  Relation = "chat_messages"
	RelationEntryComments Relation = "entry_comments"
)

func (r Relation) String() string { return string(r) }

func (r Relation) IsValid() bool {
	switch r {
	case RelationChatMessages, RelationEntryComments:
		return true
	}
	return false
}
