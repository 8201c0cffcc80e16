package events

import "time"

const (
	TypeCatalogImported  = "catalog.imported"
	TypeWaitlistJoined   = "waitlist.joined"
	TypeChatTurnRecorded = "chat.turn_recorded"
)

func NewCatalogImported(categories, workflows int) BaseEvent {
	return BaseEvent{
		Type: TypeCatalogImported,
		Data: map[string]interface{}{
			"categories": categories,
			"workflows":  workflows,
		},
		OccurredAt: time.Now(),
	}
}

// NewWaitlistJoined never carries the API key itself.
func NewWaitlistJoined(ip string, hasEmail, hasAPIKey bool) BaseEvent {
	return BaseEvent{
		Type: TypeWaitlistJoined,
		Data: map[string]interface{}{
			"ip_address":  ip,
			"has_email":   hasEmail,
			"has_api_key": hasAPIKey,
		},
		OccurredAt: time.Now(),
	}
}

func NewChatTurnRecorded(threadID, assistantID string) BaseEvent {
	return BaseEvent{
		Type: TypeChatTurnRecorded,
		Data: map[string]interface{}{
			"thread_id":    threadID,
			"assistant_id": assistantID,
		},
		OccurredAt: time.Now(),
	}
}
