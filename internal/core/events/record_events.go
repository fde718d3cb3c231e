package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeRecordsIngested = "records.ingested"
	EventTypeAccountLocked   = "auth.account_locked"
)

type RecordsIngestedEvent struct {
	BaseEvent
	Domain   string `json:"domain"`
	Accepted int    `json:"accepted"`
	Rejected int    `json:"rejected"`
	Username string `json:"username"`
}

func NewRecordsIngestedEvent(domain string, accepted, rejected int, username string) *RecordsIngestedEvent {
	return &RecordsIngestedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeRecordsIngested,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"domain":   domain,
				"accepted": accepted,
				"rejected": rejected,
				"username": username,
			},
		},
		Domain:   domain,
		Accepted: accepted,
		Rejected: rejected,
		Username: username,
	}
}

type AccountLockedEvent struct {
	BaseEvent
	Username    string    `json:"username"`
	LockedUntil time.Time `json:"locked_until"`
}

func NewAccountLockedEvent(username string, lockedUntil time.Time) *AccountLockedEvent {
	return &AccountLockedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeAccountLocked,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"username":     username,
				"locked_until": lockedUntil,
			},
		},
		Username:    username,
		LockedUntil: lockedUntil,
	}
}
