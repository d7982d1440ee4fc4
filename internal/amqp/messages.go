package amqp

import (
	"encoding/json"
	"time"
)

// Event types published after a successful write.
const (
	EventTransactionCreated = "transaction.created"
	EventTransactionUpdated = "transaction.updated"
	EventTransactionDeleted = "transaction.deleted"
	EventBudgetUpserted     = "budget.upserted"
)

// ChangeEvent is a lightweight notification that a record changed. Consumers
// reload whatever they need from the store.
type ChangeEvent struct {
	Type      string    `json:"type"`
	ID        string    `json:"id"`
	Category  string    `json:"category,omitempty"`
	Month     string    `json:"month,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func NewChangeEvent(typ, id, category, month string) *ChangeEvent {
	return &ChangeEvent{
		Type:      typ,
		ID:        id,
		Category:  category,
		Month:     month,
		Timestamp: time.Now(),
	}
}

func (e *ChangeEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func ChangeEventFromJSON(data []byte) (*ChangeEvent, error) {
	var e ChangeEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}
