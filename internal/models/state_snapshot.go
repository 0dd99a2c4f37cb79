package models

import "time"

// StateSnapshot stores one store's serialized collection under its namespaced key.
type StateSnapshot struct {
	Key       string    `gorm:"primaryKey;size:100" json:"key"`
	Payload   []byte    `gorm:"not null" json:"payload"`
	UpdatedAt time.Time `json:"updated_at"`
}
