package models

import "time"

type Visitor struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Authorized bool      `json:"authorized"`
	EnteredAt  time.Time `json:"entered_at"`
}
