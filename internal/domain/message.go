package domain

import (
	"time"

	"github.com/google/uuid"
)

type MessageType string

const (
	MessageOfficialResponse MessageType = "OFFICIAL_RESPONSE"
	MessageInternalNote     MessageType = "INTERNAL_NOTE"
	MessageCitizen          MessageType = "CITIZEN"
)

func (t MessageType) Valid() bool {
	switch t {
	case MessageOfficialResponse, MessageInternalNote, MessageCitizen:
		return true
	}
	return false
}

type Role string

const (
	RoleCitizen Role = "CITIZEN"
	RoleStaff   Role = "STAFF"
)

type Message struct {
	ID              uuid.UUID   `json:"id" db:"id"`
	ManifestationID uuid.UUID   `json:"manifestation_id" db:"manifestation_id"`
	AuthorID        *uuid.UUID  `json:"author_id,omitempty" db:"author_id"`
	AuthorName      string      `json:"author_name" db:"author_name"`
	Type            MessageType `json:"type" db:"type"`
	Content         string      `json:"content" db:"content"`
	Read            bool        `json:"read" db:"read"`
	CreatedAt       time.Time   `json:"created_at" db:"created_at"`
}

type SendStaffMessageInput struct {
	Content string      `json:"content" validate:"required,min=1,max=5000"`
	Type    MessageType `json:"type" validate:"required"`
}

type SendCitizenMessageInput struct {
	Content    string `json:"content" validate:"required,min=1,max=5000"`
	AuthorName string `json:"author_name" validate:"omitempty,max=120"`
}
