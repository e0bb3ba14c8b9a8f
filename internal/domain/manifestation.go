package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusInReview  Status = "IN_REVIEW"
	StatusCompleted Status = "COMPLETED"
	StatusArchived  Status = "ARCHIVED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInReview, StatusCompleted, StatusArchived:
		return true
	}
	return false
}

// Terminal statuses lock the message thread and cannot be left for a
// non-terminal status. There is no reopen path.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusArchived
}

func (s Status) CanTransitionTo(next Status) bool {
	if !next.Valid() {
		return false
	}
	if s.IsTerminal() {
		return next.IsTerminal()
	}
	return true
}

type Category string

const (
	CategoryPraise      Category = "PRAISE"
	CategorySuggestion  Category = "SUGGESTION"
	CategoryComplaint   Category = "COMPLAINT"
	CategoryReport      Category = "REPORT"
	CategoryInformation Category = "INFORMATION_REQUEST"
	CategoryOther       Category = "OTHER"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryPraise, CategorySuggestion, CategoryComplaint,
		CategoryReport, CategoryInformation, CategoryOther:
		return true
	}
	return false
}

type Satisfaction string

const (
	SatisfactionHappy   Satisfaction = "HAPPY"
	SatisfactionNeutral Satisfaction = "NEUTRAL"
	SatisfactionUpset   Satisfaction = "UPSET"
	SatisfactionAngry   Satisfaction = "ANGRY"
)

func (s Satisfaction) Valid() bool {
	switch s {
	case SatisfactionHappy, SatisfactionNeutral, SatisfactionUpset, SatisfactionAngry:
		return true
	}
	return false
}

// Ordinal score used by the satisfaction-index aggregate.
func (s Satisfaction) Score() int {
	switch s {
	case SatisfactionHappy:
		return 5
	case SatisfactionNeutral:
		return 3
	case SatisfactionUpset:
		return 2
	case SatisfactionAngry:
		return 1
	}
	return 0
}

type Manifestation struct {
	ID               uuid.UUID     `json:"id" db:"id"`
	Protocol         string        `json:"protocol" db:"protocol"`
	Category         Category      `json:"category" db:"category"`
	Department       string        `json:"department" db:"department"`
	Address          string        `json:"address" db:"address"`
	Narrative        string        `json:"narrative" db:"narrative"`
	CitizenName      *string       `json:"citizen_name,omitempty" db:"citizen_name"`
	CitizenContact   *string       `json:"citizen_contact,omitempty" db:"citizen_contact"`
	Status           Status        `json:"status" db:"status"`
	OfficialResponse *string       `json:"official_response,omitempty" db:"official_response"`
	InternalNotes    *string       `json:"internal_notes,omitempty" db:"internal_notes"`
	Responded        bool          `json:"responded" db:"responded"`
	RespondedAt      *time.Time    `json:"responded_at,omitempty" db:"responded_at"`
	Satisfaction     *Satisfaction `json:"satisfaction,omitempty" db:"satisfaction"`
	CreatedByID      *uuid.UUID    `json:"-" db:"created_by_id"`
	CreatedAt        time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at" db:"updated_at"`
}

func (m *Manifestation) IsAnonymous() bool {
	return m.CitizenName == nil || strings.TrimSpace(*m.CitizenName) == ""
}

// CitizenLabel resolves the display name used on citizen-authored thread
// entries: stored identification name, then the given fallback, then "Citizen".
func (m *Manifestation) CitizenLabel(fallback string) string {
	if m.CitizenName != nil {
		if name := strings.TrimSpace(*m.CitizenName); name != "" {
			return name
		}
	}
	if fallback = strings.TrimSpace(fallback); fallback != "" {
		return fallback
	}
	return "Citizen"
}

type Identification struct {
	Name    string `json:"name" validate:"omitempty,min=2,max=120"`
	Contact string `json:"contact" validate:"omitempty,max=160"`
}

type CreateManifestationInput struct {
	Category       Category        `json:"category" validate:"required"`
	Department     string          `json:"department" validate:"required,min=2,max=120"`
	Address        string          `json:"address" validate:"max=300"`
	Narrative      string          `json:"narrative" validate:"required,min=10,max=5000"`
	Identification *Identification `json:"identification,omitempty"`
}

type UpdateStatusInput struct {
	Status Status `json:"status" validate:"required"`
}

type RecordResponseInput struct {
	Response string `json:"response" validate:"max=5000"`
	Notes    string `json:"notes" validate:"max=5000"`
	Status   Status `json:"status" validate:"required"`
}

type RecordSatisfactionInput struct {
	Rating Satisfaction `json:"rating" validate:"required"`
}

// ManifestationListItem is the row shape of the staff triage list.
type ManifestationListItem struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Protocol    string    `json:"protocol" db:"protocol"`
	Category    Category  `json:"category" db:"category"`
	Department  string    `json:"department" db:"department"`
	CitizenName *string   `json:"citizen_name" db:"citizen_name"`
	Status      Status    `json:"status" db:"status"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

const (
	IdentityAnonymous  = "ANONYMOUS"
	IdentityIdentified = "IDENTIFIED"
)

type ManifestationFilter struct {
	Search     string `query:"search"`
	Category   string `query:"category"`
	Department string `query:"department"`
	Identity   string `query:"identity"`
	Period     Period `query:"period"`
}
