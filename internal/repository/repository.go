package repository

import (
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	Manifestation ManifestationRepository
	Message       MessageRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		Manifestation: NewManifestationRepository(db),
		Message:       NewMessageRepository(db),
	}
}
