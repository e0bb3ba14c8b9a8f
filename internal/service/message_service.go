package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"ouvidoria-ativa/internal/cache"
	"ouvidoria-ativa/internal/config"
	"ouvidoria-ativa/internal/domain"
	"ouvidoria-ativa/internal/repository"
)

type MessageService interface {
	List(ctx context.Context, manifestationID uuid.UUID, viewerRole domain.Role) ([]domain.Message, error)
	SendStaff(ctx context.Context, manifestationID uuid.UUID, input domain.SendStaffMessageInput, actor *domain.Actor) (*domain.Message, error)
	SendCitizen(ctx context.Context, protocolCode string, input domain.SendCitizenMessageInput) (*domain.Message, error)
}

type messageService struct {
	messageRepo       repository.MessageRepository
	manifestationRepo repository.ManifestationRepository
	cache             *cache.Cache
	cfg               *config.Config
}

func NewMessageService(
	messageRepo repository.MessageRepository,
	manifestationRepo repository.ManifestationRepository,
	cache *cache.Cache,
	cfg *config.Config,
) MessageService {
	return &messageService{
		messageRepo:       messageRepo,
		manifestationRepo: manifestationRepo,
		cache:             cache,
		cfg:               cfg,
	}
}

// List returns the thread in creation order. The full thread is cached once
// per manifestation and internal notes are stripped per viewer, so the
// citizen view can never leak a staff note through a shared cache entry.
func (s *messageService) List(ctx context.Context, manifestationID uuid.UUID, viewerRole domain.Role) ([]domain.Message, error) {
	messages, err := cache.GetOrSet(ctx, s.cache, cache.MessagesKey(manifestationID), s.cfg.MessagesCacheTTL,
		func(ctx context.Context) ([]domain.Message, error) {
			return s.messageRepo.ListByManifestation(ctx, manifestationID)
		})
	if err != nil {
		return nil, err
	}

	if viewerRole != domain.RoleCitizen {
		return messages, nil
	}

	visible := make([]domain.Message, 0, len(messages))
	for _, m := range messages {
		if m.Type == domain.MessageInternalNote {
			continue
		}
		visible = append(visible, m)
	}
	return visible, nil
}

func (s *messageService) SendStaff(ctx context.Context, manifestationID uuid.UUID, input domain.SendStaffMessageInput, actor *domain.Actor) (*domain.Message, error) {
	if actor == nil {
		return nil, domain.ErrAuthRequired
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if input.Type != domain.MessageOfficialResponse && input.Type != domain.MessageInternalNote {
		return nil, fmt.Errorf("%w: staff messages must be an official response or an internal note", domain.ErrValidation)
	}

	m, err := s.lookupOpen(ctx, manifestationID)
	if err != nil {
		return nil, err
	}

	content := strings.TrimSpace(input.Content)
	authorID := actor.ID
	message := &domain.Message{
		ID:              uuid.New(),
		ManifestationID: m.ID,
		AuthorID:        &authorID,
		AuthorName:      actor.Name("Ombudsman"),
		Type:            input.Type,
		Content:         content,
	}

	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}

	// Denormalized mirrors on the manifestation; the thread stays the source
	// of truth, last write wins.
	switch input.Type {
	case domain.MessageOfficialResponse:
		if err := s.manifestationRepo.MarkResponded(ctx, m.ID, content); err != nil {
			return nil, err
		}
	case domain.MessageInternalNote:
		if err := s.manifestationRepo.SetInternalNotes(ctx, m.ID, content); err != nil {
			return nil, err
		}
	}

	s.cache.Invalidate(ctx, cache.MessagesKey(m.ID), cache.ManifestationKey(m.Protocol))

	return message, nil
}

func (s *messageService) SendCitizen(ctx context.Context, protocolCode string, input domain.SendCitizenMessageInput) (*domain.Message, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	m, err := s.manifestationRepo.GetByProtocol(ctx, protocolCode)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	if m.Status.IsTerminal() {
		return nil, domain.ErrLocked
	}

	message := &domain.Message{
		ID:              uuid.New(),
		ManifestationID: m.ID,
		AuthorName:      m.CitizenLabel(input.AuthorName),
		Type:            domain.MessageCitizen,
		Content:         strings.TrimSpace(input.Content),
	}

	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, cache.MessagesKey(m.ID))

	return message, nil
}

func (s *messageService) lookupOpen(ctx context.Context, manifestationID uuid.UUID) (*domain.Manifestation, error) {
	m, err := s.manifestationRepo.GetByID(ctx, manifestationID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	if m.Status.IsTerminal() {
		return nil, domain.ErrLocked
	}
	return m, nil
}
