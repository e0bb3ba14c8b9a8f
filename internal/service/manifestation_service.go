package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"ouvidoria-ativa/internal/cache"
	"ouvidoria-ativa/internal/config"
	"ouvidoria-ativa/internal/domain"
	"ouvidoria-ativa/internal/metrics"
	"ouvidoria-ativa/internal/protocol"
	"ouvidoria-ativa/internal/repository"
)

// Protocols carry only four random digits per year, so collisions are
// expected under load. The store's unique constraint catches them and the
// create path regenerates.
const maxProtocolAttempts = 5

const minProtocolQueryLen = 8

type ManifestationService interface {
	Create(ctx context.Context, actor *domain.Actor, input domain.CreateManifestationInput) (*domain.Manifestation, error)
	GetByProtocol(ctx context.Context, protocolCode string) (*domain.Manifestation, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Manifestation, error)
	List(ctx context.Context, filter domain.ManifestationFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.ManifestationListItem], error)
	Departments(ctx context.Context) ([]string, error)
	ChangeStatus(ctx context.Context, id uuid.UUID, newStatus domain.Status, actor *domain.Actor) (*domain.Manifestation, error)
	RecordResponse(ctx context.Context, id uuid.UUID, input domain.RecordResponseInput, actor *domain.Actor) (*domain.Manifestation, error)
	FinalizeByCitizen(ctx context.Context, protocolCode string) error
	FinalizeByStaff(ctx context.Context, id uuid.UUID, actor *domain.Actor) error
	RecordSatisfaction(ctx context.Context, protocolCode string, rating domain.Satisfaction) error
}

type manifestationService struct {
	manifestationRepo repository.ManifestationRepository
	messageRepo       repository.MessageRepository
	generator         *protocol.Generator
	cache             *cache.Cache
	cfg               *config.Config
}

func NewManifestationService(
	manifestationRepo repository.ManifestationRepository,
	messageRepo repository.MessageRepository,
	generator *protocol.Generator,
	cache *cache.Cache,
	cfg *config.Config,
) ManifestationService {
	return &manifestationService{
		manifestationRepo: manifestationRepo,
		messageRepo:       messageRepo,
		generator:         generator,
		cache:             cache,
		cfg:               cfg,
	}
}

func (s *manifestationService) Create(ctx context.Context, actor *domain.Actor, input domain.CreateManifestationInput) (*domain.Manifestation, error) {
	if actor == nil {
		return nil, domain.ErrAuthRequired
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if !input.Category.Valid() {
		return nil, fmt.Errorf("%w: unknown category %q", domain.ErrValidation, input.Category)
	}

	m := &domain.Manifestation{
		ID:         uuid.New(),
		Category:   input.Category,
		Department: strings.TrimSpace(input.Department),
		Address:    strings.TrimSpace(input.Address),
		Narrative:  strings.TrimSpace(input.Narrative),
		Status:     domain.StatusPending,
	}
	if actor.ID != uuid.Nil {
		id := actor.ID
		m.CreatedByID = &id
	}

	// Anonymous filings store no personal fields at all.
	if ident := input.Identification; ident != nil && strings.TrimSpace(ident.Name) != "" {
		name := strings.TrimSpace(ident.Name)
		m.CitizenName = &name
		if contact := strings.TrimSpace(ident.Contact); contact != "" {
			m.CitizenContact = &contact
		}
	}

	var err error
	for attempt := 0; attempt < maxProtocolAttempts; attempt++ {
		m.Protocol = s.generator.Generate()
		err = s.manifestationRepo.Create(ctx, m)
		if !errors.Is(err, domain.ErrProtocolTaken) {
			break
		}
	}
	if err != nil {
		return nil, err
	}

	metrics.ManifestationsCreated.WithLabelValues(string(m.Category)).Inc()

	s.cache.InvalidatePattern(ctx, cache.ListPattern)
	s.cache.InvalidatePattern(ctx, cache.DashboardPattern)

	return m, nil
}

func (s *manifestationService) GetByProtocol(ctx context.Context, protocolCode string) (*domain.Manifestation, error) {
	protocolCode = strings.ToUpper(strings.TrimSpace(protocolCode))
	if len(protocolCode) < minProtocolQueryLen {
		return nil, fmt.Errorf("%w: malformed protocol", domain.ErrValidation)
	}

	return cache.GetOrSet(ctx, s.cache, cache.ManifestationKey(protocolCode), s.cfg.RecordCacheTTL,
		func(ctx context.Context) (*domain.Manifestation, error) {
			m, err := s.manifestationRepo.GetByProtocol(ctx, protocolCode)
			if err != nil {
				return nil, err
			}
			if m == nil {
				return nil, domain.ErrNotFound
			}
			return m, nil
		})
}

func (s *manifestationService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Manifestation, error) {
	m, err := s.manifestationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	return m, nil
}

func (s *manifestationService) List(ctx context.Context, filter domain.ManifestationFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.ManifestationListItem], error) {
	params.Validate()

	return cache.GetOrSet(ctx, s.cache, cache.ListKey(filter, params.Page, params.PageSize), s.cfg.ListCacheTTL,
		func(ctx context.Context) (domain.PaginatedResponse[domain.ManifestationListItem], error) {
			items, total, err := s.manifestationRepo.List(ctx, filter, params)
			if err != nil {
				return domain.PaginatedResponse[domain.ManifestationListItem]{}, err
			}
			return domain.NewPaginatedResponse(items, params.Page, params.PageSize, total), nil
		})
}

func (s *manifestationService) Departments(ctx context.Context) ([]string, error) {
	return s.manifestationRepo.Departments(ctx)
}

func (s *manifestationService) ChangeStatus(ctx context.Context, id uuid.UUID, newStatus domain.Status, actor *domain.Actor) (*domain.Manifestation, error) {
	if actor == nil {
		return nil, domain.ErrAuthRequired
	}
	if !newStatus.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, newStatus)
	}

	m, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !m.Status.CanTransitionTo(newStatus) {
		return nil, fmt.Errorf("%w: cannot move %s to %s", domain.ErrInvalidState, m.Status, newStatus)
	}

	previous := m.Status
	if err := s.manifestationRepo.UpdateStatus(ctx, id, newStatus); err != nil {
		return nil, err
	}
	m.Status = newStatus

	s.appendSystemMessage(ctx, id, fmt.Sprintf("Status changed from %s to %s.", previous, newStatus))
	s.invalidateManifestation(ctx, m)

	return m, nil
}

func (s *manifestationService) RecordResponse(ctx context.Context, id uuid.UUID, input domain.RecordResponseInput, actor *domain.Actor) (*domain.Manifestation, error) {
	if actor == nil {
		return nil, domain.ErrAuthRequired
	}
	if !input.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, input.Status)
	}

	response := strings.TrimSpace(input.Response)
	notes := strings.TrimSpace(input.Notes)

	if input.Status == domain.StatusCompleted && response == "" {
		return nil, fmt.Errorf("%w: cannot complete without a non-empty official response", domain.ErrInvalidState)
	}

	m, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !m.Status.CanTransitionTo(input.Status) {
		return nil, fmt.Errorf("%w: cannot move %s to %s", domain.ErrInvalidState, m.Status, input.Status)
	}

	var responsePtr, notesPtr *string
	if response != "" {
		responsePtr = &response
	}
	if notes != "" {
		notesPtr = &notes
	}

	if err := s.manifestationRepo.UpdateResponse(ctx, id, responsePtr, notesPtr, input.Status); err != nil {
		return nil, err
	}

	// The thread is the source of truth for the mirrored fields; entries are
	// only appended while the thread is still open.
	if !m.Status.IsTerminal() {
		if response != "" {
			s.appendMessage(ctx, id, domain.MessageOfficialResponse, response, actor, false)
		}
		if notes != "" {
			s.appendMessage(ctx, id, domain.MessageInternalNote, notes, actor, false)
		}
	}

	m.Status = input.Status
	if responsePtr != nil {
		m.OfficialResponse = responsePtr
	}
	if notesPtr != nil {
		m.InternalNotes = notesPtr
	}

	s.invalidateManifestation(ctx, m)

	return m, nil
}

func (s *manifestationService) FinalizeByCitizen(ctx context.Context, protocolCode string) error {
	m, err := s.manifestationRepo.GetByProtocol(ctx, protocolCode)
	if err != nil {
		return err
	}
	if m == nil {
		return domain.ErrNotFound
	}
	if m.Status.IsTerminal() {
		return domain.ErrAlreadyFinalized
	}

	s.appendSystemMessage(ctx, m.ID, fmt.Sprintf("Service closed by citizen %s.", m.CitizenLabel("")))

	if err := s.manifestationRepo.UpdateStatus(ctx, m.ID, domain.StatusCompleted); err != nil {
		return err
	}
	m.Status = domain.StatusCompleted

	s.invalidateManifestation(ctx, m)
	return nil
}

func (s *manifestationService) FinalizeByStaff(ctx context.Context, id uuid.UUID, actor *domain.Actor) error {
	if actor == nil {
		return domain.ErrAuthRequired
	}

	m, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if m.Status.IsTerminal() {
		return domain.ErrAlreadyFinalized
	}

	s.appendMessage(ctx, id, domain.MessageOfficialResponse, "This service has been closed.", actor, true)

	if err := s.manifestationRepo.UpdateStatus(ctx, id, domain.StatusCompleted); err != nil {
		return err
	}
	m.Status = domain.StatusCompleted

	s.invalidateManifestation(ctx, m)
	return nil
}

func (s *manifestationService) RecordSatisfaction(ctx context.Context, protocolCode string, rating domain.Satisfaction) error {
	if !rating.Valid() {
		return fmt.Errorf("%w: unknown rating %q", domain.ErrValidation, rating)
	}

	m, err := s.manifestationRepo.GetByProtocol(ctx, protocolCode)
	if err != nil {
		return err
	}
	if m == nil {
		return domain.ErrNotFound
	}
	if m.Status != domain.StatusCompleted {
		return fmt.Errorf("%w: satisfaction can only be rated once completed", domain.ErrInvalidState)
	}
	if m.Satisfaction != nil {
		return fmt.Errorf("%w: satisfaction already recorded", domain.ErrInvalidState)
	}

	if err := s.manifestationRepo.SetSatisfaction(ctx, m.ID, rating); err != nil {
		return err
	}

	// Satisfaction feeds the satisfaction-rate aggregate, so the dashboard
	// pattern goes too.
	s.cache.Invalidate(ctx, cache.ManifestationKey(m.Protocol))
	s.cache.InvalidatePattern(ctx, cache.DashboardPattern)
	return nil
}

// appendSystemMessage records a transition in the thread, visible to both
// roles and pre-marked read.
func (s *manifestationService) appendSystemMessage(ctx context.Context, manifestationID uuid.UUID, content string) {
	s.appendMessage(ctx, manifestationID, domain.MessageOfficialResponse, content, nil, true)
}

func (s *manifestationService) appendMessage(ctx context.Context, manifestationID uuid.UUID, msgType domain.MessageType, content string, actor *domain.Actor, read bool) {
	message := &domain.Message{
		ID:              uuid.New(),
		ManifestationID: manifestationID,
		AuthorName:      "System",
		Type:            msgType,
		Content:         content,
		Read:            read,
	}
	if actor != nil {
		id := actor.ID
		message.AuthorID = &id
		message.AuthorName = actor.Name("Ombudsman")
	}

	// A failed thread append must not roll back the committed status write.
	if err := s.messageRepo.Create(ctx, message); err != nil {
		log.Printf("[manifestation] append thread entry for %s: %v", manifestationID, err)
	}
}

// invalidateManifestation evicts every cached view a status or response
// mutation can touch: the exact record key, the per-thread key, and the
// filter-combination and time-bucketed patterns.
func (s *manifestationService) invalidateManifestation(ctx context.Context, m *domain.Manifestation) {
	s.cache.Invalidate(ctx, cache.ManifestationKey(m.Protocol), cache.MessagesKey(m.ID))
	s.cache.InvalidatePattern(ctx, cache.ListPattern)
	s.cache.InvalidatePattern(ctx, cache.DashboardPattern)
}
