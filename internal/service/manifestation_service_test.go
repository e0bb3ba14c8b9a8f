package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"ouvidoria-ativa/internal/config"
	"ouvidoria-ativa/internal/domain"
	"ouvidoria-ativa/internal/mocks"
	"ouvidoria-ativa/internal/protocol"
	"ouvidoria-ativa/internal/service"
)

func newManifestationService(manifestationRepo *mocks.ManifestationRepository, messageRepo *mocks.MessageRepository) service.ManifestationService {
	return service.NewManifestationService(manifestationRepo, messageRepo, protocol.NewGenerator("OUV"), nil, &config.Config{})
}

func staffActor(name string) *domain.Actor {
	return &domain.Actor{ID: uuid.New(), DisplayName: name, Role: domain.RoleStaff}
}

func citizenActor() *domain.Actor {
	return &domain.Actor{ID: uuid.New(), Role: domain.RoleCitizen}
}

func TestManifestationService_Create(t *testing.T) {
	ctx := context.Background()
	input := domain.CreateManifestationInput{
		Category:   domain.CategoryComplaint,
		Department: "Public Works",
		Narrative:  "The streetlight on Main St has been out for weeks.",
	}

	t.Run("Success", func(t *testing.T) {
		manifestationRepo := new(mocks.ManifestationRepository)
		svc := newManifestationService(manifestationRepo, new(mocks.MessageRepository))

		manifestationRepo.On("Create", ctx, mock.MatchedBy(func(m *domain.Manifestation) bool {
			return m.Status == domain.StatusPending && protocol.Pattern.MatchString(m.Protocol)
		})).Return(nil).Once()

		m, err := svc.Create(ctx, citizenActor(), input)

		assert.NoError(t, err)
		assert.Equal(t, domain.StatusPending, m.Status)
		assert.Regexp(t, protocol.Pattern, m.Protocol)
		assert.Nil(t, m.CitizenName)
		manifestationRepo.AssertExpectations(t)
	})

	t.Run("Identified Citizen", func(t *testing.T) {
		manifestationRepo := new(mocks.ManifestationRepository)
		svc := newManifestationService(manifestationRepo, new(mocks.MessageRepository))

		manifestationRepo.On("Create", ctx, mock.Anything).Return(nil).Once()

		identified := input
		identified.Identification = &domain.Identification{Name: "Maria Souza", Contact: "maria@example.com"}

		m, err := svc.Create(ctx, citizenActor(), identified)

		assert.NoError(t, err)
		assert.NotNil(t, m.CitizenName)
		assert.Equal(t, "Maria Souza", *m.CitizenName)
	})

	t.Run("Requires Actor", func(t *testing.T) {
		svc := newManifestationService(new(mocks.ManifestationRepository), new(mocks.MessageRepository))

		_, err := svc.Create(ctx, nil, input)

		assert.ErrorIs(t, err, domain.ErrAuthRequired)
	})

	t.Run("Unknown Category", func(t *testing.T) {
		svc := newManifestationService(new(mocks.ManifestationRepository), new(mocks.MessageRepository))

		bad := input
		bad.Category = "RANT"

		_, err := svc.Create(ctx, citizenActor(), bad)

		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("Missing Narrative", func(t *testing.T) {
		svc := newManifestationService(new(mocks.ManifestationRepository), new(mocks.MessageRepository))

		bad := input
		bad.Narrative = ""

		_, err := svc.Create(ctx, citizenActor(), bad)

		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("Retries On Protocol Collision", func(t *testing.T) {
		manifestationRepo := new(mocks.ManifestationRepository)
		svc := newManifestationService(manifestationRepo, new(mocks.MessageRepository))

		manifestationRepo.On("Create", ctx, mock.Anything).Return(domain.ErrProtocolTaken).Twice()
		manifestationRepo.On("Create", ctx, mock.Anything).Return(nil).Once()

		m, err := svc.Create(ctx, citizenActor(), input)

		assert.NoError(t, err)
		assert.Regexp(t, protocol.Pattern, m.Protocol)
		manifestationRepo.AssertExpectations(t)
	})

	t.Run("Gives Up After Exhausting Retries", func(t *testing.T) {
		manifestationRepo := new(mocks.ManifestationRepository)
		svc := newManifestationService(manifestationRepo, new(mocks.MessageRepository))

		manifestationRepo.On("Create", ctx, mock.Anything).Return(domain.ErrProtocolTaken)

		_, err := svc.Create(ctx, citizenActor(), input)

		assert.ErrorIs(t, err, domain.ErrProtocolTaken)
	})
}

func TestManifestationService_GetByProtocol(t *testing.T) {
	ctx := context.Background()

	t.Run("Rejects Short Protocols", func(t *testing.T) {
		manifestationRepo := new(mocks.ManifestationRepository)
		svc := newManifestationService(manifestationRepo, new(mocks.MessageRepository))

		_, err := svc.GetByProtocol(ctx, "OUV-1")

		assert.ErrorIs(t, err, domain.ErrValidation)
		manifestationRepo.AssertNotCalled(t, "GetByProtocol", mock.Anything, mock.Anything)
	})

	t.Run("Normalizes Before Lookup", func(t *testing.T) {
		manifestationRepo := new(mocks.ManifestationRepository)
		svc := newManifestationService(manifestationRepo, new(mocks.MessageRepository))

		manifestationRepo.On("GetByProtocol", ctx, "OUV-2026-0001").Return(&domain.Manifestation{
			ID: uuid.New(), Protocol: "OUV-2026-0001", Status: domain.StatusPending,
		}, nil).Once()

		m, err := svc.GetByProtocol(ctx, "  ouv-2026-0001 ")

		assert.NoError(t, err)
		assert.Equal(t, "OUV-2026-0001", m.Protocol)
		manifestationRepo.AssertExpectations(t)
	})

	t.Run("Unknown Protocol", func(t *testing.T) {
		manifestationRepo := new(mocks.ManifestationRepository)
		svc := newManifestationService(manifestationRepo, new(mocks.MessageRepository))

		manifestationRepo.On("GetByProtocol", ctx, "OUV-2026-9999").Return(nil, nil).Once()

		_, err := svc.GetByProtocol(ctx, "OUV-2026-9999")

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestManifestationService_ChangeStatus(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("Success Appends Transition Message", func(t *testing.T) {
		manifestationRepo := new(mocks.ManifestationRepository)
		messageRepo := new(mocks.MessageRepository)
		svc := newManifestationService(manifestationRepo, messageRepo)

		manifestationRepo.On("GetByID", ctx, id).Return(&domain.Manifestation{
			ID: id, Protocol: "OUV-2026-0001", Status: domain.StatusPending,
		}, nil).Once()
		manifestationRepo.On("UpdateStatus", ctx, id, domain.StatusInReview).Return(nil).Once()
		messageRepo.On("Create", ctx, mock.MatchedBy(func(m *domain.Message) bool {
			return m.AuthorName == "System" && m.Content == "Status changed from PENDING to IN_REVIEW." && m.Read
		})).Return(nil).Once()

		m, err := svc.ChangeStatus(ctx, id, domain.StatusInReview, staffActor("Ana"))

		assert.NoError(t, err)
		assert.Equal(t, domain.StatusInReview, m.Status)
		manifestationRepo.AssertExpectations(t)
		messageRepo.AssertExpectations(t)
	})

	t.Run("Not Found", func(t *testing.T) {
		manifestationRepo := new(mocks.ManifestationRepository)
		svc := newManifestationService(manifestationRepo, new(mocks.MessageRepository))

		manifestationRepo.On("GetByID", ctx, id).Return(nil, nil).Once()

		_, err := svc.ChangeStatus(ctx, id, domain.StatusInReview, staffActor("Ana"))

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("No Reopen From Terminal", func(t *testing.T) {
		manifestationRepo := new(mocks.ManifestationRepository)
		svc := newManifestationService(manifestationRepo, new(mocks.MessageRepository))

		manifestationRepo.On("GetByID", ctx, id).Return(&domain.Manifestation{
			ID: id, Status: domain.StatusCompleted,
		}, nil).Once()

		_, err := svc.ChangeStatus(ctx, id, domain.StatusInReview, staffActor("Ana"))

		assert.ErrorIs(t, err, domain.ErrInvalidState)
		manifestationRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Rearchiving Is Idempotent", func(t *testing.T) {
		manifestationRepo := new(mocks.ManifestationRepository)
		messageRepo := new(mocks.MessageRepository)
		svc := newManifestationService(manifestationRepo, messageRepo)

		manifestationRepo.On("GetByID", ctx, id).Return(&domain.Manifestation{
			ID: id, Status: domain.StatusArchived,
		}, nil).Once()
		manifestationRepo.On("UpdateStatus", ctx, id, domain.StatusArchived).Return(nil).Once()
		messageRepo.On("Create", ctx, mock.Anything).Return(nil).Once()

		m, err := svc.ChangeStatus(ctx, id, domain.StatusArchived, staffActor("Ana"))

		assert.NoError(t, err)
		assert.Equal(t, domain.StatusArchived, m.Status)
	})
}

func TestManifestationService_RecordResponse(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	actor := staffActor("Ana")

	t.Run("Cannot Complete Without Response", func(t *testing.T) {
		manifestationRepo := new(mocks.ManifestationRepository)
		svc := newManifestationService(manifestationRepo, new(mocks.MessageRepository))

		_, err := svc.RecordResponse(ctx, id, domain.RecordResponseInput{
			Response: "   ",
			Status:   domain.StatusCompleted,
		}, actor)

		assert.ErrorIs(t, err, domain.ErrInvalidState)
		manifestationRepo.AssertNotCalled(t, "UpdateResponse", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Completes With Response", func(t *testing.T) {
		manifestationRepo := new(mocks.ManifestationRepository)
		messageRepo := new(mocks.MessageRepository)
		svc := newManifestationService(manifestationRepo, messageRepo)

		manifestationRepo.On("GetByID", ctx, id).Return(&domain.Manifestation{
			ID: id, Protocol: "OUV-2026-0002", Status: domain.StatusInReview,
		}, nil).Once()
		manifestationRepo.On("UpdateResponse", ctx, id, mock.MatchedBy(func(r *string) bool {
			return r != nil && *r == "Fixed."
		}), (*string)(nil), domain.StatusCompleted).Return(nil).Once()
		messageRepo.On("Create", ctx, mock.MatchedBy(func(m *domain.Message) bool {
			return m.Type == domain.MessageOfficialResponse && m.Content == "Fixed."
		})).Return(nil).Once()

		m, err := svc.RecordResponse(ctx, id, domain.RecordResponseInput{
			Response: "Fixed.",
			Status:   domain.StatusCompleted,
		}, actor)

		assert.NoError(t, err)
		assert.Equal(t, domain.StatusCompleted, m.Status)
		assert.Equal(t, "Fixed.", *m.OfficialResponse)
		manifestationRepo.AssertExpectations(t)
		messageRepo.AssertExpectations(t)
	})

	t.Run("Notes Spawn Internal Note Entry", func(t *testing.T) {
		manifestationRepo := new(mocks.ManifestationRepository)
		messageRepo := new(mocks.MessageRepository)
		svc := newManifestationService(manifestationRepo, messageRepo)

		manifestationRepo.On("GetByID", ctx, id).Return(&domain.Manifestation{
			ID: id, Status: domain.StatusPending,
		}, nil).Once()
		manifestationRepo.On("UpdateResponse", ctx, id, (*string)(nil), mock.MatchedBy(func(n *string) bool {
			return n != nil && *n == "Forwarded to maintenance."
		}), domain.StatusInReview).Return(nil).Once()
		messageRepo.On("Create", ctx, mock.MatchedBy(func(m *domain.Message) bool {
			return m.Type == domain.MessageInternalNote
		})).Return(nil).Once()

		_, err := svc.RecordResponse(ctx, id, domain.RecordResponseInput{
			Notes:  "Forwarded to maintenance.",
			Status: domain.StatusInReview,
		}, actor)

		assert.NoError(t, err)
		messageRepo.AssertExpectations(t)
	})

	t.Run("Requires Actor", func(t *testing.T) {
		svc := newManifestationService(new(mocks.ManifestationRepository), new(mocks.MessageRepository))

		_, err := svc.RecordResponse(ctx, id, domain.RecordResponseInput{Status: domain.StatusInReview}, nil)

		assert.ErrorIs(t, err, domain.ErrAuthRequired)
	})
}

func TestManifestationService_Finalize(t *testing.T) {
	ctx := context.Background()

	t.Run("By Citizen", func(t *testing.T) {
		manifestationRepo := new(mocks.ManifestationRepository)
		messageRepo := new(mocks.MessageRepository)
		svc := newManifestationService(manifestationRepo, messageRepo)

		id := uuid.New()
		name := "Maria Souza"
		manifestationRepo.On("GetByProtocol", ctx, "OUV-2026-0003").Return(&domain.Manifestation{
			ID: id, Protocol: "OUV-2026-0003", Status: domain.StatusInReview, CitizenName: &name,
		}, nil).Once()
		messageRepo.On("Create", ctx, mock.MatchedBy(func(m *domain.Message) bool {
			return m.Content == "Service closed by citizen Maria Souza." && m.AuthorName == "System"
		})).Return(nil).Once()
		manifestationRepo.On("UpdateStatus", ctx, id, domain.StatusCompleted).Return(nil).Once()

		err := svc.FinalizeByCitizen(ctx, "OUV-2026-0003")

		assert.NoError(t, err)
		manifestationRepo.AssertExpectations(t)
		messageRepo.AssertExpectations(t)
	})

	t.Run("By Citizen Already Finalized", func(t *testing.T) {
		manifestationRepo := new(mocks.ManifestationRepository)
		svc := newManifestationService(manifestationRepo, new(mocks.MessageRepository))

		manifestationRepo.On("GetByProtocol", ctx, "OUV-2026-0004").Return(&domain.Manifestation{
			ID: uuid.New(), Status: domain.StatusArchived,
		}, nil).Once()

		err := svc.FinalizeByCitizen(ctx, "OUV-2026-0004")

		assert.ErrorIs(t, err, domain.ErrAlreadyFinalized)
	})

	t.Run("By Staff", func(t *testing.T) {
		manifestationRepo := new(mocks.ManifestationRepository)
		messageRepo := new(mocks.MessageRepository)
		svc := newManifestationService(manifestationRepo, messageRepo)

		id := uuid.New()
		actor := staffActor("Ana")
		manifestationRepo.On("GetByID", ctx, id).Return(&domain.Manifestation{
			ID: id, Status: domain.StatusPending,
		}, nil).Once()
		messageRepo.On("Create", ctx, mock.MatchedBy(func(m *domain.Message) bool {
			return m.AuthorName == "Ana" && m.Content == "This service has been closed."
		})).Return(nil).Once()
		manifestationRepo.On("UpdateStatus", ctx, id, domain.StatusCompleted).Return(nil).Once()

		err := svc.FinalizeByStaff(ctx, id, actor)

		assert.NoError(t, err)
		messageRepo.AssertExpectations(t)
	})
}

func TestManifestationService_RecordSatisfaction(t *testing.T) {
	ctx := context.Background()

	t.Run("Only When Completed", func(t *testing.T) {
		for _, status := range []domain.Status{domain.StatusPending, domain.StatusInReview, domain.StatusArchived} {
			manifestationRepo := new(mocks.ManifestationRepository)
			svc := newManifestationService(manifestationRepo, new(mocks.MessageRepository))

			manifestationRepo.On("GetByProtocol", ctx, "OUV-2026-0005").Return(&domain.Manifestation{
				ID: uuid.New(), Status: status,
			}, nil).Once()

			err := svc.RecordSatisfaction(ctx, "OUV-2026-0005", domain.SatisfactionHappy)

			assert.ErrorIs(t, err, domain.ErrInvalidState, "status %s", status)
			manifestationRepo.AssertNotCalled(t, "SetSatisfaction", mock.Anything, mock.Anything, mock.Anything)
		}
	})

	t.Run("Success", func(t *testing.T) {
		manifestationRepo := new(mocks.ManifestationRepository)
		svc := newManifestationService(manifestationRepo, new(mocks.MessageRepository))

		id := uuid.New()
		manifestationRepo.On("GetByProtocol", ctx, "OUV-2026-0006").Return(&domain.Manifestation{
			ID: id, Protocol: "OUV-2026-0006", Status: domain.StatusCompleted,
		}, nil).Once()
		manifestationRepo.On("SetSatisfaction", ctx, id, domain.SatisfactionHappy).Return(nil).Once()

		err := svc.RecordSatisfaction(ctx, "OUV-2026-0006", domain.SatisfactionHappy)

		assert.NoError(t, err)
		manifestationRepo.AssertExpectations(t)
	})

	t.Run("Single Shot", func(t *testing.T) {
		manifestationRepo := new(mocks.ManifestationRepository)
		svc := newManifestationService(manifestationRepo, new(mocks.MessageRepository))

		rated := domain.SatisfactionNeutral
		manifestationRepo.On("GetByProtocol", ctx, "OUV-2026-0007").Return(&domain.Manifestation{
			ID: uuid.New(), Status: domain.StatusCompleted, Satisfaction: &rated,
		}, nil).Once()

		err := svc.RecordSatisfaction(ctx, "OUV-2026-0007", domain.SatisfactionHappy)

		assert.ErrorIs(t, err, domain.ErrInvalidState)
	})

	t.Run("Unknown Rating", func(t *testing.T) {
		svc := newManifestationService(new(mocks.ManifestationRepository), new(mocks.MessageRepository))

		err := svc.RecordSatisfaction(ctx, "OUV-2026-0008", "ECSTATIC")

		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}
