package handler

import "ouvidoria-ativa/internal/service"

type Handlers struct {
	Manifestation *ManifestationHandler
	Message       *MessageHandler
	Public        *PublicHandler
	Dashboard     *DashboardHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Manifestation: NewManifestationHandler(services.Manifestation),
		Message:       NewMessageHandler(services.Message),
		Public:        NewPublicHandler(services.Manifestation, services.Message),
		Dashboard:     NewDashboardHandler(services.Dashboard),
	}
}
