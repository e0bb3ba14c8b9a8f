package service

import (
	"ouvidoria-ativa/internal/cache"
	"ouvidoria-ativa/internal/config"
	"ouvidoria-ativa/internal/protocol"
	"ouvidoria-ativa/internal/repository"
)

type Services struct {
	Manifestation ManifestationService
	Message       MessageService
	Dashboard     DashboardService
}

func NewServices(repos *repository.Repositories, cache *cache.Cache, cfg *config.Config) *Services {
	generator := protocol.NewGenerator(cfg.ProtocolPrefix)

	return &Services{
		Manifestation: NewManifestationService(repos.Manifestation, repos.Message, generator, cache, cfg),
		Message:       NewMessageService(repos.Message, repos.Manifestation, cache, cfg),
		Dashboard:     NewDashboardService(repos.Manifestation, cache, cfg),
	}
}
