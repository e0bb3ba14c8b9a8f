package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"ouvidoria-ativa/internal/cache"
	"ouvidoria-ativa/internal/config"
	"ouvidoria-ativa/internal/domain"
	"ouvidoria-ativa/internal/repository"
)

const topDepartments = 5

type DashboardService interface {
	ComputeStats(ctx context.Context, period domain.Period) (*domain.DashboardStats, error)
}

type dashboardService struct {
	manifestationRepo repository.ManifestationRepository
	cache             *cache.Cache
	cfg               *config.Config
	now               func() time.Time
}

func NewDashboardService(manifestationRepo repository.ManifestationRepository, cache *cache.Cache, cfg *config.Config) DashboardService {
	return &dashboardService{
		manifestationRepo: manifestationRepo,
		cache:             cache,
		cfg:               cfg,
		now:               time.Now,
	}
}

// ComputeStats runs five independent reductions over the manifestations of
// the period. The whole payload is cached per period and evicted by pattern
// whenever any manifestation mutates.
func (s *dashboardService) ComputeStats(ctx context.Context, period domain.Period) (*domain.DashboardStats, error) {
	return cache.GetOrSet(ctx, s.cache, cache.DashboardKey(period), s.cfg.DashboardCacheTTL,
		func(ctx context.Context) (*domain.DashboardStats, error) {
			return s.compute(ctx, period)
		})
}

func (s *dashboardService) compute(ctx context.Context, period domain.Period) (*domain.DashboardStats, error) {
	since := period.StartDate(s.now())

	resolution, err := s.manifestationRepo.ResolutionStats(ctx, since)
	if err != nil {
		return nil, err
	}

	byCategory, err := s.manifestationRepo.CountByCategory(ctx, since)
	if err != nil {
		return nil, err
	}

	byDepartment, err := s.manifestationRepo.CountByDepartment(ctx, since, topDepartments)
	if err != nil {
		return nil, err
	}

	satisfaction, err := s.manifestationRepo.SatisfactionCounts(ctx, since)
	if err != nil {
		return nil, err
	}

	series, err := s.manifestationRepo.TimeSeries(ctx, since, period.Bucket())
	if err != nil {
		return nil, err
	}

	return &domain.DashboardStats{
		Total:                 resolution.Total,
		ResponseRate:          formatResponseRate(resolution),
		AverageResolutionTime: formatResolutionTime(resolution),
		SatisfactionIndex:     formatSatisfactionIndex(satisfaction),
		ByCategory:            byCategory,
		ByDepartment:          byDepartment,
		TimeSeries:            series,
	}, nil
}

func formatResponseRate(stats domain.ResolutionStats) string {
	if stats.Total == 0 {
		return "0%"
	}
	rate := math.Round(float64(stats.Completed) / float64(stats.Total) * 100)
	return fmt.Sprintf("%d%%", int(rate))
}

func formatResolutionTime(stats domain.ResolutionStats) string {
	if stats.Completed == 0 {
		return "N/A"
	}
	if stats.AvgResolutionD < 1 {
		return "< 1 day"
	}
	days := int(math.Round(stats.AvgResolutionD))
	if days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", days)
}

func formatSatisfactionIndex(counts []domain.SatisfactionCount) string {
	var total, sum int64
	for _, c := range counts {
		total += c.Count
		sum += c.Count * int64(c.Rating.Score())
	}
	if total == 0 {
		return "N/A"
	}
	return fmt.Sprintf("%.1f/5", float64(sum)/float64(total))
}
