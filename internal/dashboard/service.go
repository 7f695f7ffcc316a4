package dashboard

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"contracting/internal/core"
	applog "contracting/internal/log"
	"contracting/internal/metrics"
	"contracting/internal/store"
)

// Overview bundles every dashboard view computed from one snapshot.
type Overview struct {
	Projects       ProjectStatsView `json:"projectStats"`
	Labor          []LaborGroup     `json:"laborDistribution"`
	ProfitLoss     ProfitLossView   `json:"profitLoss"`
	RecentProjects []core.Project   `json:"recentProjects"`
	Samples        SampleSeries     `json:"sampleSeries"`
}

// Service computes views from the current store contents on every call.
type Service struct {
	store   store.Store
	logger  *applog.Logger
	metrics *metrics.Metrics
}

func NewService(st store.Store, logger *applog.Logger, m *metrics.Metrics) *Service {
	if logger == nil {
		logger = applog.Discard()
	}
	return &Service{store: st, logger: logger.WithComponent(applog.ComponentDashboard), metrics: m}
}

// Snapshot loads the collections concurrently.
func (s *Service) Snapshot(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		snap.Projects, err = s.store.Projects().List(ctx)
		return wrap("projects", err)
	})
	g.Go(func() (err error) {
		snap.Statements, err = s.store.Statements().List(ctx)
		return wrap("statements", err)
	})
	g.Go(func() (err error) {
		snap.Employees, err = s.store.Employees().List(ctx)
		return wrap("employees", err)
	})
	g.Go(func() (err error) {
		snap.Equipment, err = s.store.Equipment().List(ctx)
		return wrap("equipment", err)
	})
	g.Go(func() (err error) {
		snap.Payments, err = s.store.Payments().List(ctx)
		return wrap("payments", err)
	})
	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

func (s *Service) Overview(ctx context.Context) (Overview, error) {
	start := time.Now()
	defer func() { s.metrics.ObserveDashboard(time.Since(start)) }()

	snap, err := s.Snapshot(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to load dashboard snapshot", "error", err)
		return Overview{}, err
	}
	o := Overview{
		Projects:       ProjectStats(snap.Projects),
		Labor:          LaborDistribution(snap.Employees),
		ProfitLoss:     ProfitLoss(snap),
		RecentProjects: RecentProjects(snap.Projects, recentCount),
		Samples:        SampleData(),
	}
	s.logger.DebugContext(ctx, "Dashboard computed",
		"projects", len(snap.Projects),
		"duration_ms", time.Since(start).Milliseconds())
	return o, nil
}

func (s *Service) ProjectStats(ctx context.Context) (ProjectStatsView, error) {
	projects, err := s.store.Projects().List(ctx)
	if err != nil {
		return ProjectStatsView{}, wrap("projects", err)
	}
	return ProjectStats(projects), nil
}

func (s *Service) Labor(ctx context.Context) ([]LaborGroup, error) {
	employees, err := s.store.Employees().List(ctx)
	if err != nil {
		return nil, wrap("employees", err)
	}
	return LaborDistribution(employees), nil
}

func (s *Service) ProfitLoss(ctx context.Context) (ProfitLossView, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return ProfitLossView{}, err
	}
	return ProfitLoss(snap), nil
}

func wrap(collection string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("load %s: %w", collection, err)
}
