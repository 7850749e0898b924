// Package cache maintains the in-memory project and category maps backed
// by a TTL-gated persisted snapshot. Emptiness is a valid state (cold
// start); invalidation is all-or-nothing, gated by snapshot age.
package cache

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/apidex/internal/common"
	"github.com/ternarybob/apidex/internal/interfaces"
	"github.com/ternarybob/apidex/internal/models"
)

// Service implements the CacheService interface.
type Service struct {
	client     interfaces.CatalogClient
	snapshots  interfaces.SnapshotStorage
	projectIDs []string
	ttl        time.Duration
	logger     arbor.ILogger

	mu          sync.RWMutex
	projects    map[string]*models.ProjectInfo
	categories  map[string][]models.CategoryInfo
	lastRefresh time.Time

	// refreshMu serializes refresh passes so a scheduled refresh and a
	// search-triggered one never interleave.
	refreshMu sync.Mutex
}

// NewService creates the cache service and applies the startup policy:
// a valid persisted snapshot is loaded synchronously; an expired, missing,
// corrupt, or empty one triggers an asynchronous refresh. Startup never
// fails because of cache problems.
func NewService(client interfaces.CatalogClient, snapshots interfaces.SnapshotStorage, projectIDs []string, ttlMinutes int, logger arbor.ILogger) *Service {
	s := &Service{
		client:     client,
		snapshots:  snapshots,
		projectIDs: projectIDs,
		ttl:        time.Duration(ttlMinutes) * time.Minute,
		logger:     logger,
		projects:   make(map[string]*models.ProjectInfo),
		categories: make(map[string][]models.CategoryInfo),
	}

	s.bootstrap()

	return s
}

// bootstrap loads the persisted snapshot or schedules a refresh.
func (s *Service) bootstrap() {
	snapshot, err := s.snapshots.Load()
	if err != nil {
		if !errors.Is(err, interfaces.ErrSnapshotNotFound) {
			// Corrupt or unreadable snapshot is a cold cache, not a failure.
			s.logger.Warn().Err(err).Msg("Failed to load catalog snapshot, treating cache as cold")
		}
		s.refreshAsync()
		return
	}

	if time.Since(snapshot.RefreshedAt) > s.ttl {
		s.logger.Debug().
			Str("refreshed_at", snapshot.RefreshedAt.Format(time.RFC3339)).
			Msg("Persisted snapshot expired, scheduling refresh")
		s.refreshAsync()
		return
	}

	if len(snapshot.Projects) == 0 {
		// An empty snapshot is never treated as valid data.
		s.refreshAsync()
		return
	}

	s.mu.Lock()
	s.projects = snapshot.Projects
	s.lastRefresh = snapshot.RefreshedAt
	s.mu.Unlock()

	s.logger.Info().
		Int("projects", len(snapshot.Projects)).
		Msg("Catalog snapshot loaded from storage")

	// Category lists are not persisted; warm them in the background
	// without refetching the still-valid project map.
	common.SafeGo(s.logger, "cache.warmCategories", func() {
		ids := make([]string, 0, len(snapshot.Projects))
		for id := range snapshot.Projects {
			ids = append(ids, id)
		}
		categories := s.fetchCategories(context.Background(), ids, common.NewRefreshID())

		s.mu.Lock()
		s.categories = categories
		s.mu.Unlock()
	})
}

func (s *Service) refreshAsync() {
	common.SafeGo(s.logger, "cache.refreshAll", func() {
		s.RefreshAll(context.Background())
	})
}

// IsExpired reports whether no successful load has occurred or the last
// one is older than the TTL. Age exactly equal to the TTL is not expired.
func (s *Service) IsExpired() bool {
	return s.expiredAt(time.Now())
}

func (s *Service) expiredAt(now time.Time) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.lastRefresh.IsZero() {
		return true
	}
	return now.Sub(s.lastRefresh) > s.ttl
}

// RefreshAll fetches project info for every credentialed project, replaces
// the project map wholesale, persists it, then fetches the category list
// for every project now present. Both phases run in parallel and are
// best-effort: one project's failure never aborts the others.
func (s *Service) RefreshAll(ctx context.Context) {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	refreshID := common.NewRefreshID()
	started := time.Now()

	s.logger.Info().
		Str("refresh_id", refreshID).
		Int("projects", len(s.projectIDs)).
		Msg("Refreshing catalog cache")

	// Phase 1: project info.
	type projectResult struct {
		id   string
		info *models.ProjectInfo
	}

	results := make(chan projectResult, len(s.projectIDs))
	var wg sync.WaitGroup
	for _, id := range s.projectIDs {
		wg.Add(1)
		go func(projectID string) {
			defer wg.Done()
			info, err := s.client.GetProject(ctx, projectID)
			if err != nil {
				s.logger.Warn().
					Err(err).
					Str("refresh_id", refreshID).
					Str("project_id", projectID).
					Msg("Failed to fetch project info")
				return
			}
			results <- projectResult{id: projectID, info: info}
		}(id)
	}
	wg.Wait()
	close(results)

	projects := make(map[string]*models.ProjectInfo)
	for r := range results {
		projects[r.id] = r.info
	}

	refreshedAt := time.Now()

	s.mu.Lock()
	s.projects = projects
	s.lastRefresh = refreshedAt
	s.mu.Unlock()

	if err := s.snapshots.Save(projects, refreshedAt); err != nil {
		// Persistence failure degrades to an unpersisted in-memory cache.
		s.logger.Warn().Err(err).Str("refresh_id", refreshID).Msg("Failed to persist catalog snapshot")
	}

	// Phase 2: category lists, only for projects fetched above.
	ids := make([]string, 0, len(projects))
	for id := range projects {
		ids = append(ids, id)
	}
	categories := s.fetchCategories(ctx, ids, refreshID)

	s.mu.Lock()
	s.categories = categories
	s.mu.Unlock()

	s.logger.Info().
		Str("refresh_id", refreshID).
		Int("projects", len(projects)).
		Int("category_lists", len(categories)).
		Str("elapsed", time.Since(started).String()).
		Msg("Catalog cache refreshed")
}

// fetchCategories loads the category list for each project in parallel,
// dropping projects whose fetch fails.
func (s *Service) fetchCategories(ctx context.Context, projectIDs []string, refreshID string) map[string][]models.CategoryInfo {
	type categoryResult struct {
		id   string
		cats []models.CategoryInfo
	}

	results := make(chan categoryResult, len(projectIDs))
	var wg sync.WaitGroup
	for _, id := range projectIDs {
		wg.Add(1)
		go func(projectID string) {
			defer wg.Done()
			cats, err := s.client.GetCategories(ctx, projectID)
			if err != nil {
				s.logger.Warn().
					Err(err).
					Str("refresh_id", refreshID).
					Str("project_id", projectID).
					Msg("Failed to fetch category list")
				return
			}
			results <- categoryResult{id: projectID, cats: cats}
		}(id)
	}
	wg.Wait()
	close(results)

	categories := make(map[string][]models.CategoryInfo, len(projectIDs))
	for r := range results {
		categories[r.id] = r.cats
	}
	return categories
}

// EnsureLoaded triggers a synchronous refresh if the project map is empty.
func (s *Service) EnsureLoaded(ctx context.Context) {
	s.mu.RLock()
	empty := len(s.projects) == 0
	s.mu.RUnlock()

	if empty {
		s.RefreshAll(ctx)
	}
}

// Projects returns a copy of the cached project map.
func (s *Service) Projects() map[string]*models.ProjectInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	projects := make(map[string]*models.ProjectInfo, len(s.projects))
	for id, info := range s.projects {
		projects[id] = info
	}
	return projects
}

// Project returns one cached project, or nil.
func (s *Service) Project(projectID string) *models.ProjectInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.projects[projectID]
}

// Categories returns the cached category list for a project.
func (s *Service) Categories(projectID string) []models.CategoryInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.categories[projectID]
}

// Ensure Service implements CacheService interface
var _ interfaces.CacheService = (*Service)(nil)
