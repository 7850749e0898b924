// Package search implements keyword search aggregated across every cached
// project. The remote service has no cross-project, multi-keyword search
// endpoint, so the engine fans out per-project menu fetches and filters
// client-side.
package search

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/apidex/internal/common"
	"github.com/ternarybob/apidex/internal/interfaces"
	"github.com/ternarybob/apidex/internal/models"
)

// Service implements the SearchService interface.
type Service struct {
	client       interfaces.CatalogClient
	cache        interfaces.CacheService
	defaultLimit int
	maxProjects  int
	logger       arbor.ILogger
}

// NewService creates a new search service.
func NewService(client interfaces.CatalogClient, cache interfaces.CacheService, config *common.SearchConfig, logger arbor.ILogger) *Service {
	return &Service{
		client:       client,
		cache:        cache,
		defaultLimit: config.DefaultLimit,
		maxProjects:  config.MaxProjects,
		logger:       logger,
	}
}

// Search selects candidate projects, fetches and flattens each project's
// interface menu, filters by every keyword combination, enriches,
// deduplicates by interface id and returns the id-descending page.
func (s *Service) Search(ctx context.Context, criteria interfaces.SearchCriteria) (*models.SearchResult, error) {
	if criteria.Limit <= 0 {
		criteria.Limit = s.defaultLimit
	}
	if criteria.Page <= 0 {
		criteria.Page = 1
	}
	if criteria.MaxProjects <= 0 {
		criteria.MaxProjects = s.maxProjects
	}

	s.cache.EnsureLoaded(ctx)

	candidates := s.candidateProjects(criteria.ProjectKeyword, criteria.MaxProjects)
	if len(candidates) == 0 {
		return &models.SearchResult{Total: 0, List: []models.SearchResultItem{}}, nil
	}

	// Fan out one menu fetch per candidate. A failed project degrades
	// the result set instead of failing the search.
	var (
		mu      sync.Mutex
		matched []models.SearchResultItem
	)
	var wg sync.WaitGroup
	for _, projectID := range candidates {
		wg.Add(1)
		go func(projectID string) {
			defer wg.Done()
			items, err := s.searchProject(ctx, projectID, criteria)
			if err != nil {
				s.logger.Warn().
					Err(err).
					Str("project_id", projectID).
					Msg("Project search failed, skipping")
				return
			}
			mu.Lock()
			matched = append(matched, items...)
			mu.Unlock()
		}(projectID)
	}
	wg.Wait()

	// Newest first: interface ids are monotonically assigned.
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].ID > matched[j].ID
	})

	deduped := dedupeByID(matched)

	total := len(deduped)
	offset := (criteria.Page - 1) * criteria.Limit
	if offset > total {
		offset = total
	}
	end := offset + criteria.Limit
	if end > total {
		end = total
	}

	return &models.SearchResult{Total: total, List: deduped[offset:end]}, nil
}

// candidateProjects returns up to max cached project ids whose name,
// description, or id contains the keyword (case-insensitive). Iteration
// order is the sorted project-id order so identical criteria always scan
// identical candidates.
func (s *Service) candidateProjects(keyword string, max int) []string {
	projects := s.cache.Projects()

	ids := make([]string, 0, len(projects))
	for id := range projects {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	candidates := make([]string, 0, len(ids))
	for _, id := range ids {
		if keyword != "" && !projectMatches(id, projects[id], keyword) {
			continue
		}
		candidates = append(candidates, id)
		if len(candidates) >= max {
			break
		}
	}
	return candidates
}

func projectMatches(id string, info *models.ProjectInfo, keyword string) bool {
	return containsFold(info.Name, keyword) ||
		containsFold(info.Desc, keyword) ||
		containsFold(id, keyword)
}

// searchProject fetches the project's menu once and runs every keyword
// combination against the flattened interface list. Per-combination
// failures are isolated: a bad combination contributes zero results.
func (s *Service) searchProject(ctx context.Context, projectID string, criteria interfaces.SearchCriteria) ([]models.SearchResultItem, error) {
	menu, err := s.client.GetMenu(ctx, projectID)
	if err != nil {
		return nil, err
	}

	flattened := s.flatten(projectID, menu)

	var matched []models.SearchResultItem
	it := newComboIter(criteria.NameKeywords, criteria.PathKeywords, criteria.TagKeywords)
	for {
		c, ok := it.Next()
		if !ok {
			break
		}
		matched = append(matched, filterCombo(flattened, c)...)
	}

	return matched, nil
}

// flatten turns the category tree into a flat interface list, joining in
// the enrichment fields. A missing category or project name only omits
// the enrichment, never the result.
func (s *Service) flatten(projectID string, menu []models.MenuCategory) []models.SearchResultItem {
	projectName := ""
	if info := s.cache.Project(projectID); info != nil {
		projectName = info.Name
	}

	var items []models.SearchResultItem
	for _, cat := range menu {
		for _, api := range cat.List {
			items = append(items, models.SearchResultItem{
				ID:          api.ID,
				Title:       api.Title,
				Path:        api.Path,
				Method:      api.Method,
				CatID:       api.CatID,
				ProjectID:   api.ProjectID,
				Tag:         api.Tag,
				AddTime:     api.AddTime,
				UpTime:      api.UpTime,
				ProjectName: projectName,
				CatName:     cat.Name,
			})
		}
	}
	return items
}

// filterCombo applies one (name, path, tag) combination. Every set filter
// must match; an empty filter matches everything.
func filterCombo(items []models.SearchResultItem, c combo) []models.SearchResultItem {
	var matched []models.SearchResultItem
	for _, item := range items {
		if c.name != "" && !containsFold(item.Title, c.name) {
			continue
		}
		if c.path != "" && !containsFold(item.Path, c.path) {
			continue
		}
		if c.tag != "" && !anyTagContains(item.Tag, c.tag) {
			continue
		}
		matched = append(matched, item)
	}
	return matched
}

// dedupeByID removes duplicate interface ids, keeping the first occurrence
// in the already-sorted slice.
func dedupeByID(items []models.SearchResultItem) []models.SearchResultItem {
	seen := make(map[int]struct{}, len(items))
	deduped := make([]models.SearchResultItem, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.ID]; ok {
			continue
		}
		seen[item.ID] = struct{}{}
		deduped = append(deduped, item)
	}
	return deduped
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func anyTagContains(tags []string, keyword string) bool {
	for _, tag := range tags {
		if containsFold(tag, keyword) {
			return true
		}
	}
	return false
}

// Ensure Service implements SearchService interface
var _ interfaces.SearchService = (*Service)(nil)
