package search

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/apidex/internal/common"
	"github.com/ternarybob/apidex/internal/interfaces"
	"github.com/ternarybob/apidex/internal/models"
)

// fakeCache is a static CacheService stub.
type fakeCache struct {
	projects   map[string]*models.ProjectInfo
	categories map[string][]models.CategoryInfo
}

func (f *fakeCache) IsExpired() bool                  { return false }
func (f *fakeCache) RefreshAll(ctx context.Context)   {}
func (f *fakeCache) EnsureLoaded(ctx context.Context) {}

func (f *fakeCache) Projects() map[string]*models.ProjectInfo {
	projects := make(map[string]*models.ProjectInfo, len(f.projects))
	for id, info := range f.projects {
		projects[id] = info
	}
	return projects
}

func (f *fakeCache) Project(projectID string) *models.ProjectInfo {
	return f.projects[projectID]
}

func (f *fakeCache) Categories(projectID string) []models.CategoryInfo {
	return f.categories[projectID]
}

// fakeMenuClient serves canned menus; failing projects error out.
type fakeMenuClient struct {
	mu      sync.Mutex
	menus   map[string][]models.MenuCategory
	failing map[string]bool
	fetches map[string]int
}

func newFakeMenuClient() *fakeMenuClient {
	return &fakeMenuClient{
		menus:   make(map[string][]models.MenuCategory),
		failing: make(map[string]bool),
		fetches: make(map[string]int),
	}
}

func (f *fakeMenuClient) GetMenu(ctx context.Context, projectID string) ([]models.MenuCategory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches[projectID]++
	if f.failing[projectID] {
		return nil, errors.New("remote down")
	}
	return f.menus[projectID], nil
}

func (f *fakeMenuClient) GetProject(ctx context.Context, projectID string) (*models.ProjectInfo, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeMenuClient) GetCategories(ctx context.Context, projectID string) ([]models.CategoryInfo, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeMenuClient) GetInterface(ctx context.Context, projectID, interfaceID string) (*models.InterfaceDetail, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeMenuClient) AddInterface(ctx context.Context, projectID string, payload *models.SavePayload) (int, error) {
	return 0, errors.New("not implemented")
}

func (f *fakeMenuClient) UpdateInterface(ctx context.Context, projectID string, payload *models.SavePayload) (int, error) {
	return 0, errors.New("not implemented")
}

func newTestService(client *fakeMenuClient, cache *fakeCache) *Service {
	return NewService(client, cache, &common.SearchConfig{DefaultLimit: 20, MaxProjects: 5}, common.GetLogger())
}

func authMenu() []models.MenuCategory {
	return []models.MenuCategory{
		{
			ID: 7, Name: "auth", ProjectID: 10,
			List: []models.MenuInterface{
				{ID: 5, Title: "User Login", Path: "/api/user/login", Method: "POST", CatID: 7, ProjectID: 10, Tag: []string{"auth"}},
				{ID: 9, Title: "Admin Login", Path: "/api/admin/login", Method: "POST", CatID: 7, ProjectID: 10, Tag: []string{"auth", "admin"}},
				{ID: 3, Title: "Get Profile", Path: "/api/user/profile", Method: "GET", CatID: 7, ProjectID: 10},
			},
		},
	}
}

func TestSearch_ByName_DescendingIDOrder(t *testing.T) {
	client := newFakeMenuClient()
	client.menus["10"] = authMenu()
	cache := &fakeCache{projects: map[string]*models.ProjectInfo{
		"10": {ID: 10, Name: "billing", Desc: "billing service"},
	}}

	s := newTestService(client, cache)
	result, err := s.Search(context.Background(), interfaces.SearchCriteria{
		NameKeywords: []string{"login"},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Total)
	require.Len(t, result.List, 2)
	assert.Equal(t, 9, result.List[0].ID, "newest id first")
	assert.Equal(t, 5, result.List[1].ID)
}

func TestSearch_Enrichment(t *testing.T) {
	client := newFakeMenuClient()
	client.menus["10"] = authMenu()
	cache := &fakeCache{projects: map[string]*models.ProjectInfo{
		"10": {ID: 10, Name: "billing"},
	}}

	s := newTestService(client, cache)
	result, err := s.Search(context.Background(), interfaces.SearchCriteria{
		NameKeywords: []string{"User Login"},
	})
	require.NoError(t, err)

	require.Len(t, result.List, 1)
	assert.Equal(t, "billing", result.List[0].ProjectName)
	assert.Equal(t, "auth", result.List[0].CatName)
}

func TestSearch_DedupeAcrossCombinations(t *testing.T) {
	client := newFakeMenuClient()
	client.menus["10"] = authMenu()
	cache := &fakeCache{projects: map[string]*models.ProjectInfo{
		"10": {ID: 10, Name: "billing"},
	}}

	s := newTestService(client, cache)
	// "user" and "login" both match "User Login" (id 5) in separate
	// combinations; it must appear exactly once.
	result, err := s.Search(context.Background(), interfaces.SearchCriteria{
		NameKeywords: []string{"user", "login"},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Total)
	require.Len(t, result.List, 2)
	assert.Equal(t, 9, result.List[0].ID)
	assert.Equal(t, 5, result.List[1].ID)
}

func TestSearch_GracefulDegradation(t *testing.T) {
	client := newFakeMenuClient()
	client.menus["10"] = authMenu()
	client.failing["20"] = true
	cache := &fakeCache{projects: map[string]*models.ProjectInfo{
		"10": {ID: 10, Name: "billing"},
		"20": {ID: 20, Name: "auth"},
	}}

	s := newTestService(client, cache)
	result, err := s.Search(context.Background(), interfaces.SearchCriteria{
		NameKeywords: []string{"login"},
	})
	require.NoError(t, err, "one project's outage must not fail the search")

	assert.Equal(t, 2, result.Total, "total counts only successes")
}

func TestSearch_Idempotence(t *testing.T) {
	client := newFakeMenuClient()
	client.menus["10"] = authMenu()
	client.menus["20"] = []models.MenuCategory{
		{ID: 8, Name: "session", ProjectID: 20, List: []models.MenuInterface{
			{ID: 12, Title: "Login Audit", Path: "/api/audit/login", Method: "GET", CatID: 8, ProjectID: 20},
		}},
	}
	cache := &fakeCache{projects: map[string]*models.ProjectInfo{
		"10": {ID: 10, Name: "billing"},
		"20": {ID: 20, Name: "auth"},
	}}

	s := newTestService(client, cache)
	criteria := interfaces.SearchCriteria{NameKeywords: []string{"login"}}

	first, err := s.Search(context.Background(), criteria)
	require.NoError(t, err)
	second, err := s.Search(context.Background(), criteria)
	require.NoError(t, err)

	assert.Equal(t, first, second, "identical criteria over unchanged state must return identical results")
}

func TestSearch_ProjectKeywordFilter(t *testing.T) {
	client := newFakeMenuClient()
	client.menus["10"] = authMenu()
	client.menus["20"] = authMenu()
	cache := &fakeCache{projects: map[string]*models.ProjectInfo{
		"10": {ID: 10, Name: "Billing", Desc: "invoices"},
		"20": {ID: 20, Name: "auth", Desc: "identity"},
	}}

	s := newTestService(client, cache)
	_, err := s.Search(context.Background(), interfaces.SearchCriteria{
		ProjectKeyword: "BILL",
		NameKeywords:   []string{"login"},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, client.fetches["10"], "matching project must be scanned")
	assert.Equal(t, 0, client.fetches["20"], "non-matching project must be skipped")
}

func TestSearch_ProjectKeywordMatchesID(t *testing.T) {
	client := newFakeMenuClient()
	client.menus["42"] = authMenu()
	cache := &fakeCache{projects: map[string]*models.ProjectInfo{
		"42": {ID: 42, Name: "misc"},
	}}

	s := newTestService(client, cache)
	result, err := s.Search(context.Background(), interfaces.SearchCriteria{
		ProjectKeyword: "42",
		NameKeywords:   []string{"login"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Total)
}

func TestSearch_MaxProjectsCap(t *testing.T) {
	client := newFakeMenuClient()
	cache := &fakeCache{projects: map[string]*models.ProjectInfo{}}
	for _, id := range []string{"1", "2", "3"} {
		client.menus[id] = authMenu()
		cache.projects[id] = &models.ProjectInfo{Name: "p" + id}
	}

	s := newTestService(client, cache)
	_, err := s.Search(context.Background(), interfaces.SearchCriteria{
		NameKeywords: []string{"login"},
		MaxProjects:  2,
	})
	require.NoError(t, err)

	scanned := 0
	for _, n := range client.fetches {
		scanned += n
	}
	assert.Equal(t, 2, scanned, "candidate projects must be capped at MaxProjects")
}

func TestSearch_NoCandidates(t *testing.T) {
	s := newTestService(newFakeMenuClient(), &fakeCache{projects: map[string]*models.ProjectInfo{}})

	result, err := s.Search(context.Background(), interfaces.SearchCriteria{
		NameKeywords: []string{"login"},
	})
	require.NoError(t, err)

	assert.Equal(t, 0, result.Total)
	assert.Empty(t, result.List)
}

func TestSearch_TagFilter(t *testing.T) {
	client := newFakeMenuClient()
	client.menus["10"] = authMenu()
	cache := &fakeCache{projects: map[string]*models.ProjectInfo{
		"10": {ID: 10, Name: "billing"},
	}}

	s := newTestService(client, cache)
	result, err := s.Search(context.Background(), interfaces.SearchCriteria{
		TagKeywords: []string{"ADMIN"},
	})
	require.NoError(t, err)

	require.Len(t, result.List, 1)
	assert.Equal(t, 9, result.List[0].ID)
}

func TestSearch_LimitTruncatesButTotalCounts(t *testing.T) {
	client := newFakeMenuClient()
	client.menus["10"] = authMenu()
	cache := &fakeCache{projects: map[string]*models.ProjectInfo{
		"10": {ID: 10, Name: "billing"},
	}}

	s := newTestService(client, cache)
	result, err := s.Search(context.Background(), interfaces.SearchCriteria{
		PathKeywords: []string{"/api"},
		Limit:        2,
	})
	require.NoError(t, err)

	assert.Equal(t, 3, result.Total, "total reports the deduplicated count before truncation")
	require.Len(t, result.List, 2)
	assert.Equal(t, 9, result.List[0].ID)
	assert.Equal(t, 5, result.List[1].ID)
}

func TestSearch_SecondPage(t *testing.T) {
	client := newFakeMenuClient()
	client.menus["10"] = authMenu()
	cache := &fakeCache{projects: map[string]*models.ProjectInfo{
		"10": {ID: 10, Name: "billing"},
	}}

	s := newTestService(client, cache)
	result, err := s.Search(context.Background(), interfaces.SearchCriteria{
		PathKeywords: []string{"/api"},
		Limit:        2,
		Page:         2,
	})
	require.NoError(t, err)

	assert.Equal(t, 3, result.Total)
	require.Len(t, result.List, 1)
	assert.Equal(t, 3, result.List[0].ID)
}
