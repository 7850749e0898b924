package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/apidex/internal/common"
	"github.com/ternarybob/apidex/internal/interfaces"
	"github.com/ternarybob/apidex/internal/models"
)

// fakeClient is a race-safe CatalogClient stub.
type fakeClient struct {
	mu         sync.Mutex
	projects   map[string]*models.ProjectInfo
	categories map[string][]models.CategoryInfo
	failing    map[string]bool

	projectCalls int
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		projects:   make(map[string]*models.ProjectInfo),
		categories: make(map[string][]models.CategoryInfo),
		failing:    make(map[string]bool),
	}
}

func (f *fakeClient) GetProject(ctx context.Context, projectID string) (*models.ProjectInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.projectCalls++
	if f.failing[projectID] {
		return nil, errors.New("remote down")
	}
	if info, ok := f.projects[projectID]; ok {
		return info, nil
	}
	return nil, errors.New("no such project")
}

func (f *fakeClient) GetCategories(ctx context.Context, projectID string) ([]models.CategoryInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing[projectID] {
		return nil, errors.New("remote down")
	}
	return f.categories[projectID], nil
}

func (f *fakeClient) GetMenu(ctx context.Context, projectID string) ([]models.MenuCategory, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeClient) GetInterface(ctx context.Context, projectID, interfaceID string) (*models.InterfaceDetail, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeClient) AddInterface(ctx context.Context, projectID string, payload *models.SavePayload) (int, error) {
	return 0, errors.New("not implemented")
}

func (f *fakeClient) UpdateInterface(ctx context.Context, projectID string, payload *models.SavePayload) (int, error) {
	return 0, errors.New("not implemented")
}

func (f *fakeClient) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.projectCalls
}

// fakeSnapshots is a race-safe SnapshotStorage stub.
type fakeSnapshots struct {
	mu       sync.Mutex
	snapshot *models.CatalogSnapshot
	loadErr  error
	saveErr  error
	saves    int
}

func (f *fakeSnapshots) Save(projects map[string]*models.ProjectInfo, refreshedAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saves++
	if f.saveErr != nil {
		return f.saveErr
	}
	f.snapshot = &models.CatalogSnapshot{Key: models.SnapshotKey, Projects: projects, RefreshedAt: refreshedAt}
	return nil
}

func (f *fakeSnapshots) Load() (*models.CatalogSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	if f.snapshot == nil {
		return nil, interfaces.ErrSnapshotNotFound
	}
	return f.snapshot, nil
}

func (f *fakeSnapshots) saveCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saves
}

func TestExpiredAt_Boundary(t *testing.T) {
	now := time.Now()
	ttl := 10 * time.Minute

	tests := []struct {
		name        string
		lastRefresh time.Time
		want        bool
	}{
		{"never loaded", time.Time{}, true},
		{"well within ttl", now.Add(-time.Minute), false},
		{"age exactly equal to ttl is not expired", now.Add(-ttl), false},
		{"one nanosecond past ttl", now.Add(-ttl - time.Nanosecond), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Service{ttl: ttl, lastRefresh: tt.lastRefresh}
			if got := s.expiredAt(now); got != tt.want {
				t.Errorf("expiredAt() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRefreshAll_BestEffort(t *testing.T) {
	client := newFakeClient()
	client.projects["10"] = &models.ProjectInfo{ID: 10, Name: "billing"}
	client.projects["20"] = &models.ProjectInfo{ID: 20, Name: "auth"}
	client.failing["20"] = true
	client.categories["10"] = []models.CategoryInfo{{ID: 7, Name: "core", ProjectID: 10}}

	snapshots := &fakeSnapshots{}
	s := &Service{
		client:     client,
		snapshots:  snapshots,
		projectIDs: []string{"10", "20"},
		ttl:        10 * time.Minute,
		logger:     common.GetLogger(),
		projects:   make(map[string]*models.ProjectInfo),
		categories: make(map[string][]models.CategoryInfo),
	}

	s.RefreshAll(context.Background())

	projects := s.Projects()
	require.Len(t, projects, 1, "failed project must not abort the others")
	assert.Equal(t, "billing", projects["10"].Name)

	assert.False(t, s.IsExpired())
	assert.Equal(t, 1, snapshots.saveCount(), "successful refresh must persist the snapshot")

	cats := s.Categories("10")
	require.Len(t, cats, 1)
	assert.Equal(t, "core", cats[0].Name)
	assert.Empty(t, s.Categories("20"))
}

func TestRefreshAll_PersistFailureIsNonFatal(t *testing.T) {
	client := newFakeClient()
	client.projects["10"] = &models.ProjectInfo{ID: 10, Name: "billing"}

	snapshots := &fakeSnapshots{saveErr: errors.New("disk full")}
	s := &Service{
		client:     client,
		snapshots:  snapshots,
		projectIDs: []string{"10"},
		ttl:        10 * time.Minute,
		logger:     common.GetLogger(),
		projects:   make(map[string]*models.ProjectInfo),
		categories: make(map[string][]models.CategoryInfo),
	}

	s.RefreshAll(context.Background())

	assert.Len(t, s.Projects(), 1, "in-memory cache must survive a persist failure")
	assert.False(t, s.IsExpired())
}

func TestNewService_LoadsValidSnapshotSynchronously(t *testing.T) {
	client := newFakeClient()
	snapshots := &fakeSnapshots{
		snapshot: &models.CatalogSnapshot{
			Key: models.SnapshotKey,
			Projects: map[string]*models.ProjectInfo{
				"10": {ID: 10, Name: "billing"},
			},
			RefreshedAt: time.Now(),
		},
	}

	s := NewService(client, snapshots, []string{"10"}, 10, common.GetLogger())

	assert.Len(t, s.Projects(), 1, "valid snapshot must be available immediately")
	assert.False(t, s.IsExpired())
	assert.Equal(t, 0, client.calls(), "valid snapshot must not refetch projects")
}

func TestNewService_ColdStartTriggersAsyncRefresh(t *testing.T) {
	client := newFakeClient()
	client.projects["10"] = &models.ProjectInfo{ID: 10, Name: "billing"}
	snapshots := &fakeSnapshots{}

	s := NewService(client, snapshots, []string{"10"}, 10, common.GetLogger())

	require.Eventually(t, func() bool {
		return len(s.Projects()) == 1
	}, 2*time.Second, 10*time.Millisecond, "cold start must refresh in the background")
}

func TestNewService_CorruptSnapshotIsColdCache(t *testing.T) {
	client := newFakeClient()
	client.projects["10"] = &models.ProjectInfo{ID: 10, Name: "billing"}
	snapshots := &fakeSnapshots{loadErr: errors.New("unexpected EOF")}

	s := NewService(client, snapshots, []string{"10"}, 10, common.GetLogger())

	require.Eventually(t, func() bool {
		return len(s.Projects()) == 1
	}, 2*time.Second, 10*time.Millisecond, "corrupt snapshot must degrade to a cold cache")
}

func TestNewService_EmptySnapshotStillRefreshes(t *testing.T) {
	client := newFakeClient()
	client.projects["10"] = &models.ProjectInfo{ID: 10, Name: "billing"}
	snapshots := &fakeSnapshots{
		snapshot: &models.CatalogSnapshot{
			Key:         models.SnapshotKey,
			Projects:    map[string]*models.ProjectInfo{},
			RefreshedAt: time.Now(),
		},
	}

	s := NewService(client, snapshots, []string{"10"}, 10, common.GetLogger())

	require.Eventually(t, func() bool {
		return len(s.Projects()) == 1
	}, 2*time.Second, 10*time.Millisecond, "empty snapshot is never valid data")
}

func TestEnsureLoaded(t *testing.T) {
	client := newFakeClient()
	client.projects["10"] = &models.ProjectInfo{ID: 10, Name: "billing"}
	snapshots := &fakeSnapshots{}

	s := &Service{
		client:     client,
		snapshots:  snapshots,
		projectIDs: []string{"10"},
		ttl:        10 * time.Minute,
		logger:     common.GetLogger(),
		projects:   make(map[string]*models.ProjectInfo),
		categories: make(map[string][]models.CategoryInfo),
	}

	s.EnsureLoaded(context.Background())
	assert.Len(t, s.Projects(), 1)

	// Already populated: no further fetch.
	calls := client.calls()
	s.EnsureLoaded(context.Background())
	assert.Equal(t, calls, client.calls())
}
