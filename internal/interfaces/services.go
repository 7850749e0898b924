package interfaces

import (
	"context"

	"github.com/ternarybob/apidex/internal/models"
)

// CacheService owns the in-memory project and category maps backed by the
// persisted snapshot. Emptiness is a valid state (cold start), never an
// error; invalidation is all-or-nothing, gated by TTL age.
type CacheService interface {
	// IsExpired reports whether no successful load has happened or the
	// last one is older than the configured TTL. An age exactly equal to
	// the TTL is not expired.
	IsExpired() bool

	// RefreshAll refetches every credentialed project, persists the
	// project map, then refetches every category list. Both phases are
	// parallel and best-effort: one project's failure never aborts the
	// others.
	RefreshAll(ctx context.Context)

	// EnsureLoaded triggers a refresh if the project map is empty.
	EnsureLoaded(ctx context.Context)

	// Projects returns a copy of the cached project map.
	Projects() map[string]*models.ProjectInfo

	// Project returns one cached project, or nil.
	Project(projectID string) *models.ProjectInfo

	// Categories returns the cached category list for a project.
	Categories(projectID string) []models.CategoryInfo
}

// SearchCriteria is the input of one aggregated search.
type SearchCriteria struct {
	// ProjectKeyword narrows candidate projects by case-insensitive
	// substring match on name, description, or id. Empty means all.
	ProjectKeyword string

	NameKeywords []string
	PathKeywords []string
	TagKeywords  []string

	// Page is 1-based; Limit defaults to 20.
	Page  int
	Limit int

	// MaxProjects caps the number of candidate projects scanned
	// (default 5, cache iteration order).
	MaxProjects int
}

// SearchService aggregates keyword search across every cached project.
type SearchService interface {
	Search(ctx context.Context, criteria SearchCriteria) (*models.SearchResult, error)
}

// InterfaceService is the fetch-one / create-or-update surface for a
// single interface record.
type InterfaceService interface {
	Get(ctx context.Context, projectID, interfaceID string) (*models.InterfaceDetail, error)

	// Save routes to create when the request carries no id, update
	// otherwise. Returns the resulting interface id.
	Save(ctx context.Context, req *models.SaveRequest) (int, error)

	// Menu returns a project's full category→interface tree.
	Menu(ctx context.Context, projectID string) ([]models.MenuCategory, error)
}
