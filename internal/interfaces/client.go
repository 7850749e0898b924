package interfaces

import (
	"context"

	"github.com/ternarybob/apidex/internal/models"
)

// CatalogClient is the remote-access surface the services depend on.
// Implemented by yapi.Client; faked in tests.
type CatalogClient interface {
	GetProject(ctx context.Context, projectID string) (*models.ProjectInfo, error)
	GetCategories(ctx context.Context, projectID string) ([]models.CategoryInfo, error)
	GetMenu(ctx context.Context, projectID string) ([]models.MenuCategory, error)
	GetInterface(ctx context.Context, projectID, interfaceID string) (*models.InterfaceDetail, error)
	AddInterface(ctx context.Context, projectID string, payload *models.SavePayload) (int, error)
	UpdateInterface(ctx context.Context, projectID string, payload *models.SavePayload) (int, error)
}
