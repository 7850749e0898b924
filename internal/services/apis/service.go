// Package apis implements fetch-one and create-or-update operations for
// single interface records, translating the flat caller-supplied parameter
// record into the remote service's expected shape.
package apis

import (
	"context"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/apidex/internal/interfaces"
	"github.com/ternarybob/apidex/internal/models"
)

// Service implements the InterfaceService interface.
type Service struct {
	client   interfaces.CatalogClient
	validate *validator.Validate
	logger   arbor.ILogger
}

// NewService creates a new interface service.
func NewService(client interfaces.CatalogClient, logger arbor.ILogger) *Service {
	validate := validator.New()
	// Validation errors must name the wire field the caller sent, not the
	// Go struct field.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	return &Service{
		client:   client,
		validate: validate,
		logger:   logger,
	}
}

// Get retrieves the full detail record for one interface. A missing
// interface surfaces as the remote service's own error.
func (s *Service) Get(ctx context.Context, projectID, interfaceID string) (*models.InterfaceDetail, error) {
	return s.client.GetInterface(ctx, projectID, interfaceID)
}

// Save validates and decodes the request, then routes to create when no
// id is supplied and to update otherwise. Nothing is submitted if any
// structured field fails to decode.
func (s *Service) Save(ctx context.Context, req *models.SaveRequest) (int, error) {
	if err := s.validate.Struct(req); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
			return 0, &models.ValidationError{
				Field:  fieldErrs[0].Field(),
				Reason: "required",
			}
		}
		return 0, err
	}

	payload, err := req.Decode()
	if err != nil {
		return 0, err
	}

	if req.ID == "" {
		id, err := s.client.AddInterface(ctx, req.ProjectID, payload)
		if err != nil {
			return 0, err
		}
		s.logger.Info().
			Int("id", id).
			Str("project_id", req.ProjectID).
			Str("path", req.Path).
			Msg("Interface created")
		return id, nil
	}

	id, err := s.client.UpdateInterface(ctx, req.ProjectID, payload)
	if err != nil {
		return 0, err
	}
	s.logger.Info().
		Int("id", id).
		Str("project_id", req.ProjectID).
		Str("path", req.Path).
		Msg("Interface updated")
	return id, nil
}

// Menu returns the project's full category→interface tree.
func (s *Service) Menu(ctx context.Context, projectID string) ([]models.MenuCategory, error) {
	return s.client.GetMenu(ctx, projectID)
}

// Ensure Service implements InterfaceService interface
var _ interfaces.InterfaceService = (*Service)(nil)
