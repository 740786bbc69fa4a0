package service

import (
	"context"
	"errors"

	"backend/internal/model"
	"backend/internal/repository"
	"backend/pkg/apperr"
	"backend/pkg/listquery"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ResourceRequest struct {
	Name          string          `json:"name" binding:"required"`
	Role          string          `json:"role"`
	Subcontractor string          `json:"subcontractor"`
	Rate          decimal.Decimal `json:"rate"`
	Availability  string          `json:"availability"`
	AssignedTasks string          `json:"assigned_tasks"`
}

type ResourceStats struct {
	TotalResources int64 `json:"total_resources"`
	Available      int64 `json:"available"`
	Assigned       int64 `json:"assigned"`
	OnLeave        int64 `json:"on_leave"`
}

type ResourceService interface {
	List(ctx context.Context, q listquery.Params) ([]model.Resource, int64, error)
	Get(ctx context.Context, id uint) (*model.Resource, error)
	Create(ctx context.Context, req ResourceRequest) (*model.Resource, error)
	Update(ctx context.Context, id uint, req ResourceRequest) (*model.Resource, error)
	Delete(ctx context.Context, id uint) error
	Stats(ctx context.Context) (*ResourceStats, error)
}

type resourceService struct {
	db *gorm.DB
}

func NewResourceService(db *gorm.DB) ResourceService {
	return &resourceService{db: db}
}

func (s *resourceService) List(ctx context.Context, q listquery.Params) ([]model.Resource, int64, error) {
	rows, total, err := repository.ListPage[model.Resource](ctx, s.db, repository.ResourceListDef, q)
	if err != nil {
		return nil, 0, apperr.Internal("Failed to retrieve resources", err)
	}
	return rows, total, nil
}

func (s *resourceService) Get(ctx context.Context, id uint) (*model.Resource, error) {
	resource, err := repository.FindByID[model.Resource](ctx, s.db, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Resource not found")
		}
		return nil, apperr.Internal("Failed to retrieve resource", err)
	}
	return resource, nil
}

func (s *resourceService) apply(resource *model.Resource, req ResourceRequest) {
	resource.Name = req.Name
	resource.Role = req.Role
	resource.Subcontractor = req.Subcontractor
	resource.Rate = req.Rate
	resource.AssignedTasks = req.AssignedTasks
	if req.Availability != "" {
		resource.Availability = req.Availability
	}
}

func (s *resourceService) Create(ctx context.Context, req ResourceRequest) (*model.Resource, error) {
	resource := model.Resource{Availability: model.ResourceAvailable}
	s.apply(&resource, req)
	if err := repository.Create(ctx, s.db, &resource); err != nil {
		return nil, apperr.Internal("Failed to create resource", err)
	}
	return &resource, nil
}

func (s *resourceService) Update(ctx context.Context, id uint, req ResourceRequest) (*model.Resource, error) {
	resource, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.apply(resource, req)
	if err := repository.Save(ctx, s.db, resource); err != nil {
		return nil, apperr.Internal("Failed to update resource", err)
	}
	return resource, nil
}

func (s *resourceService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := repository.DeleteByID[model.Resource](ctx, s.db, id); err != nil {
		return apperr.Internal("Failed to delete resource", err)
	}
	return nil
}

func (s *resourceService) Stats(ctx context.Context) (*ResourceStats, error) {
	var stats ResourceStats
	err := s.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) AS total_resources,
			COALESCE(SUM(CASE WHEN availability = 'Available' THEN 1 ELSE 0 END), 0) AS available,
			COALESCE(SUM(CASE WHEN availability = 'Assigned' THEN 1 ELSE 0 END), 0) AS assigned,
			COALESCE(SUM(CASE WHEN availability = 'On Leave' THEN 1 ELSE 0 END), 0) AS on_leave
		FROM resources
	`).Scan(&stats).Error
	if err != nil {
		return nil, apperr.Internal("Failed to retrieve resource statistics", err)
	}
	return &stats, nil
}
