package service

import (
	"context"
	"errors"

	"backend/internal/model"
	"backend/internal/repository"
	"backend/pkg/apperr"
	"backend/pkg/listquery"

	"gorm.io/gorm"
)

type MilestoneRequest struct {
	ProjectID   uint   `json:"project_id" binding:"required"`
	Name        string `json:"name" binding:"required"`
	PlannedDate string `json:"planned_date"`
	ActualDate  string `json:"actual_date"`
	Status      string `json:"status"`
}

type MilestoneStats struct {
	TotalMilestones int64 `json:"total_milestones"`
	Pending         int64 `json:"pending"`
	Achieved        int64 `json:"achieved"`
	Missed          int64 `json:"missed"`
}

type MilestoneService interface {
	List(ctx context.Context, q listquery.Params) ([]repository.MilestoneRow, int64, error)
	Get(ctx context.Context, id uint) (*repository.MilestoneRow, error)
	Create(ctx context.Context, req MilestoneRequest) (*repository.MilestoneRow, error)
	Update(ctx context.Context, id uint, req MilestoneRequest) (*repository.MilestoneRow, error)
	Delete(ctx context.Context, id uint) error
	Stats(ctx context.Context) (*MilestoneStats, error)
}

type milestoneService struct {
	db *gorm.DB
}

func NewMilestoneService(db *gorm.DB) MilestoneService {
	return &milestoneService{db: db}
}

func (s *milestoneService) List(ctx context.Context, q listquery.Params) ([]repository.MilestoneRow, int64, error) {
	rows, total, err := repository.ListPage[repository.MilestoneRow](ctx, s.db, repository.MilestoneListDef, q)
	if err != nil {
		return nil, 0, apperr.Internal("Failed to retrieve milestones", err)
	}
	return rows, total, nil
}

func (s *milestoneService) Get(ctx context.Context, id uint) (*repository.MilestoneRow, error) {
	row, err := repository.FindRowByID[repository.MilestoneRow](ctx, s.db, repository.MilestoneListDef, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Milestone not found")
		}
		return nil, apperr.Internal("Failed to retrieve milestone", err)
	}
	return row, nil
}

func (s *milestoneService) apply(milestone *model.Milestone, req MilestoneRequest) error {
	plannedDate, err := parseDate(req.PlannedDate)
	if err != nil {
		return apperr.Validation("Invalid planned_date")
	}
	actualDate, err := parseDate(req.ActualDate)
	if err != nil {
		return apperr.Validation("Invalid actual_date")
	}

	milestone.ProjectID = req.ProjectID
	milestone.Name = req.Name
	milestone.PlannedDate = plannedDate
	milestone.ActualDate = actualDate
	if req.Status != "" {
		milestone.Status = req.Status
	}
	return nil
}

func (s *milestoneService) Create(ctx context.Context, req MilestoneRequest) (*repository.MilestoneRow, error) {
	milestone := model.Milestone{Status: "Pending"}
	if err := s.apply(&milestone, req); err != nil {
		return nil, err
	}
	if err := repository.Create(ctx, s.db, &milestone); err != nil {
		return nil, apperr.Internal("Failed to create milestone", err)
	}
	return s.Get(ctx, milestone.ID)
}

func (s *milestoneService) Update(ctx context.Context, id uint, req MilestoneRequest) (*repository.MilestoneRow, error) {
	milestone, err := repository.FindByID[model.Milestone](ctx, s.db, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Milestone not found")
		}
		return nil, apperr.Internal("Failed to update milestone", err)
	}
	if err := s.apply(milestone, req); err != nil {
		return nil, err
	}
	if err := repository.Save(ctx, s.db, milestone); err != nil {
		return nil, apperr.Internal("Failed to update milestone", err)
	}
	return s.Get(ctx, id)
}

func (s *milestoneService) Delete(ctx context.Context, id uint) error {
	if _, err := repository.FindByID[model.Milestone](ctx, s.db, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Milestone not found")
		}
		return apperr.Internal("Failed to delete milestone", err)
	}
	if err := repository.DeleteByID[model.Milestone](ctx, s.db, id); err != nil {
		return apperr.Internal("Failed to delete milestone", err)
	}
	return nil
}

func (s *milestoneService) Stats(ctx context.Context) (*MilestoneStats, error) {
	var stats MilestoneStats
	err := s.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) AS total_milestones,
			COALESCE(SUM(CASE WHEN status = 'Pending' THEN 1 ELSE 0 END), 0) AS pending,
			COALESCE(SUM(CASE WHEN status = 'Achieved' THEN 1 ELSE 0 END), 0) AS achieved,
			COALESCE(SUM(CASE WHEN status = 'Missed' THEN 1 ELSE 0 END), 0) AS missed
		FROM milestones
	`).Scan(&stats).Error
	if err != nil {
		return nil, apperr.Internal("Failed to retrieve milestone statistics", err)
	}
	return &stats, nil
}
