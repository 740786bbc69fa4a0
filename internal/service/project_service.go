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

type ProjectRequest struct {
	Name        string          `json:"name" binding:"required"`
	Client      string          `json:"client" binding:"required"`
	Description string          `json:"description"`
	StartDate   string          `json:"start_date"`
	EndDate     string          `json:"end_date"`
	Budget      decimal.Decimal `json:"budget"`
	Status      string          `json:"status"`
	Priority    string          `json:"priority"`
	ManagerID   *uint           `json:"manager_id"`
}

type ProjectStats struct {
	TotalProjects int64           `json:"total_projects"`
	NotStarted    int64           `json:"not_started"`
	InProgress    int64           `json:"in_progress"`
	OnHold        int64           `json:"on_hold"`
	Completed     int64           `json:"completed"`
	TotalBudget   decimal.Decimal `json:"total_budget"`
}

type ProjectService interface {
	List(ctx context.Context, q listquery.Params) ([]repository.ProjectRow, int64, error)
	Get(ctx context.Context, id uint) (*repository.ProjectRow, error)
	Create(ctx context.Context, req ProjectRequest) (*repository.ProjectRow, error)
	Update(ctx context.Context, id uint, req ProjectRequest) (*repository.ProjectRow, error)
	Delete(ctx context.Context, id uint) error
	Stats(ctx context.Context) (*ProjectStats, error)
}

type projectService struct {
	db *gorm.DB
}

func NewProjectService(db *gorm.DB) ProjectService {
	return &projectService{db: db}
}

func (s *projectService) List(ctx context.Context, q listquery.Params) ([]repository.ProjectRow, int64, error) {
	rows, total, err := repository.ListPage[repository.ProjectRow](ctx, s.db, repository.ProjectListDef, q)
	if err != nil {
		return nil, 0, apperr.Internal("Failed to retrieve projects", err)
	}
	return rows, total, nil
}

func (s *projectService) Get(ctx context.Context, id uint) (*repository.ProjectRow, error) {
	row, err := repository.FindRowByID[repository.ProjectRow](ctx, s.db, repository.ProjectListDef, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Project not found")
		}
		return nil, apperr.Internal("Failed to retrieve project", err)
	}
	return row, nil
}

func (s *projectService) apply(project *model.Project, req ProjectRequest) error {
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return apperr.Validation("Invalid start_date")
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return apperr.Validation("Invalid end_date")
	}

	project.Name = req.Name
	project.Client = req.Client
	project.Description = req.Description
	project.StartDate = startDate
	project.EndDate = endDate
	project.Budget = req.Budget
	project.ManagerID = req.ManagerID
	if req.Status != "" {
		project.Status = req.Status
	}
	if req.Priority != "" {
		project.Priority = req.Priority
	}
	return nil
}

func (s *projectService) Create(ctx context.Context, req ProjectRequest) (*repository.ProjectRow, error) {
	project := model.Project{
		Status:   model.ProjectNotStarted,
		Priority: model.PriorityMedium,
	}
	if err := s.apply(&project, req); err != nil {
		return nil, err
	}

	if err := repository.Create(ctx, s.db, &project); err != nil {
		return nil, apperr.Internal("Failed to create project", err)
	}
	return s.Get(ctx, project.ID)
}

func (s *projectService) Update(ctx context.Context, id uint, req ProjectRequest) (*repository.ProjectRow, error) {
	project, err := repository.FindByID[model.Project](ctx, s.db, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Project not found")
		}
		return nil, apperr.Internal("Failed to update project", err)
	}

	if err := s.apply(project, req); err != nil {
		return nil, err
	}

	if err := repository.Save(ctx, s.db, project); err != nil {
		return nil, apperr.Internal("Failed to update project", err)
	}
	return s.Get(ctx, id)
}

func (s *projectService) Delete(ctx context.Context, id uint) error {
	if _, err := repository.FindByID[model.Project](ctx, s.db, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Project not found")
		}
		return apperr.Internal("Failed to delete project", err)
	}
	if err := repository.DeleteByID[model.Project](ctx, s.db, id); err != nil {
		return apperr.Internal("Failed to delete project", err)
	}
	return nil
}

func (s *projectService) Stats(ctx context.Context) (*ProjectStats, error) {
	var stats ProjectStats
	err := s.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) AS total_projects,
			COALESCE(SUM(CASE WHEN status = 'Not Started' THEN 1 ELSE 0 END), 0) AS not_started,
			COALESCE(SUM(CASE WHEN status = 'In Progress' THEN 1 ELSE 0 END), 0) AS in_progress,
			COALESCE(SUM(CASE WHEN status = 'On Hold' THEN 1 ELSE 0 END), 0) AS on_hold,
			COALESCE(SUM(CASE WHEN status = 'Completed' THEN 1 ELSE 0 END), 0) AS completed,
			COALESCE(SUM(budget), 0) AS total_budget
		FROM projects
	`).Scan(&stats).Error
	if err != nil {
		return nil, apperr.Internal("Failed to retrieve project statistics", err)
	}
	return &stats, nil
}
