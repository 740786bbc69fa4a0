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

type InspectionRequest struct {
	TaskID      *uint  `json:"task_id"`
	Date        string `json:"date"`
	Inspector   string `json:"inspector"`
	Snags       string `json:"snags"`
	Status      string `json:"status"`
	HSEIssues   string `json:"hse_issues"`
	Project     string `json:"project"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
	PhotoURL    string `json:"photo_url"`
}

type QualityStats struct {
	TotalInspections int64 `json:"total_inspections"`
	Open             int64 `json:"open"`
	Closed           int64 `json:"closed"`
	HSEIssues        int64 `json:"hse_issues"`
}

type QualityService interface {
	List(ctx context.Context, q listquery.Params) ([]repository.InspectionRow, int64, error)
	Get(ctx context.Context, id uint) (*repository.InspectionRow, error)
	Create(ctx context.Context, req InspectionRequest) (*repository.InspectionRow, error)
	Update(ctx context.Context, id uint, req InspectionRequest) (*repository.InspectionRow, error)
	Delete(ctx context.Context, id uint) error
	Stats(ctx context.Context) (*QualityStats, error)
}

type qualityService struct {
	db *gorm.DB
	tx repository.TransactionManager
}

func NewQualityService(db *gorm.DB, tx repository.TransactionManager) QualityService {
	return &qualityService{db: db, tx: tx}
}

func (s *qualityService) List(ctx context.Context, q listquery.Params) ([]repository.InspectionRow, int64, error) {
	rows, total, err := repository.ListPage[repository.InspectionRow](ctx, s.db, repository.InspectionListDef, q)
	if err != nil {
		return nil, 0, apperr.Internal("Failed to retrieve inspections", err)
	}
	return rows, total, nil
}

func (s *qualityService) Get(ctx context.Context, id uint) (*repository.InspectionRow, error) {
	row, err := repository.FindRowByID[repository.InspectionRow](ctx, s.db, repository.InspectionListDef, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Inspection not found")
		}
		return nil, apperr.Internal("Failed to retrieve inspection", err)
	}
	return row, nil
}

func (s *qualityService) apply(inspection *model.QualityInspection, req InspectionRequest) error {
	date, err := parseDate(req.Date)
	if err != nil {
		return apperr.Validation("Invalid date")
	}

	inspection.TaskID = req.TaskID
	inspection.Date = date
	inspection.Inspector = req.Inspector
	inspection.Snags = req.Snags
	inspection.HSEIssues = req.HSEIssues
	inspection.Project = req.Project
	inspection.Description = req.Description
	inspection.Severity = req.Severity
	inspection.PhotoURL = req.PhotoURL
	if req.Status != "" {
		inspection.Status = req.Status
	}
	return nil
}

func (s *qualityService) Create(ctx context.Context, req InspectionRequest) (*repository.InspectionRow, error) {
	inspection := model.QualityInspection{Status: "Open"}
	if err := s.apply(&inspection, req); err != nil {
		return nil, err
	}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		db := repository.GetDB(txCtx, s.db)
		inspectionID, err := repository.NextBusinessID(txCtx, db, repository.TableInspections, "INSP", false)
		if err != nil {
			return err
		}
		inspection.InspectionID = inspectionID
		return repository.Create(txCtx, db, &inspection)
	})
	if err != nil {
		return nil, apperr.Internal("Failed to create inspection", err)
	}
	return s.Get(ctx, inspection.ID)
}

func (s *qualityService) Update(ctx context.Context, id uint, req InspectionRequest) (*repository.InspectionRow, error) {
	inspection, err := repository.FindByID[model.QualityInspection](ctx, s.db, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Inspection not found")
		}
		return nil, apperr.Internal("Failed to update inspection", err)
	}
	if err := s.apply(inspection, req); err != nil {
		return nil, err
	}
	if err := repository.Save(ctx, s.db, inspection); err != nil {
		return nil, apperr.Internal("Failed to update inspection", err)
	}
	return s.Get(ctx, id)
}

func (s *qualityService) Delete(ctx context.Context, id uint) error {
	if _, err := repository.FindByID[model.QualityInspection](ctx, s.db, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Inspection not found")
		}
		return apperr.Internal("Failed to delete inspection", err)
	}
	if err := repository.DeleteByID[model.QualityInspection](ctx, s.db, id); err != nil {
		return apperr.Internal("Failed to delete inspection", err)
	}
	return nil
}

func (s *qualityService) Stats(ctx context.Context) (*QualityStats, error) {
	var stats QualityStats
	err := s.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) AS total_inspections,
			COALESCE(SUM(CASE WHEN status = 'Open' THEN 1 ELSE 0 END), 0) AS open,
			COALESCE(SUM(CASE WHEN status = 'Closed' THEN 1 ELSE 0 END), 0) AS closed,
			COALESCE(SUM(CASE WHEN hse_issues <> '' AND hse_issues <> 'None' THEN 1 ELSE 0 END), 0) AS hse_issues
		FROM quality_inspections
	`).Scan(&stats).Error
	if err != nil {
		return nil, apperr.Internal("Failed to retrieve quality statistics", err)
	}
	return &stats, nil
}
