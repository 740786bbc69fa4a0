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

type RiskRequest struct {
	ProjectID      *uint  `json:"project_id"`
	Description    string `json:"description" binding:"required"`
	Level          string `json:"level"`
	Impact         string `json:"impact"`
	MitigationPlan string `json:"mitigation_plan"`
	Owner          string `json:"owner"`
	Probability    string `json:"probability"`
	Status         string `json:"status"`
}

type RiskStats struct {
	TotalRisks int64 `json:"total_risks"`
	Open       int64 `json:"open"`
	Mitigated  int64 `json:"mitigated"`
	HighLevel  int64 `json:"high_level"`
}

type RiskService interface {
	List(ctx context.Context, q listquery.Params) ([]repository.RiskRow, int64, error)
	Get(ctx context.Context, id uint) (*repository.RiskRow, error)
	Create(ctx context.Context, req RiskRequest) (*repository.RiskRow, error)
	Update(ctx context.Context, id uint, req RiskRequest) (*repository.RiskRow, error)
	Delete(ctx context.Context, id uint) error
	Stats(ctx context.Context) (*RiskStats, error)
}

type riskService struct {
	db *gorm.DB
	tx repository.TransactionManager
}

func NewRiskService(db *gorm.DB, tx repository.TransactionManager) RiskService {
	return &riskService{db: db, tx: tx}
}

func (s *riskService) List(ctx context.Context, q listquery.Params) ([]repository.RiskRow, int64, error) {
	rows, total, err := repository.ListPage[repository.RiskRow](ctx, s.db, repository.RiskListDef, q)
	if err != nil {
		return nil, 0, apperr.Internal("Failed to retrieve risks", err)
	}
	return rows, total, nil
}

func (s *riskService) Get(ctx context.Context, id uint) (*repository.RiskRow, error) {
	row, err := repository.FindRowByID[repository.RiskRow](ctx, s.db, repository.RiskListDef, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Risk not found")
		}
		return nil, apperr.Internal("Failed to retrieve risk", err)
	}
	return row, nil
}

func (s *riskService) apply(risk *model.Risk, req RiskRequest) {
	risk.ProjectID = req.ProjectID
	risk.Description = req.Description
	risk.MitigationPlan = req.MitigationPlan
	risk.Owner = req.Owner
	risk.Probability = req.Probability
	if req.Level != "" {
		risk.Level = req.Level
	}
	if req.Impact != "" {
		risk.Impact = req.Impact
	}
	if req.Status != "" {
		risk.Status = req.Status
	}
}

func (s *riskService) Create(ctx context.Context, req RiskRequest) (*repository.RiskRow, error) {
	risk := model.Risk{Level: model.RiskMedium, Impact: model.RiskMedium, Status: model.RiskOpen}
	s.apply(&risk, req)

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		db := repository.GetDB(txCtx, s.db)
		riskID, err := repository.NextBusinessID(txCtx, db, repository.TableRisks, "RISK", false)
		if err != nil {
			return err
		}
		risk.RiskID = riskID
		return repository.Create(txCtx, db, &risk)
	})
	if err != nil {
		return nil, apperr.Internal("Failed to create risk", err)
	}
	return s.Get(ctx, risk.ID)
}

func (s *riskService) Update(ctx context.Context, id uint, req RiskRequest) (*repository.RiskRow, error) {
	risk, err := repository.FindByID[model.Risk](ctx, s.db, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Risk not found")
		}
		return nil, apperr.Internal("Failed to update risk", err)
	}
	s.apply(risk, req)
	if err := repository.Save(ctx, s.db, risk); err != nil {
		return nil, apperr.Internal("Failed to update risk", err)
	}
	return s.Get(ctx, id)
}

func (s *riskService) Delete(ctx context.Context, id uint) error {
	if _, err := repository.FindByID[model.Risk](ctx, s.db, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Risk not found")
		}
		return apperr.Internal("Failed to delete risk", err)
	}
	if err := repository.DeleteByID[model.Risk](ctx, s.db, id); err != nil {
		return apperr.Internal("Failed to delete risk", err)
	}
	return nil
}

func (s *riskService) Stats(ctx context.Context) (*RiskStats, error) {
	var stats RiskStats
	err := s.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) AS total_risks,
			COALESCE(SUM(CASE WHEN status = 'Open' THEN 1 ELSE 0 END), 0) AS open,
			COALESCE(SUM(CASE WHEN status = 'Mitigated' THEN 1 ELSE 0 END), 0) AS mitigated,
			COALESCE(SUM(CASE WHEN level = 'High' THEN 1 ELSE 0 END), 0) AS high_level
		FROM risks
	`).Scan(&stats).Error
	if err != nil {
		return nil, apperr.Internal("Failed to retrieve risk statistics", err)
	}
	return &stats, nil
}
