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

type JobCostRequest struct {
	ProjectID         *uint           `json:"project_id"`
	Project           string          `json:"project"`
	Task              string          `json:"task"`
	Resource          string          `json:"resource"`
	EstimatedLabor    decimal.Decimal `json:"estimated_labor"`
	EstimatedMaterial decimal.Decimal `json:"estimated_material"`
	Overhead          decimal.Decimal `json:"overhead"`
	ActualLabor       decimal.Decimal `json:"actual_labor"`
	ActualMaterial    decimal.Decimal `json:"actual_material"`
	ActualOverhead    decimal.Decimal `json:"actual_overhead"`
	Status            string          `json:"status"`
}

type JobCostStats struct {
	TotalJobs          int64           `json:"total_jobs"`
	TotalEstimatedCost decimal.Decimal `json:"total_estimated_cost"`
	TotalActualCost    decimal.Decimal `json:"total_actual_cost"`
	TotalVariance      decimal.Decimal `json:"total_variance"`
}

type JobCostService interface {
	List(ctx context.Context, q listquery.Params) ([]model.JobCost, int64, error)
	Get(ctx context.Context, id uint) (*model.JobCost, error)
	Create(ctx context.Context, req JobCostRequest) (*model.JobCost, error)
	Update(ctx context.Context, id uint, req JobCostRequest) (*model.JobCost, error)
	Delete(ctx context.Context, id uint) error
	Stats(ctx context.Context) (*JobCostStats, error)
}

type jobCostService struct {
	db *gorm.DB
	tx repository.TransactionManager
}

func NewJobCostService(db *gorm.DB, tx repository.TransactionManager) JobCostService {
	return &jobCostService{db: db, tx: tx}
}

func (s *jobCostService) List(ctx context.Context, q listquery.Params) ([]model.JobCost, int64, error) {
	rows, total, err := repository.ListPage[model.JobCost](ctx, s.db, repository.JobCostListDef, q)
	if err != nil {
		return nil, 0, apperr.Internal("Failed to retrieve job costs", err)
	}
	return rows, total, nil
}

func (s *jobCostService) Get(ctx context.Context, id uint) (*model.JobCost, error) {
	jobCost, err := repository.FindByID[model.JobCost](ctx, s.db, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Job cost not found")
		}
		return nil, apperr.Internal("Failed to retrieve job cost", err)
	}
	return jobCost, nil
}

// apply copies the request onto the record and recomputes the derived totals:
// estimated = labor + material + overhead, actual likewise, variance =
// estimated - actual.
func (s *jobCostService) apply(jobCost *model.JobCost, req JobCostRequest) {
	jobCost.ProjectID = req.ProjectID
	jobCost.Project = req.Project
	jobCost.Task = req.Task
	jobCost.Resource = req.Resource
	jobCost.EstimatedLabor = req.EstimatedLabor
	jobCost.EstimatedMaterial = req.EstimatedMaterial
	jobCost.Overhead = req.Overhead
	jobCost.ActualLabor = req.ActualLabor
	jobCost.ActualMaterial = req.ActualMaterial
	jobCost.ActualOverhead = req.ActualOverhead
	if req.Status != "" {
		jobCost.Status = req.Status
	}

	jobCost.EstimatedCost = req.EstimatedLabor.Add(req.EstimatedMaterial).Add(req.Overhead)
	jobCost.ActualCost = req.ActualLabor.Add(req.ActualMaterial).Add(req.ActualOverhead)
	jobCost.Variance = jobCost.EstimatedCost.Sub(jobCost.ActualCost)
}

func (s *jobCostService) Create(ctx context.Context, req JobCostRequest) (*model.JobCost, error) {
	jobCost := model.JobCost{Status: "Open"}
	s.apply(&jobCost, req)

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		db := repository.GetDB(txCtx, s.db)
		jobID, err := repository.NextBusinessID(txCtx, db, repository.TableJobCosts, "JC", false)
		if err != nil {
			return err
		}
		jobCost.JobID = jobID
		return repository.Create(txCtx, db, &jobCost)
	})
	if err != nil {
		return nil, apperr.Internal("Failed to create job cost", err)
	}
	return &jobCost, nil
}

func (s *jobCostService) Update(ctx context.Context, id uint, req JobCostRequest) (*model.JobCost, error) {
	jobCost, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.apply(jobCost, req)
	if err := repository.Save(ctx, s.db, jobCost); err != nil {
		return nil, apperr.Internal("Failed to update job cost", err)
	}
	return jobCost, nil
}

func (s *jobCostService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := repository.DeleteByID[model.JobCost](ctx, s.db, id); err != nil {
		return apperr.Internal("Failed to delete job cost", err)
	}
	return nil
}

func (s *jobCostService) Stats(ctx context.Context) (*JobCostStats, error) {
	var stats JobCostStats
	err := s.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) AS total_jobs,
			COALESCE(SUM(estimated_cost), 0) AS total_estimated_cost,
			COALESCE(SUM(actual_cost), 0) AS total_actual_cost,
			COALESCE(SUM(variance), 0) AS total_variance
		FROM job_costs
	`).Scan(&stats).Error
	if err != nil {
		return nil, apperr.Internal("Failed to retrieve job cost statistics", err)
	}
	return &stats, nil
}
