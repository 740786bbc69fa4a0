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

type ContractRequest struct {
	ProjectID    *uint           `json:"project_id"`
	Client       string          `json:"client" binding:"required"`
	ProjectName  string          `json:"project_name"`
	Value        decimal.Decimal `json:"value"`
	SignedDate   string          `json:"signed_date"`
	StartDate    string          `json:"start_date"`
	EndDate      string          `json:"end_date"`
	Manager      string          `json:"manager"`
	ClientRep    string          `json:"client_rep"`
	PaymentTerms string          `json:"payment_terms"`
	Status       string          `json:"status"`
}

type ContractStats struct {
	TotalContracts int64           `json:"total_contracts"`
	Active         int64           `json:"active"`
	Completed      int64           `json:"completed"`
	TotalValue     decimal.Decimal `json:"total_value"`
}

type ContractService interface {
	List(ctx context.Context, q listquery.Params) ([]model.Contract, int64, error)
	Get(ctx context.Context, id uint) (*model.Contract, error)
	Create(ctx context.Context, req ContractRequest) (*model.Contract, error)
	Update(ctx context.Context, id uint, req ContractRequest) (*model.Contract, error)
	Delete(ctx context.Context, id uint) error
	Stats(ctx context.Context) (*ContractStats, error)
}

type contractService struct {
	db *gorm.DB
}

func NewContractService(db *gorm.DB) ContractService {
	return &contractService{db: db}
}

func (s *contractService) List(ctx context.Context, q listquery.Params) ([]model.Contract, int64, error) {
	rows, total, err := repository.ListPage[model.Contract](ctx, s.db, repository.ContractListDef, q)
	if err != nil {
		return nil, 0, apperr.Internal("Failed to retrieve contracts", err)
	}
	return rows, total, nil
}

func (s *contractService) Get(ctx context.Context, id uint) (*model.Contract, error) {
	contract, err := repository.FindByID[model.Contract](ctx, s.db, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Contract not found")
		}
		return nil, apperr.Internal("Failed to retrieve contract", err)
	}
	return contract, nil
}

func (s *contractService) apply(contract *model.Contract, req ContractRequest) error {
	signedDate, err := parseDate(req.SignedDate)
	if err != nil {
		return apperr.Validation("Invalid signed_date")
	}
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return apperr.Validation("Invalid start_date")
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return apperr.Validation("Invalid end_date")
	}

	contract.ProjectID = req.ProjectID
	contract.Client = req.Client
	contract.ProjectName = req.ProjectName
	contract.Value = req.Value
	contract.SignedDate = signedDate
	contract.StartDate = startDate
	contract.EndDate = endDate
	contract.Manager = req.Manager
	contract.ClientRep = req.ClientRep
	contract.PaymentTerms = req.PaymentTerms
	if req.Status != "" {
		contract.Status = req.Status
	}
	return nil
}

func (s *contractService) Create(ctx context.Context, req ContractRequest) (*model.Contract, error) {
	contract := model.Contract{Status: model.ContractDraft}
	if err := s.apply(&contract, req); err != nil {
		return nil, err
	}

	contractID, err := repository.NextBusinessID(ctx, s.db, repository.TableContracts, "CON", false)
	if err != nil {
		return nil, apperr.Internal("Failed to create contract", err)
	}
	contract.ContractID = contractID

	if err := repository.Create(ctx, s.db, &contract); err != nil {
		return nil, apperr.Internal("Failed to create contract", err)
	}
	return &contract, nil
}

func (s *contractService) Update(ctx context.Context, id uint, req ContractRequest) (*model.Contract, error) {
	contract, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(contract, req); err != nil {
		return nil, err
	}
	if err := repository.Save(ctx, s.db, contract); err != nil {
		return nil, apperr.Internal("Failed to update contract", err)
	}
	return contract, nil
}

func (s *contractService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := repository.DeleteByID[model.Contract](ctx, s.db, id); err != nil {
		return apperr.Internal("Failed to delete contract", err)
	}
	return nil
}

func (s *contractService) Stats(ctx context.Context) (*ContractStats, error) {
	var stats ContractStats
	err := s.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) AS total_contracts,
			COALESCE(SUM(CASE WHEN status = 'Active' THEN 1 ELSE 0 END), 0) AS active,
			COALESCE(SUM(CASE WHEN status = 'Completed' THEN 1 ELSE 0 END), 0) AS completed,
			COALESCE(SUM(value), 0) AS total_value
		FROM contracts
	`).Scan(&stats).Error
	if err != nil {
		return nil, apperr.Internal("Failed to retrieve contract statistics", err)
	}
	return &stats, nil
}
