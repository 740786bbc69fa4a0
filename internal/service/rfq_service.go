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

type RFQRequest struct {
	Client        string          `json:"client" binding:"required"`
	Project       string          `json:"project"`
	Date          string          `json:"date"`
	Location      string          `json:"location"`
	Value         decimal.Decimal `json:"value"`
	ScopeSummary  string          `json:"scope_summary"`
	ContactPerson string          `json:"contact_person"`
	ContactEmail  string          `json:"contact_email" binding:"omitempty,email"`
	ContactPhone  string          `json:"contact_phone"`
	Deadline      string          `json:"deadline"`
	Notes         string          `json:"notes"`
	Status        string          `json:"status"`
}

type RFQStats struct {
	TotalRFQs  int64           `json:"total_rfqs"`
	Open       int64           `json:"open"`
	Quoted     int64           `json:"quoted"`
	Won        int64           `json:"won"`
	TotalValue decimal.Decimal `json:"total_value"`
}

type RFQService interface {
	List(ctx context.Context, q listquery.Params) ([]model.RFQ, int64, error)
	Get(ctx context.Context, id uint) (*model.RFQ, error)
	Create(ctx context.Context, req RFQRequest) (*model.RFQ, error)
	Update(ctx context.Context, id uint, req RFQRequest) (*model.RFQ, error)
	Delete(ctx context.Context, id uint) error
	Stats(ctx context.Context) (*RFQStats, error)
}

type rfqService struct {
	db *gorm.DB
}

func NewRFQService(db *gorm.DB) RFQService {
	return &rfqService{db: db}
}

func (s *rfqService) List(ctx context.Context, q listquery.Params) ([]model.RFQ, int64, error) {
	rows, total, err := repository.ListPage[model.RFQ](ctx, s.db, repository.RFQListDef, q)
	if err != nil {
		return nil, 0, apperr.Internal("Failed to retrieve RFQs", err)
	}
	return rows, total, nil
}

func (s *rfqService) Get(ctx context.Context, id uint) (*model.RFQ, error) {
	rfq, err := repository.FindByID[model.RFQ](ctx, s.db, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("RFQ not found")
		}
		return nil, apperr.Internal("Failed to retrieve RFQ", err)
	}
	return rfq, nil
}

func (s *rfqService) apply(rfq *model.RFQ, req RFQRequest) error {
	date, err := parseDate(req.Date)
	if err != nil {
		return apperr.Validation("Invalid date")
	}
	deadline, err := parseDate(req.Deadline)
	if err != nil {
		return apperr.Validation("Invalid deadline")
	}

	rfq.Client = req.Client
	rfq.Project = req.Project
	rfq.Date = date
	rfq.Location = req.Location
	rfq.Value = req.Value
	rfq.ScopeSummary = req.ScopeSummary
	rfq.ContactPerson = req.ContactPerson
	rfq.ContactEmail = req.ContactEmail
	rfq.ContactPhone = req.ContactPhone
	rfq.Deadline = deadline
	rfq.Notes = req.Notes
	if req.Status != "" {
		rfq.Status = req.Status
	}
	return nil
}

func (s *rfqService) Create(ctx context.Context, req RFQRequest) (*model.RFQ, error) {
	rfq := model.RFQ{Status: "Open"}
	if err := s.apply(&rfq, req); err != nil {
		return nil, err
	}

	rfqID, err := repository.NextBusinessID(ctx, s.db, repository.TableRFQs, "RFQ", false)
	if err != nil {
		return nil, apperr.Internal("Failed to create RFQ", err)
	}
	rfq.RFQID = rfqID

	if err := repository.Create(ctx, s.db, &rfq); err != nil {
		return nil, apperr.Internal("Failed to create RFQ", err)
	}
	return &rfq, nil
}

func (s *rfqService) Update(ctx context.Context, id uint, req RFQRequest) (*model.RFQ, error) {
	rfq, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(rfq, req); err != nil {
		return nil, err
	}
	if err := repository.Save(ctx, s.db, rfq); err != nil {
		return nil, apperr.Internal("Failed to update RFQ", err)
	}
	return rfq, nil
}

func (s *rfqService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := repository.DeleteByID[model.RFQ](ctx, s.db, id); err != nil {
		return apperr.Internal("Failed to delete RFQ", err)
	}
	return nil
}

func (s *rfqService) Stats(ctx context.Context) (*RFQStats, error) {
	var stats RFQStats
	err := s.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) AS total_rfqs,
			COALESCE(SUM(CASE WHEN status = 'Open' THEN 1 ELSE 0 END), 0) AS open,
			COALESCE(SUM(CASE WHEN status = 'Quoted' THEN 1 ELSE 0 END), 0) AS quoted,
			COALESCE(SUM(CASE WHEN status = 'Won' THEN 1 ELSE 0 END), 0) AS won,
			COALESCE(SUM(value), 0) AS total_value
		FROM rfqs
	`).Scan(&stats).Error
	if err != nil {
		return nil, apperr.Internal("Failed to retrieve RFQ statistics", err)
	}
	return &stats, nil
}
