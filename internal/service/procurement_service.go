package service

import (
	"context"
	"errors"
	"fmt"

	"backend/internal/model"
	"backend/internal/repository"
	"backend/pkg/apperr"
	"backend/pkg/listquery"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type MaterialRequest struct {
	Name        string          `json:"name" binding:"required"`
	ProjectID   *uint           `json:"project_id"`
	Supplier    string          `json:"supplier"`
	Qty         decimal.Decimal `json:"qty"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	PONo        string          `json:"po_no"`
	PlannedDate string          `json:"planned_date"`
	ActualDate  string          `json:"actual_date"`
	Status      string          `json:"status"`
	Notes       string          `json:"notes"`
}

type GRNRequest struct {
	MaterialID        uint            `json:"material_id" binding:"required"`
	ReceiptDate       string          `json:"receipt_date"`
	ReceivedQty       decimal.Decimal `json:"received_qty"`
	ReceivedCondition string          `json:"received_condition"`
	InspectedBy       string          `json:"inspected_by"`
	StorageLocation   string          `json:"storage_location"`
	Notes             string          `json:"notes"`
}

type ProcurementStats struct {
	TotalMaterials int64           `json:"total_materials"`
	Planned        int64           `json:"planned"`
	Ordered        int64           `json:"ordered"`
	Delivered      int64           `json:"delivered"`
	TotalValue     decimal.Decimal `json:"total_value"`
}

type ProcurementService interface {
	ListMaterials(ctx context.Context, q listquery.Params) ([]repository.MaterialRow, int64, error)
	GetMaterial(ctx context.Context, id uint) (*repository.MaterialRow, error)
	CreateMaterial(ctx context.Context, req MaterialRequest) (*repository.MaterialRow, error)
	UpdateMaterial(ctx context.Context, id uint, req MaterialRequest) (*repository.MaterialRow, error)
	DeleteMaterial(ctx context.Context, id uint) error
	GeneratePONumber(ctx context.Context, id uint) (*repository.MaterialRow, error)

	ListGRNs(ctx context.Context, q listquery.Params) ([]repository.GRNRow, int64, error)
	CreateGRN(ctx context.Context, req GRNRequest) (*model.GRN, error)

	Stats(ctx context.Context) (*ProcurementStats, error)
}

type procurementService struct {
	db *gorm.DB
	tx repository.TransactionManager
}

func NewProcurementService(db *gorm.DB, tx repository.TransactionManager) ProcurementService {
	return &procurementService{db: db, tx: tx}
}

func (s *procurementService) ListMaterials(ctx context.Context, q listquery.Params) ([]repository.MaterialRow, int64, error) {
	rows, total, err := repository.ListPage[repository.MaterialRow](ctx, s.db, repository.MaterialListDef, q)
	if err != nil {
		return nil, 0, apperr.Internal("Failed to retrieve materials", err)
	}
	return rows, total, nil
}

func (s *procurementService) GetMaterial(ctx context.Context, id uint) (*repository.MaterialRow, error) {
	row, err := repository.FindRowByID[repository.MaterialRow](ctx, s.db, repository.MaterialListDef, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Material not found")
		}
		return nil, apperr.Internal("Failed to retrieve material", err)
	}
	return row, nil
}

func (s *procurementService) applyMaterial(material *model.Material, req MaterialRequest) error {
	plannedDate, err := parseDate(req.PlannedDate)
	if err != nil {
		return apperr.Validation("Invalid planned_date")
	}
	actualDate, err := parseDate(req.ActualDate)
	if err != nil {
		return apperr.Validation("Invalid actual_date")
	}

	material.Name = req.Name
	material.ProjectID = req.ProjectID
	material.Supplier = req.Supplier
	material.Qty = req.Qty
	material.UnitCost = req.UnitCost
	material.PONo = req.PONo
	material.PlannedDate = plannedDate
	material.ActualDate = actualDate
	material.Notes = req.Notes
	if req.Status != "" {
		material.Status = req.Status
	}
	return nil
}

func (s *procurementService) CreateMaterial(ctx context.Context, req MaterialRequest) (*repository.MaterialRow, error) {
	material := model.Material{Status: model.MaterialPlanned}
	if err := s.applyMaterial(&material, req); err != nil {
		return nil, err
	}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		db := repository.GetDB(txCtx, s.db)
		materialID, err := repository.NextBusinessID(txCtx, db, repository.TableMaterials, "MAT", false)
		if err != nil {
			return err
		}
		material.MaterialID = materialID
		return repository.Create(txCtx, db, &material)
	})
	if err != nil {
		return nil, apperr.Internal("Failed to create material", err)
	}
	return s.GetMaterial(ctx, material.ID)
}

func (s *procurementService) UpdateMaterial(ctx context.Context, id uint, req MaterialRequest) (*repository.MaterialRow, error) {
	material, err := repository.FindByID[model.Material](ctx, s.db, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Material not found")
		}
		return nil, apperr.Internal("Failed to update material", err)
	}
	if err := s.applyMaterial(material, req); err != nil {
		return nil, err
	}
	if err := repository.Save(ctx, s.db, material); err != nil {
		return nil, apperr.Internal("Failed to update material", err)
	}
	return s.GetMaterial(ctx, id)
}

func (s *procurementService) DeleteMaterial(ctx context.Context, id uint) error {
	if _, err := repository.FindByID[model.Material](ctx, s.db, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Material not found")
		}
		return apperr.Internal("Failed to delete material", err)
	}
	if err := repository.DeleteByID[model.Material](ctx, s.db, id); err != nil {
		return apperr.Internal("Failed to delete material", err)
	}
	return nil
}

// GeneratePONumber assigns the next sequential purchase-order number to a
// material that does not have one yet and moves it to Ordered.
func (s *procurementService) GeneratePONumber(ctx context.Context, id uint) (*repository.MaterialRow, error) {
	material, err := repository.FindByID[model.Material](ctx, s.db, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Material not found")
		}
		return nil, apperr.Internal("Failed to generate PO number", err)
	}
	if material.PONo != "" {
		return nil, apperr.Validation("Material already has a PO number")
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		db := repository.GetDB(txCtx, s.db)
		var maxPO int64
		if err := db.WithContext(txCtx).Raw(
			"SELECT COUNT(*) FROM materials WHERE po_no <> ''",
		).Scan(&maxPO).Error; err != nil {
			return err
		}
		material.PONo = fmt.Sprintf("PO-%03d", maxPO+1)
		material.Status = model.MaterialOrdered
		return repository.Save(txCtx, db, material)
	})
	if err != nil {
		return nil, apperr.Internal("Failed to generate PO number", err)
	}
	return s.GetMaterial(ctx, id)
}

func (s *procurementService) ListGRNs(ctx context.Context, q listquery.Params) ([]repository.GRNRow, int64, error) {
	rows, total, err := repository.ListPage[repository.GRNRow](ctx, s.db, repository.GRNListDef, q)
	if err != nil {
		return nil, 0, apperr.Internal("Failed to retrieve goods received notes", err)
	}
	return rows, total, nil
}

// CreateGRN records a delivery against a material and marks the material
// Delivered in the same transaction.
func (s *procurementService) CreateGRN(ctx context.Context, req GRNRequest) (*model.GRN, error) {
	receiptDate, err := parseDate(req.ReceiptDate)
	if err != nil {
		return nil, apperr.Validation("Invalid receipt_date")
	}

	material, err := repository.FindByID[model.Material](ctx, s.db, req.MaterialID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Material not found")
		}
		return nil, apperr.Internal("Failed to create goods received note", err)
	}

	grn := model.GRN{
		MaterialID:        material.ID,
		ReceiptDate:       receiptDate,
		ReceivedQty:       req.ReceivedQty,
		ReceivedCondition: req.ReceivedCondition,
		InspectedBy:       req.InspectedBy,
		StorageLocation:   req.StorageLocation,
		Notes:             req.Notes,
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		db := repository.GetDB(txCtx, s.db)
		grnNumber, err := repository.NextBusinessID(txCtx, db, repository.TableGRNs, "GRN", false)
		if err != nil {
			return err
		}
		grn.GRNNumber = grnNumber
		if err := repository.Create(txCtx, db, &grn); err != nil {
			return err
		}
		material.Status = model.MaterialDelivered
		return repository.Save(txCtx, db, material)
	})
	if err != nil {
		return nil, apperr.Internal("Failed to create goods received note", err)
	}
	return &grn, nil
}

func (s *procurementService) Stats(ctx context.Context) (*ProcurementStats, error) {
	var stats ProcurementStats
	err := s.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) AS total_materials,
			COALESCE(SUM(CASE WHEN status = 'Planned' THEN 1 ELSE 0 END), 0) AS planned,
			COALESCE(SUM(CASE WHEN status = 'Ordered' THEN 1 ELSE 0 END), 0) AS ordered,
			COALESCE(SUM(CASE WHEN status = 'Delivered' THEN 1 ELSE 0 END), 0) AS delivered,
			COALESCE(SUM(qty * unit_cost), 0) AS total_value
		FROM materials
	`).Scan(&stats).Error
	if err != nil {
		return nil, apperr.Internal("Failed to retrieve procurement statistics", err)
	}
	return &stats, nil
}
