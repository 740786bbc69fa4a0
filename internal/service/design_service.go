package service

import (
	"context"
	"errors"
	"mime/multipart"

	"backend/internal/model"
	"backend/internal/repository"
	"backend/internal/storage"
	"backend/pkg/apperr"
	"backend/pkg/listquery"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// 25 MB upload ceiling for drawing files.
const maxDrawingSize = 25 << 20

type DrawingRequest struct {
	ProjectID      *uint  `json:"project_id" form:"project_id"`
	ContractID     *uint  `json:"contract_id" form:"contract_id"`
	Stage          string `json:"stage" form:"stage"`
	FileName       string `json:"file_name" form:"file_name"`
	SubmissionDate string `json:"submission_date" form:"submission_date"`
	Status         string `json:"status" form:"status"`
}

type DesignStats struct {
	TotalDrawings int64 `json:"total_drawings"`
	Submitted     int64 `json:"submitted"`
	Approved      int64 `json:"approved"`
	Rejected      int64 `json:"rejected"`
}

type DesignService interface {
	List(ctx context.Context, q listquery.Params) ([]repository.DrawingRow, int64, error)
	Get(ctx context.Context, id uint) (*repository.DrawingRow, error)
	Create(ctx context.Context, req DrawingRequest, file *multipart.FileHeader) (*repository.DrawingRow, error)
	Update(ctx context.Context, id uint, req DrawingRequest) (*repository.DrawingRow, error)
	Delete(ctx context.Context, id uint) error
	Stats(ctx context.Context) (*DesignStats, error)
}

type designService struct {
	db    *gorm.DB
	tx    repository.TransactionManager
	blobs storage.BlobStore
}

func NewDesignService(db *gorm.DB, tx repository.TransactionManager, blobs storage.BlobStore) DesignService {
	return &designService{db: db, tx: tx, blobs: blobs}
}

func (s *designService) List(ctx context.Context, q listquery.Params) ([]repository.DrawingRow, int64, error) {
	rows, total, err := repository.ListPage[repository.DrawingRow](ctx, s.db, repository.DrawingListDef, q)
	if err != nil {
		return nil, 0, apperr.Internal("Failed to retrieve drawings", err)
	}
	return rows, total, nil
}

func (s *designService) Get(ctx context.Context, id uint) (*repository.DrawingRow, error) {
	row, err := repository.FindRowByID[repository.DrawingRow](ctx, s.db, repository.DrawingListDef, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Drawing not found")
		}
		return nil, apperr.Internal("Failed to retrieve drawing", err)
	}
	return row, nil
}

// Create stores the uploaded file first, then writes the record; if the
// database write fails the stored blob is removed so the store does not leak
// orphans.
func (s *designService) Create(ctx context.Context, req DrawingRequest, file *multipart.FileHeader) (*repository.DrawingRow, error) {
	if file == nil {
		return nil, apperr.Validation("Drawing file is required")
	}
	if file.Size > maxDrawingSize {
		return nil, apperr.Validation("Drawing file exceeds the 25MB limit")
	}
	submissionDate, err := parseDate(req.SubmissionDate)
	if err != nil {
		return nil, apperr.Validation("Invalid submission_date")
	}

	stored, err := s.blobs.Store(file, "drawings")
	if err != nil {
		return nil, apperr.Internal("Failed to store drawing file", err)
	}

	fileName := req.FileName
	if fileName == "" {
		fileName = file.Filename
	}
	drawing := model.Drawing{
		ProjectID:      req.ProjectID,
		ContractID:     req.ContractID,
		Stage:          req.Stage,
		FileName:       fileName,
		FileURL:        stored.URL,
		FileSize:       stored.Size,
		SubmissionDate: submissionDate,
		Status:         "Submitted",
		StorageID:      stored.StorageID,
	}
	if req.Status != "" {
		drawing.Status = req.Status
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		db := repository.GetDB(txCtx, s.db)
		drawingID, err := repository.NextBusinessID(txCtx, db, repository.TableDrawings, "DRW", false)
		if err != nil {
			return err
		}
		drawing.DrawingID = drawingID
		return repository.Create(txCtx, db, &drawing)
	})
	if err != nil {
		if rmErr := s.blobs.Remove(stored.StorageID); rmErr != nil {
			log.Warn().Err(rmErr).Str("storage_id", stored.StorageID).Msg("orphan blob left after failed drawing insert")
		}
		return nil, apperr.Internal("Failed to create drawing", err)
	}
	return s.Get(ctx, drawing.ID)
}

func (s *designService) Update(ctx context.Context, id uint, req DrawingRequest) (*repository.DrawingRow, error) {
	drawing, err := repository.FindByID[model.Drawing](ctx, s.db, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Drawing not found")
		}
		return nil, apperr.Internal("Failed to update drawing", err)
	}

	submissionDate, err := parseDate(req.SubmissionDate)
	if err != nil {
		return nil, apperr.Validation("Invalid submission_date")
	}
	drawing.ProjectID = req.ProjectID
	drawing.ContractID = req.ContractID
	drawing.Stage = req.Stage
	drawing.SubmissionDate = submissionDate
	if req.FileName != "" {
		drawing.FileName = req.FileName
	}
	if req.Status != "" {
		drawing.Status = req.Status
	}

	if err := repository.Save(ctx, s.db, drawing); err != nil {
		return nil, apperr.Internal("Failed to update drawing", err)
	}
	return s.Get(ctx, id)
}

func (s *designService) Delete(ctx context.Context, id uint) error {
	drawing, err := repository.FindByID[model.Drawing](ctx, s.db, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Drawing not found")
		}
		return apperr.Internal("Failed to delete drawing", err)
	}
	if err := repository.DeleteByID[model.Drawing](ctx, s.db, id); err != nil {
		return apperr.Internal("Failed to delete drawing", err)
	}
	// Remove the blob after the row is gone; a failed removal only leaks a
	// file, never a dangling record.
	if err := s.blobs.Remove(drawing.StorageID); err != nil {
		log.Warn().Err(err).Uint("drawing_id", id).Msg("stored file not removed with drawing")
	}
	return nil
}

func (s *designService) Stats(ctx context.Context) (*DesignStats, error) {
	var stats DesignStats
	err := s.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) AS total_drawings,
			COALESCE(SUM(CASE WHEN status = 'Submitted' THEN 1 ELSE 0 END), 0) AS submitted,
			COALESCE(SUM(CASE WHEN status = 'Approved' THEN 1 ELSE 0 END), 0) AS approved,
			COALESCE(SUM(CASE WHEN status = 'Rejected' THEN 1 ELSE 0 END), 0) AS rejected
		FROM drawings
	`).Scan(&stats).Error
	if err != nil {
		return nil, apperr.Internal("Failed to retrieve design statistics", err)
	}
	return &stats, nil
}
