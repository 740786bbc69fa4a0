package service

import (
	"context"
	"errors"
	"time"

	"backend/internal/repository"
	"backend/pkg/apperr"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProjectReport is the aggregate snapshot a project report endpoint returns:
// the project header plus rollups across its tasks, milestones, risks and
// finances.
type ProjectReport struct {
	Project     *repository.ProjectRow `json:"project"`
	GeneratedAt time.Time              `json:"generated_at"`

	Tasks struct {
		Total       int64   `json:"total"`
		Completed   int64   `json:"completed"`
		InProgress  int64   `json:"in_progress"`
		AvgProgress float64 `json:"avg_progress"`
	} `json:"tasks"`

	Milestones struct {
		Total    int64 `json:"total"`
		Achieved int64 `json:"achieved"`
	} `json:"milestones"`

	Risks struct {
		Total int64 `json:"total"`
		Open  int64 `json:"open"`
		High  int64 `json:"high"`
	} `json:"risks"`

	Financials *ProjectFinancials `json:"financials"`
}

// DashboardStats is the landing-page rollup across all modules.
type DashboardStats struct {
	TotalProjects  int64           `json:"total_projects"`
	ActiveProjects int64           `json:"active_projects"`
	TotalTasks     int64           `json:"total_tasks"`
	OpenTasks      int64           `json:"open_tasks"`
	TotalInvoiced  decimal.Decimal `json:"total_invoiced"`
	TotalPaid      decimal.Decimal `json:"total_paid"`
	OpenRisks      int64           `json:"open_risks"`
	PendingRFQs    int64           `json:"pending_rfqs"`
}

type ReportService interface {
	ProjectReport(ctx context.Context, projectID uint) (*ProjectReport, error)
	Dashboard(ctx context.Context) (*DashboardStats, error)
}

type reportService struct {
	db        *gorm.DB
	financial FinancialService
}

func NewReportService(db *gorm.DB, financial FinancialService) ReportService {
	return &reportService{db: db, financial: financial}
}

func (s *reportService) ProjectReport(ctx context.Context, projectID uint) (*ProjectReport, error) {
	project, err := repository.FindRowByID[repository.ProjectRow](ctx, s.db, repository.ProjectListDef, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Project not found")
		}
		return nil, apperr.Internal("Failed to generate project report", err)
	}

	report := &ProjectReport{Project: project, GeneratedAt: time.Now().UTC()}

	err = s.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN status = 'Completed' THEN 1 ELSE 0 END), 0) AS completed,
			COALESCE(SUM(CASE WHEN status = 'In Progress' THEN 1 ELSE 0 END), 0) AS in_progress,
			COALESCE(AVG(progress), 0) AS avg_progress
		FROM tasks WHERE project_id = ?
	`, projectID).Scan(&report.Tasks).Error
	if err != nil {
		return nil, apperr.Internal("Failed to generate project report", err)
	}

	err = s.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN status = 'Achieved' THEN 1 ELSE 0 END), 0) AS achieved
		FROM milestones WHERE project_id = ?
	`, projectID).Scan(&report.Milestones).Error
	if err != nil {
		return nil, apperr.Internal("Failed to generate project report", err)
	}

	err = s.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN status = 'Open' THEN 1 ELSE 0 END), 0) AS open,
			COALESCE(SUM(CASE WHEN level = 'High' THEN 1 ELSE 0 END), 0) AS high
		FROM risks WHERE project_id = ?
	`, projectID).Scan(&report.Risks).Error
	if err != nil {
		return nil, apperr.Internal("Failed to generate project report", err)
	}

	financials, err := s.financial.GetProjectFinancials(ctx, projectID)
	if err != nil {
		return nil, err
	}
	report.Financials = financials

	return report, nil
}

func (s *reportService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats

	err := s.db.WithContext(ctx).Raw(`
		SELECT
			(SELECT COUNT(*) FROM projects) AS total_projects,
			(SELECT COUNT(*) FROM projects WHERE status = 'In Progress') AS active_projects,
			(SELECT COUNT(*) FROM tasks) AS total_tasks,
			(SELECT COUNT(*) FROM tasks WHERE status <> 'Completed') AS open_tasks,
			(SELECT COALESCE(SUM(amount), 0) FROM invoices) AS total_invoiced,
			(SELECT COALESCE(SUM(amount), 0) FROM payments) AS total_paid,
			(SELECT COUNT(*) FROM risks WHERE status = 'Open') AS open_risks,
			(SELECT COUNT(*) FROM rfqs WHERE status = 'Pending') AS pending_rfqs
	`).Scan(&stats).Error
	if err != nil {
		return nil, apperr.Internal("Failed to retrieve dashboard statistics", err)
	}
	return &stats, nil
}
