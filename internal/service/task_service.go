package service

import (
	"context"
	"errors"

	"backend/internal/model"
	"backend/internal/realtime"
	"backend/internal/repository"
	"backend/pkg/apperr"
	"backend/pkg/listquery"

	"gorm.io/gorm"
)

type TaskRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	ProjectID   *uint  `json:"project_id"`
	AssigneeID  *uint  `json:"assignee_id"`
	StartDate   string `json:"start_date"`
	DueDate     string `json:"due_date"`
	Priority    string `json:"priority"`
	Status      string `json:"status"`
	Progress    int    `json:"progress" binding:"min=0,max=100"`
}

type TaskStats struct {
	TotalTasks int64 `json:"total_tasks"`
	Pending    int64 `json:"pending"`
	InProgress int64 `json:"in_progress"`
	Completed  int64 `json:"completed"`
	Blocked    int64 `json:"blocked"`
}

type TaskService interface {
	List(ctx context.Context, q listquery.Params) ([]repository.TaskRow, int64, error)
	Get(ctx context.Context, id uint) (*repository.TaskRow, error)
	ListByProject(ctx context.Context, projectID uint) ([]repository.TaskRow, error)
	ListByAssignee(ctx context.Context, assigneeID uint) ([]repository.TaskRow, error)
	Create(ctx context.Context, req TaskRequest) (*repository.TaskRow, error)
	Update(ctx context.Context, id uint, req TaskRequest) (*repository.TaskRow, error)
	Delete(ctx context.Context, id uint) error
	Stats(ctx context.Context) (*TaskStats, error)
}

type taskService struct {
	db  *gorm.DB
	hub *realtime.Hub
}

func NewTaskService(db *gorm.DB, hub *realtime.Hub) TaskService {
	return &taskService{db: db, hub: hub}
}

func (s *taskService) List(ctx context.Context, q listquery.Params) ([]repository.TaskRow, int64, error) {
	rows, total, err := repository.ListPage[repository.TaskRow](ctx, s.db, repository.TaskListDef, q)
	if err != nil {
		return nil, 0, apperr.Internal("Failed to retrieve tasks", err)
	}
	return rows, total, nil
}

func (s *taskService) Get(ctx context.Context, id uint) (*repository.TaskRow, error) {
	row, err := repository.FindRowByID[repository.TaskRow](ctx, s.db, repository.TaskListDef, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Task not found")
		}
		return nil, apperr.Internal("Failed to retrieve task", err)
	}
	return row, nil
}

func (s *taskService) listWhere(ctx context.Context, cond string, arg uint) ([]repository.TaskRow, error) {
	var rows []repository.TaskRow
	err := s.db.WithContext(ctx).Raw(
		"SELECT "+repository.TaskListDef.Select+" FROM "+repository.TaskListDef.From+
			" WHERE "+cond+" ORDER BY t.due_date", arg,
	).Scan(&rows).Error
	if err != nil {
		return nil, apperr.Internal("Failed to retrieve tasks", err)
	}
	return rows, nil
}

func (s *taskService) ListByProject(ctx context.Context, projectID uint) ([]repository.TaskRow, error) {
	return s.listWhere(ctx, "t.project_id = ?", projectID)
}

func (s *taskService) ListByAssignee(ctx context.Context, assigneeID uint) ([]repository.TaskRow, error) {
	return s.listWhere(ctx, "t.assignee_id = ?", assigneeID)
}

func (s *taskService) apply(task *model.Task, req TaskRequest) error {
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return apperr.Validation("Invalid start_date")
	}
	dueDate, err := parseDate(req.DueDate)
	if err != nil {
		return apperr.Validation("Invalid due_date")
	}

	task.Title = req.Title
	task.Description = req.Description
	task.ProjectID = req.ProjectID
	task.AssigneeID = req.AssigneeID
	task.StartDate = startDate
	task.DueDate = dueDate
	task.Progress = req.Progress
	if req.Priority != "" {
		task.Priority = req.Priority
	}
	if req.Status != "" {
		task.Status = req.Status
	}
	return nil
}

func (s *taskService) Create(ctx context.Context, req TaskRequest) (*repository.TaskRow, error) {
	task := model.Task{
		Priority: model.PriorityMedium,
		Status:   model.TaskPending,
	}
	if err := s.apply(&task, req); err != nil {
		return nil, err
	}

	taskID, err := repository.NextBusinessID(ctx, s.db, repository.TableTasks, "TSK", false)
	if err != nil {
		return nil, apperr.Internal("Failed to create task", err)
	}
	task.TaskID = taskID

	if err := repository.Create(ctx, s.db, &task); err != nil {
		return nil, apperr.Internal("Failed to create task", err)
	}

	s.hub.Notify(realtime.Event{Entity: "task", Action: "created", ID: task.ID, BusinessID: task.TaskID})
	return s.Get(ctx, task.ID)
}

func (s *taskService) Update(ctx context.Context, id uint, req TaskRequest) (*repository.TaskRow, error) {
	task, err := repository.FindByID[model.Task](ctx, s.db, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Task not found")
		}
		return nil, apperr.Internal("Failed to update task", err)
	}

	if err := s.apply(task, req); err != nil {
		return nil, err
	}

	if err := repository.Save(ctx, s.db, task); err != nil {
		return nil, apperr.Internal("Failed to update task", err)
	}

	s.hub.Notify(realtime.Event{Entity: "task", Action: "updated", ID: task.ID, BusinessID: task.TaskID})
	return s.Get(ctx, id)
}

func (s *taskService) Delete(ctx context.Context, id uint) error {
	task, err := repository.FindByID[model.Task](ctx, s.db, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Task not found")
		}
		return apperr.Internal("Failed to delete task", err)
	}
	if err := repository.DeleteByID[model.Task](ctx, s.db, id); err != nil {
		return apperr.Internal("Failed to delete task", err)
	}
	s.hub.Notify(realtime.Event{Entity: "task", Action: "deleted", ID: id, BusinessID: task.TaskID})
	return nil
}

func (s *taskService) Stats(ctx context.Context) (*TaskStats, error) {
	var stats TaskStats
	err := s.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) AS total_tasks,
			COALESCE(SUM(CASE WHEN status = 'Pending' THEN 1 ELSE 0 END), 0) AS pending,
			COALESCE(SUM(CASE WHEN status = 'In Progress' THEN 1 ELSE 0 END), 0) AS in_progress,
			COALESCE(SUM(CASE WHEN status = 'Completed' THEN 1 ELSE 0 END), 0) AS completed,
			COALESCE(SUM(CASE WHEN status = 'Blocked' THEN 1 ELSE 0 END), 0) AS blocked
		FROM tasks
	`).Scan(&stats).Error
	if err != nil {
		return nil, apperr.Internal("Failed to retrieve task statistics", err)
	}
	return &stats, nil
}
