package task

import (
	"context"
	"errors"
	"time"

	"go-hrm/internal/shared/apperror"
	taskerrors "go-hrm/internal/task/errors"
	"go-hrm/internal/user"
	usererrors "go-hrm/internal/user/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

//go:generate mockgen -source=task_service.go -destination=mock/task_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, creatorID string, req CreateTaskRequest) (TaskResponse, error)
	GetAll(ctx context.Context) ([]TaskResponse, error)
	GetByID(ctx context.Context, id string) (TaskResponse, error)
	GetByAssignee(ctx context.Context, userID string) ([]TaskResponse, error)
	GetByAssigneeAndStatus(ctx context.Context, userID, status string) ([]TaskResponse, error)
	GetByStatus(ctx context.Context, status string) ([]TaskResponse, error)
	GetByCreator(ctx context.Context, userID string) ([]TaskResponse, error)
	Update(ctx context.Context, id string, req UpdateTaskRequest) (TaskResponse, error)
	UpdateStatus(ctx context.Context, id, status string) (TaskResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo     Repository
	userRepo user.Repository
	logger   *zap.Logger
}

func NewService(repo Repository, userRepo user.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("task.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("task.service")
	}
	return &service{repo: repo, userRepo: userRepo, logger: l}
}

func (s *service) Create(ctx context.Context, creatorID string, req CreateTaskRequest) (TaskResponse, error) {
	creatorUUID, err := uuid.Parse(creatorID)
	if err != nil {
		return TaskResponse{}, usererrors.ErrInvalidUserID
	}
	assigneeUUID, err := uuid.Parse(req.AssignedTo)
	if err != nil {
		return TaskResponse{}, usererrors.ErrInvalidUserID
	}

	if _, err := s.userRepo.FindByID(ctx, creatorID); err != nil {
		return TaskResponse{}, usererrors.ErrUserNotFound
	}
	if _, err := s.userRepo.FindByID(ctx, req.AssignedTo); err != nil {
		return TaskResponse{}, taskerrors.ErrAssigneeNotFound
	}

	priority := req.Priority
	if priority == "" {
		priority = PriorityMedium
	}

	t := &Task{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		Status:      StatusTodo,
		Priority:    priority,
		AssignedTo:  assigneeUUID,
		CreatedBy:   creatorUUID,
	}
	if req.DueDate != "" {
		due, err := time.Parse(dateLayout, req.DueDate)
		if err != nil {
			return TaskResponse{}, apperror.InvalidField("due_date")
		}
		t.DueDate = &due
	}

	if err := s.repo.Create(ctx, t); err != nil {
		s.logger.Error("create task persist failed", zap.Error(err))
		return TaskResponse{}, err
	}

	s.logger.Info("create task success",
		zap.String("task_id", t.ID.String()),
		zap.String("assigned_to", req.AssignedTo),
		zap.String("priority", priority),
	)
	return mapToResponse(*t), nil
}

func (s *service) GetAll(ctx context.Context) ([]TaskResponse, error) {
	tasks, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(tasks), nil
}

func (s *service) GetByID(ctx context.Context, id string) (TaskResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return TaskResponse{}, taskerrors.ErrInvalidTaskID
	}
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TaskResponse{}, taskerrors.ErrTaskNotFound
		}
		return TaskResponse{}, err
	}
	return mapToResponse(*t), nil
}

func (s *service) GetByAssignee(ctx context.Context, userID string) ([]TaskResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, usererrors.ErrInvalidUserID
	}
	tasks, err := s.repo.FindByAssignee(ctx, userID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(tasks), nil
}

func (s *service) GetByAssigneeAndStatus(ctx context.Context, userID, status string) ([]TaskResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, usererrors.ErrInvalidUserID
	}
	if !ValidStatus(status) {
		return nil, taskerrors.ErrInvalidStatus
	}
	tasks, err := s.repo.FindByAssigneeAndStatus(ctx, userID, status)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(tasks), nil
}

func (s *service) GetByStatus(ctx context.Context, status string) ([]TaskResponse, error) {
	if !ValidStatus(status) {
		return nil, taskerrors.ErrInvalidStatus
	}
	tasks, err := s.repo.FindByStatus(ctx, status)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(tasks), nil
}

func (s *service) GetByCreator(ctx context.Context, userID string) ([]TaskResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, usererrors.ErrInvalidUserID
	}
	tasks, err := s.repo.FindByCreator(ctx, userID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(tasks), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateTaskRequest) (TaskResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return TaskResponse{}, taskerrors.ErrInvalidTaskID
	}

	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TaskResponse{}, taskerrors.ErrTaskNotFound
		}
		return TaskResponse{}, err
	}

	if req.Title != nil {
		t.Title = *req.Title
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.Priority != nil {
		if !ValidPriority(*req.Priority) {
			return TaskResponse{}, taskerrors.ErrInvalidPriority
		}
		t.Priority = *req.Priority
	}
	if req.AssignedTo != nil {
		assigneeUUID, err := uuid.Parse(*req.AssignedTo)
		if err != nil {
			return TaskResponse{}, usererrors.ErrInvalidUserID
		}
		if _, err := s.userRepo.FindByID(ctx, *req.AssignedTo); err != nil {
			return TaskResponse{}, taskerrors.ErrAssigneeNotFound
		}
		t.AssignedTo = assigneeUUID
	}
	if req.DueDate != nil {
		due, err := time.Parse(dateLayout, *req.DueDate)
		if err != nil {
			return TaskResponse{}, apperror.InvalidField("due_date")
		}
		t.DueDate = &due
	}
	if req.Status != nil {
		applyStatus(t, *req.Status)
	}

	if err := s.repo.Update(ctx, t); err != nil {
		s.logger.Error("update task persist failed", zap.String("task_id", id), zap.Error(err))
		return TaskResponse{}, err
	}
	return mapToResponse(*t), nil
}

func (s *service) UpdateStatus(ctx context.Context, id, status string) (TaskResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return TaskResponse{}, taskerrors.ErrInvalidTaskID
	}
	if !ValidStatus(status) {
		return TaskResponse{}, taskerrors.ErrInvalidStatus
	}

	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TaskResponse{}, taskerrors.ErrTaskNotFound
		}
		return TaskResponse{}, err
	}

	applyStatus(t, status)

	if err := s.repo.Update(ctx, t); err != nil {
		s.logger.Error("update task status persist failed", zap.String("task_id", id), zap.Error(err))
		return TaskResponse{}, err
	}

	s.logger.Info("task status updated",
		zap.String("task_id", id),
		zap.String("status", status),
	)
	return mapToResponse(*t), nil
}

// applyStatus stempel completed_at sekali saja, saat pertama kali
// task masuk status COMPLETED.
func applyStatus(t *Task, status string) {
	t.Status = status
	if status == StatusCompleted && t.CompletedAt == nil {
		now := time.Now().UTC()
		t.CompletedAt = &now
	}
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return taskerrors.ErrInvalidTaskID
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return taskerrors.ErrTaskNotFound
		}
		return err
	}
	return nil
}

func mapToResponse(t Task) TaskResponse {
	resp := TaskResponse{
		ID:          t.ID.String(),
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
		AssignedTo:  t.AssignedTo.String(),
		CreatedBy:   t.CreatedBy.String(),
	}
	if t.DueDate != nil {
		v := t.DueDate.Format(dateLayout)
		resp.DueDate = &v
	}
	if t.CompletedAt != nil {
		v := t.CompletedAt.Format(time.RFC3339)
		resp.CompletedAt = &v
	}
	return resp
}

func mapToListResponse(tasks []Task) []TaskResponse {
	resp := make([]TaskResponse, len(tasks))
	for i, t := range tasks {
		resp[i] = mapToResponse(t)
	}
	return resp
}
