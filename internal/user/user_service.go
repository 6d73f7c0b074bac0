package user

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go-hrm/internal/events"
	"go-hrm/internal/messaging/kafka"
	"go-hrm/internal/shared/apperror"
	"go-hrm/internal/shared/contextutil"
	usererrors "go-hrm/internal/user/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const minPasswordLength = 6

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock
type Service interface {
	GetAll(ctx context.Context) ([]UserResponse, error)
	GetByID(ctx context.Context, id string) (UserResponse, error)
	GetMe(ctx context.Context) (UserResponse, error)
	GetActive(ctx context.Context) ([]UserResponse, error)
	GetByDepartment(ctx context.Context, department string) ([]UserResponse, error)
	GetByRole(ctx context.Context, role string) ([]UserResponse, error)

	Create(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	Update(ctx context.Context, id string, req UpdateUserRequest) (UserResponse, error)
	Deactivate(ctx context.Context, id string) error
	Activate(ctx context.Context, id string) error
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
	ResetPassword(ctx context.Context, userID, newPassword string) error
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *gorm.DB
	repo   Repository
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, nil, logger...)
}

func NewServiceWithOutbox(db *gorm.DB, repo Repository, outboxRepo kafka.OutboxRepository, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{db: db, repo: repo, outbox: outboxRepo, logger: l}
}

func (s *service) GetAll(ctx context.Context) ([]UserResponse, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(users), nil
}

func (s *service) GetByID(ctx context.Context, id string) (UserResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return UserResponse{}, usererrors.ErrInvalidUserID
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*u), nil
}

// GetMe resolves the principal injected by the auth middleware.
func (s *service) GetMe(ctx context.Context) (UserResponse, error) {
	return s.GetByID(ctx, contextutil.GetUserID(ctx))
}

func (s *service) GetActive(ctx context.Context) ([]UserResponse, error) {
	users, err := s.repo.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(users), nil
}

func (s *service) GetByDepartment(ctx context.Context, department string) ([]UserResponse, error) {
	users, err := s.repo.FindByDepartment(ctx, department)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(users), nil
}

func (s *service) GetByRole(ctx context.Context, role string) ([]UserResponse, error) {
	if !ValidRole(role) {
		return nil, usererrors.ErrInvalidRole
	}
	users, err := s.repo.FindByRole(ctx, role)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(users), nil
}

func (s *service) Create(ctx context.Context, req CreateUserRequest) (UserResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create user requested",
		zap.String("request_id", rid),
		zap.String("email", req.Email),
	)

	role := req.Role
	if role == "" {
		role = RoleEmployee
	}
	if !ValidRole(role) {
		return UserResponse{}, usererrors.ErrInvalidRole
	}

	vacationDays := DefaultVacationDays
	if req.VacationDays != nil {
		if *req.VacationDays < 0 {
			return UserResponse{}, apperror.InvalidField("vacation_days")
		}
		vacationDays = *req.VacationDays
	}

	if _, err := s.repo.FindByEmail(ctx, req.Email); err == nil {
		return UserResponse{}, usererrors.ErrEmailAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return UserResponse{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("create user hash password failed", zap.Error(err))
		return UserResponse{}, err
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		s.logger.Error("create user begin tx failed", zap.Error(tx.Error))
		return UserResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	u := &User{
		ID:           uuid.New(),
		Email:        req.Email,
		Password:     string(hashed),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		Department:   req.Department,
		Position:     req.Position,
		Role:         role,
		VacationDays: vacationDays,
		IsActive:     true,
	}

	if err := qtx.Create(ctx, u); err != nil {
		s.logger.Error("create user persist failed", zap.Error(err))
		return UserResponse{}, mapRepositoryError(err)
	}

	if s.outbox != nil {
		event := events.UserCreatedEvent{
			EventType:  "user_created",
			RequestID:  rid,
			UserID:     u.ID.String(),
			Email:      u.Email,
			Role:       u.Role,
			OccurredAt: time.Now().UTC(),
		}
		payload, err := json.Marshal(event)
		if err != nil {
			s.logger.Error("marshal user event failed", zap.String("request_id", rid), zap.Error(err))
			return UserResponse{}, err
		}

		if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "user",
			AggregateID:   u.ID.String(),
			EventType:     event.EventType,
			Topic:         events.UserCreatedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("create user outbox persist failed",
				zap.String("user_id", u.ID.String()),
				zap.Error(err),
			)
			return UserResponse{}, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		s.logger.Error("create user commit failed", zap.Error(err))
		return UserResponse{}, err
	}

	s.logger.Info("create user success",
		zap.String("request_id", rid),
		zap.String("user_id", u.ID.String()),
		zap.String("role", u.Role),
	)
	return mapToResponse(*u), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateUserRequest) (UserResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return UserResponse{}, usererrors.ErrInvalidUserID
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return UserResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	u, err := qtx.FindByID(ctx, id)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}

	// Partial update: hanya field yang dikirim yang diubah
	if req.FirstName != nil {
		u.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		u.LastName = *req.LastName
	}
	if req.Phone != nil {
		u.Phone = *req.Phone
	}
	if req.Department != nil {
		u.Department = *req.Department
	}
	if req.Position != nil {
		u.Position = *req.Position
	}
	if req.VacationDays != nil {
		if *req.VacationDays < 0 {
			return UserResponse{}, apperror.InvalidField("vacation_days")
		}
		u.VacationDays = *req.VacationDays
	}

	if err := qtx.Update(ctx, u); err != nil {
		s.logger.Error("update user persist failed", zap.String("user_id", id), zap.Error(err))
		return UserResponse{}, err
	}

	if err := tx.Commit().Error; err != nil {
		return UserResponse{}, err
	}

	return mapToResponse(*u), nil
}

func (s *service) Deactivate(ctx context.Context, id string) error {
	return s.toggleStatus(ctx, id, false)
}

func (s *service) Activate(ctx context.Context, id string) error {
	return s.toggleStatus(ctx, id, true)
}

func (s *service) toggleStatus(ctx context.Context, id string, isActive bool) error {
	if _, err := uuid.Parse(id); err != nil {
		return usererrors.ErrInvalidUserID
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return mapRepositoryError(err)
	}

	u.IsActive = isActive

	if err := s.repo.Update(ctx, u); err != nil {
		s.logger.Error("toggle user status failed", zap.String("user_id", id), zap.Error(err))
		return err
	}

	s.logger.Info("user status toggled",
		zap.String("user_id", id),
		zap.Bool("is_active", isActive),
	)
	return nil
}

func (s *service) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if _, err := uuid.Parse(userID); err != nil {
		return usererrors.ErrInvalidUserID
	}

	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return mapRepositoryError(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(currentPassword)); err != nil {
		return usererrors.ErrInvalidCurrentPassword
	}

	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(newPassword)) == nil {
		return usererrors.ErrPasswordReused
	}

	if len(newPassword) < minPasswordLength {
		return usererrors.ErrPasswordTooShort
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("change password hash failed", zap.Error(err))
		return err
	}

	u.Password = string(hashed)
	return s.repo.Update(ctx, u)
}

func (s *service) ResetPassword(ctx context.Context, userID, newPassword string) error {
	if _, err := uuid.Parse(userID); err != nil {
		return usererrors.ErrInvalidUserID
	}
	if len(newPassword) < minPasswordLength {
		return usererrors.ErrPasswordTooShort
	}

	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return mapRepositoryError(err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	u.Password = string(hashed)
	return s.repo.Update(ctx, u)
}

// Delete soft-deletes the user row; attendance/leave/task history stays intact.
func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return usererrors.ErrInvalidUserID
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	s.logger.Info("user deleted", zap.String("user_id", id))
	return nil
}

func mapToResponse(u User) UserResponse {
	return UserResponse{
		ID:           u.ID.String(),
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Phone:        u.Phone,
		Department:   u.Department,
		Position:     u.Position,
		Role:         u.Role,
		VacationDays: u.VacationDays,
		IsActive:     u.IsActive,
		CreatedAt:    u.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func mapToListResponse(users []User) []UserResponse {
	resp := make([]UserResponse, len(users))
	for i, u := range users {
		resp[i] = mapToResponse(u)
	}
	return resp
}
