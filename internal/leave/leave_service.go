package leave

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go-hrm/internal/events"
	leaveerrors "go-hrm/internal/leave/errors"
	"go-hrm/internal/messaging/kafka"
	"go-hrm/internal/shared/contextutil"
	"go-hrm/internal/user"
	usererrors "go-hrm/internal/user/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, userID string, req CreateLeaveRequest) (LeaveResponse, error)
	GetAll(ctx context.Context) ([]LeaveResponse, error)
	GetPending(ctx context.Context) ([]LeaveResponse, error)
	GetByUser(ctx context.Context, userID string) ([]LeaveResponse, error)
	GetByID(ctx context.Context, id string) (LeaveResponse, error)
	Approve(ctx context.Context, approverID, id string) (LeaveResponse, error)
	Reject(ctx context.Context, approverID, id, rejectionReason string) (LeaveResponse, error)
	Cancel(ctx context.Context, actorID, id string) (LeaveResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db       *gorm.DB
	repo     Repository
	userRepo user.Repository
	outbox   kafka.OutboxRepository
	logger   *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, userRepo user.Repository, outboxRepo kafka.OutboxRepository, logger ...*zap.Logger) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{db: db, repo: repo, userRepo: userRepo, outbox: outboxRepo, logger: l}
}

func (s *service) Create(ctx context.Context, userID string, req CreateLeaveRequest) (LeaveResponse, error) {
	s.logger.Debug("create leave requested",
		zap.String("user_id", userID),
		zap.String("leave_type", req.LeaveType),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	uid, err := uuid.Parse(userID)
	if err != nil {
		return LeaveResponse{}, usererrors.ErrInvalidUserID
	}
	if !ValidType(req.LeaveType) {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveType
	}

	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateRange
	}
	endDate, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateRange
	}
	if endDate.Before(startDate) {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateRange
	}

	// Hari cuti dihitung inklusif
	totalDays := int(endDate.Sub(startDate).Hours()/24) + 1

	u, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return LeaveResponse{}, usererrors.ErrUserNotFound
	}

	// Saldo hanya dicek untuk cuti berbayar, dan baru dipotong saat approve
	if req.LeaveType == TypePaid && u.VacationDays < totalDays {
		s.logger.Warn("create leave insufficient balance",
			zap.String("user_id", userID),
			zap.Int("total_days", totalDays),
			zap.Int("vacation_days", u.VacationDays),
		)
		return LeaveResponse{}, leaveerrors.ErrInsufficientBalance
	}

	l := &Leave{
		ID:        uuid.New(),
		UserID:    uid,
		LeaveType: req.LeaveType,
		StartDate: startDate,
		EndDate:   endDate,
		TotalDays: totalDays,
		Reason:    req.Reason,
		Status:    StatusPending,
	}

	if err := s.repo.Create(ctx, l); err != nil {
		s.logger.Error("create leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("create leave success",
		zap.String("leave_id", l.ID.String()),
		zap.String("user_id", userID),
		zap.Int("total_days", totalDays),
	)
	return mapToResponse(*l), nil
}

func (s *service) GetAll(ctx context.Context) ([]LeaveResponse, error) {
	leaves, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) GetPending(ctx context.Context) ([]LeaveResponse, error) {
	leaves, err := s.repo.FindByStatus(ctx, StatusPending)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) GetByUser(ctx context.Context, userID string) ([]LeaveResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, usererrors.ErrInvalidUserID
	}
	leaves, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) GetByID(ctx context.Context, id string) (LeaveResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	return mapToResponse(*l), nil
}

// Approve memindahkan status ke APPROVED dan memotong saldo cuti
// berbayar dalam transaksi yang sama dengan pencatatan outbox.
func (s *service) Approve(ctx context.Context, approverID, id string) (LeaveResponse, error) {
	approverUUID, err := uuid.Parse(approverID)
	if err != nil {
		return LeaveResponse{}, usererrors.ErrInvalidUserID
	}
	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		s.logger.Error("approve leave begin tx failed", zap.Error(tx.Error))
		return LeaveResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	uqtx := s.userRepo.WithTx(tx)

	l, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	if l.Status != StatusPending {
		return LeaveResponse{}, leaveerrors.ErrLeaveNotPending
	}

	deductedDays := 0
	if l.LeaveType == TypePaid {
		u, err := uqtx.FindByID(ctx, l.UserID.String())
		if err != nil {
			return LeaveResponse{}, usererrors.ErrUserNotFound
		}
		if u.VacationDays < l.TotalDays {
			return LeaveResponse{}, leaveerrors.ErrInsufficientBalance
		}
		u.VacationDays -= l.TotalDays
		deductedDays = l.TotalDays
		if err := uqtx.Update(ctx, u); err != nil {
			s.logger.Error("approve leave balance update failed", zap.Error(err))
			return LeaveResponse{}, err
		}
	}

	now := time.Now().UTC()
	l.Status = StatusApproved
	l.ApprovedBy = &approverUUID
	l.ApprovedAt = &now

	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("approve leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if s.outbox != nil {
		rid := contextutil.GetRequestID(ctx)
		event := events.LeaveApprovedEvent{
			EventType:    "leave_approved",
			RequestID:    rid,
			LeaveID:      l.ID.String(),
			UserID:       l.UserID.String(),
			ApproverID:   approverID,
			LeaveType:    l.LeaveType,
			TotalDays:    l.TotalDays,
			DeductedDays: deductedDays,
			OccurredAt:   now,
		}
		payload, err := json.Marshal(event)
		if err != nil {
			s.logger.Error("marshal leave event failed", zap.Error(err))
			return LeaveResponse{}, err
		}

		if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "leave",
			AggregateID:   l.ID.String(),
			EventType:     event.EventType,
			Topic:         events.LeaveApprovedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("approve leave outbox persist failed", zap.Error(err))
			return LeaveResponse{}, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		s.logger.Error("approve leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("approve leave success",
		zap.String("leave_id", l.ID.String()),
		zap.String("approver_id", approverID),
		zap.Int("deducted_days", deductedDays),
	)
	return mapToResponse(*l), nil
}

func (s *service) Reject(ctx context.Context, approverID, id, rejectionReason string) (LeaveResponse, error) {
	approverUUID, err := uuid.Parse(approverID)
	if err != nil {
		return LeaveResponse{}, usererrors.ErrInvalidUserID
	}
	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}
	if rejectionReason == "" {
		return LeaveResponse{}, leaveerrors.ErrRejectionReasonRequired
	}

	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	if l.Status != StatusPending {
		return LeaveResponse{}, leaveerrors.ErrLeaveNotPending
	}

	// Stempel keputusan dipakai untuk approve maupun reject
	now := time.Now().UTC()
	l.Status = StatusRejected
	l.ApprovedBy = &approverUUID
	l.ApprovedAt = &now
	l.RejectionReason = &rejectionReason

	if err := s.repo.Update(ctx, l); err != nil {
		s.logger.Error("reject leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("reject leave success",
		zap.String("leave_id", l.ID.String()),
		zap.String("approver_id", approverID),
	)
	return mapToResponse(*l), nil
}

// Cancel hanya boleh dilakukan pemilik selama masih PENDING.
// Saldo tidak pernah dikembalikan karena belum pernah dipotong.
func (s *service) Cancel(ctx context.Context, actorID, id string) (LeaveResponse, error) {
	if _, err := uuid.Parse(actorID); err != nil {
		return LeaveResponse{}, usererrors.ErrInvalidUserID
	}
	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}

	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	if l.UserID.String() != actorID {
		return LeaveResponse{}, leaveerrors.ErrNotLeaveOwner
	}
	if l.Status != StatusPending {
		return LeaveResponse{}, leaveerrors.ErrLeaveNotPending
	}

	l.Status = StatusCanceled

	if err := s.repo.Update(ctx, l); err != nil {
		s.logger.Error("cancel leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("cancel leave success", zap.String("leave_id", l.ID.String()))
	return mapToResponse(*l), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return leaveerrors.ErrInvalidLeaveID
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return leaveerrors.ErrLeaveNotFound
		}
		return err
	}
	return nil
}

func mapToResponse(l Leave) LeaveResponse {
	resp := LeaveResponse{
		ID:              l.ID.String(),
		UserID:          l.UserID.String(),
		LeaveType:       l.LeaveType,
		StartDate:       l.StartDate.Format(dateLayout),
		EndDate:         l.EndDate.Format(dateLayout),
		TotalDays:       l.TotalDays,
		Reason:          l.Reason,
		Status:          l.Status,
		RejectionReason: l.RejectionReason,
	}
	if l.ApprovedBy != nil {
		v := l.ApprovedBy.String()
		resp.ApprovedBy = &v
	}
	if l.ApprovedAt != nil {
		v := l.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &v
	}
	return resp
}

func mapToListResponse(leaves []Leave) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp
}
