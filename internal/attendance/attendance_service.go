package attendance

import (
	"context"
	"errors"
	"time"

	attendanceerrors "go-hrm/internal/attendance/errors"
	"go-hrm/internal/shared/apperror"
	usererrors "go-hrm/internal/user/errors"

	"go-hrm/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	CheckIn(ctx context.Context, userID string, req CheckInRequest) (AttendanceResponse, error)
	CheckOut(ctx context.Context, userID string, req CheckOutRequest) (AttendanceResponse, error)

	Create(ctx context.Context, req CreateAttendanceRequest) (AttendanceResponse, error)
	GetAll(ctx context.Context) ([]AttendanceResponse, error)
	GetByID(ctx context.Context, id string) (AttendanceResponse, error)
	GetByUser(ctx context.Context, userID string) ([]AttendanceResponse, error)
	GetByUserAndRange(ctx context.Context, userID, startDate, endDate string) ([]AttendanceResponse, error)
	Update(ctx context.Context, id string, req UpdateAttendanceRequest) (AttendanceResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo     Repository
	userRepo user.Repository
	logger   *zap.Logger
}

func NewService(repo Repository, userRepo user.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{repo: repo, userRepo: userRepo, logger: l}
}

func today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// CheckIn membuat record hari ini, atau menimpa jam check-in
// kalau user check-in lebih dari sekali di hari yang sama.
func (s *service) CheckIn(ctx context.Context, userID string, req CheckInRequest) (AttendanceResponse, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return AttendanceResponse{}, usererrors.ErrInvalidUserID
	}

	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return AttendanceResponse{}, usererrors.ErrUserNotFound
	}

	status := req.Status
	if status == "" {
		status = StatusPresent
	}

	now := time.Now().UTC()

	existing, err := s.repo.FindByUserAndDate(ctx, userID, today())
	if err == nil {
		existing.CheckInTime = &now
		existing.Status = status
		if req.Notes != "" {
			existing.Notes = req.Notes
		}
		if err := s.repo.Update(ctx, existing); err != nil {
			return AttendanceResponse{}, err
		}
		s.logger.Info("check-in overwritten", zap.String("user_id", userID))
		return mapToResponse(*existing), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return AttendanceResponse{}, err
	}

	a := &Attendance{
		ID:          uuid.New(),
		UserID:      uid,
		Date:        today(),
		CheckInTime: &now,
		Status:      status,
		Notes:       req.Notes,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		s.logger.Error("check-in persist failed", zap.String("user_id", userID), zap.Error(err))
		return AttendanceResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("check-in success", zap.String("user_id", userID))
	return mapToResponse(*a), nil
}

// CheckOut menolak kalau belum ada record check-in untuk hari ini.
func (s *service) CheckOut(ctx context.Context, userID string, req CheckOutRequest) (AttendanceResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return AttendanceResponse{}, usererrors.ErrInvalidUserID
	}

	a, err := s.repo.FindByUserAndDate(ctx, userID, today())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceResponse{}, attendanceerrors.ErrAttendanceNotFound
		}
		return AttendanceResponse{}, err
	}

	now := time.Now().UTC()
	a.CheckOutTime = &now
	if req.Notes != "" {
		a.Notes = req.Notes
	}

	if err := s.repo.Update(ctx, a); err != nil {
		s.logger.Error("check-out persist failed", zap.String("user_id", userID), zap.Error(err))
		return AttendanceResponse{}, err
	}

	s.logger.Info("check-out success", zap.String("user_id", userID))
	return mapToResponse(*a), nil
}

func (s *service) Create(ctx context.Context, req CreateAttendanceRequest) (AttendanceResponse, error) {
	uid, err := uuid.Parse(req.UserID)
	if err != nil {
		return AttendanceResponse{}, usererrors.ErrInvalidUserID
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return AttendanceResponse{}, apperror.InvalidField("date")
	}

	if _, err := s.userRepo.FindByID(ctx, req.UserID); err != nil {
		return AttendanceResponse{}, usererrors.ErrUserNotFound
	}

	// Manual create tidak boleh menimpa record yang sudah ada
	if _, err := s.repo.FindByUserAndDate(ctx, req.UserID, date); err == nil {
		return AttendanceResponse{}, attendanceerrors.ErrAttendanceExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return AttendanceResponse{}, err
	}

	a := &Attendance{
		ID:     uuid.New(),
		UserID: uid,
		Date:   date,
		Status: req.Status,
		Notes:  req.Notes,
	}
	if req.CheckInTime != "" {
		t, err := time.Parse(time.RFC3339, req.CheckInTime)
		if err != nil {
			return AttendanceResponse{}, apperror.InvalidField("check_in_time")
		}
		a.CheckInTime = &t
	}
	if req.CheckOutTime != "" {
		t, err := time.Parse(time.RFC3339, req.CheckOutTime)
		if err != nil {
			return AttendanceResponse{}, apperror.InvalidField("check_out_time")
		}
		a.CheckOutTime = &t
	}

	if err := s.repo.Create(ctx, a); err != nil {
		s.logger.Error("create attendance persist failed", zap.Error(err))
		return AttendanceResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*a), nil
}

func (s *service) GetAll(ctx context.Context) ([]AttendanceResponse, error) {
	records, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(records), nil
}

func (s *service) GetByID(ctx context.Context, id string) (AttendanceResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidAttendanceID
	}

	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceResponse{}, attendanceerrors.ErrAttendanceNotFound
		}
		return AttendanceResponse{}, err
	}
	return mapToResponse(*a), nil
}

func (s *service) GetByUser(ctx context.Context, userID string) ([]AttendanceResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, usererrors.ErrInvalidUserID
	}

	records, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(records), nil
}

func (s *service) GetByUserAndRange(ctx context.Context, userID, startDate, endDate string) ([]AttendanceResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, usererrors.ErrInvalidUserID
	}

	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return nil, attendanceerrors.ErrInvalidDateRange
	}
	end, err := time.Parse(dateLayout, endDate)
	if err != nil {
		return nil, attendanceerrors.ErrInvalidDateRange
	}
	if start.After(end) {
		return nil, attendanceerrors.ErrInvalidDateRange
	}

	records, err := s.repo.FindByUserAndRange(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(records), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateAttendanceRequest) (AttendanceResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidAttendanceID
	}

	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceResponse{}, attendanceerrors.ErrAttendanceNotFound
		}
		return AttendanceResponse{}, err
	}

	if req.Status != nil {
		if !ValidStatus(*req.Status) {
			return AttendanceResponse{}, attendanceerrors.ErrInvalidStatus
		}
		a.Status = *req.Status
	}
	if req.CheckInTime != nil {
		t, err := time.Parse(time.RFC3339, *req.CheckInTime)
		if err != nil {
			return AttendanceResponse{}, apperror.InvalidField("check_in_time")
		}
		a.CheckInTime = &t
	}
	if req.CheckOutTime != nil {
		t, err := time.Parse(time.RFC3339, *req.CheckOutTime)
		if err != nil {
			return AttendanceResponse{}, apperror.InvalidField("check_out_time")
		}
		a.CheckOutTime = &t
	}
	if req.Notes != nil {
		a.Notes = *req.Notes
	}

	if err := s.repo.Update(ctx, a); err != nil {
		return AttendanceResponse{}, err
	}
	return mapToResponse(*a), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return attendanceerrors.ErrInvalidAttendanceID
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return attendanceerrors.ErrAttendanceNotFound
		}
		return err
	}
	return nil
}

func mapToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:     a.ID.String(),
		UserID: a.UserID.String(),
		Date:   a.Date.Format(dateLayout),
		Status: a.Status,
		Notes:  a.Notes,
	}
	if a.CheckInTime != nil {
		v := a.CheckInTime.Format(time.RFC3339)
		resp.CheckInTime = &v
	}
	if a.CheckOutTime != nil {
		v := a.CheckOutTime.Format(time.RFC3339)
		resp.CheckOutTime = &v
	}
	return resp
}

func mapToListResponse(records []Attendance) []AttendanceResponse {
	resp := make([]AttendanceResponse, len(records))
	for i, a := range records {
		resp[i] = mapToResponse(a)
	}
	return resp
}
