package leave_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-hrm/internal/leave"
	leaveerrors "go-hrm/internal/leave/errors"
	"go-hrm/internal/messaging/kafka"
	"go-hrm/internal/user"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type fakeLeaveRepository struct {
	createFn       func(ctx context.Context, l *leave.Leave) error
	findAllFn      func(ctx context.Context) ([]leave.Leave, error)
	findByIDFn     func(ctx context.Context, id string) (*leave.Leave, error)
	findByUserFn   func(ctx context.Context, userID string) ([]leave.Leave, error)
	findByStatusFn func(ctx context.Context, status string) ([]leave.Leave, error)
	updateFn       func(ctx context.Context, l *leave.Leave) error
	deleteFn       func(ctx context.Context, id string) error
}

func (f *fakeLeaveRepository) WithTx(tx *gorm.DB) leave.Repository { return f }

func (f *fakeLeaveRepository) Create(ctx context.Context, l *leave.Leave) error {
	if f.createFn != nil {
		return f.createFn(ctx, l)
	}
	return nil
}

func (f *fakeLeaveRepository) FindAll(ctx context.Context) ([]leave.Leave, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) FindByID(ctx context.Context, id string) (*leave.Leave, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLeaveRepository) FindByUser(ctx context.Context, userID string) ([]leave.Leave, error) {
	if f.findByUserFn != nil {
		return f.findByUserFn(ctx, userID)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) FindByStatus(ctx context.Context, status string) ([]leave.Leave, error) {
	if f.findByStatusFn != nil {
		return f.findByStatusFn(ctx, status)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) Update(ctx context.Context, l *leave.Leave) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, l)
	}
	return nil
}

func (f *fakeLeaveRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

type fakeUserRepository struct {
	findByIDFn func(ctx context.Context, id string) (*user.User, error)
	updateFn   func(ctx context.Context, u *user.User) error
}

func (f *fakeUserRepository) WithTx(tx *gorm.DB) user.Repository { return f }

func (f *fakeUserRepository) Create(ctx context.Context, u *user.User) error { return nil }

func (f *fakeUserRepository) FindAll(ctx context.Context) ([]user.User, error) { return nil, nil }

func (f *fakeUserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) FindActive(ctx context.Context) ([]user.User, error) { return nil, nil }

func (f *fakeUserRepository) FindByDepartment(ctx context.Context, department string) ([]user.User, error) {
	return nil, nil
}

func (f *fakeUserRepository) FindByRole(ctx context.Context, role string) ([]user.User, error) {
	return nil, nil
}

func (f *fakeUserRepository) Update(ctx context.Context, u *user.User) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, u)
	}
	return nil
}

func (f *fakeUserRepository) Delete(ctx context.Context, id string) error { return nil }

type fakeOutboxRepository struct {
	createFn func(ctx context.Context, event kafka.OutboxEvent) error
}

func (f *fakeOutboxRepository) WithTx(tx *gorm.DB) kafka.OutboxRepository { return f }

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	if f.createFn != nil {
		return f.createFn(ctx, event)
	}
	return nil
}

func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error { return nil }

func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

type leaveServiceDeps struct {
	sqlMock  sqlmock.Sqlmock
	service  leave.Service
	repo     *fakeLeaveRepository
	userRepo *fakeUserRepository
	outbox   *fakeOutboxRepository
	close    func()
}

func setupLeaveServiceTest(t *testing.T) *leaveServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	assert.NoError(t, err)

	repo := &fakeLeaveRepository{}
	userRepo := &fakeUserRepository{}
	outbox := &fakeOutboxRepository{}
	svc := leave.NewService(gormDB, repo, userRepo, outbox)

	return &leaveServiceDeps{
		sqlMock:  sqlMock,
		service:  svc,
		repo:     repo,
		userRepo: userRepo,
		outbox:   outbox,
		close:    func() { db.Close() },
	}
}

func activeUser(id uuid.UUID, vacationDays int) *user.User {
	return &user.User{
		ID:           id,
		Email:        "budi@example.com",
		Role:         user.RoleEmployee,
		VacationDays: vacationDays,
		IsActive:     true,
	}
}

func TestLeaveService_Create(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("success paid leave", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.close()

		deps.userRepo.findByIDFn = func(ctx context.Context, id string) (*user.User, error) {
			assert.Equal(t, userID.String(), id)
			return activeUser(userID, 10), nil
		}
		deps.repo.createFn = func(ctx context.Context, l *leave.Leave) error {
			assert.Equal(t, userID, l.UserID)
			assert.Equal(t, leave.TypePaid, l.LeaveType)
			assert.Equal(t, 5, l.TotalDays)
			assert.Equal(t, leave.StatusPending, l.Status)
			return nil
		}

		resp, err := deps.service.Create(ctx, userID.String(), leave.CreateLeaveRequest{
			LeaveType: leave.TypePaid,
			StartDate: "2026-09-07",
			EndDate:   "2026-09-11",
			Reason:    "Liburan keluarga",
		})

		assert.NoError(t, err)
		assert.Equal(t, 5, resp.TotalDays)
		assert.Equal(t, leave.StatusPending, resp.Status)
	})

	t.Run("single day counts as one", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.close()

		deps.userRepo.findByIDFn = func(ctx context.Context, id string) (*user.User, error) {
			return activeUser(userID, 10), nil
		}

		resp, err := deps.service.Create(ctx, userID.String(), leave.CreateLeaveRequest{
			LeaveType: leave.TypeSick,
			StartDate: "2026-09-07",
			EndDate:   "2026-09-07",
		})

		assert.NoError(t, err)
		assert.Equal(t, 1, resp.TotalDays)
	})

	t.Run("negative insufficient balance", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.close()

		deps.userRepo.findByIDFn = func(ctx context.Context, id string) (*user.User, error) {
			return activeUser(userID, 3), nil
		}

		_, err := deps.service.Create(ctx, userID.String(), leave.CreateLeaveRequest{
			LeaveType: leave.TypePaid,
			StartDate: "2026-09-07",
			EndDate:   "2026-09-11",
		})

		assert.ErrorIs(t, err, leaveerrors.ErrInsufficientBalance)
	})

	t.Run("unpaid leave skips balance check", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.close()

		deps.userRepo.findByIDFn = func(ctx context.Context, id string) (*user.User, error) {
			return activeUser(userID, 0), nil
		}

		resp, err := deps.service.Create(ctx, userID.String(), leave.CreateLeaveRequest{
			LeaveType: leave.TypeUnpaid,
			StartDate: "2026-09-07",
			EndDate:   "2026-09-11",
		})

		assert.NoError(t, err)
		assert.Equal(t, 5, resp.TotalDays)
	})

	t.Run("negative end before start", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.close()

		_, err := deps.service.Create(ctx, userID.String(), leave.CreateLeaveRequest{
			LeaveType: leave.TypePaid,
			StartDate: "2026-09-11",
			EndDate:   "2026-09-07",
		})

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateRange)
	})
}

func TestLeaveService_Approve(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	approverID := uuid.New()
	leaveID := uuid.New()

	pendingPaidLeave := func() *leave.Leave {
		return &leave.Leave{
			ID:        leaveID,
			UserID:    userID,
			LeaveType: leave.TypePaid,
			StartDate: time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, 9, 11, 0, 0, 0, 0, time.UTC),
			TotalDays: 5,
			Status:    leave.StatusPending,
		}
	}

	t.Run("success deducts balance and records outbox", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.Leave, error) {
			return pendingPaidLeave(), nil
		}
		deps.userRepo.findByIDFn = func(ctx context.Context, id string) (*user.User, error) {
			return activeUser(userID, 10), nil
		}

		var deducted int
		deps.userRepo.updateFn = func(ctx context.Context, u *user.User) error {
			deducted = u.VacationDays
			return nil
		}

		var outboxTopic string
		deps.outbox.createFn = func(ctx context.Context, event kafka.OutboxEvent) error {
			outboxTopic = event.Topic
			assert.Equal(t, "leave_approved", event.EventType)
			assert.Equal(t, leaveID.String(), event.AggregateID)
			return nil
		}

		resp, err := deps.service.Approve(ctx, approverID.String(), leaveID.String())

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusApproved, resp.Status)
		assert.Equal(t, 5, deducted)
		assert.Equal(t, "hr.leave.lifecycle.v1", outboxTopic)
		assert.NotNil(t, resp.ApprovedBy)
		assert.Equal(t, approverID.String(), *resp.ApprovedBy)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative not pending", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.Leave, error) {
			l := pendingPaidLeave()
			l.Status = leave.StatusApproved
			return l, nil
		}

		_, err := deps.service.Approve(ctx, approverID.String(), leaveID.String())

		assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotPending)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative insufficient balance at approval", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.Leave, error) {
			return pendingPaidLeave(), nil
		}
		deps.userRepo.findByIDFn = func(ctx context.Context, id string) (*user.User, error) {
			return activeUser(userID, 2), nil
		}

		_, err := deps.service.Approve(ctx, approverID.String(), leaveID.String())

		assert.ErrorIs(t, err, leaveerrors.ErrInsufficientBalance)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("unpaid leave does not touch balance", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.Leave, error) {
			l := pendingPaidLeave()
			l.LeaveType = leave.TypeUnpaid
			return l, nil
		}

		balanceTouched := false
		deps.userRepo.updateFn = func(ctx context.Context, u *user.User) error {
			balanceTouched = true
			return nil
		}

		resp, err := deps.service.Approve(ctx, approverID.String(), leaveID.String())

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusApproved, resp.Status)
		assert.False(t, balanceTouched)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestLeaveService_Reject(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	approverID := uuid.New()
	leaveID := uuid.New()

	t.Run("success keeps balance untouched", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.close()

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.Leave, error) {
			return &leave.Leave{
				ID:        leaveID,
				UserID:    userID,
				LeaveType: leave.TypePaid,
				TotalDays: 5,
				Status:    leave.StatusPending,
			}, nil
		}

		balanceTouched := false
		deps.userRepo.updateFn = func(ctx context.Context, u *user.User) error {
			balanceTouched = true
			return nil
		}

		resp, err := deps.service.Reject(ctx, approverID.String(), leaveID.String(), "Proyek sedang sibuk")

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusRejected, resp.Status)
		assert.NotNil(t, resp.RejectionReason)
		assert.Equal(t, "Proyek sedang sibuk", *resp.RejectionReason)
		assert.NotNil(t, resp.ApprovedBy)
		assert.NotNil(t, resp.ApprovedAt, "reject juga menyimpan kapan keputusan diambil")
		assert.False(t, balanceTouched)
	})

	t.Run("negative missing reason", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.close()

		_, err := deps.service.Reject(ctx, approverID.String(), leaveID.String(), "")

		assert.ErrorIs(t, err, leaveerrors.ErrRejectionReasonRequired)
	})

	t.Run("negative already approved", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.close()

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.Leave, error) {
			return &leave.Leave{ID: leaveID, UserID: userID, Status: leave.StatusApproved}, nil
		}

		_, err := deps.service.Reject(ctx, approverID.String(), leaveID.String(), "terlambat")

		assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotPending)
	})
}

func TestLeaveService_Cancel(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	leaveID := uuid.New()

	t.Run("success owner cancels pending", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.close()

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.Leave, error) {
			return &leave.Leave{ID: leaveID, UserID: userID, Status: leave.StatusPending}, nil
		}

		resp, err := deps.service.Cancel(ctx, userID.String(), leaveID.String())

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusCanceled, resp.Status)
	})

	t.Run("negative not owner", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.close()

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.Leave, error) {
			return &leave.Leave{ID: leaveID, UserID: userID, Status: leave.StatusPending}, nil
		}

		_, err := deps.service.Cancel(ctx, uuid.New().String(), leaveID.String())

		assert.ErrorIs(t, err, leaveerrors.ErrNotLeaveOwner)
	})

	t.Run("negative already cancelled", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.close()

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.Leave, error) {
			return &leave.Leave{ID: leaveID, UserID: userID, Status: leave.StatusCanceled}, nil
		}

		_, err := deps.service.Cancel(ctx, userID.String(), leaveID.String())

		assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotPending)
	})
}

func TestLeaveService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("negative not found", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.close()

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.Leave, error) {
			return nil, gorm.ErrRecordNotFound
		}

		_, err := deps.service.GetByID(ctx, uuid.New().String())

		assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotFound)
	})

	t.Run("negative repo error passes through", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.close()

		dbErr := errors.New("db error")
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.Leave, error) {
			return nil, dbErr
		}

		_, err := deps.service.GetByID(ctx, uuid.New().String())

		assert.ErrorIs(t, err, dbErr)
	})
}
