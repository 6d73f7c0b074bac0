package message_test

import (
	"context"
	"testing"
	"time"

	"go-hrm/internal/message"
	messageerrors "go-hrm/internal/message/errors"
	"go-hrm/internal/user"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeMessageRepository struct {
	createFn                 func(ctx context.Context, m *message.Message) error
	findByIDFn               func(ctx context.Context, id string) (*message.Message, error)
	findByRecipientFn        func(ctx context.Context, userID string) ([]message.Message, error)
	findBySenderFn           func(ctx context.Context, userID string) ([]message.Message, error)
	findUnreadByRecipientFn  func(ctx context.Context, userID string) ([]message.Message, error)
	countUnreadByRecipientFn func(ctx context.Context, userID string) (int64, error)
	updateFn                 func(ctx context.Context, m *message.Message) error
	deleteFn                 func(ctx context.Context, id string) error
}

func (f *fakeMessageRepository) WithTx(tx *gorm.DB) message.Repository { return f }

func (f *fakeMessageRepository) Create(ctx context.Context, m *message.Message) error {
	if f.createFn != nil {
		return f.createFn(ctx, m)
	}
	return nil
}

func (f *fakeMessageRepository) FindByID(ctx context.Context, id string) (*message.Message, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeMessageRepository) FindByRecipient(ctx context.Context, userID string) ([]message.Message, error) {
	if f.findByRecipientFn != nil {
		return f.findByRecipientFn(ctx, userID)
	}
	return nil, nil
}

func (f *fakeMessageRepository) FindBySender(ctx context.Context, userID string) ([]message.Message, error) {
	if f.findBySenderFn != nil {
		return f.findBySenderFn(ctx, userID)
	}
	return nil, nil
}

func (f *fakeMessageRepository) FindUnreadByRecipient(ctx context.Context, userID string) ([]message.Message, error) {
	if f.findUnreadByRecipientFn != nil {
		return f.findUnreadByRecipientFn(ctx, userID)
	}
	return nil, nil
}

func (f *fakeMessageRepository) CountUnreadByRecipient(ctx context.Context, userID string) (int64, error) {
	if f.countUnreadByRecipientFn != nil {
		return f.countUnreadByRecipientFn(ctx, userID)
	}
	return 0, nil
}

func (f *fakeMessageRepository) Update(ctx context.Context, m *message.Message) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, m)
	}
	return nil
}

func (f *fakeMessageRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

type fakeUserRepository struct {
	findByIDFn func(ctx context.Context, id string) (*user.User, error)
}

func (f *fakeUserRepository) WithTx(tx *gorm.DB) user.Repository { return f }

func (f *fakeUserRepository) Create(ctx context.Context, u *user.User) error { return nil }

func (f *fakeUserRepository) FindAll(ctx context.Context) ([]user.User, error) { return nil, nil }

func (f *fakeUserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return &user.User{IsActive: true}, nil
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

func (f *fakeUserRepository) Update(ctx context.Context, u *user.User) error { return nil }

func (f *fakeUserRepository) Delete(ctx context.Context, id string) error { return nil }

type messageServiceDeps struct {
	service   message.Service
	repo      *fakeMessageRepository
	userRepo  *fakeUserRepository
	redismock redismock.ClientMock
}

func setupMessageServiceTest(t *testing.T) *messageServiceDeps {
	t.Helper()

	rdb, redisMock := redismock.NewClientMock()
	repo := &fakeMessageRepository{}
	userRepo := &fakeUserRepository{}
	return &messageServiceDeps{
		service:   message.NewService(repo, userRepo, rdb),
		repo:      repo,
		userRepo:  userRepo,
		redismock: redisMock,
	}
}

func TestMessageService_Send(t *testing.T) {
	ctx := context.Background()
	senderID := uuid.New()
	recipientID := uuid.New()

	t.Run("success invalidates recipient unread cache", func(t *testing.T) {
		deps := setupMessageServiceTest(t)

		deps.redismock.ExpectDel(message.GetUnreadCountKey(recipientID.String())).SetVal(1)

		var created *message.Message
		deps.repo.createFn = func(ctx context.Context, m *message.Message) error {
			created = m
			return nil
		}

		resp, err := deps.service.Send(ctx, senderID.String(), message.SendMessageRequest{
			RecipientID: recipientID.String(),
			Subject:     "Jadwal one-on-one",
			Content:     "Besok jam 10 ya.",
		})

		assert.NoError(t, err)
		assert.Equal(t, senderID, created.SenderID)
		assert.Equal(t, recipientID, created.RecipientID)
		assert.False(t, created.IsRead)
		assert.Nil(t, created.ReadAt)
		assert.False(t, resp.IsRead)
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("negative recipient not found", func(t *testing.T) {
		deps := setupMessageServiceTest(t)

		deps.userRepo.findByIDFn = func(ctx context.Context, id string) (*user.User, error) {
			if id == recipientID.String() {
				return nil, gorm.ErrRecordNotFound
			}
			return &user.User{ID: senderID, IsActive: true}, nil
		}

		_, err := deps.service.Send(ctx, senderID.String(), message.SendMessageRequest{
			RecipientID: recipientID.String(),
			Subject:     "Halo",
			Content:     "Tes",
		})

		assert.ErrorIs(t, err, messageerrors.ErrRecipientNotFound)
	})
}

func TestMessageService_MarkAsRead(t *testing.T) {
	ctx := context.Background()
	senderID := uuid.New()
	recipientID := uuid.New()
	messageID := uuid.New()

	unreadMessage := func() *message.Message {
		return &message.Message{
			ID:          messageID,
			SenderID:    senderID,
			RecipientID: recipientID,
			Subject:     "Pengumuman",
			IsRead:      false,
		}
	}

	t.Run("success stamps read_at and invalidates cache", func(t *testing.T) {
		deps := setupMessageServiceTest(t)

		deps.redismock.ExpectDel(message.GetUnreadCountKey(recipientID.String())).SetVal(1)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*message.Message, error) {
			return unreadMessage(), nil
		}

		var updated *message.Message
		deps.repo.updateFn = func(ctx context.Context, m *message.Message) error {
			updated = m
			return nil
		}

		resp, err := deps.service.MarkAsRead(ctx, recipientID.String(), messageID.String())

		assert.NoError(t, err)
		assert.True(t, updated.IsRead)
		assert.NotNil(t, updated.ReadAt)
		assert.True(t, resp.IsRead)
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("success already read is a no-op", func(t *testing.T) {
		deps := setupMessageServiceTest(t)

		readAt := time.Now().UTC().Add(-time.Hour)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*message.Message, error) {
			m := unreadMessage()
			m.IsRead = true
			m.ReadAt = &readAt
			return m, nil
		}

		updateCalled := false
		deps.repo.updateFn = func(ctx context.Context, m *message.Message) error {
			updateCalled = true
			return nil
		}

		resp, err := deps.service.MarkAsRead(ctx, recipientID.String(), messageID.String())

		assert.NoError(t, err)
		assert.False(t, updateCalled)
		assert.True(t, resp.IsRead)
		assert.Equal(t, readAt.Format(time.RFC3339), *resp.ReadAt)
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("negative sender cannot mark as read", func(t *testing.T) {
		deps := setupMessageServiceTest(t)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*message.Message, error) {
			return unreadMessage(), nil
		}

		_, err := deps.service.MarkAsRead(ctx, senderID.String(), messageID.String())

		assert.ErrorIs(t, err, messageerrors.ErrNotRecipient)
	})

	t.Run("negative outsider is not a participant", func(t *testing.T) {
		deps := setupMessageServiceTest(t)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*message.Message, error) {
			return unreadMessage(), nil
		}

		_, err := deps.service.MarkAsRead(ctx, uuid.New().String(), messageID.String())

		assert.ErrorIs(t, err, messageerrors.ErrNotParticipant)
	})
}

func TestMessageService_UnreadCount(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	cacheKey := message.GetUnreadCountKey(userID.String())

	t.Run("success cache hit skips the repo", func(t *testing.T) {
		deps := setupMessageServiceTest(t)

		deps.redismock.ExpectGet(cacheKey).SetVal("7")

		repoCalled := false
		deps.repo.countUnreadByRecipientFn = func(ctx context.Context, uid string) (int64, error) {
			repoCalled = true
			return 0, nil
		}

		count, err := deps.service.UnreadCount(ctx, userID.String())

		assert.NoError(t, err)
		assert.Equal(t, int64(7), count)
		assert.False(t, repoCalled)
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("success cache miss counts and backfills", func(t *testing.T) {
		deps := setupMessageServiceTest(t)

		deps.redismock.ExpectGet(cacheKey).RedisNil()
		deps.redismock.ExpectSet(cacheKey, "3", 30*time.Second).SetVal("OK")

		deps.repo.countUnreadByRecipientFn = func(ctx context.Context, uid string) (int64, error) {
			assert.Equal(t, userID.String(), uid)
			return 3, nil
		}

		count, err := deps.service.UnreadCount(ctx, userID.String())

		assert.NoError(t, err)
		assert.Equal(t, int64(3), count)
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})
}

func TestMessageService_GetByID(t *testing.T) {
	ctx := context.Background()
	senderID := uuid.New()
	recipientID := uuid.New()
	messageID := uuid.New()

	t.Run("success sender can read their own message", func(t *testing.T) {
		deps := setupMessageServiceTest(t)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*message.Message, error) {
			return &message.Message{ID: messageID, SenderID: senderID, RecipientID: recipientID}, nil
		}

		resp, err := deps.service.GetByID(ctx, senderID.String(), messageID.String())

		assert.NoError(t, err)
		assert.Equal(t, messageID.String(), resp.ID)
	})

	t.Run("negative not found", func(t *testing.T) {
		deps := setupMessageServiceTest(t)

		_, err := deps.service.GetByID(ctx, senderID.String(), messageID.String())

		assert.ErrorIs(t, err, messageerrors.ErrMessageNotFound)
	})
}

func TestMessageService_Delete(t *testing.T) {
	ctx := context.Background()
	senderID := uuid.New()
	recipientID := uuid.New()
	messageID := uuid.New()

	t.Run("success unread delete invalidates recipient cache", func(t *testing.T) {
		deps := setupMessageServiceTest(t)

		deps.redismock.ExpectDel(message.GetUnreadCountKey(recipientID.String())).SetVal(1)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*message.Message, error) {
			return &message.Message{ID: messageID, SenderID: senderID, RecipientID: recipientID, IsRead: false}, nil
		}

		err := deps.service.Delete(ctx, recipientID.String(), messageID.String())

		assert.NoError(t, err)
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("success read delete leaves cache alone", func(t *testing.T) {
		deps := setupMessageServiceTest(t)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*message.Message, error) {
			return &message.Message{ID: messageID, SenderID: senderID, RecipientID: recipientID, IsRead: true}, nil
		}

		err := deps.service.Delete(ctx, recipientID.String(), messageID.String())

		assert.NoError(t, err)
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})
}
