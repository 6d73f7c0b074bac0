package message

import (
	"context"
	"errors"
	"strconv"
	"time"

	messageerrors "go-hrm/internal/message/errors"
	"go-hrm/internal/user"
	usererrors "go-hrm/internal/user/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const UnreadCountKeyPrefix = "messages:unread:"

func GetUnreadCountKey(userID string) string {
	return UnreadCountKeyPrefix + userID
}

//go:generate mockgen -source=message_service.go -destination=mock/message_service_mock.go -package=mock
type Service interface {
	Send(ctx context.Context, senderID string, req SendMessageRequest) (MessageResponse, error)
	GetReceived(ctx context.Context, userID string) ([]MessageResponse, error)
	GetSent(ctx context.Context, userID string) ([]MessageResponse, error)
	GetUnread(ctx context.Context, userID string) ([]MessageResponse, error)
	UnreadCount(ctx context.Context, userID string) (int64, error)
	GetByID(ctx context.Context, actorID, id string) (MessageResponse, error)
	MarkAsRead(ctx context.Context, actorID, id string) (MessageResponse, error)
	Delete(ctx context.Context, actorID, id string) error
}

type service struct {
	repo     Repository
	userRepo user.Repository
	rdb      *redis.Client
	sf       *singleflight.Group
	logger   *zap.Logger
}

func NewService(repo Repository, userRepo user.Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("message.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("message.service")
	}
	return &service{
		repo:     repo,
		userRepo: userRepo,
		rdb:      rdb,
		sf:       &singleflight.Group{},
		logger:   l,
	}
}

func (s *service) Send(ctx context.Context, senderID string, req SendMessageRequest) (MessageResponse, error) {
	senderUUID, err := uuid.Parse(senderID)
	if err != nil {
		return MessageResponse{}, usererrors.ErrInvalidUserID
	}
	recipientUUID, err := uuid.Parse(req.RecipientID)
	if err != nil {
		return MessageResponse{}, usererrors.ErrInvalidUserID
	}

	if _, err := s.userRepo.FindByID(ctx, senderID); err != nil {
		return MessageResponse{}, usererrors.ErrUserNotFound
	}
	if _, err := s.userRepo.FindByID(ctx, req.RecipientID); err != nil {
		return MessageResponse{}, messageerrors.ErrRecipientNotFound
	}

	m := &Message{
		ID:          uuid.New(),
		SenderID:    senderUUID,
		RecipientID: recipientUUID,
		Subject:     req.Subject,
		Content:     req.Content,
		IsRead:      false,
	}

	if err := s.repo.Create(ctx, m); err != nil {
		s.logger.Error("send message persist failed", zap.Error(err))
		return MessageResponse{}, err
	}

	s.invalidateUnreadCount(ctx, req.RecipientID)

	s.logger.Info("message sent",
		zap.String("message_id", m.ID.String()),
		zap.String("sender_id", senderID),
		zap.String("recipient_id", req.RecipientID),
	)
	return mapToResponse(*m), nil
}

func (s *service) GetReceived(ctx context.Context, userID string) ([]MessageResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, usererrors.ErrInvalidUserID
	}
	messages, err := s.repo.FindByRecipient(ctx, userID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(messages), nil
}

func (s *service) GetSent(ctx context.Context, userID string) ([]MessageResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, usererrors.ErrInvalidUserID
	}
	messages, err := s.repo.FindBySender(ctx, userID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(messages), nil
}

func (s *service) GetUnread(ctx context.Context, userID string) ([]MessageResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, usererrors.ErrInvalidUserID
	}
	messages, err := s.repo.FindUnreadByRecipient(ctx, userID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(messages), nil
}

// UnreadCount dibaca sangat sering (polling badge di UI), jadi hasilnya
// di-cache sebentar di Redis dan query ke DB dirangkap dengan singleflight.
func (s *service) UnreadCount(ctx context.Context, userID string) (int64, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return 0, usererrors.ErrInvalidUserID
	}

	cacheKey := GetUnreadCountKey(userID)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			if count, err := strconv.ParseInt(cached, 10, 64); err == nil {
				return count, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		count, err := s.repo.CountUnreadByRecipient(ctx, userID)
		if err != nil {
			return nil, err
		}

		if s.rdb != nil {
			s.rdb.Set(ctx, cacheKey, strconv.FormatInt(count, 10), 30*time.Second)
		}

		return count, nil
	})
	if err != nil {
		return 0, err
	}

	return v.(int64), nil
}

func (s *service) GetByID(ctx context.Context, actorID, id string) (MessageResponse, error) {
	m, err := s.findForActor(ctx, actorID, id)
	if err != nil {
		return MessageResponse{}, err
	}
	return mapToResponse(*m), nil
}

// MarkAsRead idempoten: read_at hanya distempel sekali, pemanggilan
// berikutnya mengembalikan record apa adanya.
func (s *service) MarkAsRead(ctx context.Context, actorID, id string) (MessageResponse, error) {
	m, err := s.findForActor(ctx, actorID, id)
	if err != nil {
		return MessageResponse{}, err
	}
	if m.RecipientID.String() != actorID {
		return MessageResponse{}, messageerrors.ErrNotRecipient
	}

	if m.IsRead {
		return mapToResponse(*m), nil
	}

	now := time.Now().UTC()
	m.IsRead = true
	m.ReadAt = &now

	if err := s.repo.Update(ctx, m); err != nil {
		s.logger.Error("mark message read persist failed", zap.String("message_id", id), zap.Error(err))
		return MessageResponse{}, err
	}

	s.invalidateUnreadCount(ctx, actorID)

	return mapToResponse(*m), nil
}

func (s *service) Delete(ctx context.Context, actorID, id string) error {
	m, err := s.findForActor(ctx, actorID, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return messageerrors.ErrMessageNotFound
		}
		return err
	}

	if !m.IsRead {
		s.invalidateUnreadCount(ctx, m.RecipientID.String())
	}
	return nil
}

func (s *service) findForActor(ctx context.Context, actorID, id string) (*Message, error) {
	if _, err := uuid.Parse(actorID); err != nil {
		return nil, usererrors.ErrInvalidUserID
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, messageerrors.ErrInvalidMessageID
	}

	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, messageerrors.ErrMessageNotFound
		}
		return nil, err
	}

	if m.SenderID.String() != actorID && m.RecipientID.String() != actorID {
		return nil, messageerrors.ErrNotParticipant
	}
	return m, nil
}

func (s *service) invalidateUnreadCount(ctx context.Context, userID string) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, GetUnreadCountKey(userID)).Err(); err != nil {
		s.logger.Warn("invalidate unread count cache failed",
			zap.String("user_id", userID),
			zap.Error(err),
		)
	}
}

func mapToResponse(m Message) MessageResponse {
	resp := MessageResponse{
		ID:          m.ID.String(),
		SenderID:    m.SenderID.String(),
		RecipientID: m.RecipientID.String(),
		Subject:     m.Subject,
		Content:     m.Content,
		IsRead:      m.IsRead,
		CreatedAt:   m.CreatedAt.Format(time.RFC3339),
	}
	if m.ReadAt != nil {
		v := m.ReadAt.Format(time.RFC3339)
		resp.ReadAt = &v
	}
	return resp
}

func mapToListResponse(messages []Message) []MessageResponse {
	resp := make([]MessageResponse, len(messages))
	for i, m := range messages {
		resp[i] = mapToResponse(m)
	}
	return resp
}
