package service

import (
	"context"
	"fmt"

	apperrors "courtflow/internal/errors"
	"courtflow/internal/logging"
	"courtflow/internal/model"
	"courtflow/internal/mq"
	"courtflow/internal/repository"
)

// Event is the payload published to the event stream alongside each
// notification row. Downstream delivery (email, push) consumes the stream.
type Event struct {
	Kind      string `json:"kind"`
	UserID    uint   `json:"user_id"`
	CaseID    *uint  `json:"case_id,omitempty"`
	HearingID *uint  `json:"hearing_id,omitempty"`
	Message   string `json:"message"`
}

// NotificationService writes in-app notifications and mirrors them onto the
// event stream.
type NotificationService interface {
	// Notify records a notification for a user. Publication to kafka is
	// best-effort: a broker outage never fails the business operation.
	Notify(ctx context.Context, userID uint, caseID, hearingID *uint, kind, message string)
	ListOwn(ctx context.Context, actorID uint, unreadOnly bool) ([]model.Notification, error)
	MarkRead(ctx context.Context, actorID uint, id uint) error
}

type notificationService struct {
	repo     repository.NotificationRepository
	producer *mq.Producer
}

// NewNotificationService builds a NotificationService.
func NewNotificationService(repo repository.NotificationRepository, producer *mq.Producer) NotificationService {
	return &notificationService{repo: repo, producer: producer}
}

func (s *notificationService) Notify(ctx context.Context, userID uint, caseID, hearingID *uint, kind, message string) {
	l := logging.FromContext(ctx)
	n := &model.Notification{
		UserID:    userID,
		CaseID:    caseID,
		HearingID: hearingID,
		Kind:      kind,
		Message:   message,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		l.Error("notification write failed", "user_id", userID, "kind", kind, "error", err)
		return
	}
	event := Event{Kind: kind, UserID: userID, CaseID: caseID, HearingID: hearingID, Message: message}
	if err := s.producer.PublishEvent(ctx, fmt.Sprintf("user-%d", userID), event); err != nil {
		l.Warn("event publish failed", "kind", kind, "error", err)
	}
}

func (s *notificationService) ListOwn(ctx context.Context, actorID uint, unreadOnly bool) ([]model.Notification, error) {
	return s.repo.ListByUser(ctx, actorID, unreadOnly)
}

func (s *notificationService) MarkRead(ctx context.Context, actorID uint, id uint) error {
	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return apperrors.ErrNotFound
	}
	if n.UserID != actorID {
		return apperrors.ErrNotFound
	}
	return s.repo.MarkRead(ctx, id)
}
