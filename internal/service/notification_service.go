package service

import (
	"context"
	"errors"
	"strings"

	"github.com/njprem/Thomas_Hospital_BackEnd/internal/domain"
	"github.com/njprem/Thomas_Hospital_BackEnd/internal/repository/ports"
)

var ErrEmptyNotification = errors.New("notification message is required")

// NotificationService writes to the notifications table and reads through
// the patient_notifications view.
type NotificationService struct {
	notifications ports.TableStore[domain.Notification]
	feed          ports.TableStore[domain.PatientNotification]
}

func NewNotificationService(notifications ports.TableStore[domain.Notification], feed ports.TableStore[domain.PatientNotification]) *NotificationService {
	return &NotificationService{notifications: notifications, feed: feed}
}

func (s *NotificationService) List(ctx context.Context) ([]domain.PatientNotification, error) {
	return s.feed.FindAll(ctx)
}

func (s *NotificationService) Create(ctx context.Context, patientID *int64, message string) (*domain.Notification, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrEmptyNotification
	}
	return s.notifications.Insert(ctx, domain.Notification{PatientID: patientID, Message: message})
}

func (s *NotificationService) Delete(ctx context.Context, id int64) error {
	return s.notifications.Delete(ctx, id)
}

// ClearAll removes every notification. There is no undo.
func (s *NotificationService) ClearAll(ctx context.Context) error {
	return s.notifications.ClearAll(ctx)
}
