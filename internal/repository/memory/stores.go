package memory

import (
	"github.com/njprem/Thomas_Hospital_BackEnd/internal/domain"
	"github.com/njprem/Thomas_Hospital_BackEnd/internal/repository/ports"
)

// Stores mirrors postgres.Stores for runs without a database. Patient names
// are not known here, so the notification feed carries only the patient id.
type Stores struct {
	Users                *Table[domain.User]
	Notifications        *Table[domain.Notification]
	PatientNotifications *View[domain.Notification, domain.PatientNotification]
}

func NewStores(opts ...Option) (*Stores, error) {
	users, err := NewTable[domain.User](ports.UsersTable, opts...)
	if err != nil {
		return nil, err
	}
	notifications, err := NewTable[domain.Notification](ports.NotificationsTable, opts...)
	if err != nil {
		return nil, err
	}
	feed, err := NewView(ports.PatientNotificationsTable, notifications, func(n domain.Notification) domain.PatientNotification {
		return domain.PatientNotification{
			ID:        n.ID,
			PatientID: n.PatientID,
			Message:   n.Message,
			CreatedAt: n.CreatedAt,
		}
	})
	if err != nil {
		return nil, err
	}
	return &Stores{
		Users:                users,
		Notifications:        notifications,
		PatientNotifications: feed,
	}, nil
}
