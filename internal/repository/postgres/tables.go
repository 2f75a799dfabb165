package postgres

import (
	"github.com/jmoiron/sqlx"

	"github.com/njprem/Thomas_Hospital_BackEnd/internal/domain"
	"github.com/njprem/Thomas_Hospital_BackEnd/internal/repository/ports"
)

// Stores groups the table stores the API works with.
type Stores struct {
	Users                *Table[domain.User]
	Notifications        *Table[domain.Notification]
	PatientNotifications *Table[domain.PatientNotification]
}

func NewStores(db *sqlx.DB) (*Stores, error) {
	users, err := NewTable[domain.User](db, ports.UsersTable)
	if err != nil {
		return nil, err
	}
	notifications, err := NewTable[domain.Notification](db, ports.NotificationsTable)
	if err != nil {
		return nil, err
	}
	patientNotifications, err := NewTable[domain.PatientNotification](db, ports.PatientNotificationsTable)
	if err != nil {
		return nil, err
	}
	return &Stores{
		Users:                users,
		Notifications:        notifications,
		PatientNotifications: patientNotifications,
	}, nil
}
