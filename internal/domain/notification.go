package domain

import "time"

type Notification struct {
	ID        int64     `db:"id" json:"id"`
	PatientID *int64    `db:"patient_id" json:"patient_id,omitempty"`
	Message   string    `db:"message" json:"message"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

func (n Notification) PrimaryKey() int64 { return n.ID }

// PatientNotification is a row of the patient_notifications view, which
// joins notifications with the patient they concern.
type PatientNotification struct {
	ID               int64     `db:"id" json:"id"`
	PatientID        *int64    `db:"patient_id" json:"patient_id,omitempty"`
	PatientFirstName *string   `db:"patient_firstname" json:"patient_firstname,omitempty"`
	PatientLastName  *string   `db:"patient_lastname" json:"patient_lastname,omitempty"`
	Message          string    `db:"message" json:"message"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
}

func (n PatientNotification) PrimaryKey() int64 { return n.ID }
