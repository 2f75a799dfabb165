package ports

// Tables and views the API reads and writes.
var (
	UsersTable                = NewTableHandle("users", "id", "id", "datecreate")
	NotificationsTable        = NewTableHandle("notifications", "id", "id", "created_at")
	PatientNotificationsTable = NewViewHandle("patient_notifications", "id")
)
