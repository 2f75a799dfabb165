package http

import "github.com/njprem/Thomas_Hospital_BackEnd/internal/domain"

// ErrorResponse represents a generic error payload.
type ErrorResponse struct {
	Error string `json:"error" example:"invalid credentials"`
}

// MessageResponse reports the outcome of a form submission.
type MessageResponse struct {
	Message string `json:"message" example:"Admin deleted successfully"`
}

// RegisterAdminRequest carries the staff registration form.
type RegisterAdminRequest struct {
	FirstName       string `json:"firstname" example:"Ama"`
	LastName        string `json:"lastname" example:"Mensah"`
	Email           string `json:"email" example:"ama@thomas.test"`
	Number          string `json:"number" example:"0244000001"`
	Address         string `json:"address" example:"12 Ring Road"`
	DOB             string `json:"dob" example:"1990-04-12"`
	Gender          string `json:"gender" example:"Female"`
	Password        string `json:"password" example:"StrongPass!23"`
	ConfirmPassword string `json:"confirmPassword" example:"StrongPass!23"`
	AdminType       string `json:"adminType" example:"Doctor"`
	Department      string `json:"department" example:"Cardiology"`
}

// RegisterAdminResponse is returned once a staff member has been added.
type RegisterAdminResponse struct {
	Message string      `json:"message" example:"Admin added successfully!"`
	User    domain.User `json:"user"`
}

// LoginRequest carries email login fields.
type LoginRequest struct {
	Email    string `json:"email" example:"ama@thomas.test"`
	Password string `json:"password" example:"StrongPass!23"`
}

// LoginResponse carries the session for a signed-in staff member.
// TokenExpiration is in milliseconds since the Unix epoch.
type LoginResponse struct {
	Token           string      `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	User            domain.User `json:"user"`
	TokenExpiration int64       `json:"tokenExpiration" example:"1717236000000"`
	Message         string      `json:"message" example:"Login successfully!"`
}

// UpdateProfileRequest carries the editable profile fields.
type UpdateProfileRequest struct {
	FirstName string `json:"firstname" example:"Ama"`
	LastName  string `json:"lastname" example:"Mensah"`
	Email     string `json:"email" example:"ama@thomas.test"`
	Number    string `json:"number" example:"0244000001"`
	Address   string `json:"address" example:"12 Ring Road"`
	DOB       string `json:"dob" example:"1990-04-12"`
}

// ProfileResponse returns the updated user with a fresh token.
type ProfileResponse struct {
	Token   string      `json:"token"`
	User    domain.User `json:"user"`
	Message string      `json:"message" example:"Profile updated successfully!"`
}

// RefreshTokenRequest names the user a new token is wanted for.
type RefreshTokenRequest struct {
	User struct {
		ID int64 `json:"id" example:"42"`
	} `json:"user"`
}

// RefreshTokenResponse carries a new token. Expiration is in milliseconds
// since the Unix epoch.
type RefreshTokenResponse struct {
	Token      string `json:"token"`
	Expiration int64  `json:"expiration" example:"1717236000000"`
}

// StaffDirectoryResponse lists staff grouped by admin type.
type StaffDirectoryResponse struct {
	Receptionist []domain.User `json:"receptionist"`
	Doctor       []domain.User `json:"doctor"`
	Pharmacist   []domain.User `json:"pharmacist"`
	Nurse        []domain.User `json:"nurse"`
	Accountant   []domain.User `json:"accountant"`
	SuperAdmin   []domain.User `json:"superadmin"`
}

// CreateNotificationRequest posts a message to the notification feed.
type CreateNotificationRequest struct {
	PatientID *int64 `json:"patient_id,omitempty" example:"7"`
	Message   string `json:"message" example:"Lab results are ready"`
}

// NotificationsResponse wraps the notification feed.
type NotificationsResponse struct {
	Notifications []domain.PatientNotification `json:"notifications"`
}
