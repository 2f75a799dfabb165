package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/njprem/Thomas_Hospital_BackEnd/internal/domain"
	"github.com/njprem/Thomas_Hospital_BackEnd/internal/repository/ports"
	"github.com/njprem/Thomas_Hospital_BackEnd/internal/util"
)

// AdminService manages staff accounts. Email and phone-number uniqueness is
// checked before writing, which two concurrent registrations can both pass;
// only a unique index in the database closes that window, and its violation
// surfaces as domain.ErrDuplicate.
type AdminService struct {
	users    ports.TableStore[domain.User]
	sessions *SessionService
	now      func() time.Time
}

type RegisterAdminInput struct {
	FirstName       string
	LastName        string
	Email           string
	Number          string
	Address         string
	DOB             string
	Gender          string
	Password        string
	ConfirmPassword string
	AdminType       string
	Department      string
}

type ProfileInput struct {
	FirstName string
	LastName  string
	Email     string
	Number    string
	Address   string
	DOB       string
}

type AuthResult struct {
	User    *domain.User
	Session *domain.SessionToken
}

func NewAdminService(users ports.TableStore[domain.User], sessions *SessionService) *AdminService {
	return &AdminService{
		users:    users,
		sessions: sessions,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *AdminService) Register(ctx context.Context, in RegisterAdminInput) (*domain.User, error) {
	dob, err := parseDate(in.DOB)
	if err != nil {
		return nil, err
	}
	now := s.now()
	age := domain.AgeInYears(dob, now)
	if age < 1 {
		return nil, ErrAdminTooYoung
	}
	if in.Password != in.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}
	email := strings.TrimSpace(in.Email)
	number := strings.TrimSpace(in.Number)
	if email == "" || number == "" || in.Password == "" {
		return nil, ErrMissingFields
	}

	if err := s.ensureUnique(ctx, "email", email, 0, ErrEmailTaken); err != nil {
		return nil, err
	}
	if err := s.ensureUnique(ctx, "number", number, 0, ErrNumberTaken); err != nil {
		return nil, err
	}

	hash, err := util.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Insert(ctx, domain.User{
		FirstName:  strings.TrimSpace(in.FirstName),
		LastName:   strings.TrimSpace(in.LastName),
		Email:      email,
		Number:     number,
		Address:    optionalString(in.Address),
		DOB:        dob,
		Gender:     optionalString(in.Gender),
		Age:        age,
		Password:   hash,
		AdminType:  strings.TrimSpace(in.AdminType),
		Department: optionalString(in.Department),
		DateCreate: now,
	})
	if err != nil {
		return nil, fmt.Errorf("register admin: %w", err)
	}
	return user, nil
}

func (s *AdminService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	users, err := s.users.Find(ctx, "email", strings.TrimSpace(email))
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, ErrInvalidCredentials
	}
	user := users[0]
	if !util.VerifyPassword(password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	session, err := s.sessions.Issue(user.PrimaryKey())
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: &user, Session: session}, nil
}

// UpdateProfile overwrites the editable profile columns and hands back a
// fresh token for the updated account.
func (s *AdminService) UpdateProfile(ctx context.Context, id int64, in ProfileInput) (*AuthResult, error) {
	dob, err := parseDate(in.DOB)
	if err != nil {
		return nil, err
	}
	now := s.now()
	age := domain.AgeInYears(dob, now)
	if age < 1 {
		return nil, ErrAdminTooYoung
	}

	existing, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	email := strings.TrimSpace(in.Email)
	number := strings.TrimSpace(in.Number)
	if email == "" || number == "" {
		return nil, ErrMissingFields
	}
	if email != existing.Email {
		if err := s.ensureUnique(ctx, "email", email, id, ErrEmailTaken); err != nil {
			return nil, err
		}
	}
	if number != existing.Number {
		if err := s.ensureUnique(ctx, "number", number, id, ErrNumberTaken); err != nil {
			return nil, err
		}
	}

	updated, err := s.users.Update(ctx, id, domain.Record{
		"firstname":  strings.TrimSpace(in.FirstName),
		"lastname":   strings.TrimSpace(in.LastName),
		"email":      email,
		"number":     number,
		"age":        age,
		"dob":        dob,
		"address":    optionalString(in.Address),
		"dateupdate": now,
	})
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}

	session, err := s.sessions.Issue(updated.PrimaryKey())
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: updated, Session: session}, nil
}

func (s *AdminService) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	users, err := s.users.Find(ctx, "id", id)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, ErrUserNotFound
	}
	return &users[0], nil
}

// Exists is the lookup used when refreshing a session.
func (s *AdminService) Exists(ctx context.Context, id int64) (bool, error) {
	users, err := s.users.Find(ctx, "id", id)
	if err != nil {
		return false, err
	}
	return len(users) > 0, nil
}

func (s *AdminService) Delete(ctx context.Context, id int64) error {
	return s.users.Delete(ctx, id)
}

// ListByAdminType returns every staff member of each known admin type, keyed
// by type. Types without staff map to an empty slice.
func (s *AdminService) ListByAdminType(ctx context.Context) (map[string][]domain.User, error) {
	grouped := make(map[string][]domain.User, len(domain.AdminTypes))
	for _, adminType := range domain.AdminTypes {
		users, err := s.users.Find(ctx, "admin_type", adminType)
		if err != nil {
			return nil, err
		}
		grouped[adminType] = users
	}
	return grouped, nil
}

func (s *AdminService) ensureUnique(ctx context.Context, column, value string, self int64, taken error) error {
	matches, err := s.users.Find(ctx, column, value)
	if err != nil {
		return err
	}
	for _, u := range matches {
		if u.ID != self {
			return taken
		}
	}
	return nil
}

func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, ErrInvalidDOB
}

func optionalString(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
