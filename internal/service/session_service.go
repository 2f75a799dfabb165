package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"time"

	"github.com/njprem/Thomas_Hospital_BackEnd/internal/domain"
	"github.com/njprem/Thomas_Hospital_BackEnd/internal/util"
)

var (
	ErrMissingToken     = errors.New("no token provided")
	ErrSignatureInvalid = errors.New("unauthorized")
	ErrTokenExpired     = errors.New("token expired")
)

// Exactly one token after the scheme; anything else counts as no token.
var bearerPattern = regexp.MustCompile(`^\s*[Bb]earer\s+(\S+)\s*$`)

// SubjectLookup reports whether the subject a token is about still exists.
type SubjectLookup func(ctx context.Context, subjectID int64) (bool, error)

// Verification is the outcome of a successful Verify. Expired is set when
// the token was accepted despite being past its expiry.
type Verification struct {
	Token     string
	SubjectID int64
	Claims    *util.Claims
	Expired   bool
}

type SessionService struct {
	tokens        *util.JWTManager
	acceptExpired bool
	logger        *log.Logger
}

type SessionOption func(*SessionService)

func WithSessionLogger(logger *log.Logger) SessionOption {
	return func(s *SessionService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSessionService builds the session authority. With acceptExpired set, a
// correctly signed token past its expiry is logged and still let through;
// only a missing or badly signed token stops a request.
func NewSessionService(tokens *util.JWTManager, acceptExpired bool, opts ...SessionOption) *SessionService {
	s := &SessionService{
		tokens:        tokens,
		acceptExpired: acceptExpired,
		logger:        log.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *SessionService) AcceptsExpired() bool {
	return s.acceptExpired
}

func (s *SessionService) Issue(subjectID int64) (*domain.SessionToken, error) {
	token, claims, err := s.tokens.Generate(subjectID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &domain.SessionToken{
		Token:     token,
		SubjectID: subjectID,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Verify checks the value of an Authorization header.
func (s *SessionService) Verify(authorization string) (*Verification, error) {
	match := bearerPattern.FindStringSubmatch(authorization)
	if len(match) < 2 {
		return nil, ErrMissingToken
	}
	token := match[1]

	claims, err := s.tokens.Parse(token)
	switch {
	case err == nil:
		return &Verification{Token: token, SubjectID: claims.UserID, Claims: claims}, nil
	case errors.Is(err, util.ErrTokenExpired):
		s.logger.Printf("session: token for subject %d expired at %s", claims.UserID, claims.ExpiresAt.Time.UTC().Format(time.RFC3339))
		if !s.acceptExpired {
			return nil, ErrTokenExpired
		}
		return &Verification{Token: token, SubjectID: claims.UserID, Claims: claims, Expired: true}, nil
	default:
		s.logger.Printf("session: rejected token: %v", err)
		return nil, ErrSignatureInvalid
	}
}

// Refresh issues a fresh token once lookup confirms the subject still exists.
func (s *SessionService) Refresh(ctx context.Context, subjectID int64, lookup SubjectLookup) (*domain.SessionToken, error) {
	exists, err := lookup(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("refresh subject %d: %w", subjectID, domain.ErrNotFound)
	}
	return s.Issue(subjectID)
}
