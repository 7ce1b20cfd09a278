package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/portfolio-backend/internal/domain/entity"
	repo "github.com/oksasatya/portfolio-backend/internal/domain/repository"
	"github.com/oksasatya/portfolio-backend/pkg/helpers"
)

// SessionStore keeps one live session per admin.
type SessionStore interface {
	Save(ctx context.Context, s entity.AdminSession, ttl time.Duration) error
	// Get returns nil when the admin has no live session.
	Get(ctx context.Context, userID string) (*entity.AdminSession, error)
	Delete(ctx context.Context, userID string) error
}

type AuthService struct {
	Repo     repo.AdminUserRepository
	JWT      *helpers.JWTManager
	Sessions SessionStore
	Logger   *logrus.Logger
}

func NewAuthService(repo repo.AdminUserRepository, jwt *helpers.JWTManager, sessions SessionStore, logger *logrus.Logger) *AuthService {
	return &AuthService{Repo: repo, JWT: jwt, Sessions: sessions, Logger: logger}
}

type SignInResult struct {
	Session     entity.AdminSession
	AccessToken string
	ExpiresAt   time.Time
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SignIn checks the password and opens a new session, replacing any previous one.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*SignInResult, error) {
	u, err := s.Repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).Error("admin lookup failed")
		}
		return nil, err
	}
	if u == nil {
		helpers.CompareDummyPassword(password)
		return nil, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}

	sid := uuid.NewString()
	token, exp, err := s.JWT.GenerateAccessToken(u.ID, sid)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate access token failed")
		}
		return nil, err
	}
	sess := entity.AdminSession{
		UserID:      u.ID,
		SessionID:   sid,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		CreatedAt:   time.Now().UTC(),
	}
	if s.Sessions != nil {
		if err := s.Sessions.Save(ctx, sess, time.Until(exp)); err != nil {
			return nil, fmt.Errorf("save session: %w", err)
		}
	}
	sess.DisplayName = sess.Name()
	return &SignInResult{Session: sess, AccessToken: token, ExpiresAt: exp}, nil
}

// CurrentSession resolves a token to its live session. An invalid, expired or
// revoked token yields (nil, nil).
func (s *AuthService) CurrentSession(ctx context.Context, token string) (*entity.AdminSession, error) {
	if token == "" {
		return nil, nil
	}
	claims, err := s.JWT.ParseAccessToken(token)
	if err != nil {
		return nil, nil
	}

	var sess *entity.AdminSession
	if s.Sessions != nil {
		stored, err := s.Sessions.Get(ctx, claims.UserID)
		if err != nil {
			return nil, err
		}
		if stored == nil || stored.SessionID != claims.SessionID {
			return nil, nil
		}
		sess = stored
	} else {
		u, err := s.Repo.GetByID(ctx, claims.UserID)
		if err != nil {
			return nil, err
		}
		if u == nil {
			return nil, nil
		}
		sess = &entity.AdminSession{UserID: u.ID, SessionID: claims.SessionID, Email: u.Email, DisplayName: u.DisplayName}
	}
	sess.DisplayName = sess.Name()
	return sess, nil
}

func (s *AuthService) SignOut(ctx context.Context, userID string) error {
	if s.Sessions == nil {
		return nil
	}
	return s.Sessions.Delete(ctx, userID)
}

// EnsureAdmin creates the account or resets its password and display name.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password, displayName string) (*entity.AdminUser, error) {
	email = normalizeEmail(email)
	if email == "" || len(password) < 8 {
		return nil, fmt.Errorf("admin account: %w", ErrInvalidInput)
	}
	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		u = &entity.AdminUser{Email: email, Password: hash, DisplayName: displayName}
		if err := s.Repo.Create(ctx, u); err != nil {
			return nil, err
		}
		return u, nil
	}
	u.Password = hash
	if displayName != "" {
		u.DisplayName = displayName
	}
	if err := s.Repo.Update(ctx, u); err != nil {
		return nil, err
	}
	// a reset password invalidates the live session
	if s.Sessions != nil {
		if err := s.Sessions.Delete(ctx, u.ID); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("session revoke failed")
		}
	}
	return u, nil
}
