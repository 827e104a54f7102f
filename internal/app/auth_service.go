package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"jobboard/internal/common"
	"jobboard/internal/domain/analytics"
	"jobboard/internal/domain/auth"
	"jobboard/internal/domain/user"
	"jobboard/internal/security"
	"jobboard/internal/validation"
)

// AuthService owns registration, the login lockout protocol and sessions.
type AuthService struct {
	users     user.Repository
	sessions  auth.SessionRepository
	analytics analytics.Repository
	tokens    *security.JWTProvider
	logger    Logger
	clock     func() time.Time
}

type Logger interface {
	Info(msg string)
	Error(msg string)
}

func NewAuthService(users user.Repository, sessions auth.SessionRepository, analytics analytics.Repository, tokens *security.JWTProvider, logger Logger) *AuthService {
	return &AuthService{
		users:     users,
		sessions:  sessions,
		analytics: analytics,
		tokens:    tokens,
		logger:    logger,
		clock:     time.Now,
	}
}

type RegisterInput struct {
	Username  string    `json:"username" validate:"required,max=150,username"`
	FirstName string    `json:"first_name" validate:"notblank,max=150"`
	LastName  string    `json:"last_name" validate:"max=150"`
	Email     string    `json:"email" validate:"required,email,max=254"`
	Password  string    `json:"password" validate:"required"`
	UserType  user.Role `json:"user_type" validate:"required,oneof=student company"`
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*user.User, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)
	input.Email = normalizeEmail(input.Email)
	input.UserType = user.Role(strings.ToLower(strings.TrimSpace(string(input.UserType))))

	fields, err := validation.Fields(input)
	if err != nil {
		return nil, err
	}
	if _, invalid := fields["password"]; !invalid {
		if problems := validation.PasswordProblems(input.Password, input.Username, input.Email, input.FirstName, input.LastName); len(problems) > 0 {
			fields["password"] = strings.Join(problems, " ")
		}
	}
	if err := ensureIdentityAvailable(ctx, s.users, fields, input.Username, input.Email, ""); err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		return nil, common.NewValidationError(validation.Message, fields)
	}

	hash, err := security.HashPassword(input.Password)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to hash password", err)
	}
	now := s.now()
	created, err := s.users.Create(ctx, user.User{
		Username:     input.Username,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		PasswordHash: hash,
		UserType:     input.UserType,
		DateJoined:   now,
		UpdatedAt:    now,
	})
	if err != nil {
		if common.Is(err, common.CodeConflict) {
			return nil, common.NewValidationError(validation.Message, map[string]string{"user": "A user with that username or email already exists."})
		}
		return nil, err
	}
	_ = s.analytics.Create(ctx, analytics.Event{Name: "auth.registered", UserID: &created.ID, Payload: analyticsPayload(ctx, map[string]string{"user_type": string(created.UserType)})})
	s.logInfo(fmt.Sprintf("user registered user_id=%s", created.ID))
	return created, nil
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *user.User
}

// Login runs the lockout protocol: a locked account is refused before the
// password is checked, a mismatch bumps the failure counter and a match
// resets it and opens a session.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	input.Email = normalizeEmail(input.Email)
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	account, err := s.users.GetByEmail(ctx, input.Email)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, errInvalidCredentials()
		}
		return nil, err
	}
	now := s.now()
	if account.IsLocked(now) {
		s.logInfo(fmt.Sprintf("login refused for locked account user_id=%s", account.ID))
		_ = s.analytics.Create(ctx, analytics.Event{Name: "auth.login_locked", UserID: &account.ID, Payload: analyticsPayload(ctx, nil)})
		return nil, common.NewError(common.CodeLocked, "Account locked due to too many failed login attempts. Try again later.", nil)
	}
	ok, err := security.CheckPassword(account.PasswordHash, input.Password)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to verify password", err)
	}
	if !ok {
		updated, err := s.users.RegisterFailedLogin(ctx, account.ID, now)
		if err != nil {
			return nil, err
		}
		payload := map[string]string{"failed_attempts": fmt.Sprint(updated.FailedLoginAttempts)}
		_ = s.analytics.Create(ctx, analytics.Event{Name: "auth.login_failed", UserID: &account.ID, Payload: analyticsPayload(ctx, payload)})
		if updated.IsLocked(now) {
			s.logInfo(fmt.Sprintf("account locked user_id=%s until=%s", account.ID, updated.LockedUntil().Format(time.RFC3339)))
		}
		return nil, errInvalidCredentials()
	}
	if err := s.users.RegisterSuccessfulLogin(ctx, account.ID, now); err != nil {
		return nil, err
	}
	account.FailedLoginAttempts = 0
	account.LastLogin = &now

	session := auth.Session{
		ID:        common.NewUUID(),
		UserID:    account.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(auth.TokenTTL),
	}
	token, expiresAt, err := s.tokens.Generate(account.ID, string(account.UserType), session.ID, auth.TokenTTL)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to generate token", err)
	}
	session.ExpiresAt = expiresAt
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}
	_ = s.analytics.Create(ctx, analytics.Event{Name: "auth.logged_in", UserID: &account.ID, Payload: analyticsPayload(ctx, map[string]string{"session_id": session.ID.String()})})
	s.logInfo(fmt.Sprintf("user logged in user_id=%s", account.ID))
	return &LoginResult{Token: token, ExpiresAt: expiresAt, User: account}, nil
}

func (s *AuthService) Logout(ctx context.Context, principal auth.Principal) error {
	if err := s.sessions.Revoke(ctx, principal.SessionID, s.now()); err != nil {
		return err
	}
	s.logInfo(fmt.Sprintf("user logged out user_id=%s", principal.UserID))
	_ = s.analytics.Create(ctx, analytics.Event{Name: "auth.logged_out", UserID: &principal.UserID, Payload: analyticsPayload(ctx, nil)})
	return nil
}

// Authenticate resolves a bearer token to the caller. The user type comes from
// the stored account rather than the token.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*auth.Principal, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, common.NewError(common.CodeUnauthorized, "Invalid token.", err)
	}
	sessionID, err := common.ParseUUID(claims.ID)
	if err != nil {
		return nil, common.NewError(common.CodeUnauthorized, "Invalid token.", err)
	}
	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, common.NewError(common.CodeUnauthorized, "Invalid token.", nil)
		}
		return nil, err
	}
	if !session.Active(s.now()) {
		return nil, common.NewError(common.CodeUnauthorized, "Invalid token.", nil)
	}
	account, err := s.users.GetByID(ctx, session.UserID)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, common.NewError(common.CodeUnauthorized, "Invalid token.", nil)
		}
		return nil, err
	}
	return &auth.Principal{UserID: account.ID, UserType: account.UserType, SessionID: session.ID}, nil
}

// PurgeSessions deletes sessions that can no longer authenticate anyone.
func (s *AuthService) PurgeSessions(ctx context.Context) (int64, error) {
	removed, err := s.sessions.DeleteInactive(ctx, s.now())
	if err != nil {
		s.logError(fmt.Sprintf("session purge failed: %v", err))
		return 0, err
	}
	if removed > 0 {
		s.logInfo(fmt.Sprintf("purged %d inactive sessions", removed))
	}
	return removed, nil
}

func errInvalidCredentials() error {
	err := common.NewValidationError("Invalid credentials.", map[string]string{"credentials": "Invalid email or password."})
	err.Code = common.CodeUnauthorized
	return err
}

func normalizeEmail(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func (s *AuthService) now() time.Time {
	return s.clock().UTC()
}

func (s *AuthService) logInfo(msg string) {
	if s.logger == nil {
		return
	}
	s.logger.Info(msg)
}

func (s *AuthService) logError(msg string) {
	if s.logger == nil {
		return
	}
	s.logger.Error(msg)
}
