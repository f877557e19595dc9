// Copyright (c) 2026 MangaShelf. All rights reserved.
// Author: github.com/gosanz

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gosanz/mangashelfapi/internal/platform/apperr"
	"github.com/gosanz/mangashelfapi/internal/platform/dberr"
	"github.com/gosanz/mangashelfapi/internal/platform/sec"
	"github.com/gosanz/mangashelfapi/internal/platform/validate"
	"github.com/gosanz/mangashelfapi/internal/users/oauth"
	"github.com/gosanz/mangashelfapi/pkg/uuid"
)

// # Contracts & Types

// TokenProvider signs access tokens. [*sec.TokenService] satisfies it.
type TokenProvider interface {
	GenerateAccessToken(userID, username, role string) (string, error)
	TimeToLive() time.Duration
}

// IdentityVerifier checks an ID token issued by an external provider.
type IdentityVerifier interface {
	Verify(context context.Context, rawToken string) (*oauth.Identity, error)
}

// Restorer reactivates an account pending deletion. The account package
// implements it; auth only proves who is asking.
type Restorer interface {
	Restore(context context.Context, userID string) error
}

// Service implements registration, sign-in and refresh sessions.
type Service struct {
	userRepository    UserRepository
	sessionRepository SessionRepository
	tokenProvider     TokenProvider
	refreshTokenTTL   time.Duration
	verifiers         map[Provider]IdentityVerifier
	restorer          Restorer
	logger            *slog.Logger
	now               func() time.Time
}

// NewService constructs a new [Service]. Providers and the restorer are
// attached afterwards with [Service.RegisterProvider] and [Service.SetRestorer].
func NewService(
	userRepo UserRepository,
	sessionRepo SessionRepository,
	tokenProv TokenProvider,
	refreshTokenTTL time.Duration,
	logger *slog.Logger,
) *Service {
	return &Service{
		userRepository:    userRepo,
		sessionRepository: sessionRepo,
		tokenProvider:     tokenProv,
		refreshTokenTTL:   refreshTokenTTL,
		verifiers:         map[Provider]IdentityVerifier{},
		logger:            logger,
		now:               time.Now,
	}
}

// RegisterProvider enables sign-in through an external provider.
func (service *Service) RegisterProvider(provider Provider, verifier IdentityVerifier) {
	service.verifiers[provider] = verifier
}

// SetRestorer wires the account lifecycle used by the restore flow.
func (service *Service) SetRestorer(restorer Restorer) {
	service.restorer = restorer
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

/*
Register validates, hashes and persists a new password account.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *User: Created entity
  - error: ValidationError, Conflict (username or email taken) or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = normalizeEmail(input.Email)

	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		MinLen(FieldUsername, input.Username, UsernameMinLength).
		MaxLen(FieldUsername, input.Username, UsernameMaxLength).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, PasswordMinLength).
		MaxLen(FieldPassword, input.Password, PasswordMaxLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if _, found, err := service.userRepository.FindByUsername(context, input.Username); err != nil {
		return nil, fmt.Errorf("auth_service_register_lookup_failed: %w", err)
	} else if found {
		return nil, apperr.Conflict("Username is already taken")
	}

	if _, found, err := service.userRepository.FindByEmail(context, input.Email); err != nil {
		return nil, fmt.Errorf("auth_service_register_lookup_failed: %w", err)
	} else if found {
		return nil, apperr.Conflict("Email is already registered")
	}

	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	user := service.newUser(input.Username, input.Email)
	user.PasswordHash = &hashedPassword

	if err := service.userRepository.Create(context, user); err != nil {
		return nil, translateUserConflict(fmt.Errorf("auth_service_register_failed: %w", err))
	}

	service.logger.Info("user_registered", slog.String("user_id", user.ID))
	return user, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Login     string // username or email
	Password  string
	UserAgent string
	IPAddress string
}

/*
Login validates credentials and issues a token pair.

Accounts pending deletion are refused with FORBIDDEN; they must go through
[Service.RestoreWithPassword] first.

Returns:
  - *LoginSession: Transport-ready session identifiers
  - error: Unauthorized, Forbidden or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginSession, error) {
	user, err := service.authenticate(context, input.Login, input.Password)
	if err != nil {
		return nil, err
	}

	if !user.IsActive {
		return nil, apperr.Forbidden("Account is pending deletion")
	}

	return service.issueSession(context, user, input.UserAgent, input.IPAddress)
}

/*
Logout revokes a refresh token. Unknown tokens are ignored so the call is
idempotent.
*/
func (service *Service) Logout(context context.Context, refreshToken string) error {
	if _, _, err := service.sessionRepository.Consume(context, sec.HashToken(refreshToken)); err != nil {
		return fmt.Errorf("auth_service_logout_failed: %w", err)
	}
	return nil
}

// # Session Management

/*
RefreshSession rotates a refresh token: the presented token is consumed and
a fresh pair is issued. A token can be redeemed once.

Returns:
  - *LoginSession: New session credentials
  - error: Unauthorized or storage failures
*/
func (service *Service) RefreshSession(context context.Context, refreshToken, userAgent, ipAddress string) (*LoginSession, error) {
	session, found, err := service.sessionRepository.Consume(context, sec.HashToken(refreshToken))
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_failed: %w", err)
	}
	if !found || !session.ExpiresAt.After(service.now()) {
		return nil, apperr.Unauthorized("Invalid or expired refresh token")
	}

	user, found, err := service.userRepository.FindByID(context, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_user_failed: %w", err)
	}
	if !found || !user.IsActive {
		return nil, apperr.Unauthorized("User not found or inactive")
	}

	return service.issueSession(context, user, userAgent, ipAddress)
}

// # External Providers

// ProviderLoginInput carries a provider ID token.
type ProviderLoginInput struct {
	Provider  Provider
	IDToken   string
	UserAgent string
	IPAddress string
}

/*
LoginWithProvider signs a user in with a Google or Apple ID token.

Resolution order: the provider subject, then an existing account with the
same email (which gets linked), then a new account with a generated
username.

Returns:
  - *LoginSession: the issued token pair
  - error: Unauthorized (bad token), Forbidden (pending deletion),
    ServiceUnavailable (provider not configured)
*/
func (service *Service) LoginWithProvider(context context.Context, input ProviderLoginInput) (*LoginSession, error) {
	identity, err := service.verify(context, input.Provider, input.IDToken)
	if err != nil {
		return nil, err
	}

	user, err := service.getOrCreateProviderUser(context, input.Provider, identity)
	if err != nil {
		return nil, err
	}

	if !user.IsActive {
		return nil, apperr.Forbidden("Account is pending deletion")
	}

	return service.issueSession(context, user, input.UserAgent, input.IPAddress)
}

func (service *Service) getOrCreateProviderUser(context context.Context, provider Provider, identity *oauth.Identity) (*User, error) {
	user, found, err := service.userRepository.FindByProvider(context, provider, identity.Subject)
	if err != nil {
		return nil, fmt.Errorf("auth_service_provider_lookup_failed: %w", err)
	}
	if found {
		return user, nil
	}

	email := normalizeEmail(identity.Email)
	if email != "" {
		user, found, err = service.userRepository.FindByEmail(context, email)
		if err != nil {
			return nil, fmt.Errorf("auth_service_provider_lookup_failed: %w", err)
		}
		if found {
			if err := service.userRepository.LinkProvider(context, user.ID, provider, identity.Subject); err != nil {
				return nil, fmt.Errorf("auth_service_provider_link_failed: %w", err)
			}
			setProviderSubject(user, provider, identity.Subject)
			service.logger.Info("user_provider_linked",
				slog.String("user_id", user.ID),
				slog.String("provider", string(provider)),
			)
			return user, nil
		}
	}

	username, err := generateUsername(provider, email)
	if err != nil {
		return nil, fmt.Errorf("auth_service_username_failed: %w", err)
	}
	if email == "" {
		email = fmt.Sprintf("%s_%s@%s", provider, identity.Subject, appleFallbackDomain)
	}

	user = service.newUser(username, email)
	subject := identity.Subject
	setProviderSubject(user, provider, subject)

	if err := service.userRepository.Create(context, user); err != nil {
		return nil, translateUserConflict(fmt.Errorf("auth_service_provider_create_failed: %w", err))
	}

	service.logger.Info("user_registered",
		slog.String("user_id", user.ID),
		slog.String("provider", string(provider)),
	)
	return user, nil
}

// # Restore Flow

/*
RestoreWithPassword reactivates an account pending deletion after checking
its credentials, then signs it in.

Returns:
  - *LoginSession: a fresh token pair for the restored account
  - error: Unauthorized, or InvalidState from the lifecycle (not pending,
    grace expired)
*/
func (service *Service) RestoreWithPassword(context context.Context, input LoginInput) (*LoginSession, error) {
	user, err := service.authenticate(context, input.Login, input.Password)
	if err != nil {
		return nil, err
	}
	return service.restore(context, user, input.UserAgent, input.IPAddress)
}

// RestoreWithProvider is [Service.RestoreWithPassword] for provider-only
// accounts. Unknown subjects are refused rather than created.
func (service *Service) RestoreWithProvider(context context.Context, input ProviderLoginInput) (*LoginSession, error) {
	identity, err := service.verify(context, input.Provider, input.IDToken)
	if err != nil {
		return nil, err
	}

	user, found, err := service.userRepository.FindByProvider(context, input.Provider, identity.Subject)
	if err != nil {
		return nil, fmt.Errorf("auth_service_provider_lookup_failed: %w", err)
	}
	if !found {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	return service.restore(context, user, input.UserAgent, input.IPAddress)
}

func (service *Service) restore(context context.Context, user *User, userAgent, ipAddress string) (*LoginSession, error) {
	if service.restorer == nil {
		return nil, apperr.ServiceUnavailable("Account restore is not available")
	}

	if err := service.restorer.Restore(context, user.ID); err != nil {
		return nil, err
	}

	restored, found, err := service.userRepository.FindByID(context, user.ID)
	if err != nil {
		return nil, fmt.Errorf("auth_service_restore_reload_failed: %w", err)
	}
	if !found {
		return nil, apperr.NotFound("User")
	}

	return service.issueSession(context, restored, userAgent, ipAddress)
}

// # Internals

// authenticate resolves a username or email and checks the password. Every
// failure reads the same to the caller.
func (service *Service) authenticate(context context.Context, login, password string) (*User, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	var (
		user  *User
		found bool
		err   error
	)
	if strings.Contains(login, "@") {
		user, found, err = service.userRepository.FindByEmail(context, normalizeEmail(login))
	} else {
		user, found, err = service.userRepository.FindByUsername(context, login)
	}
	if err != nil {
		return nil, fmt.Errorf("auth_service_login_lookup_failed: %w", err)
	}

	if !found || !user.HasPassword() || !sec.CheckPasswordHash(password, *user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	return user, nil
}

func (service *Service) verify(context context.Context, provider Provider, rawToken string) (*oauth.Identity, error) {
	verifier, ok := service.verifiers[provider]
	if !ok {
		return nil, apperr.ServiceUnavailable(fmt.Sprintf("Sign-in with %s is not configured", provider))
	}
	if strings.TrimSpace(rawToken) == "" {
		return nil, validate.Field(FieldIDToken, "This field is required")
	}

	identity, err := verifier.Verify(context, rawToken)
	if err != nil {
		service.logger.Warn("provider_token_rejected",
			slog.String("provider", string(provider)),
			slog.Any("error", err),
		)
		return nil, apperr.Unauthorized("Invalid identity token")
	}

	return identity, nil
}

func (service *Service) issueSession(context context.Context, user *User, userAgent, ipAddress string) (*LoginSession, error) {
	accessToken, err := service.tokenProvider.GenerateAccessToken(user.ID, user.Username, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	refreshToken, err := sec.GenerateSecureToken(RefreshTokenLength)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_token_failed: %w", err)
	}

	expiresAt := service.now().Add(service.refreshTokenTTL)
	session := &Session{
		UserID:    user.ID,
		TokenHash: sec.HashToken(refreshToken),
		UserAgent: userAgent,
		IPAddress: ipAddress,
		ExpiresAt: expiresAt,
	}

	if err := service.sessionRepository.Create(context, session, service.refreshTokenTTL); err != nil {
		return nil, fmt.Errorf("auth_service_session_creation_failed: %w", err)
	}

	return &LoginSession{
		AccessToken:           accessToken,
		AccessTokenTTL:        service.tokenProvider.TimeToLive(),
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: expiresAt,
		User:                  user,
	}, nil
}

func (service *Service) newUser(username, email string) *User {
	currentTime := service.now().UTC().Truncate(time.Microsecond)
	return &User{
		ID:        uuid.New(),
		Username:  username,
		Email:     email,
		Role:      sec.RoleUser,
		IsActive:  true,
		CreatedAt: currentTime,
		UpdatedAt: currentTime,
	}
}

func setProviderSubject(user *User, provider Provider, subject string) {
	switch provider {
	case ProviderGoogle:
		user.GoogleID = &subject
	case ProviderApple:
		user.AppleID = &subject
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// translateUserConflict turns a unique violation that slipped past the
// pre-checks into the same message the pre-check would have produced.
func translateUserConflict(err error) error {
	switch {
	case dberr.IsUniqueViolation(err, "users_username_key"):
		return apperr.Conflict("Username is already taken").WithCause(err)
	case dberr.IsUniqueViolation(err, "users_email_key"):
		return apperr.Conflict("Email is already registered").WithCause(err)
	case dberr.IsUniqueViolation(err, ""):
		return apperr.Conflict("Account already exists").WithCause(err)
	default:
		return err
	}
}
