// Copyright (c) 2026 MangaShelf. All rights reserved.
// Author: github.com/gosanz

package auth

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/gosanz/mangashelfapi/internal/platform/middleware"
	requestutil "github.com/gosanz/mangashelfapi/internal/platform/request"
	"github.com/gosanz/mangashelfapi/internal/platform/respond"
	"github.com/gosanz/mangashelfapi/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements the public authentication endpoints. Tokens travel in
// JSON bodies since the clients are mobile apps.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with authentication routes.
//
// # Endpoints
//   - POST /register : creates a password account
//   - POST /login    : username or email plus password
//   - POST /refresh  : rotates a refresh token
//   - POST /logout   : revokes a refresh token
//   - POST /google   : Google ID token sign-in
//   - POST /apple    : Apple identity token sign-in
//   - POST /restore  : reactivates an account pending deletion
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/register", handler.register)
	router.Post("/login", handler.login)
	router.Post("/refresh", handler.refresh)
	router.Post("/logout", handler.logout)
	router.Post("/google", handler.providerLogin(ProviderGoogle))
	router.Post("/apple", handler.providerLogin(ProviderApple))
	router.Post("/restore", handler.restore)

	return router
}

// # Request Payloads

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// providerRequest accepts Google's id_token and Apple's identity_token.
type providerRequest struct {
	IDToken       string `json:"id_token"`
	IdentityToken string `json:"identity_token"`
}

func (payload providerRequest) token() string {
	if payload.IDToken != "" {
		return payload.IDToken
	}
	return payload.IdentityToken
}

// restoreRequest proves ownership either with a password or with a provider
// token.
type restoreRequest struct {
	Login    string   `json:"login"`
	Password string   `json:"password"`
	Provider Provider `json:"provider"`
	IDToken  string   `json:"id_token"`
}

// # Response Payloads

type tokenResponse struct {
	AccessToken           string    `json:"access_token"`
	TokenType             string    `json:"token_type"`
	ExpiresIn             int64     `json:"expires_in"`
	RefreshToken          string    `json:"refresh_token"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	User                  *User     `json:"user"`
}

func newTokenResponse(session *LoginSession) tokenResponse {
	return tokenResponse{
		AccessToken:           session.AccessToken,
		TokenType:             "Bearer",
		ExpiresIn:             int64(session.AccessTokenTTL / time.Second),
		RefreshToken:          session.RefreshToken,
		RefreshTokenExpiresAt: session.RefreshTokenExpiresAt,
		User:                  session.User,
	}
}

/*
POST /api/v1/auth/register.

Response:
  - 201: User
  - 400: validation failure
  - 409: username or email already exists
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.Register(request.Context(), RegisterInput{
		Username: input.Username,
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user)
}

/*
POST /api/v1/auth/login.

Response:
  - 200: tokenResponse
  - 401: invalid credentials
  - 403: account pending deletion
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldLogin, input.Login).
		Required(FieldPassword, input.Password)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Login(request.Context(), LoginInput{
		Login:     input.Login,
		Password:  input.Password,
		UserAgent: request.UserAgent(),
		IPAddress: middleware.RealIP(request),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, newTokenResponse(session))
}

/*
POST /api/v1/auth/refresh.

Response:
  - 200: tokenResponse with a rotated refresh token
  - 401: unknown, expired or already used refresh token
*/
func (handler *Handler) refresh(writer http.ResponseWriter, request *http.Request) {
	var input refreshRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if input.RefreshToken == "" {
		respond.Error(writer, request, validate.Field(FieldRefreshToken, "This field is required"))
		return
	}

	session, err := handler.authService.RefreshSession(
		request.Context(),
		input.RefreshToken,
		request.UserAgent(),
		middleware.RealIP(request),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, newTokenResponse(session))
}

// POST /api/v1/auth/logout. Always 204 for a well-formed body.
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	var input refreshRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if input.RefreshToken != "" {
		if err := handler.authService.Logout(request.Context(), input.RefreshToken); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	respond.NoContent(writer)
}

/*
POST /api/v1/auth/google and POST /api/v1/auth/apple.

Response:
  - 200: tokenResponse (account created on first sign-in)
  - 401: token rejected
  - 403: account pending deletion
  - 503: provider not configured
*/
func (handler *Handler) providerLogin(provider Provider) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		var input providerRequest
		if err := requestutil.DecodeJSON(request, &input); err != nil {
			respond.Error(writer, request, err)
			return
		}

		session, err := handler.authService.LoginWithProvider(request.Context(), ProviderLoginInput{
			Provider:  provider,
			IDToken:   input.token(),
			UserAgent: request.UserAgent(),
			IPAddress: middleware.RealIP(request),
		})
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		respond.OK(writer, newTokenResponse(session))
	}
}

/*
POST /api/v1/auth/restore.

A pending account cannot hold a usable session, so restore re-proves
ownership and signs the account in on success.

Response:
  - 200: tokenResponse
  - 401: credentials rejected
  - 409: INVALID_STATE when not pending deletion or the grace period expired
*/
func (handler *Handler) restore(writer http.ResponseWriter, request *http.Request) {
	var input restoreRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	var (
		session *LoginSession
		err     error
	)
	if input.Provider != "" {
		validator := &validate.Validator{}
		validator.OneOf("provider", string(input.Provider), string(ProviderGoogle), string(ProviderApple))
		if err := validator.Err(); err != nil {
			respond.Error(writer, request, err)
			return
		}

		session, err = handler.authService.RestoreWithProvider(request.Context(), ProviderLoginInput{
			Provider:  input.Provider,
			IDToken:   input.IDToken,
			UserAgent: request.UserAgent(),
			IPAddress: middleware.RealIP(request),
		})
	} else {
		session, err = handler.authService.RestoreWithPassword(request.Context(), LoginInput{
			Login:     input.Login,
			Password:  input.Password,
			UserAgent: request.UserAgent(),
			IPAddress: middleware.RealIP(request),
		})
	}
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, newTokenResponse(session))
}
