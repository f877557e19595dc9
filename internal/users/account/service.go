// Copyright (c) 2026 MangaShelf. All rights reserved.
// Author: github.com/gosanz

package account

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
	"github.com/gosanz/mangashelfapi/internal/users/auth"
)

// # Service Layer

// Service drives the account state machine and profile changes.
type Service struct {
	accountRepository Repository
	sessionRevoker    SessionRevoker
	logger            *slog.Logger
	now               func() time.Time
}

// NewService constructs a new [Service]. A nil now defaults to time.Now; a
// nil sessions skips session revocation.
func NewService(repo Repository, sessions SessionRevoker, logger *slog.Logger, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		accountRepository: repo,
		sessionRevoker:    sessions,
		logger:            logger,
		now:               now,
	}
}

func (service *Service) clock() time.Time {
	return service.now().UTC().Truncate(time.Microsecond)
}

// # Lifecycle

// IsActive reports whether userID may still act. It backs the
// RequireActive middleware.
func (service *Service) IsActive(context context.Context, userID string) (bool, error) {
	active, err := service.accountRepository.IsActive(context, userID)
	if err != nil {
		return false, fmt.Errorf("account_service_is_active_failed: %w", err)
	}
	return active, nil
}

/*
SoftDelete moves an active account to pending deletion and drops its
refresh sessions. Calling it on a pending account changes nothing.

Returns:
  - *auth.User: the account in its pending state
  - error: NotFound or storage failures
*/
func (service *Service) SoftDelete(context context.Context, userID string) (*auth.User, error) {
	user, err := service.load(context, userID)
	if err != nil {
		return nil, err
	}
	if user.DeletedAt != nil {
		return user, nil
	}

	currentTime := service.clock()
	if err := service.accountRepository.MarkDeleted(context, userID, currentTime); err != nil {
		return nil, fmt.Errorf("account_service_soft_delete_failed: %w", err)
	}

	service.revokeSessions(context, userID)

	service.logger.Info("account_soft_deleted", slog.String("user_id", userID))

	user.DeletedAt = &currentTime
	user.IsActive = false
	user.UpdatedAt = currentTime
	return user, nil
}

/*
Restore reactivates an account still inside its grace period.

Returns:
  - error: NotFound; InvalidState when not pending or the grace period has
    expired
*/
func (service *Service) Restore(context context.Context, userID string) error {
	user, err := service.load(context, userID)
	if err != nil {
		return err
	}
	if user.DeletedAt == nil {
		return apperr.InvalidState("Account is not pending deletion")
	}

	currentTime := service.clock()
	if currentTime.Sub(*user.DeletedAt) > GracePeriod {
		return apperr.InvalidState("Grace period has expired")
	}

	restored, err := service.accountRepository.ClearDeleted(context, userID, currentTime.Add(-GracePeriod), currentTime)
	if err != nil {
		return fmt.Errorf("account_service_restore_failed: %w", err)
	}
	if !restored {
		return apperr.InvalidState("Account changed state during restore")
	}

	service.logger.Info("account_restored", slog.String("user_id", userID))
	return nil
}

/*
Purge physically removes an account whose grace period has elapsed, with
its whole collection.

Returns:
  - error: NotFound; InvalidState when the account was never deleted;
    Conflict while the grace period is still running
*/
func (service *Service) Purge(context context.Context, userID string) error {
	user, err := service.load(context, userID)
	if err != nil {
		return err
	}
	if user.DeletedAt == nil {
		return apperr.InvalidState("Account is not pending deletion")
	}

	currentTime := service.clock()
	if currentTime.Sub(*user.DeletedAt) <= GracePeriod {
		return apperr.Conflict("Account is still within the grace period")
	}

	purged, err := service.accountRepository.Purge(context, userID, currentTime.Add(-GracePeriod))
	if err != nil {
		return fmt.Errorf("account_service_purge_failed: %w", err)
	}
	if !purged {
		return apperr.Conflict("Account changed state during purge")
	}

	service.logger.Info("account_purged", slog.String("user_id", userID))
	return nil
}

// ListPurgeCandidates returns accounts deleted more than [GracePeriod] ago.
func (service *Service) ListPurgeCandidates(context context.Context) ([]PurgeCandidate, error) {
	candidates, err := service.accountRepository.ListPurgeCandidates(context, service.clock().Add(-GracePeriod))
	if err != nil {
		return nil, fmt.Errorf("account_service_list_purge_candidates_failed: %w", err)
	}
	if candidates == nil {
		candidates = []PurgeCandidate{}
	}
	return candidates, nil
}

/*
PurgeExpired purges every current candidate. A failure on one account is
recorded and the sweep moves on.

Returns:
  - PurgeReport: purged ids and per-user failures
  - error: only when the candidate list cannot be read
*/
func (service *Service) PurgeExpired(context context.Context) (PurgeReport, error) {
	report := PurgeReport{Purged: []string{}, Failed: map[string]error{}}

	candidates, err := service.ListPurgeCandidates(context)
	if err != nil {
		return report, err
	}

	for _, candidate := range candidates {
		if err := context.Err(); err != nil {
			return report, err
		}

		if err := service.Purge(context, candidate.ID); err != nil {
			report.Failed[candidate.ID] = err
			service.logger.Warn("account_purge_skipped",
				slog.String("user_id", candidate.ID),
				slog.Any("error", err),
			)
			continue
		}
		report.Purged = append(report.Purged, candidate.ID)
	}

	service.logger.Info("account_purge_sweep_finished",
		slog.Int("candidates", len(candidates)),
		slog.Int("purged", len(report.Purged)),
		slog.Int("failed", len(report.Failed)),
	)
	return report, nil
}

// # Profile Management

// GetProfile returns the caller's account.
func (service *Service) GetProfile(context context.Context, userID string) (*auth.User, error) {
	return service.load(context, userID)
}

/*
UpdateProfile applies a sparse username and email change.

Returns:
  - *auth.User: the updated profile
  - error: ValidationError, or Conflict when the username or email belongs
    to another account
*/
func (service *Service) UpdateProfile(context context.Context, userID string, update ProfileUpdate) (*auth.User, error) {
	user, err := service.load(context, userID)
	if err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	if update.Username != nil {
		user.Username = strings.TrimSpace(*update.Username)
		validator.Required(FieldUsername, user.Username).
			MinLen(FieldUsername, user.Username, auth.UsernameMinLength).
			MaxLen(FieldUsername, user.Username, auth.UsernameMaxLength)
	}
	if update.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*update.Email))
		validator.Required(FieldEmail, user.Email).Email(FieldEmail, user.Email)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	user.UpdatedAt = service.clock()
	if err := service.accountRepository.UpdateProfile(context, user); err != nil {
		switch {
		case dberr.IsUniqueViolation(err, "users_username_key"):
			return nil, apperr.Conflict("Username is already taken").WithCause(err)
		case dberr.IsUniqueViolation(err, "users_email_key"):
			return nil, apperr.Conflict("Email is already registered").WithCause(err)
		}
		return nil, fmt.Errorf("account_service_update_profile_failed: %w", err)
	}

	service.logger.Info("account_profile_updated", slog.String("user_id", userID))
	return user, nil
}

/*
ChangePassword replaces the password after checking the current one and
drops every refresh session of the account.

Returns:
  - error: InvalidState for provider-only accounts, Unauthorized when the
    current password is wrong, ValidationError for a weak new password
*/
func (service *Service) ChangePassword(context context.Context, userID, currentPassword, newPassword string) error {
	user, err := service.load(context, userID)
	if err != nil {
		return err
	}
	if !user.HasPassword() {
		return apperr.InvalidState("Account has no password to change")
	}
	if !sec.CheckPasswordHash(currentPassword, *user.PasswordHash) {
		return apperr.Unauthorized("Current password is incorrect")
	}

	validator := &validate.Validator{}
	validator.Required(FieldNewPassword, newPassword).
		MinLen(FieldNewPassword, newPassword, auth.PasswordMinLength).
		MaxLen(FieldNewPassword, newPassword, auth.PasswordMaxLength)
	if err := validator.Err(); err != nil {
		return err
	}

	hashedPassword, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("account_service_change_password_hash_failed: %w", err)
	}

	if err := service.accountRepository.UpdatePassword(context, userID, hashedPassword, service.clock()); err != nil {
		return fmt.Errorf("account_service_change_password_failed: %w", err)
	}

	service.revokeSessions(context, userID)

	service.logger.Info("account_password_changed", slog.String("user_id", userID))
	return nil
}

// revokeSessions is best effort: RequireActive and the refresh path both
// re-check the account, so a leftover session cannot act.
func (service *Service) revokeSessions(context context.Context, userID string) {
	if service.sessionRevoker == nil {
		return
	}
	if err := service.sessionRevoker.RevokeAll(context, userID); err != nil {
		service.logger.Error("account_session_revoke_failed",
			slog.String("user_id", userID),
			slog.Any("error", err),
		)
	}
}

func (service *Service) load(context context.Context, userID string) (*auth.User, error) {
	user, found, err := service.accountRepository.FindByID(context, userID)
	if err != nil {
		return nil, fmt.Errorf("account_service_lookup_failed: %w", err)
	}
	if !found {
		return nil, apperr.NotFound("User")
	}
	return user, nil
}
