// Copyright (c) 2025-2026 VK WebCraft
// SPDX-License-Identifier: GPL-3.0-or-later

package moderation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/vkwebcraft/indublog/internal/model"
	"github.com/vkwebcraft/indublog/internal/rbac"
	"github.com/vkwebcraft/indublog/internal/service"
	"github.com/vkwebcraft/indublog/internal/store"
)

// Service applies the state machines against stored entities. Every
// command loads the current row, validates the requested edge for the
// acting session, persists the result and records an audit event.
type Service struct {
	queries *store.Queries
	events  *service.EventService
}

// NewService creates a moderation Service backed by db.
func NewService(db *sql.DB) *Service {
	return &Service{
		queries: store.New(db),
		events:  service.NewEventService(db),
	}
}

func translateNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func actorID(session *model.Session) *int64 {
	if session == nil || session.AdminUserID == 0 {
		return nil
	}
	id := session.AdminUserID
	return &id
}

// ApproveBlogPost moves a post to published and stamps its publication
// time.
func (s *Service) ApproveBlogPost(ctx context.Context, session *model.Session, id int64) (model.BlogPost, error) {
	return s.moveBlogPost(ctx, session, id, model.BlogStatusPublished)
}

// RejectBlogPost moves a post to rejected.
func (s *Service) RejectBlogPost(ctx context.Context, session *model.Session, id int64) (model.BlogPost, error) {
	return s.moveBlogPost(ctx, session, id, model.BlogStatusRejected)
}

// SubmitBlogPost moves a draft into the review queue.
func (s *Service) SubmitBlogPost(ctx context.Context, session *model.Session, id int64) (model.BlogPost, error) {
	return s.moveBlogPost(ctx, session, id, model.BlogStatusPending)
}

func (s *Service) moveBlogPost(ctx context.Context, session *model.Session, id int64, to model.BlogStatus) (model.BlogPost, error) {
	post, err := s.queries.GetBlogPost(ctx, id)
	if err != nil {
		return model.BlogPost{}, translateNotFound(err)
	}

	if err := BlogPosts.Check(session, string(post.Status), string(to)); err != nil {
		return model.BlogPost{}, err
	}
	if post.Status == to {
		return post, nil
	}

	var publishedAt sql.NullTime
	if to == model.BlogStatusPublished {
		publishedAt = sql.NullTime{Time: time.Now(), Valid: true}
	}
	if err := s.queries.UpdateBlogPostStatus(ctx, id, to, publishedAt); err != nil {
		return model.BlogPost{}, translateNotFound(err)
	}

	slog.Info("blog post status changed",
		"post_id", id, "from", post.Status, "to", to, "actor", sessionEmail(session))
	_ = s.events.LogModerationEvent(ctx, model.EventLevelInfo,
		fmt.Sprintf("post %q moved from %s to %s", post.Title, post.Status, to),
		actorID(session), "", map[string]any{"post_id": id})

	return s.queries.GetBlogPost(ctx, id)
}

// DeleteBlogPost permanently removes a post. Deletion is permitted from
// any status but only for moderator roles.
func (s *Service) DeleteBlogPost(ctx context.Context, session *model.Session, id int64) error {
	if !rbac.CanAccess(session, BlogDeleteRoles) {
		return ErrAccessDenied
	}

	post, err := s.queries.GetBlogPost(ctx, id)
	if err != nil {
		return translateNotFound(err)
	}
	if err := s.queries.DeleteBlogPost(ctx, id); err != nil {
		return translateNotFound(err)
	}

	slog.Info("blog post deleted", "post_id", id, "actor", sessionEmail(session))
	_ = s.events.LogModerationEvent(ctx, model.EventLevelWarning,
		fmt.Sprintf("post %q deleted", post.Title),
		actorID(session), "", map[string]any{"post_id": id})
	return nil
}

// SuspendUser suspends an active platform account.
func (s *Service) SuspendUser(ctx context.Context, session *model.Session, id int64) (model.PlatformUser, error) {
	return s.movePlatformUser(ctx, session, id, model.UserStatusSuspended)
}

// ActivateUser lifts a platform account suspension.
func (s *Service) ActivateUser(ctx context.Context, session *model.Session, id int64) (model.PlatformUser, error) {
	return s.movePlatformUser(ctx, session, id, model.UserStatusActive)
}

func (s *Service) movePlatformUser(ctx context.Context, session *model.Session, id int64, to model.UserStatus) (model.PlatformUser, error) {
	user, err := s.queries.GetPlatformUser(ctx, id)
	if err != nil {
		return model.PlatformUser{}, translateNotFound(err)
	}

	if err := PlatformUsers.Check(session, string(user.Status), string(to)); err != nil {
		return model.PlatformUser{}, err
	}
	if user.Status == to {
		return user, nil
	}

	if err := s.queries.SetPlatformUserStatus(ctx, id, to); err != nil {
		return model.PlatformUser{}, translateNotFound(err)
	}

	slog.Info("platform user status changed",
		"user_id", id, "from", user.Status, "to", to, "actor", sessionEmail(session))
	_ = s.events.LogUserEvent(ctx, model.EventLevelInfo,
		fmt.Sprintf("user %s moved from %s to %s", user.Email, user.Status, to),
		actorID(session), "", map[string]any{"user_id": id})

	return s.queries.GetPlatformUser(ctx, id)
}

// VerifyAuthor approves a pending author profile.
func (s *Service) VerifyAuthor(ctx context.Context, session *model.Session, id int64) (model.AuthorProfile, error) {
	return s.moveAuthor(ctx, session, id, model.AuthorStatusVerified)
}

// SuspendAuthor suspends a verified author profile.
func (s *Service) SuspendAuthor(ctx context.Context, session *model.Session, id int64) (model.AuthorProfile, error) {
	return s.moveAuthor(ctx, session, id, model.AuthorStatusSuspended)
}

func (s *Service) moveAuthor(ctx context.Context, session *model.Session, id int64, to model.AuthorStatus) (model.AuthorProfile, error) {
	author, err := s.queries.GetAuthorProfile(ctx, id)
	if err != nil {
		return model.AuthorProfile{}, translateNotFound(err)
	}

	if err := AuthorProfiles.Check(session, string(author.Status), string(to)); err != nil {
		return model.AuthorProfile{}, err
	}
	if author.Status == to {
		return author, nil
	}

	if err := s.queries.SetAuthorProfileStatus(ctx, id, to); err != nil {
		return model.AuthorProfile{}, translateNotFound(err)
	}

	slog.Info("author status changed",
		"author_id", id, "from", author.Status, "to", to, "actor", sessionEmail(session))
	_ = s.events.LogModerationEvent(ctx, model.EventLevelInfo,
		fmt.Sprintf("author %s moved from %s to %s", author.Email, author.Status, to),
		actorID(session), "", map[string]any{"author_id": id})

	return s.queries.GetAuthorProfile(ctx, id)
}

// adminManagers is the allow-list for back-office account management.
var adminManagers = []model.Role{model.RoleSuperAdmin}

// BanAdminUser deactivates a back-office account. An admin can never
// ban the account they are signed in as, whatever their role.
func (s *Service) BanAdminUser(ctx context.Context, session *model.Session, id int64) (model.AdminUser, error) {
	return s.setAdminUserActive(ctx, session, id, false)
}

// UnbanAdminUser reactivates a back-office account.
func (s *Service) UnbanAdminUser(ctx context.Context, session *model.Session, id int64) (model.AdminUser, error) {
	return s.setAdminUserActive(ctx, session, id, true)
}

func (s *Service) setAdminUserActive(ctx context.Context, session *model.Session, id int64, active bool) (model.AdminUser, error) {
	if !rbac.CanAccess(session, adminManagers) {
		return model.AdminUser{}, ErrAccessDenied
	}

	user, err := s.queries.GetAdminUserByID(ctx, id)
	if err != nil {
		return model.AdminUser{}, translateNotFound(err)
	}

	// Self-ban check runs on the target's email, before any state is
	// touched. It applies to every role including super_admin.
	if !active && session != nil && strings.EqualFold(user.Email, session.Email) {
		return model.AdminUser{}, ErrSelfBan
	}

	if user.IsActive == active {
		return user, nil
	}

	if err := s.queries.SetAdminUserActive(ctx, id, active); err != nil {
		return model.AdminUser{}, translateNotFound(err)
	}

	action := "banned"
	if active {
		action = "unbanned"
	}
	slog.Info("admin account "+action, "admin_id", id, "actor", sessionEmail(session))
	_ = s.events.LogUserEvent(ctx, model.EventLevelWarning,
		fmt.Sprintf("admin account %s %s", user.Email, action),
		actorID(session), "", map[string]any{"admin_id": id})

	return s.queries.GetAdminUserByID(ctx, id)
}

// CreateAdminUserInput carries the fields for a new back-office account.
type CreateAdminUserInput struct {
	Name     string
	Email    string
	Mobile   string
	Username string
	Password string
	Role     model.Role
}

const minPasswordLength = 8

// CreateAdminUser validates and creates a back-office account. The raw
// password is hashed before it reaches the store.
func (s *Service) CreateAdminUser(ctx context.Context, session *model.Session, in CreateAdminUserInput, hash func(string) (string, error)) (model.AdminUser, error) {
	if !rbac.CanAccess(session, adminManagers) {
		return model.AdminUser{}, ErrAccessDenied
	}
	if err := validateAdminUserInput(in); err != nil {
		return model.AdminUser{}, err
	}

	passwordHash, err := hash(in.Password)
	if err != nil {
		return model.AdminUser{}, fmt.Errorf("hashing password: %w", err)
	}

	user, err := s.queries.CreateAdminUser(ctx, store.CreateAdminUserParams{
		Name:         strings.TrimSpace(in.Name),
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		Mobile:       strings.TrimSpace(in.Mobile),
		Username:     strings.TrimSpace(in.Username),
		PasswordHash: passwordHash,
		Role:         in.Role,
		CreatedAt:    time.Now(),
	})
	if err != nil {
		return model.AdminUser{}, err
	}

	slog.Info("admin account created", "admin_id", user.ID, "email", user.Email, "role", user.Role)
	_ = s.events.LogUserEvent(ctx, model.EventLevelInfo,
		fmt.Sprintf("admin account %s created with role %s", user.Email, user.Role),
		actorID(session), "", map[string]any{"admin_id": user.ID})

	return user, nil
}

func validateAdminUserInput(in CreateAdminUserInput) error {
	for field, value := range map[string]string{
		"name":     in.Name,
		"email":    in.Email,
		"mobile":   in.Mobile,
		"username": in.Username,
		"password": in.Password,
	} {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%w: %s is required", ErrValidation, field)
		}
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return fmt.Errorf("%w: invalid email address", ErrValidation)
	}
	if len(in.Password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLength)
	}
	if !model.IsValidRole(in.Role) {
		return fmt.Errorf("%w: unknown role %q", ErrValidation, in.Role)
	}
	return nil
}

func sessionEmail(session *model.Session) string {
	if session == nil {
		return ""
	}
	return session.Email
}
