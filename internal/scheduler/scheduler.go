// Copyright (c) 2025-2026 VK WebCraft
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/vkwebcraft/indublog/internal/model"
	"github.com/vkwebcraft/indublog/internal/store"
)

// eventRetention is how long audit events are kept before pruning.
const eventRetention = 90 * 24 * time.Hour

// Scheduler handles background jobs: publishing posts whose scheduled
// time has arrived and pruning old audit events.
type Scheduler struct {
	db     *sql.DB
	cron   *cron.Cron
	logger *slog.Logger

	// invalidate is called after the scheduler publishes posts, so the
	// public feed cache does not serve a stale page. May be nil.
	invalidate func(context.Context)
}

// New creates a new scheduler instance.
func New(db *sql.DB, logger *slog.Logger, invalidate func(context.Context)) *Scheduler {
	return &Scheduler{
		db:         db,
		cron:       cron.New(),
		logger:     logger,
		invalidate: invalidate,
	}
}

// Start registers the cron jobs and begins running them.
func (s *Scheduler) Start() error {
	// Check for due posts every minute
	_, err := s.cron.AddFunc("* * * * *", func() {
		if err := s.processScheduledPosts(); err != nil {
			s.logger.Error("failed to process scheduled posts", "error", err)
		}
	})
	if err != nil {
		return err
	}

	// Prune old audit events nightly
	_, err = s.cron.AddFunc("30 3 * * *", func() {
		if err := s.pruneEvents(); err != nil {
			s.logger.Error("failed to prune events", "error", err)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
	return nil
}

// Stop gracefully stops the scheduler.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// processScheduledPosts publishes pending posts whose scheduled time has passed.
func (s *Scheduler) processScheduledPosts() error {
	ctx := context.Background()
	queries := store.New(s.db)

	now := time.Now()
	posts, err := queries.ListScheduledBlogPostsDue(ctx, now)
	if err != nil {
		return err
	}

	if len(posts) == 0 {
		return nil
	}

	s.logger.Info("processing scheduled posts", "count", len(posts))

	for _, post := range posts {
		if err := s.publishPost(ctx, queries, post, now); err != nil {
			s.logger.Error("failed to publish scheduled post",
				"post_id", post.ID,
				"post_title", post.Title,
				"error", err,
			)
			continue
		}

		s.logger.Info("published scheduled post",
			"post_id", post.ID,
			"post_title", post.Title,
			"scheduled_at", post.ScheduledAt.Time,
		)
	}

	if s.invalidate != nil {
		s.invalidate(ctx)
	}

	return nil
}

// publishPost publishes a single scheduled post and logs the event.
func (s *Scheduler) publishPost(ctx context.Context, queries *store.Queries, post model.BlogPost, now time.Time) error {
	err := queries.UpdateBlogPostStatus(ctx, post.ID, model.BlogStatusPublished,
		sql.NullTime{Time: now, Valid: true})
	if err != nil {
		return err
	}

	metadata := map[string]any{
		"post_id":      post.ID,
		"post_title":   post.Title,
		"post_slug":    post.Slug,
		"scheduled_at": post.ScheduledAt.Time.Format(time.RFC3339),
		"published_at": now.Format(time.RFC3339),
	}
	metadataJSON, _ := json.Marshal(metadata)

	_, err = queries.CreateEvent(ctx, store.CreateEventParams{
		Level:       model.EventLevelInfo,
		Category:    model.EventCategoryContent,
		Message:     "Post published automatically by scheduler: " + post.Title,
		AdminUserID: sql.NullInt64{}, // System action, no admin
		Metadata:    string(metadataJSON),
	})
	if err != nil {
		s.logger.Warn("failed to log scheduled publish event", "error", err)
	}
	return nil
}

// pruneEvents deletes audit events older than the retention window.
func (s *Scheduler) pruneEvents() error {
	ctx := context.Background()
	queries := store.New(s.db)

	deleted, err := queries.DeleteEventsBefore(ctx, time.Now().Add(-eventRetention))
	if err != nil {
		return err
	}
	if deleted > 0 {
		s.logger.Info("pruned old events", "deleted", deleted)
	}
	return nil
}
