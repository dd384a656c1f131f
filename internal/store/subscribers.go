// Copyright (c) 2025-2026 VK WebCraft
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/vkwebcraft/indublog/internal/model"
)

const subscriberColumns = `id, email, unsubscribe_token, subscribed_at`

func scanSubscriber(row interface{ Scan(...any) error }) (model.Subscriber, error) {
	var s model.Subscriber
	err := row.Scan(&s.ID, &s.Email, &s.UnsubscribeToken, &s.SubscribedAt)
	return s, err
}

// CreateSubscriber adds a newsletter subscriber. The email column is
// unique, so duplicate signups surface as a constraint error.
func (q *Queries) CreateSubscriber(ctx context.Context, email, unsubscribeToken string) (model.Subscriber, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO newsletter_subscribers (email, unsubscribe_token, subscribed_at)
		VALUES (?, ?, ?)
		RETURNING `+subscriberColumns, email, unsubscribeToken, time.Now())
	return scanSubscriber(row)
}

// GetSubscriberByEmail fetches a subscriber by email.
func (q *Queries) GetSubscriberByEmail(ctx context.Context, email string) (model.Subscriber, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+subscriberColumns+` FROM newsletter_subscribers WHERE email = ?`, email)
	return scanSubscriber(row)
}

// DeleteSubscriberByToken removes a subscriber via their unsubscribe token.
func (q *Queries) DeleteSubscriberByToken(ctx context.Context, token string) error {
	res, err := q.db.ExecContext(ctx,
		`DELETE FROM newsletter_subscribers WHERE unsubscribe_token = ?`, token)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

// CountSubscribers returns the newsletter subscriber total.
func (q *Queries) CountSubscribers(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM newsletter_subscribers`).Scan(&n)
	return n, err
}
