// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/olegiv/brightside-go/internal/store"
	"github.com/olegiv/brightside-go/internal/util"
)

// Message is a contact form submission as shown in the admin inbox.
type Message struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone"`
	Subject   *string   `json:"subject"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// MessageInput is the public contact form.
type MessageInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

const (
	maxNameLength    = 100
	maxMessageLength = 10000
)

type MessageRepository struct {
	q    *store.Queries
	opts Options
}

func NewMessageRepository(q *store.Queries, opts Options) *MessageRepository {
	return &MessageRepository{q: q, opts: opts}
}

// Create stores a contact submission. It is the only unauthenticated
// write in the system.
func (r *MessageRepository) Create(ctx context.Context, in MessageInput) (Message, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	body := strings.TrimSpace(in.Message)

	switch {
	case name == "":
		return Message{}, required("name")
	case email == "":
		return Message{}, required("email")
	case body == "":
		return Message{}, required("message")
	case utf8.RuneCountInString(name) > maxNameLength:
		return Message{}, invalid("name", "is too long")
	case utf8.RuneCountInString(body) > maxMessageLength:
		return Message{}, invalid("message", "is too long")
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return Message{}, invalid("email", "is not a valid address")
	}

	row, err := r.q.CreateMessage(ctx, store.CreateMessageParams{
		Name:      name,
		Email:     email,
		Phone:     util.NullStringFromValue(in.Phone),
		Subject:   util.NullStringFromValue(in.Subject),
		Message:   body,
		CreatedAt: r.opts.now().UTC(),
	})
	if err != nil {
		return Message{}, fmt.Errorf("creating message: %w", err)
	}
	return toMessage(row), nil
}

func (r *MessageRepository) List(ctx context.Context, unreadOnly bool) ([]Message, error) {
	if _, err := requireIdentity(ctx); err != nil {
		return nil, err
	}
	rows, err := r.q.ListMessages(ctx, unreadOnly)
	if err != nil {
		return nil, fmt.Errorf("listing messages: %w", err)
	}
	out := make([]Message, 0, len(rows))
	for _, row := range rows {
		out = append(out, toMessage(row))
	}
	return out, nil
}

func (r *MessageRepository) Get(ctx context.Context, id int64) (Message, error) {
	if _, err := requireIdentity(ctx); err != nil {
		return Message{}, err
	}
	row, err := r.load(ctx, id)
	if err != nil {
		return Message{}, err
	}
	return toMessage(row), nil
}

// MarkAsRead sets the read flag and returns the updated message.
func (r *MessageRepository) MarkAsRead(ctx context.Context, id int64, isRead bool) (Message, error) {
	if _, err := requireIdentity(ctx); err != nil {
		return Message{}, err
	}
	row, err := r.load(ctx, id)
	if err != nil {
		return Message{}, err
	}
	if err := r.q.SetMessageRead(ctx, id, isRead); err != nil {
		return Message{}, fmt.Errorf("updating message: %w", err)
	}
	row.IsRead = isRead
	return toMessage(row), nil
}

func (r *MessageRepository) Delete(ctx context.Context, id int64) error {
	if _, err := requireIdentity(ctx); err != nil {
		return err
	}
	if _, err := r.load(ctx, id); err != nil {
		return err
	}
	if err := r.q.DeleteMessage(ctx, id); err != nil {
		return fmt.Errorf("deleting message: %w", err)
	}
	return nil
}

func (r *MessageRepository) UnreadCount(ctx context.Context) (int64, error) {
	if _, err := requireIdentity(ctx); err != nil {
		return 0, err
	}
	n, err := r.q.CountUnreadMessages(ctx)
	if err != nil {
		return 0, fmt.Errorf("counting unread messages: %w", err)
	}
	return n, nil
}

func (r *MessageRepository) load(ctx context.Context, id int64) (store.Message, error) {
	row, err := r.q.GetMessage(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.Message{}, ErrNotFound
		}
		return store.Message{}, fmt.Errorf("loading message: %w", err)
	}
	return row, nil
}

func toMessage(m store.Message) Message {
	return Message{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Phone:     util.StringPtr(m.Phone),
		Subject:   util.StringPtr(m.Subject),
		Message:   m.Message,
		IsRead:    m.IsRead,
		CreatedAt: m.CreatedAt,
	}
}
