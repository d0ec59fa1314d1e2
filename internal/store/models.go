// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"database/sql"
	"time"
)

type User struct {
	ID           int64     `db:"id"`
	Username     string    `db:"username"`
	PasswordHash string    `db:"password_hash"`
	Email        string    `db:"email"`
	Role         string    `db:"role"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// Article is a row of either the news or the blog_posts table; both share
// one shape.
type Article struct {
	ID        int64          `db:"id"`
	Title     string         `db:"title"`
	TitleAm   sql.NullString `db:"title_am"`
	Slug      string         `db:"slug"`
	Content   string         `db:"content"`
	ContentAm sql.NullString `db:"content_am"`
	Excerpt   sql.NullString `db:"excerpt"`
	ExcerptAm sql.NullString `db:"excerpt_am"`
	ImagePath sql.NullString `db:"image_path"`
	Published bool           `db:"published"`
	AuthorID  sql.NullInt64  `db:"author_id"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

type Vacancy struct {
	ID             int64          `db:"id"`
	Title          string         `db:"title"`
	TitleAm        sql.NullString `db:"title_am"`
	Slug           string         `db:"slug"`
	Description    string         `db:"description"`
	DescriptionAm  sql.NullString `db:"description_am"`
	Requirements   sql.NullString `db:"requirements"`
	RequirementsAm sql.NullString `db:"requirements_am"`
	Location       sql.NullString `db:"location"`
	LocationAm     sql.NullString `db:"location_am"`
	Type           sql.NullString `db:"type"`
	TypeAm         sql.NullString `db:"type_am"`
	GoogleFormLink sql.NullString `db:"google_form_link"`
	Deadline       sql.NullString `db:"deadline"`
	Published      bool           `db:"published"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

type Message struct {
	ID        int64          `db:"id"`
	Name      string         `db:"name"`
	Email     string         `db:"email"`
	Phone     sql.NullString `db:"phone"`
	Subject   sql.NullString `db:"subject"`
	Message   string         `db:"message"`
	IsRead    bool           `db:"is_read"`
	CreatedAt time.Time      `db:"created_at"`
}

type Testimonial struct {
	ID           int64          `db:"id"`
	Name         string         `db:"name"`
	NameAm       sql.NullString `db:"name_am"`
	Role         sql.NullString `db:"role"`
	RoleAm       sql.NullString `db:"role_am"`
	Content      string         `db:"content"`
	ContentAm    sql.NullString `db:"content_am"`
	ImagePath    sql.NullString `db:"image_path"`
	DisplayOrder int64          `db:"display_order"`
	Active       bool           `db:"active"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

type Partner struct {
	ID           int64          `db:"id"`
	Name         string         `db:"name"`
	NameAm       sql.NullString `db:"name_am"`
	LogoPath     string         `db:"logo_path"`
	WebsiteURL   sql.NullString `db:"website_url"`
	DisplayOrder int64          `db:"display_order"`
	Active       bool           `db:"active"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

type Event struct {
	ID        int64     `db:"id"`
	Level     string    `db:"level"`
	Category  string    `db:"category"`
	Message   string    `db:"message"`
	Metadata  string    `db:"metadata"`
	CreatedAt time.Time `db:"created_at"`
}
