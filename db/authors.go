package db

import (
	"context"
	"database/sql"
	"fmt"
)

func (d *DB) AuthorByUsername(ctx context.Context, username string) (*Author, error) {
	var a Author
	err := d.Db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, joined FROM authors WHERE username = $1`,
		username,
	).Scan(&a.ID, &a.Username, &a.PasswordHash, &a.Joined)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("author by username: %w", err)
	}
	return &a, nil
}

func (d *DB) AuthorByID(ctx context.Context, id int) (*Author, error) {
	var a Author
	err := d.Db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, joined FROM authors WHERE id = $1`,
		id,
	).Scan(&a.ID, &a.Username, &a.PasswordHash, &a.Joined)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("author by id: %w", err)
	}
	return &a, nil
}

func (d *DB) CreateAuthor(ctx context.Context, username, passwordHash string) (*Author, error) {
	var a Author
	err := d.Db.QueryRowContext(ctx,
		`INSERT INTO authors(username, password_hash) VALUES ($1, $2)
		 RETURNING id, username, password_hash, joined`,
		username, passwordHash,
	).Scan(&a.ID, &a.Username, &a.PasswordHash, &a.Joined)
	if err != nil {
		return nil, fmt.Errorf("create author: %w", err)
	}
	return &a, nil
}
