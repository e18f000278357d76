package db

import (
	"context"
	"database/sql"
	"fmt"
)

func (d *DB) GroupBySlug(ctx context.Context, slug string) (*Group, error) {
	var g Group
	err := d.Db.QueryRowContext(ctx,
		`SELECT id, title, slug, description FROM groups WHERE slug = $1`,
		slug,
	).Scan(&g.ID, &g.Title, &g.Slug, &g.Description)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("group by slug: %w", err)
	}
	return &g, nil
}

func (d *DB) Groups(ctx context.Context) ([]Group, error) {
	rows, err := d.Db.QueryContext(ctx,
		`SELECT id, title, slug, description FROM groups ORDER BY title`)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	defer rows.Close()

	var groups []Group
	for rows.Next() {
		var g Group
		if err := rows.Scan(&g.ID, &g.Title, &g.Slug, &g.Description); err != nil {
			return nil, fmt.Errorf("scan group: %w", err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return groups, nil
}

func (d *DB) CreateGroup(ctx context.Context, title, slug, description string) (*Group, error) {
	var g Group
	err := d.Db.QueryRowContext(ctx,
		`INSERT INTO groups(title, slug, description) VALUES ($1, $2, $3)
		 RETURNING id, title, slug, description`,
		title, slug, description,
	).Scan(&g.ID, &g.Title, &g.Slug, &g.Description)
	if err != nil {
		return nil, fmt.Errorf("create group: %w", err)
	}
	return &g, nil
}
