package db

import (
	"context"
	"database/sql"
	"fmt"
)

// postColumns joins author and group metadata so list pages render
// without per-row lookups.
const postColumns = `
	SELECT
		p.id, p.text, p.pub_date, p.image,
		p.author_id, a.username,
		COALESCE(p.group_id, 0), COALESCE(g.slug, ''), COALESCE(g.title, '')
	FROM posts p
	JOIN authors a ON a.id = p.author_id
	LEFT JOIN groups g ON g.id = p.group_id
`

func scanPosts(rows *sql.Rows) ([]Post, error) {
	var posts []Post
	for rows.Next() {
		var p Post
		if err := rows.Scan(
			&p.ID, &p.Text, &p.PubDate, &p.Image,
			&p.AuthorID, &p.AuthorUsername,
			&p.GroupID, &p.GroupSlug, &p.GroupTitle,
		); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return posts, nil
}

func (d *DB) Posts(ctx context.Context, limit, offset int) ([]Post, error) {
	rows, err := d.Db.QueryContext(ctx,
		postColumns+`ORDER BY p.pub_date DESC, p.id DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()
	return scanPosts(rows)
}

func (d *DB) CountPosts(ctx context.Context) (int, error) {
	var total int
	err := d.Db.QueryRowContext(ctx, `SELECT COUNT(*) FROM posts`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return total, nil
}

func (d *DB) GroupPosts(ctx context.Context, groupID, limit, offset int) ([]Post, error) {
	rows, err := d.Db.QueryContext(ctx,
		postColumns+`WHERE p.group_id = $1 ORDER BY p.pub_date DESC, p.id DESC LIMIT $2 OFFSET $3`,
		groupID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list group posts: %w", err)
	}
	defer rows.Close()
	return scanPosts(rows)
}

func (d *DB) CountGroupPosts(ctx context.Context, groupID int) (int, error) {
	var total int
	err := d.Db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM posts WHERE group_id = $1`, groupID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count group posts: %w", err)
	}
	return total, nil
}

func (d *DB) AuthorPosts(ctx context.Context, authorID, limit, offset int) ([]Post, error) {
	rows, err := d.Db.QueryContext(ctx,
		postColumns+`WHERE p.author_id = $1 ORDER BY p.pub_date DESC, p.id DESC LIMIT $2 OFFSET $3`,
		authorID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list author posts: %w", err)
	}
	defer rows.Close()
	return scanPosts(rows)
}

func (d *DB) CountAuthorPosts(ctx context.Context, authorID int) (int, error) {
	var total int
	err := d.Db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM posts WHERE author_id = $1`, authorID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count author posts: %w", err)
	}
	return total, nil
}

func (d *DB) PostByID(ctx context.Context, id int) (*Post, error) {
	var p Post
	err := d.Db.QueryRowContext(ctx,
		postColumns+`WHERE p.id = $1`, id,
	).Scan(
		&p.ID, &p.Text, &p.PubDate, &p.Image,
		&p.AuthorID, &p.AuthorUsername,
		&p.GroupID, &p.GroupSlug, &p.GroupTitle,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("post by id: %w", err)
	}
	return &p, nil
}

func nullableGroup(groupID int) sql.NullInt64 {
	if groupID == 0 {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(groupID), Valid: true}
}

func (d *DB) CreatePost(ctx context.Context, authorID int, text string, groupID int, image string) (*Post, error) {
	var id int
	err := d.Db.QueryRowContext(ctx,
		`INSERT INTO posts(text, author_id, group_id, image) VALUES ($1, $2, $3, $4) RETURNING id`,
		text, authorID, nullableGroup(groupID), image,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return d.PostByID(ctx, id)
}

// UpdatePost changes the mutable fields only. pub_date stays as written
// at creation.
func (d *DB) UpdatePost(ctx context.Context, id int, text string, groupID int, image string) error {
	_, err := d.Db.ExecContext(ctx,
		`UPDATE posts SET text = $1, group_id = $2, image = $3 WHERE id = $4`,
		text, nullableGroup(groupID), image, id)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	return nil
}
