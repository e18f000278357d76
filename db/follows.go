package db

import (
	"context"
	"fmt"
)

// Follow records that user subscribes to author's posts. The unique
// (user_id, author_id) constraint makes repeated calls no-ops even
// under concurrent requests.
func (d *DB) Follow(ctx context.Context, userID, authorID int) error {
	_, err := d.Db.ExecContext(ctx,
		`INSERT INTO follows(user_id, author_id) VALUES ($1, $2)
		 ON CONFLICT (user_id, author_id) DO NOTHING`,
		userID, authorID)
	if err != nil {
		return fmt.Errorf("follow: %w", err)
	}
	return nil
}

func (d *DB) Unfollow(ctx context.Context, userID, authorID int) error {
	_, err := d.Db.ExecContext(ctx,
		`DELETE FROM follows WHERE user_id = $1 AND author_id = $2`,
		userID, authorID)
	if err != nil {
		return fmt.Errorf("unfollow: %w", err)
	}
	return nil
}

// Follows reports whether user currently follows author.
func (d *DB) Follows(ctx context.Context, userID, authorID int) (bool, error) {
	var exists bool
	err := d.Db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM follows WHERE user_id = $1 AND author_id = $2)`,
		userID, authorID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("follows: %w", err)
	}
	return exists, nil
}

// FollowerCount is the number of people following author.
func (d *DB) FollowerCount(ctx context.Context, authorID int) (int, error) {
	var total int
	err := d.Db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM follows WHERE author_id = $1`, authorID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("follower count: %w", err)
	}
	return total, nil
}

// FollowingCount is the number of people author follows.
func (d *DB) FollowingCount(ctx context.Context, userID int) (int, error) {
	var total int
	err := d.Db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM follows WHERE user_id = $1`, userID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("following count: %w", err)
	}
	return total, nil
}

// FollowingPosts returns posts by everyone the user follows, most
// recent first.
func (d *DB) FollowingPosts(ctx context.Context, userID, limit, offset int) ([]Post, error) {
	rows, err := d.Db.QueryContext(ctx,
		postColumns+
			`JOIN follows f ON f.author_id = p.author_id
			 WHERE f.user_id = $1
			 ORDER BY p.pub_date DESC, p.id DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("following posts: %w", err)
	}
	defer rows.Close()
	return scanPosts(rows)
}

func (d *DB) CountFollowingPosts(ctx context.Context, userID int) (int, error) {
	var total int
	err := d.Db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM posts p
		 JOIN follows f ON f.author_id = p.author_id
		 WHERE f.user_id = $1`,
		userID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count following posts: %w", err)
	}
	return total, nil
}

// FollowersPosts returns posts by the people who follow the user, the
// "people who follow me" activity view.
func (d *DB) FollowersPosts(ctx context.Context, userID, limit, offset int) ([]Post, error) {
	rows, err := d.Db.QueryContext(ctx,
		postColumns+
			`JOIN follows f ON f.user_id = p.author_id
			 WHERE f.author_id = $1
			 ORDER BY p.pub_date DESC, p.id DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("followers posts: %w", err)
	}
	defer rows.Close()
	return scanPosts(rows)
}

func (d *DB) CountFollowersPosts(ctx context.Context, userID int) (int, error) {
	var total int
	err := d.Db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM posts p
		 JOIN follows f ON f.user_id = p.author_id
		 WHERE f.author_id = $1`,
		userID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count followers posts: %w", err)
	}
	return total, nil
}
