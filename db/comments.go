package db

import (
	"context"
	"fmt"
)

func (d *DB) PostComments(ctx context.Context, postID int) ([]Comment, error) {
	rows, err := d.Db.QueryContext(ctx,
		`SELECT c.id, c.text, c.created, c.author_id, a.username, c.post_id
		 FROM comments c
		 JOIN authors a ON a.id = c.author_id
		 WHERE c.post_id = $1
		 ORDER BY c.created DESC, c.id DESC`,
		postID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	var comments []Comment
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.Text, &c.Created, &c.AuthorID, &c.AuthorUsername, &c.PostID); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return comments, nil
}

func (d *DB) CreateComment(ctx context.Context, authorID, postID int, text string) (*Comment, error) {
	var c Comment
	err := d.Db.QueryRowContext(ctx,
		`INSERT INTO comments(text, author_id, post_id) VALUES ($1, $2, $3)
		 RETURNING id, text, created, author_id, post_id`,
		text, authorID, postID,
	).Scan(&c.ID, &c.Text, &c.Created, &c.AuthorID, &c.PostID)
	if err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return &c, nil
}
