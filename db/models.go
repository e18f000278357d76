package db

import "time"

type Author struct {
	ID           int       `db:"id"`
	Username     string    `db:"username"`
	PasswordHash string    `db:"password_hash"`
	Joined       time.Time `db:"joined"`
}

type Group struct {
	ID          int    `db:"id"`
	Title       string `db:"title"`
	Slug        string `db:"slug"`
	Description string `db:"description"`
}

type Post struct {
	ID      int       `db:"id"`
	Text    string    `db:"text"`
	PubDate time.Time `db:"pub_date"`
	Image   string    `db:"image"`

	AuthorID       int `db:"author_id"`
	AuthorUsername string

	// GroupID is 0 for ungrouped posts.
	GroupID    int `db:"group_id"`
	GroupSlug  string
	GroupTitle string
}

type Comment struct {
	ID      int       `db:"id"`
	Text    string    `db:"text"`
	Created time.Time `db:"created"`

	AuthorID       int `db:"author_id"`
	AuthorUsername string
	PostID         int `db:"post_id"`
}

// Follow is a directed subscription: user follows author.
type Follow struct {
	ID       int `db:"id"`
	UserID   int `db:"user_id"`
	AuthorID int `db:"author_id"`
}
