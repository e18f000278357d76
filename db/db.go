package db

import (
	"database/sql"

	"github.com/lib/pq"

	"github.com/loverfish/Social-network/log"
)

type DB struct {
	Db *sql.DB
}

var schema = []string{
	`CREATE TABLE authors(
		id SERIAL PRIMARY KEY,
		username VARCHAR(150) NOT NULL UNIQUE,
		password_hash VARCHAR(128) NOT NULL,
		joined TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE groups(
		id SERIAL PRIMARY KEY,
		title VARCHAR(200) NOT NULL,
		slug VARCHAR(200) NOT NULL UNIQUE,
		description TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE posts(
		id SERIAL PRIMARY KEY,
		text TEXT NOT NULL DEFAULT '',
		pub_date TIMESTAMPTZ NOT NULL DEFAULT now(),
		author_id INTEGER NOT NULL REFERENCES authors(id) ON DELETE CASCADE,
		group_id INTEGER REFERENCES groups(id) ON DELETE SET NULL,
		image VARCHAR(255) NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE comments(
		id SERIAL PRIMARY KEY,
		text TEXT NOT NULL,
		author_id INTEGER NOT NULL REFERENCES authors(id) ON DELETE CASCADE,
		post_id INTEGER NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
		created TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE follows(
		id SERIAL PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES authors(id) ON DELETE CASCADE,
		author_id INTEGER NOT NULL REFERENCES authors(id) ON DELETE CASCADE,
		UNIQUE(user_id, author_id)
	)`,
}

func Init(postgresURL string) (*DB, error) {
	db, err := sql.Open("postgres", postgresURL)
	if err != nil {
		return nil, err
	}

	log.Info.Printf("Creating Tables...\n")
	for _, stmt := range schema {
		_, err = db.Exec(stmt)
		if err != nil {
			if perr, ok := err.(*pq.Error); ok {
				if perr.Code.Name() != "duplicate_table" {
					return nil, perr
				}
				log.Warn.Printf("%s: %s", perr.Code.Name(), perr.Error())
			} else {
				return nil, err
			}
		}
	}

	log.Info.Printf("Tables Created...")
	return &DB{Db: db}, nil
}
