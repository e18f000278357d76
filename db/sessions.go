package db

import (
	"time"

	"github.com/go-redis/redis"
)

const sessionTTL = 30 * 24 * time.Hour

// Sessions maps opaque cookie tokens to author ids in redis.
type Sessions struct {
	Client *redis.Client
}

func NewSessions(client *redis.Client) *Sessions {
	return &Sessions{Client: client}
}

// Actor resolves a session token to the logged-in author id.
func (s *Sessions) Actor(token string) (int, error) {
	id, err := s.Client.Get("session:" + token).Int64()
	if err != nil {
		if err == redis.Nil {
			return 0, ErrNoSession
		}
		return 0, err
	}
	return int(id), nil
}

// Create stores a session token for the author id.
func (s *Sessions) Create(token string, authorID int) error {
	return s.Client.Set("session:"+token, authorID, sessionTTL).Err()
}

func (s *Sessions) Destroy(token string) error {
	return s.Client.Del("session:" + token).Err()
}
