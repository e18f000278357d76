package router

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/loverfish/Social-network/db"
)

// The production types must keep satisfying the handler-facing
// interfaces the fakes stand in for.
var (
	_ Store    = (*db.DB)(nil)
	_ Sessions = (*db.Sessions)(nil)
	_ Cache    = (*db.PageCache)(nil)
)

// fakeStore is an in-memory Store. Post ids grow monotonically and
// pub dates follow creation order, matching the real schema.
type fakeStore struct {
	mu       sync.Mutex
	authors  map[int]*db.Author
	byName   map[string]int
	groups   map[int]*db.Group
	bySlug   map[string]int
	posts    map[int]*db.Post
	comments []*db.Comment
	follows  map[[2]int]bool
	nextID   int
	clock    time.Time
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		authors: make(map[int]*db.Author),
		byName:  make(map[string]int),
		groups:  make(map[int]*db.Group),
		bySlug:  make(map[string]int),
		posts:   make(map[int]*db.Post),
		follows: make(map[[2]int]bool),
		clock:   time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (s *fakeStore) id() int {
	s.nextID++
	return s.nextID
}

func (s *fakeStore) tick() time.Time {
	s.clock = s.clock.Add(time.Minute)
	return s.clock
}

func (s *fakeStore) AuthorByUsername(_ context.Context, username string) (*db.Author, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.byName[username]
	if !ok {
		return nil, db.ErrNotFound
	}
	a := *s.authors[id]
	return &a, nil
}

func (s *fakeStore) AuthorByID(_ context.Context, id int) (*db.Author, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.authors[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (s *fakeStore) CreateAuthor(_ context.Context, username, passwordHash string) (*db.Author, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, dup := s.byName[username]; dup {
		return nil, fmt.Errorf("duplicate username %q", username)
	}
	a := &db.Author{ID: s.id(), Username: username, PasswordHash: passwordHash, Joined: s.tick()}
	s.authors[a.ID] = a
	s.byName[a.Username] = a.ID
	cp := *a
	return &cp, nil
}

func (s *fakeStore) GroupBySlug(_ context.Context, slug string) (*db.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.bySlug[slug]
	if !ok {
		return nil, db.ErrNotFound
	}
	g := *s.groups[id]
	return &g, nil
}

func (s *fakeStore) Groups(_ context.Context) ([]db.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []db.Group
	for _, g := range s.groups {
		out = append(out, *g)
	}
	return out, nil
}

func (s *fakeStore) addGroup(title, slug string) *db.Group {
	s.mu.Lock()
	defer s.mu.Unlock()
	g := &db.Group{ID: s.id(), Title: title, Slug: slug}
	s.groups[g.ID] = g
	s.bySlug[slug] = g.ID
	return g
}

// postsWhere returns matching posts newest first.
func (s *fakeStore) postsWhere(match func(*db.Post) bool) []db.Post {
	var out []db.Post
	for id := s.nextID; id > 0; id-- {
		p, ok := s.posts[id]
		if ok && match(p) {
			out = append(out, *p)
		}
	}
	return out
}

func slicePage(posts []db.Post, limit, offset int) []db.Post {
	if offset >= len(posts) {
		return nil
	}
	posts = posts[offset:]
	if len(posts) > limit {
		posts = posts[:limit]
	}
	return posts
}

func (s *fakeStore) Posts(_ context.Context, limit, offset int) ([]db.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slicePage(s.postsWhere(func(*db.Post) bool { return true }), limit, offset), nil
}

func (s *fakeStore) CountPosts(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.posts), nil
}

func (s *fakeStore) GroupPosts(_ context.Context, groupID, limit, offset int) ([]db.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slicePage(s.postsWhere(func(p *db.Post) bool { return p.GroupID == groupID }), limit, offset), nil
}

func (s *fakeStore) CountGroupPosts(_ context.Context, groupID int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.postsWhere(func(p *db.Post) bool { return p.GroupID == groupID })), nil
}

func (s *fakeStore) AuthorPosts(_ context.Context, authorID, limit, offset int) ([]db.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slicePage(s.postsWhere(func(p *db.Post) bool { return p.AuthorID == authorID }), limit, offset), nil
}

func (s *fakeStore) CountAuthorPosts(_ context.Context, authorID int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.postsWhere(func(p *db.Post) bool { return p.AuthorID == authorID })), nil
}

func (s *fakeStore) PostByID(_ context.Context, id int) (*db.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *fakeStore) CreatePost(_ context.Context, authorID int, text string, groupID int, image string) (*db.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	author, ok := s.authors[authorID]
	if !ok {
		return nil, db.ErrNotFound
	}
	p := &db.Post{
		ID:             s.id(),
		Text:           text,
		PubDate:        s.tick(),
		Image:          image,
		AuthorID:       author.ID,
		AuthorUsername: author.Username,
	}
	if groupID != 0 {
		g, ok := s.groups[groupID]
		if !ok {
			return nil, fmt.Errorf("unknown group %d", groupID)
		}
		p.GroupID, p.GroupSlug, p.GroupTitle = g.ID, g.Slug, g.Title
	}
	s.posts[p.ID] = p
	cp := *p
	return &cp, nil
}

func (s *fakeStore) UpdatePost(_ context.Context, id int, text string, groupID int, image string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return db.ErrNotFound
	}
	p.Text = text
	p.Image = image
	p.GroupID, p.GroupSlug, p.GroupTitle = 0, "", ""
	if groupID != 0 {
		g, ok := s.groups[groupID]
		if !ok {
			return fmt.Errorf("unknown group %d", groupID)
		}
		p.GroupID, p.GroupSlug, p.GroupTitle = g.ID, g.Slug, g.Title
	}
	return nil
}

func (s *fakeStore) PostComments(_ context.Context, postID int) ([]db.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []db.Comment
	for i := len(s.comments) - 1; i >= 0; i-- {
		if s.comments[i].PostID == postID {
			out = append(out, *s.comments[i])
		}
	}
	return out, nil
}

func (s *fakeStore) CreateComment(_ context.Context, authorID, postID int, text string) (*db.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	author, ok := s.authors[authorID]
	if !ok {
		return nil, db.ErrNotFound
	}
	if _, ok := s.posts[postID]; !ok {
		return nil, db.ErrNotFound
	}
	c := &db.Comment{
		ID:             s.id(),
		Text:           text,
		Created:        s.tick(),
		AuthorID:       author.ID,
		AuthorUsername: author.Username,
		PostID:         postID,
	}
	s.comments = append(s.comments, c)
	cp := *c
	return &cp, nil
}

func (s *fakeStore) Follow(_ context.Context, userID, authorID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.follows[[2]int{userID, authorID}] = true
	return nil
}

func (s *fakeStore) Unfollow(_ context.Context, userID, authorID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.follows, [2]int{userID, authorID})
	return nil
}

func (s *fakeStore) Follows(_ context.Context, userID, authorID int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.follows[[2]int{userID, authorID}], nil
}

func (s *fakeStore) FollowerCount(_ context.Context, authorID int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for pair := range s.follows {
		if pair[1] == authorID {
			total++
		}
	}
	return total, nil
}

func (s *fakeStore) FollowingCount(_ context.Context, userID int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for pair := range s.follows {
		if pair[0] == userID {
			total++
		}
	}
	return total, nil
}

func (s *fakeStore) followedBy(userID int) map[int]bool {
	authors := make(map[int]bool)
	for pair := range s.follows {
		if pair[0] == userID {
			authors[pair[1]] = true
		}
	}
	return authors
}

func (s *fakeStore) followersOf(userID int) map[int]bool {
	users := make(map[int]bool)
	for pair := range s.follows {
		if pair[1] == userID {
			users[pair[0]] = true
		}
	}
	return users
}

func (s *fakeStore) FollowingPosts(_ context.Context, userID, limit, offset int) ([]db.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	followed := s.followedBy(userID)
	return slicePage(s.postsWhere(func(p *db.Post) bool { return followed[p.AuthorID] }), limit, offset), nil
}

func (s *fakeStore) CountFollowingPosts(_ context.Context, userID int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	followed := s.followedBy(userID)
	return len(s.postsWhere(func(p *db.Post) bool { return followed[p.AuthorID] })), nil
}

func (s *fakeStore) FollowersPosts(_ context.Context, userID, limit, offset int) ([]db.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	followers := s.followersOf(userID)
	return slicePage(s.postsWhere(func(p *db.Post) bool { return followers[p.AuthorID] }), limit, offset), nil
}

func (s *fakeStore) CountFollowersPosts(_ context.Context, userID int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	followers := s.followersOf(userID)
	return len(s.postsWhere(func(p *db.Post) bool { return followers[p.AuthorID] })), nil
}

type fakeSessions struct {
	mu     sync.Mutex
	tokens map[string]int
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{tokens: make(map[string]int)}
}

func (s *fakeSessions) Actor(token string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.tokens[token]
	if !ok {
		return 0, db.ErrNoSession
	}
	return id, nil
}

func (s *fakeSessions) Create(token string, authorID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = authorID
	return nil
}

func (s *fakeSessions) Destroy(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, token)
	return nil
}

type fakeCache struct {
	mu          sync.Mutex
	pages       map[string][]byte
	invalidated []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{pages: make(map[string][]byte)}
}

func (c *fakeCache) key(route string, page int) string {
	return fmt.Sprintf("%s:%d", route, page)
}

func (c *fakeCache) Get(route string, page int) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.pages[c.key(route, page)]
	return b, ok
}

func (c *fakeCache) Set(route string, page int, body []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pages[c.key(route, page)] = body
}

func (c *fakeCache) Invalidate(routes ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, route := range routes {
		c.invalidated = append(c.invalidated, route)
		for key := range c.pages {
			if len(key) > len(route) && key[:len(route)+1] == route+":" {
				delete(c.pages, key)
			}
		}
	}
}
