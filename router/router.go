package router

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/loverfish/Social-network/db"
	"github.com/loverfish/Social-network/log"
)

// Store is the slice of the entity store the handlers consume. *db.DB
// satisfies it; tests plug in an in-memory fake.
type Store interface {
	AuthorByUsername(ctx context.Context, username string) (*db.Author, error)
	AuthorByID(ctx context.Context, id int) (*db.Author, error)
	CreateAuthor(ctx context.Context, username, passwordHash string) (*db.Author, error)

	GroupBySlug(ctx context.Context, slug string) (*db.Group, error)
	Groups(ctx context.Context) ([]db.Group, error)

	Posts(ctx context.Context, limit, offset int) ([]db.Post, error)
	CountPosts(ctx context.Context) (int, error)
	GroupPosts(ctx context.Context, groupID, limit, offset int) ([]db.Post, error)
	CountGroupPosts(ctx context.Context, groupID int) (int, error)
	AuthorPosts(ctx context.Context, authorID, limit, offset int) ([]db.Post, error)
	CountAuthorPosts(ctx context.Context, authorID int) (int, error)
	PostByID(ctx context.Context, id int) (*db.Post, error)
	CreatePost(ctx context.Context, authorID int, text string, groupID int, image string) (*db.Post, error)
	UpdatePost(ctx context.Context, id int, text string, groupID int, image string) error

	PostComments(ctx context.Context, postID int) ([]db.Comment, error)
	CreateComment(ctx context.Context, authorID, postID int, text string) (*db.Comment, error)

	Follow(ctx context.Context, userID, authorID int) error
	Unfollow(ctx context.Context, userID, authorID int) error
	Follows(ctx context.Context, userID, authorID int) (bool, error)
	FollowerCount(ctx context.Context, authorID int) (int, error)
	FollowingCount(ctx context.Context, userID int) (int, error)
	FollowingPosts(ctx context.Context, userID, limit, offset int) ([]db.Post, error)
	CountFollowingPosts(ctx context.Context, userID int) (int, error)
	FollowersPosts(ctx context.Context, userID, limit, offset int) ([]db.Post, error)
	CountFollowersPosts(ctx context.Context, userID int) (int, error)
}

// Sessions resolves and manages login tokens. *db.Sessions satisfies it.
type Sessions interface {
	Actor(token string) (int, error)
	Create(token string, authorID int) error
	Destroy(token string) error
}

// Cache is the rendered-page cache keyed by (route, page number).
// *db.PageCache satisfies it.
type Cache interface {
	Get(route string, page int) ([]byte, bool)
	Set(route string, page int, body []byte)
	Invalidate(routes ...string)
}

type RouterContext struct {
	store    Store
	sessions Sessions
	cache    Cache
	mediaDir string

	// actor is the authenticated author, nil for anonymous requests.
	// withActor resolves it once and every handler reads it from here,
	// never from a global.
	actor *db.Author
}

type HTTPError struct {
	Level    int
	IError   error
	Status   int
	Message  string
	Redirect string
}

type Handler func(rc *RouterContext, w http.ResponseWriter, r *http.Request) *HTTPError

// Handle runs a chain of handlers sharing one RouterContext. A handler
// stops the chain by returning a non-nil *HTTPError, which is either a
// redirect or one of three error levels:
//
// Level 1: Don't log anything on the server, only render a response to the user
// Level 2: Log the error as a warning, but keep the chain going
// Level 3: Log the error, cancel the request and render an error page
func Handle(store Store, sessions Sessions, cache Cache, mediaDir string, handlers ...Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		rc := &RouterContext{
			store:    store,
			sessions: sessions,
			cache:    cache,
			mediaDir: mediaDir,
		}

		for _, handler := range handlers {
			e := handler(rc, w, r)
			if e != nil {
				if e.Redirect != "" {
					http.Redirect(w, r, e.Redirect, http.StatusFound)
					return
				}

				switch e.Level {
				case 1:
					renderError(w, r, e)
					return

				case 2:
					log.Warn.Printf("%v: %s\n", e.IError, e.IError)

				default:
					log.Error.Printf("%v: %s\n", e.IError, e.IError)
					renderError(w, r, e)
					return
				}
			}
		}
	})
}

func Init(store Store, sessions Sessions, cache Cache, mediaDir string) *mux.Router {
	r := mux.NewRouter()
	r.StrictSlash(true)

	h := func(handlers ...Handler) http.Handler {
		return Handle(store, sessions, cache, mediaDir, handlers...)
	}

	r.Handle("/", h(withActor(), index())).Methods("GET")

	r.Handle("/new/", h(withActor(), requireLogin(), newPost())).Methods("GET", "POST")

	r.Handle("/follow/", h(withActor(), requireLogin(), followIndex())).Methods("GET")
	r.Handle("/followers/", h(withActor(), requireLogin(), followersIndex())).Methods("GET")
	r.Handle("/follow/{username}/", h(withActor(), requireLogin(), profileFollow())).Methods("GET")
	r.Handle("/unfollow/{username}/", h(withActor(), requireLogin(), profileUnfollow())).Methods("GET")

	r.Handle("/group/{slug}/", h(withActor(), groupPosts())).Methods("GET")

	r.Handle("/author/{username}/", h(withActor(), profile())).Methods("GET")
	r.Handle("/author/{username}/{post_id:[0-9]+}", h(withActor(), postView())).Methods("GET")
	r.Handle("/author/{username}/{post_id:[0-9]+}/edit", h(withActor(), requireLogin(), postEdit())).Methods("GET", "POST")
	r.Handle("/author/{username}/{post_id:[0-9]+}/comment", h(withActor(), requireLogin(), addComment())).Methods("POST")

	r.Handle("/auth/login/", h(withActor(), login())).Methods("GET", "POST")
	r.Handle("/auth/logout/", h(withActor(), logout())).Methods("GET")
	r.Handle("/auth/signup/", h(withActor(), signup())).Methods("GET", "POST")

	r.PathPrefix("/media/").Handler(
		http.StripPrefix("/media/", http.FileServer(http.Dir(mediaDir))))

	r.NotFoundHandler = http.HandlerFunc(NotFound)

	return r
}
