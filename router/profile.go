package router

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/loverfish/Social-network/db"
	"github.com/loverfish/Social-network/paginate"
)

const profilePerPage = 5

// profile shows an author's posts, five per page, with follower and
// following counts. Logged-in viewers also get whether they already
// follow this author, for the follow/unfollow button.
func profile() Handler {
	return func(rc *RouterContext, w http.ResponseWriter, r *http.Request) *HTTPError {
		username := mux.Vars(r)["username"]
		page := pageParam(r)

		author, herr := resolveAuthor(rc, r, username)
		if herr != nil {
			return herr
		}

		if rc.actor == nil {
			if body, ok := rc.cache.Get(routeProfile(username), page); ok {
				writeHTML(w, http.StatusOK, body)
				return nil
			}
		}

		total, err := rc.store.CountAuthorPosts(r.Context(), author.ID)
		if err != nil {
			return internal(err)
		}
		pg := paginate.New(total, profilePerPage, page)

		posts, err := rc.store.AuthorPosts(r.Context(), author.ID, pg.PerPage, pg.Offset())
		if err != nil {
			return internal(err)
		}

		followers, err := rc.store.FollowerCount(r.Context(), author.ID)
		if err != nil {
			return internal(err)
		}
		following, err := rc.store.FollowingCount(r.Context(), author.ID)
		if err != nil {
			return internal(err)
		}

		viewerFollows := false
		if rc.actor != nil && rc.actor.ID != author.ID {
			viewerFollows, err = rc.store.Follows(r.Context(), rc.actor.ID, author.ID)
			if err != nil {
				return internal(err)
			}
		}

		body, err := renderBytes("profile.html", ProfileContext{
			Base:          Base{Actor: rc.actor},
			Author:        author,
			Posts:         posts,
			Page:          pg,
			Followers:     followers,
			Following:     following,
			ViewerFollows: viewerFollows,
		})
		if err != nil {
			return internal(err)
		}

		if rc.actor == nil {
			rc.cache.Set(routeProfile(username), pg.Number, body)
		}
		writeHTML(w, http.StatusOK, body)
		return nil
	}
}

// profileFollow subscribes the actor to the target author. Repeats and
// self-follows are no-ops; either way the actor lands on the profile.
func profileFollow() Handler {
	return func(rc *RouterContext, w http.ResponseWriter, r *http.Request) *HTTPError {
		target, herr := resolveAuthor(rc, r, mux.Vars(r)["username"])
		if herr != nil {
			return herr
		}

		if rc.actor.ID != target.ID {
			if err := rc.store.Follow(r.Context(), rc.actor.ID, target.ID); err != nil {
				return internal(err)
			}
		}

		return redirect("/author/" + target.Username + "/")
	}
}

func profileUnfollow() Handler {
	return func(rc *RouterContext, w http.ResponseWriter, r *http.Request) *HTTPError {
		target, herr := resolveAuthor(rc, r, mux.Vars(r)["username"])
		if herr != nil {
			return herr
		}

		if err := rc.store.Unfollow(r.Context(), rc.actor.ID, target.ID); err != nil {
			return internal(err)
		}

		return redirect("/author/" + target.Username + "/")
	}
}

func resolveAuthor(rc *RouterContext, r *http.Request, username string) (*db.Author, *HTTPError) {
	author, err := rc.store.AuthorByUsername(r.Context(), username)
	if err != nil {
		if err == db.ErrNotFound {
			return nil, notFound(fmt.Errorf("author %q: %w", username, err))
		}
		return nil, internal(err)
	}
	return author, nil
}
