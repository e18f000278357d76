package router

import (
	"net/http"

	"github.com/loverfish/Social-network/paginate"
)

// followIndex is the personalized feed: posts by everyone the actor
// follows, newest first.
func followIndex() Handler {
	return func(rc *RouterContext, w http.ResponseWriter, r *http.Request) *HTTPError {
		page := pageParam(r)

		total, err := rc.store.CountFollowingPosts(r.Context(), rc.actor.ID)
		if err != nil {
			return internal(err)
		}
		pg := paginate.New(total, indexPerPage, page)

		posts, err := rc.store.FollowingPosts(r.Context(), rc.actor.ID, pg.PerPage, pg.Offset())
		if err != nil {
			return internal(err)
		}

		return renderPage(w, http.StatusOK, "follow.html", FeedContext{
			Base:  Base{Actor: rc.actor},
			Posts: posts,
			Page:  pg,
		})
	}
}

// followersIndex is the mirror view: posts by the people who follow
// the actor.
func followersIndex() Handler {
	return func(rc *RouterContext, w http.ResponseWriter, r *http.Request) *HTTPError {
		page := pageParam(r)

		total, err := rc.store.CountFollowersPosts(r.Context(), rc.actor.ID)
		if err != nil {
			return internal(err)
		}
		pg := paginate.New(total, indexPerPage, page)

		posts, err := rc.store.FollowersPosts(r.Context(), rc.actor.ID, pg.PerPage, pg.Offset())
		if err != nil {
			return internal(err)
		}

		return renderPage(w, http.StatusOK, "follow.html", FeedContext{
			Base:      Base{Actor: rc.actor},
			Posts:     posts,
			Page:      pg,
			Followers: true,
		})
	}
}
