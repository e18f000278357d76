package router

import "net/http"

// withActor resolves the session cookie to an author and stores it on
// the chain context. Anonymous requests continue with a nil actor.
func withActor() Handler {
	return func(rc *RouterContext, w http.ResponseWriter, r *http.Request) *HTTPError {
		token := sessionToken(r)
		if token == "" {
			return nil
		}

		id, err := rc.sessions.Actor(token)
		if err != nil {
			// Expired or unknown token reads as anonymous.
			return nil
		}

		actor, err := rc.store.AuthorByID(r.Context(), id)
		if err != nil {
			// A session pointing at a deleted author is stale, warn
			// and continue anonymous.
			return &HTTPError{Level: 2, IError: err}
		}

		rc.actor = actor
		return nil
	}
}

// requireLogin stops the chain for anonymous requests, bouncing to the
// login page with the original path in ?next= so the actor lands back
// where they were headed.
func requireLogin() Handler {
	return func(rc *RouterContext, w http.ResponseWriter, r *http.Request) *HTTPError {
		if rc.actor == nil {
			return redirect("/auth/login/?next=" + r.URL.Path)
		}
		return nil
	}
}
