package router

import (
	"net/http"

	"github.com/loverfish/Social-network/forms"
)

// addComment attaches a comment to a post. An invalid submission
// re-renders the post view with the bound form and its errors; a valid
// one persists and bounces to the index.
func addComment() Handler {
	return func(rc *RouterContext, w http.ResponseWriter, r *http.Request) *HTTPError {
		author, post, herr := resolvePost(rc, r)
		if herr != nil {
			return herr
		}

		if err := parseSubmission(w, r); err != nil {
			return &HTTPError{IError: err, Level: 1, Status: http.StatusBadRequest}
		}

		form := forms.CommentForm{Text: r.FormValue("text")}
		if errs := form.Validate(); !errs.Valid() {
			comments, err := rc.store.PostComments(r.Context(), post.ID)
			if err != nil {
				return internal(err)
			}
			return renderPage(w, http.StatusOK, "post.html", PostContext{
				Base:     Base{Actor: rc.actor},
				Author:   author,
				Post:     post,
				Comments: comments,
				Form:     form,
				Errors:   errs,
			})
		}

		if _, err := rc.store.CreateComment(r.Context(), rc.actor.ID, post.ID, form.Text); err != nil {
			return internal(err)
		}

		return redirect("/")
	}
}
