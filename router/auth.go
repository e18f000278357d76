package router

import (
	"crypto/sha512"
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/loverfish/Social-network/db"
	"github.com/loverfish/Social-network/forms"
	"github.com/loverfish/Social-network/log"
)

const sessionTokenLen = 32

func hashPassword(password string) string {
	h := sha512.New()
	h.Write([]byte(password))
	return hex.EncodeToString(h.Sum(nil))
}

func checkPasswordHash(password, hash string) bool {
	return hashPassword(password) == hash
}

// safeNext keeps the post-login destination on this site.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return "/"
	}
	return next
}

func startSession(rc *RouterContext, w http.ResponseWriter, authorID int) *HTTPError {
	token := RandomString(sessionTokenLen)
	if err := rc.sessions.Create(token, authorID); err != nil {
		return internal(err)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     "session",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func login() Handler {
	return func(rc *RouterContext, w http.ResponseWriter, r *http.Request) *HTTPError {
		if rc.actor != nil {
			return redirect("/")
		}

		next := safeNext(r.URL.Query().Get("next"))

		if r.Method == http.MethodGet {
			return renderPage(w, http.StatusOK, "login.html", LoginContext{Next: next})
		}

		if err := parseSubmission(w, r); err != nil {
			return &HTTPError{IError: err, Level: 1, Status: http.StatusBadRequest}
		}
		next = safeNext(r.FormValue("next"))

		form := forms.LoginForm{
			Username: r.FormValue("username"),
			Password: r.FormValue("password"),
		}
		errs := form.Validate()

		var author *db.Author
		if errs.Valid() {
			var err error
			author, err = rc.store.AuthorByUsername(r.Context(), form.Username)
			if err != nil && err != db.ErrNotFound {
				return internal(err)
			}
			if author == nil || !checkPasswordHash(form.Password, author.PasswordHash) {
				errs.Add("username", "unknown username or wrong password")
			}
		}

		if !errs.Valid() {
			return renderPage(w, http.StatusOK, "login.html", LoginContext{
				Form:   form,
				Errors: errs,
				Next:   next,
			})
		}

		if herr := startSession(rc, w, author.ID); herr != nil {
			return herr
		}
		return redirect(next)
	}
}

func logout() Handler {
	return func(rc *RouterContext, w http.ResponseWriter, r *http.Request) *HTTPError {
		if token := sessionToken(r); token != "" {
			if err := rc.sessions.Destroy(token); err != nil {
				log.Warn.Printf("%v: %s\n", err, err)
			}
		}
		http.SetCookie(w, &http.Cookie{
			Name:   "session",
			Value:  "",
			Path:   "/",
			MaxAge: -1,
		})
		return redirect("/")
	}
}

func signup() Handler {
	return func(rc *RouterContext, w http.ResponseWriter, r *http.Request) *HTTPError {
		if rc.actor != nil {
			return redirect("/")
		}

		if r.Method == http.MethodGet {
			return renderPage(w, http.StatusOK, "signup.html", SignupContext{})
		}

		if err := parseSubmission(w, r); err != nil {
			return &HTTPError{IError: err, Level: 1, Status: http.StatusBadRequest}
		}

		form := forms.SignupForm{
			Username: r.FormValue("username"),
			Password: r.FormValue("password"),
		}
		errs := form.Validate()

		if errs.Valid() {
			_, err := rc.store.AuthorByUsername(r.Context(), form.Username)
			switch err {
			case db.ErrNotFound:
				// Free to take.
			case nil:
				errs.Add("username", "username already taken")
			default:
				return internal(err)
			}
		}

		if !errs.Valid() {
			return renderPage(w, http.StatusOK, "signup.html", SignupContext{
				Form:   form,
				Errors: errs,
			})
		}

		author, err := rc.store.CreateAuthor(r.Context(), form.Username, hashPassword(form.Password))
		if err != nil {
			return internal(err)
		}

		if herr := startSession(rc, w, author.ID); herr != nil {
			return herr
		}
		return redirect("/")
	}
}
