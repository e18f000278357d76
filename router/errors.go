package router

import (
	"net/http"

	"github.com/loverfish/Social-network/log"
)

// notFound marks an absent Author, Group or Post. Rendered as the 404
// page carrying the requested path.
func notFound(err error) *HTTPError {
	return &HTTPError{
		IError: err,
		Level:  1,
		Status: http.StatusNotFound,
	}
}

// internal marks an unexpected failure. Logged and rendered as the
// generic 500 page.
func internal(err error) *HTTPError {
	return &HTTPError{
		IError: err,
		Level:  3,
		Status: http.StatusInternalServerError,
	}
}

// redirect stops the chain with a 302.
func redirect(to string) *HTTPError {
	return &HTTPError{Redirect: to}
}

func renderError(w http.ResponseWriter, r *http.Request, e *HTTPError) {
	status := e.Status
	if status == 0 {
		status = http.StatusInternalServerError
	}

	var err error
	if status == http.StatusNotFound {
		err = render(w, status, "404.html", ErrorContext{Path: r.URL.Path})
	} else {
		err = render(w, status, "500.html", ErrorContext{Path: r.URL.Path})
	}
	if err != nil {
		log.Error.Printf("%v: %s\n", err, err)
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte(http.StatusText(status)))
	}
}

// NotFound is the router-level fallback for paths that match nothing.
func NotFound(w http.ResponseWriter, r *http.Request) {
	renderError(w, r, &HTTPError{Status: http.StatusNotFound, Level: 1})
}
