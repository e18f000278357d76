// Package forms declares one fixed validation schema per submittable
// entity. Handlers re-render the submitting form with the returned
// Errors and persist nothing when validation fails.
package forms

import (
	"strings"
)

const (
	maxTextLen     = 10000
	maxUsernameLen = 150
	minPasswordLen = 6
)

// Errors maps a field name to its validation message.
type Errors map[string]string

func (e Errors) Add(field, msg string) {
	if _, dup := e[field]; !dup {
		e[field] = msg
	}
}

func (e Errors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

func (e Errors) Valid() bool {
	return len(e) == 0
}

// PostForm carries a create/edit post submission. ImageType is the
// sniffed content type of the upload, empty when no file was sent.
type PostForm struct {
	Text      string
	GroupID   int
	ImageName string
	ImageType string
}

func (f *PostForm) Validate() Errors {
	errs := Errors{}
	if len(f.Text) > maxTextLen {
		errs.Add("text", "text is too long")
	}
	if f.GroupID < 0 {
		errs.Add("group", "unknown group")
	}
	if f.ImageType != "" && !strings.HasPrefix(f.ImageType, "image/") {
		errs.Add("image", "upload a valid image")
	}
	return errs
}

type CommentForm struct {
	Text string
}

func (f *CommentForm) Validate() Errors {
	errs := Errors{}
	if strings.TrimSpace(f.Text) == "" {
		errs.Add("text", "comment cannot be empty")
	}
	if len(f.Text) > maxTextLen {
		errs.Add("text", "comment is too long")
	}
	return errs
}

type LoginForm struct {
	Username string
	Password string
}

func (f *LoginForm) Validate() Errors {
	errs := Errors{}
	if f.Username == "" {
		errs.Add("username", "username is required")
	}
	if f.Password == "" {
		errs.Add("password", "password is required")
	}
	return errs
}

type SignupForm struct {
	Username string
	Password string
}

func (f *SignupForm) Validate() Errors {
	errs := Errors{}
	switch {
	case f.Username == "":
		errs.Add("username", "username is required")
	case len(f.Username) > maxUsernameLen:
		errs.Add("username", "username is too long")
	case !validUsername(f.Username):
		errs.Add("username", "letters, digits and ._- only")
	}
	if len(f.Password) < minPasswordLen {
		errs.Add("password", "password must be at least 6 characters")
	}
	return errs
}

func validUsername(s string) bool {
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '.' || r == '_' || r == '-':
		default:
			return false
		}
	}
	return true
}
