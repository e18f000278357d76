package router

import (
	"github.com/loverfish/Social-network/db"
	"github.com/loverfish/Social-network/forms"
	"github.com/loverfish/Social-network/paginate"
)

// Base carries what every template needs for the header bar.
type Base struct {
	Actor *db.Author
}

type IndexContext struct {
	Base
	Posts []db.Post
	Page  paginate.Page
}

type GroupContext struct {
	Base
	Group *db.Group
	Posts []db.Post
	Page  paginate.Page
}

type ProfileContext struct {
	Base
	Author        *db.Author
	Posts         []db.Post
	Page          paginate.Page
	Followers     int
	Following     int
	ViewerFollows bool
}

type PostContext struct {
	Base
	Author   *db.Author
	Post     *db.Post
	Comments []db.Comment
	Form     forms.CommentForm
	Errors   forms.Errors
}

// PostFormContext backs both the create and edit forms.
type PostFormContext struct {
	Base
	Form   forms.PostForm
	Errors forms.Errors
	Groups []db.Group
	Edit   bool
	Post   *db.Post
}

type FeedContext struct {
	Base
	Posts []db.Post
	Page  paginate.Page
	// Followers flips the view between "people I follow" and "people
	// who follow me".
	Followers bool
}

type LoginContext struct {
	Base
	Form   forms.LoginForm
	Errors forms.Errors
	Next   string
}

type SignupContext struct {
	Base
	Form   forms.SignupForm
	Errors forms.Errors
}

type ErrorContext struct {
	Path string
}
