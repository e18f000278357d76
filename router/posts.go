package router

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/loverfish/Social-network/db"
	"github.com/loverfish/Social-network/forms"
	"github.com/loverfish/Social-network/paginate"
)

const (
	indexPerPage = 10
	groupPerPage = 5
)

const routeIndex = "index"

func routeGroup(slug string) string { return "group:" + slug }

func routeProfile(username string) string { return "profile:" + username }

// index lists every post, newest first, ten per page. Anonymous views
// are served from and written to the page cache.
func index() Handler {
	return func(rc *RouterContext, w http.ResponseWriter, r *http.Request) *HTTPError {
		page := pageParam(r)

		if rc.actor == nil {
			if body, ok := rc.cache.Get(routeIndex, page); ok {
				writeHTML(w, http.StatusOK, body)
				return nil
			}
		}

		total, err := rc.store.CountPosts(r.Context())
		if err != nil {
			return internal(err)
		}
		pg := paginate.New(total, indexPerPage, page)

		posts, err := rc.store.Posts(r.Context(), pg.PerPage, pg.Offset())
		if err != nil {
			return internal(err)
		}

		body, err := renderBytes("index.html", IndexContext{
			Base:  Base{Actor: rc.actor},
			Posts: posts,
			Page:  pg,
		})
		if err != nil {
			return internal(err)
		}

		if rc.actor == nil {
			rc.cache.Set(routeIndex, pg.Number, body)
		}
		writeHTML(w, http.StatusOK, body)
		return nil
	}
}

// groupPosts lists a group's posts, five per page. Unknown slugs 404.
func groupPosts() Handler {
	return func(rc *RouterContext, w http.ResponseWriter, r *http.Request) *HTTPError {
		slug := mux.Vars(r)["slug"]
		page := pageParam(r)

		group, err := rc.store.GroupBySlug(r.Context(), slug)
		if err != nil {
			if err == db.ErrNotFound {
				return notFound(fmt.Errorf("group %q: %w", slug, err))
			}
			return internal(err)
		}

		if rc.actor == nil {
			if body, ok := rc.cache.Get(routeGroup(slug), page); ok {
				writeHTML(w, http.StatusOK, body)
				return nil
			}
		}

		total, err := rc.store.CountGroupPosts(r.Context(), group.ID)
		if err != nil {
			return internal(err)
		}
		pg := paginate.New(total, groupPerPage, page)

		posts, err := rc.store.GroupPosts(r.Context(), group.ID, pg.PerPage, pg.Offset())
		if err != nil {
			return internal(err)
		}

		body, err := renderBytes("group.html", GroupContext{
			Base:  Base{Actor: rc.actor},
			Group: group,
			Posts: posts,
			Page:  pg,
		})
		if err != nil {
			return internal(err)
		}

		if rc.actor == nil {
			rc.cache.Set(routeGroup(slug), pg.Number, body)
		}
		writeHTML(w, http.StatusOK, body)
		return nil
	}
}

// postView shows a single post with its comments, newest comment
// first, and a blank comment form.
func postView() Handler {
	return func(rc *RouterContext, w http.ResponseWriter, r *http.Request) *HTTPError {
		author, post, herr := resolvePost(rc, r)
		if herr != nil {
			return herr
		}

		comments, err := rc.store.PostComments(r.Context(), post.ID)
		if err != nil {
			return internal(err)
		}

		return renderPage(w, http.StatusOK, "post.html", PostContext{
			Base:     Base{Actor: rc.actor},
			Author:   author,
			Post:     post,
			Comments: comments,
		})
	}
}

// newPost renders the create form on GET and persists a valid
// submission on POST, then bounces to the index.
func newPost() Handler {
	return func(rc *RouterContext, w http.ResponseWriter, r *http.Request) *HTTPError {
		groups, err := rc.store.Groups(r.Context())
		if err != nil {
			return internal(err)
		}

		if r.Method == http.MethodGet {
			return renderPage(w, http.StatusOK, "new_post.html", PostFormContext{
				Base:   Base{Actor: rc.actor},
				Groups: groups,
			})
		}

		form, errs, herr := bindPostForm(rc, w, r)
		if herr != nil {
			return herr
		}
		if !errs.Valid() {
			return renderPage(w, http.StatusOK, "new_post.html", PostFormContext{
				Base:   Base{Actor: rc.actor},
				Form:   *form,
				Errors: errs,
				Groups: groups,
			})
		}

		post, err := rc.store.CreatePost(r.Context(), rc.actor.ID, form.Text, form.GroupID, form.ImageName)
		if err != nil {
			return internal(err)
		}

		routes := []string{routeIndex, routeProfile(rc.actor.Username)}
		if post.GroupSlug != "" {
			routes = append(routes, routeGroup(post.GroupSlug))
		}
		rc.cache.Invalidate(routes...)

		return redirect("/")
	}
}

// postEdit updates a post's mutable fields. Only the owning author may
// edit; anyone else is sent to the read view without an error. The
// publication timestamp is never touched.
func postEdit() Handler {
	return func(rc *RouterContext, w http.ResponseWriter, r *http.Request) *HTTPError {
		author, post, herr := resolvePost(rc, r)
		if herr != nil {
			return herr
		}

		postPath := fmt.Sprintf("/author/%s/%d", author.Username, post.ID)
		if rc.actor.ID != post.AuthorID {
			return redirect(postPath)
		}

		groups, err := rc.store.Groups(r.Context())
		if err != nil {
			return internal(err)
		}

		if r.Method == http.MethodGet {
			return renderPage(w, http.StatusOK, "new_post.html", PostFormContext{
				Base: Base{Actor: rc.actor},
				Form: forms.PostForm{
					Text:      post.Text,
					GroupID:   post.GroupID,
					ImageName: post.Image,
				},
				Groups: groups,
				Edit:   true,
				Post:   post,
			})
		}

		form, errs, herr := bindPostForm(rc, w, r)
		if herr != nil {
			return herr
		}
		if !errs.Valid() {
			return renderPage(w, http.StatusOK, "new_post.html", PostFormContext{
				Base:   Base{Actor: rc.actor},
				Form:   *form,
				Errors: errs,
				Groups: groups,
				Edit:   true,
				Post:   post,
			})
		}

		image := post.Image
		if form.ImageName != "" {
			image = form.ImageName
		}

		if err := rc.store.UpdatePost(r.Context(), post.ID, form.Text, form.GroupID, image); err != nil {
			return internal(err)
		}

		routes := []string{routeIndex, routeProfile(author.Username)}
		if post.GroupSlug != "" {
			routes = append(routes, routeGroup(post.GroupSlug))
		}
		if form.GroupID != post.GroupID {
			if updated, err := rc.store.PostByID(r.Context(), post.ID); err == nil && updated.GroupSlug != "" {
				routes = append(routes, routeGroup(updated.GroupSlug))
			}
		}
		rc.cache.Invalidate(routes...)

		return redirect(postPath)
	}
}

// resolvePost looks up the URL's author and post and checks they
// belong together; a mismatch is as absent as a missing row.
func resolvePost(rc *RouterContext, r *http.Request) (*db.Author, *db.Post, *HTTPError) {
	vars := mux.Vars(r)

	author, err := rc.store.AuthorByUsername(r.Context(), vars["username"])
	if err != nil {
		if err == db.ErrNotFound {
			return nil, nil, notFound(fmt.Errorf("author %q: %w", vars["username"], err))
		}
		return nil, nil, internal(err)
	}

	postID := pathInt(vars["post_id"])
	post, err := rc.store.PostByID(r.Context(), postID)
	if err != nil {
		if err == db.ErrNotFound {
			return nil, nil, notFound(fmt.Errorf("post %s: %w", vars["post_id"], err))
		}
		return nil, nil, internal(err)
	}
	if post.AuthorID != author.ID {
		return nil, nil, notFound(fmt.Errorf("post %d does not belong to %q", post.ID, author.Username))
	}

	return author, post, nil
}

// bindPostForm parses a create/edit submission, storing any image
// upload and running the fixed validation schema.
func bindPostForm(rc *RouterContext, w http.ResponseWriter, r *http.Request) (*forms.PostForm, forms.Errors, *HTTPError) {
	if err := parseSubmission(w, r); err != nil {
		return nil, nil, &HTTPError{IError: err, Level: 1, Status: http.StatusBadRequest}
	}

	form := &forms.PostForm{
		Text:    r.FormValue("text"),
		GroupID: formInt(r, "group"),
	}

	// Urlencoded bodies and absent uploads both read as "no file".
	file, header, err := r.FormFile("image")
	if err == nil {
		defer file.Close()
		stored, ctype, serr := saveUpload(rc.mediaDir, file, header)
		if serr != nil {
			return nil, nil, internal(serr)
		}
		form.ImageName = stored
		form.ImageType = ctype
	}

	return form, form.Validate(), nil
}
