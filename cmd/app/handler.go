package main

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/sushihentaime/globalaffair/internal/blogservice"
	"github.com/sushihentaime/globalaffair/internal/common"
	"github.com/sushihentaime/globalaffair/internal/uploadservice"
)

const (
	coverImageField = "coverImage"
	addBlogPageID   = "add-new"
)

func (app *application) listBlogsHandler(w http.ResponseWriter, r *http.Request) {
	blogs, err := app.blogService.GetBlogs(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.render(w, r, http.StatusOK, "home", envelope{"blogs": blogs})
}

// showBlogHandler also answers /blog/add-new, which shares its path segment with the blog id.
func (app *application) showBlogHandler(w http.ResponseWriter, r *http.Request) {
	id := app.readParam(r, "id")
	if id == addBlogPageID {
		app.requireAuthUser(app.addBlogPageHandler)(w, r)
		return
	}

	detail, err := app.blogService.GetBlogDetail(r.Context(), id)
	if err != nil {
		app.blogLookupErrorResponse(w, r, err)
		return
	}

	app.render(w, r, http.StatusOK, "blog", envelope{"blog": detail.Blog, "comments": detail.Comments})
}

func (app *application) addBlogPageHandler(w http.ResponseWriter, r *http.Request) {
	app.render(w, r, http.StatusOK, "addBlog", nil)
}

func (app *application) editBlogPageHandler(w http.ResponseWriter, r *http.Request) {
	blog, err := app.blogService.GetBlogByID(r.Context(), app.readParam(r, "id"))
	if err != nil {
		app.blogLookupErrorResponse(w, r, err)
		return
	}

	user := app.getUserContext(r)
	if user.IsAnonymous() {
		http.Redirect(w, r, "/user/signin", http.StatusSeeOther)
		return
	}

	if !user.CanModify(blog.CreatedBy) {
		app.forbiddenErrorResponse(w, r)
		return
	}

	app.render(w, r, http.StatusOK, "editBlog", envelope{"blog": blog})
}

func (app *application) createBlogHandler(w http.ResponseWriter, r *http.Request) {
	err := app.parseForm(w, r)
	if err != nil {
		app.formErrorResponse(w, r, err)
		return
	}

	upload, err := app.saveCoverImage(r)
	if err != nil {
		app.uploadErrorResponse(w, r, err)
		return
	}

	if upload == nil {
		app.failedValidationErrorResponse(w, r, map[string]string{coverImageField: "must be provided"})
		return
	}

	user := app.getUserContext(r)

	blog, err := app.blogService.CreateBlog(r.Context(), &blogservice.CreateBlogRequest{
		Title:         r.PostFormValue("title"),
		Body:          r.PostFormValue("body"),
		CoverImageURL: upload.Path,
		CreatedBy:     user.ID,
	})
	if err != nil {
		app.discardUpload(r, upload)

		var validationErr common.ValidationError
		switch {
		case errors.As(err, &validationErr):
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	http.Redirect(w, r, "/blog/"+blog.ID.Hex(), http.StatusSeeOther)
}

// updateBlogHandler changes only the fields that were sent with a value.
func (app *application) updateBlogHandler(w http.ResponseWriter, r *http.Request) {
	id := app.readParam(r, "id")

	blog, err := app.blogService.GetBlogByID(r.Context(), id)
	if err != nil {
		app.blogLookupErrorResponse(w, r, err)
		return
	}

	if !app.getUserContext(r).CanModify(blog.CreatedBy) {
		app.forbiddenErrorResponse(w, r)
		return
	}

	err = app.parseForm(w, r)
	if err != nil {
		app.formErrorResponse(w, r, err)
		return
	}

	var input blogservice.UpdateBlogRequest

	if title := r.PostFormValue("title"); strings.TrimSpace(title) != "" {
		input.Title = &title
	}

	if body := r.PostFormValue("body"); strings.TrimSpace(body) != "" {
		input.Body = &body
	}

	upload, err := app.saveCoverImage(r)
	if err != nil {
		app.uploadErrorResponse(w, r, err)
		return
	}

	if upload != nil {
		input.CoverImageURL = &upload.Path
	}

	_, err = app.blogService.UpdateBlog(r.Context(), id, &input)
	if err != nil {
		app.discardUpload(r, upload)

		var validationErr common.ValidationError
		switch {
		case errors.Is(err, common.ErrRecordNotFound):
			app.blogNotFoundResponse(w, r)
		case errors.As(err, &validationErr):
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	http.Redirect(w, r, "/blog/"+id, http.StatusSeeOther)
}

// deleteBlogHandler treats a blog that is already gone as deleted.
func (app *application) deleteBlogHandler(w http.ResponseWriter, r *http.Request) {
	id := app.readParam(r, "id")

	blog, err := app.blogService.GetBlogByID(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrRecordNotFound):
			http.Redirect(w, r, "/", http.StatusSeeOther)
		case errors.Is(err, common.ErrInvalidID):
			app.badRequestErrorResponse(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	if !app.getUserContext(r).CanModify(blog.CreatedBy) {
		app.forbiddenErrorResponse(w, r)
		return
	}

	err = app.blogService.DeleteBlog(r.Context(), id)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (app *application) addCommentHandler(w http.ResponseWriter, r *http.Request) {
	blogID := app.readParam(r, "blogId")

	err := app.parseForm(w, r)
	if err != nil {
		app.formErrorResponse(w, r, err)
		return
	}

	_, err = app.blogService.AddComment(r.Context(), &blogservice.CreateCommentRequest{
		Content:   r.PostFormValue("content"),
		BlogID:    blogID,
		CreatedBy: app.getUserContext(r).ID,
	})
	if err != nil {
		var validationErr common.ValidationError
		switch {
		case errors.As(err, &validationErr):
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.blogLookupErrorResponse(w, r, err)
		}
		return
	}

	http.Redirect(w, r, "/blog/"+blogID, http.StatusSeeOther)
}

func (app *application) blogLookupErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrRecordNotFound):
		app.blogNotFoundResponse(w, r)
	case errors.Is(err, common.ErrInvalidID):
		app.badRequestErrorResponse(w, r, err)
	default:
		app.serverErrorResponse(w, r, err)
	}
}

// saveCoverImage stores the cover image part of the form. It returns nil when no file was sent.
func (app *application) saveCoverImage(r *http.Request) (*uploadservice.Upload, error) {
	file, header, err := r.FormFile(coverImageField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	return app.uploads.Save(file, header.Filename)
}

// discardUpload removes a stored file whose blog write did not happen.
func (app *application) discardUpload(r *http.Request, upload *uploadservice.Upload) {
	if upload == nil {
		return
	}

	if err := app.uploads.Remove(upload.Path); err != nil {
		app.logError(r, err)
	}
}

func (app *application) uploadErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, uploadservice.ErrEmptyFile):
		app.failedValidationErrorResponse(w, r, map[string]string{coverImageField: "must not be empty"})
	case errors.Is(err, uploadservice.ErrUnsupportedType):
		app.failedValidationErrorResponse(w, r, map[string]string{coverImageField: "must be a PNG, JPEG, GIF or WebP image"})
	case errors.Is(err, uploadservice.ErrTooLarge):
		app.failedValidationErrorResponse(w, r, map[string]string{coverImageField: fmt.Sprintf("must not be larger than %d bytes", app.uploads.MaxBytes())})
	default:
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) formErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		app.payloadTooLargeErrorResponse(w, r, maxBytesErr.Limit)
		return
	}

	app.badRequestErrorResponse(w, r, err)
}
