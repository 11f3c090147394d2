package main

import (
	"errors"
	"net/http"

	"github.com/sushihentaime/blogdocs/internal/blogservice"
	"github.com/sushihentaime/blogdocs/internal/common"
	"github.com/sushihentaime/blogdocs/internal/logger"
)

func (app *application) createBlogHandler(w http.ResponseWriter, r *http.Request) {
	var input blogservice.CreateBlogRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	blog, err := app.blogService.CreateBlog(r.Context(), &input)
	if err != nil {
		var validationErr common.ValidationError
		switch {
		case errors.As(err, &validationErr):
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.logger.Info("blog created", logger.String("blogId", blog.BlogID))
	app.successResponse(w, r, http.StatusOK, "Blog Created successfully", blog)
}

func (app *application) getAllBlogsHandler(w http.ResponseWriter, r *http.Request) {
	blogs, err := app.blogService.GetAllBlogs(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.successResponse(w, r, http.StatusOK, "All Blog Details Found", blogs)
}

func (app *application) viewByBlogIDHandler(w http.ResponseWriter, r *http.Request) {
	blogID := app.readStringParam(r, "blogId")

	blog, err := app.blogService.ViewByBlogID(r.Context(), blogID)
	if err != nil {
		var validationErr common.ValidationError
		switch {
		case errors.As(err, &validationErr):
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		case errors.Is(err, blogservice.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r, "Blog Not Found")
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.successResponse(w, r, http.StatusOK, "Blog Found Successfully.", blog)
}

func (app *application) viewByAuthorHandler(w http.ResponseWriter, r *http.Request) {
	author := app.readStringParam(r, "author")

	blogs, err := app.blogService.ViewByAuthor(r.Context(), author)
	if err != nil {
		var validationErr common.ValidationError
		switch {
		case errors.As(err, &validationErr):
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		case errors.Is(err, blogservice.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r, "Blogs Not Found")
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.successResponse(w, r, http.StatusOK, "Blogs Found Successfully.", blogs)
}

func (app *application) viewByCategoryHandler(w http.ResponseWriter, r *http.Request) {
	category := app.readStringParam(r, "category")

	blogs, err := app.blogService.ViewByCategory(r.Context(), category)
	if err != nil {
		var validationErr common.ValidationError
		switch {
		case errors.As(err, &validationErr):
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		case errors.Is(err, blogservice.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r, "Blogs Not Found")
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.successResponse(w, r, http.StatusOK, "Blogs Found Successfully.", blogs)
}

func (app *application) editBlogHandler(w http.ResponseWriter, r *http.Request) {
	var input blogservice.EditBlogRequest

	blogID := app.readStringParam(r, "blogId")

	// A blank blogId outranks a bad body.
	if common.IsEmpty(blogID) {
		app.failedValidationErrorResponse(w, r, map[string]string{"blogId": "is missing"})
		return
	}

	// Fields outside the allow-list are rejected here.
	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	res, err := app.blogService.EditBlog(r.Context(), blogID, &input)
	if err != nil {
		var validationErr common.ValidationError
		switch {
		case errors.As(err, &validationErr):
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		case errors.Is(err, blogservice.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r, "Blog Not Found")
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.successResponse(w, r, http.StatusOK, "Blog Edited Successfully.", res)
}

func (app *application) increaseBlogViewHandler(w http.ResponseWriter, r *http.Request) {
	blogID := app.readStringParam(r, "blogId")

	blog, err := app.blogService.IncreaseBlogView(r.Context(), blogID)
	if err != nil {
		var validationErr common.ValidationError
		switch {
		case errors.As(err, &validationErr):
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		case errors.Is(err, blogservice.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r, "No Blog Found")
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.successResponse(w, r, http.StatusCreated, "Blog Updated", blog)
}

type deleteBlogRequest struct {
	BlogID string `json:"blogId"`
}

// deleteBlogHandler takes the blogId from the body. The path segment is not consulted.
func (app *application) deleteBlogHandler(w http.ResponseWriter, r *http.Request) {
	var input deleteBlogRequest

	// An empty body is a missing blogId, not a malformed request.
	err := app.parseJSON(w, r, &input)
	if err != nil && !errors.Is(err, errEmptyBody) {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	res, err := app.blogService.DeleteBlog(r.Context(), input.BlogID)
	if err != nil {
		var validationErr common.ValidationError
		switch {
		case errors.As(err, &validationErr):
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		case errors.Is(err, blogservice.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r, "Blog Not Found.")
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.successResponse(w, r, http.StatusOK, "Blog Deleted Successfully", res)
}
