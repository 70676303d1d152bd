package main

import (
	"context"
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundErrorResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedErrorResponse)

	router.HandlerFunc(http.MethodGet, "/healthcheck", app.healthCheckHandler)

	// static files
	router.ServeFiles("/uploads/*filepath", http.Dir(app.config.UploadDir))
	router.ServeFiles("/static/*filepath", http.Dir(app.config.PublicDir))

	// user service
	router.HandlerFunc(http.MethodGet, "/user/signup", app.signupPageHandler)
	router.HandlerFunc(http.MethodPost, "/user/signup", app.signupHandler)
	router.HandlerFunc(http.MethodGet, "/user/signin", app.signinPageHandler)
	router.HandlerFunc(http.MethodPost, "/user/signin", app.signinHandler)
	router.HandlerFunc(http.MethodGet, "/user/logout", app.logoutHandler)

	// blog service
	router.HandlerFunc(http.MethodGet, "/", app.listBlogsHandler)
	router.HandlerFunc(http.MethodGet, "/blog/:id", app.showBlogHandler)
	router.HandlerFunc(http.MethodGet, "/blog/:id/edit", app.editBlogPageHandler)
	router.HandlerFunc(http.MethodPost, "/blog", app.requireAuthUser(app.createBlogHandler))
	router.HandlerFunc(http.MethodPost, "/blog/:id/:action", app.blogActionHandler)
	router.HandlerFunc(http.MethodPatch, "/blog/:id", app.requireAuthUser(app.updateBlogHandler))
	router.HandlerFunc(http.MethodPut, "/blog/:id", app.requireAuthUser(app.updateBlogHandler))
	router.HandlerFunc(http.MethodDelete, "/blog/:id", app.requireAuthUser(app.deleteBlogHandler))

	return app.recoverPanic(app.logRequest(app.rateLimit(app.methodOverride(app.authenticate(router)))))
}

// blogActionHandler serves POST /blog/comment/:blogId and POST /blog/:id/delete. httprouter does
// not allow a static segment next to a parameter, so both share one route.
func (app *application) blogActionHandler(w http.ResponseWriter, r *http.Request) {
	params := httprouter.ParamsFromContext(r.Context())

	switch {
	case params.ByName("id") == "comment":
		params = httprouter.Params{{Key: "blogId", Value: params.ByName("action")}}
		r = r.WithContext(context.WithValue(r.Context(), httprouter.ParamsKey, params))
		app.requireAuthUser(app.addCommentHandler)(w, r)
	case params.ByName("action") == "delete":
		app.requireAuthUser(app.deleteBlogHandler)(w, r)
	default:
		app.notFoundErrorResponse(w, r)
	}
}
