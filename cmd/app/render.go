package main

import (
	"bytes"
	"net/http"
)

// render executes a page into a buffer first so a template error still produces a clean 500.
// The current user is always available to the page as .user, nil when anonymous.
func (app *application) render(w http.ResponseWriter, r *http.Request, status int, page string, data envelope) {
	if data == nil {
		data = envelope{}
	}

	data["user"] = nil
	if user := app.getUserContext(r); !user.IsAnonymous() {
		data["user"] = user
	}

	buf := new(bytes.Buffer)
	err := app.views.Render(buf, page, data)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
