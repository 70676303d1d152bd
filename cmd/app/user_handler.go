package main

import (
	"errors"
	"net/http"

	"github.com/sushihentaime/globalaffair/internal/common"
	"github.com/sushihentaime/globalaffair/internal/userservice"
)

func (app *application) signupPageHandler(w http.ResponseWriter, r *http.Request) {
	app.render(w, r, http.StatusOK, "signup", nil)
}

func (app *application) signinPageHandler(w http.ResponseWriter, r *http.Request) {
	app.render(w, r, http.StatusOK, "signin", nil)
}

func (app *application) signupHandler(w http.ResponseWriter, r *http.Request) {
	err := r.ParseForm()
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	form := map[string]string{
		"fullName": r.PostForm.Get("fullName"),
		"email":    r.PostForm.Get("email"),
	}

	user, err := app.userService.CreateUser(r.Context(), form["fullName"], form["email"], r.PostForm.Get("password"))
	if err != nil {
		var validationErr common.ValidationError
		switch {
		case errors.Is(err, userservice.ErrDuplicateEmail):
			app.render(w, r, http.StatusUnprocessableEntity, "signup", envelope{
				"form":   form,
				"errors": map[string]string{"email": "a user with this email address already exists"},
			})
		case errors.As(err, &validationErr):
			app.render(w, r, http.StatusUnprocessableEntity, "signup", envelope{"form": form, "errors": validationErr.Errors})
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	// a failed welcome email is logged by the mail service and does not undo the signup
	if app.mailService != nil {
		_ = app.mailService.SendWelcome(user.Email, user.FullName)
	}

	http.Redirect(w, r, "/user/signin", http.StatusSeeOther)
}

func (app *application) signinHandler(w http.ResponseWriter, r *http.Request) {
	err := r.ParseForm()
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	email := r.PostForm.Get("email")

	token, err := app.userService.LoginUser(r.Context(), email, r.PostForm.Get("password"))
	if err != nil {
		var validationErr common.ValidationError
		switch {
		case errors.Is(err, userservice.ErrAuthenticationFailure), errors.As(err, &validationErr):
			app.render(w, r, http.StatusUnauthorized, "signin", envelope{
				"form":  map[string]string{"email": email},
				"error": "Incorrect email or password",
			})
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     tokenCookieName,
		Value:    token.Plain,
		Path:     "/",
		Expires:  token.Expiry,
		MaxAge:   int(app.tokens.TTL().Seconds()),
		HttpOnly: true,
		Secure:   app.config.Environment == "production",
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (app *application) logoutHandler(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     tokenCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   app.config.Environment == "production",
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
