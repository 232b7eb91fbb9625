package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/AMINUL200/huberslaw-sub000/internal/adapters/api"
	"github.com/AMINUL200/huberslaw-sub000/internal/adapters/http/middleware"
	domainSession "github.com/AMINUL200/huberslaw-sub000/internal/domain/session"
)

// loginResponse is the payload the content API returns on a successful
// admin login.
type loginResponse struct {
	Token string `json:"token"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// handleLoginPage handles GET /login.
func handleLoginPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetSessionFromContext(r.Context()); ok {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}
	renderTemplate(w, r, "login.html", map[string]any{})
}

// handleLogin handles POST /login. Credentials are verified by the content
// API; nothing password-shaped is stored or checked locally.
func handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	email := formString(r, "email")
	password := r.FormValue("password")
	if email == "" || password == "" {
		renderTemplate(w, r, "login.html", map[string]any{
			"Error": "Email and password are required.",
			"Email": email,
		})
		return
	}

	data, err := deps.API.Post(r.Context(), "admin/login", map[string]any{
		"email":    email,
		"password": password,
	})
	if err != nil {
		slog.Warn("login_failed", "email", email)
		renderTemplate(w, r, "login.html", map[string]any{
			"Error": api.UserMessage(err),
			"Email": email,
		})
		return
	}

	var resp loginResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		internalError(w, fmt.Errorf("decode login response: %w", err))
		return
	}
	if resp.Token == "" {
		internalError(w, errors.New("login response missing token"))
		return
	}

	token, err := middleware.NewSessionToken()
	if err != nil {
		internalError(w, err)
		return
	}
	sess := domainSession.New(token, resp.Token, resp.Email, resp.Name, timeNow())
	if sess.Email == "" {
		sess.Email = email
	}
	if err := deps.Sessions.Save(r.Context(), sess); err != nil {
		internalError(w, err)
		return
	}

	middleware.SetSessionCookie(w, token)
	slog.Info("login_ok", "email", sess.Email)
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// handleLogout handles POST /logout.
func handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie("huberslaw_session"); err == nil && cookie.Value != "" {
		if err := deps.Sessions.Delete(r.Context(), cookie.Value); err != nil {
			slog.Warn("logout_delete_failed", "error", err.Error())
		}
	}
	middleware.ClearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleForgotPasswordPage handles GET /forgot-password.
func handleForgotPasswordPage(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, r, "forgot_password.html", map[string]any{"Step": "email"})
}

// handleForgotPassword handles POST /forgot-password. The reset runs as a
// three step wizard, each step a round trip to the content API: request a
// code, verify the code, set the new password.
func handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	step := formString(r, "step")
	email := formString(r, "email")

	switch step {
	case "email":
		if _, err := deps.API.Post(r.Context(), "admin/forgot-password", map[string]any{
			"email": email,
		}); err != nil {
			renderTemplate(w, r, "forgot_password.html", map[string]any{
				"Step": "email", "Email": email, "Error": api.UserMessage(err),
			})
			return
		}
		renderTemplate(w, r, "forgot_password.html", map[string]any{
			"Step": "code", "Email": email,
			"Notice": "We emailed you a verification code.",
		})

	case "code":
		code := formString(r, "code")
		if _, err := deps.API.Post(r.Context(), "admin/verify-code", map[string]any{
			"email": email, "code": code,
		}); err != nil {
			renderTemplate(w, r, "forgot_password.html", map[string]any{
				"Step": "code", "Email": email, "Error": api.UserMessage(err),
			})
			return
		}
		renderTemplate(w, r, "forgot_password.html", map[string]any{
			"Step": "reset", "Email": email, "Code": code,
		})

	case "reset":
		code := formString(r, "code")
		password := r.FormValue("password")
		confirm := r.FormValue("password_confirmation")
		if password == "" || password != confirm {
			renderTemplate(w, r, "forgot_password.html", map[string]any{
				"Step": "reset", "Email": email, "Code": code,
				"Error": "Passwords must match and may not be empty.",
			})
			return
		}
		if _, err := deps.API.Post(r.Context(), "admin/reset-password", map[string]any{
			"email": email, "code": code,
			"password": password, "password_confirmation": confirm,
		}); err != nil {
			renderTemplate(w, r, "forgot_password.html", map[string]any{
				"Step": "reset", "Email": email, "Code": code,
				"Error": api.UserMessage(err),
			})
			return
		}
		renderTemplate(w, r, "login.html", map[string]any{
			"Notice": "Password updated. Sign in with your new password.",
			"Email":  email,
		})

	default:
		http.Error(w, "unknown step", http.StatusBadRequest)
	}
}
