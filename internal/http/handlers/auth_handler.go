package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"shopfront/internal/api"
	"shopfront/internal/domain"
	applog "shopfront/internal/log"
	"shopfront/internal/session"
	"shopfront/internal/validate"
)

type AuthHandler struct {
	API      *api.Client
	Sessions *session.Store
}

func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	return render(c, "login", fiber.Map{"Err": ""})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	sid := ensureSID(c)
	username := c.FormValue("username")
	password := c.FormValue("password")
	role := validate.Role(c.FormValue("role"))

	if _, ok := validate.Username(username); !ok || password == "" {
		applog.Security(c, "auth.login.fail", map[string]any{"username": username, "reason": "bad_format"})
		return c.Status(fiber.StatusUnauthorized).Render("login", fiber.Map{"Err": "Invalid username or password"})
	}

	auth, err := h.API.Login(c.UserContext(), username, password, role)
	if err != nil {
		applog.Security(c, "auth.login.fail", map[string]any{"username": username, "role": role})
		return c.Status(fiber.StatusUnauthorized).Render("login", fiber.Map{"Err": api.Detail(err)})
	}

	if err := h.Sessions.SetTokens(sid, auth.AccessToken, auth.RefreshToken); err != nil {
		applog.Error(c, "auth.login.persist", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("login", fiber.Map{"Err": "Could not start a session. Please retry."})
	}
	if err := h.Sessions.SaveUser(sid, &auth.User); err != nil {
		applog.Error(c, "auth.login.persist", err, nil)
	}

	applog.Audit(c, "auth.login.success", map[string]any{"username": username, "role": auth.User.Role})
	if auth.User.Role == domain.RoleAdmin {
		return c.Redirect("/admin")
	}
	return c.Redirect("/dashboard")
}

func (h *AuthHandler) SignupForm(c *fiber.Ctx) error {
	return render(c, "signup", fiber.Map{"Err": ""})
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	fullName, okName := validate.Name(c.FormValue("full_name"))
	username, okUser := validate.Username(c.FormValue("username"))
	email, okEmail := validate.Email(c.FormValue("email"))
	password := c.FormValue("password")

	switch {
	case !okName:
		return c.Status(fiber.StatusBadRequest).Render("signup", fiber.Map{"Err": "Enter your name (up to 60 characters)"})
	case !okUser:
		return c.Status(fiber.StatusBadRequest).Render("signup", fiber.Map{"Err": "Username must be 3-30 letters, digits or ._-"})
	case !okEmail:
		return c.Status(fiber.StatusBadRequest).Render("signup", fiber.Map{"Err": "Enter a valid email address"})
	case !validate.Password(password):
		return c.Status(fiber.StatusBadRequest).Render("signup", fiber.Map{"Err": "Password must be 8-64 characters"})
	}

	if err := h.API.Signup(c.UserContext(), fullName, username, email, password); err != nil {
		applog.Error(c, "auth.signup.fail", err, map[string]any{"username": username})
		return c.Status(fiber.StatusBadRequest).Render("signup", fiber.Map{"Err": api.Detail(err)})
	}

	applog.Audit(c, "auth.signup.success", map[string]any{"username": username})
	setFlash(c, "Account created. Please sign in.")
	return c.Redirect("/login")
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := ensureSID(c)
	_ = h.Sessions.Clear(sid)
	// Expire cookie
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   false,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
	applog.Audit(c, "auth.logout", nil)
	return c.Redirect("/")
}

// Profile re-fetches the account from the backend; the session copy is a
// display cache, never the source of truth.
func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	sid := ensureSID(c)
	u, err := h.API.CurrentUser(c.UserContext(), sid)
	if err != nil {
		if errors.Is(err, api.ErrUnauthenticated) {
			return c.Redirect("/login")
		}
		applog.Error(c, "profile.load.fail", err, nil)
		return render(c, "profile", fiber.Map{"Flash": "Could not load your profile"})
	}
	_ = h.Sessions.SaveUser(sid, u)
	return render(c, "profile", fiber.Map{"Profile": u})
}
