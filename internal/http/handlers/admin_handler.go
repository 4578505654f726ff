package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"shopfront/internal/api"
	"shopfront/internal/domain"
	applog "shopfront/internal/log"
	"shopfront/internal/validate"
)

type AdminHandler struct {
	API *api.Client
}

// GET /admin
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	sid := ensureSID(c)
	u, err := h.API.CurrentAdmin(c.UserContext(), sid)
	if err != nil {
		if errors.Is(err, api.ErrUnauthenticated) {
			return c.Redirect("/login")
		}
		applog.Error(c, "admin.profile.fail", err, nil)
	}
	return render(c, "admin_dashboard", fiber.Map{"Admin": u})
}

// GET /admin/users
func (h *AdminHandler) Users(c *fiber.Ctx) error {
	sid := ensureSID(c)
	users, err := h.API.ListUsers(c.UserContext(), sid)
	if err != nil {
		if errors.Is(err, api.ErrUnauthenticated) {
			return c.Redirect("/login")
		}
		applog.Error(c, "admin.users.list.fail", err, nil)
		return render(c, "admin_users", fiber.Map{"Flash": "Could not load users", "Users": []domain.User{}})
	}
	return render(c, "admin_users", fiber.Map{"Users": users})
}

// POST /admin/users/:id — edit account fields, including role and active flag.
func (h *AdminHandler) UpdateUser(c *fiber.Ctx) error {
	sid := ensureSID(c)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("missing user id")
	}

	in := api.UserUpdate{
		FullName: c.FormValue("full_name"),
		Email:    c.FormValue("email"),
	}
	if role := c.FormValue("role"); role == domain.RoleAdmin || role == domain.RoleUser {
		in.Role = role
	}
	if v := c.FormValue("is_active"); v != "" {
		active := v == "true" || v == "on"
		in.IsActive = &active
	}

	if _, err := h.API.UpdateUser(c.UserContext(), sid, id, in); err != nil {
		if errors.Is(err, api.ErrUnauthenticated) {
			return c.Redirect("/login")
		}
		applog.Error(c, "admin.users.update.fail", err, map[string]any{"user_id": id})
		setFlash(c, api.Detail(err))
		return c.Redirect("/admin/users")
	}
	applog.Audit(c, "admin.users.update", map[string]any{"user_id": id})
	return c.Redirect("/admin/users")
}

// POST /admin/users/:id/delete
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	sid := ensureSID(c)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("missing user id")
	}
	if err := h.API.DeleteUser(c.UserContext(), sid, id); err != nil {
		if errors.Is(err, api.ErrUnauthenticated) {
			return c.Redirect("/login")
		}
		applog.Error(c, "admin.users.delete.fail", err, map[string]any{"user_id": id})
		setFlash(c, "Could not delete user")
		return c.Redirect("/admin/users")
	}
	applog.Audit(c, "admin.users.delete", map[string]any{"user_id": id})
	return c.Redirect("/admin/users")
}

// GET /admin/orders?status=&page=
func (h *AdminHandler) Orders(c *fiber.Ctx) error {
	sid := ensureSID(c)
	q := api.OrderQuery{Status: c.Query("status"), Limit: 50}
	if page, ok := validate.ID(c.Query("page")); ok {
		q.Page = page
	}
	orders, err := h.API.AllOrders(c.UserContext(), sid, q)
	if err != nil {
		if errors.Is(err, api.ErrUnauthenticated) {
			return c.Redirect("/login")
		}
		applog.Error(c, "admin.orders.list.fail", err, nil)
		return render(c, "admin_orders", fiber.Map{"Flash": "Could not load orders", "Orders": []domain.Order{}})
	}
	return render(c, "admin_orders", fiber.Map{"Orders": orders, "Status": q.Status, "Page": q.Page})
}

// POST /admin/orders/:id/status
func (h *AdminHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	sid := ensureSID(c)
	id, ok := validate.ID(c.Params("id"))
	status := c.FormValue("status")
	if !ok || status == "" {
		return c.Status(fiber.StatusBadRequest).SendString("missing id or status")
	}
	if _, err := h.API.UpdateOrderStatus(c.UserContext(), sid, id, status); err != nil {
		if errors.Is(err, api.ErrUnauthenticated) {
			return c.Redirect("/login")
		}
		applog.Error(c, "admin.orders.update.fail", err, map[string]any{"order_id": id})
		setFlash(c, "Could not update status")
		return c.Redirect("/admin/orders")
	}
	applog.Audit(c, "admin.orders.update", map[string]any{"order_id": id, "status": status})
	return c.Redirect("/admin/orders")
}

// GET /admin/reviews
func (h *AdminHandler) Reviews(c *fiber.Ctx) error {
	sid := ensureSID(c)
	reviews, err := h.API.AllReviews(c.UserContext(), sid)
	if err != nil {
		if errors.Is(err, api.ErrUnauthenticated) {
			return c.Redirect("/login")
		}
		applog.Error(c, "admin.reviews.list.fail", err, nil)
		return render(c, "admin_reviews", fiber.Map{"Flash": "Could not load reviews", "Reviews": []domain.Review{}})
	}
	return render(c, "admin_reviews", fiber.Map{"Reviews": reviews})
}
