package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"shopfront/internal/api"
	"shopfront/internal/domain"
	applog "shopfront/internal/log"
	"shopfront/internal/validate"
)

type WishlistHandler struct {
	API *api.Client
}

func (h *WishlistHandler) List(c *fiber.Ctx) error {
	sid := ensureSID(c)
	products, err := h.API.Wishlist(c.UserContext(), sid)
	if err != nil {
		if errors.Is(err, api.ErrUnauthenticated) {
			return c.Redirect("/login")
		}
		applog.Error(c, "wishlist.list.fail", err, nil)
		return render(c, "wishlist", fiber.Map{"Flash": "Could not load your wishlist", "Products": []domain.Product{}})
	}
	return render(c, "wishlist", fiber.Map{"Products": products})
}

// Save and Unsave propagate backend errors into a specific flash; the user
// asked for a definitive action and gets a definitive answer.
func (h *WishlistHandler) Save(c *fiber.Ctx) error {
	sid := ensureSID(c)
	pid, ok := validate.ID(c.FormValue("product_id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("missing product_id")
	}
	if err := h.API.AddToWishlist(c.UserContext(), sid, pid); err != nil {
		if errors.Is(err, api.ErrUnauthenticated) {
			return c.Redirect("/login")
		}
		applog.Error(c, "wishlist.save.fail", err, map[string]any{"product_id": pid})
		setFlash(c, api.Detail(err))
	} else {
		applog.Audit(c, "wishlist.save", map[string]any{"product_id": pid})
	}
	back := c.Get("Referer")
	if back == "" {
		back = "/wishlist"
	}
	return c.Redirect(back)
}

func (h *WishlistHandler) Unsave(c *fiber.Ctx) error {
	sid := ensureSID(c)
	pid, ok := validate.ID(c.FormValue("product_id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("missing product_id")
	}
	if err := h.API.RemoveFromWishlist(c.UserContext(), sid, pid); err != nil {
		if errors.Is(err, api.ErrUnauthenticated) {
			return c.Redirect("/login")
		}
		applog.Error(c, "wishlist.unsave.fail", err, map[string]any{"product_id": pid})
		setFlash(c, api.Detail(err))
	} else {
		applog.Audit(c, "wishlist.unsave", map[string]any{"product_id": pid})
	}
	return c.Redirect("/wishlist")
}
