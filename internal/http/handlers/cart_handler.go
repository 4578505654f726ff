package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"shopfront/internal/api"
	"shopfront/internal/cart"
	"shopfront/internal/http/middleware"
	applog "shopfront/internal/log"
	"shopfront/internal/validate"
)

type CartHandler struct {
	API  *api.Client
	Cart *cart.Service
}

// View renders the server's cart plus the advisory tax/total preview. The
// preview is display only; every authoritative number on the page came back
// from the backend.
func (h *CartHandler) View(c *fiber.Ctx) error {
	sid := ensureSID(c)
	current, err := h.API.UserCart(c.UserContext(), sid)
	if err != nil {
		if errors.Is(err, api.ErrUnauthenticated) {
			return c.Redirect("/login")
		}
		applog.Error(c, "cart.load.fail", err, nil)
		return render(c, "cart", fiber.Map{"Flash": "Could not load your cart", "Estimate": cart.Preview(nil)})
	}
	return render(c, "cart", fiber.Map{"Cart": current, "Estimate": cart.Preview(current)})
}

func (h *CartHandler) Add(c *fiber.Ctx) error {
	sid := ensureSID(c)
	productID, ok := validate.ID(c.FormValue("product_id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("missing product_id")
	}
	_, err := h.Cart.Add(c.UserContext(), sid, productID)
	if err != nil {
		middleware.RecordCartOperation("add", false)
		if errors.Is(err, api.ErrUnauthenticated) {
			return c.Redirect("/login")
		}
		applog.Error(c, "cart.add.fail", err, map[string]any{"product_id": productID})
		setFlash(c, "Could not add the item to your cart")
		return c.Redirect("/cart")
	}
	middleware.RecordCartOperation("add", true)
	applog.Audit(c, "cart.add", map[string]any{"product_id": productID})
	return c.Redirect("/cart")
}

// ChangeQty handles the +/- buttons. Quantity floors at 1; removing a line
// is a separate operation.
func (h *CartHandler) ChangeQty(c *fiber.Ctx) error {
	sid := ensureSID(c)
	productID, ok := validate.ID(c.FormValue("product_id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("missing product_id")
	}
	delta := 1
	if c.FormValue("dir") == "down" {
		delta = -1
	}
	_, err := h.Cart.ChangeQty(c.UserContext(), sid, productID, delta)
	if err != nil && !errors.Is(err, cart.ErrNoCart) {
		middleware.RecordCartOperation("qty", false)
		if errors.Is(err, api.ErrUnauthenticated) {
			return c.Redirect("/login")
		}
		applog.Error(c, "cart.qty.fail", err, map[string]any{"product_id": productID})
		setFlash(c, "Could not update the quantity")
		return c.Redirect("/cart")
	}
	middleware.RecordCartOperation("qty", true)
	return c.Redirect("/cart")
}

func (h *CartHandler) Remove(c *fiber.Ctx) error {
	sid := ensureSID(c)
	productID, ok := validate.ID(c.FormValue("product_id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("missing product_id")
	}
	_, err := h.Cart.Remove(c.UserContext(), sid, productID)
	if err != nil && !errors.Is(err, cart.ErrNoCart) {
		middleware.RecordCartOperation("remove", false)
		if errors.Is(err, api.ErrUnauthenticated) {
			return c.Redirect("/login")
		}
		applog.Error(c, "cart.remove.fail", err, map[string]any{"product_id": productID})
		setFlash(c, "Could not remove the item")
		return c.Redirect("/cart")
	}
	middleware.RecordCartOperation("remove", true)
	applog.Audit(c, "cart.remove", map[string]any{"product_id": productID})
	return c.Redirect("/cart")
}
