package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"shopfront/internal/api"
	"shopfront/internal/cart"
	"shopfront/internal/domain"
	applog "shopfront/internal/log"
	"shopfront/internal/validate"
)

type OrderHandler struct {
	API *api.Client
}

func (h *OrderHandler) CheckoutForm(c *fiber.Ctx) error {
	sid := ensureSID(c)
	current, err := h.API.UserCart(c.UserContext(), sid)
	if err != nil {
		if errors.Is(err, api.ErrUnauthenticated) {
			return c.Redirect("/login")
		}
		applog.Error(c, "checkout.load.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not load your cart"})
	}
	if current == nil || len(current.Items) == 0 {
		setFlash(c, "Your cart is empty")
		return c.Redirect("/cart")
	}
	return render(c, "checkout", fiber.Map{"Cart": current, "Estimate": cart.Preview(current)})
}

// Place submits the order. This is a propagate-path: the visitor needs the
// exact reason when checkout fails (out of stock, empty cart, payment
// rejected), so the backend's detail message renders verbatim.
func (h *OrderHandler) Place(c *fiber.Ctx) error {
	sid := ensureSID(c)
	address := strings.TrimSpace(c.FormValue("address"))
	if address == "" {
		setFlash(c, "Please enter your shipping address.")
		return c.Redirect("/checkout")
	}
	payment := strings.TrimSpace(c.FormValue("payment_method"))
	if payment == "" {
		payment = "cod"
	}

	order, err := h.API.Checkout(c.UserContext(), sid, api.CheckoutRequest{
		Address:       address,
		PaymentMethod: payment,
	})
	if err != nil {
		if errors.Is(err, api.ErrUnauthenticated) {
			return c.Redirect("/login")
		}
		applog.Error(c, "order.place.fail", err, nil)
		setFlash(c, api.Detail(err))
		return c.Redirect("/checkout")
	}

	applog.Audit(c, "order.place", map[string]any{"order_id": order.ID, "total": order.TotalAmount})
	setFlash(c, "Order placed!")
	return c.Redirect("/orders")
}

func (h *OrderHandler) History(c *fiber.Ctx) error {
	sid := ensureSID(c)
	orders, err := h.API.UserOrders(c.UserContext(), sid)
	if err != nil {
		if errors.Is(err, api.ErrUnauthenticated) {
			return c.Redirect("/login")
		}
		applog.Error(c, "orders.history.fail", err, nil)
		return render(c, "orders", fiber.Map{"Flash": "Could not load your orders", "Orders": []domain.Order{}})
	}
	return render(c, "orders", fiber.Map{"Orders": orders})
}

func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	sid := ensureSID(c)
	orderID, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("missing order id")
	}
	if err := h.API.DeleteOrder(c.UserContext(), sid, orderID); err != nil {
		if errors.Is(err, api.ErrUnauthenticated) {
			return c.Redirect("/login")
		}
		applog.Error(c, "order.delete.fail", err, map[string]any{"order_id": orderID})
		setFlash(c, "Could not delete the order")
		return c.Redirect("/orders")
	}
	applog.Audit(c, "order.delete", map[string]any{"order_id": orderID})
	return c.Redirect("/orders")
}
