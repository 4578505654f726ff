package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"

	"shopfront/internal/api"
	"shopfront/internal/domain"
	applog "shopfront/internal/log"
	"shopfront/internal/validate"
)

type CatalogHandler struct {
	API *api.Client
}

// Home is the public landing page: the category strip and a short featured
// product row. Read failures degrade to empty sections.
func (h *CatalogHandler) Home(c *fiber.Ctx) error {
	sid := ensureSID(c)
	cats, err := h.API.ListCategories(c.UserContext(), sid)
	if err != nil {
		applog.Error(c, "home.categories.fail", err, nil)
		cats = []domain.Category{}
	}
	limit := 8
	featured, err := h.API.ListProducts(c.UserContext(), sid, api.ProductQuery{Limit: &limit})
	if err != nil {
		applog.Error(c, "home.products.fail", err, nil)
		featured = []domain.Product{}
	}
	return render(c, "home", fiber.Map{"Categories": cats, "Featured": featured})
}

// Dashboard issues its independent fetches concurrently and renders once all
// have settled, instead of three sequential round trips.
func (h *CatalogHandler) Dashboard(c *fiber.Ctx) error {
	sid := ensureSID(c)

	var (
		cats     []domain.Category
		products []domain.Product
		saved    []domain.Product
	)
	g, ctx := errgroup.WithContext(c.UserContext())
	g.Go(func() error {
		var err error
		cats, err = h.API.ListCategories(ctx, sid)
		return err
	})
	g.Go(func() error {
		limit := 12
		var err error
		products, err = h.API.ListProducts(ctx, sid, api.ProductQuery{Limit: &limit, SortBy: "created_at", SortDir: "desc"})
		return err
	})
	g.Go(func() error {
		var err error
		saved, err = h.API.Wishlist(ctx, sid)
		return err
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, api.ErrUnauthenticated) {
			return c.Redirect("/login")
		}
		applog.Error(c, "dashboard.load.fail", err, nil)
		return render(c, "dashboard", fiber.Map{
			"Flash":      "Some sections could not be loaded",
			"Categories": cats, "Products": products, "Wishlist": saved,
		})
	}

	wished := map[int]bool{}
	for _, p := range saved {
		wished[p.ID] = true
	}
	return render(c, "dashboard", fiber.Map{
		"Categories": cats, "Products": products, "Wishlist": saved, "Wished": wished,
	})
}

// Products is the browse/search view: optional keyword, category filter,
// sorting and pagination all map straight onto backend query parameters.
func (h *CatalogHandler) Products(c *fiber.Ctx) error {
	sid := ensureSID(c)
	q := api.ProductQuery{}

	if raw := strings.TrimSpace(c.Query("q")); raw != "" {
		s, ok := validate.Q(raw)
		if !ok {
			applog.Security(c, "validation.fail", map[string]any{"field": "q", "value": raw})
			return c.Status(fiber.StatusBadRequest).Render("products", fiber.Map{
				"Products": []domain.Product{}, "Err": "Enter a valid keyword (letters/numbers only)",
			})
		}
		q.Search = s
	}
	if id, ok := validate.ID(c.Query("category")); ok {
		q.CategoryID = id
	}
	if page, ok := validate.ID(c.Query("page")); ok {
		q.Page = page
	}
	switch c.Query("sort") {
	case "price_asc":
		q.SortBy, q.SortDir = "price", "asc"
	case "price_desc":
		q.SortBy, q.SortDir = "price", "desc"
	case "newest":
		q.SortBy, q.SortDir = "created_at", "desc"
	}

	products, err := h.API.ListProducts(c.UserContext(), sid, q)
	if err != nil {
		if errors.Is(err, api.ErrUnauthenticated) {
			return c.Redirect("/login")
		}
		applog.Error(c, "products.list.fail", err, nil)
		products = []domain.Product{}
	}
	page := q.Page
	if page < 1 {
		page = 1
	}
	return render(c, "products", fiber.Map{
		"Products": products, "Q": q.Search, "CategoryID": q.CategoryID,
		"Page": page, "NextPage": page + 1, "PrevPage": page - 1,
		"Count": len(products),
	})
}

// Detail renders a product with its reviews; the two fetches run jointly.
func (h *CatalogHandler) Detail(c *fiber.Ctx) error {
	sid := ensureSID(c)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "product"})
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
	}

	var (
		p       *domain.Product
		reviews []domain.Review
	)
	g, ctx := errgroup.WithContext(c.UserContext())
	g.Go(func() error {
		var err error
		p, err = h.API.GetProduct(ctx, sid, id)
		return err
	})
	g.Go(func() error {
		var err error
		reviews, err = h.API.ProductReviews(ctx, sid, id)
		if err != nil {
			// A product without reviews still renders.
			applog.Error(c, "product.reviews.fail", err, map[string]any{"product_id": id})
			reviews = []domain.Review{}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, api.ErrUnauthenticated) {
			return c.Redirect("/login")
		}
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
	}
	return render(c, "product", fiber.Map{"P": p, "Reviews": reviews})
}

// PostReview submits a rating. A 409 is the duplicate-review conflict and
// gets its own message; everything else surfaces the backend's detail.
func (h *CatalogHandler) PostReview(c *fiber.Ctx) error {
	sid := ensureSID(c)
	productID, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("missing product id")
	}
	rating, ok := validate.Rating(c.FormValue("rating"))
	if !ok {
		setFlash(c, "Rating must be between 1 and 5")
		return c.Redirect(fmt.Sprintf("/product/%d", productID))
	}

	_, err := h.API.CreateReview(c.UserContext(), sid, api.ReviewCreate{
		ProductID: productID,
		Rating:    rating,
		Comment:   strings.TrimSpace(c.FormValue("comment")),
	})
	switch {
	case err == nil:
		applog.Audit(c, "review.create", map[string]any{"product_id": productID, "rating": rating})
		setFlash(c, "Thanks for your review!")
	case errors.Is(err, api.ErrUnauthenticated):
		return c.Redirect("/login")
	case api.IsConflict(err):
		applog.Info(c, "review.duplicate", map[string]any{"product_id": productID})
		setFlash(c, "You have already reviewed this product.")
	default:
		applog.Error(c, "review.create.fail", err, map[string]any{"product_id": productID})
		setFlash(c, api.Detail(err))
	}
	return c.Redirect(fmt.Sprintf("/product/%d", productID))
}

func (h *CatalogHandler) Categories(c *fiber.Ctx) error {
	sid := ensureSID(c)
	cats, err := h.API.ListCategories(c.UserContext(), sid)
	if err != nil {
		applog.Error(c, "categories.list.fail", err, nil)
		cats = []domain.Category{}
	}
	return render(c, "categories", fiber.Map{"Categories": cats})
}

func (h *CatalogHandler) CategoryProducts(c *fiber.Ctx) error {
	sid := ensureSID(c)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Category not found"})
	}
	// limit 0 disables pagination: a category page shows everything in it
	zero := 0
	products, err := h.API.ListProducts(c.UserContext(), sid, api.ProductQuery{Limit: &zero, CategoryID: id})
	if err != nil {
		if errors.Is(err, api.ErrUnauthenticated) {
			return c.Redirect("/login")
		}
		applog.Error(c, "category.products.fail", err, map[string]any{"category_id": id})
		products = []domain.Product{}
	}
	return render(c, "category", fiber.Map{"CategoryID": id, "Products": products})
}
