package handlers

import (
	"errors"
	"mime/multipart"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"shopfront/internal/api"
	"shopfront/internal/domain"
	applog "shopfront/internal/log"
	"shopfront/internal/validate"
)

// openUpload turns a form file into an api.File; callers must invoke the
// returned closer after the request is sent.
func openUpload(field string, fh *multipart.FileHeader) (api.File, func(), error) {
	f, err := fh.Open()
	if err != nil {
		return api.File{}, nil, err
	}
	return api.File{Field: field, Name: fh.Filename, Content: f}, func() { _ = f.Close() }, nil
}

// GET /admin/products
func (h *AdminHandler) Products(c *fiber.Ctx) error {
	sid := ensureSID(c)
	// limit 0 disables pagination: the manage screen works on the full catalog
	zero := 0
	products, err := h.API.ListProducts(c.UserContext(), sid, api.ProductQuery{Limit: &zero})
	if err != nil {
		if errors.Is(err, api.ErrUnauthenticated) {
			return c.Redirect("/login")
		}
		applog.Error(c, "admin.products.list.fail", err, nil)
		return render(c, "admin_products", fiber.Map{"Flash": "Could not load products", "Products": []domain.Product{}})
	}
	cats, err := h.API.ListCategories(c.UserContext(), sid)
	if err != nil {
		applog.Error(c, "admin.categories.list.fail", err, nil)
		cats = []domain.Category{}
	}
	return render(c, "admin_products", fiber.Map{"Products": products, "Categories": cats})
}

// POST /admin/products — multipart: scalar fields plus thumbnail and gallery.
func (h *AdminHandler) CreateProduct(c *fiber.Ctx) error {
	sid := ensureSID(c)

	form := api.ProductForm{
		Title:              c.FormValue("title"),
		Description:        c.FormValue("description"),
		Price:              c.FormValue("price"),
		DiscountPercentage: c.FormValue("discount_percentage"),
		Stock:              c.FormValue("stock"),
		Brand:              c.FormValue("brand"),
		CategoryID:         c.FormValue("category_id"),
		IsPublished:        c.FormValue("is_published") != "false",
	}
	if form.Title == "" || form.Price == "" || form.CategoryID == "" {
		setFlash(c, "Title, price and category are required")
		return c.Redirect("/admin/products")
	}

	thumbFH, err := c.FormFile("thumbnail")
	if err != nil {
		setFlash(c, "A thumbnail image is required")
		return c.Redirect("/admin/products")
	}
	thumb, closeThumb, err := openUpload("thumbnail", thumbFH)
	if err != nil {
		applog.Error(c, "admin.products.upload.fail", err, nil)
		setFlash(c, "Could not read the thumbnail upload")
		return c.Redirect("/admin/products")
	}
	defer closeThumb()

	var images []api.File
	if mf, err := c.MultipartForm(); err == nil {
		for _, fh := range mf.File["images"] {
			img, closeImg, err := openUpload("images", fh)
			if err != nil {
				applog.Error(c, "admin.products.upload.fail", err, map[string]any{"file": fh.Filename})
				continue
			}
			defer closeImg()
			images = append(images, img)
		}
	}

	p, err := h.API.CreateProduct(c.UserContext(), sid, form, thumb, images)
	if err != nil {
		if errors.Is(err, api.ErrUnauthenticated) {
			return c.Redirect("/login")
		}
		applog.Error(c, "admin.products.create.fail", err, nil)
		setFlash(c, api.Detail(err))
		return c.Redirect("/admin/products")
	}
	applog.Audit(c, "admin.products.create", map[string]any{"product_id": p.ID})
	setFlash(c, "Product created")
	return c.Redirect("/admin/products")
}

// POST /admin/products/:id — scalar edits travel as plain JSON.
func (h *AdminHandler) UpdateProduct(c *fiber.Ctx) error {
	sid := ensureSID(c)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("missing product id")
	}

	price, err := strconv.ParseFloat(c.FormValue("price"), 64)
	if err != nil || price < 0 {
		setFlash(c, "Enter a valid price")
		return c.Redirect("/admin/products")
	}
	stock, err := strconv.Atoi(c.FormValue("stock"))
	if err != nil || stock < 0 {
		setFlash(c, "Enter a valid stock count")
		return c.Redirect("/admin/products")
	}
	discount, _ := strconv.ParseFloat(c.FormValue("discount_percentage"), 64)
	catID, _ := validate.ID(c.FormValue("category_id"))

	in := api.ProductUpdate{
		Title:              c.FormValue("title"),
		Description:        c.FormValue("description"),
		Price:              price,
		DiscountPercentage: discount,
		Stock:              stock,
		Brand:              c.FormValue("brand"),
		CategoryID:         catID,
		IsPublished:        c.FormValue("is_published") != "false",
	}
	if _, err := h.API.UpdateProduct(c.UserContext(), sid, id, in); err != nil {
		if errors.Is(err, api.ErrUnauthenticated) {
			return c.Redirect("/login")
		}
		applog.Error(c, "admin.products.update.fail", err, map[string]any{"product_id": id})
		setFlash(c, api.Detail(err))
		return c.Redirect("/admin/products")
	}
	applog.Audit(c, "admin.products.update", map[string]any{"product_id": id})
	return c.Redirect("/admin/products")
}

// POST /admin/products/:id/delete
func (h *AdminHandler) DeleteProduct(c *fiber.Ctx) error {
	sid := ensureSID(c)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("missing product id")
	}
	if err := h.API.DeleteProduct(c.UserContext(), sid, id); err != nil {
		if errors.Is(err, api.ErrUnauthenticated) {
			return c.Redirect("/login")
		}
		applog.Error(c, "admin.products.delete.fail", err, map[string]any{"product_id": id})
		setFlash(c, "Could not delete product")
		return c.Redirect("/admin/products")
	}
	applog.Audit(c, "admin.products.delete", map[string]any{"product_id": id})
	return c.Redirect("/admin/products")
}

// GET /admin/categories
func (h *AdminHandler) Categories(c *fiber.Ctx) error {
	sid := ensureSID(c)
	cats, err := h.API.ListCategories(c.UserContext(), sid)
	if err != nil {
		if errors.Is(err, api.ErrUnauthenticated) {
			return c.Redirect("/login")
		}
		applog.Error(c, "admin.categories.list.fail", err, nil)
		return render(c, "admin_categories", fiber.Map{"Flash": "Could not load categories", "Categories": []domain.Category{}})
	}
	return render(c, "admin_categories", fiber.Map{"Categories": cats})
}

// POST /admin/categories — multipart with an optional thumbnail.
func (h *AdminHandler) CreateCategory(c *fiber.Ctx) error {
	sid := ensureSID(c)
	name := c.FormValue("name")
	if name == "" {
		setFlash(c, "Category name is required")
		return c.Redirect("/admin/categories")
	}

	var thumb *api.File
	if fh, err := c.FormFile("thumbnail"); err == nil {
		f, closeF, err := openUpload("thumbnail", fh)
		if err == nil {
			defer closeF()
			thumb = &f
		}
	}

	cat, err := h.API.CreateCategory(c.UserContext(), sid, name, c.FormValue("description"), thumb)
	if err != nil {
		if errors.Is(err, api.ErrUnauthenticated) {
			return c.Redirect("/login")
		}
		applog.Error(c, "admin.categories.create.fail", err, nil)
		setFlash(c, api.Detail(err))
		return c.Redirect("/admin/categories")
	}
	applog.Audit(c, "admin.categories.create", map[string]any{"category_id": cat.ID})
	return c.Redirect("/admin/categories")
}

// POST /admin/categories/:id
func (h *AdminHandler) UpdateCategory(c *fiber.Ctx) error {
	sid := ensureSID(c)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("missing category id")
	}

	var thumb *api.File
	if fh, err := c.FormFile("thumbnail"); err == nil {
		f, closeF, err := openUpload("thumbnail", fh)
		if err == nil {
			defer closeF()
			thumb = &f
		}
	}

	if _, err := h.API.UpdateCategory(c.UserContext(), sid, id, c.FormValue("name"), c.FormValue("description"), thumb); err != nil {
		if errors.Is(err, api.ErrUnauthenticated) {
			return c.Redirect("/login")
		}
		applog.Error(c, "admin.categories.update.fail", err, map[string]any{"category_id": id})
		setFlash(c, api.Detail(err))
		return c.Redirect("/admin/categories")
	}
	applog.Audit(c, "admin.categories.update", map[string]any{"category_id": id})
	return c.Redirect("/admin/categories")
}

// POST /admin/categories/:id/delete
func (h *AdminHandler) DeleteCategory(c *fiber.Ctx) error {
	sid := ensureSID(c)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("missing category id")
	}
	if err := h.API.DeleteCategory(c.UserContext(), sid, id); err != nil {
		if errors.Is(err, api.ErrUnauthenticated) {
			return c.Redirect("/login")
		}
		applog.Error(c, "admin.categories.delete.fail", err, map[string]any{"category_id": id})
		setFlash(c, "Could not delete category")
		return c.Redirect("/admin/categories")
	}
	applog.Audit(c, "admin.categories.delete", map[string]any{"category_id": id})
	return c.Redirect("/admin/categories")
}
