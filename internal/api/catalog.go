package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"shopfront/internal/domain"
)

// ProductQuery is the optional filter set for product listings. A nil Limit
// means the backend default (10); an explicit 0 omits the parameter entirely,
// which disables pagination and returns every published product.
type ProductQuery struct {
	Limit      *int
	Search     string
	CategoryID int
	Page       int
	SortBy     string
	SortDir    string
}

func (q ProductQuery) values() url.Values {
	v := url.Values{}
	limit := 10
	if q.Limit != nil {
		limit = *q.Limit
	}
	if limit > 0 {
		v.Set("limit", strconv.Itoa(limit))
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.CategoryID > 0 {
		v.Set("category_id", strconv.Itoa(q.CategoryID))
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.SortBy != "" {
		v.Set("sort_by", q.SortBy)
	}
	if q.SortDir != "" {
		v.Set("sort_dir", q.SortDir)
	}
	return v
}

func (c *Client) ListProducts(ctx context.Context, sid string, q ProductQuery) ([]domain.Product, error) {
	products := []domain.Product{}
	if err := c.getJSON(ctx, sid, "/products", q.values(), &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) GetProduct(ctx context.Context, sid string, id int) (*domain.Product, error) {
	var p domain.Product
	if err := c.getJSON(ctx, sid, fmt.Sprintf("/products/%d", id), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ProductForm is the scalar part of an admin product submission; the
// thumbnail and gallery travel alongside it as multipart files.
type ProductForm struct {
	Title              string
	Description        string
	Price              string
	DiscountPercentage string
	Stock              string
	Brand              string
	CategoryID         string
	IsPublished        bool
}

func (f ProductForm) fields() map[string]string {
	m := map[string]string{
		"title":       f.Title,
		"description": f.Description,
		"price":       f.Price,
		"stock":       f.Stock,
		"brand":       f.Brand,
		"category_id": f.CategoryID,
	}
	if f.DiscountPercentage != "" {
		m["discount_percentage"] = f.DiscountPercentage
	}
	m["is_published"] = strconv.FormatBool(f.IsPublished)
	return m
}

func (c *Client) CreateProduct(ctx context.Context, sid string, form ProductForm, thumbnail File, images []File) (*domain.Product, error) {
	files := append([]File{thumbnail}, images...)
	var p domain.Product
	if err := c.writeMultipart(ctx, sid, http.MethodPost, "/products/", form.fields(), files, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ProductUpdate is the JSON replacement body for scalar product edits.
// Uploads go through CreateProduct's multipart path; plain field changes
// stay JSON.
type ProductUpdate struct {
	Title              string  `json:"title"`
	Description        string  `json:"description"`
	Price              float64 `json:"price"`
	DiscountPercentage float64 `json:"discount_percentage"`
	Stock              int     `json:"stock"`
	Brand              string  `json:"brand"`
	CategoryID         int     `json:"category_id"`
	IsPublished        bool    `json:"is_published"`
}

func (c *Client) UpdateProduct(ctx context.Context, sid string, id int, in ProductUpdate) (*domain.Product, error) {
	var p domain.Product
	if err := c.writeJSON(ctx, sid, http.MethodPut, fmt.Sprintf("/products/%d", id), nil, in, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) DeleteProduct(ctx context.Context, sid string, id int) error {
	return c.delete(ctx, sid, fmt.Sprintf("/products/%d", id))
}

func (c *Client) ListCategories(ctx context.Context, sid string) ([]domain.Category, error) {
	cats := []domain.Category{}
	if err := c.getJSON(ctx, sid, "/categories", nil, &cats); err != nil {
		return nil, err
	}
	return cats, nil
}

func (c *Client) CreateCategory(ctx context.Context, sid, name, description string, thumbnail *File) (*domain.Category, error) {
	fields := map[string]string{"name": name, "description": description}
	var files []File
	if thumbnail != nil {
		files = append(files, *thumbnail)
	}
	var cat domain.Category
	if err := c.writeMultipart(ctx, sid, http.MethodPost, "/categories/", fields, files, &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

func (c *Client) UpdateCategory(ctx context.Context, sid string, id int, name, description string, thumbnail *File) (*domain.Category, error) {
	fields := map[string]string{"name": name, "description": description}
	var files []File
	if thumbnail != nil {
		files = append(files, *thumbnail)
	}
	var cat domain.Category
	if err := c.writeMultipart(ctx, sid, http.MethodPut, fmt.Sprintf("/categories/%d", id), fields, files, &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

func (c *Client) DeleteCategory(ctx context.Context, sid string, id int) error {
	return c.delete(ctx, sid, fmt.Sprintf("/categories/%d", id))
}
