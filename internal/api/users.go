package api

import (
	"context"
	"fmt"
	"net/http"

	"shopfront/internal/domain"
)

func (c *Client) CurrentUser(ctx context.Context, sid string) (*domain.User, error) {
	var u domain.User
	if err := c.getJSON(ctx, sid, "/users/me", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) CurrentAdmin(ctx context.Context, sid string) (*domain.User, error) {
	var u domain.User
	if err := c.getJSON(ctx, sid, "/users/admin/me", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) ListUsers(ctx context.Context, sid string) ([]domain.User, error) {
	users := []domain.User{}
	if err := c.getJSON(ctx, sid, "/users/", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// UserUpdate carries the editable scalar fields of an account.
type UserUpdate struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	FullName string `json:"full_name,omitempty"`
	Role     string `json:"role,omitempty"`
	IsActive *bool  `json:"is_active,omitempty"`
}

func (c *Client) UpdateUser(ctx context.Context, sid string, userID int, in UserUpdate) (*domain.User, error) {
	var u domain.User
	path := fmt.Sprintf("/users/%d", userID)
	if err := c.writeJSON(ctx, sid, http.MethodPut, path, nil, in, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) DeleteUser(ctx context.Context, sid string, userID int) error {
	return c.delete(ctx, sid, fmt.Sprintf("/users/%d", userID))
}
