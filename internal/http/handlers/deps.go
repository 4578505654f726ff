package handlers

import (
	"shopfront/internal/api"
	"shopfront/internal/cart"
	"shopfront/internal/session"
)

type Deps struct {
	AuthHandler     *AuthHandler
	CatalogHandler  *CatalogHandler
	CartHandler     *CartHandler
	OrderHandler    *OrderHandler
	WishlistHandler *WishlistHandler
	AdminHandler    *AdminHandler
}

func NewDeps(client *api.Client, store *session.Store) *Deps {
	cartSvc := cart.NewService(client)

	return &Deps{
		AuthHandler:     &AuthHandler{API: client, Sessions: store},
		CatalogHandler:  &CatalogHandler{API: client},
		CartHandler:     &CartHandler{API: client, Cart: cartSvc},
		OrderHandler:    &OrderHandler{API: client},
		WishlistHandler: &WishlistHandler{API: client},
		AdminHandler:    &AdminHandler{API: client},
	}
}
