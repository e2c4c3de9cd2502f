package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/handmade-hub/handmade-hub-backend-go/errs"
	"github.com/handmade-hub/handmade-hub-backend-go/models"
	"github.com/handmade-hub/handmade-hub-backend-go/services"
)

type CartRequest struct {
	Items []CartItemRequest `json:"items"`
}

type CartItemRequest struct {
	Product  string `json:"product"`
	Quantity int    `json:"quantity"`
}

type cartResponse struct {
	Items []models.CartLine `json:"items"`
}

type CartHandler struct {
	carts *services.CartService
}

func NewCartHandler(carts *services.CartService) *CartHandler {
	return &CartHandler{carts: carts}
}

func (h *CartHandler) Get(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	lines, err := h.carts.Get(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cartResponse{Items: lines})
}

// Replace overwrites the cart. Entries with a malformed product id are skipped like
// entries without one.
func (h *CartHandler) Replace(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	var req CartRequest
	if err := c.Bind(&req); err != nil {
		return errs.Validation("Invalid request format")
	}
	items := make([]models.CartItem, 0, len(req.Items))
	for _, item := range req.Items {
		productID, err := primitive.ObjectIDFromHex(item.Product)
		if err != nil {
			continue
		}
		items = append(items, models.CartItem{Product: productID, Quantity: item.Quantity})
	}
	if _, err := h.carts.Replace(c.Request().Context(), actor, items); err != nil {
		return err
	}
	lines, err := h.carts.Get(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cartResponse{Items: lines})
}
