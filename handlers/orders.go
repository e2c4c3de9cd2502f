package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/handmade-hub/handmade-hub-backend-go/errs"
	"github.com/handmade-hub/handmade-hub-backend-go/models"
	"github.com/handmade-hub/handmade-hub-backend-go/services"
)

type CreateOrderRequest struct {
	Items      []OrderItemRequest `json:"items"`
	TotalPrice float64            `json:"totalPrice"`
}

type OrderItemRequest struct {
	Product  string `json:"product"`
	Quantity int    `json:"quantity"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type OrderHandler struct {
	orders *services.OrderService
}

func NewOrderHandler(orders *services.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

func (h *OrderHandler) Create(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	var req CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return errs.Validation("Invalid request format")
	}

	items := make([]models.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		productID, err := primitive.ObjectIDFromHex(item.Product)
		if err != nil {
			return errs.Validation("Invalid product ID format")
		}
		items = append(items, models.OrderItem{Product: productID, Quantity: item.Quantity})
	}

	order, err := h.orders.Create(c.Request().Context(), actor, items, req.TotalPrice)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) ListMine(c echo.Context) error {
	return h.list(c, h.orders.ListMine)
}

func (h *OrderHandler) ListAll(c echo.Context) error {
	return h.list(c, h.orders.ListAll)
}

func (h *OrderHandler) ListForArtisan(c echo.Context) error {
	return h.list(c, h.orders.ListForArtisan)
}

func (h *OrderHandler) list(c echo.Context, fetch func(ctx context.Context, actor models.Actor) ([]models.OrderView, error)) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	orders, err := fetch(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) ListByCustomer(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	customerID, err := objectIDParam(c, "userId")
	if err != nil {
		return err
	}
	orders, err := h.orders.ListByCustomer(c.Request().Context(), actor, customerID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) Analytics(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	res, err := h.orders.Analytics(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

func (h *OrderHandler) Get(c echo.Context) error {
	return h.one(c, h.orders.Get)
}

func (h *OrderHandler) GetForArtisan(c echo.Context) error {
	return h.one(c, h.orders.GetForArtisan)
}

func (h *OrderHandler) one(c echo.Context, fetch func(ctx context.Context, actor models.Actor, id primitive.ObjectID) (*models.OrderView, error)) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	id, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}
	order, err := fetch(c.Request().Context(), actor, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	id, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}
	var req UpdateStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	order, err := h.orders.UpdateStatus(c.Request().Context(), actor, id, models.OrderStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) UpdateTracking(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	id, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}
	var req services.TrackingUpdate
	if err := c.Bind(&req); err != nil {
		return errs.Validation("Invalid request format")
	}
	order, err := h.orders.UpdateTracking(c.Request().Context(), actor, id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) Delete(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	id, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.orders.Delete(c.Request().Context(), actor, id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Order deleted successfully"})
}
