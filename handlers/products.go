package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/handmade-hub/handmade-hub-backend-go/errs"
	"github.com/handmade-hub/handmade-hub-backend-go/models"
	"github.com/handmade-hub/handmade-hub-backend-go/services"
)

type ProductHandler struct {
	catalog *services.CatalogService
}

func NewProductHandler(catalog *services.CatalogService) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

func (h *ProductHandler) List(c echo.Context) error {
	filter := models.ProductFilter{Category: c.QueryParam("category")}
	if raw := c.QueryParam("artisan"); raw != "" {
		id, err := objectIDFromString(raw, "artisan")
		if err != nil {
			return err
		}
		filter.Artisan = &id
	}
	return h.find(c, filter)
}

func (h *ProductHandler) find(c echo.Context, filter models.ProductFilter) error {
	products, err := h.catalog.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) Get(c echo.Context) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}
	product, err := h.catalog.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) Mine(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	products, err := h.catalog.Mine(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) Analytics(c echo.Context) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}
	res, err := h.catalog.Analytics(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

func (h *ProductHandler) Create(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	var req services.ProductInput
	if err := c.Bind(&req); err != nil {
		return errs.Validation("Invalid request format")
	}
	product, err := h.catalog.Create(c.Request().Context(), actor, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) Update(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	id, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}
	var req models.ProductUpdate
	if err := c.Bind(&req); err != nil {
		return errs.Validation("Invalid request format")
	}
	product, err := h.catalog.Update(c.Request().Context(), actor, id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) Delete(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	id, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.catalog.Delete(c.Request().Context(), actor, id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Product deleted"})
}
