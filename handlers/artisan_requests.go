package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/handmade-hub/handmade-hub-backend-go/errs"
	"github.com/handmade-hub/handmade-hub-backend-go/models"
	"github.com/handmade-hub/handmade-hub-backend-go/services"
)

type DecideRequest struct {
	Status string `json:"status" validate:"required"`
}

type decisionResponse struct {
	Message string                 `json:"message"`
	Request *models.ArtisanRequest `json:"request"`
}

type ArtisanRequestHandler struct {
	requests *services.ArtisanRequestService
}

func NewArtisanRequestHandler(requests *services.ArtisanRequestService) *ArtisanRequestHandler {
	return &ArtisanRequestHandler{requests: requests}
}

// Submit answers 201 for a new request and 200 when an existing one was resubmitted.
func (h *ArtisanRequestHandler) Submit(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	var req services.ArtisanRequestInput
	if err := c.Bind(&req); err != nil {
		return errs.Validation("Invalid request format")
	}
	saved, created, err := h.requests.Submit(c.Request().Context(), actor, req)
	if err != nil {
		return err
	}
	if created {
		return c.JSON(http.StatusCreated, saved)
	}
	return c.JSON(http.StatusOK, saved)
}

func (h *ArtisanRequestHandler) Mine(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	req, err := h.requests.Mine(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, req)
}

func (h *ArtisanRequestHandler) List(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	reqs, err := h.requests.List(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reqs)
}

func (h *ArtisanRequestHandler) Decide(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	id, err := objectIDParam(c, "requestId")
	if err != nil {
		return err
	}
	var body DecideRequest
	if err := bindAndValidate(c, &body); err != nil {
		return err
	}
	req, err := h.requests.Decide(c.Request().Context(), actor, id, models.ArtisanRequestStatus(body.Status))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, decisionResponse{Message: "Artisan request " + string(req.Status), Request: req})
}

func (h *ArtisanRequestHandler) Delete(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	id, err := objectIDParam(c, "requestId")
	if err != nil {
		return err
	}
	if err := h.requests.Delete(c.Request().Context(), actor, id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Artisan request deleted"})
}
