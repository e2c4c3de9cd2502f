package handlers

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/handmade-hub/handmade-hub-backend-go/errs"
	"github.com/handmade-hub/handmade-hub-backend-go/middleware"
	"github.com/handmade-hub/handmade-hub-backend-go/models"
)

func currentActor(c echo.Context) (models.Actor, error) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return models.Actor{}, errs.Unauthorized("User not authenticated")
	}
	return actor, nil
}

func objectIDParam(c echo.Context, name string) (primitive.ObjectID, error) {
	return objectIDFromString(c.Param(name), name)
}

func objectIDFromString(raw, name string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, errs.Validation("Invalid " + name + " format")
	}
	return id, nil
}

type messageResponse struct {
	Message string `json:"message"`
}
