package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/campuseats/ordering-gateway/api/middleware"
	"github.com/campuseats/ordering-gateway/api/responses"
	"github.com/campuseats/ordering-gateway/api/validators"
	"github.com/campuseats/ordering-gateway/internal/restaurants"
	"github.com/campuseats/ordering-gateway/pkg/logger"
)

type restaurantRequest struct {
	Name        string  `json:"name" validate:"required"`
	Horario     string  `json:"horario,omitempty"`
	Description string  `json:"description,omitempty"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Icon        string  `json:"icon,omitempty"`
	Image       string  `json:"image,omitempty"`
	Menu        string  `json:"menu,omitempty"`
}

func (p restaurantRequest) toInput() restaurants.RestaurantInput {
	return restaurants.RestaurantInput{
		Name:        p.Name,
		Horario:     p.Horario,
		Description: p.Description,
		Latitude:    p.Latitude,
		Longitude:   p.Longitude,
		Icon:        p.Icon,
		Image:       p.Image,
		Menu:        p.Menu,
	}
}

func RestaurantList(svc *restaurants.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		list, err := svc.List(ctx, middleware.TokenFromContext(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

func RestaurantDetail(svc *restaurants.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		restaurant, err := svc.Get(ctx, middleware.TokenFromContext(ctx), chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, restaurant)
	}
}

func RestaurantCreate(svc *restaurants.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var payload restaurantRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		restaurant, err := svc.Create(ctx, middleware.TokenFromContext(ctx), payload.toInput())
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, restaurant)
	}
}

func RestaurantUpdate(svc *restaurants.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var payload restaurantRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		restaurant, err := svc.Update(ctx, middleware.TokenFromContext(ctx), chi.URLParam(r, "id"), payload.toInput())
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, restaurant)
	}
}

func RestaurantDelete(svc *restaurants.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if err := svc.Delete(ctx, middleware.TokenFromContext(ctx), chi.URLParam(r, "id")); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, messageView{Message: "restaurante eliminado"})
	}
}
