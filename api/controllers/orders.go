package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/campuseats/ordering-gateway/api/middleware"
	"github.com/campuseats/ordering-gateway/api/responses"
	"github.com/campuseats/ordering-gateway/api/validators"
	"github.com/campuseats/ordering-gateway/internal/orders"
	"github.com/campuseats/ordering-gateway/pkg/enums"
	pkgerrors "github.com/campuseats/ordering-gateway/pkg/errors"
	"github.com/campuseats/ordering-gateway/pkg/logger"
)

type updateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type orderUpdateView struct {
	Order   orders.Order `json:"order"`
	Message string       `json:"message,omitempty"`
}

func OrderList(svc *orders.Service, logg *logger.Logger) http.HandlerFunc {
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

func OrderUpdateStatus(svc *orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var payload updateOrderStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		status, err := enums.ParseOrderStatus(payload.Status)
		if err != nil {
			responses.WriteError(ctx, logg, w,
				pkgerrors.Wrap(pkgerrors.CodeValidation, err, "estado de pedido inválido: "+payload.Status))
			return
		}

		order, err := svc.UpdateStatus(ctx, middleware.TokenFromContext(ctx), chi.URLParam(r, "id"), status)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		view := orderUpdateView{Order: order}
		if status == enums.OrderStatusCancelado {
			view.Message = orders.CancelledMessage
		}
		responses.WriteSuccess(w, view)
	}
}

func OrderCancel(svc *orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		order, err := svc.Cancel(ctx, middleware.TokenFromContext(ctx), chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, orderUpdateView{Order: order, Message: orders.CancelledMessage})
	}
}
