package controllers

import (
	"net/http"

	"github.com/campuseats/ordering-gateway/api/middleware"
	"github.com/campuseats/ordering-gateway/api/responses"
	"github.com/campuseats/ordering-gateway/internal/checkout"
	"github.com/campuseats/ordering-gateway/internal/state"
	"github.com/campuseats/ordering-gateway/pkg/logger"
)

type checkoutView struct {
	State   string `json:"state"`
	Message string `json:"message"`
}

type noticeView struct {
	Message string `json:"message,omitempty"`
}

// Checkout runs the full attempt synchronously: validate stock, submit the
// order, clear the cart. The response carries the terminal state so the
// client can render the outcome without polling.
func Checkout(orch *checkout.Orchestrator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		result, err := orch.Checkout(ctx, middleware.SessionIDFromContext(ctx), middleware.TokenFromContext(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, checkoutView{State: result.State.String(), Message: result.Message})
	}
}

// CheckoutNotice returns the ephemeral success notice of the session's last
// checkout, empty once it has expired.
func CheckoutNotice(store state.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		message, ok, err := store.Get(ctx, middleware.SessionIDFromContext(ctx), state.SlotNotice)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if !ok {
			responses.WriteSuccess(w, noticeView{})
			return
		}
		responses.WriteSuccess(w, noticeView{Message: message})
	}
}
