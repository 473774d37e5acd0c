package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/campuseats/ordering-gateway/api/middleware"
	"github.com/campuseats/ordering-gateway/api/responses"
	"github.com/campuseats/ordering-gateway/api/validators"
	"github.com/campuseats/ordering-gateway/internal/cart"
	"github.com/campuseats/ordering-gateway/pkg/logger"
)

type cartView struct {
	Lines []cart.Line `json:"lines"`
	Total string      `json:"total"`
}

type limitNoticeView struct {
	ProductID  string `json:"productId"`
	StockLimit int    `json:"stockLimit"`
}

type cartMutationView struct {
	Cart         cartView         `json:"cart"`
	LimitReached *limitNoticeView `json:"limitReached,omitempty"`
}

func toCartView(c cart.Cart) cartView {
	lines := c.Lines
	if lines == nil {
		lines = []cart.Line{}
	}
	return cartView{Lines: lines, Total: c.Total().String()}
}

func toMutationView(c cart.Cart, notice *cart.LimitNotice) cartMutationView {
	view := cartMutationView{Cart: toCartView(c)}
	if notice != nil {
		view.LimitReached = &limitNoticeView{ProductID: notice.ProductID, StockLimit: notice.StockLimit}
	}
	return view
}

type addItemRequest struct {
	ProductID string  `json:"productId" validate:"required"`
	Name      string  `json:"name" validate:"required"`
	Price     float64 `json:"price" validate:"gte=0"`
	Image     string  `json:"image,omitempty"`
	Stock     *int    `json:"stock,omitempty"`
}

func (p addItemRequest) toProduct() cart.Product {
	return cart.Product{
		ID:        p.ProductID,
		Name:      p.Name,
		UnitPrice: decimal.NewFromFloat(p.Price),
		ImageRef:  p.Image,
		Stock:     p.Stock,
	}
}

type changeQuantityRequest struct {
	Delta int `json:"delta" validate:"required"`
}

func CartFetch(svc *cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		current, err := svc.Get(ctx, middleware.SessionIDFromContext(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, toCartView(current))
	}
}

func CartAddItem(svc *cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var payload addItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		next, err := svc.AddItem(ctx, middleware.SessionIDFromContext(ctx), payload.toProduct())
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, toMutationView(next, nil))
	}
}

func CartChangeQuantity(svc *cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var payload changeQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		next, notice, err := svc.ChangeQuantity(ctx, middleware.SessionIDFromContext(ctx), chi.URLParam(r, "productId"), payload.Delta)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, toMutationView(next, notice))
	}
}

func CartRemoveItem(svc *cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		next, err := svc.RemoveItem(ctx, middleware.SessionIDFromContext(ctx), chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, toMutationView(next, nil))
	}
}

func CartClear(svc *cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		next, err := svc.Clear(ctx, middleware.SessionIDFromContext(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, toMutationView(next, nil))
	}
}
