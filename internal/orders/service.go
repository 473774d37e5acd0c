package orders

import (
	"context"
	stdErrors "errors"
	"net/http"
	"net/url"
	"time"

	"github.com/campuseats/ordering-gateway/internal/upstream"
	"github.com/campuseats/ordering-gateway/pkg/enums"
	"github.com/campuseats/ordering-gateway/pkg/errors"
)

const (
	listFallback       = "Error al obtener los pedidos"
	updateFallback     = "Error al actualizar el estado del pedido"
	cancelFallback     = "Error al cancelar el pedido"
	transportMessage   = "Error al conectar con el servidor."
	cancelTransportMsg = "Error al conectar con el servidor para cancelar el pedido"

	// CancelledMessage confirms a cancellation; the upstream reverts the
	// reserved stock as part of the same call.
	CancelledMessage = "Pedido cancelado y stock revertido correctamente"
)

// OrderItem is one line of a placed order as the upstream reports it.
type OrderItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// Order is an upstream order document. The gateway never stores orders; it
// only relays them for history and POS management views.
type Order struct {
	ID        string            `json:"_id"`
	Products  []OrderItem       `json:"products"`
	Status    enums.OrderStatus `json:"status"`
	Total     float64           `json:"total,omitempty"`
	CreatedAt *time.Time        `json:"createdAt,omitempty"`
}

// Service relays order reads and POS status management to the upstream.
type Service struct {
	client *upstream.Client
}

// NewService builds the orders service.
func NewService(client *upstream.Client) (*Service, error) {
	if client == nil {
		return nil, stdErrors.New("upstream client is required")
	}
	return &Service{client: client}, nil
}

// List returns the orders visible to the caller; the upstream scopes the
// answer to the token's account (customer history vs POS overview).
func (s *Service) List(ctx context.Context, token string) ([]Order, error) {
	var orders []Order
	if err := s.client.DoJSON(ctx, "list_orders", http.MethodGet, "/orders", token, nil, &orders); err != nil {
		return nil, relay(err, listFallback, transportMessage)
	}
	return orders, nil
}

type statusUpdate struct {
	Status enums.OrderStatus `json:"status"`
}

// UpdateStatus moves the order to the given status. Cancellation goes
// through Cancel instead so the upstream can revert reserved stock.
func (s *Service) UpdateStatus(ctx context.Context, token, orderID string, status enums.OrderStatus) (Order, error) {
	if !status.IsValid() {
		return Order{}, errors.New(errors.CodeValidation, "estado de pedido inválido: "+status.String())
	}
	if status == enums.OrderStatusCancelado {
		return s.Cancel(ctx, token, orderID)
	}

	var updated Order
	err := s.client.DoJSON(ctx, "update_order_status", http.MethodPut, "/orders/"+url.PathEscape(orderID), token,
		statusUpdate{Status: status}, &updated)
	if err != nil {
		return Order{}, relay(err, updateFallback, transportMessage)
	}
	return updated, nil
}

// Cancel cancels the order; the upstream reverts its stock reservation.
func (s *Service) Cancel(ctx context.Context, token, orderID string) (Order, error) {
	var cancelled Order
	err := s.client.DoJSON(ctx, "cancel_order", http.MethodPut, "/orders/"+url.PathEscape(orderID)+"/cancel", token, nil, &cancelled)
	if err != nil {
		return Order{}, relay(err, cancelFallback, cancelTransportMsg)
	}
	return cancelled, nil
}

func relay(err error, fallback, transport string) error {
	statusErr, ok := upstream.AsStatusError(err)
	if !ok {
		return errors.Wrap(errors.CodeDependency, err, transport)
	}
	message := statusErr.Message
	if message == "" {
		message = fallback
	}
	if statusErr.StatusCode == http.StatusNotFound {
		return errors.Wrap(errors.CodeNotFound, err, message)
	}
	return errors.Wrap(errors.CodeValidation, err, message)
}
