package inventory

import (
	"context"
	"errors"
	"net/http"

	"github.com/campuseats/ordering-gateway/internal/cart"
	"github.com/campuseats/ordering-gateway/internal/upstream"
	"github.com/campuseats/ordering-gateway/pkg/logger"
)

// Upstream fallback texts, shown when the inventory service answers without
// a usable error body or cannot be reached at all.
const (
	fallbackConflictMessage = "Error al validar el stock."
	transportFailureMessage = "Error al conectar con el servidor para validar el stock."
	validateStockPath       = "/inventory/validate-stock"
	operationValidateStock  = "validate_stock"
)

// StockConflict is a failed availability check. Message is user-facing;
// Transport distinguishes "server said no" from "could not reach server",
// which render identically but count differently in telemetry.
type StockConflict struct {
	Message   string
	Transport bool
}

func (e *StockConflict) Error() string {
	return e.Message
}

// AsStockConflict extracts a StockConflict from err.
func AsStockConflict(err error) (*StockConflict, bool) {
	var typed *StockConflict
	if errors.As(err, &typed) {
		return typed, true
	}
	return nil, false
}

// Validator performs the mandatory pre-submission availability check against
// the upstream inventory service.
type Validator struct {
	client *upstream.Client
	logg   *logger.Logger
}

// NewValidator builds the stock validator.
func NewValidator(client *upstream.Client, logg *logger.Logger) (*Validator, error) {
	if client == nil {
		return nil, errors.New("upstream client is required")
	}
	return &Validator{client: client, logg: logg}, nil
}

type validateRequest struct {
	Products []validateLine `json:"products"`
}

type validateLine struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// Validate submits every cart line for an availability verdict. A nil return
// means the order may proceed; any other outcome is a *StockConflict. The
// upstream's own conflict text is relayed verbatim.
func (v *Validator) Validate(ctx context.Context, token string, c cart.Cart) error {
	request := validateRequest{Products: make([]validateLine, 0, len(c.Lines))}
	for _, line := range c.Lines {
		request.Products = append(request.Products, validateLine{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		})
	}

	err := v.client.DoJSON(ctx, operationValidateStock, http.MethodPost, validateStockPath, token, request, nil)
	if err == nil {
		return nil
	}

	if statusErr, ok := upstream.AsStatusError(err); ok {
		message := statusErr.Message
		if message == "" {
			message = fallbackConflictMessage
		}
		return &StockConflict{Message: message}
	}

	if v.logg != nil {
		v.logg.Error(ctx, "stock validation unreachable", err)
	}
	return &StockConflict{Message: transportFailureMessage, Transport: true}
}
