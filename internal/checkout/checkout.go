package checkout

import (
	"context"
	stdErrors "errors"
	"sync"

	"github.com/campuseats/ordering-gateway/internal/cart"
	"github.com/campuseats/ordering-gateway/internal/inventory"
	"github.com/campuseats/ordering-gateway/internal/state"
	"github.com/campuseats/ordering-gateway/internal/upstream"
	"github.com/campuseats/ordering-gateway/pkg/config"
	"github.com/campuseats/ordering-gateway/pkg/enums"
	"github.com/campuseats/ordering-gateway/pkg/errors"
	"github.com/campuseats/ordering-gateway/pkg/logger"
	"github.com/campuseats/ordering-gateway/pkg/metrics"
)

// User-facing texts for the gateway-origin outcomes; everything else relays
// the upstream's own message.
const (
	emptyCartMessage       = "El carrito está vacío."
	successMessage         = "¡Pedido realizado con éxito!"
	fallbackSubmitMessage  = "Error al realizar el pedido"
	transportSubmitMessage = "Error al conectar con el servidor para realizar el pedido."
)

// StockValidator is the mandatory pre-submission availability check.
type StockValidator interface {
	Validate(ctx context.Context, token string, c cart.Cart) error
}

// Invalidator is notified after a successful order so cached catalog answers
// do not keep showing pre-order stock.
type Invalidator interface {
	Invalidate()
}

// Result is the terminal outcome of one checkout attempt.
type Result struct {
	State   enums.CheckoutState
	Message string
}

// Orchestrator sequences validation, order submission and cart clearing for
// one session at a time. It is the only component with an in-flight guard:
// a second attempt while one is running is rejected, never queued.
type Orchestrator struct {
	carts     *cart.Store
	validator StockValidator
	submitter Submitter
	notices   state.Store
	cache     Invalidator
	logg      *logger.Logger
	metrics   *metrics.GatewayMetrics
	cfg       config.CheckoutConfig

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewOrchestrator wires the checkout pipeline.
func NewOrchestrator(
	carts *cart.Store,
	validator StockValidator,
	submitter Submitter,
	notices state.Store,
	cache Invalidator,
	logg *logger.Logger,
	gm *metrics.GatewayMetrics,
	cfg config.CheckoutConfig,
) (*Orchestrator, error) {
	if carts == nil || validator == nil || submitter == nil || notices == nil || logg == nil {
		return nil, stdErrors.New("carts, validator, submitter, notices and logger are required")
	}
	return &Orchestrator{
		carts:     carts,
		validator: validator,
		submitter: submitter,
		notices:   notices,
		cache:     cache,
		logg:      logg,
		metrics:   gm,
		cfg:       cfg,
		inFlight:  make(map[string]struct{}),
	}, nil
}

// Checkout runs one attempt for the session. Failed attempts leave the cart
// untouched; success clears it and leaves a short-lived notice in the session
// state. The returned error carries the user-facing outcome for everything
// but success.
func (o *Orchestrator) Checkout(ctx context.Context, sessionID, token string) (Result, error) {
	if !o.acquire(sessionID) {
		return Result{State: enums.CheckoutStateIdle},
			errors.New(errors.CodeStateConflict, "checkout already in progress")
	}
	defer o.release(sessionID)

	if o.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.cfg.Timeout)
		defer cancel()
	}

	current, err := o.carts.Load(ctx, sessionID)
	if err != nil {
		return Result{State: enums.CheckoutStateIdle},
			errors.Wrap(errors.CodeInternal, err, "loading cart")
	}
	if current.Empty() {
		o.metrics.IncCheckout(enums.CheckoutStateValidationFailed.String())
		return Result{State: enums.CheckoutStateValidationFailed, Message: emptyCartMessage},
			errors.New(errors.CodeValidation, emptyCartMessage)
	}

	if err := o.validator.Validate(ctx, token, current); err != nil {
		return o.validationFailed(ctx, err)
	}

	if err := o.submitter.Submit(ctx, token, projectLines(current)); err != nil {
		return o.submitFailed(ctx, err)
	}

	if err := o.carts.Clear(ctx, sessionID); err != nil {
		// The order is already placed; losing the clear only risks a stale
		// cart, so report success and let the next mutation rewrite the slot.
		o.logg.Error(ctx, "clearing cart after successful order", err)
	}
	o.publishNotice(ctx, sessionID)
	if o.cache != nil {
		o.cache.Invalidate()
	}
	o.metrics.IncCheckout(enums.CheckoutStateSucceeded.String())
	o.logg.Info(ctx, "order placed")
	return Result{State: enums.CheckoutStateSucceeded, Message: successMessage}, nil
}

func (o *Orchestrator) validationFailed(ctx context.Context, err error) (Result, error) {
	o.metrics.IncCheckout(enums.CheckoutStateValidationFailed.String())
	result := Result{State: enums.CheckoutStateValidationFailed}

	if conflict, ok := inventory.AsStockConflict(err); ok {
		result.Message = conflict.Message
		if conflict.Transport {
			return result, errors.Wrap(errors.CodeDependency, err, conflict.Message)
		}
		return result, errors.Wrap(errors.CodeStockConflict, err, conflict.Message)
	}
	return result, errors.Wrap(errors.CodeInternal, err, "validating stock")
}

func (o *Orchestrator) submitFailed(ctx context.Context, err error) (Result, error) {
	o.metrics.IncCheckout(enums.CheckoutStateSubmitFailed.String())
	result := Result{State: enums.CheckoutStateSubmitFailed}

	if statusErr, ok := upstream.AsStatusError(err); ok {
		result.Message = statusErr.Message
		if result.Message == "" {
			result.Message = fallbackSubmitMessage
		}
		return result, errors.Wrap(errors.CodeValidation, err, result.Message)
	}

	o.logg.Error(ctx, "order submission unreachable", err)
	result.Message = transportSubmitMessage
	return result, errors.Wrap(errors.CodeDependency, err, transportSubmitMessage)
}

func (o *Orchestrator) publishNotice(ctx context.Context, sessionID string) {
	ttl := o.cfg.SuccessNoticeTTL
	if ttl <= 0 {
		return
	}
	if err := o.notices.SetEphemeral(ctx, sessionID, state.SlotNotice, successMessage, ttl); err != nil {
		o.logg.Warn(ctx, "failed to publish checkout notice")
	}
}

func (o *Orchestrator) acquire(sessionID string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if _, busy := o.inFlight[sessionID]; busy {
		return false
	}
	o.inFlight[sessionID] = struct{}{}
	return true
}

func (o *Orchestrator) release(sessionID string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.inFlight, sessionID)
}

func projectLines(c cart.Cart) []OrderLine {
	lines := make([]OrderLine, 0, len(c.Lines))
	for _, line := range c.Lines {
		lines = append(lines, OrderLine{
			ProductID: line.ProductID,
			Name:      line.Name,
			Quantity:  line.Quantity,
			Price:     line.UnitPrice.InexactFloat64(),
		})
	}
	return lines
}
