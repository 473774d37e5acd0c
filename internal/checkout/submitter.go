package checkout

import (
	"context"
	"errors"
	"net/http"

	"github.com/campuseats/ordering-gateway/internal/upstream"
)

const (
	ordersPath           = "/orders"
	operationSubmitOrder = "submit_order"
)

// OrderLine is one cart line projected into the order payload. Price is the
// add-time snapshot, not re-fetched, so the submitted order matches what the
// validator just approved.
type OrderLine struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// Submitter places the order with the upstream order service.
type Submitter interface {
	Submit(ctx context.Context, token string, lines []OrderLine) error
}

type orderRequest struct {
	Products []OrderLine `json:"products"`
}

// UpstreamSubmitter submits orders over the upstream REST client.
type UpstreamSubmitter struct {
	client *upstream.Client
}

// NewUpstreamSubmitter builds the production submitter.
func NewUpstreamSubmitter(client *upstream.Client) (*UpstreamSubmitter, error) {
	if client == nil {
		return nil, errors.New("upstream client is required")
	}
	return &UpstreamSubmitter{client: client}, nil
}

func (s *UpstreamSubmitter) Submit(ctx context.Context, token string, lines []OrderLine) error {
	return s.client.DoJSON(ctx, operationSubmitOrder, http.MethodPost, ordersPath, token, orderRequest{Products: lines}, nil)
}
