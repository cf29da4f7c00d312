package port

import (
	"context"

	"github.com/olyamironova/exchange-aggregator/internal/domain"
)

// OrderManager sequences multi-provider purchases on top of the aggregator's
// Buy primitive. Implementations live outside this module.
type OrderManager interface {
	PlaceOrder(ctx context.Context, items []domain.OrderItem, execute bool) (int64, error)
	GetOrder(ctx context.Context, orderID int64) (*domain.Order, error)
	ExecuteOrder(ctx context.Context, orderID int64) error
	CancelOrder(ctx context.Context, orderID int64) (bool, error)
}
