package service

import (
	"context"
	"errors"

	"github.com/dukerupert/njord/internal/domain"
	"github.com/dukerupert/njord/internal/guestcart"
	"github.com/dukerupert/njord/internal/telemetry"
	"github.com/rs/zerolog"
)

// ReconcilerService merges the local guest cart into the server cart when
// a user completes authentication.
type ReconcilerService interface {
	// Merge folds every guest line into the server cart and clears the
	// guest store. Merge runs exactly once per login completion; an empty
	// guest store makes it a no-op, so re-invocation is safe.
	Merge(ctx context.Context, userID string) (*MergeResult, error)
}

// MergeResult reports the outcome of one merge run.
type MergeResult struct {
	// Merged is the number of guest lines applied to the server cart.
	Merged int

	// Failed holds the lines that could not be applied. The merge is
	// best-effort; these were logged and skipped, not retried.
	Failed []MergeLineError
}

// MergeLineError is one guest line that failed to merge.
type MergeLineError struct {
	ProductID string
	Quantity  int32
	Err       error
}

// reconcilerService implements ReconcilerService.
type reconcilerService struct {
	guest   guestcart.Store
	cart    domain.CartService
	metrics *telemetry.BusinessMetrics
	logger  zerolog.Logger
}

// NewReconcilerService creates a new ReconcilerService instance.
// Metrics may be nil (tests, event-less deploys).
func NewReconcilerService(
	guest guestcart.Store,
	cart domain.CartService,
	metrics *telemetry.BusinessMetrics,
	logger zerolog.Logger,
) (ReconcilerService, error) {
	if guest == nil {
		return nil, errors.New("guest cart store is required")
	}
	if cart == nil {
		return nil, errors.New("cart service is required")
	}

	return &reconcilerService{
		guest:   guest,
		cart:    cart,
		metrics: metrics,
		logger:  logger,
	}, nil
}

// Merge folds the guest cart into the server cart, quantities adding up
// per product. The server cart snapshot is read once before any write;
// lines are applied sequentially against that snapshot. After every line
// has been attempted the guest store is cleared regardless of per-line
// failures. A failed snapshot read aborts before any line is attempted
// and leaves the guest store intact.
func (s *reconcilerService) Merge(ctx context.Context, userID string) (*MergeResult, error) {
	guestLines := s.guest.Lines()
	if len(guestLines) == 0 {
		return &MergeResult{}, nil
	}

	summary, err := s.cart.GetCart(ctx, userID)
	if err != nil {
		return nil, domain.WrapError(err, domain.ErrorCode(err), "reconciler.merge", "failed to read server cart")
	}

	existing := make(map[string]int32, len(summary.Lines))
	for _, line := range summary.Lines {
		existing[line.ProductID] = line.Quantity
	}

	if s.metrics != nil {
		s.metrics.MergeRuns.Inc()
	}

	result := &MergeResult{}
	for _, line := range guestLines {
		var lineErr error
		if current, ok := existing[line.ProductID]; ok {
			lineErr = s.cart.SetItemQuantity(ctx, userID, line.ProductID, current+line.Quantity)
		} else {
			lineErr = s.cart.AddItem(ctx, userID, line.ProductID, line.Quantity)
		}

		if lineErr != nil {
			s.logger.Warn().Err(lineErr).
				Str("user_id", userID).
				Str("product_id", line.ProductID).
				Int32("quantity", line.Quantity).
				Msg("guest cart line failed to merge")
			result.Failed = append(result.Failed, MergeLineError{
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				Err:       lineErr,
			})
			if s.metrics != nil {
				s.metrics.MergeLinesFailed.Inc()
			}
			continue
		}

		result.Merged++
		if s.metrics != nil {
			s.metrics.MergeLinesMerged.Inc()
		}
	}

	// Every line has been attempted; the guest cart is done either way.
	s.guest.Clear()

	return result, nil
}
