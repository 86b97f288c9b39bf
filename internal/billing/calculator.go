package billing

import (
	"context"
	"fmt"
	"strconv"

	"frontdesk/internal/domain"
	"frontdesk/internal/events"
	"frontdesk/internal/metrics"
	"frontdesk/internal/models"

	"github.com/rs/zerolog"
)

// Calculator turns a booking and a stay length into a persisted bill.
type Calculator struct {
	store  domain.BillingStore
	bus    domain.EventPublisher
	logger zerolog.Logger
}

func NewCalculator(store domain.BillingStore, bus domain.EventPublisher, logger *zerolog.Logger) *Calculator {
	return &Calculator{
		store:  store,
		bus:    bus,
		logger: logger.With().Str("component", "billing").Logger(),
	}
}

// Calculate computes the stay total for a booking and persists it as an
// unpaid bill: days x room rate, plus each one-time service once, plus each
// daily service for every day. daysText comes straight from the form and
// must parse as a positive integer; otherwise nothing is persisted.
//
// There is deliberately no idempotence check: billing the same booking again
// appends another bill (supplementary charges).
func (c *Calculator) Calculate(ctx context.Context, bookingID int64, daysText string) (*models.Bill, error) {
	days, err := parseDays(daysText)
	if err != nil {
		return nil, err
	}

	rate, err := c.store.RoomRate(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("room rate: %w", err)
	}

	charges, err := c.store.ServiceCharges(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("service charges: %w", err)
	}

	total := float64(days) * rate
	for _, charge := range charges {
		switch charge.Type {
		case models.ServiceDaily:
			total += charge.Price * float64(days)
		default:
			total += charge.Price
		}
	}

	bill := &models.Bill{
		BookingID:     bookingID,
		Total:         total,
		PaymentStatus: models.PaymentUnpaid,
	}
	if _, err := c.store.CreateBill(ctx, bill); err != nil {
		return nil, fmt.Errorf("create bill: %w", err)
	}

	metrics.IncOperation("bills", "calculate")
	c.logger.Info().
		Int64("booking_id", bookingID).
		Int("days", days).
		Float64("total", total).
		Msg("bill created")

	if err := c.bus.PublishJSON(events.EventBillCreated, events.BillEventPayload{
		BillID:    bill.ID,
		BookingID: bookingID,
		Total:     total,
		Days:      days,
	}); err != nil {
		c.logger.Warn().Err(err).Msg("failed to publish bill event")
	}

	return bill, nil
}

func parseDays(daysText string) (int, error) {
	days, err := strconv.Atoi(daysText)
	if err != nil || days <= 0 {
		return 0, &models.ValidationError{
			Field:  "days",
			Reason: "must be a positive whole number",
		}
	}
	return days, nil
}
