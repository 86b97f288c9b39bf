package service

import (
	"context"

	"frontdesk/internal/database"
	"frontdesk/internal/domain"
	"frontdesk/internal/metrics"
	"frontdesk/internal/models"

	"github.com/rs/zerolog"
)

type BillService struct {
	store  domain.BillStore
	logger zerolog.Logger
}

func NewBillService(store domain.BillStore, logger *zerolog.Logger) *BillService {
	return &BillService{
		store:  store,
		logger: logger.With().Str("component", "bills").Logger(),
	}
}

func (s *BillService) List(ctx context.Context, search string) ([]*models.BillRow, error) {
	return s.store.ListBills(ctx, search)
}

func (s *BillService) Get(ctx context.Context, id int64) (*models.Bill, error) {
	return s.store.GetBill(ctx, id)
}

// TogglePayment flips the bill between paid and unpaid, so a mistaken
// payment mark can be reverted. Returns the new status.
func (s *BillService) TogglePayment(ctx context.Context, id int64) (models.PaymentStatus, error) {
	bill, err := s.store.GetBill(ctx, id)
	if err != nil {
		return "", err
	}

	next := bill.PaymentStatus.Toggle()
	if err := s.store.UpdateBillPayment(ctx, id, next); err != nil {
		return "", err
	}

	metrics.IncOperation("bills", "toggle_payment")
	s.logger.Info().
		Int64("bill_id", id).
		Str("payment_status", string(next)).
		Msg("bill payment status changed")
	return next, nil
}

// Delete insists on an explicit confirmation; bills have no dependents.
func (s *BillService) Delete(ctx context.Context, id int64, confirmed bool) error {
	if _, err := s.store.GetBill(ctx, id); err != nil {
		return err
	}
	if !confirmed {
		return database.ErrNotConfirmed
	}

	if err := s.store.DeleteBill(ctx, id); err != nil {
		return err
	}

	metrics.IncOperation("bills", "delete")
	s.logger.Info().Int64("bill_id", id).Msg("bill deleted")
	return nil
}
