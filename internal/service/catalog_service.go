package service

import (
	"context"

	"frontdesk/internal/database"
	"frontdesk/internal/domain"
	"frontdesk/internal/events"
	"frontdesk/internal/metrics"
	"frontdesk/internal/models"

	"github.com/rs/zerolog"
)

// ServiceForm carries raw field values from the service catalog form.
type ServiceForm struct {
	Name        string
	Price       string
	Description string
	Type        string
	Available   bool
}

// CatalogService manages the property's chargeable service catalog.
type CatalogService struct {
	store  domain.ServiceStore
	bus    domain.EventPublisher
	logger zerolog.Logger
}

func NewCatalogService(store domain.ServiceStore, bus domain.EventPublisher, logger *zerolog.Logger) *CatalogService {
	return &CatalogService{
		store:  store,
		bus:    bus,
		logger: logger.With().Str("component", "services").Logger(),
	}
}

func (s *CatalogService) List(ctx context.Context, search string) ([]*models.Service, error) {
	return s.store.ListServices(ctx, search)
}

func (s *CatalogService) Get(ctx context.Context, id int64) (*models.Service, error) {
	return s.store.GetService(ctx, id)
}

func (s *CatalogService) Create(ctx context.Context, form ServiceForm) (*models.Service, error) {
	svc, err := serviceFromForm(form)
	if err != nil {
		return nil, err
	}

	if _, err := s.store.CreateService(ctx, svc); err != nil {
		return nil, err
	}

	metrics.IncOperation("services", "create")
	s.logger.Info().Int64("service_id", svc.ID).Msg("service created")
	return svc, nil
}

// Update writes the service row. Withdrawing availability also strips the
// service from every booking; the store does both in one transaction.
func (s *CatalogService) Update(ctx context.Context, id int64, form ServiceForm) (*models.Service, error) {
	svc, err := serviceFromForm(form)
	if err != nil {
		return nil, err
	}
	svc.ID = id

	previous, err := s.store.GetService(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.store.UpdateService(ctx, svc); err != nil {
		return nil, err
	}

	if previous.Available && !svc.Available {
		if err := s.bus.PublishJSON(events.EventServiceRevoked, svc); err != nil {
			s.logger.Warn().Err(err).Msg("failed to publish service event")
		}
	}

	metrics.IncOperation("services", "update")
	return svc, nil
}

// Delete refuses while bookings are linked to the service, then insists on
// an explicit confirmation before removing the row.
func (s *CatalogService) Delete(ctx context.Context, id int64, confirmed bool) error {
	linked, err := s.store.ServiceLinked(ctx, id)
	if err != nil {
		return err
	}
	if linked {
		return database.ErrServiceInUse
	}
	if !confirmed {
		return database.ErrNotConfirmed
	}

	if err := s.store.DeleteService(ctx, id); err != nil {
		return err
	}

	metrics.IncOperation("services", "delete")
	s.logger.Info().Int64("service_id", id).Msg("service deleted")
	return nil
}

func serviceFromForm(form ServiceForm) (*models.Service, error) {
	if err := requireField("service_name", form.Name); err != nil {
		return nil, err
	}
	price, err := parsePrice("price", form.Price)
	if err != nil {
		return nil, err
	}
	serviceType, ok := models.ParseServiceType(form.Type)
	if !ok {
		return nil, &models.ValidationError{Field: "service_type", Reason: "must be one_time or daily"}
	}

	return &models.Service{
		Name:        form.Name,
		Price:       price,
		Description: form.Description,
		Type:        serviceType,
		Available:   form.Available,
	}, nil
}
