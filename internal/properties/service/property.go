package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"rumahstay/internal/availability"
	propertieserrors "rumahstay/internal/properties/errors"
	"rumahstay/internal/properties/repository"
	"rumahstay/internal/properties/validator"
	"rumahstay/pkg/config"
	apperrors "rumahstay/pkg/errors"
	"rumahstay/pkg/model"
	"rumahstay/pkg/sanitizer"
)

type PropertyService interface {
	Create(ctx context.Context, property *model.Property) error
	GetByID(ctx context.Context, id string) (*model.Property, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Property, int64, error)
	Update(ctx context.Context, id string, updates *model.PropertyUpdate) error
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, filter *model.SearchFilter, limit int, offset int64) ([]*model.Property, int64, error)
	ValidateStep(draft *model.PropertyDraft, step int) error
	MonthAvailability(ctx context.Context, id string, month time.Time) ([]availability.GridDay, error)
}

type propertyService struct {
	repo      repository.PropertyRepository
	bookings  repository.BookingReader
	validator *validator.PropertyValidator
	cfg       *config.Config
}

func NewPropertyService(
	repo repository.PropertyRepository,
	bookings repository.BookingReader,
	validator *validator.PropertyValidator,
	cfg *config.Config,
) PropertyService {
	return &propertyService{
		repo:      repo,
		bookings:  bookings,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *propertyService) Create(ctx context.Context, property *model.Property) error {
	s.applyDefaults(property)
	s.sanitize(property)
	if err := s.validate(property); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, property); err != nil {
		s.cfg.Log.Error("Failed to create property", "error", err)
		return apperrors.Internal("Failed to create property", err)
	}

	s.cfg.Log.Info("Property created successfully",
		"id", property.ID,
		"owner_id", property.OwnerID,
		"city", property.Location.City,
	)
	return nil
}

func (s *propertyService) GetByID(ctx context.Context, id string) (*model.Property, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Property ID cannot be empty")
	}

	property, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, propertieserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Property", id)
		}
		if errors.Is(err, propertieserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid property ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve property", err)
	}

	return property, nil
}

func (s *propertyService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Property, int64, error) {
	var count int64
	var properties []*model.Property
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count properties", "error", errCount)
			errCount = apperrors.Internal("Failed to count properties", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		properties, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list properties", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve properties", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return properties, count, nil
}

func (s *propertyService) Update(ctx context.Context, id string, updates *model.PropertyUpdate) error {
	if id == "" {
		return apperrors.InvalidInput("Property ID cannot be empty")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, propertieserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Property", id)
		}
		if errors.Is(err, propertieserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid property ID format")
		}
		return apperrors.Internal("Failed to check property existence", err)
	}

	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Property update validation failed", "id", id, "error", err)
		return apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}

	merged := s.mergePropertyUpdates(existing, updates)
	s.sanitize(merged)
	if err := s.validate(merged); err != nil {
		return err
	}

	if _, err := s.repo.Update(ctx, id, merged); err != nil {
		s.cfg.Log.Error("Failed to update property", "id", id, "error", err)
		return apperrors.Internal("Failed to update property", err)
	}

	s.cfg.Log.Info("Property updated successfully", "id", id)
	return nil
}

func (s *propertyService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Property ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, propertieserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Property", id)
		}
		if errors.Is(err, propertieserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid property ID format")
		}
		return apperrors.Internal("Failed to delete property", err)
	}

	s.cfg.Log.Info("Property deleted successfully", "id", id)
	return nil
}

func (s *propertyService) Search(ctx context.Context, filter *model.SearchFilter, limit int, offset int64) ([]*model.Property, int64, error) {
	normalized := &model.SearchFilter{
		Location: sanitizer.TrimAndNormalize(filter.Location),
	}
	if filter.MinGuests > 0 {
		normalized.MinGuests = sanitizer.NormalizeGuestCount(filter.MinGuests)
	}
	normalized.MinPriceSen, normalized.MaxPriceSen = sanitizer.NormalizePriceRange(filter.MinPriceSen, filter.MaxPriceSen)

	var count int64
	var properties []*model.Property
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.CountSearch(ctx, normalized)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count search results", "error", errCount)
			errCount = apperrors.Internal("Failed to count search results", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		properties, errFind = s.repo.Search(ctx, normalized, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to search properties", "error", errFind)
			errFind = apperrors.Internal("Failed to search properties", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	s.cfg.Log.Debug("Property search completed",
		"location", normalized.Location,
		"count", len(properties),
		"total_count", count,
	)
	return properties, count, nil
}

func (s *propertyService) ValidateStep(draft *model.PropertyDraft, step int) error {
	if err := s.validator.ValidateStep(draft, step); err != nil {
		return apperrors.Validation("Listing step validation failed", map[string]any{
			"step":  step,
			"error": err.Error(),
		})
	}
	return nil
}

func (s *propertyService) MonthAvailability(ctx context.Context, id string, month time.Time) ([]availability.GridDay, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}

	bookings, err := s.bookings.FindOccupiedByProperty(ctx, id)
	if err != nil {
		s.cfg.Log.Error("Failed to load bookings for availability", "property_id", id, "error", err)
		return nil, apperrors.Internal("Failed to load availability", err)
	}

	idx := availability.NewIndex(bookings, time.Now(), s.cfg.MaxAdvanceDays)
	return idx.MonthGrid(month), nil
}

// --- Helpers ---

func (s *propertyService) applyDefaults(p *model.Property) {
	if p.Status == "" {
		p.Status = model.PropertyStatusActive
	}
}

func (s *propertyService) sanitize(p *model.Property) {
	p.Title = sanitizer.NormalizeTitle(p.Title)
	p.Description = sanitizer.TrimAndNormalize(p.Description)
	p.Location.Address = sanitizer.TrimAndNormalize(p.Location.Address)
	p.Location.City = sanitizer.NormalizeCity(p.Location.City)
	p.Location.State = sanitizer.NormalizeCity(p.Location.State)
	p.Location.Postcode = sanitizer.TrimAndNormalize(p.Location.Postcode)
	p.Amenities = sanitizer.NormalizeAmenities(p.Amenities)
	p.Images = sanitizer.NormalizeImages(p.Images)
	if normalized := sanitizer.NormalizePhone(p.WhatsAppNumber); normalized != "" {
		p.WhatsAppNumber = normalized
	}
}

func (s *propertyService) mergePropertyUpdates(existing *model.Property, updates *model.PropertyUpdate) *model.Property {
	merged := *existing

	if updates.Title != "" {
		merged.Title = updates.Title
	}
	if updates.Description != "" {
		merged.Description = updates.Description
	}
	if updates.Location != nil {
		merged.Location = *updates.Location
	}
	if updates.PricePerNightSen != nil {
		merged.PricePerNightSen = *updates.PricePerNightSen
	}
	if updates.MaxGuests != nil {
		merged.MaxGuests = *updates.MaxGuests
	}
	if updates.Bedrooms != nil {
		merged.Bedrooms = *updates.Bedrooms
	}
	if updates.Bathrooms != nil {
		merged.Bathrooms = *updates.Bathrooms
	}
	if updates.Amenities != nil {
		merged.Amenities = updates.Amenities
	}
	if updates.WhatsAppNumber != "" {
		merged.WhatsAppNumber = updates.WhatsAppNumber
	}
	if updates.Images != nil {
		merged.Images = updates.Images
	}
	if updates.Status != "" {
		merged.Status = updates.Status
	}

	return &merged
}

func (s *propertyService) validate(property *model.Property) error {
	if err := s.validator.Validate(property); err != nil {
		s.cfg.Log.Warn("Property validation failed", "error", err)
		return apperrors.Validation("Property validation failed", map[string]any{"error": err.Error()})
	}
	return nil
}
