package service

import (
	"context"
	"fmt"
	"time"

	"rumahstay/internal/availability"
	"rumahstay/internal/bookings/repository"
	"rumahstay/internal/bookings/session"
	"rumahstay/internal/bookings/validator"
	"rumahstay/internal/pricing"
	"rumahstay/internal/selection"
	"rumahstay/pkg/calendar"
	"rumahstay/pkg/config"
	apperrors "rumahstay/pkg/errors"
	"rumahstay/pkg/kafka"
	"rumahstay/pkg/model"

	"go.mongodb.org/mongo-driver/mongo"
)

const notificationSource = "bookings-service"

// PropertyLoader fetches property snapshots from the catalog service.
type PropertyLoader interface {
	GetByID(ctx context.Context, id string) (*model.Property, error)
}

// EventPublisher pushes notification events to the broker.
type EventPublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

// SessionView is the wire representation of a selection session.
type SessionView struct {
	ID             string            `json:"id"`
	PropertyID     string            `json:"property_id"`
	PropertyTitle  string            `json:"property_title"`
	NightlyRateSen int64             `json:"nightly_rate_sen"`
	MaxGuests      int               `json:"max_guests"`
	State          string            `json:"state"`
	CheckIn        string            `json:"check_in,omitempty"`
	CheckOut       string            `json:"check_out,omitempty"`
	Quote          pricing.Breakdown `json:"quote"`
	Rejected       string            `json:"rejected,omitempty"`
	ExpiresAt      time.Time         `json:"expires_at"`
}

const (
	rejectedDateUnavailable       = "date_unavailable"
	rejectedRangeSpansUnavailable = "range_spans_unavailable"
)

type SessionService interface {
	Create(ctx context.Context, propertyID string) (*SessionView, error)
	Get(ctx context.Context, id string) (*SessionView, error)
	SelectDate(ctx context.Context, id string, day string) (*SessionView, error)
	Clear(ctx context.Context, id string) (*SessionView, error)
	Submit(ctx context.Context, id string, guestID string, guestCount int) (*model.Booking, error)
}

type sessionService struct {
	store      *session.Store
	repo       repository.BookingRepository
	properties PropertyLoader
	validator  *validator.BookingValidator
	calculator *pricing.Calculator
	publisher  EventPublisher
	cfg        *config.Config
}

func NewSessionService(
	store *session.Store,
	repo repository.BookingRepository,
	properties PropertyLoader,
	bookingValidator *validator.BookingValidator,
	calculator *pricing.Calculator,
	publisher EventPublisher,
	cfg *config.Config,
) SessionService {
	return &sessionService{
		store:      store,
		repo:       repo,
		properties: properties,
		validator:  bookingValidator,
		calculator: calculator,
		publisher:  publisher,
		cfg:        cfg,
	}
}

func (s *sessionService) Create(ctx context.Context, propertyID string) (*SessionView, error) {
	if propertyID == "" {
		return nil, apperrors.InvalidInput("Property ID cannot be empty")
	}

	property, err := s.properties.GetByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if property.Status != model.PropertyStatusActive {
		return nil, apperrors.InvalidInput("Property is not open for booking")
	}

	index, err := s.buildIndex(ctx, property.ID)
	if err != nil {
		return nil, err
	}

	sess := session.New(property, index, s.store.TTL())
	s.store.Put(sess)

	s.cfg.Log.Info("Selection session created",
		"session_id", sess.ID,
		"property_id", property.ID,
	)
	return s.view(sess, ""), nil
}

func (s *sessionService) Get(ctx context.Context, id string) (*SessionView, error) {
	sess, err := s.load(id)
	if err != nil {
		return nil, err
	}
	return s.view(sess, ""), nil
}

func (s *sessionService) SelectDate(ctx context.Context, id string, day string) (*SessionView, error) {
	sess, err := s.load(id)
	if err != nil {
		return nil, err
	}

	date, err := calendar.ParseKey(day)
	if err != nil {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid date: %s, must be YYYY-MM-DD", day))
	}

	var selectErr error
	sess.WithLock(func(sel *selection.Selector) {
		selectErr = sel.Select(date)
	})

	// Taps on blocked days leave the selection untouched; the response
	// reports the rejection instead of failing the request.
	rejected := ""
	switch selectErr {
	case nil:
	case selection.ErrDateUnavailable:
		rejected = rejectedDateUnavailable
	case selection.ErrRangeSpansUnavailable:
		rejected = rejectedRangeSpansUnavailable
	default:
		return nil, apperrors.Internal("Failed to apply date selection", selectErr)
	}

	return s.view(sess, rejected), nil
}

func (s *sessionService) Clear(ctx context.Context, id string) (*SessionView, error) {
	sess, err := s.load(id)
	if err != nil {
		return nil, err
	}

	sess.WithLock(func(sel *selection.Selector) {
		sel.Clear()
	})

	return s.view(sess, ""), nil
}

func (s *sessionService) Submit(ctx context.Context, id string, guestID string, guestCount int) (*model.Booking, error) {
	sess, err := s.load(id)
	if err != nil {
		return nil, err
	}
	if guestID == "" {
		return nil, apperrors.InvalidInput("Guest ID cannot be empty")
	}

	if !sess.BeginSubmit() {
		return nil, apperrors.Conflict("A submission is already in progress for this session")
	}
	defer sess.EndSubmit()

	var (
		checkIn, checkOut time.Time
		complete          bool
		generation        uint64
	)
	sess.WithLock(func(sel *selection.Selector) {
		checkIn, checkOut, complete = sel.Range()
		generation = sel.Generation()
	})

	if !complete {
		return nil, apperrors.IncompleteDates()
	}

	if guestCount < 1 {
		return nil, apperrors.InvalidInput("Guest count must be at least 1")
	}
	if guestCount > sess.Property.MaxGuests {
		return nil, apperrors.GuestLimitExceeded(sess.Property.MaxGuests)
	}

	quote := s.calculator.Quote(checkIn, checkOut, true, sess.Property.PricePerNightSen)

	booking := &model.Booking{
		PropertyID:     sess.Property.ID,
		GuestID:        guestID,
		CheckIn:        checkIn,
		CheckOut:       checkOut,
		GuestCount:     guestCount,
		TotalAmountSen: quote.TotalSen,
		PaymentStatus:  model.PaymentStatusPending,
		BookingStatus:  model.BookingStatusPending,
	}

	if err := s.validator.Validate(booking); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "session_id", id, "error", err)
		return nil, apperrors.Validation("Booking validation failed", map[string]any{"error": err.Error()})
	}

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.verifyNoOverlap(sessCtx, booking); err != nil {
			return err
		}
		if err := s.repo.Create(sessCtx, booking); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create booking", "session_id", id, "error", err)
		// Conflicts are user-actionable; everything else surfaces as a
		// submission failure with the cause preserved. The selection and
		// the quote stay untouched either way.
		if appErr := apperrors.AsAppError(err); appErr.Code == apperrors.CodeConflict {
			return nil, appErr
		}
		return nil, apperrors.SubmissionFailed(err)
	}

	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"session_id", id,
		"property_id", booking.PropertyID,
		"check_in", calendar.Key(booking.CheckIn),
		"check_out", calendar.Key(booking.CheckOut),
	)

	s.publishConfirmed(ctx, sess, booking)
	s.resetAfterSubmit(ctx, sess, generation)

	return booking, nil
}

// --- Helpers ---

func (s *sessionService) load(id string) (*session.Session, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Session ID cannot be empty")
	}
	sess, ok := s.store.Get(id)
	if !ok {
		return nil, apperrors.NotFoundWithID("Session", id)
	}
	return sess, nil
}

func (s *sessionService) buildIndex(ctx context.Context, propertyID string) (*availability.Index, error) {
	bookings, err := s.repo.FindOccupiedByProperty(ctx, propertyID)
	if err != nil {
		s.cfg.Log.Error("Failed to load bookings for session", "property_id", propertyID, "error", err)
		return nil, apperrors.Internal("Failed to load availability", err)
	}
	return availability.NewIndex(bookings, time.Now(), s.cfg.MaxAdvanceDays), nil
}

func (s *sessionService) view(sess *session.Session, rejected string) *SessionView {
	view := &SessionView{
		ID:             sess.ID,
		PropertyID:     sess.Property.ID,
		PropertyTitle:  sess.Property.Title,
		NightlyRateSen: sess.Property.PricePerNightSen,
		MaxGuests:      sess.Property.MaxGuests,
		Rejected:       rejected,
		ExpiresAt:      sess.ExpiresAt,
	}

	var checkIn, checkOut time.Time
	var complete bool
	sess.WithLock(func(sel *selection.Selector) {
		view.State = sel.State().String()
		if d, ok := sel.CheckIn(); ok {
			view.CheckIn = calendar.Key(d)
		}
		checkIn, checkOut, complete = sel.Range()
	})
	if complete {
		view.CheckOut = calendar.Key(checkOut)
	}

	view.Quote = s.calculator.Quote(checkIn, checkOut, complete, sess.Property.PricePerNightSen)
	sess.SetBreakdown(view.Quote)

	return view
}

func (s *sessionService) verifyNoOverlap(ctx context.Context, booking *model.Booking) error {
	existing, err := s.repo.FindOccupiedByProperty(ctx, booking.PropertyID)
	if err != nil {
		return fmt.Errorf("failed to check existing bookings: %w", err)
	}

	for _, b := range existing {
		if overlaps(b.CheckIn, b.CheckOut, booking.CheckIn, booking.CheckOut) {
			return apperrors.Conflict(fmt.Sprintf(
				"Stay overlaps with an existing booking (%s - %s)",
				calendar.Key(b.CheckIn),
				calendar.Key(b.CheckOut),
			))
		}
	}
	return nil
}

// overlaps compares two half-open day spans, so back-to-back stays that
// share a turnover day do not collide.
func overlaps(start1, end1, start2, end2 time.Time) bool {
	return start1.Before(end2) && end1.After(start2)
}

// publishConfirmed emits the notification event. Delivery is best effort;
// the booking already exists and a lost event only costs the host a ping.
func (s *sessionService) publishConfirmed(ctx context.Context, sess *session.Session, booking *model.Booking) {
	if s.publisher == nil {
		return
	}

	event := model.BookingConfirmedEvent{
		Booking:        *booking,
		PropertyTitle:  sess.Property.Title,
		PropertyCity:   sess.Property.Location.City,
		WhatsAppNumber: sess.Property.WhatsAppNumber,
	}

	msg := kafka.NewMessage().
		WithKey(booking.PropertyID).
		WithValue(event).
		WithEventType(model.EventTypeBookingConfirmed).
		WithSource(notificationSource).
		Build()

	if err := s.publisher.Publish(ctx, msg); err != nil {
		s.cfg.Log.Warn("Failed to publish booking confirmation event",
			"booking_id", booking.ID,
			"error", err,
		)
	}
}

// resetAfterSubmit wipes the selection only if nothing changed underneath
// the submission and the caller is still around to see the empty state.
func (s *sessionService) resetAfterSubmit(ctx context.Context, sess *session.Session, generation uint64) {
	if ctx.Err() != nil {
		s.cfg.Log.Debug("Skipping session reset, request context cancelled", "session_id", sess.ID)
		return
	}

	reset := false
	sess.WithLock(func(sel *selection.Selector) {
		reset = sel.ResetIfGeneration(generation)
	})
	if !reset {
		s.cfg.Log.Debug("Skipping session reset, selection changed during submission", "session_id", sess.ID)
		return
	}

	sess.SetBreakdown(pricing.Breakdown{})

	// The new booking's nights are now taken; refresh the snapshot so the
	// widget immediately renders them as blocked.
	index, err := s.buildIndex(ctx, sess.Property.ID)
	if err != nil {
		s.cfg.Log.Warn("Failed to refresh availability after submission", "session_id", sess.ID, "error", err)
		return
	}
	sess.ReplaceIndex(index)
}
