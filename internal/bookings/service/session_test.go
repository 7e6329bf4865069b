package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"rumahstay/internal/bookings/session"
	"rumahstay/internal/bookings/validator"
	"rumahstay/internal/pricing"
	"rumahstay/pkg/calendar"
	"rumahstay/pkg/config"
	mongotx "rumahstay/pkg/db/mongo"
	apperrors "rumahstay/pkg/errors"
	"rumahstay/pkg/kafka"
	"rumahstay/pkg/logger"
	"rumahstay/pkg/model"

	"go.mongodb.org/mongo-driver/mongo"
)

// Mock repository for testing
type mockBookingRepository struct {
	mu               sync.Mutex
	occupied         []model.Booking
	createFunc       func(ctx context.Context, booking *model.Booking) error
	findOccupiedFunc func(ctx context.Context, propertyID string) ([]model.Booking, error)
	createCalls      int
}

func (m *mockBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	m.mu.Lock()
	m.createCalls++
	m.mu.Unlock()
	if m.createFunc != nil {
		return m.createFunc(ctx, booking)
	}
	booking.ID = "68b000000000000000000042"
	return nil
}

func (m *mockBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	return &model.Booking{ID: id}, nil
}

func (m *mockBookingRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, error) {
	return []*model.Booking{}, nil
}

func (m *mockBookingRepository) FindOccupiedByProperty(ctx context.Context, propertyID string) ([]model.Booking, error) {
	if m.findOccupiedFunc != nil {
		return m.findOccupiedFunc(ctx, propertyID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.Booking{}, m.occupied...), nil
}

func (m *mockBookingRepository) Cancel(ctx context.Context, id string) error {
	return nil
}

func (m *mockBookingRepository) Count(ctx context.Context) (int64, error) {
	return 0, nil
}

func (m *mockBookingRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	var sessCtx mongo.SessionContext
	return fn(sessCtx)
}

func (m *mockBookingRepository) CreateCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.createCalls
}

func (m *mockBookingRepository) SetOccupied(bookings []model.Booking) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.occupied = bookings
}

type mockPropertyLoader struct {
	property *model.Property
	err      error
}

func (m *mockPropertyLoader) GetByID(ctx context.Context, id string) (*model.Property, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.property, nil
}

type mockPublisher struct {
	mu       sync.Mutex
	messages []kafka.Message
	err      error
}

func (m *mockPublisher) Publish(ctx context.Context, msg kafka.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.messages = append(m.messages, msg)
	return nil
}

func (m *mockPublisher) Messages() []kafka.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]kafka.Message{}, m.messages...)
}

type fixture struct {
	svc       SessionService
	store     *session.Store
	repo      *mockBookingRepository
	publisher *mockPublisher
	property  *model.Property
}

func day(offset int) string {
	return calendar.Key(calendar.AddDays(calendar.Truncate(time.Now()), offset))
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	log := logger.New(logger.Config{
		Level:     "info",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
	cfg := &config.Config{
		Log:            log,
		ReadTimeout:    5 * time.Second,
		WriteTimeout:   5 * time.Second,
		MaxAdvanceDays: 365,
		MaxStayNights:  30,
	}

	property := &model.Property{
		ID:               "68b000000000000000000001",
		OwnerID:          "owner-1",
		Title:            "Seaview Homestay Penang",
		Location:         model.Location{City: "George Town", State: "Pulau Pinang", Address: "12 Jalan Tanjung Bungah", Postcode: "11200"},
		PricePerNightSen: 10000,
		MaxGuests:        4,
		Amenities:        []string{"wifi"},
		WhatsAppNumber:   "+60123456789",
		Status:           model.PropertyStatusActive,
	}

	repo := &mockBookingRepository{}
	publisher := &mockPublisher{}
	store := session.NewStore(30 * time.Minute)
	t.Cleanup(store.Stop)

	svc := NewSessionService(
		store,
		repo,
		&mockPropertyLoader{property: property},
		validator.NewBookingValidator(log, cfg.MaxStayNights),
		pricing.NewCalculator(10, 5000),
		publisher,
		cfg,
	)

	return &fixture{
		svc:       svc,
		store:     store,
		repo:      repo,
		publisher: publisher,
		property:  property,
	}
}

// completeSelection creates a session and taps a valid three-night range.
func (f *fixture) completeSelection(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	view, err := f.svc.Create(ctx, f.property.ID)
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	if _, err := f.svc.SelectDate(ctx, view.ID, day(7)); err != nil {
		t.Fatalf("failed to select check-in: %v", err)
	}
	if _, err := f.svc.SelectDate(ctx, view.ID, day(10)); err != nil {
		t.Fatalf("failed to select check-out: %v", err)
	}
	return view.ID
}

func TestCreateSession(t *testing.T) {
	f := newFixture(t)

	view, err := f.svc.Create(context.Background(), f.property.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if view.State != "empty" {
		t.Errorf("expected empty state, got %s", view.State)
	}
	if view.Quote.TotalSen != 0 {
		t.Errorf("expected zero quote on a fresh session, got %+v", view.Quote)
	}
	if view.NightlyRateSen != 10000 {
		t.Errorf("expected nightly rate snapshot, got %d", view.NightlyRateSen)
	}
}

func TestCreateSessionRejectsInactiveProperty(t *testing.T) {
	f := newFixture(t)
	f.property.Status = model.PropertyStatusInactive

	_, err := f.svc.Create(context.Background(), f.property.ID)
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeInvalidInput {
		t.Errorf("expected INVALID_INPUT for inactive property, got %v", err)
	}
}

func TestSelectDateHappyPath(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	view, err := f.svc.Create(ctx, f.property.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	view, err = f.svc.SelectDate(ctx, view.ID, day(7))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.State != "check_in_only" || view.CheckIn != day(7) {
		t.Errorf("expected check_in_only at %s, got state=%s check_in=%s", day(7), view.State, view.CheckIn)
	}
	if view.Quote.TotalSen != 0 {
		t.Errorf("expected zero quote with only check-in chosen, got %+v", view.Quote)
	}

	view, err = f.svc.SelectDate(ctx, view.ID, day(10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.State != "complete" || view.CheckOut != day(10) {
		t.Errorf("expected complete range ending %s, got state=%s check_out=%s", day(10), view.State, view.CheckOut)
	}

	// Three nights at RM100 plus RM30 service fee and RM50 cleaning fee.
	if view.Quote.TotalSen != 38000 {
		t.Errorf("expected total 38000 sen, got %+v", view.Quote)
	}
}

func TestSelectDateUnavailableReported(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.repo.SetOccupied([]model.Booking{
		{
			PropertyID:    f.property.ID,
			CheckIn:       calendar.AddDays(calendar.Truncate(time.Now()), 10),
			CheckOut:      calendar.AddDays(calendar.Truncate(time.Now()), 12),
			BookingStatus: model.BookingStatusConfirmed,
		},
	})

	view, err := f.svc.Create(ctx, f.property.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	view, err = f.svc.SelectDate(ctx, view.ID, day(10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Rejected != "date_unavailable" {
		t.Errorf("expected date_unavailable rejection, got %q", view.Rejected)
	}
	if view.State != "empty" {
		t.Errorf("expected state untouched by rejected tap, got %s", view.State)
	}

	// Completing across the blocked stay is rejected too.
	if _, err := f.svc.SelectDate(ctx, view.ID, day(8)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	view, err = f.svc.SelectDate(ctx, view.ID, day(14))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Rejected != "range_spans_unavailable" {
		t.Errorf("expected range_spans_unavailable rejection, got %q", view.Rejected)
	}
	if view.State != "check_in_only" {
		t.Errorf("expected pending check-in to survive, got %s", view.State)
	}
}

func TestClearSession(t *testing.T) {
	f := newFixture(t)
	id := f.completeSelection(t)

	view, err := f.svc.Clear(context.Background(), id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.State != "empty" {
		t.Errorf("expected empty state after clear, got %s", view.State)
	}
	if view.Quote.TotalSen != 0 {
		t.Errorf("expected zero quote after clear, got %+v", view.Quote)
	}

	// Clearing again is a no-op.
	view, err = f.svc.Clear(context.Background(), id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.State != "empty" {
		t.Errorf("expected empty state after repeated clear, got %s", view.State)
	}
}

func TestSubmitHappyPath(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.completeSelection(t)

	booking, err := f.svc.Submit(ctx, id, "guest-1", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if booking.ID == "" {
		t.Error("expected booking to receive an ID")
	}
	if booking.PaymentStatus != model.PaymentStatusPending || booking.BookingStatus != model.BookingStatusPending {
		t.Errorf("expected pending statuses, got %s/%s", booking.PaymentStatus, booking.BookingStatus)
	}
	if booking.TotalAmountSen != 38000 {
		t.Errorf("expected total 38000 sen, got %d", booking.TotalAmountSen)
	}
	if calendar.Key(booking.CheckIn) != day(7) || calendar.Key(booking.CheckOut) != day(10) {
		t.Errorf("expected stay %s..%s, got %s..%s", day(7), day(10), calendar.Key(booking.CheckIn), calendar.Key(booking.CheckOut))
	}

	messages := f.publisher.Messages()
	if len(messages) != 1 {
		t.Fatalf("expected one published event, got %d", len(messages))
	}
	if messages[0].Key != f.property.ID {
		t.Errorf("expected event keyed by property ID, got %s", messages[0].Key)
	}
	if messages[0].GetEventType() != model.EventTypeBookingConfirmed {
		t.Errorf("expected %s event, got %s", model.EventTypeBookingConfirmed, messages[0].GetEventType())
	}
	var event model.BookingConfirmedEvent
	if err := messages[0].DecodeValue(&event); err != nil {
		t.Fatalf("failed to decode event payload: %v", err)
	}
	if event.WhatsAppNumber != f.property.WhatsAppNumber {
		t.Errorf("expected host contact in event, got %q", event.WhatsAppNumber)
	}

	// The selection resets once the booking exists.
	view, err := f.svc.Get(ctx, id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.State != "empty" {
		t.Errorf("expected empty state after submission, got %s", view.State)
	}
}

func TestSubmitIncompleteDates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	view, err := f.svc.Create(ctx, f.property.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := f.svc.SelectDate(ctx, view.ID, day(7)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = f.svc.Submit(ctx, view.ID, "guest-1", 2)
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeIncompleteDates {
		t.Fatalf("expected INCOMPLETE_DATES, got %v", err)
	}
	if f.repo.CreateCalls() != 0 {
		t.Error("expected no booking creation for incomplete range")
	}
}

func TestSubmitGuestLimit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.completeSelection(t)

	_, err := f.svc.Submit(ctx, id, "guest-1", 5)
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeGuestLimitExceeded {
		t.Fatalf("expected GUEST_LIMIT_EXCEEDED, got %v", err)
	}
	if appErr.Details["max_guests"] != 4 {
		t.Errorf("expected capacity in details, got %v", appErr.Details)
	}

	if f.repo.CreateCalls() != 0 {
		t.Error("expected no booking creation when guest limit is exceeded")
	}
	if len(f.publisher.Messages()) != 0 {
		t.Error("expected no event when guest limit is exceeded")
	}

	// The selection survives the failed attempt.
	view, err := f.svc.Get(ctx, id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.State != "complete" || view.Quote.TotalSen != 38000 {
		t.Errorf("expected selection and quote untouched, got state=%s quote=%+v", view.State, view.Quote)
	}
}

func TestSubmitCreateFailureLeavesStateIntact(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.completeSelection(t)

	cause := errors.New("write concern timeout")
	f.repo.createFunc = func(ctx context.Context, booking *model.Booking) error {
		return cause
	}

	_, err := f.svc.Submit(ctx, id, "guest-1", 2)
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeSubmissionFailed {
		t.Fatalf("expected SUBMISSION_FAILED, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Error("expected underlying cause to be preserved")
	}

	if len(f.publisher.Messages()) != 0 {
		t.Error("expected no event for failed submission")
	}

	view, err := f.svc.Get(ctx, id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.State != "complete" || view.Quote.TotalSen != 38000 {
		t.Errorf("expected selection and quote untouched, got state=%s quote=%+v", view.State, view.Quote)
	}

	// A retry on the same session succeeds without reselecting dates.
	f.repo.createFunc = nil
	if _, err := f.svc.Submit(ctx, id, "guest-1", 2); err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
}

func TestSubmitOverlapConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.completeSelection(t)

	// Another guest books the same nights between selection and submit.
	f.repo.SetOccupied([]model.Booking{
		{
			PropertyID:    f.property.ID,
			CheckIn:       calendar.AddDays(calendar.Truncate(time.Now()), 9),
			CheckOut:      calendar.AddDays(calendar.Truncate(time.Now()), 11),
			BookingStatus: model.BookingStatusPending,
		},
	})

	_, err := f.svc.Submit(ctx, id, "guest-1", 2)
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeConflict {
		t.Fatalf("expected CONFLICT, got %v", err)
	}
	if f.repo.CreateCalls() != 0 {
		t.Error("expected no booking creation on overlap")
	}
}

func TestSubmitStaleGenerationSkipsReset(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.completeSelection(t)

	// The guest clears and reselects while the create call is in flight.
	f.repo.createFunc = func(createCtx context.Context, booking *model.Booking) error {
		if _, err := f.svc.Clear(ctx, id); err != nil {
			t.Errorf("mid-flight clear failed: %v", err)
		}
		if _, err := f.svc.SelectDate(ctx, id, day(20)); err != nil {
			t.Errorf("mid-flight select failed: %v", err)
		}
		booking.ID = "68b000000000000000000042"
		return nil
	}

	if _, err := f.svc.Submit(ctx, id, "guest-1", 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	view, err := f.svc.Get(ctx, id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.State != "check_in_only" || view.CheckIn != day(20) {
		t.Errorf("expected newer selection to survive the submission reset, got state=%s check_in=%s", view.State, view.CheckIn)
	}
}

func TestSubmitCancelledContextSkipsReset(t *testing.T) {
	f := newFixture(t)
	id := f.completeSelection(t)

	ctx, cancel := context.WithCancel(context.Background())
	f.repo.createFunc = func(createCtx context.Context, booking *model.Booking) error {
		cancel()
		booking.ID = "68b000000000000000000042"
		return nil
	}

	if _, err := f.svc.Submit(ctx, id, "guest-1", 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	view, err := f.svc.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.State != "complete" {
		t.Errorf("expected selection kept when caller went away, got %s", view.State)
	}
}

func TestSubmitSingleFlight(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.completeSelection(t)

	createStarted := make(chan struct{})
	proceed := make(chan struct{})
	f.repo.createFunc = func(createCtx context.Context, booking *model.Booking) error {
		close(createStarted)
		<-proceed
		booking.ID = "68b000000000000000000042"
		return nil
	}

	firstDone := make(chan error, 1)
	go func() {
		_, err := f.svc.Submit(ctx, id, "guest-1", 2)
		firstDone <- err
	}()

	<-createStarted
	_, err := f.svc.Submit(ctx, id, "guest-1", 2)
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeConflict {
		t.Errorf("expected CONFLICT for concurrent submission, got %v", err)
	}

	close(proceed)
	if err := <-firstDone; err != nil {
		t.Fatalf("expected first submission to succeed, got %v", err)
	}
}
