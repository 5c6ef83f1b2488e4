package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	ledgerRepo "roombooking/database/repository/ledger"
	"roombooking/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var fixedNow = time.Date(2030, time.June, 15, 10, 30, 0, 0, time.UTC)

const (
	today     = "2030-06-15"
	yesterday = "2030-06-14"
	tomorrow  = "2030-06-16"
)

type fakeNotifier struct {
	mu      sync.Mutex
	outcome models.Outcome
	calls   []models.Booking
}

func (f *fakeNotifier) Notify(_ context.Context, b models.Booking) models.Outcome {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, b)
	return f.outcome
}

type fakeAnnouncer struct {
	mu    sync.Mutex
	err   error
	calls int
}

func (f *fakeAnnouncer) Announce(_ context.Context, _ models.Identity, _ models.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.err
}

type blockingAnnouncer struct{}

func (blockingAnnouncer) Announce(ctx context.Context, _ models.Identity, _ models.Booking) error {
	<-ctx.Done()
	return ctx.Err()
}

type brokenLedger struct{}

func (brokenLedger) Append(context.Context, models.Booking) (models.Booking, error) {
	return models.Booking{}, ledgerRepo.ErrUnavailable
}

func (brokenLedger) ListAll(context.Context) ([]models.Booking, error) {
	return nil, ledgerRepo.ErrUnavailable
}

func newTestRecorder(t *testing.T) *DefaultBookingRecorder {
	t.Helper()
	catalog, err := NewCatalog(nil, nil)
	require.NoError(t, err)
	return &DefaultBookingRecorder{
		Ledger:    ledgerRepo.NewMemoryLedgerRepo(0),
		Catalogue: catalog,
		Location:  time.UTC,
		Now:       func() time.Time { return fixedNow },
	}
}

func validRequest() models.BookingRequest {
	return models.BookingRequest{
		Name:       "Alice",
		Department: "IT",
		DayToUse:   today,
		TimeSlot:   "09:00-10:00",
		RoomID:     "CR-101",
	}
}

func codeOf(t *testing.T, err error) string {
	t.Helper()
	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr), "expected ValidationError, got %v", err)
	return vErr.Code
}

func TestValidateRules(t *testing.T) {
	r := newTestRecorder(t)

	tests := []struct {
		name   string
		mutate func(*models.BookingRequest)
		code   string
	}{
		{"empty name", func(q *models.BookingRequest) { q.Name = "" }, CodeMissingName},
		{"whitespace name", func(q *models.BookingRequest) { q.Name = " \t " }, CodeMissingName},
		{"name checked before other fields", func(q *models.BookingRequest) {
			q.Name = "  "
			q.Department = ""
			q.DayToUse = "garbage"
			q.TimeSlot = "nope"
			q.RoomID = "nope"
		}, CodeMissingName},
		{"whitespace department", func(q *models.BookingRequest) { q.Department = "   " }, CodeMissingDepartment},
		{"unparseable date", func(q *models.BookingRequest) { q.DayToUse = "15/06/2030" }, CodeInvalidDate},
		{"impossible date", func(q *models.BookingRequest) { q.DayToUse = "2030-02-30" }, CodeInvalidDate},
		{"past date", func(q *models.BookingRequest) { q.DayToUse = yesterday }, CodeInvalidDate},
		{"unknown slot", func(q *models.BookingRequest) { q.TimeSlot = "08:00-09:00" }, CodeInvalidSlot},
		{"custom range", func(q *models.BookingRequest) { q.TimeSlot = "09:30-10:30" }, CodeInvalidSlot},
		{"unknown room", func(q *models.BookingRequest) { q.RoomID = "ZZ-999" }, CodeInvalidRoom},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)
			_, err := r.Validate(req)
			require.Error(t, err)
			assert.Equal(t, tt.code, codeOf(t, err))
		})
	}
}

func TestValidateNormalizes(t *testing.T) {
	r := newTestRecorder(t)
	req := validRequest()
	req.Name = "  Alice  "
	req.Department = "\tIT "
	req.DayToUse = tomorrow

	valid, err := r.Validate(req)
	require.NoError(t, err)

	b := valid.Booking()
	assert.Equal(t, "Alice", b.Name)
	assert.Equal(t, "IT", b.Department)
	assert.Equal(t, tomorrow, b.DayToUse)
	assert.Equal(t, "Conference Room 101", b.RoomName)
	assert.Equal(t, fixedNow, b.CreatedAt)
}

func TestValidateUsesConfiguredZone(t *testing.T) {
	r := newTestRecorder(t)
	// 2030-06-15 23:30 UTC is already 2030-06-16 in Tokyo.
	tokyo := time.FixedZone("JST", 9*60*60)
	r.Location = tokyo
	r.Now = func() time.Time { return time.Date(2030, time.June, 15, 23, 30, 0, 0, time.UTC) }

	req := validRequest()
	_, err := r.Validate(req)
	assert.Equal(t, CodeInvalidDate, codeOf(t, err))

	req.DayToUse = tomorrow
	_, err = r.Validate(req)
	assert.NoError(t, err)
}

func TestValidateIsIdempotent(t *testing.T) {
	r := newTestRecorder(t)
	req := validRequest()
	req.Name = " Bob "

	first, err := r.Validate(req)
	require.NoError(t, err)
	second, err := r.Validate(req)
	require.NoError(t, err)

	a, b := first.Booking(), second.Booking()
	a.CreatedAt, b.CreatedAt = time.Time{}, time.Time{}
	assert.Equal(t, a, b)

	bad := validRequest()
	bad.RoomID = "nope"
	_, e1 := r.Validate(bad)
	_, e2 := r.Validate(bad)
	assert.Equal(t, e1, e2)
}

func TestCreatedAtNeverGoesBackwards(t *testing.T) {
	r := newTestRecorder(t)
	clock := fixedNow
	r.Now = func() time.Time { return clock }

	first, err := r.Validate(validRequest())
	require.NoError(t, err)

	clock = fixedNow.Add(-time.Minute)
	second, err := r.Validate(validRequest())
	require.NoError(t, err)

	assert.False(t, second.Booking().CreatedAt.Before(first.Booking().CreatedAt))
}

func TestSubmitScenarioAAnonymousPreview(t *testing.T) {
	r := newTestRecorder(t)

	result, err := r.Submit(context.Background(), validRequest(), models.Environment{})
	require.NoError(t, err)

	assert.True(t, result.Recorded)
	assert.Equal(t, models.OutcomeSkipped, result.Notified.Status)
	assert.Equal(t, models.OutcomeSkipped, result.Announced.Status)
	assert.Empty(t, result.Booking.UserID)
	assert.Equal(t, int64(1), result.Booking.Sequence)

	all, err := r.List(context.Background(), models.BookingFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSubmitScenarioBWhitespaceName(t *testing.T) {
	r := newTestRecorder(t)
	ctx := context.Background()
	_, err := r.Submit(ctx, validRequest(), models.Environment{})
	require.NoError(t, err)

	notifier := &fakeNotifier{outcome: models.Sent()}
	r.Notifier = notifier

	req := validRequest()
	req.Name = "  "
	_, err = r.Submit(ctx, req, models.Environment{})
	assert.Equal(t, CodeMissingName, codeOf(t, err))
	assert.Empty(t, notifier.calls, "no side effects after validation failure")

	all, err := r.List(ctx, models.BookingFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSubmitScenarioCYesterday(t *testing.T) {
	r := newTestRecorder(t)
	req := validRequest()
	req.DayToUse = yesterday

	_, err := r.Submit(context.Background(), req, models.Environment{})
	assert.Equal(t, CodeInvalidDate, codeOf(t, err))

	all, err := r.List(context.Background(), models.BookingFilter{})
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestSubmitScenarioDDoubleBookingAllowed(t *testing.T) {
	r := newTestRecorder(t)
	ctx := context.Background()

	first, err := r.Submit(ctx, validRequest(), models.Environment{})
	require.NoError(t, err)
	other := validRequest()
	other.Name = "Bob"
	second, err := r.Submit(ctx, other, models.Environment{})
	require.NoError(t, err)

	sameDay, err := r.List(ctx, models.BookingFilter{DayToUse: today})
	require.NoError(t, err)
	require.Len(t, sameDay, 2)
	assert.Equal(t, first.Booking.ID, sameDay[0].ID)
	assert.Equal(t, second.Booking.ID, sameDay[1].ID)
}

func TestSubmitAppendOnlyOrder(t *testing.T) {
	r := newTestRecorder(t)
	ctx := context.Background()

	var ids []string
	for i, name := range []string{"A", "B", "C", "D"} {
		req := validRequest()
		req.Name = name
		res, err := r.Submit(ctx, req, models.Environment{})
		require.NoError(t, err)
		ids = append(ids, res.Booking.ID)

		all, err := r.List(ctx, models.BookingFilter{})
		require.NoError(t, err)
		require.Len(t, all, i+1)
		for j := range all {
			assert.Equal(t, ids[j], all[j].ID)
		}
	}
}

func TestSubmitPartialFailureIndependence(t *testing.T) {
	identity := &models.Identity{DisplayName: "Alice Host", UserID: "U123"}
	env := models.Environment{HostAvailable: true, Identity: identity}

	tests := []struct {
		name         string
		notify       models.Outcome
		announceErr  error
		wantNotify   models.OutcomeStatus
		wantAnnounce models.OutcomeStatus
	}{
		{"webhook down, chat ok", models.Failed("connection refused"), nil, models.OutcomeFailed, models.OutcomeSent},
		{"webhook ok, chat down", models.Sent(), errors.New("fcm unavailable"), models.OutcomeSent, models.OutcomeFailed},
		{"both down", models.Failed("503"), errors.New("fcm unavailable"), models.OutcomeFailed, models.OutcomeFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRecorder(t)
			r.Notifier = &fakeNotifier{outcome: tt.notify}
			r.Announcer = &fakeAnnouncer{err: tt.announceErr}

			result, err := r.Submit(context.Background(), validRequest(), env)
			require.NoError(t, err)
			assert.True(t, result.Recorded)
			assert.Equal(t, tt.wantNotify, result.Notified.Status)
			assert.Equal(t, tt.wantAnnounce, result.Announced.Status)
			assert.Equal(t, "U123", result.Booking.UserID)

			all, err := r.List(context.Background(), models.BookingFilter{})
			require.NoError(t, err)
			require.Len(t, all, 1)
			assert.Equal(t, result.Booking.ID, all[0].ID)
		})
	}
}

func TestSubmitStorageFailureIsFatal(t *testing.T) {
	r := newTestRecorder(t)
	r.Ledger = brokenLedger{}
	notifier := &fakeNotifier{outcome: models.Sent()}
	announcer := &fakeAnnouncer{}
	r.Notifier = notifier
	r.Announcer = announcer

	env := models.Environment{HostAvailable: true, Identity: &models.Identity{UserID: "U1"}}
	result, err := r.Submit(context.Background(), validRequest(), env)
	assert.Nil(t, result)

	var sErr *StorageError
	require.True(t, errors.As(err, &sErr))
	assert.ErrorIs(t, err, ledgerRepo.ErrUnavailable)
	assert.Empty(t, notifier.calls)
	assert.Zero(t, announcer.calls)
}

func TestSubmitStorageFullKeepsPriorEntries(t *testing.T) {
	r := newTestRecorder(t)
	r.Ledger = ledgerRepo.NewMemoryLedgerRepo(1)
	ctx := context.Background()

	first, err := r.Submit(ctx, validRequest(), models.Environment{})
	require.NoError(t, err)
	_, err = r.Submit(ctx, validRequest(), models.Environment{})
	var sErr *StorageError
	require.True(t, errors.As(err, &sErr))

	all, err := r.List(ctx, models.BookingFilter{})
	require.NoError(t, err)
	assert.Equal(t, []models.Booking{first.Booking}, all)
}

func TestSubmitPrefillsNameFromIdentity(t *testing.T) {
	r := newTestRecorder(t)
	req := validRequest()
	req.Name = ""
	env := models.Environment{Identity: &models.Identity{DisplayName: "Host Name", UserID: "U9"}}

	result, err := r.Submit(context.Background(), req, env)
	require.NoError(t, err)
	assert.Equal(t, "Host Name", result.Booking.Name)
	assert.Equal(t, "U9", result.Booking.UserID)
	// Identity without the host capability is still a skipped announcement.
	assert.Equal(t, models.OutcomeSkipped, result.Announced.Status)
}

func TestSubmitSideChannelTimeoutIsCaptured(t *testing.T) {
	r := newTestRecorder(t)
	r.Announcer = blockingAnnouncer{}
	r.SideChannelTimeout = 20 * time.Millisecond
	env := models.Environment{HostAvailable: true, Identity: &models.Identity{UserID: "U1"}}

	result, err := r.Submit(context.Background(), validRequest(), env)
	require.NoError(t, err)
	assert.True(t, result.Recorded)
	assert.Equal(t, models.OutcomeFailed, result.Announced.Status)
	assert.Contains(t, result.Announced.Detail, "deadline")
}

func TestSubmitConcurrentAppendsAreSerialized(t *testing.T) {
	r := newTestRecorder(t)
	ctx := context.Background()

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.Submit(ctx, validRequest(), models.Environment{})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	all, err := r.List(ctx, models.BookingFilter{})
	require.NoError(t, err)
	require.Len(t, all, n)
	for i, b := range all {
		assert.Equal(t, int64(i+1), b.Sequence)
	}
}

func TestListFilters(t *testing.T) {
	r := newTestRecorder(t)
	ctx := context.Background()

	for _, req := range []models.BookingRequest{
		{Name: "A", Department: "IT", DayToUse: today, TimeSlot: "09:00-10:00", RoomID: "CR-101"},
		{Name: "B", Department: "HR", DayToUse: tomorrow, TimeSlot: "09:00-10:00", RoomID: "CR-101"},
		{Name: "C", Department: "IT", DayToUse: today, TimeSlot: "10:00-11:00", RoomID: "MR-201"},
	} {
		_, err := r.Submit(ctx, req, models.Environment{})
		require.NoError(t, err)
	}

	byDay, err := r.List(ctx, models.BookingFilter{DayToUse: today})
	require.NoError(t, err)
	require.Len(t, byDay, 2)
	assert.Equal(t, "A", byDay[0].Name)
	assert.Equal(t, "C", byDay[1].Name)

	byRoom, err := r.List(ctx, models.BookingFilter{DayToUse: today, RoomID: "MR-201"})
	require.NoError(t, err)
	require.Len(t, byRoom, 1)
	assert.Equal(t, "C", byRoom[0].Name)

	r.Ledger = brokenLedger{}
	_, err = r.List(ctx, models.BookingFilter{})
	var sErr *StorageError
	assert.True(t, errors.As(err, &sErr))
}
