package practice

import (
	"context"
	"errors"
	"math/rand/v2"
	"net/http"
	"testing"
	"time"

	"github.com/keyxmakerx/hizuke/internal/apperror"
	"github.com/keyxmakerx/hizuke/internal/calendar"
)

// --- Mock Store ---

// mockStore implements SessionStore for testing.
type mockStore struct {
	getFn    func(ctx context.Context, id string) (*Worksheet, error)
	putFn    func(ctx context.Context, ws *Worksheet) error
	deleteFn func(ctx context.Context, id string) error
}

func (m *mockStore) Get(ctx context.Context, id string) (*Worksheet, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, nil
}

func (m *mockStore) Put(ctx context.Context, ws *Worksheet) error {
	if m.putFn != nil {
		return m.putFn(ctx, ws)
	}
	return nil
}

func (m *mockStore) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed+1))
}

func newTestService(store SessionStore) *quizService {
	svc := NewQuizService(store, newRand(42)).(*quizService)
	svc.now = func() time.Time { return time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC) }
	return svc
}

func assertAppErrorCode(t *testing.T, err error, code int) {
	t.Helper()
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %T: %v", err, err)
	}
	if appErr.Code != code {
		t.Errorf("expected status %d, got %d", code, appErr.Code)
	}
}

// --- Current ---

func TestCurrent_StartsTestWithoutID(t *testing.T) {
	var saved *Worksheet
	svc := newTestService(&mockStore{
		putFn: func(_ context.Context, ws *Worksheet) error { saved = ws; return nil },
	})

	ws, err := svc.Current(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !validID(ws.ID) {
		t.Errorf("expected a generated uuid, got %q", ws.ID)
	}
	if saved != ws {
		t.Error("expected the new worksheet to be stored")
	}
	if err := ws.Session.Validate(); err != nil {
		t.Errorf("new session invalid: %v", err)
	}
	if ws.Session.AnswersVisible {
		t.Error("answers should start hidden")
	}
}

func TestCurrent_ReturnsStoredWorksheet(t *testing.T) {
	stored := sampleWorksheet(t)
	svc := newTestService(&mockStore{
		getFn: func(_ context.Context, id string) (*Worksheet, error) {
			if id != testID {
				t.Errorf("unexpected id %q", id)
			}
			return stored, nil
		},
		putFn: func(context.Context, *Worksheet) error {
			t.Error("an existing worksheet must not be rewritten")
			return nil
		},
	})

	ws, err := svc.Current(context.Background(), testID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ws.Session.Date != stored.Session.Date {
		t.Errorf("expected stored date %s, got %s", stored.Session.Date, ws.Session.Date)
	}
}

func TestCurrent_ReplacesInvalidWorksheet(t *testing.T) {
	broken := sampleWorksheet(t)
	broken.Session.Date = calendar.Date{Year: 1999, Month: time.January, Day: 10}
	var saved *Worksheet
	var deleted string
	svc := newTestService(&mockStore{
		getFn:    func(context.Context, string) (*Worksheet, error) { return broken, nil },
		putFn:    func(_ context.Context, ws *Worksheet) error { saved = ws; return nil },
		deleteFn: func(_ context.Context, id string) error { deleted = id; return nil },
	})

	ws, err := svc.Current(context.Background(), testID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted != testID {
		t.Errorf("expected the invalid worksheet to be deleted, got %q", deleted)
	}
	if ws.ID != testID || saved == nil {
		t.Errorf("expected a fresh test under the same id, got %q (saved %v)", ws.ID, saved != nil)
	}
	if ws.Session.Date.Year < 2019 {
		t.Errorf("expected a fresh date, got %s", ws.Session.Date)
	}
}

func TestToggleAnswers_InvalidWorksheetIsDeleted(t *testing.T) {
	broken := sampleWorksheet(t)
	broken.Session.Seeds = broken.Session.Seeds[:3]
	store := NewMemoryStore(time.Hour)
	if err := store.Put(context.Background(), broken); err != nil {
		t.Fatal(err)
	}
	svc := newTestService(store)

	_, err := svc.ToggleAnswers(context.Background(), testID)
	assertAppErrorCode(t, err, http.StatusNotFound)

	if got, _ := store.Get(context.Background(), testID); got != nil {
		t.Error("expected the invalid worksheet to be removed from the store")
	}
}

func TestCurrent_DeleteErrors(t *testing.T) {
	broken := sampleWorksheet(t)
	broken.Session.Order = nil
	svc := newTestService(&mockStore{
		getFn:    func(context.Context, string) (*Worksheet, error) { return broken, nil },
		deleteFn: func(context.Context, string) error { return errors.New("connection refused") },
	})
	_, err := svc.Current(context.Background(), testID)
	assertAppErrorCode(t, err, http.StatusInternalServerError)
}

func TestCurrent_MalformedIDGetsNewOne(t *testing.T) {
	svc := newTestService(&mockStore{
		getFn: func(context.Context, string) (*Worksheet, error) {
			t.Error("a malformed id must not reach the store")
			return nil, nil
		},
	})
	for _, id := range []string{"../../etc", "not-a-uuid", "5C1D0E0E-8D8B-4F5E-9A53-0F3B7B1C2D4E"} {
		ws, err := svc.Current(context.Background(), id)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ws.ID == id || !validID(ws.ID) {
			t.Errorf("%q: expected a new canonical id, got %q", id, ws.ID)
		}
	}
}

func TestCurrent_StoreErrors(t *testing.T) {
	svc := newTestService(&mockStore{
		getFn: func(context.Context, string) (*Worksheet, error) { return nil, errors.New("connection refused") },
	})
	_, err := svc.Current(context.Background(), testID)
	assertAppErrorCode(t, err, http.StatusInternalServerError)

	svc = newTestService(&mockStore{
		putFn: func(context.Context, *Worksheet) error { return errors.New("OOM") },
	})
	_, err = svc.Current(context.Background(), "")
	assertAppErrorCode(t, err, http.StatusInternalServerError)
}

// --- NewTest ---

func TestNewTest_ReplacesWorksheetKeepingID(t *testing.T) {
	stored := sampleWorksheet(t)
	stored.Session = stored.Session.ToggleAnswers()
	var saved *Worksheet
	svc := newTestService(&mockStore{
		getFn: func(context.Context, string) (*Worksheet, error) { return stored, nil },
		putFn: func(_ context.Context, ws *Worksheet) error { saved = ws; return nil },
	})

	ws, err := svc.NewTest(context.Background(), testID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ws.ID != testID || saved != ws {
		t.Errorf("expected worksheet stored under %s", testID)
	}
	if ws.Session.AnswersVisible {
		t.Error("a new test must hide answers")
	}
	if !ws.CreatedAt.Equal(stored.CreatedAt) {
		t.Errorf("expected creation time kept, got %s", ws.CreatedAt)
	}
	if !ws.UpdatedAt.After(stored.UpdatedAt) {
		t.Errorf("expected update time advanced, got %s", ws.UpdatedAt)
	}
}

func TestNewTest_WithoutID(t *testing.T) {
	svc := newTestService(&mockStore{})
	ws, err := svc.NewTest(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !validID(ws.ID) {
		t.Errorf("expected generated id, got %q", ws.ID)
	}
}

// --- ToggleAnswers ---

func TestToggleAnswers(t *testing.T) {
	stored := sampleWorksheet(t)
	var saved *Worksheet
	svc := newTestService(&mockStore{
		getFn: func(context.Context, string) (*Worksheet, error) { return stored, nil },
		putFn: func(_ context.Context, ws *Worksheet) error { saved = ws; return nil },
	})

	ws, err := svc.ToggleAnswers(context.Background(), testID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ws.Session.AnswersVisible || saved == nil || !saved.Session.AnswersVisible {
		t.Error("expected visible answers to be stored")
	}
	if ws.Session.Date != stored.Session.Date {
		t.Error("toggling must not change the test")
	}
}

func TestToggleAnswers_Errors(t *testing.T) {
	svc := newTestService(&mockStore{})

	_, err := svc.ToggleAnswers(context.Background(), "")
	assertAppErrorCode(t, err, http.StatusBadRequest)

	_, err = svc.ToggleAnswers(context.Background(), testID)
	assertAppErrorCode(t, err, http.StatusNotFound)

	svc = newTestService(&mockStore{
		getFn: func(context.Context, string) (*Worksheet, error) { return sampleWorksheet(t), nil },
		putFn: func(context.Context, *Worksheet) error { return errors.New("READONLY") },
	})
	_, err = svc.ToggleAnswers(context.Background(), testID)
	assertAppErrorCode(t, err, http.StatusInternalServerError)
}

func TestService_AgainstMemoryStore(t *testing.T) {
	svc := newTestService(NewMemoryStore(time.Hour))
	ctx := context.Background()

	first, err := svc.Current(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	toggled, err := svc.ToggleAnswers(ctx, first.ID)
	if err != nil {
		t.Fatal(err)
	}
	again, err := svc.Current(ctx, first.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !again.Session.AnswersVisible || again.Session.Date != toggled.Session.Date {
		t.Errorf("expected the toggled worksheet back, got %+v", again.Session)
	}
}
