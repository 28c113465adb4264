package practice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/keyxmakerx/hizuke/internal/apperror"
	"github.com/keyxmakerx/hizuke/internal/quiz"
)

// QuizService defines the quiz actions a visitor can take. Handlers call
// these methods; they never touch the store directly.
type QuizService interface {
	// Current returns the worksheet for id, starting a new test when id is
	// empty, malformed, unknown or holds data that no longer validates. The
	// returned worksheet's ID may differ from the one passed in.
	Current(ctx context.Context, id string) (*Worksheet, error)

	// NewTest replaces the worksheet for id with a fresh test.
	NewTest(ctx context.Context, id string) (*Worksheet, error)

	// ToggleAnswers flips answer visibility on an existing worksheet.
	ToggleAnswers(ctx context.Context, id string) (*Worksheet, error)
}

// quizService implements QuizService on top of a SessionStore.
type quizService struct {
	store SessionStore
	rng   quiz.Rand
	now   func() time.Time
}

// NewQuizService creates a quiz service. rng must be safe for concurrent
// use; nil selects quiz.DefaultRand.
func NewQuizService(store SessionStore, rng quiz.Rand) QuizService {
	if rng == nil {
		rng = quiz.DefaultRand
	}
	return &quizService{store: store, rng: rng, now: time.Now}
}

func (s *quizService) Current(ctx context.Context, id string) (*Worksheet, error) {
	if !validID(id) {
		return s.start(ctx, uuid.NewString(), time.Time{})
	}

	ws, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if ws == nil {
		return s.start(ctx, id, time.Time{})
	}
	return ws, nil
}

func (s *quizService) NewTest(ctx context.Context, id string) (*Worksheet, error) {
	if !validID(id) {
		id = uuid.NewString()
	}

	var created time.Time
	if prev, err := s.load(ctx, id); err != nil {
		return nil, err
	} else if prev != nil {
		created = prev.CreatedAt
	}
	return s.start(ctx, id, created)
}

func (s *quizService) ToggleAnswers(ctx context.Context, id string) (*Worksheet, error) {
	if !validID(id) {
		return nil, apperror.NewBadRequest("No quiz in progress. Start a new test.")
	}

	ws, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if ws == nil {
		return nil, apperror.NewNotFound("Your quiz has expired. Start a new test.")
	}

	ws.Session = ws.Session.ToggleAnswers()
	ws.UpdatedAt = s.now().UTC()
	if err := s.store.Put(ctx, ws); err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("saving worksheet: %w", err))
	}

	slog.Debug("answers toggled",
		slog.String("session", ws.ID),
		slog.Bool("visible", ws.Session.AnswersVisible),
	)
	return ws, nil
}

// load fetches a worksheet. One whose session fails validation is deleted
// from the store and reported as absent, so corrupt store data starts a new
// test instead of panicking in the renderer.
func (s *quizService) load(ctx context.Context, id string) (*Worksheet, error) {
	ws, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("loading worksheet: %w", err))
	}
	if ws == nil {
		return nil, nil
	}
	if err := ws.Session.Validate(); err != nil {
		slog.Warn("discarding invalid worksheet",
			slog.String("session", id),
			slog.Any("error", err),
		)
		if err := s.store.Delete(ctx, id); err != nil {
			return nil, apperror.NewInternal(fmt.Errorf("deleting invalid worksheet: %w", err))
		}
		return nil, nil
	}
	ws.ID = id
	return ws, nil
}

// start stores a fresh test under id. created carries the creation time of
// the worksheet being replaced; zero means a brand-new worksheet.
func (s *quizService) start(ctx context.Context, id string, created time.Time) (*Worksheet, error) {
	now := s.now().UTC()
	if created.IsZero() {
		created = now
	}
	ws := &Worksheet{
		ID:        id,
		Session:   quiz.NewTest(s.rng),
		CreatedAt: created,
		UpdatedAt: now,
	}
	if err := s.store.Put(ctx, ws); err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("saving worksheet: %w", err))
	}

	slog.Debug("quiz started",
		slog.String("session", id),
		slog.String("date", ws.Session.Date.String()),
	)
	return ws, nil
}

// validID accepts only canonical UUIDs, which keeps arbitrary cookie values
// out of store keys.
func validID(id string) bool {
	if id == "" {
		return false
	}
	parsed, err := uuid.Parse(id)
	return err == nil && parsed.String() == id
}
