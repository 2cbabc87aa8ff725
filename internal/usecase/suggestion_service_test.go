package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/team-growth/internal/domain/roster"
	"github.com/riskibarqy/team-growth/internal/domain/suggestion"
	suggestionmock "github.com/riskibarqy/team-growth/internal/mocks/domain/suggestion"
	"github.com/stretchr/testify/mock"
)

func TestSuggestionService_Generate_StoresTextUsingMockery(t *testing.T) {
	generator := suggestionmock.NewGenerator(t)
	env, m := newReflectionFixture(t, withGenerator(generator))
	ctx := context.Background()

	generator.
		On("Generate", mock.Anything, mock.MatchedBy(func(req suggestion.Request) bool {
			return req.Position == roster.PositionForward &&
				req.Stats.Goals == 2 &&
				req.Feedback == strongGame().Feedback
		})).
		Return("Work on weak-foot finishing.", nil).
		Once()

	rec, err := env.suggestions.Generate(ctx, coachScope(), m.ID, reflectionPlayer)
	if err != nil {
		t.Fatalf("generate suggestions: %v", err)
	}
	if rec.AISuggestions != "Work on weak-foot finishing." {
		t.Fatalf("unexpected suggestions %q", rec.AISuggestions)
	}

	review, err := env.reflections.Review(ctx, playerScope(reflectionUser), m.ID, reflectionPlayer)
	if err != nil {
		t.Fatalf("review: %v", err)
	}
	if review.AISuggestions != nil {
		t.Fatalf("expected suggestions to stay gated, got %q", *review.AISuggestions)
	}
}

func TestSuggestionService_Generate_GeneratorDownUsingMockery(t *testing.T) {
	generator := suggestionmock.NewGenerator(t)
	env, m := newReflectionFixture(t, withGenerator(generator))
	ctx := context.Background()

	generator.
		On("Generate", mock.Anything, mock.Anything).
		Return("", errors.New("circuit breaker is open")).
		Once()

	_, err := env.suggestions.Generate(ctx, coachScope(), m.ID, reflectionPlayer)
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}

	rec, _, err := env.store.MatchStats().Get(ctx, m.ID, reflectionPlayer)
	if err != nil {
		t.Fatalf("get record: %v", err)
	}
	if rec.AISuggestions != "" {
		t.Fatalf("expected no suggestions stored, got %q", rec.AISuggestions)
	}
}

func TestSuggestionService_Generate_NeedsGradedStats(t *testing.T) {
	generator := suggestionmock.NewGenerator(t)
	env, m := newReflectionFixture(t, withGenerator(generator))

	_, err := env.suggestions.Generate(context.Background(), coachScope(), m.ID, "player-09")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSuggestionService_Generate_NotConfigured(t *testing.T) {
	env, m := newReflectionFixture(t)

	_, err := env.suggestions.Generate(context.Background(), coachScope(), m.ID, reflectionPlayer)
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}
