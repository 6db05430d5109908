package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"eqwip/internal/domain/career"
	"eqwip/internal/infrastructure/cache"
	"eqwip/internal/repository"

	"github.com/google/uuid"
)

func TestCareerGoal_ListWithoutProfileIsEmpty(t *testing.T) {
	uc := NewCareerGoalUsecase(&stubCandidateRepo{goalErr: repository.ErrCandidateNotFound}, nil, nil)

	goals, err := uc.ListGoals(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(goals) != 0 {
		t.Fatalf("expected empty list, got %d goals", len(goals))
	}
}

func TestCareerGoal_ListComputesProgress(t *testing.T) {
	prefs := []byte(`{"careerGoals":[{"id":"g1","title":"Become a backend engineer","requiredSkills":["python","docker"],"milestones":[{"id":"m1","title":"Course","done":true},{"id":"m2","title":"Project","done":false}]}]}`)
	repo := &stubCandidateRepo{goalInputs: repository.CandidateGoalInputs{
		CandidateID: uuid.New(),
		Preferences: prefs,
		Skills:      []repository.CandidateSkill{{Name: "Python", Level: 4}, {Name: "Docker", Level: 1}},
	}}
	uc := NewCareerGoalUsecase(repo, nil, nil)

	goals, err := uc.ListGoals(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(goals) != 1 {
		t.Fatalf("expected 1 goal, got %d", len(goals))
	}
	if goals[0].Progress != 50 {
		t.Fatalf("expected progress 50, got %d", goals[0].Progress)
	}
}

func TestCareerGoal_SaveWithoutProfileFails(t *testing.T) {
	uc := NewCareerGoalUsecase(&stubCandidateRepo{goalErr: repository.ErrCandidateNotFound}, nil, nil)

	_, err := uc.SaveGoals(context.Background(), uuid.New(), []career.Goal{{ID: "g1", Title: "Goal"}})
	if !errors.Is(err, ErrCandidateProfileNotFound) {
		t.Fatalf("expected ErrCandidateProfileNotFound, got %v", err)
	}
}

func TestCareerGoal_SavePreservesOtherPreferenceKeys(t *testing.T) {
	repo := &stubCandidateRepo{goalInputs: repository.CandidateGoalInputs{
		CandidateID: uuid.New(),
		Preferences: []byte(`{"theme":"dark","careerGoals":[]}`),
	}}
	uc := NewCareerGoalUsecase(repo, nil, nil)

	goals, err := uc.SaveGoals(context.Background(), uuid.New(), []career.Goal{
		{ID: "g1", Title: "Lead a team", TargetLevel: "lead"},
		{ID: "", Title: "dropped"},
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(goals) != 1 {
		t.Fatalf("expected the invalid goal dropped, got %d goals", len(goals))
	}
	if goals[0].TargetLevel != career.TargetLead {
		t.Fatalf("expected target level normalized to LEAD, got %q", goals[0].TargetLevel)
	}
	if repo.writtenTo != repo.goalInputs.CandidateID {
		t.Fatalf("preferences written to the wrong profile")
	}

	var blob map[string]json.RawMessage
	if err := json.Unmarshal(repo.writtenPrefs, &blob); err != nil {
		t.Fatalf("written preferences are not valid JSON: %v", err)
	}
	if string(blob["theme"]) != `"dark"` {
		t.Fatalf("unrelated preference key lost: %s", blob["theme"])
	}
	var stored []career.Goal
	if err := json.Unmarshal(blob["careerGoals"], &stored); err != nil || len(stored) != 1 {
		t.Fatalf("stored goals malformed: %v %d", err, len(stored))
	}
	if stored[0].CreatedAt == "" || stored[0].UpdatedAt == "" {
		t.Fatalf("expected timestamps stamped on save")
	}
}

func TestCareerGoal_SaveInvalidatesCachedRankings(t *testing.T) {
	repo := &stubCandidateRepo{goalInputs: repository.CandidateGoalInputs{
		CandidateID: uuid.New(),
		Preferences: []byte(`{}`),
	}}
	c := &stubCache{store: map[string][]byte{
		cache.CandidateRecommendationKeyPrefix + uuid.NewString() + ":10": []byte(`[]`),
	}}
	uc := NewCareerGoalUsecase(repo, c, nil)

	if _, err := uc.SaveGoals(context.Background(), uuid.New(), []career.Goal{{ID: "g1", Title: "Goal"}}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(c.invalidated) != 1 || c.invalidated[0] != "" {
		t.Fatalf("expected one everything-stale invalidation, got %v", c.invalidated)
	}
	if len(c.store) != 0 {
		t.Fatalf("expected cached rankings dropped on save")
	}
}
