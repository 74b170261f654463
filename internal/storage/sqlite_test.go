package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/hyperjump/wordsim/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStorage {
	t.Helper()
	store, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "nested", "journal.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func sampleRun(id string, at time.Time) *models.Run {
	return &models.Run{
		ID:         id,
		ModelPath:  "/models/vectors.txt",
		VocabSize:  4,
		Dimensions: 2,
		CreatedAt:  at,
		QueryTime:  3,
		Results: []*models.Result{
			{Pair: models.Pair{A: "king", B: "queen", Kind: models.KindSimilarity, Description: "king and queen!"}, Value: 0.9938},
			{Pair: models.Pair{A: "king", B: "prince", Kind: models.KindSimilarity}, Error: `unknown token "prince"`},
			{Pair: models.Pair{A: "king", B: "laugh", Kind: models.KindDistance}, Value: 1.196},
		},
	}
}

func TestSQLiteStorage_SaveGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	run := sampleRun("run-1", time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	if err := store.SaveRun(ctx, run); err != nil {
		t.Fatal(err)
	}

	got, err := store.GetRun(ctx, "run-1")
	if err != nil {
		t.Fatal(err)
	}
	if got.ModelPath != run.ModelPath || got.VocabSize != 4 || got.Dimensions != 2 || got.QueryTime != 3 {
		t.Errorf("run fields: %+v", got)
	}
	if !got.CreatedAt.Equal(run.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, run.CreatedAt)
	}
	if len(got.Results) != 3 || got.ResultCount != 3 {
		t.Fatalf("results: %d (count %d)", len(got.Results), got.ResultCount)
	}
	first := got.Results[0]
	if first.Pair.Label() != "king and queen!" || first.Value != 0.9938 || !first.OK() {
		t.Errorf("first result: %+v", first)
	}
	second := got.Results[1]
	if second.OK() || second.Error != `unknown token "prince"` {
		t.Errorf("failed result not preserved: %+v", second)
	}
	if got.Results[2].Pair.Kind != models.KindDistance {
		t.Errorf("kind = %q", got.Results[2].Pair.Kind)
	}
}

func TestSQLiteStorage_ListDeleteCount(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	for i, id := range []string{"old", "mid", "new"} {
		if err := store.SaveRun(ctx, sampleRun(id, base.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatal(err)
		}
	}

	runs, err := store.ListRuns(ctx, 0, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 || runs[0].ID != "new" || runs[1].ID != "mid" {
		t.Fatalf("ListRuns order: %v", runIDs(runs))
	}
	if runs[0].ResultCount != 3 || runs[0].Results != nil {
		t.Errorf("listing should carry counts only: %+v", runs[0])
	}
	runs, _ = store.ListRuns(ctx, 2, 10)
	if len(runs) != 1 || runs[0].ID != "old" {
		t.Errorf("offset listing: %v", runIDs(runs))
	}

	n, err := store.CountRuns(ctx)
	if err != nil || n != 3 {
		t.Errorf("CountRuns: %v, %d", err, n)
	}

	if err := store.DeleteRun(ctx, "mid"); err != nil {
		t.Fatal(err)
	}
	if _, err := store.GetRun(ctx, "mid"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	var orphans int
	if err := store.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM run_results WHERE run_id = ?`, "mid").Scan(&orphans); err != nil {
		t.Fatal(err)
	}
	if orphans != 0 {
		t.Errorf("results should cascade on delete, %d left", orphans)
	}
	if err := store.DeleteRun(ctx, "mid"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete: expected ErrNotFound, got %v", err)
	}
}

func TestSQLiteStorage_duplicateIDRollsBack(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	run := sampleRun("dup", time.Now())
	if err := store.SaveRun(ctx, run); err != nil {
		t.Fatal(err)
	}
	if err := store.SaveRun(ctx, run); err == nil {
		t.Fatal("expected error saving the same run twice")
	}
	got, err := store.GetRun(ctx, "dup")
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Results) != 3 {
		t.Errorf("failed save must not add results, got %d", len(got.Results))
	}
}

func runIDs(runs []*models.Run) []string {
	ids := make([]string, len(runs))
	for i, r := range runs {
		ids[i] = r.ID
	}
	return ids
}
