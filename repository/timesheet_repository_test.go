package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/yusufkaramustafa/Timesheet-App/models"
	"github.com/yusufkaramustafa/Timesheet-App/repository"
	"github.com/yusufkaramustafa/Timesheet-App/testutil"
	"github.com/yusufkaramustafa/Timesheet-App/validation"
)

func validated(t *testing.T, date, project string, hours float64, description string) *validation.ValidatedTimesheet {
	t.Helper()
	v, err := validation.ValidateTimesheet(validation.TimesheetInput{
		Date:        date,
		Project:     project,
		Hours:       hours,
		Description: &description,
	})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	return v
}

func TestTimesheetRepository_CreateAndGet(t *testing.T) {
	db := testutil.OpenTestDB(t)
	owner := testutil.CreateUser(t, db, "alice", "pw", models.RoleEmployee)
	repo := repository.NewTimesheetRepository(db)
	ctx := context.Background()

	ts, err := repo.Create(ctx, owner.ID, validated(t, "2024-03-04", "Firma A", 4, "design review"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if ts.ID == 0 || ts.UserID != owner.ID || ts.Hours != 4 {
		t.Fatalf("unexpected created record: %+v", ts)
	}
	if ts.CreatedAt.IsZero() {
		t.Fatalf("created_at not set")
	}

	got, err := repo.Get(ctx, ts.ID, owner.ID)
	if err != nil || got == nil {
		t.Fatalf("get: %v %v", got, err)
	}
	if got.Project != "Firma A" || got.Description != "design review" ||
		got.Date.Format(models.DateLayout) != "2024-03-04" {
		t.Fatalf("round-trip mismatch: %+v", got)
	}
}

func TestTimesheetRepository_OwnerScoping(t *testing.T) {
	db := testutil.OpenTestDB(t)
	alice := testutil.CreateUser(t, db, "alice", "pw", models.RoleEmployee)
	bob := testutil.CreateUser(t, db, "bob", "pw", models.RoleEmployee)
	repo := repository.NewTimesheetRepository(db)
	ctx := context.Background()

	ts, err := repo.Create(ctx, alice.ID, validated(t, "2024-03-04", "Internal", 2, "standup"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Bob cannot see, update or delete Alice's row.
	if got, err := repo.Get(ctx, ts.ID, bob.ID); err != nil || got != nil {
		t.Fatalf("expected cross-owner get to miss, got %+v err=%v", got, err)
	}
	if got, err := repo.Update(ctx, ts.ID, bob.ID, map[string]interface{}{"hours": 8.0}); err != nil || got != nil {
		t.Fatalf("expected cross-owner update to miss, got %+v err=%v", got, err)
	}
	if deleted, err := repo.Delete(ctx, ts.ID, bob.ID); err != nil || deleted {
		t.Fatalf("expected cross-owner delete to miss, got %v err=%v", deleted, err)
	}

	// The row is untouched.
	got, err := repo.Get(ctx, ts.ID, alice.ID)
	if err != nil || got == nil || got.Hours != 2 {
		t.Fatalf("row should be untouched: %+v err=%v", got, err)
	}
}

func TestTimesheetRepository_ListByOwnerOrdering(t *testing.T) {
	db := testutil.OpenTestDB(t)
	owner := testutil.CreateUser(t, db, "alice", "pw", models.RoleEmployee)
	other := testutil.CreateUser(t, db, "bob", "pw", models.RoleEmployee)
	repo := repository.NewTimesheetRepository(db)
	ctx := context.Background()

	for _, date := range []string{"2024-03-04", "2024-03-06", "2024-03-05"} {
		if _, err := repo.Create(ctx, owner.ID, validated(t, date, "Internal", 3, "work")); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	if _, err := repo.Create(ctx, other.ID, validated(t, "2024-03-07", "Internal", 3, "work")); err != nil {
		t.Fatalf("create: %v", err)
	}

	list, err := repo.ListByOwner(ctx, owner.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(list))
	}
	want := []string{"2024-03-06", "2024-03-05", "2024-03-04"}
	for i, ts := range list {
		if ts.Date.Format(models.DateLayout) != want[i] {
			t.Fatalf("wrong order at %d: %s", i, ts.Date.Format(models.DateLayout))
		}
	}
}

func TestTimesheetRepository_Update(t *testing.T) {
	db := testutil.OpenTestDB(t)
	owner := testutil.CreateUser(t, db, "alice", "pw", models.RoleEmployee)
	repo := repository.NewTimesheetRepository(db)
	ctx := context.Background()

	ts, err := repo.Create(ctx, owner.ID, validated(t, "2024-03-04", "Firma A", 4, "before"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.Update(ctx, ts.ID, owner.ID, map[string]interface{}{
		"hours":       6.5,
		"description": "after",
	})
	if err != nil || got == nil {
		t.Fatalf("update: %v %v", got, err)
	}
	if got.Hours != 6.5 || got.Description != "after" {
		t.Fatalf("fields not updated: %+v", got)
	}
	// Untouched fields keep their prior value.
	if got.Project != "Firma A" || got.Date.Format(models.DateLayout) != "2024-03-04" {
		t.Fatalf("untouched fields changed: %+v", got)
	}
}

func TestTimesheetRepository_DeleteIdempotence(t *testing.T) {
	db := testutil.OpenTestDB(t)
	owner := testutil.CreateUser(t, db, "alice", "pw", models.RoleEmployee)
	repo := repository.NewTimesheetRepository(db)
	ctx := context.Background()

	ts, err := repo.Create(ctx, owner.ID, validated(t, "2024-03-04", "Internal", 4, "x"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	deleted, err := repo.Delete(ctx, ts.ID, owner.ID)
	if err != nil || !deleted {
		t.Fatalf("first delete: %v %v", deleted, err)
	}
	deleted, err = repo.Delete(ctx, ts.ID, owner.ID)
	if err != nil || deleted {
		t.Fatalf("second delete should miss cleanly: %v %v", deleted, err)
	}
	deleted, err = repo.Delete(ctx, 99999, owner.ID)
	if err != nil || deleted {
		t.Fatalf("deleting unknown id should miss cleanly: %v %v", deleted, err)
	}
}

func TestTimesheetRepository_ListSince(t *testing.T) {
	db := testutil.OpenTestDB(t)
	owner := testutil.CreateUser(t, db, "alice", "pw", models.RoleEmployee)
	repo := repository.NewTimesheetRepository(db)
	ctx := context.Background()

	for _, date := range []string{"2024-03-03", "2024-03-04", "2024-03-10"} {
		if _, err := repo.Create(ctx, owner.ID, validated(t, date, "Internal", 2, "x")); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	start := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	list, err := repo.ListSince(ctx, start)
	if err != nil {
		t.Fatalf("list since: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 rows on/after start, got %d", len(list))
	}
	for _, ts := range list {
		if ts.Date.Before(start) {
			t.Fatalf("row before start leaked: %v", ts.Date)
		}
	}
}

func TestTimesheetRepository_ListForExport(t *testing.T) {
	db := testutil.OpenTestDB(t)
	owner := testutil.CreateUser(t, db, "alice", "pw", models.RoleEmployee)
	repo := repository.NewTimesheetRepository(db)
	ctx := context.Background()

	for _, date := range []string{"2024-03-10", "2024-03-01", "2024-03-05"} {
		if _, err := repo.Create(ctx, owner.ID, validated(t, date, "Internal", 2, "x")); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	list, err := repo.ListForExport(ctx, owner.ID, &from, &to)
	if err != nil {
		t.Fatalf("list for export: %v", err)
	}
	// Closed interval, ascending order.
	if len(list) != 2 {
		t.Fatalf("expected 2 rows in range, got %d", len(list))
	}
	if list[0].Date.After(list[1].Date) {
		t.Fatalf("not ascending: %v %v", list[0].Date, list[1].Date)
	}

	// Unbounded range returns everything.
	all, err := repo.ListForExport(ctx, owner.ID, nil, nil)
	if err != nil || len(all) != 3 {
		t.Fatalf("unbounded export: %d err=%v", len(all), err)
	}
}
