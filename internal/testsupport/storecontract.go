package testsupport

import (
	"context"
	"reflect"
	"testing"
	"time"

	"gedcompare/internal/gedcom"
	"gedcompare/internal/session"
)

// NewSession builds a session from the LeftTree and RightTree fixtures with a
// fixed id and timestamp.
func NewSession(t testing.TB, id string, at time.Time) session.Session {
	t.Helper()

	left := gedcom.Parse(LeftTree, "left.ged")
	right := gedcom.Parse(RightTree, "right.ged")
	return session.New(left, right,
		session.WithIDGenerator(func() string { return id }),
		session.WithClock(func() time.Time { return at }),
	)
}

// RunStoreContract exercises the behaviour every session.Store must share.
func RunStoreContract(t *testing.T, open func(t *testing.T) session.Store) {
	t.Helper()

	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	t.Run("load missing returns nil", func(t *testing.T) {
		store := open(t)
		got, err := store.Load(context.Background(), "nope")
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if got != nil {
			t.Fatalf("expected nil session, got %+v", got)
		}
	})

	t.Run("round trip preserves snapshots", func(t *testing.T) {
		store := open(t)
		ctx := context.Background()
		sess := NewSession(t, "round-trip", base).Match("I4", "P5")
		if err := store.Save(ctx, sess); err != nil {
			t.Fatalf("Save: %v", err)
		}
		got, err := store.Load(ctx, "round-trip")
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if got == nil {
			t.Fatal("expected session")
		}
		if !reflect.DeepEqual(*got, sess) {
			t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", *got, sess)
		}
	})

	t.Run("save replaces by id", func(t *testing.T) {
		store := open(t)
		ctx := context.Background()
		sess := NewSession(t, "replace", base)
		if err := store.Save(ctx, sess); err != nil {
			t.Fatalf("Save: %v", err)
		}
		edited := sess.Unmatch("I1", "P1")
		if err := store.Save(ctx, edited); err != nil {
			t.Fatalf("Save edited: %v", err)
		}
		all, err := store.List(ctx)
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(all) != 1 {
			t.Fatalf("expected one session, got %d", len(all))
		}
		if all[0].HasPair("I1", "P1") {
			t.Fatal("expected edited match set to be stored")
		}
	})

	t.Run("list orders by timestamp", func(t *testing.T) {
		store := open(t)
		ctx := context.Background()
		for _, sess := range []session.Session{
			NewSession(t, "late", base.Add(2*time.Hour)),
			NewSession(t, "early", base),
			NewSession(t, "middle", base.Add(time.Hour)),
		} {
			if err := store.Save(ctx, sess); err != nil {
				t.Fatalf("Save %s: %v", sess.ID, err)
			}
		}
		all, err := store.List(ctx)
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		got := make([]string, 0, len(all))
		for _, sess := range all {
			got = append(got, sess.ID)
		}
		if !reflect.DeepEqual(got, []string{"early", "middle", "late"}) {
			t.Fatalf("List order = %v", got)
		}
	})

	t.Run("delete removes only the id", func(t *testing.T) {
		store := open(t)
		ctx := context.Background()
		for _, id := range []string{"keep", "drop"} {
			if err := store.Save(ctx, NewSession(t, id, base)); err != nil {
				t.Fatalf("Save %s: %v", id, err)
			}
		}
		if err := store.Delete(ctx, "drop"); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		if err := store.Delete(ctx, "never-existed"); err != nil {
			t.Fatalf("Delete unknown: %v", err)
		}
		all, err := store.List(ctx)
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(all) != 1 || all[0].ID != "keep" {
			t.Fatalf("unexpected sessions after delete: %+v", all)
		}
	})

	t.Run("empty store lists nothing", func(t *testing.T) {
		store := open(t)
		all, err := store.List(context.Background())
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if all == nil || len(all) != 0 {
			t.Fatalf("expected empty non-nil list, got %#v", all)
		}
	})
}
