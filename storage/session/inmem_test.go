package sessionstore

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/colegio-app/colegio/core/session"
)

func Test_InMemStore(t *testing.T) {
	ctx := context.Background()
	store := NewInMemStore()

	sess := session.Session{ID: uuid.NewString(), AdminID: 1, CreatedAt: time.Now().UTC()}
	if err := store.Save(ctx, sess, time.Hour); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	got, err := store.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if got.AdminID != sess.AdminID {
		t.Errorf("Get() admin = %d; want %d", got.AdminID, sess.AdminID)
	}

	if _, err = store.Get(ctx, "no-such-session"); err != session.ErrNotFound {
		t.Errorf("Get() unknown id error = %v; want ErrNotFound", err)
	}

	if err = store.Delete(ctx, sess.ID); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if _, err = store.Get(ctx, sess.ID); err != session.ErrNotFound {
		t.Errorf("Get() after Delete() error = %v; want ErrNotFound", err)
	}

	// deleting twice is a no-op
	if err = store.Delete(ctx, sess.ID); err != nil {
		t.Errorf("Delete() twice failed: %v", err)
	}
}

func Test_InMemStore_Expiry(t *testing.T) {
	ctx := context.Background()
	store := NewInMemStore()

	sess := session.Session{ID: uuid.NewString(), AdminID: 1, CreatedAt: time.Now().UTC()}
	if err := store.Save(ctx, sess, -time.Second); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	if _, err := store.Get(ctx, sess.ID); err != session.ErrNotFound {
		t.Errorf("Get() expired session error = %v; want ErrNotFound", err)
	}
	if _, stale := store.entries[sess.ID]; stale {
		t.Error("Get() left the expired entry in the store")
	}
}
