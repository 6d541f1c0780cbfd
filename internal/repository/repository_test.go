package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"gorm.io/gorm"

	"gopherblog/internal/model"
	"gopherblog/internal/platform/sqlite"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := sqlite.New(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func createUser(t *testing.T, repo *UserRepository, name string) *model.User {
	t.Helper()
	user := &model.User{Username: name, PasswordHash: "hash"}
	if err := repo.Create(user); err != nil {
		t.Fatalf("create user %s: %v", name, err)
	}
	return user
}

func TestUserRepository(t *testing.T) {
	users := NewUserRepository(newTestDB(t))
	alice := createUser(t, users, "alice")

	got, err := users.GetByUsername("alice")
	if err != nil || got == nil || got.ID != alice.ID {
		t.Fatalf("GetByUsername = %+v, %v", got, err)
	}
	if got, err := users.GetByUsername("Alice"); err != nil || got != nil {
		t.Fatalf("lookup should be case-sensitive, got %+v, %v", got, err)
	}
	if got, err := users.GetByID(999); err != nil || got != nil {
		t.Fatalf("GetByID(missing) = %+v, %v", got, err)
	}

	err = users.Create(&model.User{Username: "alice", PasswordHash: "x"})
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("duplicate username err = %v, want ErrDuplicate", err)
	}
	if n, _ := users.Count(); n != 1 {
		t.Fatalf("user count = %d, want 1", n)
	}
}

func TestPostRepository(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	posts := NewPostRepository(db)
	alice := createUser(t, users, "alice")

	first := &model.Post{Title: "Hello", Body: "body", AuthorID: alice.ID}
	if err := posts.Create(first); err != nil {
		t.Fatalf("create post: %v", err)
	}
	if first.ID == 0 || first.CreatedAt.IsZero() {
		t.Fatalf("post not populated after create: %+v", first)
	}

	dup := &model.Post{Title: "Hello", Body: "other", AuthorID: alice.ID}
	if err := posts.Create(dup); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("duplicate title err = %v, want ErrDuplicate", err)
	}

	got, err := posts.GetByID(first.ID)
	if err != nil || got == nil {
		t.Fatalf("GetByID = %+v, %v", got, err)
	}
	if got.Author.Username != "alice" {
		t.Fatalf("author not preloaded: %+v", got.Author)
	}

	if err := posts.UpdateContent(first.ID, "Hello again", "new body"); err != nil {
		t.Fatalf("update: %v", err)
	}
	updated, _ := posts.GetByID(first.ID)
	if updated.Title != "Hello again" || updated.Body != "new body" {
		t.Fatalf("update not applied: %+v", updated)
	}
	if !updated.CreatedAt.Equal(got.CreatedAt) {
		t.Fatalf("created_at changed from %v to %v", got.CreatedAt, updated.CreatedAt)
	}

	list, err := posts.ListByAuthorID(alice.ID)
	if err != nil || len(list) != 1 {
		t.Fatalf("ListByAuthorID = %d posts, %v", len(list), err)
	}

	if err := posts.Delete(first.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got, err := posts.GetByID(first.ID); err != nil || got != nil {
		t.Fatalf("post still present after delete: %+v, %v", got, err)
	}
}

func TestPostRequiresExistingAuthor(t *testing.T) {
	posts := NewPostRepository(newTestDB(t))
	if err := posts.Create(&model.Post{Title: "Orphan", Body: "b", AuthorID: 42}); err == nil {
		t.Fatal("expected foreign key violation for unknown author")
	}
}
