package sqlite

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/databridge-io/databridge/internal/domain"
)

func TestUserRoundTripAndLookupByLogin(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewUserRepository(db)

	created, err := repo.Create(ctx, domain.UserCommand{
		Login:     "jdoe",
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@example.com",
		Language:  "en",
		Timezone:  "Europe/Vilnius",
	}, "hash-1")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if created.ID == "" || created.PasswordHash != "hash-1" {
		t.Fatalf("unexpected created user: %+v", created)
	}

	byLogin, err := repo.GetByLogin(ctx, "jdoe")
	if err != nil {
		t.Fatalf("get by login: %v", err)
	}
	if byLogin != created {
		t.Fatalf("lookup by login mismatch: got %+v want %+v", byLogin, created)
	}

	if _, err := repo.GetByLogin(ctx, "nobody"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown login, got %v", err)
	}
}

func TestUserUpdatePreservesPasswordHash(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewUserRepository(db)

	created, err := repo.Create(ctx, domain.UserCommand{Login: "operator", Email: "op@example.com"}, "hash-before")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	err = repo.Update(ctx, created.ID, domain.UserCommand{
		Login:    "operator2",
		Email:    "op2@example.com",
		Language: "fr",
	})
	if err != nil {
		t.Fatalf("update user: %v", err)
	}

	got, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if got.Login != "operator2" || got.Email != "op2@example.com" || got.Language != "fr" {
		t.Fatalf("unexpected user after update: %+v", got)
	}
	if got.PasswordHash != "hash-before" {
		t.Fatalf("profile update must not touch the hash, got %q", got.PasswordHash)
	}

	if err := repo.UpdatePassword(ctx, created.ID, "hash-after"); err != nil {
		t.Fatalf("update password: %v", err)
	}
	got, err = repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if got.PasswordHash != "hash-after" {
		t.Fatalf("expected rotated hash, got %q", got.PasswordHash)
	}
	if got.Login != "operator2" {
		t.Fatalf("password rotation must not touch the profile, got login %q", got.Login)
	}
}

func TestUserSearchFiltersAndPaginates(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewUserRepository(db)

	for i := 0; i < domain.PageSize+10; i++ {
		login := fmt.Sprintf("tech-%03d", i)
		if i%3 == 0 {
			login = fmt.Sprintf("admin-%03d", i)
		}
		if _, err := repo.Create(ctx, domain.UserCommand{Login: login}, "h"); err != nil {
			t.Fatalf("create user %d: %v", i, err)
		}
	}

	all, err := repo.Search(ctx, "", 0)
	if err != nil {
		t.Fatalf("search all: %v", err)
	}
	if all.TotalElements != domain.PageSize+10 || all.TotalPages != 2 {
		t.Fatalf("unexpected totals: %+v", all)
	}
	if len(all.Content) != domain.PageSize {
		t.Fatalf("expected a full first page, got %d", len(all.Content))
	}

	second, err := repo.Search(ctx, "", 1)
	if err != nil {
		t.Fatalf("search page 1: %v", err)
	}
	if len(second.Content) != 10 || second.Number != 1 {
		t.Fatalf("unexpected second page: %+v", second)
	}

	admins, err := repo.Search(ctx, "admin-", 0)
	if err != nil {
		t.Fatalf("search admins: %v", err)
	}
	if admins.TotalElements != 20 {
		t.Fatalf("expected 20 admin logins, got %d", admins.TotalElements)
	}
	for _, u := range admins.Content {
		if u.Login[:6] != "admin-" {
			t.Fatalf("filter leaked login %q", u.Login)
		}
	}
}

func TestUserDelete(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewUserRepository(db)

	created, err := repo.Create(ctx, domain.UserCommand{Login: "temp"}, "h")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if err := repo.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}
	if _, err := repo.GetByID(ctx, created.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}
