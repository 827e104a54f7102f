package app

import (
	"context"
	"testing"

	"jobboard/internal/common"
	"jobboard/internal/domain/user"
)

func seedUsers(t *testing.T, users *fakeUserRepo) (user.User, user.User) {
	t.Helper()
	first, err := users.Create(context.Background(), user.User{Username: "ana", FirstName: "Ana", Email: "ana@example.com", UserType: user.RoleStudent})
	if err != nil {
		t.Fatalf("expected user created, got %v", err)
	}
	second, err := users.Create(context.Background(), user.User{Username: "acme", FirstName: "Acme", Email: "hr@acme.com", UserType: user.RoleCompany})
	if err != nil {
		t.Fatalf("expected user created, got %v", err)
	}
	return *first, *second
}

func TestUserServiceUpdate_Partial(t *testing.T) {
	users := newFakeUserRepo()
	events := &recordingAnalyticsRepo{}
	service := NewUserService(users, events)
	ana, _ := seedUsers(t, users)

	updated, err := service.Update(context.Background(), ana.ID, UpdateUserInput{LastName: strPtr("Garcia"), Email: strPtr(" ANA@example.com ")})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if updated.LastName != "Garcia" || updated.Username != "ana" || updated.Email != "ana@example.com" {
		t.Fatalf("unexpected user %+v", updated)
	}
	if names := events.names(); len(names) != 1 || names[0] != "user.updated" {
		t.Fatalf("expected user.updated event, got %v", names)
	}
}

func TestUserServiceUpdate_RejectsTakenIdentity(t *testing.T) {
	users := newFakeUserRepo()
	service := NewUserService(users, noopAnalyticsRepo{})
	ana, acme := seedUsers(t, users)

	_, err := service.Update(context.Background(), ana.ID, UpdateUserInput{Username: strPtr(acme.Username), Email: strPtr("not-an-email")})
	appErr, ok := common.As(err)
	if !ok || appErr.Code != common.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if appErr.Fields["username"] == "" || appErr.Fields["email"] == "" {
		t.Fatalf("expected username and email errors, got %v", appErr.Fields)
	}
}

func TestUserServiceDelete(t *testing.T) {
	users := newFakeUserRepo()
	service := NewUserService(users, noopAnalyticsRepo{})
	ana, _ := seedUsers(t, users)
	if err := service.Delete(context.Background(), ana.ID); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if _, err := service.Get(context.Background(), ana.ID); !common.Is(err, common.CodeNotFound) {
		t.Fatalf("expected deleted user to be gone, got %v", err)
	}
}
