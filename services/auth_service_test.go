package services

import (
	"errors"
	"testing"

	"github.com/liyunrui/meal-prep/models"

	"gorm.io/gorm"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	db := openTestDB(t, "authok")
	svc := NewAuthService(db)

	user, err := svc.Register("alice", "alice@x.com", "pw")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.ID == 0 {
		t.Fatal("expected persisted user with an ID")
	}
	if user.Password == "pw" {
		t.Fatal("password stored in plaintext")
	}

	got, err := svc.Authenticate("alice@x.com", "pw")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if got.ID != user.ID {
		t.Fatalf("authenticated wrong user: %+v", got)
	}

	if _, err := svc.Authenticate("alice@x.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for bad password, got %v", err)
	}
	if _, err := svc.Authenticate("nobody@x.com", "pw"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	db := openTestDB(t, "authdup")
	svc := NewAuthService(db)

	if _, err := svc.Register("alice", "alice@x.com", "pw"); err != nil {
		t.Fatalf("first register: %v", err)
	}

	// same username, different email
	_, err := svc.Register("alice", "other@x.com", "pw")
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("expected gorm.ErrDuplicatedKey, got %v", err)
	}

	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		t.Fatalf("count users: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly one user, got %d", count)
	}
}

func TestUsernameAndEmailTaken(t *testing.T) {
	db := openTestDB(t, "authtaken")
	svc := NewAuthService(db)

	if _, err := svc.Register("alice", "alice@x.com", "pw"); err != nil {
		t.Fatalf("register: %v", err)
	}

	taken, err := svc.UsernameTaken("alice")
	if err != nil || !taken {
		t.Fatalf("username should be taken: taken=%v err=%v", taken, err)
	}
	taken, err = svc.EmailTaken("alice@x.com")
	if err != nil || !taken {
		t.Fatalf("email should be taken: taken=%v err=%v", taken, err)
	}
	taken, err = svc.UsernameTaken("bob")
	if err != nil || taken {
		t.Fatalf("username should be free: taken=%v err=%v", taken, err)
	}
}

func TestSetProfileImage(t *testing.T) {
	db := openTestDB(t, "authimage")
	svc := NewAuthService(db)

	user, err := svc.Register("alice", "alice@x.com", "pw")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := svc.SetProfileImage(user.ID, "https://cdn.example.com/p/alice.jpg"); err != nil {
		t.Fatalf("set profile image: %v", err)
	}

	got, err := svc.GetUser(user.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if got.ImageFile != "https://cdn.example.com/p/alice.jpg" {
		t.Fatalf("image file not updated: %q", got.ImageFile)
	}
}
