package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/avoronin/tasktracker/internal/repository"
)

func validRegisterParams() RegisterParams {
	return RegisterParams{
		FirstName:       "Ann",
		Phone:           "+1000",
		Login:           "ann",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	}
}

func newTestAuthService(t *testing.T, users repository.UserRepository) AuthService {
	t.Helper()
	tokens := newTestTokenService(t, "test-signing-key", time.Hour)
	return NewAuthService(zerolog.Nop(), users, tokens)
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("valid registration", func(t *testing.T) {
		users := newMemUserRepo()
		svc := newTestAuthService(t, users)

		result, err := svc.Register(ctx, validRegisterParams())
		if err != nil {
			t.Fatalf("Register failed: %v", err)
		}
		if result.Token == "" {
			t.Error("expected a token")
		}
		if result.User.ID == "" {
			t.Error("expected a generated user id")
		}
		if result.User.Password != "" {
			t.Error("result must not carry the password hash")
		}

		byLogin, err := users.FindByLogin(ctx, "ann")
		if err != nil {
			t.Fatalf("FindByLogin failed: %v", err)
		}
		if byLogin.ID != result.User.ID {
			t.Errorf("lookup by login returned user %q, want %q", byLogin.ID, result.User.ID)
		}
		if byLogin.Password == "secret1" {
			t.Error("stored credential equals the plaintext password")
		}
		if byLogin.Password == "" {
			t.Error("stored credential is empty")
		}

		byID, err := users.FindByID(ctx, result.User.ID)
		if err != nil {
			t.Fatalf("FindByID failed: %v", err)
		}
		if byID.Login != "ann" {
			t.Errorf("lookup by id returned login %q, want ann", byID.Login)
		}
	})

	t.Run("validation order", func(t *testing.T) {
		users := newMemUserRepo()
		svc := newTestAuthService(t, users)

		missing := validRegisterParams()
		missing.Login = ""
		if _, err := svc.Register(ctx, missing); !errors.Is(err, ErrMissingFields) {
			t.Errorf("expected ErrMissingFields, got %v", err)
		}

		// A short password that also mismatches its confirmation must
		// report the length error first.
		short := validRegisterParams()
		short.Password = "abc"
		short.ConfirmPassword = "xyz"
		if _, err := svc.Register(ctx, short); !errors.Is(err, ErrPasswordTooShort) {
			t.Errorf("expected ErrPasswordTooShort, got %v", err)
		}

		mismatch := validRegisterParams()
		mismatch.ConfirmPassword = "secret2"
		if _, err := svc.Register(ctx, mismatch); !errors.Is(err, ErrPasswordMismatch) {
			t.Errorf("expected ErrPasswordMismatch, got %v", err)
		}
	})

	t.Run("duplicate login", func(t *testing.T) {
		users := newMemUserRepo()
		svc := newTestAuthService(t, users)

		if _, err := svc.Register(ctx, validRegisterParams()); err != nil {
			t.Fatalf("Register failed: %v", err)
		}

		dup := validRegisterParams()
		dup.Phone = "+2000"
		if _, err := svc.Register(ctx, dup); !errors.Is(err, ErrDuplicateLogin) {
			t.Errorf("expected ErrDuplicateLogin, got %v", err)
		}
	})

	t.Run("duplicate phone", func(t *testing.T) {
		users := newMemUserRepo()
		svc := newTestAuthService(t, users)

		if _, err := svc.Register(ctx, validRegisterParams()); err != nil {
			t.Fatalf("Register failed: %v", err)
		}

		dup := validRegisterParams()
		dup.Login = "bob"
		if _, err := svc.Register(ctx, dup); !errors.Is(err, ErrDuplicatePhone) {
			t.Errorf("expected ErrDuplicatePhone, got %v", err)
		}
	})

	t.Run("insert conflict after passing pre-check", func(t *testing.T) {
		users := newMemUserRepo()
		users.createErr = repository.ErrDuplicateLogin
		svc := newTestAuthService(t, users)

		// The pre-check sees no duplicates; the storage constraint
		// still rejects the insert and must win.
		_, err := svc.Register(ctx, validRegisterParams())
		if !errors.Is(err, ErrDuplicateLogin) {
			t.Errorf("expected ErrDuplicateLogin, got %v", err)
		}
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	users := newMemUserRepo()
	svc := newTestAuthService(t, users)
	if _, err := svc.Register(ctx, validRegisterParams()); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	t.Run("valid credentials", func(t *testing.T) {
		result, err := svc.Login(ctx, LoginParams{Login: "ann", Password: "secret1"})
		if err != nil {
			t.Fatalf("Login failed: %v", err)
		}
		if result.Token == "" {
			t.Error("expected a token")
		}
		if result.User.Password != "" {
			t.Error("result must not carry the password hash")
		}
	})

	t.Run("wrong password and unknown login are indistinguishable", func(t *testing.T) {
		_, wrongPassErr := svc.Login(ctx, LoginParams{Login: "ann", Password: "wrong-pass"})
		if !errors.Is(wrongPassErr, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", wrongPassErr)
		}

		_, noUserErr := svc.Login(ctx, LoginParams{Login: "nobody", Password: "secret1"})
		if !errors.Is(noUserErr, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials for unknown login, got %v", noUserErr)
		}

		if wrongPassErr.Error() != noUserErr.Error() {
			t.Errorf("login failure messages differ: %q vs %q",
				wrongPassErr.Error(), noUserErr.Error())
		}
	})

	t.Run("missing credentials", func(t *testing.T) {
		_, err := svc.Login(ctx, LoginParams{Login: "ann"})
		if !errors.Is(err, ErrMissingFields) {
			t.Errorf("expected ErrMissingFields, got %v", err)
		}
	})
}
