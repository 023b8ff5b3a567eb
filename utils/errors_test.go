package utils

import (
	"errors"
	"testing"

	"gorm.io/gorm"
)

func TestUserErrorMessageCodePriority(t *testing.T) {
	err := &StoreError{Code: "23505", Message: "duplicate key value violates unique constraint"}
	if got := UserErrorMessage(err); got != "Un producteur avec cet email existe déjà." {
		t.Errorf("got %q", got)
	}
}

func TestUserErrorMessageKnownMessage(t *testing.T) {
	if got := UserErrorMessage(errors.New("JWT expired")); got != "Session expirée. Veuillez vous reconnecter." {
		t.Errorf("got %q", got)
	}
}

func TestUserErrorMessageDuplicateKeySniffing(t *testing.T) {
	cases := []error{
		errors.New(`duplicate key value violates unique constraint "users_email_key"`),
		errors.New("UNIQUE constraint failed: users.email"),
		gorm.ErrDuplicatedKey,
	}
	for _, err := range cases {
		if got := UserErrorMessage(err); got != "Un producteur avec cet email existe déjà." {
			t.Errorf("UserErrorMessage(%v) = %q", err, got)
		}
	}
}

func TestUserErrorMessageFallsBackToRaw(t *testing.T) {
	if got := UserErrorMessage(errors.New("quelque chose d'inattendu")); got != "quelque chose d'inattendu" {
		t.Errorf("got %q", got)
	}
	if got := UserErrorMessage(nil); got != "" {
		t.Errorf("nil error should map to empty string, got %q", got)
	}
}

func TestIsRecoverableWriteError(t *testing.T) {
	recoverable := []error{
		&StoreError{Code: "PGRST116"},
		errors.New("PGRST116: JSON object requested, multiple (or no) rows returned"),
		errors.New("Cannot coerce the result to a single JSON object"),
	}
	for _, err := range recoverable {
		if !IsRecoverableWriteError(err) {
			t.Errorf("%v should be recoverable", err)
		}
	}

	if IsRecoverableWriteError(nil) {
		t.Error("nil is not recoverable")
	}
	if IsRecoverableWriteError(errors.New("connection refused")) {
		t.Error("network failures are not recoverable writes")
	}
	if IsRecoverableWriteError(&StoreError{Code: "23505"}) {
		t.Error("duplicate key is not a recoverable write")
	}
}
