package common

import (
	"context"
	"testing"
)

func TestUserContext_RoundTrip(t *testing.T) {
	ctx := context.Background()

	// Absent by default
	if uc := UserContextFromContext(ctx); uc != nil {
		t.Error("Expected nil UserContext from empty context")
	}

	ctx = WithUserContext(ctx, &UserContext{UserID: "user-123", DisplayCurrency: "EUR"})

	got := UserContextFromContext(ctx)
	if got == nil {
		t.Fatal("Expected non-nil UserContext")
	}
	if got.UserID != "user-123" {
		t.Errorf("Expected user-123, got %s", got.UserID)
	}
	if got.DisplayCurrency != "EUR" {
		t.Errorf("Expected EUR, got %s", got.DisplayCurrency)
	}
}

func TestResolveUserID(t *testing.T) {
	if got := ResolveUserID(context.Background()); got != DefaultUserID {
		t.Errorf("Expected %q, got %q", DefaultUserID, got)
	}

	ctx := WithUserContext(context.Background(), &UserContext{})
	if got := ResolveUserID(ctx); got != DefaultUserID {
		t.Errorf("Expected %q for empty UserID, got %q", DefaultUserID, got)
	}

	ctx = WithUserContext(context.Background(), &UserContext{UserID: "alice"})
	if got := ResolveUserID(ctx); got != "alice" {
		t.Errorf("Expected alice, got %q", got)
	}
}

func TestResolveDisplayCurrency(t *testing.T) {
	if got := ResolveDisplayCurrency(context.Background(), "USD"); got != "USD" {
		t.Errorf("Expected fallback USD, got %s", got)
	}

	ctx := WithUserContext(context.Background(), &UserContext{DisplayCurrency: "GBP"})
	if got := ResolveDisplayCurrency(ctx, "USD"); got != "GBP" {
		t.Errorf("Expected GBP, got %s", got)
	}
}
