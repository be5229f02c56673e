package account

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/waypointhq/waypoint-cli/internal/models"
)

type fakeEntitlementStore struct {
	sub models.Subscription
}

func (f *fakeEntitlementStore) GetSubscription() (models.Subscription, error) {
	return f.sub, nil
}

func (f *fakeEntitlementStore) SaveSubscription(sub models.Subscription) error {
	f.sub = sub
	return nil
}

func stubKeyring(t *testing.T) {
	t.Helper()
	oldSet, oldDelete := setTokenFunc, deleteTokenFunc
	t.Cleanup(func() {
		setTokenFunc, deleteTokenFunc = oldSet, oldDelete
	})
	setTokenFunc = func(token string) error { return nil }
	deleteTokenFunc = func() error { return nil }
}

func TestSessionDefaultsToGuest(t *testing.T) {
	m := NewManager(t.TempDir(), &fakeEntitlementStore{})
	s := m.Session()
	if !s.Guest || s.Registered() {
		t.Errorf("Session() = %+v, want guest", s)
	}
}

func TestLoginLogoutRoundtrip(t *testing.T) {
	stubKeyring(t)
	dir := t.TempDir()
	m := NewManager(dir, &fakeEntitlementStore{})

	if err := m.Login("user-1", "u@example.com", "token-abc"); err != nil {
		t.Fatalf("Login() failed: %v", err)
	}

	s := m.Session()
	if s.Guest || s.UserID != "user-1" || s.Email != "u@example.com" {
		t.Errorf("Session() after login = %+v", s)
	}
	if !s.Registered() {
		t.Error("session should be registered after login")
	}

	if err := m.Logout(); err != nil {
		t.Fatalf("Logout() failed: %v", err)
	}
	if s := m.Session(); !s.Guest {
		t.Errorf("Session() after logout = %+v, want guest", s)
	}

	// Logout is idempotent.
	if err := m.Logout(); err != nil {
		t.Errorf("second Logout() failed: %v", err)
	}
}

func TestLoginRejectsEmptyUserID(t *testing.T) {
	stubKeyring(t)
	m := NewManager(t.TempDir(), &fakeEntitlementStore{})
	if err := m.Login("  ", "u@example.com", "token"); err == nil {
		t.Error("Login() with blank user id should fail")
	}
}

func TestSessionToleratesMalformedFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, sessionFileName), []byte("{broken"), 0600); err != nil {
		t.Fatal(err)
	}
	m := NewManager(dir, &fakeEntitlementStore{})
	if s := m.Session(); !s.Guest {
		t.Errorf("Session() with corrupt file = %+v, want guest", s)
	}
}

func TestHasPremium(t *testing.T) {
	store := &fakeEntitlementStore{}
	m := NewManager(t.TempDir(), store)

	if m.HasPremium("user-1") {
		t.Error("HasPremium() should be false without entitlement")
	}
	if m.HasPremium("") {
		t.Error("HasPremium(\"\") should always be false")
	}

	if err := m.SetEntitlement(models.Subscription{Premium: true, Tier: "pro", Source: "stripe"}); err != nil {
		t.Fatalf("SetEntitlement() failed: %v", err)
	}
	if !m.HasPremium("user-1") {
		t.Error("HasPremium() should be true after entitlement is set")
	}
	if sub := m.Subscription(); sub.Tier != "pro" {
		t.Errorf("Subscription() = %+v", sub)
	}
}
