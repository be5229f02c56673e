// Package account manages the local session identity and premium
// entitlement cache. Guest is the default; a registered session is
// created by login and its API token lives in the OS keyring.
package account

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/waypointhq/waypoint-cli/internal/keyring"
	"github.com/waypointhq/waypoint-cli/internal/logger"
	"github.com/waypointhq/waypoint-cli/internal/models"
)

const sessionFileName = "session.json"

var (
	setTokenFunc    = keyring.SetAPIToken
	deleteTokenFunc = keyring.DeleteAPIToken
)

// EntitlementStore is the slice of the storage provider the manager needs.
type EntitlementStore interface {
	GetSubscription() (models.Subscription, error)
	SaveSubscription(models.Subscription) error
}

// Manager owns the session file and the entitlement cache.
type Manager struct {
	configDir string
	store     EntitlementStore
}

func NewManager(configDir string, store EntitlementStore) *Manager {
	return &Manager{configDir: configDir, store: store}
}

func (m *Manager) sessionPath() string {
	return filepath.Join(m.configDir, sessionFileName)
}

// Session returns the current session. A missing or unreadable session
// file means guest.
func (m *Manager) Session() models.Session {
	data, err := os.ReadFile(m.sessionPath())
	if err != nil {
		return models.Session{Guest: true}
	}
	var s models.Session
	if err := json.Unmarshal(data, &s); err != nil {
		logger.Warn("Session file is malformed, treating as guest", "error", err)
		return models.Session{Guest: true}
	}
	if s.UserID == "" {
		return models.Session{Guest: true}
	}
	return s
}

// Login records a registered session and stores the API token in the
// OS keyring.
func (m *Manager) Login(userID, email, token string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return fmt.Errorf("user id cannot be empty")
	}

	if err := setTokenFunc(token); err != nil {
		return fmt.Errorf("failed to store API token: %w", err)
	}

	s := models.Session{UserID: userID, Email: strings.TrimSpace(email)}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize session: %w", err)
	}
	if err := os.MkdirAll(m.configDir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(m.sessionPath(), data, 0600); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	return nil
}

// Logout drops the session and the stored token. Idempotent.
func (m *Manager) Logout() error {
	if err := os.Remove(m.sessionPath()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session: %w", err)
	}
	if err := deleteTokenFunc(); err != nil {
		// Token cleanup is best-effort once the session file is gone.
		logger.Warn("Failed to remove API token from keyring", "error", err)
	}
	return nil
}

// HasPremium reports whether the given identity currently holds premium
// entitlement, per the locally cached subscription.
func (m *Manager) HasPremium(userID string) bool {
	if userID == "" {
		return false
	}
	sub, err := m.store.GetSubscription()
	if err != nil {
		logger.Warn("Failed to read subscription", "error", err)
		return false
	}
	return sub.Premium
}

// SetEntitlement updates the cached subscription, e.g. after a purchase
// or a remote entitlement refresh.
func (m *Manager) SetEntitlement(sub models.Subscription) error {
	return m.store.SaveSubscription(sub)
}

// Subscription returns the cached subscription metadata.
func (m *Manager) Subscription() models.Subscription {
	sub, err := m.store.GetSubscription()
	if err != nil {
		return models.Subscription{}
	}
	return sub
}
