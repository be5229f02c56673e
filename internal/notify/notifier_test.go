package notify

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	ps "github.com/mitchellh/go-ps"

	"github.com/waypointhq/waypoint-cli/internal/constants"
)

type mockProcess struct {
	pid        int
	executable string
}

func (m *mockProcess) Pid() int           { return m.pid }
func (m *mockProcess) PPid() int          { return 0 }
func (m *mockProcess) Executable() string { return m.executable }

func TestGetTrayAppConfigDir(t *testing.T) {
	tempDir := t.TempDir()

	oldUserConfigDirFunc := userConfigDirFunc
	defer func() { userConfigDirFunc = oldUserConfigDirFunc }()
	userConfigDirFunc = func() (string, error) {
		return tempDir, nil
	}

	expectedDefault := filepath.Join(tempDir, constants.TrayAppIdentifier)
	dir, err := GetTrayAppConfigDir()
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if dir != expectedDefault {
		t.Errorf("expected %s, got %s", expectedDefault, dir)
	}

	// A custom lockfile_dir in settings.json takes precedence.
	trayConfigDir := filepath.Join(tempDir, constants.TrayAppIdentifier)
	if err := os.MkdirAll(trayConfigDir, 0755); err != nil {
		t.Fatal(err)
	}

	customDir := "/custom/waypoint/dir"
	settingsJSON := fmt.Sprintf(`{"settings": {"lockfile_dir": "%s"}}`, customDir)
	if err := os.WriteFile(filepath.Join(trayConfigDir, "settings.json"), []byte(settingsJSON), 0644); err != nil {
		t.Fatal(err)
	}

	dir, err = GetTrayAppConfigDir()
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if dir != customDir {
		t.Errorf("expected %s, got %s", customDir, dir)
	}
}

func TestFindAndValidateTrayProcess(t *testing.T) {
	oldFindProcessFunc := findProcessFunc
	defer func() { findProcessFunc = oldFindProcessFunc }()

	lockfilePath := filepath.Join(t.TempDir(), constants.NotifierLockfileName)

	// Missing lockfile
	if _, _, err := findAndValidateTrayProcess(lockfilePath); err == nil {
		t.Error("expected error for missing lockfile")
	}

	// Malformed (2-part) lockfile
	if err := os.WriteFile(lockfilePath, []byte("8080|12345"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := findAndValidateTrayProcess(lockfilePath); err == nil {
		t.Error("expected error for malformed lockfile")
	}

	// Empty secret
	if err := os.WriteFile(lockfilePath, []byte("8080|12345|"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := findAndValidateTrayProcess(lockfilePath); err == nil || !strings.Contains(err.Error(), "secret") {
		t.Errorf("expected error about empty secret, got: %v", err)
	}

	// Port out of range
	if err := os.WriteFile(lockfilePath, []byte("99999|12345|testsecret123"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := findAndValidateTrayProcess(lockfilePath); err == nil {
		t.Error("expected error for port out of range")
	}

	// Process not running
	if err := os.WriteFile(lockfilePath, []byte("8080|12345|testsecret123"), 0644); err != nil {
		t.Fatal(err)
	}
	findProcessFunc = func(pid int) (ps.Process, error) {
		return nil, nil
	}
	if _, _, err := findAndValidateTrayProcess(lockfilePath); err == nil {
		t.Error("expected error for missing process")
	}

	// Wrong executable
	findProcessFunc = func(pid int) (ps.Process, error) {
		return &mockProcess{pid: pid, executable: "other-app"}, nil
	}
	if _, _, err := findAndValidateTrayProcess(lockfilePath); err == nil {
		t.Error("expected error for wrong executable")
	}

	// Success
	findProcessFunc = func(pid int) (ps.Process, error) {
		return &mockProcess{pid: pid, executable: "waypoint-tray"}, nil
	}
	port, secret, err := findAndValidateTrayProcess(lockfilePath)
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if port != "8080" {
		t.Errorf("expected port 8080, got %s", port)
	}
	if secret != "testsecret123" {
		t.Errorf("expected secret testsecret123, got %s", secret)
	}
}

func TestPostWebhook(t *testing.T) {
	var received webhookPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Waypoint-Secret") != "test-secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if received.Title == "fail" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	parts := strings.Split(server.URL, ":")
	port := parts[len(parts)-1]

	payload := webhookPayload{
		ID:             "handle-1",
		Title:          "Time's up!",
		Body:           "Learn E minor is done",
		TaskID:         "abc-0-0-0",
		DeliverAfterMs: 600000,
	}
	if err := postWebhook(port, "test-secret", payload); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if received.ID != "handle-1" || received.DeliverAfterMs != 600000 {
		t.Errorf("server received %+v, want scheduled payload", received)
	}

	if err := postWebhook(port, "wrong-secret", payload); err == nil {
		t.Error("expected error for wrong secret")
	}

	if err := postWebhook(port, "test-secret", webhookPayload{Title: "fail"}); err == nil {
		t.Error("expected error for server failure")
	}
}

func TestCancelEmptyHandleIsNoop(t *testing.T) {
	n := New()
	if err := n.Cancel(""); err != nil {
		t.Errorf("Cancel(\"\") = %v, want nil", err)
	}
}
