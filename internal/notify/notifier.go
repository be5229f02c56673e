// Package notify schedules local notifications through the waypoint-tray
// companion app's loopback webhook.
package notify

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mitchellh/go-ps"

	"github.com/waypointhq/waypoint-cli/internal/constants"
)

var (
	userConfigDirFunc = os.UserConfigDir
	findProcessFunc   = ps.FindProcess
)

// Scheduler is what the timer manager needs from a notification backend.
// Schedule returns an opaque handle used for cancellation; a failure to
// schedule triggers the caller's immediate-fallback path instead.
type Scheduler interface {
	Schedule(title, body string, delay time.Duration, taskID string) (handle string, err error)
	Cancel(handle string) error
}

// TrayNotifier delivers through the tray app's local webhook.
type TrayNotifier struct{}

type webhookPayload struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Body           string `json:"body"`
	TaskID         string `json:"task_id,omitempty"`
	DurationMs     uint32 `json:"duration_ms"`
	DeliverAfterMs uint64 `json:"deliver_after_ms,omitempty"`
	Cancel         bool   `json:"cancel,omitempty"`
}

func New() *TrayNotifier {
	return &TrayNotifier{}
}

// Schedule asks the tray app to show a notification after delay.
func (n *TrayNotifier) Schedule(title, body string, delay time.Duration, taskID string) (string, error) {
	handle := uuid.New().String()
	payload := webhookPayload{
		ID:             handle,
		Title:          title,
		Body:           body,
		TaskID:         taskID,
		DurationMs:     constants.NotificationDurationMs,
		DeliverAfterMs: uint64(delay.Milliseconds()),
	}
	if err := n.send(payload); err != nil {
		return "", err
	}
	return handle, nil
}

// Deliver shows a notification immediately.
func (n *TrayNotifier) Deliver(title, body, taskID string) error {
	_, err := n.Schedule(title, body, 0, taskID)
	return err
}

// Cancel revokes a previously scheduled notification. Unknown handles are
// not an error on the tray side.
func (n *TrayNotifier) Cancel(handle string) error {
	if handle == "" {
		return nil
	}
	return n.send(webhookPayload{ID: handle, Cancel: true})
}

func (n *TrayNotifier) send(payload webhookPayload) error {
	trayConfigDir, err := GetTrayAppConfigDir()
	if err != nil {
		return err
	}

	port, secret, err := findAndValidateTrayProcess(filepath.Join(trayConfigDir, constants.NotifierLockfileName))
	if err != nil {
		return err
	}

	return postWebhook(port, secret, payload)
}

// GetTrayAppConfigDir returns the configuration directory used by the tray
// application, honoring a custom lockfile_dir from its settings.json.
func GetTrayAppConfigDir() (string, error) {
	configDir, err := userConfigDirFunc()
	if err != nil {
		return "", fmt.Errorf("failed to get user config dir: %w", err)
	}

	trayConfigDir := filepath.Join(configDir, constants.TrayAppIdentifier)

	settingsPath := filepath.Join(trayConfigDir, "settings.json")
	if _, err := os.Stat(settingsPath); err == nil {
		data, err := os.ReadFile(settingsPath)
		if err == nil {
			var store struct {
				Settings struct {
					LockfileDir *string `json:"lockfile_dir"`
				} `json:"settings"`
			}
			if err := json.Unmarshal(data, &store); err == nil {
				if store.Settings.LockfileDir != nil && *store.Settings.LockfileDir != "" {
					return *store.Settings.LockfileDir, nil
				}
			}
		}
	}

	return trayConfigDir, nil
}

func findAndValidateTrayProcess(lockfilePath string) (string, string, error) {
	content, err := os.ReadFile(lockfilePath)
	if err != nil {
		return "", "", errors.New("waypoint-tray is not running")
	}

	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 3 {
		return "", "", errors.New("lockfile is malformed")
	}

	port := parts[0]
	if strings.TrimSpace(port) == "" {
		return "", "", errors.New("port in lockfile is empty")
	}
	portNum, err := strconv.Atoi(port)
	if err != nil {
		return "", "", errors.New("invalid port number in lockfile")
	}
	if portNum < 1 || portNum > 65535 {
		return "", "", fmt.Errorf("port number %d is outside valid range (1-65535)", portNum)
	}

	pid, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", "", errors.New("invalid process ID in lockfile")
	}
	secret := parts[2]
	if strings.TrimSpace(secret) == "" {
		return "", "", errors.New("secret in lockfile is empty")
	}

	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return "", "", errors.New("waypoint-tray process not running")
	}

	if !strings.HasPrefix(process.Executable(), constants.TrayExecutablePrefix) {
		return "", "", fmt.Errorf("process with PID %d is not waypoint-tray (is %s)", pid, process.Executable())
	}

	return port, secret, nil
}

func postWebhook(port string, secret string, payload webhookPayload) error {
	url := fmt.Sprintf("http://127.0.0.1:%s", port)

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Waypoint-Secret", secret)

	client := &http.Client{}
	res, err := client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusOK {
		return nil
	}

	body, _ := io.ReadAll(res.Body)
	return fmt.Errorf("notification failed with status %d: %s", res.StatusCode, string(body))
}
