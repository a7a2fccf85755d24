// Package notifier carries fired-task alerts and next/last summaries from
// the scheduling core to the display/speech shell. The core only ever sees
// the Notifier interface; the shell itself is a separate process reached
// over a localhost webhook.
package notifier

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/frankb2024/Bad-kids-sub000/internal/constants"
	"github.com/frankb2024/Bad-kids-sub000/internal/models"
)

var (
	findProcessFunc = ps.FindProcess
)

// Notifier is the notification surface the trigger engine drives.
type Notifier interface {
	TaskFired(inst *models.TaskInstance, displayText, speechText string)
	NextTaskChanged(summary *models.TaskSummary)
	LastTaskChanged(summary *models.TaskSummary)
}

// WebhookPayload is the wire format POSTed to the display shell.
type WebhookPayload struct {
	Event      string `json:"event"` // task_fired | next_changed | last_changed
	Text       string `json:"text"`
	SpeechText string `json:"speech_text,omitempty"`
	Person     string `json:"person,omitempty"`
	DurationMs uint32 `json:"duration_ms"`
}

// Webhook sends notifications to the display shell process identified by its
// lockfile (port|pid|secret). Delivery failures are reported to the supplied
// callback and never propagate into the tick.
type Webhook struct {
	lockfilePath string
	onError      func(error)
}

func NewWebhook(lockfilePath string, onError func(error)) *Webhook {
	if onError == nil {
		onError = func(error) {}
	}
	return &Webhook{lockfilePath: lockfilePath, onError: onError}
}

func (w *Webhook) TaskFired(inst *models.TaskInstance, displayText, speechText string) {
	w.post(WebhookPayload{
		Event:      "task_fired",
		Text:       displayText,
		SpeechText: speechText,
		Person:     inst.Assigned,
		DurationMs: constants.NotificationDurationMs,
	})
}

func (w *Webhook) NextTaskChanged(summary *models.TaskSummary) {
	w.post(summaryPayload("next_changed", summary))
}

func (w *Webhook) LastTaskChanged(summary *models.TaskSummary) {
	w.post(summaryPayload("last_changed", summary))
}

func summaryPayload(event string, summary *models.TaskSummary) WebhookPayload {
	p := WebhookPayload{Event: event}
	if summary != nil {
		p.Text = fmt.Sprintf("%s %s %s", summary.At.Format(constants.TimeFormat), summary.Person, summary.Label)
		p.Person = summary.Person
	}
	return p
}

func (w *Webhook) post(payload WebhookPayload) {
	port, secret, err := findAndValidateDisplayProcess(w.lockfilePath)
	if err != nil {
		w.onError(err)
		return
	}
	if err := send(port, secret, payload); err != nil {
		w.onError(err)
	}
}

func findAndValidateDisplayProcess(lockfilePath string) (string, string, error) {
	content, err := os.ReadFile(lockfilePath)
	if err != nil {
		return "", "", errors.New("display shell is not running")
	}

	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 3 {
		return "", "", errors.New("display lockfile is malformed")
	}

	port := parts[0]
	portNum, err := strconv.Atoi(port)
	if err != nil {
		return "", "", errors.New("invalid port number in display lockfile")
	}
	if portNum < 1 || portNum > 65535 {
		return "", "", fmt.Errorf("port number %d is outside valid range (1-65535)", portNum)
	}

	pid, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", "", errors.New("invalid process ID in display lockfile")
	}
	secret := parts[2]
	if strings.TrimSpace(secret) == "" {
		return "", "", errors.New("secret in display lockfile is empty")
	}

	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return "", "", errors.New("display shell process not running")
	}
	if !strings.HasPrefix(process.Executable(), constants.DisplayAppIdentifier) {
		return "", "", fmt.Errorf("process with PID %d is not %s (is %s)", pid, constants.DisplayAppIdentifier, process.Executable())
	}

	return port, secret, nil
}

func send(port, secret string, payload WebhookPayload) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest("POST", fmt.Sprintf("http://127.0.0.1:%s", port), bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Choreclock-Secret", secret)

	res, err := http.DefaultClient.Do(req)
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
