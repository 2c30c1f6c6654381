package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"yago-sync/config"
)

const defaultTimeout = 30 * time.Second

// Client is the typed command channel to the privileged backend process.
// One method per backend operation, no retries, no caching: domain
// validation happens backend-side and surfaces as a rejected command.
type Client struct {
	BaseURL    string
	UserAgent  string
	HTTPClient *http.Client

	// streamClient has no overall timeout so the event stream can stay open.
	streamClient *http.Client
}

// CommandError carries a backend rejection message verbatim.
type CommandError struct {
	Command string
	Message string
}

func (e *CommandError) Error() string {
	return e.Message
}

// NewClient creates a backend command client from the loaded configuration.
func NewClient(cfg config.Config) (*Client, error) {
	if cfg.BackendURL == "" {
		return nil, fmt.Errorf("BACKEND_URL is not configured")
	}
	if cfg.UserAgent == "" {
		return nil, fmt.Errorf("USERAGENT is not configured")
	}

	timeout := defaultTimeout
	if cfg.RequestTimeoutSecs > 0 {
		timeout = time.Duration(cfg.RequestTimeoutSecs) * time.Second
	}

	return &Client{
		BaseURL:   strings.TrimRight(cfg.BackendURL, "/"),
		UserAgent: cfg.UserAgent,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
		streamClient: &http.Client{},
	}, nil
}

// invoke issues a single command and decodes the typed result into target.
// args may be nil for commands without arguments; target may be nil for
// commands that return nothing. A non-2xx status rejects with the backend's
// message body verbatim.
func (c *Client) invoke(command string, args interface{}, target interface{}) error {
	var body io.Reader
	if args != nil {
		encoded, err := json.Marshal(args)
		if err != nil {
			return fmt.Errorf("failed to encode arguments for '%s': %w", command, err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequest(http.MethodPost, c.BaseURL+"/command/"+command, body)
	if err != nil {
		return fmt.Errorf("failed to create request for '%s': %w", command, err)
	}
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", "application/json")
	if args != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		// Channel loss behaves exactly like a rejection for callers.
		return fmt.Errorf("command '%s' failed: %w", command, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msgBytes, _ := io.ReadAll(resp.Body)
		msg := strings.TrimSpace(string(msgBytes))
		if msg == "" {
			msg = resp.Status
		}
		return &CommandError{Command: command, Message: msg}
	}

	if target != nil {
		if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
			return fmt.Errorf("failed to decode response for '%s': %w", command, err)
		}
	}
	return nil
}
