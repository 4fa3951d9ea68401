// Package compile forwards code execution requests to a JDoodle-compatible
// upstream. It is a stateless pass-through: no retries (executed code can have
// side effects) and no result caching.
package compile

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/Tusshar172004/Code-Pod/internal/errs"
)

// languageVersions is the closed set of accepted language identifiers and
// their upstream version selectors.
var languageVersions = map[string]string{
	"python3": "3",
	"java":    "3",
	"cpp":     "4",
	"nodejs":  "3",
	"c":       "4",
	"ruby":    "3",
	"go":      "3",
	"scala":   "3",
	"bash":    "3",
	"sql":     "3",
	"pascal":  "2",
	"csharp":  "3",
	"php":     "3",
	"swift":   "3",
	"rust":    "3",
	"r":       "3",
}

// Runner executes code remotely and returns the program output.
type Runner interface {
	Execute(ctx context.Context, code, language string) (string, error)
}

// Client implements Runner against the JDoodle execute API.
type Client struct {
	apiURL       string
	clientID     string
	clientSecret string
	timeout      time.Duration
	httpc        *http.Client
	log          *zap.Logger
}

// NewClient creates a compile client with a bounded upstream timeout.
func NewClient(apiURL, clientID, clientSecret string, timeout time.Duration, log *zap.Logger) *Client {
	return &Client{
		apiURL:       apiURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		timeout:      timeout,
		httpc:        &http.Client{Timeout: timeout},
		log:          log,
	}
}

type executeRequest struct {
	Script       string `json:"script"`
	Language     string `json:"language"`
	VersionIndex string `json:"versionIndex"`
	ClientID     string `json:"clientId"`
	ClientSecret string `json:"clientSecret"`
}

type executeResponse struct {
	Output string `json:"output"`
	Error  string `json:"error"`
}

// Execute validates the language, forwards code to the upstream, and returns
// the output verbatim. Any upstream failure (network, timeout, non-2xx) maps
// to errs.ErrCompileFailed; the caller sees one generic error, never a retry.
func (c *Client) Execute(ctx context.Context, code, language string) (string, error) {
	versionIndex, ok := languageVersions[language]
	if !ok {
		return "", fmt.Errorf("%w: %q", errs.ErrUnknownLanguage, language)
	}

	body, err := json.Marshal(executeRequest{
		Script:       code,
		Language:     language,
		VersionIndex: versionIndex,
		ClientID:     c.clientID,
		ClientSecret: c.clientSecret,
	})
	if err != nil {
		return "", fmt.Errorf("marshal execute request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build execute request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		c.log.Warn("compile upstream unreachable", zap.String("language", language), zap.Error(err))
		return "", errs.ErrCompileFailed
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Warn("compile upstream error status",
			zap.String("language", language), zap.Int("status", resp.StatusCode))
		return "", errs.ErrCompileFailed
	}

	var out executeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		c.log.Warn("compile upstream bad response", zap.Error(err))
		return "", errs.ErrCompileFailed
	}
	return out.Output, nil
}

// Languages returns the accepted language identifiers (for diagnostics).
func Languages() []string {
	out := make([]string, 0, len(languageVersions))
	for lang := range languageVersions {
		out = append(out, lang)
	}
	return out
}
