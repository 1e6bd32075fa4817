package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/pkg/errors"
)

// SubmitPath is the backend route that accepts submissions.
const SubmitPath = "/api/contact/submit"

// HTTPSubmitter posts submissions as JSON to a backend.
type HTTPSubmitter struct {
	// BaseURL is the backend origin, e.g. https://api.example.com.
	BaseURL string
	Client  *http.Client
}

// Submit implements Submitter. Any non-2xx status is an error.
func (h *HTTPSubmitter) Submit(ctx context.Context, s Submission) error {
	body, err := json.Marshal(s)
	if err != nil {
		return errors.Wrap(err, "encode submission")
	}

	url := strings.TrimRight(h.BaseURL, "/") + SubmitPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")

	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return errors.Wrap(err, "post submission")
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errors.Errorf("contact endpoint returned status %d", resp.StatusCode)
	}
	return nil
}
