package portfolio

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// maxDocumentSize caps how much of a backend response is read.
const maxDocumentSize = 8 << 20

// Source supplies the portfolio document.
type Source interface {
	Fetch(ctx context.Context) (*Data, error)
	String() string
}

// SourceError reports a failure to obtain or decode the document.
type SourceError struct {
	Source string
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("portfolio source %s: %v", e.Source, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// NewSource picks the HTTP source when url is set, otherwise the file source.
func NewSource(url, path string) Source {
	if url != "" {
		return &HTTPSource{URL: url}
	}
	return &FileSource{Path: path}
}

// HTTPSource fetches the document with a GET request.
type HTTPSource struct {
	URL    string
	Client *http.Client
}

func (s *HTTPSource) String() string {
	return s.URL
}

// Fetch implements Source.
func (s *HTTPSource) Fetch(ctx context.Context) (*Data, error) {
	client := s.Client
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, &SourceError{Source: s.URL, Err: errors.Wrap(err, "build request")}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, &SourceError{Source: s.URL, Err: errors.Wrap(err, "request failed")}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &SourceError{Source: s.URL, Err: errors.Errorf("unexpected status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return nil, &SourceError{Source: s.URL, Err: errors.Wrap(err, "read body")}
	}

	data, err := Decode(FormatJSON, body)
	if err != nil {
		return nil, &SourceError{Source: s.URL, Err: err}
	}
	return data, nil
}

// FileSource reads the document from disk. The format follows the extension.
type FileSource struct {
	Path string
}

func (s *FileSource) String() string {
	return s.Path
}

// Fetch implements Source.
func (s *FileSource) Fetch(_ context.Context) (*Data, error) {
	raw, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, &SourceError{Source: s.Path, Err: errors.Wrap(err, "read file")}
	}

	data, err := Decode(FormatForPath(s.Path), raw)
	if err != nil {
		return nil, &SourceError{Source: s.Path, Err: err}
	}
	return data, nil
}

// Document formats understood by Decode.
const (
	FormatJSON  = "json"
	FormatJSONC = "jsonc"
	FormatYAML  = "yaml"
)

// FormatForPath maps a file extension to a document format, defaulting to JSON.
func FormatForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".jsonc":
		return FormatJSONC
	default:
		return FormatJSON
	}
}

// Decode parses raw in the given format.
func Decode(format string, raw []byte) (*Data, error) {
	var data Data
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(raw, &data); err != nil {
			return nil, errors.Wrap(err, "decode yaml")
		}
	case FormatJSONC:
		// Strip comments and trailing commas before parsing as standard JSON.
		if err := json.Unmarshal(jsonc.ToJSON(raw), &data); err != nil {
			return nil, errors.Wrap(err, "decode jsonc")
		}
	case FormatJSON:
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, errors.Wrap(err, "decode json")
		}
	default:
		return nil, errors.Errorf("unknown document format %q", format)
	}
	return &data, nil
}
