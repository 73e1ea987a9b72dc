package monographparser

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"

	"github.com/giygas/magistral-api/logging"
	"golang.org/x/text/encoding/charmap"
)

// maxSourceSize caps how much of a monograph file is read into memory.
const maxSourceSize = 64 << 20

var httpClient = &http.Client{
	Timeout: 5 * time.Minute,
}

func download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", url, err)
	}

	response, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", url, err)
	}
	defer func() {
		if err := response.Body.Close(); err != nil {
			logging.Warn("Failed to close response body", "error", err)
		}
	}()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download %s: unexpected status %d", url, response.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(response.Body, maxSourceSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	logging.Debug("Monograph source downloaded", "url", url, "bytes", len(body))
	return toUTF8(body)
}

func readFile(path string) ([]byte, error) {
	cleanPath := filepath.Clean(path)

	f, err := os.Open(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", cleanPath, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			logging.Warn("Failed to close monograph file", "error", err)
		}
	}()

	body, err := io.ReadAll(io.LimitReader(f, maxSourceSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", cleanPath, err)
	}
	return toUTF8(body)
}

// toUTF8 returns body unchanged when it is valid UTF-8 and decodes it as
// ISO-8859-1 otherwise. Older pharmacopoeia exports use Latin-1.
func toUTF8(body []byte) ([]byte, error) {
	if utf8.Valid(body) {
		return body, nil
	}

	decoded, err := io.ReadAll(charmap.ISO8859_1.NewDecoder().Reader(bytes.NewReader(body)))
	if err != nil {
		return nil, fmt.Errorf("failed to decode ISO-8859-1 content: %w", err)
	}
	return decoded, nil
}
