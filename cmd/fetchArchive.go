package cmd

import (
	"fmt"
	"io"
	"net/http"
	"os"

	"go.uber.org/zap"
)

// fetchArchive downloads url with a single GET, writes the body to a
// temporary file, and extracts it as a zip archive into a freshly created
// temporary directory whose path is returned. The response status is not
// inspected; a non-archive body (such as an HTML error page) surfaces as a
// zip format error during extraction.
func fetchArchive(log *zap.SugaredLogger, url string) (string, error) {
	resp, err := http.Get(url)
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read download body: %w", err)
	}
	log.Infow("archive downloaded", "bytes", len(body), "status", resp.StatusCode)

	tmp, err := os.CreateTemp("", "geoip-archive-*.zip")
	if err != nil {
		return "", fmt.Errorf("create archive file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	if _, err := tmp.Write(body); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("write archive file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("write archive file: %w", err)
	}

	dir, err := os.MkdirTemp("", "geoip-packages-")
	if err != nil {
		return "", fmt.Errorf("create extraction dir: %w", err)
	}
	if err := extractZip(tmp.Name(), dir); err != nil {
		_ = os.RemoveAll(dir)
		return "", err
	}
	return dir, nil
}
