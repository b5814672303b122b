package media

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// Archiver downloads generated images into the local assets directory,
// optionally keeping a metadata-stripped clean copy alongside.
type Archiver struct {
	AssetsDir  string
	CleanDir   string // empty disables clean copies
	HTTPClient *http.Client
}

// NewArchiver prepares the target directories and returns an archiver.
func NewArchiver(assetsDir, cleanDir string) (*Archiver, error) {
	if err := os.MkdirAll(assetsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create assets directory '%s': %w", assetsDir, err)
	}
	if cleanDir != "" {
		if err := os.MkdirAll(cleanDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create clean copy directory '%s': %w", cleanDir, err)
		}
	}
	return &Archiver{
		AssetsDir:  assetsDir,
		CleanDir:   cleanDir,
		HTTPClient: &http.Client{Timeout: 2 * time.Minute},
	}, nil
}

// SaveFromURL downloads an asset and stores it under filenameHint. When a
// file of that name already exists the name gets a short uuid suffix so no
// archive entry is ever overwritten. Returns the filename actually used.
func (a *Archiver) SaveFromURL(downloadURL, filenameHint string) (string, error) {
	resp, err := a.HTTPClient.Get(downloadURL)
	if err != nil {
		return "", fmt.Errorf("failed to download asset %s: %w", downloadURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("asset download returned status %d for %s", resp.StatusCode, downloadURL)
	}

	filename := a.uniqueName(filenameHint)
	savePath := filepath.Join(a.AssetsDir, filename)

	out, err := os.Create(savePath)
	if err != nil {
		return "", fmt.Errorf("failed to create asset file %s: %w", savePath, err)
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		os.Remove(savePath)
		return "", fmt.Errorf("failed to write asset file %s: %w", savePath, err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("failed to close asset file %s: %w", savePath, err)
	}

	if a.CleanDir != "" {
		if err := a.saveCleanCopy(savePath, filename); err != nil {
			// the archived original is intact, a missing clean copy is
			// not worth failing the generation over
			log.Printf("failed to save clean copy of %s: %v", filename, err)
		}
	}

	return filename, nil
}

// uniqueName keeps the hint when it is free, otherwise inserts a uuid
// fragment before the extension.
func (a *Archiver) uniqueName(hint string) string {
	hint = filepath.Base(hint)
	if hint == "" || hint == "." {
		hint = "image.png"
	}
	if _, err := os.Stat(filepath.Join(a.AssetsDir, hint)); os.IsNotExist(err) {
		return hint
	}
	ext := filepath.Ext(hint)
	base := strings.TrimSuffix(hint, ext)
	return fmt.Sprintf("%s-%s%s", base, uuid.NewString()[:8], ext)
}

// saveCleanCopy re-encodes the image, which drops EXIF and any other
// embedded metadata.
func (a *Archiver) saveCleanCopy(srcPath, filename string) error {
	img, err := imaging.Open(srcPath)
	if err != nil {
		return fmt.Errorf("failed to open image %s: %w", srcPath, err)
	}
	cleanPath := filepath.Join(a.CleanDir, filename)
	if err := imaging.Save(img, cleanPath); err != nil {
		return fmt.Errorf("failed to save clean copy %s: %w", cleanPath, err)
	}
	return nil
}
