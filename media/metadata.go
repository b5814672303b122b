package media

import (
	"fmt"
	"image"
	"os"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/rwcarlsen/goexif/exif"
)

// AssetInfo describes one archived asset on disk.
type AssetInfo struct {
	Filename    string  `json:"filename"`
	SizeBytes   int64   `json:"size_bytes"`
	Width       *int    `json:"width,omitempty"`
	Height      *int    `json:"height,omitempty"`
	TakenAt     *int64  `json:"taken_at,omitempty"`    // Unix timestamp from EXIF, if present
	Description *string `json:"description,omitempty"` // EXIF ImageDescription, if present
}

// ReadAssetInfo inspects an image file for its dimensions and any EXIF
// fields worth surfacing. Missing or unreadable EXIF data is not an error;
// the info is simply left sparse.
func ReadAssetInfo(path string) (*AssetInfo, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat asset %s: %w", path, err)
	}

	info := &AssetInfo{
		Filename:  stat.Name(),
		SizeBytes: stat.Size(),
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open asset %s: %w", path, err)
	}
	defer f.Close()

	if cfg, _, err := image.DecodeConfig(f); err == nil {
		w, h := cfg.Width, cfg.Height
		info.Width = &w
		info.Height = &h
	}

	if _, err := f.Seek(0, 0); err != nil {
		return info, nil
	}
	exifData, err := exif.Decode(f)
	if err != nil {
		return info, nil // no EXIF block, common for generated PNGs
	}

	if t, err := exifData.DateTime(); err == nil {
		ts := t.Unix()
		info.TakenAt = &ts
	}
	if tag, err := exifData.Get(exif.ImageDescription); err == nil && tag != nil {
		if desc, err := tag.StringVal(); err == nil && desc != "" {
			info.Description = &desc
		}
	}

	return info, nil
}
