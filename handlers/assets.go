package handlers

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/zoec98/imageedit/media"
)

// AssetHandler lists the locally archived generated images.
type AssetHandler struct {
	AssetsDir string
}

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// ListAssets returns metadata for every archived image in the assets
// directory.
func (ah *AssetHandler) ListAssets(w http.ResponseWriter, r *http.Request) {
	entries, err := os.ReadDir(ah.AssetsDir)
	if err != nil {
		WriteAPIError(w, http.StatusInternalServerError, "assets_error", err.Error())
		return
	}

	infos := make([]*media.AssetInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !imageExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}
		info, err := media.ReadAssetInfo(filepath.Join(ah.AssetsDir, entry.Name()))
		if err != nil {
			log.Printf("failed to read asset info for %s: %v", entry.Name(), err)
			continue
		}
		infos = append(infos, info)
	}
	writeJSON(w, http.StatusOK, infos)
}
