package asset

import (
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/drawshapes/drawshapes/internal/typeid"
)

// Store keeps uploaded images on disk as PNG files named by asset id.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir, creating it if needed.
func NewStore(dir string) *Store {
	if err := os.MkdirAll(dir, 0755); err != nil {
		slog.Error("create asset dir", "error", err, "dir", dir)
	}
	return &Store{dir: dir}
}

// Save encodes img as PNG under a fresh asset id.
func (s *Store) Save(img image.Image) (string, error) {
	assetID := typeid.NewAssetID()
	path := s.path(assetID)

	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create asset file: %w", err)
	}
	defer out.Close()

	if err := png.Encode(out, img); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("encode png: %w", err)
	}
	return assetID, nil
}

// Image opens a stored asset. Ids that are not asset typeids are rejected
// before touching the filesystem.
func (s *Store) Image(assetID string) (image.Image, error) {
	if err := typeid.Validate(assetID, typeid.PrefixAsset); err != nil {
		return nil, err
	}
	f, err := os.Open(s.path(assetID))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return png.Decode(f)
}

// Delete removes an asset file from disk.
func (s *Store) Delete(assetID string) error {
	if err := typeid.Validate(assetID, typeid.PrefixAsset); err != nil {
		return err
	}
	if err := os.Remove(s.path(assetID)); err != nil {
		return fmt.Errorf("asset not found: %s", assetID)
	}
	return nil
}

func (s *Store) path(assetID string) string {
	return filepath.Join(s.dir, assetID+".png")
}
