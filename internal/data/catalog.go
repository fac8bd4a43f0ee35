package data

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"go.uber.org/zap"

	"github.com/dsa-study/backend/internal/domain"
)

// LoadCatalog reads and decodes a lesson catalog file
func LoadCatalog(path string) (domain.Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrCatalogNotFound, path)
		}
		return nil, fmt.Errorf("failed to read lesson catalog: %w", err)
	}
	return DecodeCatalog(raw)
}

// DecodeCatalog parses catalog JSON: an object mapping category names to lesson lists
func DecodeCatalog(raw []byte) (domain.Catalog, error) {
	var catalog domain.Catalog
	if err := json.Unmarshal(raw, &catalog); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogMalformed, err)
	}
	if catalog == nil {
		return nil, domain.ErrCatalogMalformed
	}
	return catalog, nil
}

// SeedFromFile imports the exercises of the catalog at path.
// A missing or malformed file is reported to the caller with zero insertions.
func (i *Importer) SeedFromFile(ctx context.Context, path string) (domain.ImportResult, error) {
	catalog, err := LoadCatalog(path)
	if err != nil {
		i.logger.Warn("Lesson catalog unavailable, skipping exercise import",
			zap.String("path", path),
			zap.Error(err),
		)
		return domain.ImportResult{}, err
	}

	i.logger.Info("Importing lesson exercises",
		zap.String("path", path),
		zap.Int("categories", len(catalog)),
	)
	return i.Import(ctx, catalog)
}
