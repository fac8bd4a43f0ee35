package data

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsa-study/backend/internal/domain"
)

func TestDecodeCatalog(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr error
		lessons int
	}{
		{name: "valid", raw: sampleCatalog, lessons: 3},
		{name: "empty object", raw: `{}`, lessons: 0},
		{name: "not json", raw: `{"Arrays": [`, wantErr: domain.ErrCatalogMalformed},
		{name: "wrong shape", raw: `["a1"]`, wantErr: domain.ErrCatalogMalformed},
		{name: "null", raw: `null`, wantErr: domain.ErrCatalogMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog, err := DecodeCatalog([]byte(tt.raw))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, domain.ErrValidation)
				return
			}
			require.NoError(t, err)

			count := 0
			for _, lessons := range catalog {
				count += len(lessons)
			}
			assert.Equal(t, tt.lessons, count)
		})
	}
}

func TestLoadCatalog(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadCatalog(filepath.Join(dir, "absent.json"))
	assert.ErrorIs(t, err, domain.ErrCatalogNotFound)

	broken := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte("not json"), 0o644))
	_, err = LoadCatalog(broken)
	assert.ErrorIs(t, err, domain.ErrCatalogMalformed)

	good := filepath.Join(dir, "lesson-data.json")
	require.NoError(t, os.WriteFile(good, []byte(sampleCatalog), 0o644))
	catalog, err := LoadCatalog(good)
	require.NoError(t, err)
	assert.Len(t, catalog["Arrays"], 2)
	require.NotNil(t, catalog["Arrays"][0].Exercise)
	assert.Len(t, catalog["Arrays"][0].Exercise.TestCases, 1)
}
