package filesystem

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inah-tools/archivo/internal/core/domain"
)

func TestClassify(t *testing.T) {
	root := filepath.Join(string(filepath.Separator), "srv", "archivo")

	tests := []struct {
		name     string
		dir      string
		region   string
		site     string
		fallback bool
	}{
		{
			name:   "region and site",
			dir:    filepath.Join(root, "CDMX", "Templo Mayor"),
			region: "CDMX",
			site:   "Templo Mayor",
		},
		{
			name:   "deep path uses last two components",
			dir:    filepath.Join(root, "a", "b", "c"),
			region: "b",
			site:   "c",
		},
		{
			name:   "single component has no site",
			dir:    filepath.Join(root, "Hidalgo"),
			region: "Hidalgo",
			site:   domain.NoSiteLabel,
		},
		{
			name:     "root itself falls back to its base name",
			dir:      root,
			region:   domain.UnknownLabel,
			site:     "archivo",
			fallback: true,
		},
		{
			name:     "outside root uses raw trailing segments",
			dir:      filepath.Join(string(filepath.Separator), "other", "Zona", "Tula"),
			region:   "Zona",
			site:     "Tula",
			fallback: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(root, tt.dir)

			assert.Equal(t, tt.region, got.Region)
			assert.Equal(t, tt.site, got.Site)
			assert.Equal(t, tt.fallback, got.IsFallback())
			if tt.fallback {
				assert.NotEmpty(t, got.Reason)
			} else {
				assert.Equal(t, domain.ClassificationInferred, got.Kind)
			}
		})
	}
}

func TestClassify_FilesystemRoot(t *testing.T) {
	fsRoot := string(filepath.Separator)

	got := Classify(fsRoot, fsRoot)

	assert.True(t, got.IsFallback())
	assert.Equal(t, domain.UnknownLabel, got.Region)
	assert.Equal(t, domain.UnknownLabel, got.Site)
}

func TestClassify_RelativeRoot(t *testing.T) {
	t.Run("unrelated relative and absolute paths", func(t *testing.T) {
		got := Classify("relative", filepath.Join(string(filepath.Separator), "x"))

		assert.True(t, got.IsFallback())
		assert.Equal(t, domain.UnknownLabel, got.Region)
		assert.Equal(t, domain.UnknownLabel, got.Site)
	})

	t.Run("relative paths under a relative root", func(t *testing.T) {
		got := Classify("docs", filepath.Join("docs", "Oaxaca", "Monte Alban"))

		assert.False(t, got.IsFallback())
		assert.Equal(t, "Oaxaca", got.Region)
		assert.Equal(t, "Monte Alban", got.Site)
	})
}

func TestClassify_RecordShape(t *testing.T) {
	root := filepath.Join(string(filepath.Separator), "srv")
	dir := filepath.Join(root, "CDMX", "Templo Mayor")

	rec := Classify(root, dir).Record("acta.pdf", filepath.Join(dir, "acta.pdf"))

	assert.Equal(t, domain.DocumentRecord{
		DocumentName: "acta.pdf",
		SiteName:     "Templo Mayor",
		RegionName:   "CDMX",
		FullPath:     filepath.Join(dir, "acta.pdf"),
	}, rec)
}

func TestBaseLabel(t *testing.T) {
	assert.Equal(t, "Tula", baseLabel(filepath.Join("x", "Tula")))
	assert.Equal(t, domain.UnknownLabel, baseLabel(string(filepath.Separator)))
	assert.Equal(t, domain.UnknownLabel, baseLabel("/"))
	assert.Equal(t, domain.UnknownLabel, baseLabel("."))
	assert.Equal(t, domain.UnknownLabel, baseLabel(""))
}
