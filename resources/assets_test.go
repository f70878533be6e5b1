package resources

import (
	"bytes"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIconsAreCachedPNGs(t *testing.T) {
	for _, icon := range []Icon{IconActive, IconPaused, IconBattle} {
		resource, err := IconResource(icon)
		require.NoError(t, err)
		img, err := png.Decode(bytes.NewReader(resource.Content()))
		require.NoError(t, err)
		assert.Equal(t, iconSize, img.Bounds().Dx())

		again := MustIcon(icon)
		assert.Same(t, resource, again)
	}

	_, err := IconResource("sparkly")
	assert.Error(t, err)
	assert.NotEqual(t, MustIcon(IconActive).Content(), MustIcon(IconPaused).Content())
}

func TestAssetsDirResolution(t *testing.T) {
	dir := t.TempDir()
	assert.Equal(t, dir, AssetsDir(dir))

	missing := filepath.Join(dir, "nope")
	assert.Equal(t, missing, AssetsDir(missing))

	t.Chdir(dir)
	assert.Equal(t, "assets", AssetsDir(""))
}
