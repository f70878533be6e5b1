// Package resources provides the application icons and locates the sprite
// assets on disk.
package resources

import (
	"bytes"
	"fmt"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"

	"fyne.io/fyne/v2"

	"pomodungeon/internal/render"
	"pomodungeon/internal/scene/geom"
)

// Icon names a generated icon variant.
type Icon string

const (
	IconActive Icon = "active"
	IconPaused Icon = "paused"
	IconBattle Icon = "battle"
)

const iconSize = 64

var iconCache sync.Map

var iconGlow = map[Icon]color.NRGBA{
	IconActive: {R: 0x7c, G: 0xff, B: 0xc8, A: 255},
	IconPaused: {R: 0x5a, G: 0x60, B: 0x70, A: 255},
	IconBattle: {R: 0xff, G: 0xb8, B: 0x5a, A: 255},
}

// IconResource returns a Fyne resource for an icon variant.
func IconResource(icon Icon) (fyne.Resource, error) {
	if cached, ok := iconCache.Load(icon); ok {
		return cached.(fyne.Resource), nil
	}
	glow, ok := iconGlow[icon]
	if !ok {
		return nil, fmt.Errorf("load icon %s: unknown variant", icon)
	}

	var buffer bytes.Buffer
	if err := png.Encode(&buffer, drawGate(glow).Image()); err != nil {
		return nil, fmt.Errorf("encode icon %s: %w", icon, err)
	}
	resource := fyne.NewStaticResource("pomodungeon-"+string(icon)+".png", buffer.Bytes())
	iconCache.Store(icon, resource)
	return resource, nil
}

// MustIcon returns an icon resource or panics on error.
func MustIcon(icon Icon) fyne.Resource {
	resource, err := IconResource(icon)
	if err != nil {
		panic(err)
	}
	return resource
}

// drawGate paints a stone arch with a lit doorway.
func drawGate(glow color.NRGBA) *render.Raster {
	raster := render.NewRaster(iconSize, iconSize)
	stone := color.NRGBA{R: 0x2a, G: 0x30, B: 0x40, A: 255}
	dark := color.NRGBA{R: 0x07, G: 0x08, B: 0x0c, A: 255}

	raster.FillEllipse(32, 26, 26, 22, stone)
	raster.FillRect(geom.Rect{X: 6, Y: 26, W: 52, H: 34}, stone)
	raster.FillEllipse(32, 28, 16, 14, dark)
	raster.FillRect(geom.Rect{X: 16, Y: 28, W: 32, H: 32}, dark)

	raster.SetAlpha(0.35)
	raster.FillEllipse(32, 44, 14, 14, glow)
	raster.SetAlpha(1)
	raster.FillRect(geom.Rect{X: 22, Y: 36, W: 20, H: 24}, glow)
	raster.FillRect(geom.Rect{X: 31, Y: 36, W: 2, H: 24}, dark)
	return raster
}

// AssetsDir resolves the sprite directory. A configured path that exists
// wins; otherwise an assets directory next to the executable is tried. The
// configured path is returned unchanged when nothing is found so missing
// sheets are reported against it.
func AssetsDir(configured string) string {
	if configured == "" {
		configured = "assets"
	}
	if isDir(configured) || filepath.IsAbs(configured) {
		return configured
	}
	if executable, err := os.Executable(); err == nil {
		candidate := filepath.Join(filepath.Dir(executable), configured)
		if isDir(candidate) {
			return candidate
		}
	}
	return configured
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
