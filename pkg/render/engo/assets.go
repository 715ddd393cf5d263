// pkg/render/engo/assets.go
package engo

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/EngoEngine/engo/common"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/opd-ai/go-slingshot/pkg/entity"
	"github.com/opd-ai/go-slingshot/pkg/physics"
	"github.com/opd-ai/go-slingshot/pkg/render"
)

// textureFunc uploads an image. The default needs an OpenGL context.
type textureFunc func(img *image.NRGBA) common.Drawable

func uploadTexture(img *image.NRGBA) common.Drawable {
	return common.NewTextureSingle(common.NewImageObject(img))
}

// AssetManager generates and caches the textures for bodies. Nothing is
// loaded from disk: stars and planets are shaded discs, asteroids are
// filled outlines.
type AssetManager struct {
	upload textureFunc

	discs     map[string]common.Drawable
	asteroids map[entity.ID]common.Drawable
}

// NewAssetManager creates a new asset manager
func NewAssetManager() *AssetManager {
	return newAssetManager(uploadTexture)
}

func newAssetManager(upload textureFunc) *AssetManager {
	return &AssetManager{
		upload:    upload,
		discs:     make(map[string]common.Drawable),
		asteroids: make(map[entity.ID]common.Drawable),
	}
}

// StarSprite returns the texture for a star.
func (am *AssetManager) StarSprite(star *entity.Star) common.Drawable {
	return am.disc(star.Radius, star.Color, "", 0)
}

// PlanetSprite returns the texture for a planet template.
func (am *AssetManager) PlanetSprite(t entity.PlanetTemplate) common.Drawable {
	ring := ""
	if t.HasRings {
		ring = t.RingColor
	}
	return am.disc(t.Radius, t.Color, ring, t.SurfacePattern)
}

// AsteroidSprite returns the texture for an asteroid's outline. Outlines
// are random per asteroid, so textures are cached by ID.
func (am *AssetManager) AsteroidSprite(a *entity.Asteroid) common.Drawable {
	if sprite, ok := am.asteroids[a.ID]; ok {
		return sprite
	}
	sprite := am.upload(polygonImage(a.Outline, a.Radius, render.ParseColor(a.Color)))
	am.asteroids[a.ID] = sprite
	return sprite
}

// Forget drops a cached asteroid texture.
func (am *AssetManager) Forget(id entity.ID) {
	if sprite, ok := am.asteroids[id]; ok {
		if tex, ok := sprite.(common.Texture); ok {
			tex.Close()
		}
		delete(am.asteroids, id)
	}
}

func (am *AssetManager) disc(radius float64, fill, ring string, pattern int) common.Drawable {
	key := fmt.Sprintf("%.1f|%s|%s|%d", radius, fill, ring, pattern)
	if sprite, ok := am.discs[key]; ok {
		return sprite
	}
	img := discImage(radius, render.ParseColor(fill), pattern)
	if ring != "" {
		img = withRing(img, radius, render.ParseColor(ring))
	}
	sprite := am.upload(img)
	am.discs[key] = sprite
	return sprite
}

// spriteSize is the square texture side for a body of radius r. Ringed
// planets use twice the radius so the ring fits.
func spriteSize(r float64, ringed bool) int {
	if ringed {
		return int(math.Ceil(r*4)) + 2
	}
	return int(math.Ceil(r*2)) + 2
}

func createBaseImage(size int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.NRGBA{}}, image.Point{}, draw.Src)
	return img
}

// discImage shades a disc. Pattern 1 adds latitude bands, pattern 2 adds
// a darker spot.
func discImage(r float64, fill colorful.Color, pattern int) *image.NRGBA {
	size := spriteSize(r, false)
	img := createBaseImage(size)
	c := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx, dy := float64(x)+0.5-c, float64(y)+0.5-c
			if dx*dx+dy*dy > r*r {
				continue
			}
			shade := fill
			switch pattern {
			case 1:
				if int(math.Floor((dy+r)/(r/3)))%2 == 1 {
					shade = render.Fade(fill, render.Black, 0.75)
				}
			case 2:
				sx, sy := dx-r/3, dy-r/4
				if sx*sx+sy*sy < r*r/9 {
					shade = render.Fade(fill, render.Black, 0.6)
				}
			}
			img.Set(x, y, toNRGBA(shade, 1))
		}
	}
	return img
}

// withRing draws the disc centered on a larger canvas with a flat ring
// behind and in front of it.
func withRing(discImg *image.NRGBA, r float64, ring colorful.Color) *image.NRGBA {
	size := spriteSize(r, true)
	img := createBaseImage(size)
	c := float64(size) / 2
	ringColor := toNRGBA(ring, entity.RingAlpha)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx, dy := (float64(x)+0.5-c)/(2*r), (float64(y)+0.5-c)/(0.6*r)
			if d := dx*dx + dy*dy; d <= 1 && d >= 0.55 {
				img.Set(x, y, ringColor)
			}
		}
	}
	offset := (size - discImg.Bounds().Dx()) / 2
	draw.Draw(img, discImg.Bounds().Add(image.Pt(offset, offset)), discImg, image.Point{}, draw.Over)
	return img
}

// polygonImage fills an asteroid outline given relative to its center.
func polygonImage(outline []physics.Vector2D, r float64, fill colorful.Color) *image.NRGBA {
	size := spriteSize(r, false)
	img := createBaseImage(size)
	c := float64(size) / 2
	px := toNRGBA(fill, 1)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			p := physics.Vector2D{X: float64(x) + 0.5 - c, Y: float64(y) + 0.5 - c}
			if insidePolygon(p, outline) {
				img.Set(x, y, px)
			}
		}
	}
	return img
}

// insidePolygon is the even-odd ray casting test.
func insidePolygon(p physics.Vector2D, poly []physics.Vector2D) bool {
	inside := false
	for i, j := 0, len(poly)-1; i < len(poly); j, i = i, i+1 {
		a, b := poly[i], poly[j]
		if (a.Y > p.Y) != (b.Y > p.Y) && p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			inside = !inside
		}
	}
	return inside
}
