// pkg/render/engo/renderer.go
package engo

import (
	"math"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-slingshot/pkg/entity"
	"github.com/opd-ai/go-slingshot/pkg/physics"
)

// Draw order, back to front.
const (
	layerAsteroid float32 = iota + 1
	layerStar
	layerPlanet
	layerHUD
)

// SpriteSink receives sprite entities. *common.RenderSystem is one.
type SpriteSink interface {
	Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent)
	Remove(basic ecs.BasicEntity)
}

type sprite struct {
	ecs.BasicEntity
	common.RenderComponent
	common.SpaceComponent
	seen bool
}

// EngoRenderer implements entity.Renderer by keeping one render-system
// entity per body. Bodies not drawn between Clear and Present are removed.
type EngoRenderer struct {
	sink   SpriteSink
	camera *CameraSystem
	assets *AssetManager

	sprites map[entity.ID]*sprite
}

// NewEngoRenderer creates a new Engo-based renderer
func NewEngoRenderer(sink SpriteSink, camera *CameraSystem, assets *AssetManager) *EngoRenderer {
	return &EngoRenderer{
		sink:    sink,
		camera:  camera,
		assets:  assets,
		sprites: make(map[entity.ID]*sprite),
	}
}

// Clear implements entity.Renderer
func (r *EngoRenderer) Clear() {
	for _, s := range r.sprites {
		s.seen = false
	}
}

// Present implements entity.Renderer. Engo draws on its own schedule;
// this only retires sprites of bodies that are gone.
func (r *EngoRenderer) Present() {
	for id, s := range r.sprites {
		if s.seen {
			continue
		}
		r.sink.Remove(s.BasicEntity)
		r.assets.Forget(id)
		delete(r.sprites, id)
	}
}

// RenderStar implements entity.Renderer
func (r *EngoRenderer) RenderStar(star *entity.Star) {
	r.place(star.ID, r.assets.StarSprite(star), star.Position, spriteSize(star.Radius, false), 0, layerStar)
}

// RenderPlanet implements entity.Renderer
func (r *EngoRenderer) RenderPlanet(planet *entity.Planet) {
	size := spriteSize(planet.Radius, planet.Template.HasRings)
	r.place(planet.ID, r.assets.PlanetSprite(planet.Template), planet.Position, size, 0, layerPlanet)
}

// RenderAsteroid implements entity.Renderer
func (r *EngoRenderer) RenderAsteroid(asteroid *entity.Asteroid) {
	r.place(asteroid.ID, r.assets.AsteroidSprite(asteroid), asteroid.Position,
		spriteSize(asteroid.Radius, false), asteroid.Rotation, layerAsteroid)
}

// SpriteCount returns the number of live sprites.
func (r *EngoRenderer) SpriteCount() int {
	return len(r.sprites)
}

// place centers a texture of size world units on pos.
func (r *EngoRenderer) place(id entity.ID, drawable common.Drawable, pos physics.Vector2D, size int, rotation float64, layer float32) {
	s, known := r.sprites[id]
	if !known {
		s = &sprite{BasicEntity: ecs.NewBasic()}
		s.SetZIndex(layer)
		r.sprites[id] = s
	}
	s.seen = true

	scale := float32(r.camera.Scale())
	center := r.camera.WorldToScreen(pos)

	s.Drawable = drawable
	s.Scale = engo.Point{X: scale, Y: scale}
	s.Width = float32(size) * scale
	s.Height = float32(size) * scale
	s.Rotation = float32(rotation * 180 / math.Pi)
	s.SetCenter(engo.Point{X: float32(center.X), Y: float32(center.Y)})

	if !known {
		r.sink.Add(&s.BasicEntity, &s.RenderComponent, &s.SpaceComponent)
	}
}
