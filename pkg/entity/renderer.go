package entity

// Renderer handles rendering game entities
type Renderer interface {
	RenderStar(star *Star)
	RenderPlanet(planet *Planet)
	RenderAsteroid(asteroid *Asteroid)
	Clear()
	Present()
}
