// pkg/entity/star.go
package entity

import (
	"math/rand/v2"
	"strings"

	"github.com/opd-ai/go-slingshot/pkg/physics"
)

// StarType fixes the physical and visual properties of a spectral class.
type StarType struct {
	Class  string
	Name   string
	Mass   float64
	Radius float64
	Color  string
}

// StarTypes lists the spectral classes from hottest to coolest.
var StarTypes = []StarType{
	{Class: "O", Name: "Blue Supergiant", Mass: 400000, Radius: 50, Color: "#9DB4FF"},
	{Class: "B", Name: "Blue-White Giant", Mass: 300000, Radius: 45, Color: "#A7B8FF"},
	{Class: "A", Name: "White Star", Mass: 250000, Radius: 40, Color: "#CAD7FF"},
	{Class: "F", Name: "Yellow-White Star", Mass: 200000, Radius: 35, Color: "#F8F7FF"},
	{Class: "G", Name: "Yellow Star", Mass: 180000, Radius: 30, Color: "#FFF4EA"},
	{Class: "K", Name: "Orange Star", Mass: 150000, Radius: 25, Color: "#FFD2A1"},
	{Class: "M", Name: "Red Dwarf", Mass: 100000, Radius: 20, Color: "#FFB56C"},
}

// RandomStarType picks a spectral class uniformly.
func RandomStarType(rng *rand.Rand) StarType {
	return StarTypes[rng.IntN(len(StarTypes))]
}

// StarTypeByClass looks up a spectral class by its letter, ignoring case.
func StarTypeByClass(class string) (StarType, bool) {
	for _, st := range StarTypes {
		if strings.EqualFold(st.Class, class) {
			return st, true
		}
	}
	return StarType{}, false
}

// Star is the single fixed gravitational anchor of a session.
type Star struct {
	BaseEntity
	Type StarType
}

// NewStar creates a star of the given type at position.
func NewStar(id ID, position physics.Vector2D, starType StarType) *Star {
	return &Star{
		BaseEntity: BaseEntity{
			ID:       id,
			Position: position,
			Mass:     starType.Mass,
			Radius:   starType.Radius,
			Color:    starType.Color,
		},
		Type: starType,
	}
}
