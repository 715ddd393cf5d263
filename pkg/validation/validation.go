// Package validation checks player-supplied input before it reaches the
// simulation or the leaderboard.
package validation

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/opd-ai/go-slingshot/pkg/entity"
	"github.com/opd-ai/go-slingshot/pkg/physics"
)

// MaxPlayerNameLen bounds a stored player name in bytes.
const MaxPlayerNameLen = 32

// validPlayerNameChars allows letters, digits, spaces and a little
// punctuation.
var validPlayerNameChars = regexp.MustCompile(`^[\p{L}\p{N} \-_.'()]+$`)

// ErrNonFinite is returned for NaN or infinite launch parameters.
var ErrNonFinite = errors.New("value is not finite")

// ValidatePlayerName validates a player name and returns it trimmed.
func ValidatePlayerName(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("player name cannot be empty")
	}
	if len(name) > MaxPlayerNameLen {
		return "", fmt.Errorf("player name too long: %d characters (max %d)", len(name), MaxPlayerNameLen)
	}
	if !utf8.ValidString(name) {
		return "", fmt.Errorf("player name contains invalid UTF-8 characters")
	}

	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", fmt.Errorf("player name cannot be only whitespace")
	}
	for _, r := range trimmed {
		if unicode.IsControl(r) {
			return "", fmt.Errorf("player name contains control characters")
		}
	}
	if !validPlayerNameChars.MatchString(trimmed) {
		return "", fmt.Errorf("player name contains invalid characters (only letters, digits, spaces and - _ . ' ( ) allowed)")
	}

	return trimmed, nil
}

// ValidateLaunch checks the origin and release velocity of a launch.
func ValidateLaunch(origin, velocity physics.Vector2D) error {
	if !origin.IsFinite() {
		return fmt.Errorf("launch origin %v: %w", origin, ErrNonFinite)
	}
	if !velocity.IsFinite() {
		return fmt.Errorf("launch velocity %v: %w", velocity, ErrNonFinite)
	}
	return nil
}

// ValidateTemplate checks that a planet template can be simulated.
func ValidateTemplate(t entity.PlanetTemplate) error {
	if math.IsNaN(t.Radius) || math.IsInf(t.Radius, 0) || t.Radius <= 0 {
		return fmt.Errorf("invalid planet radius %v: must be positive", t.Radius)
	}
	if math.IsNaN(t.Mass) || math.IsInf(t.Mass, 0) || t.Mass <= 0 {
		return fmt.Errorf("invalid planet mass %v: must be positive", t.Mass)
	}
	if t.SurfacePattern < 0 || t.SurfacePattern >= entity.SurfacePatterns {
		return fmt.Errorf("invalid surface pattern %d: must be in [0, %d)", t.SurfacePattern, entity.SurfacePatterns)
	}
	return nil
}
