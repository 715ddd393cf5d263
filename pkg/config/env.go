// pkg/config/env.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// EnvPrefix starts every environment variable the game reads.
const EnvPrefix = "SLINGSHOT_"

// ApplyEnvironmentOverrides replaces settings with any SLINGSHOT_*
// variables present in the environment.
func (c *GameConfig) ApplyEnvironmentOverrides() error {
	var err error
	if c.Field.Width, err = getEnvFloat("FIELD_WIDTH", c.Field.Width); err != nil {
		return err
	}
	if c.Field.Height, err = getEnvFloat("FIELD_HEIGHT", c.Field.Height); err != nil {
		return err
	}
	if c.Physics.TimeStep, err = getEnvFloat("TIME_STEP", c.Physics.TimeStep); err != nil {
		return err
	}
	if c.Runtime.FrameRate, err = getEnvInt("FRAME_RATE", c.Runtime.FrameRate); err != nil {
		return err
	}
	c.Runtime.StarClass = strings.ToUpper(getEnvString("STAR_CLASS", c.Runtime.StarClass))
	if c.Runtime.Seed, err = getEnvUint("SEED", c.Runtime.Seed); err != nil {
		return err
	}
	if c.Audio.Enabled, err = getEnvBool("AUDIO_ENABLED", c.Audio.Enabled); err != nil {
		return err
	}
	c.Audio.MusicDir = getEnvString("MUSIC_DIR", c.Audio.MusicDir)
	if c.Audio.Volume, err = getEnvFloat("AUDIO_VOLUME", c.Audio.Volume); err != nil {
		return err
	}
	c.Leaderboard.Path = getEnvString("LEADERBOARD_PATH", c.Leaderboard.Path)
	return nil
}

func getEnvString(key, defaultValue string) string {
	if value, ok := os.LookupEnv(EnvPrefix + key); ok && value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value, ok := os.LookupEnv(EnvPrefix + key)
	if !ok || value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s%s %q: %w", EnvPrefix, key, value, err)
	}
	return n, nil
}

func getEnvUint(key string, defaultValue uint64) (uint64, error) {
	value, ok := os.LookupEnv(EnvPrefix + key)
	if !ok || value == "" {
		return defaultValue, nil
	}
	n, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s%s %q: %w", EnvPrefix, key, value, err)
	}
	return n, nil
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value, ok := os.LookupEnv(EnvPrefix + key)
	if !ok || value == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s%s %q: %w", EnvPrefix, key, value, err)
	}
	return f, nil
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	value, ok := os.LookupEnv(EnvPrefix + key)
	if !ok || value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s%s %q: %w", EnvPrefix, key, value, err)
	}
	return b, nil
}
