// Package config loads the playground configuration: an embedded default
// YAML document overlaid by an optional file on disk.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/fpsplayground/scenery"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

var ErrInvalid = errors.New("config: invalid")

type Config struct {
	LogLevel   string           `yaml:"log_level"`
	SentryDSN  string           `yaml:"sentry_dsn"`
	Window     WindowConfig     `yaml:"window"`
	Controller ControllerConfig `yaml:"controller"`
	Player     PlayerConfig     `yaml:"player"`
	Scene      SceneConfig      `yaml:"scene"`
}

type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	TPS    int    `yaml:"tps"`
}

// ControllerConfig tunes the first-person controller.
type ControllerConfig struct {
	InvertY               bool    `yaml:"invert_y"`
	LookSensitivity       float64 `yaml:"look_sensitivity"`
	MaxPitch              float64 `yaml:"max_pitch"`
	MoveSpeed             float64 `yaml:"move_speed"`
	JumpImpulse           float64 `yaml:"jump_impulse"`
	JumpVelocityThreshold float64 `yaml:"jump_velocity_threshold"`
	EyeHeight             float64 `yaml:"eye_height"`

	SwayIntensity float64    `yaml:"sway_intensity"`
	SwaySmoothing float64    `yaml:"sway_smoothing"`
	MountOffset   mgl64.Vec3 `yaml:"mount_offset"`
	MuzzleOffset  mgl64.Vec3 `yaml:"muzzle_offset"`

	AutoFire           bool          `yaml:"auto_fire"`
	FireInterval       time.Duration `yaml:"fire_interval"`
	ProjectileSpeed    float64       `yaml:"projectile_speed"`
	ProjectileRadius   float64       `yaml:"projectile_radius"`
	ProjectileLifetime time.Duration `yaml:"projectile_lifetime"`
}

type PlayerConfig struct {
	Spawn         mgl64.Vec3 `yaml:"spawn"`
	Radius        float64    `yaml:"radius"`
	HalfHeight    float64    `yaml:"half_height"`
	Mass          float64    `yaml:"mass"`
	Friction      float64    `yaml:"friction"`
	LinearDamping float64    `yaml:"linear_damping"`
}

type SceneConfig struct {
	Gravity  float64         `yaml:"gravity"`
	Ground   GroundConfig    `yaml:"ground"`
	Clusters []ClusterConfig `yaml:"clusters"`
}

// GroundConfig is a flat slab; Center is the middle of its top face.
type GroundConfig struct {
	Center    mgl64.Vec3 `yaml:"center"`
	Width     float64    `yaml:"width"`
	Depth     float64    `yaml:"depth"`
	Thickness float64    `yaml:"thickness"`
}

type ClusterConfig struct {
	Name          string     `yaml:"name"`
	Model         string     `yaml:"model"`
	Count         int        `yaml:"count"`
	Radius        float64    `yaml:"radius"`
	Center        mgl64.Vec3 `yaml:"center"`
	Seed          uint64     `yaml:"seed"`
	CastShadow    bool       `yaml:"cast_shadow"`
	ReceiveShadow bool       `yaml:"receive_shadow"`
}

// Params converts the cluster section to placement parameters.
func (c ClusterConfig) Params() scenery.ClusterParams {
	return scenery.ClusterParams{
		Name:          c.Name,
		Model:         c.Model,
		Count:         c.Count,
		Radius:        c.Radius,
		Center:        c.Center,
		Seed:          c.Seed,
		CastShadow:    c.CastShadow,
		ReceiveShadow: c.ReceiveShadow,
	}
}

// Default returns the embedded configuration.
func Default() (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal default.yaml: %w", err)
	}
	return &cfg, nil
}

// Load returns the embedded defaults overlaid with the file at path. An empty
// path loads the defaults only. The result is validated.
func Load(path string) (*Config, error) {
	cfg, err := Default()
	if err != nil {
		return nil, err
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: load %s: %w", path, err)
		}
		if err := Parse(data, cfg); err != nil {
			return nil, fmt.Errorf("config: unmarshal %s: %w", path, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse overlays the YAML document data onto cfg. Keys absent from data keep
// their current values; lists are replaced as a whole.
func Parse(data []byte, cfg *Config) error {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate reports every nonsensical value.
func (c *Config) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%w: %s must be positive, got %v", ErrInvalid, name, v))
		}
	}

	ctl := c.Controller
	positive("controller.look_sensitivity", ctl.LookSensitivity)
	positive("controller.max_pitch", ctl.MaxPitch)
	positive("controller.move_speed", ctl.MoveSpeed)
	positive("controller.jump_impulse", ctl.JumpImpulse)
	positive("controller.jump_velocity_threshold", ctl.JumpVelocityThreshold)
	positive("controller.sway_smoothing", ctl.SwaySmoothing)
	positive("controller.fire_interval", ctl.FireInterval.Seconds())
	positive("controller.projectile_speed", ctl.ProjectileSpeed)
	positive("controller.projectile_radius", ctl.ProjectileRadius)
	positive("controller.projectile_lifetime", ctl.ProjectileLifetime.Seconds())
	if ctl.MaxPitch >= 1.5707963267948966 {
		errs = append(errs, fmt.Errorf("%w: controller.max_pitch must be below pi/2, got %v", ErrInvalid, ctl.MaxPitch))
	}
	if ctl.SwayIntensity < 0 {
		errs = append(errs, fmt.Errorf("%w: controller.sway_intensity must not be negative", ErrInvalid))
	}

	positive("player.radius", c.Player.Radius)
	positive("player.mass", c.Player.Mass)
	if c.Player.HalfHeight < 0 {
		errs = append(errs, fmt.Errorf("%w: player.half_height must not be negative", ErrInvalid))
	}

	positive("scene.ground.width", c.Scene.Ground.Width)
	positive("scene.ground.depth", c.Scene.Ground.Depth)
	positive("scene.ground.thickness", c.Scene.Ground.Thickness)

	names := make(map[string]struct{}, len(c.Scene.Clusters))
	for i, cl := range c.Scene.Clusters {
		if cl.Name == "" {
			errs = append(errs, fmt.Errorf("%w: scene.clusters[%d] needs a name", ErrInvalid, i))
		} else if _, dup := names[cl.Name]; dup {
			errs = append(errs, fmt.Errorf("%w: scene.clusters[%d] duplicates name %q", ErrInvalid, i, cl.Name))
		}
		names[cl.Name] = struct{}{}
		if _, err := scenery.Lookup(cl.Model); err != nil {
			errs = append(errs, fmt.Errorf("%w: scene.clusters[%d]: %w", ErrInvalid, i, err))
		}
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("%w: window size must be positive", ErrInvalid))
	}
	return errors.Join(errs...)
}
