// Package config handles engine configuration loading and management.
package config

// Config holds all engine settings.
type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Renderer RendererConfig `yaml:"renderer"`
	Camera   CameraConfig   `yaml:"camera"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// RendererConfig holds rasterizer settings.
type RendererConfig struct {
	Wireframe  bool     `yaml:"wireframe"`
	ClearColor [4]uint8 `yaml:"clear_color"` // RGBA
	FillColor  [4]uint8 `yaml:"fill_color"`
}

// CameraConfig holds camera and input settings.
type CameraConfig struct {
	FOVDegrees    float64 `yaml:"fov_degrees"`
	Near          float64 `yaml:"near"`
	Far           float64 `yaml:"far"`
	MovementSpeed float64 `yaml:"movement_speed"`
	RotationSpeed float64 `yaml:"rotation_speed"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  800,
			Height: 600,
			Title:  "softrender",
		},
		Renderer: RendererConfig{
			Wireframe:  false,
			ClearColor: [4]uint8{0, 0, 0, 255},
			FillColor:  [4]uint8{255, 255, 255, 255},
		},
		Camera: CameraConfig{
			FOVDegrees:    60,
			Near:          0.1,
			Far:           100,
			MovementSpeed: 5,
			RotationSpeed: 2,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
