package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultBeta      = 2.0
	DefaultTimestep  = 0.001
	DefaultDiffusion = 1.0
	DefaultSteps     = 100000
	DefaultBins      = 50
)

type Config struct {
	Potential string  `yaml:"potential"`
	Beta      float64 `yaml:"beta"`
	Timestep  float64 `yaml:"timestep"`
	Diffusion float64 `yaml:"diffusion"`
	Seed      int64   `yaml:"seed"`

	TPS      TPSConfig      `yaml:"tps"`
	Replica  ReplicaConfig  `yaml:"replica"`
	Umbrella UmbrellaConfig `yaml:"umbrella"`
}

type TPSConfig struct {
	Mode          string `yaml:"mode"` // "fixed" or "flexible"
	PathLength    int    `yaml:"path_length"`
	MaxSteps      int    `yaml:"max_steps"`
	Trials        int    `yaml:"trials"`
	Equilibration int    `yaml:"equilibration"`
	OutputStride  int    `yaml:"output_stride"`
}

type ReplicaConfig struct {
	Betas             []float64 `yaml:"betas"`
	Steps             int       `yaml:"steps"`
	ExchangeFrequency int       `yaml:"exchange_frequency"`
	OutputStride      int       `yaml:"output_stride"`
	SwapLabels        bool      `yaml:"swap_labels"`
	AdjacentPairs     bool      `yaml:"adjacent_pairs"`
}

type UmbrellaConfig struct {
	Centers       []float64 `yaml:"centers"`
	ForceConstant float64   `yaml:"force_constant"`
	Steps         int       `yaml:"steps"`
	Equilibration int       `yaml:"equilibration"`
	Bins          int       `yaml:"bins"`
	Lo            float64   `yaml:"lo"`
	Hi            float64   `yaml:"hi"`
}

func DefaultConfig() *Config {
	return &Config{
		Potential: "doublewell",
		Beta:      DefaultBeta,
		Timestep:  DefaultTimestep,
		Diffusion: DefaultDiffusion,
		Seed:      1,
		TPS: TPSConfig{
			Mode:          "flexible",
			PathLength:    500,
			MaxSteps:      5000,
			Trials:        1000,
			Equilibration: 100,
			OutputStride:  10,
		},
		Replica: ReplicaConfig{
			Betas:             []float64{1.0, 1.5, 2.0, 3.0},
			Steps:             DefaultSteps,
			ExchangeFrequency: 100,
			OutputStride:      10,
		},
		Umbrella: UmbrellaConfig{
			Centers:       []float64{-1.5, -1.0, -0.5, 0.0, 0.5, 1.0, 1.5},
			ForceConstant: 20.0,
			Steps:         DefaultSteps,
			Equilibration: 1000,
			Bins:          DefaultBins,
			Lo:            -2.0,
			Hi:            2.0,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
