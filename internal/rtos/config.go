package rtos

import (
	"os"

	yaml "github.com/goccy/go-yaml"
)

// TaskSpec is one line of a demo task set: timing parameters plus a
// human name and a GPIO-style color label. The color is only carried in
// the config; the kernel and the console trace do not read it.
type TaskSpec struct {
	Name   string `yaml:"name"`
	Color  string `yaml:"color"`
	C      uint32 `yaml:"c_ticks"`
	D      uint32 `yaml:"d_ticks"`
	T      uint32 `yaml:"t_ticks"`
	Legacy bool   `yaml:"legacy"`
}

// Config is the shape of a task-set YAML file passed to Load: the demo
// kernel's tick rate and task set.
type Config struct {
	TickMS   int        `yaml:"tick_ms"`
	TickRate int        `yaml:"tick_rate"` // ticks per simulated second; paces Kernel.Run's clock (the PDA horizon uses the admission controller's own TickRate of 1000)
	Tasks    []TaskSpec `yaml:"tasks"`
}

func defaultConfig() Config {
	return Config{
		TickMS:   1,
		TickRate: 1000,
		Tasks: []TaskSpec{
			{Name: "Red", Color: "red", C: 80, D: 200, T: 400},
			{Name: "Yellow", Color: "yellow", C: 150, D: 400, T: 800},
			{Name: "Green", Color: "green", C: 400, D: 1000, T: 1600},
		},
	}
}

// Load reads YAML and overrides the defaults; an empty path, or a path
// that can't be read, returns the defaults unchanged.
func Load(path string) Config {
	cfg := defaultConfig()
	if path == "" {
		return cfg
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}
	_ = yaml.Unmarshal(data, &cfg)

	if cfg.TickMS <= 0 {
		cfg.TickMS = 1
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 1000
	}
	if len(cfg.Tasks) == 0 {
		cfg.Tasks = defaultConfig().Tasks
	}
	return cfg
}
