package model

import (
	"runtime"
	"time"
)

// Resolver modes
const (
	ModeRules   = "rules"
	ModeLearned = "learned"
)

// Config is the full evadvisor configuration. Field tags serve both viper
// (mapstructure) and `config show` / `config init` (yaml).
type Config struct {
	Resolver ResolverConfig `mapstructure:"resolver" yaml:"resolver"`
	Training TrainingConfig `mapstructure:"training" yaml:"training"`
	Session  SessionConfig  `mapstructure:"session" yaml:"session"`
	Server   ServerConfig   `mapstructure:"server" yaml:"server"`
	Batch    BatchConfig    `mapstructure:"batch" yaml:"batch"`
	Output   OutputConfig   `mapstructure:"output" yaml:"output"`
}

// ResolverConfig selects how intents are resolved
type ResolverConfig struct {
	Mode          string  `mapstructure:"mode" yaml:"mode"`                     // rules | learned
	MinConfidence float64 `mapstructure:"min_confidence" yaml:"min_confidence"` // learned mode: below this -> unknown
}

// TrainingConfig controls the one-shot classifier fit
type TrainingConfig struct {
	Iterations   int     `mapstructure:"iterations" yaml:"iterations"`
	LearningRate float64 `mapstructure:"learning_rate" yaml:"learning_rate"`
	L2           float64 `mapstructure:"l2" yaml:"l2"`
}

// SessionConfig controls in-memory chat history
type SessionConfig struct {
	TTL      time.Duration `mapstructure:"ttl" yaml:"ttl"`             // Idle sessions expire after this
	MaxTurns int           `mapstructure:"max_turns" yaml:"max_turns"` // 0 = unbounded
}

// ServerConfig controls `evadvisor serve`
type ServerConfig struct {
	Addr              string        `mapstructure:"addr" yaml:"addr"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second" yaml:"requests_per_second"`
	Burst             int           `mapstructure:"burst" yaml:"burst"`
	ReadTimeout       time.Duration `mapstructure:"read_timeout" yaml:"read_timeout"`
}

// BatchConfig controls `evadvisor batch`
type BatchConfig struct {
	Workers int `mapstructure:"workers" yaml:"workers"`
}

// OutputConfig controls CLI output
type OutputConfig struct {
	Verbose bool `mapstructure:"verbose" yaml:"verbose"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Resolver: ResolverConfig{
			Mode:          ModeRules,
			MinConfidence: 0,
		},
		Training: TrainingConfig{
			Iterations:   500,
			LearningRate: 2.0,
			L2:           0.001,
		},
		Session: SessionConfig{
			TTL:      30 * time.Minute,
			MaxTurns: 0,
		},
		Server: ServerConfig{
			Addr:              ":8080",
			RequestsPerSecond: 5,
			Burst:             10,
			ReadTimeout:       15 * time.Second,
		},
		Batch: BatchConfig{
			Workers: runtime.NumCPU(),
		},
	}
}
