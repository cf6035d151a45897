package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/ppiankov/evadvisor/internal/model"
	"github.com/ppiankov/evadvisor/internal/pipeline"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version is the evadvisor release
const Version = "v0.1.0"

var (
	cfgFile string
	verbose bool
	mode    string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "evadvisor",
	Short: "evadvisor - EV market advisor chat assistant",
	Long: `evadvisor answers questions about electric vehicles: which EV to buy,
fleet transitions, EV policy, and selling or trading in a car.

Each message is classified into one intent (greeting, recommendation,
policy, fleet, selling, farewell, or unknown) by ordered keyword rules or
by a small classifier trained at startup, then answered from a fixed
response table. An optional role (consumer, policymaker, fleet_manager,
dealer) tailors answers to the vehicle segment the message mentions.

There is no live data: every figure is a fixed market snapshot.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "evadvisor %s\n", Version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.evadvisor/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&mode, "mode", model.ModeRules, "intent resolver (rules, learned)")

	// Bind flags to viper
	_ = viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("resolver.mode", rootCmd.PersistentFlags().Lookup("mode"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in .env, the config file and ENV variables
func initConfig() {
	if err := godotenv.Load(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Loaded .env\n")
	}

	registerDefaults(model.DefaultConfig())

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(home + "/.evadvisor")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// EVADVISOR_RESOLVER_MODE=learned, EVADVISOR_SERVER_ADDR=:9090, ...
	viper.SetEnvPrefix("EVADVISOR")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// registerDefaults makes every key known to viper so env vars can override it
func registerDefaults(cfg *model.Config) {
	viper.SetDefault("resolver.mode", cfg.Resolver.Mode)
	viper.SetDefault("resolver.min_confidence", cfg.Resolver.MinConfidence)
	viper.SetDefault("training.iterations", cfg.Training.Iterations)
	viper.SetDefault("training.learning_rate", cfg.Training.LearningRate)
	viper.SetDefault("training.l2", cfg.Training.L2)
	viper.SetDefault("session.ttl", cfg.Session.TTL)
	viper.SetDefault("session.max_turns", cfg.Session.MaxTurns)
	viper.SetDefault("server.addr", cfg.Server.Addr)
	viper.SetDefault("server.requests_per_second", cfg.Server.RequestsPerSecond)
	viper.SetDefault("server.burst", cfg.Server.Burst)
	viper.SetDefault("server.read_timeout", cfg.Server.ReadTimeout)
	viper.SetDefault("batch.workers", cfg.Batch.Workers)
	viper.SetDefault("output.verbose", cfg.Output.Verbose)
}

// loadConfig builds the effective configuration: defaults, then config
// file, then env, then flags
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// buildPipeline loads the config and constructs the advisor pipeline
func buildPipeline() (*model.Config, *pipeline.Pipeline, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("create pipeline: %w", err)
	}

	if cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, "Resolver: %s\n", p.Mode())
	}

	return cfg, p, nil
}
