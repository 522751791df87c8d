package config

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load initializes the configuration from file and environment variables.
func Load(cfgFile string) {
	// explicit .env loading; a missing .env is fine
	_ = godotenv.Load()

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Search config in the working directory with name "config" (yaml).
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("MRBENCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// Set defaults
	viper.SetDefault("project_root", ".")
	viper.SetDefault("build_dir", "build")
	viper.SetDefault("benchmarks_dir", filepath.Join("build", "Benchmarks"))
	viper.SetDefault("results_dir", filepath.Join("build", "BenchmarkResults"))
	viper.SetDefault("plots_dir", filepath.Join("build", "BenchmarkPlots"))
	viper.SetDefault("history_db", "mrbench_history.db")
	viper.SetDefault("build_descriptor", "meson.build")
	viper.SetDefault("multithread_marker", "MultiThread")
	viper.SetDefault("nominal_threads", 10)
	viper.SetDefault("settle_seconds", 2)
	viper.SetDefault("run_timeout", 600)
	viper.SetDefault("metrics_port", 0)
	viper.SetDefault("verbose", false)

	// If a config file is found, read it in. Absence is not an error.
	_ = viper.ReadInConfig()
}

// Config holds the resolved pipeline configuration. Directories are explicit
// values created once at pipeline start and read-only afterwards.
type Config struct {
	ProjectRoot     string
	BuildDir        string
	BenchmarksDir   string
	ResultsDir      string
	PlotsDir        string
	HistoryDB       string
	BuildDescriptor string

	MultithreadMarker string
	NominalThreads    int

	SettleDelay time.Duration
	RunTimeout  time.Duration
	MetricsPort int
	Verbose     bool
}

// FromViper builds a Config from the currently loaded viper state.
// Relative directories are resolved against the project root.
func FromViper() Config {
	root := viper.GetString("project_root")
	resolve := func(p string) string {
		if filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(root, p)
	}

	return Config{
		ProjectRoot:       root,
		BuildDir:          resolve(viper.GetString("build_dir")),
		BenchmarksDir:     resolve(viper.GetString("benchmarks_dir")),
		ResultsDir:        resolve(viper.GetString("results_dir")),
		PlotsDir:          resolve(viper.GetString("plots_dir")),
		HistoryDB:         resolve(viper.GetString("history_db")),
		BuildDescriptor:   resolve(viper.GetString("build_descriptor")),
		MultithreadMarker: viper.GetString("multithread_marker"),
		NominalThreads:    viper.GetInt("nominal_threads"),
		SettleDelay:       time.Duration(viper.GetInt("settle_seconds")) * time.Second,
		RunTimeout:        time.Duration(viper.GetInt("run_timeout")) * time.Second,
		MetricsPort:       viper.GetInt("metrics_port"),
		Verbose:           viper.GetBool("verbose"),
	}
}
