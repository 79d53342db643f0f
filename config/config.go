package config

import (
	"errors"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"

	"sched-metrics/internal/schedulers"
)

type AnalyzerConfig struct {
	Port             int                  `mapstructure:"port"`
	LogLevel         string               `mapstructure:"log_level"`
	TestDir          string               `mapstructure:"test_dir"`
	WorkDir          string               `mapstructure:"work_dir"`
	OutputCSV        string               `mapstructure:"output_csv"`
	SimulatorTimeout time.Duration        `mapstructure:"simulator_timeout"`
	CollectorURL     string               `mapstructure:"collector_url"`
	Schedulers       []schedulers.Variant `mapstructure:"schedulers"`
}

var once sync.Once
var config *AnalyzerConfig
var configErr error

// GetAnalyzerConfig loads the configuration once per process. Later calls
// return the first result regardless of path.
func GetAnalyzerConfig(path string) (*AnalyzerConfig, error) {
	once.Do(func() {
		config, configErr = Load(path)
	})
	return config, configErr
}

// Load reads a YAML config. An empty path searches ./config.yaml; a missing
// file leaves the defaults in place.
func Load(path string) (*AnalyzerConfig, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("SCHEDMETRICS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &AnalyzerConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	if len(cfg.Schedulers) == 0 {
		cfg.Schedulers = schedulers.DefaultVariants()
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", 9095)
	v.SetDefault("log_level", "info")
	v.SetDefault("test_dir", "testing")
	v.SetDefault("work_dir", ".")
	v.SetDefault("output_csv", "final_metrics.csv")
	v.SetDefault("simulator_timeout", 60*time.Second)
	v.SetDefault("collector_url", "")
}
