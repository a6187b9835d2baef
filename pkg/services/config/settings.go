package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const envPrefix = "ISG"

type Settings struct {
	Server   ServerSettings   `mapstructure:"server"`
	Database DatabaseSettings `mapstructure:"database"`
	Log      LogSettings      `mapstructure:"log"`
	Engine   EngineSettings   `mapstructure:"engine"`
}

type ServerSettings struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port" validate:"min=1,max=65535"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

type DatabaseSettings struct {
	Path string `mapstructure:"path" validate:"required"`
}

type LogSettings struct {
	Level string `mapstructure:"level" validate:"oneof=trace debug info warn error fatal panic disabled"`
}

type EngineSettings struct {
	BatchConcurrency int `mapstructure:"batch_concurrency" validate:"min=1,max=64"`
}

func (s ServerSettings) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

var validate = validator.New()

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("database.path", "isg.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("engine.batch_concurrency", 4)
}

// LoadSettings reads defaults, then the optional YAML file at path, then
// ISG_* environment variables (ISG_SERVER_PORT overrides server.port).
func LoadSettings(path string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Settings
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return &cfg, nil
}
