// Package config loads the dashboard settings from configs/config.yml with
// environment overrides (BREWERY_ prefix, dots become underscores).
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata" // engine.timezone must resolve in minimal containers

	"github.com/spf13/viper"

	"brewery_dashboard/internal/engine"
)

// EnvPrefix is prepended to every environment override, e.g. BREWERY_SHEETS_API_KEY.
const EnvPrefix = "BREWERY"

type Config struct {
	Port      string          `mapstructure:"port"`
	Log       LogConfig       `mapstructure:"log"`
	DB        DBConfig        `mapstructure:"db"`
	Server    ServerConfig    `mapstructure:"server"`
	Sheets    SheetsConfig    `mapstructure:"sheets"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Trigger   TriggerConfig   `mapstructure:"trigger"`
	Refresh   RefreshConfig   `mapstructure:"refresh"`
	Vessels   []string        `mapstructure:"vessels"`
	Engine    EngineConfig    `mapstructure:"engine"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type DBConfig struct {
	Path string `mapstructure:"path"`
}

type ServerConfig struct {
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout"`
	StreamInterval    time.Duration `mapstructure:"stream_interval"`
}

type SheetsConfig struct {
	SpreadsheetID string `mapstructure:"spreadsheet_id"`
	Range         string `mapstructure:"range"`
	APIKey        string `mapstructure:"api_key"`
	Endpoint      string `mapstructure:"endpoint"` // empty means the public Google endpoint
}

type TelemetryConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	URL     string        `mapstructure:"url"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type TriggerConfig struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type RefreshConfig struct {
	Interval time.Duration `mapstructure:"interval"`
	// ManualLimit is the minimum gap between manual refreshes accepted by the API.
	ManualLimit time.Duration `mapstructure:"manual_limit"`
}

type EngineConfig struct {
	PrimingConstant float64        `mapstructure:"priming_constant"`
	FruitEfficiency float64        `mapstructure:"fruit_efficiency"`
	Timezone        string         `mapstructure:"timezone"`
	Columns         engine.Columns `mapstructure:"columns"`
}

// ErrMissingSetting is wrapped by Validate for each required key left blank.
var ErrMissingSetting = errors.New("missing required setting")

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("db.path", "app.db")

	v.SetDefault("server.read_header_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.stream_interval", 5*time.Second)

	// keys without a meaningful default are still registered so environment
	// overrides reach Unmarshal
	v.SetDefault("sheets.spreadsheet_id", "")
	v.SetDefault("sheets.range", "A1:ZZ1000")
	v.SetDefault("sheets.api_key", "")
	v.SetDefault("sheets.endpoint", "")
	v.SetDefault("telemetry.enabled", true)
	v.SetDefault("telemetry.url", "")
	v.SetDefault("telemetry.api_key", "")
	v.SetDefault("trigger.url", "")
	v.SetDefault("telemetry.timeout", 10*time.Second)
	v.SetDefault("trigger.timeout", 30*time.Second)

	v.SetDefault("refresh.interval", 5*time.Minute)
	v.SetDefault("refresh.manual_limit", 10*time.Second)

	v.SetDefault("vessels", engine.DefaultVessels())
	v.SetDefault("engine.priming_constant", engine.DefaultPrimingConstant)
	v.SetDefault("engine.fruit_efficiency", engine.DefaultFruitEfficiency)
	v.SetDefault("engine.timezone", "UTC")

	cols := engine.DefaultColumns()
	v.SetDefault("engine.columns.ferment_vessel", cols.FermentVessel)
	v.SetDefault("engine.columns.brewing_vessel", cols.BrewingVessel)
	v.SetDefault("engine.columns.transfer_vessel", cols.TransferVessel)
	v.SetDefault("engine.columns.batch_id", cols.BatchID)
	v.SetDefault("engine.columns.batch_url", cols.BatchURL)
	v.SetDefault("engine.columns.form_type", cols.FormType)
	v.SetDefault("engine.columns.date", cols.Date)
	v.SetDefault("engine.columns.stage", cols.Stage)
	v.SetDefault("engine.columns.gravity", cols.Gravity)
	v.SetDefault("engine.columns.ferment_ph", cols.FermentPH)
	v.SetDefault("engine.columns.brewing_ph", cols.BrewingPH)
	v.SetDefault("engine.columns.original_gravity", cols.OriginalGravity)
	v.SetDefault("engine.columns.volume_into_vessel", cols.VolumeIntoVessel)
	v.SetDefault("engine.columns.final_tank_volume", cols.FinalTankVolume)
	v.SetDefault("engine.columns.carbonation", cols.Carbonation)
	v.SetDefault("engine.columns.dissolved_oxygen", cols.DissolvedOxygen)
	v.SetDefault("engine.columns.operator", cols.Operator)
}

// Load reads config.yml from dir (missing file is fine, defaults and environment
// still apply) and decodes it into a Config.
func Load(dir string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.AddConfigPath(dir)
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// Validate reports the settings the service cannot start without.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Sheets.SpreadsheetID) == "" {
		errs = append(errs, fmt.Errorf("%w: sheets.spreadsheet_id", ErrMissingSetting))
	}
	if c.Telemetry.Enabled && strings.TrimSpace(c.Telemetry.URL) == "" {
		errs = append(errs, fmt.Errorf("%w: telemetry.url", ErrMissingSetting))
	}
	if c.Refresh.Interval <= 0 {
		errs = append(errs, fmt.Errorf("refresh.interval must be positive, got %s", c.Refresh.Interval))
	}
	return errors.Join(errs...)
}

// Location resolves engine.timezone; an unknown zone is an error.
func (c Config) Location() (*time.Location, error) {
	if c.Engine.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Engine.Timezone)
	if err != nil {
		return nil, fmt.Errorf("engine.timezone: %w", err)
	}
	return loc, nil
}

// EngineOptions maps the engine section onto engine.Options.
func (c Config) EngineOptions() (engine.Options, error) {
	loc, err := c.Location()
	if err != nil {
		return engine.Options{}, err
	}
	return engine.Options{
		Vessels:         c.Vessels,
		Columns:         c.Engine.Columns,
		Location:        loc,
		PrimingConstant: c.Engine.PrimingConstant,
		FruitEfficiency: c.Engine.FruitEfficiency,
	}, nil
}
