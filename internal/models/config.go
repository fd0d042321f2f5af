package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

const (
	ArrivalLayout = "15:04"

	DefaultFinalDestination = "3400 Civic Center Boulevard, Philadelphia, PA 19104"
)

var DefaultAllowedLines = []string{
	"Paoli/Thorndale Line",
	"Media/Wawa Line",
	"Airport Line",
	"Wilmington/Newark Line",
}

type CloudStorageConfig struct {
	Provider   string `mapstructure:"provider"`
	Region     string `mapstructure:"region"`
	BucketName string `mapstructure:"bucket_name"`
	Prefix     string `mapstructure:"prefix"`
}

type Config struct {
	GoogleMapsKey       string        `mapstructure:"google_maps_api_key"`
	FinalDestination    string        `mapstructure:"final_destination"`
	PreferredStation    string        `mapstructure:"preferred_station"`
	FallbackStations    []string      `mapstructure:"fallback_stations"`
	MorningArrival      string        `mapstructure:"morning_arrival"` // HH:MM, 24h
	EveningArrival      string        `mapstructure:"evening_arrival"` // HH:MM, 24h
	Timezone            string        `mapstructure:"timezone"`
	StationSearchRadius int           `mapstructure:"station_search_radius"` // metres
	StationKeyword      string        `mapstructure:"station_keyword"`
	StationQueryPrefix  string        `mapstructure:"station_query_prefix"`
	AllowedLines        []string      `mapstructure:"allowed_lines"`
	SkipWeekends        bool          `mapstructure:"skip_weekends"`
	RequestTimeout      time.Duration `mapstructure:"request_timeout"`
	LogFile             string        `mapstructure:"log_file"`

	OutputFormat    string `mapstructure:"output_format"`
	KafkaEnabled    bool   `mapstructure:"kafka_enabled"`
	KafkaBrokerList string `mapstructure:"kafka_broker_list"`
	KafkaTopic      string `mapstructure:"kafka_topic"`

	DatabaseURL  string             `mapstructure:"database_url"`
	CloudStorage CloudStorageConfig `mapstructure:"cloud_storage"`

	MapCenterLat float64 `mapstructure:"map_center_lat"`
	MapCenterLng float64 `mapstructure:"map_center_lng"`
	MapZoom      int     `mapstructure:"map_zoom"`
}

// SetDefaults registers every key so that AutomaticEnv can resolve it during Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("google_maps_api_key", "")
	v.SetDefault("final_destination", DefaultFinalDestination)
	v.SetDefault("preferred_station", "")
	v.SetDefault("fallback_stations", []string{})
	v.SetDefault("morning_arrival", "09:00")
	v.SetDefault("evening_arrival", "17:30")
	v.SetDefault("timezone", "America/New_York")
	v.SetDefault("station_search_radius", 3000)
	v.SetDefault("station_keyword", "train station")
	v.SetDefault("station_query_prefix", "SEPTA")
	v.SetDefault("allowed_lines", DefaultAllowedLines)
	v.SetDefault("skip_weekends", true)
	v.SetDefault("request_timeout", "10s")
	v.SetDefault("log_file", "route_details.log")

	v.SetDefault("output_format", "csv")
	v.SetDefault("kafka_enabled", false)
	v.SetDefault("kafka_broker_list", "localhost:9092")
	v.SetDefault("kafka_topic", "commute_analysis")

	v.SetDefault("database_url", "")
	v.SetDefault("cloud_storage.provider", "")
	v.SetDefault("cloud_storage.region", "us-east-1")
	v.SetDefault("cloud_storage.bucket_name", "")
	v.SetDefault("cloud_storage.prefix", "commutes")

	v.SetDefault("map_center_lat", 39.9526)
	v.SetDefault("map_center_lng", -75.1652)
	v.SetDefault("map_zoom", 11)
}

// LoadConfig initializes and reads the configuration using Viper.
// A missing config file is not an error; .env and the environment are enough.
func LoadConfig(v *viper.Viper, cfgFile string) (*Config, error) {
	// .env only fills variables that are not already set
	_ = godotenv.Load()

	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	decoderConfigOption := viper.DecoderConfigOption(func(config *mapstructure.DecoderConfig) {
		config.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	})
	if err := v.Unmarshal(&config, decoderConfigOption); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	config.FallbackStations = trimAll(config.FallbackStations)
	config.AllowedLines = trimAll(config.AllowedLines)

	return &config, nil
}

// Validate checks the settings every API-backed command depends on.
func (cfg *Config) Validate() error {
	if strings.TrimSpace(cfg.GoogleMapsKey) == "" {
		return errors.New("GOOGLE_MAPS_API_KEY must be set in .env file or environment")
	}

	for _, v := range []string{cfg.MorningArrival, cfg.EveningArrival} {
		if _, err := time.Parse(ArrivalLayout, v); err != nil {
			return fmt.Errorf("invalid time format: %s. Use HH:MM format (24-hour)", v)
		}
	}

	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}

	switch cfg.OutputFormat {
	case "csv", "json", "parquet":
	default:
		return fmt.Errorf("unsupported output format: %s", cfg.OutputFormat)
	}

	if cfg.StationSearchRadius <= 0 {
		return fmt.Errorf("station_search_radius must be positive, got %d", cfg.StationSearchRadius)
	}

	return nil
}

// Location returns the configured timezone. Validate must have passed.
func (cfg *Config) Location() *time.Location {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// ArrivalClock returns hour and minute of the morning or evening target arrival.
func (cfg *Config) ArrivalClock(morning bool) (int, int, error) {
	v := cfg.EveningArrival
	if morning {
		v = cfg.MorningArrival
	}
	t, err := time.Parse(ArrivalLayout, v)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time format: %s. Use HH:MM format (24-hour)", v)
	}
	return t.Hour(), t.Minute(), nil
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
