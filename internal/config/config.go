package config

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
// The values are read by viper from a config file or environment variables.
type Config struct {
	InputPath             string        `mapstructure:"INPUT_PATH"`
	OutputPath            string        `mapstructure:"OUTPUT_PATH"`
	EmailColumn           string        `mapstructure:"EMAIL_COLUMN"`
	ProcessInterval       time.Duration `mapstructure:"PROCESS_INTERVAL"`
	HeartbeatInterval     time.Duration `mapstructure:"HEARTBEAT_INTERVAL"`
	OrdersPath            string        `mapstructure:"ORDERS_PATH"`
	OrdersColumn          string        `mapstructure:"ORDERS_COLUMN"`
	OrdersRefreshInterval time.Duration `mapstructure:"ORDERS_REFRESH_INTERVAL"`
	DailySchedule         string        `mapstructure:"DAILY_SCHEDULE"`
	PublicDir             string        `mapstructure:"PUBLIC_DIR"`
	ServerAddress         string        `mapstructure:"SERVER_ADDRESS"`
	DBSource              string        `mapstructure:"DB_SOURCE"`
	LogLevel              string        `mapstructure:"LOG_LEVEL"`
}

var defaults = map[string]any{
	"INPUT_PATH":              "data/Coordinaten.xlsx",
	"OUTPUT_PATH":             "public/extrahierte_koordinaten.csv",
	"EMAIL_COLUMN":            "Inhalt der E-Mail",
	"PROCESS_INTERVAL":        30 * time.Second,
	"HEARTBEAT_INTERVAL":      60 * time.Second,
	"ORDERS_PATH":             "data/Bestellung.xlsx",
	"ORDERS_COLUMN":           "Gesamtanzahl",
	"ORDERS_REFRESH_INTERVAL": 30 * time.Second,
	"DAILY_SCHEDULE":          "0 0 * * *",
	"PUBLIC_DIR":              "public",
	"SERVER_ADDRESS":          "0.0.0.0:3000",
	"DB_SOURCE":               "",
	"LOG_LEVEL":               "info",
}

// LoadConfig reads configuration from app.env in path, overridden by environment variables.
// A missing config file is not an error: every key has a default.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.AutomaticEnv()

	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return
		}
	}

	err = v.Unmarshal(&config, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		secondsToDurationHook,
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)))
	if err != nil {
		return
	}

	err = config.validate()
	return
}

// secondsToDurationHook reads a bare integer such as PROCESS_INTERVAL=30 as seconds.
func secondsToDurationHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to != reflect.TypeOf(time.Duration(0)) {
		return data, nil
	}
	seconds, err := strconv.Atoi(data.(string))
	if err != nil {
		return data, nil
	}
	return time.Duration(seconds) * time.Second, nil
}

func (c Config) validate() error {
	intervals := []struct {
		key   string
		value time.Duration
	}{
		{"PROCESS_INTERVAL", c.ProcessInterval},
		{"HEARTBEAT_INTERVAL", c.HeartbeatInterval},
		{"ORDERS_REFRESH_INTERVAL", c.OrdersRefreshInterval},
	}
	for _, i := range intervals {
		if i.value <= 0 {
			return fmt.Errorf("config: %s must be positive, got %s", i.key, i.value)
		}
	}
	return nil
}
