package utils

import (
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Booking  BookingConfig
	Payment  PaymentConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
	Migrate  bool
}

type BookingConfig struct {
	TTLMinutes   int    // how long a pending reservation is held
	SlotMinutes  int    // length of one bookable slot
	Timezone     string // facility timezone for calendar-day arithmetic
	SweepMinutes int    // periodic expiration sweep, 0 disables
}

type PaymentConfig struct {
	BaseURL     string
	AccessToken string
	SuccessURL  string
	FailureURL  string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("DB_MIGRATE", true)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("RESERVATION_TTL_MINUTES", 30)
	viper.SetDefault("SLOT_MINUTES", 60)
	viper.SetDefault("FACILITY_TIMEZONE", "UTC")
	viper.SetDefault("EXPIRY_SWEEP_MINUTES", 10)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
			Migrate:  viper.GetBool("DB_MIGRATE"),
		},
		Booking: BookingConfig{
			TTLMinutes:   viper.GetInt("RESERVATION_TTL_MINUTES"),
			SlotMinutes:  viper.GetInt("SLOT_MINUTES"),
			Timezone:     viper.GetString("FACILITY_TIMEZONE"),
			SweepMinutes: viper.GetInt("EXPIRY_SWEEP_MINUTES"),
		},
		Payment: PaymentConfig{
			BaseURL:     viper.GetString("PAYMENT_BASE_URL"),
			AccessToken: viper.GetString("PAYMENT_ACCESS_TOKEN"),
			SuccessURL:  viper.GetString("PAYMENT_SUCCESS_URL"),
			FailureURL:  viper.GetString("PAYMENT_FAILURE_URL"),
		},
	}

	return config, nil
}
