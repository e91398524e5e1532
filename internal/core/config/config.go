package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type HTTP struct {
	Host            string
	Port            int
	ReadTimeoutSec  int
	WriteTimeoutSec int
	IdleTimeoutSec  int
	// CORSOrigins empty allows every origin.
	CORSOrigins []string
	// RateLimitRPS of 0 disables the per-IP limiter.
	RateLimitRPS      float64
	RateLimitBurst    int
	MaxBodyBytes      int64
	MaxInFlight       int64
	HandlerTimeoutSec int
}

type AdminHTTP struct {
	Host string
	Port int
}

type App struct {
	Name  string
	Env   string
	HTTP  HTTP
	Admin AdminHTTP
}

type LogFile struct {
	Enable     bool
	Filename   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

type Log struct {
	Level string
	JSON  bool
	File  LogFile
}

type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type DB struct {
	Driver             string
	DSN                string
	Username           string
	Password           string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	AutoMigrate        bool
	LogLevel           string
}

type Cache struct {
	Enabled bool
	TTLSec  int
}

func (c Cache) TTL() time.Duration { return time.Duration(c.TTLSec) * time.Second }

type Booking struct {
	// RejectOverlaps turns on the double-booking check at admission.
	RejectOverlaps           bool `mapstructure:"reject_overlaps"`
	PopularWindowDays        int  `mapstructure:"popular_window_days"`
	SuperHostMinReservations int  `mapstructure:"super_host_min_reservations"`
	TopTravelers             int  `mapstructure:"top_travelers"`
}

// Window is the trailing period used by the "last month" rankings.
func (b Booking) Window() time.Duration {
	return time.Duration(b.PopularWindowDays) * 24 * time.Hour
}

type Jobs struct {
	StatsWarmCron string `mapstructure:"stats_warm_cron"`
}

type Config struct {
	App     App
	Log     Log
	DB      DB
	Redis   Redis `mapstructure:"redis"`
	Cache   Cache
	Booking Booking
	Jobs    Jobs
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "booking-platform")
	v.SetDefault("app.env", "local")
	v.SetDefault("app.http.host", "0.0.0.0")
	v.SetDefault("app.http.port", 8080)
	v.SetDefault("app.http.readtimeoutsec", 10)
	v.SetDefault("app.http.writetimeoutsec", 15)
	v.SetDefault("app.http.idletimeoutsec", 60)
	v.SetDefault("app.http.ratelimitrps", 200)
	v.SetDefault("app.http.ratelimitburst", 400)
	v.SetDefault("app.http.maxbodybytes", 1<<20)
	v.SetDefault("app.http.maxinflight", 300)
	v.SetDefault("app.http.handlertimeoutsec", 10)
	v.SetDefault("app.admin.host", "127.0.0.1")
	v.SetDefault("app.admin.port", 8081)
	v.SetDefault("log.level", "info")
	v.SetDefault("db.driver", "memory")
	v.SetDefault("db.maxopenconns", 20)
	v.SetDefault("db.maxidleconns", 10)
	v.SetDefault("db.connmaxlifetimemin", 30)
	v.SetDefault("cache.ttlsec", 60)
	v.SetDefault("booking.reject_overlaps", false)
	v.SetDefault("booking.popular_window_days", 30)
	v.SetDefault("booking.super_host_min_reservations", 100)
	v.SetDefault("booking.top_travelers", 5)
	v.SetDefault("jobs.stats_warm_cron", "@every 5m")
}

// Default returns the built-in settings without reading a file.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var c Config
	_ = v.Unmarshal(&c)
	return &c
}

// Load reads path, or CONFIG_PATH, or ./configs/config.local.yaml. APP_* env
// vars override file values (APP_DB_DSN for db.dsn).
func Load(path string) (*Config, error) {
	v := viper.New()
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
		if path == "" {
			path = "./configs/config.local.yaml"
		}
	}
	setDefaults(v)
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.Booking.PopularWindowDays <= 0 {
		return nil, fmt.Errorf("booking.popular_window_days must be positive, got %d", c.Booking.PopularWindowDays)
	}
	return &c, nil
}
