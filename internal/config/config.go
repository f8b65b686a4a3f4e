package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Configuration struct {
	// Name of the instance, used in the user agent of outgoing requests.
	Name  string
	Https bool
	// Domain is the host name under which the instance is reachable.
	Domain string
	// Url is the instance's url. It is derived from Domain and Https.
	Url  *url.URL
	Port uint16
	// Debug, if true, lowers the log level to debug.
	Debug bool
	// DbUrl is the path to the SQLite database, which also holds the job queue.
	DbUrl            string
	MigrationsFolder string

	// Workers is the number of jobs processed in parallel.
	Workers int
	// SendConcurrency bounds the number of simultaneous outgoing requests made by a single dispatch.
	SendConcurrency int
	// SendTimeout bounds each outgoing request, so that an unresponsive server cannot stall a job.
	SendTimeout time.Duration
	// MaxAttempts is the number of times a dispatch is attempted when remote deliveries keep failing
	// with transient errors. After that the job is recorded as failed.
	MaxAttempts int
	// RetryInitial is the delay before the second attempt; it doubles with each attempt up to RetryMax.
	RetryInitial time.Duration
	RetryMax     time.Duration
	// RemoteRatePerSec limits the requests sent to a single remote host.
	RemoteRatePerSec float64
	RemoteBurst      int

	// RelayEnabled makes public dispatches also reach RelayInbox.
	RelayEnabled bool
	RelayInbox   *url.URL
	// CrossPost maps a service label, as given in the service_types option, to the webhook that receives
	// the cross-posted object.
	CrossPost map[string]string

	DeliveryRetention  time.Duration
	FailedJobRetention time.Duration
	// PruneSchedule is the cron spec of the removal of journal entries and failed jobs past retention.
	PruneSchedule string
	UserAgent     string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("name", "hermes")
	v.SetDefault("domain", "localhost:8080")
	v.SetDefault("https", false)
	v.SetDefault("port", 8080)
	v.SetDefault("db_url", "file:hermes.db?_journal_mode=WAL&_busy_timeout=5000")
	v.SetDefault("migrations_folder", "migrations")
	v.SetDefault("workers", 4)
	v.SetDefault("send_concurrency", 8)
	v.SetDefault("send_timeout", 30*time.Second)
	v.SetDefault("max_attempts", 8)
	v.SetDefault("retry_initial", 30*time.Second)
	v.SetDefault("retry_max", 6*time.Hour)
	v.SetDefault("remote_rate_per_sec", 5.0)
	v.SetDefault("remote_burst", 10)
	v.SetDefault("relay_enabled", false)
	v.SetDefault("delivery_retention", 7*24*time.Hour)
	v.SetDefault("failed_job_retention", 30*24*time.Hour)
	v.SetDefault("prune_schedule", "@hourly")
}

// ReadConfig reads hermes.yaml from the working directory or /etc/hermes; every key can be overridden by
// an environment variable prefixed with HERMES_. A missing file is not an error.
func ReadConfig() (Configuration, error) {
	v := viper.New()
	v.SetConfigName("hermes")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/hermes")
	v.SetEnvPrefix("HERMES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Configuration{}, err
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (cfg Configuration, err error) {
	cfg = Configuration{
		Name:               v.GetString("name"),
		Https:              v.GetBool("https"),
		Domain:             v.GetString("domain"),
		Port:               v.GetUint16("port"),
		Debug:              v.GetBool("debug"),
		DbUrl:              v.GetString("db_url"),
		MigrationsFolder:   v.GetString("migrations_folder"),
		Workers:            v.GetInt("workers"),
		SendConcurrency:    v.GetInt("send_concurrency"),
		SendTimeout:        v.GetDuration("send_timeout"),
		MaxAttempts:        v.GetInt("max_attempts"),
		RetryInitial:       v.GetDuration("retry_initial"),
		RetryMax:           v.GetDuration("retry_max"),
		RemoteRatePerSec:   v.GetFloat64("remote_rate_per_sec"),
		RemoteBurst:        v.GetInt("remote_burst"),
		RelayEnabled:       v.GetBool("relay_enabled"),
		CrossPost:          v.GetStringMapString("crosspost"),
		DeliveryRetention:  v.GetDuration("delivery_retention"),
		FailedJobRetention: v.GetDuration("failed_job_retention"),
		PruneSchedule:      v.GetString("prune_schedule"),
		UserAgent:          v.GetString("user_agent"),
	}

	scheme := "http"
	if cfg.Https {
		scheme = "https"
	}
	cfg.Url = &url.URL{Scheme: scheme, Host: cfg.Domain, Path: "/"}

	if relay := v.GetString("relay_inbox"); relay != "" {
		cfg.RelayInbox, err = url.Parse(relay)
		if err != nil {
			return cfg, fmt.Errorf("invalid relay_inbox: %w", err)
		}
	}
	if cfg.RelayEnabled && cfg.RelayInbox == nil {
		return cfg, errors.New("relay_enabled requires relay_inbox")
	}
	if cfg.RetryInitial <= 0 {
		return cfg, errors.New("retry_initial must be positive")
	}
	if cfg.RetryMax < cfg.RetryInitial {
		return cfg, errors.New("retry_max must not be shorter than retry_initial")
	}

	if cfg.UserAgent == "" {
		cfg.UserAgent = cfg.Name + " (+" + cfg.Url.String() + ")"
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.SendConcurrency <= 0 {
		cfg.SendConcurrency = 1
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}
	return cfg, nil
}
