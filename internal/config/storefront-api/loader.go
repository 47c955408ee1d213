package storefront_api_config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	v.SetDefault("app.name", "storefront-api")
	v.SetDefault("app.env", "dev")
	v.SetDefault("app.version", "dev")
	v.SetDefault("server.http_addr", ":8080")
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.idle_timeout", "60s")
	v.SetDefault("server.graceful_timeout", "15s")
	v.SetDefault("server.cors_origins", []string{"http://localhost:5173"})

	v.SetDefault("db.dsn", "")
	v.SetDefault("db.max_conns", 20)
	v.SetDefault("db.min_conns", 2)
	v.SetDefault("db.max_conn_lifetime", "30m")
	v.SetDefault("db.max_conn_idle_time", "10m")
	v.SetDefault("db.health_check_period", "30s")
	v.SetDefault("db.query_timeout", "3s")

	v.SetDefault("otel.enable", false)
	v.SetDefault("otel.service_name", "storefront-api")
	v.SetDefault("otel.sample_ratio", 1.0)
	v.SetDefault("otel.otlp_endpoint", "localhost:4317")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	// secrets have no usable default; registering the keys lets env vars reach them
	v.SetDefault("auth.bearer_secret", "")
	v.SetDefault("auth.refresh_secret", "")
	v.SetDefault("auth.cookie_secret", "")
	v.SetDefault("auth.bearer_ttl", "20m")
	v.SetDefault("auth.session_ttl", "168h")
	v.SetDefault("auth.cookie_secure", false)

	v.SetDefault("s3.endpoint", "http://localhost:9000")
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "foodcart-payments")
	v.SetDefault("s3.access_key", "")
	v.SetDefault("s3.secret_key", "")
	v.SetDefault("s3.public_base_url", "http://localhost:9000/foodcart-payments")
	v.SetDefault("s3.path_style", true)

	v.SetDefault("kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("kafka.topic", "foodcart.order.placed")
	v.SetDefault("kafka.partitions", 3)
	v.SetDefault("kafka.replication_factor", 1)
	v.SetDefault("kafka.ensure_topic", true)

	v.SetDefault("outbox.workers", 1)
	v.SetDefault("outbox.batch_size", 100)
	v.SetDefault("outbox.wait_time", "1s")
	v.SetDefault("outbox.in_progress_ttl", "30s")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configs the API cannot run with. Missing secrets are fatal
// at startup rather than surfacing per request.
func (c *Config) Validate() error {
	switch {
	case c.DB.DSN == "":
		return ErrNoDSN
	case c.Auth.BearerSecret == "":
		return ErrNoBearerSecret
	case c.Auth.RefreshSecret == "":
		return ErrNoRefreshSecret
	case c.Auth.CookieSecret == "":
		return ErrNoCookieSecret
	}
	return nil
}
