package service

type Config struct {
	DatabaseUri             string  `envconfig:"DATABASE_URI" required:"true"`
	DatabaseMaxConns        int     `envconfig:"DATABASE_MAX_CONNS" default:"10"`
	DatabaseMaxIdleConns    int     `envconfig:"DATABASE_MAX_IDLE_CONNS" default:"5"`
	DatabaseConnMaxLifetime int     `envconfig:"DATABASE_CONN_MAX_LIFETIME" default:"1800"` // 30 minutes
	DatabaseReadTimeout     int     `envconfig:"DATABASE_READ_TIMEOUT" default:"10"`        // in seconds, 0 keeps the driver default
	InvoiceAmount           int64   `envconfig:"INVOICE_AMOUNT" required:"true"`            // sats per 30 days
	PaymentsEnabled         bool    `envconfig:"PAYMENTS_ENABLED" default:"true"`
	JWTSecret               []byte  `envconfig:"JWT_SECRET" required:"true"`
	JWTAccessTokenExpiry    int     `envconfig:"JWT_ACCESS_EXPIRY" default:"172800"` // in seconds, default 2 days
	AuthEventMaxAge         int     `envconfig:"AUTH_EVENT_MAX_AGE" default:"60"`    // in seconds
	AdminToken              string  `envconfig:"ADMIN_TOKEN"`
	SentryDSN               string  `envconfig:"SENTRY_DSN"`
	SentryTracesSampleRate  float64 `envconfig:"SENTRY_TRACES_SAMPLE_RATE"`
	DatadogAgentUrl         string  `envconfig:"DATADOG_AGENT_URL"`
	LogFilePath             string  `envconfig:"LOG_FILE_PATH"`
	Host                    string  `envconfig:"HOST" default:"localhost:3000"`
	Port                    int     `envconfig:"PORT" default:"3000"`
	PublicUrl               string  `envconfig:"PUBLIC_URL"`
	DefaultRateLimit        int     `envconfig:"DEFAULT_RATE_LIMIT" default:"10"`
	StrictRateLimit         int     `envconfig:"STRICT_RATE_LIMIT" default:"10"`
	BurstRateLimit          int     `envconfig:"BURST_RATE_LIMIT" default:"1"`
	EnablePrometheus        bool    `envconfig:"ENABLE_PROMETHEUS" default:"false"`
	PrometheusPort          int     `envconfig:"PROMETHEUS_PORT" default:"9092"`
	ParallelRelayThreshold  int     `envconfig:"PARALLEL_RELAY_THRESHOLD" default:"64"`
	BalanceSnapshotInterval int     `envconfig:"BALANCE_SNAPSHOT_INTERVAL" default:"0"` // in seconds, 0 disables the routine
	RabbitMQUri             string  `envconfig:"RABBITMQ_URI"`
	RabbitMQBalanceExchange string  `envconfig:"RABBITMQ_BALANCE_EXCHANGE" default:"relay_balance"`
}

// AuthUrl is the url signed into nostr auth events.
func (c *Config) AuthUrl() string {
	if c.PublicUrl != "" {
		return c.PublicUrl + "/v2/auth"
	}
	return "http://" + c.Host + "/v2/auth"
}
