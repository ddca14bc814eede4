package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/slighter12/go-lib/database/postgres"
)

const (
	defaultPath               = "."
	defaultMaxRequestBodySize = "100KB"

	defaultGeocodeTimeout   = 5 * time.Second
	defaultGeocodeCacheTTL  = 24 * time.Hour
	defaultCarrierTimeout   = 10 * time.Second
	defaultBreakerFailures  = 5
	defaultBreakerOpenDelay = 30 * time.Second
	defaultMaxOpenConns     = 20
	defaultMaxIdleConns     = 5
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port               int    `json:"port" yaml:"port"`
		MaxRequestBodySize string `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		Timeouts           struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	Postgres *postgres.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`

	// Pool bounds the sql.DB connection pool. Requests beyond MaxOpenConns queue.
	Pool PoolConfig `json:"pool" yaml:"pool"`

	SecretKey struct {
		Access string `json:"access" yaml:"access"`
	} `json:"secretKey" yaml:"secretKey"`

	Warehouse WarehouseConfig `json:"warehouse" yaml:"warehouse"`

	Geocoding GeocodingConfig `json:"geocoding" yaml:"geocoding"`

	// Redis is optional; without it geocode results are not cached.
	Redis *RedisConfig `json:"redis" yaml:"redis"`

	Carrier CarrierConfig `json:"carrier" yaml:"carrier"`

	Checkout CheckoutConfig `json:"checkout" yaml:"checkout"`

	ShippingWebhook struct {
		Secret string `json:"secret" yaml:"secret"`
	} `json:"shippingWebhook" yaml:"shippingWebhook"`

	// PubSub configuration for order events
	PubSub *PubSubConfig `json:"pubsub" yaml:"pubsub"`

	// QRCode configuration for tracking labels
	QRCode *QRCodeConfig `json:"qrcode" yaml:"qrcode"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

type PoolConfig struct {
	MaxOpenConns    int           `json:"maxOpenConns" yaml:"maxOpenConns"`
	MaxIdleConns    int           `json:"maxIdleConns" yaml:"maxIdleConns"`
	ConnMaxLifetime time.Duration `json:"connMaxLifetime" yaml:"connMaxLifetime"`
}

// WarehouseConfig is the fixed shipment origin.
type WarehouseConfig struct {
	Name       string  `json:"name" yaml:"name"`
	Company    string  `json:"company" yaml:"company"`
	Email      string  `json:"email" yaml:"email"`
	Phone      string  `json:"phone" yaml:"phone"`
	Street     string  `json:"street" yaml:"street"`
	Locality   string  `json:"locality" yaml:"locality"`
	Region     string  `json:"region" yaml:"region"`
	PostalCode string  `json:"postalCode" yaml:"postalCode"`
	Country    string  `json:"country" yaml:"country"`
	Lat        float64 `json:"lat" yaml:"lat"`
	Lng        float64 `json:"lng" yaml:"lng"`
}

type GeocodingConfig struct {
	Primary   GeocodeProviderConfig `json:"primary" yaml:"primary"`
	Secondary GeocodeProviderConfig `json:"secondary" yaml:"secondary"`
	CacheTTL  time.Duration         `json:"cacheTtl" yaml:"cacheTtl"`
}

// GeocodeProviderConfig configures one geocoding backend.
// Provider is "nominatim" or "google".
type GeocodeProviderConfig struct {
	Provider  string        `json:"provider" yaml:"provider"`
	BaseURL   string        `json:"baseUrl" yaml:"baseUrl"`
	APIKey    string        `json:"apiKey" yaml:"apiKey"`
	UserAgent string        `json:"userAgent" yaml:"userAgent"`
	Timeout   time.Duration `json:"timeout" yaml:"timeout"`
}

type RedisConfig struct {
	Addr     string `json:"addr" yaml:"addr"`
	Password string `json:"password" yaml:"password"`
	DB       int    `json:"db" yaml:"db"`
}

type CarrierConfig struct {
	BaseURL  string        `json:"baseUrl" yaml:"baseUrl"`
	APIKey   string        `json:"apiKey" yaml:"apiKey"`
	Currency string        `json:"currency" yaml:"currency"`
	Timeout  time.Duration `json:"timeout" yaml:"timeout"`
	Breaker  BreakerConfig `json:"breaker" yaml:"breaker"`
}

type BreakerConfig struct {
	// ConsecutiveFailures opens the breaker once reached.
	ConsecutiveFailures uint32        `json:"consecutiveFailures" yaml:"consecutiveFailures"`
	OpenTimeout         time.Duration `json:"openTimeout" yaml:"openTimeout"`
	HalfOpenRequests    uint32        `json:"halfOpenRequests" yaml:"halfOpenRequests"`
}

type CheckoutConfig struct {
	// AsyncShipment publishes order.committed instead of creating the shipment in-process.
	AsyncShipment  bool     `json:"asyncShipment" yaml:"asyncShipment"`
	PaymentMethods []string `json:"paymentMethods" yaml:"paymentMethods"`
}

// PubSubConfig defines Pub/Sub configuration for event publishing
type PubSubConfig struct {
	// Provider type: "local" for local HTTP or "google" for Google Pub/Sub
	Provider string `json:"provider" yaml:"provider"`

	ProjectID string `json:"projectId" yaml:"projectId"`
	TopicID   string `json:"topicId" yaml:"topicId"`

	// Local HTTP endpoint of the fulfillment worker (for local provider)
	LocalEndpoint string `json:"localEndpoint" yaml:"localEndpoint"`
}

type QRCodeConfig struct {
	Size                 int    `json:"size" yaml:"size"`
	ErrorCorrectionLevel string `json:"errorCorrectionLevel" yaml:"errorCorrectionLevel"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			searchPaths = append(searchPaths, filepath.Join(pwd, path))
		}
	}

	configFile, found := findConfigFile(searchPaths, currEnv+".yaml")
	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// CARRIER_APIKEY -> carrier.apiKey, aligned with the YAML key casing.
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			return canonicalizeEnvKey(k, existingConfigMap), v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
			MatchName: func(mapKey, fieldName string) bool {
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func findConfigFile(searchPaths []string, name string) (string, bool) {
	for _, path := range searchPaths {
		candidate := filepath.Join(path, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}
	}

	return "", false
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	if cfg.Postgres == nil {
		return nil, errors.New("postgres configuration is required")
	}
	cfg.Postgres.Replicas = buildReplicasFromEnv()

	cfg.applyDefaults()

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if strings.TrimSpace(c.HTTP.MaxRequestBodySize) == "" {
		c.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}
	if c.Pool.MaxOpenConns <= 0 {
		c.Pool.MaxOpenConns = defaultMaxOpenConns
	}
	if c.Pool.MaxIdleConns <= 0 {
		c.Pool.MaxIdleConns = defaultMaxIdleConns
	}
	if c.Geocoding.Primary.Timeout <= 0 {
		c.Geocoding.Primary.Timeout = defaultGeocodeTimeout
	}
	if c.Geocoding.Secondary.Timeout <= 0 {
		c.Geocoding.Secondary.Timeout = defaultGeocodeTimeout
	}
	if c.Geocoding.CacheTTL <= 0 {
		c.Geocoding.CacheTTL = defaultGeocodeCacheTTL
	}
	if c.Carrier.Timeout <= 0 {
		c.Carrier.Timeout = defaultCarrierTimeout
	}
	if c.Carrier.Currency == "" {
		c.Carrier.Currency = "EUR"
	}
	if c.Carrier.Breaker.ConsecutiveFailures == 0 {
		c.Carrier.Breaker.ConsecutiveFailures = defaultBreakerFailures
	}
	if c.Carrier.Breaker.OpenTimeout <= 0 {
		c.Carrier.Breaker.OpenTimeout = defaultBreakerOpenDelay
	}
	if c.Carrier.Breaker.HalfOpenRequests == 0 {
		c.Carrier.Breaker.HalfOpenRequests = 1
	}
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}

// buildReplicasFromEnv reads POSTGRES_REPLICAS_{index}_{HOST,PORT,USERNAME,PASSWORD}.
func buildReplicasFromEnv() []postgres.ConnectionConfig {
	var replicas []postgres.ConnectionConfig

	for i := 0; ; i++ {
		prefix := "POSTGRES_REPLICAS_" + strconv.Itoa(i) + "_"

		host := os.Getenv(prefix + "HOST")
		port := os.Getenv(prefix + "PORT")
		if host == "" || port == "" {
			break
		}

		replicas = append(replicas, postgres.ConnectionConfig{
			Host:     host,
			Port:     port,
			UserName: os.Getenv(prefix + "USERNAME"),
			Password: os.Getenv(prefix + "PASSWORD"),
		})
	}

	return replicas
}
