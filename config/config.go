package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultConfigFile  = "config.properties"
	DefaultEnvironment = "TEST"
	redirectPath       = "/api/handleShopperRedirect"
)

type Config struct {
	ConfigFile string

	Port     string
	LogLevel string

	MerchantAccount string
	APIKey          string
	ClientKey       string

	Environment           string
	LiveEndpointURLPrefix string
	// ProviderTimeout bounds each provider call. Zero keeps the HTTP client default.
	ProviderTimeout time.Duration
	BaseURL         string

	ShopperEmail     string
	ShopperReference string
	StaticDir        string

	RabbitMQURL     string
	RabbitMQQueue   string
	ChannelPoolSize int
	NumWorkers      int
}

// key -> environment variable override
var envBindings = map[string]string{
	"port":             "PORT",
	"logLevel":         "LOG_LEVEL",
	"merchantAccount":  "MERCHANT_ACCOUNT",
	"apiKey":           "API_KEY",
	"clientKey":        "CLIENT_KEY",
	"environment":      "ADYEN_ENVIRONMENT",
	"liveUrlPrefix":    "LIVE_URL_PREFIX",
	"providerTimeout":  "PROVIDER_TIMEOUT",
	"baseUrl":          "BASE_URL",
	"shopperEmail":     "SHOPPER_EMAIL",
	"shopperReference": "SHOPPER_REFERENCE",
	"staticDir":        "STATIC_DIR",
	"rabbitmqUrl":      "RABBITMQ_URL",
	"rabbitmqQueue":    "RABBITMQ_QUEUE",
	"channelPoolSize":  "CHANNEL_POOL_SIZE",
	"numWorkers":       "NUM_WORKERS",
}

// LoadConfig reads the key/value file at path and applies environment overrides.
// A missing file is not an error: ConfigFile is left empty and only the
// environment and defaults apply.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if path == "" {
		path = DefaultConfigFile
	}
	v.SetConfigFile(path)
	v.SetConfigType("properties")

	loaded := path
	if err := v.ReadInConfig(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		loaded = ""
	}

	return &Config{
		ConfigFile:            loaded,
		Port:                  v.GetString("port"),
		LogLevel:              strings.ToLower(v.GetString("logLevel")),
		MerchantAccount:       strings.TrimSpace(v.GetString("merchantAccount")),
		APIKey:                strings.TrimSpace(v.GetString("apiKey")),
		ClientKey:             strings.TrimSpace(v.GetString("clientKey")),
		Environment:           strings.ToUpper(strings.TrimSpace(v.GetString("environment"))),
		LiveEndpointURLPrefix: strings.TrimSpace(v.GetString("liveUrlPrefix")),
		ProviderTimeout:       v.GetDuration("providerTimeout"),
		BaseURL:               strings.TrimRight(v.GetString("baseUrl"), "/"),
		ShopperEmail:          v.GetString("shopperEmail"),
		ShopperReference:      v.GetString("shopperReference"),
		StaticDir:             v.GetString("staticDir"),
		RabbitMQURL:           v.GetString("rabbitmqUrl"),
		RabbitMQQueue:         v.GetString("rabbitmqQueue"),
		ChannelPoolSize:       v.GetInt("channelPoolSize"),
		NumWorkers:            v.GetInt("numWorkers"),
	}, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("logLevel", "info")
	v.SetDefault("environment", DefaultEnvironment)
	v.SetDefault("baseUrl", "http://localhost:8080")
	v.SetDefault("shopperEmail", "shopper@example.com")
	v.SetDefault("shopperReference", "Checkout Demo Shopper")
	v.SetDefault("staticDir", "web/static")
	v.SetDefault("rabbitmqQueue", "payment_events")
	v.SetDefault("channelPoolSize", 10)
	v.SetDefault("numWorkers", 5)
}

// Missing lists the required keys that have no value.
func (c *Config) Missing() []string {
	var missing []string
	if c.MerchantAccount == "" {
		missing = append(missing, "merchantAccount")
	}
	if c.APIKey == "" {
		missing = append(missing, "apiKey")
	}
	if c.ClientKey == "" {
		missing = append(missing, "clientKey")
	}
	if c.Environment == "LIVE" && c.LiveEndpointURLPrefix == "" {
		missing = append(missing, "liveUrlPrefix")
	}
	return missing
}

// ReturnURL is where the provider sends the shopper back after a redirect.
func (c *Config) ReturnURL() string {
	return c.BaseURL + redirectPath
}

// EventsEnabled reports whether payment events go to RabbitMQ.
func (c *Config) EventsEnabled() bool {
	return c.RabbitMQURL != ""
}
