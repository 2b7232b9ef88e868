package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/feral-file/ff-marketplace/internal/domain"
	"github.com/feral-file/ff-marketplace/internal/registry"
)

const (
	SERVICE_NAME = "marketplace-api"
	ENV_PREFIX   = "FF_MARKETPLACE"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// ChainConfig holds the EVM network the service reads from
type ChainConfig struct {
	RPCURL         string `mapstructure:"rpc_url"`
	ChainID        uint64 `mapstructure:"chain_id"`
	Name           string `mapstructure:"name"`
	NativeSymbol   string `mapstructure:"native_symbol"`
	NativeDecimals int32  `mapstructure:"native_decimals"`
	ExplorerURL    string `mapstructure:"explorer_url"`
	// ReadTimeout bounds a single eth_call attempt (e.g., "10s")
	ReadTimeout time.Duration `mapstructure:"read_timeout"`
	// ReadRetryMaxElapsed bounds the total time spent retrying a read
	ReadRetryMaxElapsed time.Duration `mapstructure:"read_retry_max_elapsed"`
	ReadMaxRetries      uint64        `mapstructure:"read_max_retries"`
}

// URIConfig holds URI normalizer configuration
type URIConfig struct {
	IPFSGateway    string `mapstructure:"ipfs_gateway"`
	ArweaveGateway string `mapstructure:"arweave_gateway"`
}

// CollectionConfig holds the aggregator configuration
type CollectionConfig struct {
	DefaultScanSize        int           `mapstructure:"default_scan_size"`
	MaxScanSize            int           `mapstructure:"max_scan_size"`
	FanOut                 int           `mapstructure:"fan_out"`
	MetadataTimeout        time.Duration `mapstructure:"metadata_timeout"`
	ViewTimeout            time.Duration `mapstructure:"view_timeout"`
	ViewerIdleTTL          time.Duration `mapstructure:"viewer_idle_ttl"`
	PlaceholderImage       string        `mapstructure:"placeholder_image"`
	PlaceholderDescription string        `mapstructure:"placeholder_description"`
}

// DashboardConfig holds the contract page configuration
type DashboardConfig struct {
	MaxOwnedScan int `mapstructure:"max_owned_scan"`
}

// ActionsConfig holds transaction preparation defaults
type ActionsConfig struct {
	// TipValue is the send-tip amount in native units (e.g., "0.001")
	TipValue string `mapstructure:"tip_value"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	ReadTimeout    int      `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout   int      `mapstructure:"write_timeout"` // in seconds
	IdleTimeout    int      `mapstructure:"idle_timeout"`  // in seconds
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// NATSConfig holds NATS JetStream configuration
type NATSConfig struct {
	URL            string        `mapstructure:"url"`
	StreamName     string        `mapstructure:"stream_name"`
	ConsumerName   string        `mapstructure:"consumer_name"`
	Subject        string        `mapstructure:"subject"`
	MaxReconnects  int           `mapstructure:"max_reconnects"`
	ReconnectWait  time.Duration `mapstructure:"reconnect_wait"`
	ConnectionName string        `mapstructure:"connection_name"`
	AckWait        time.Duration `mapstructure:"ack_wait"`
	MaxDeliver     int           `mapstructure:"max_deliver"`
}

// Enabled reports whether the lifecycle consumer should run
func (c *NATSConfig) Enabled() bool {
	return strings.TrimSpace(c.URL) != ""
}

// APIConfig holds configuration for the marketplace API
type APIConfig struct {
	BaseConfig    `mapstructure:",squash"`
	Chain         ChainConfig                      `mapstructure:"chain"`
	URI           URIConfig                        `mapstructure:"uri"`
	Collection    CollectionConfig                 `mapstructure:"collection"`
	Dashboard     DashboardConfig                  `mapstructure:"dashboard"`
	Actions       ActionsConfig                    `mapstructure:"actions"`
	Server        ServerConfig                     `mapstructure:"server"`
	NATS          NATSConfig                       `mapstructure:"nats"`
	Contracts     map[string]registry.ContractSpec `mapstructure:"contracts"`
	ContractsPath string                           `mapstructure:"contracts_path"`
}

// contractAssets are the registry entries that can be configured by key
var contractAssets = []string{
	registry.AssetERC20,
	registry.AssetERC721,
	registry.AssetERC1155,
	registry.AssetStaking,
	registry.AssetTipJar,
}

// LoadAPIConfig loads configuration for the marketplace API
func LoadAPIConfig(configFile string, envPath string) (*APIConfig, error) {
	v := configureViper(SERVICE_NAME, configFile, envPath)

	// Set defaults
	v.SetDefault("debug", false)
	v.SetDefault("chain.chain_id", 1043)
	v.SetDefault("chain.name", "Primordial BlockDAG Testnet")
	v.SetDefault("chain.native_symbol", "BDAG")
	v.SetDefault("chain.native_decimals", 18)
	v.SetDefault("chain.explorer_url", "https://primordial.bdagscan.com/")
	v.SetDefault("chain.read_timeout", "10s")
	v.SetDefault("chain.read_retry_max_elapsed", "5s")
	v.SetDefault("chain.read_max_retries", 3)
	v.SetDefault("uri.ipfs_gateway", domain.DEFAULT_IPFS_GATEWAY)
	v.SetDefault("uri.arweave_gateway", domain.DEFAULT_ARWEAVE_GATEWAY)
	v.SetDefault("collection.default_scan_size", domain.DEFAULT_SCAN_SIZE)
	v.SetDefault("collection.max_scan_size", domain.MAX_SCAN_SIZE)
	v.SetDefault("collection.fan_out", 16)
	v.SetDefault("collection.metadata_timeout", "10s")
	v.SetDefault("collection.view_timeout", "30s")
	v.SetDefault("collection.viewer_idle_ttl", "30m")
	v.SetDefault("dashboard.max_owned_scan", 50)
	v.SetDefault("actions.tip_value", "0.001")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 60)
	v.SetDefault("server.idle_timeout", 120)
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("nats.stream_name", "TRANSACTIONS")
	v.SetDefault("nats.consumer_name", SERVICE_NAME)
	v.SetDefault("nats.subject", "transactions.>")
	v.SetDefault("nats.ack_wait", "30s")
	v.SetDefault("nats.max_deliver", 3)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found, use environment variables
	}

	var config APIConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks the settings the service cannot start without
func (c *APIConfig) Validate() error {
	if strings.TrimSpace(c.Chain.RPCURL) == "" {
		return errors.New("chain.rpc_url is required")
	}
	if c.Chain.ChainID == 0 {
		return errors.New("chain.chain_id is required")
	}
	if c.Collection.DefaultScanSize <= 0 {
		return errors.New("collection.default_scan_size must be positive")
	}
	if c.Collection.MaxScanSize <= 0 {
		return errors.New("collection.max_scan_size must be positive")
	}
	if c.Collection.DefaultScanSize > c.Collection.MaxScanSize {
		return fmt.Errorf("collection.default_scan_size (%d) exceeds collection.max_scan_size (%d)",
			c.Collection.DefaultScanSize, c.Collection.MaxScanSize)
	}
	if c.Collection.FanOut <= 0 {
		return errors.New("collection.fan_out must be positive")
	}
	// A header read and the contract metadata fetch must leave time to probe tokens
	if c.Chain.ReadTimeout+c.Collection.MetadataTimeout >= c.Collection.ViewTimeout {
		return fmt.Errorf("chain.read_timeout (%s) plus collection.metadata_timeout (%s) must be less than collection.view_timeout (%s)",
			c.Chain.ReadTimeout, c.Collection.MetadataTimeout, c.Collection.ViewTimeout)
	}
	for asset, spec := range c.Contracts {
		if spec.ScanSize > c.Collection.MaxScanSize {
			return fmt.Errorf("contracts.%s.scan_size (%d) exceeds collection.max_scan_size (%d)",
				asset, spec.ScanSize, c.Collection.MaxScanSize)
		}
	}
	if err := validateGateway("uri.ipfs_gateway", c.URI.IPFSGateway); err != nil {
		return err
	}
	if err := validateGateway("uri.arweave_gateway", c.URI.ArweaveGateway); err != nil {
		return err
	}
	return nil
}

// validateGateway requires an absolute http(s) URL
func validateGateway(key, value string) error {
	u, err := url.Parse(strings.TrimSpace(value))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%s must be an http(s) URL: %q", key, value)
	}
	return nil
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	// Load environment variables
	loadEnv(envPath, service)

	// Set config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// Search for config.yaml in multiple locations:
		// 1. Current directory
		v.AddConfigPath(".")
		// 2. Service directory
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		// 3. Config directory
		v.AddConfigPath("config/")
	}

	// Set environment variables
	v.SetEnvPrefix(ENV_PREFIX)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicitly bind all environment variables
	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables
// This is required for viper to map env vars to config struct fields when no config file exists
func bindAllEnvVars(v *viper.Viper) {
	keys := []string{
		"debug",
		"sentry_dsn",
		// Chain
		"chain.rpc_url",
		"chain.chain_id",
		"chain.name",
		"chain.native_symbol",
		"chain.native_decimals",
		"chain.explorer_url",
		"chain.read_timeout",
		"chain.read_retry_max_elapsed",
		"chain.read_max_retries",
		// URI
		"uri.ipfs_gateway",
		"uri.arweave_gateway",
		// Collection
		"collection.default_scan_size",
		"collection.max_scan_size",
		"collection.fan_out",
		"collection.metadata_timeout",
		"collection.view_timeout",
		"collection.viewer_idle_ttl",
		"collection.placeholder_image",
		"collection.placeholder_description",
		// Contract pages
		"dashboard.max_owned_scan",
		"actions.tip_value",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		"server.allowed_origins",
		// NATS
		"nats.url",
		"nats.stream_name",
		"nats.consumer_name",
		"nats.subject",
		"nats.max_reconnects",
		"nats.reconnect_wait",
		"nats.connection_name",
		"nats.ack_wait",
		"nats.max_deliver",
		// Contracts
		"contracts_path",
	}

	for _, asset := range contractAssets {
		keys = append(keys,
			"contracts."+asset+".address",
			"contracts."+asset+".standard",
			"contracts."+asset+".scan_size",
		)
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	// Always try shared base first, then local, then optional per-service local.
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	// Default to config directory
	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate) // Overload lets later files override earlier ones
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}
