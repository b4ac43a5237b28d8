package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Content  ContentConfig  `yaml:"content"`
	Lab      LabConfig      `yaml:"lab"`
	Contact  ContactConfig  `yaml:"contact"`
	NFT      NFTConfig      `yaml:"nft"`
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"PORT"                    env-default:"8080"`
	Mode            string        `yaml:"mode"             env:"GIN_MODE"                env-default:"release"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// ContentConfig locates the source files. Relative paths resolve against Root.
type ContentConfig struct {
	Root         string   `yaml:"root"          env:"CONTENT_ROOT"          env-default:"."`
	MembersCSV   string   `yaml:"members_csv"   env:"CONTENT_MEMBERS_CSV"   env-default:"content/pd/members-2024.csv"`
	VendorsCSV   string   `yaml:"vendors_csv"   env:"CONTENT_VENDORS_CSV"   env-default:"content/pd/vendors-2024.csv"`
	FrontPages   string   `yaml:"front_pages"   env:"CONTENT_FRONT_PAGES"   env-default:"content/pd/front-pages-2024.json"`
	PhotoSeries  string   `yaml:"photo_series"  env:"CONTENT_PHOTO_SERIES"  env-default:"content/photography-series.json"`
	PublicDir    string   `yaml:"public_dir"    env:"CONTENT_PUBLIC_DIR"    env-default:"public"`
	NFTs         string   `yaml:"nfts"          env:"CONTENT_NFTS"          env-default:"content/nfts.json"`
	CuratedOrder []string `yaml:"curated_order" env:"CONTENT_CURATED_ORDER" env-separator:","`
}

// LabConfig holds directory lab access settings.
type LabConfig struct {
	Key           string        `yaml:"key"            env:"PD_LAB_KEY"`
	KeyHash       string        `yaml:"key_hash"       env:"PD_LAB_KEY_HASH"`
	TokenSecret   string        `yaml:"token_secret"   env:"PD_LAB_TOKEN_SECRET"`
	TokenTTL      time.Duration `yaml:"token_ttl"      env:"PD_LAB_TOKEN_TTL"      env-default:"12h"`
	StrictHeaders bool          `yaml:"strict_headers" env:"PD_LAB_STRICT_HEADERS" env-default:"false"`
}

// ContactConfig holds email relay settings.
type ContactConfig struct {
	APIKey    string        `yaml:"api_key"    env:"RESEND_API_KEY"`
	Endpoint  string        `yaml:"endpoint"   env:"CONTACT_ENDPOINT"   env-default:"https://api.resend.com/emails"`
	ToEmail   string        `yaml:"to_email"   env:"CONTACT_TO_EMAIL"   env-default:"killian@killianmoore.com"`
	FromEmail string        `yaml:"from_email" env:"CONTACT_FROM_EMAIL" env-default:"Website Contact <onboarding@resend.dev>"`
	Timeout   time.Duration `yaml:"timeout"    env:"CONTACT_TIMEOUT"    env-default:"10s"`
}

// NFTConfig holds the NFT feed settings. Without an API key only the static
// collections are served.
type NFTConfig struct {
	APIKey          string        `yaml:"api_key"           env:"ALCHEMY_API_KEY"`
	BaseURL         string        `yaml:"base_url"          env:"NFT_BASE_URL"          env-default:"https://{network}.g.alchemy.com/nft/v3"`
	Networks        []string      `yaml:"networks"          env:"NFT_NETWORKS"          env-default:"eth-mainnet,base-mainnet" env-separator:","`
	Contracts       []string      `yaml:"contracts"         env:"NFT_CONTRACTS"         env-separator:","`
	ContractTimeout time.Duration `yaml:"contract_timeout"  env:"NFT_CONTRACT_TIMEOUT"  env-default:"8s"`
	TokenURITimeout time.Duration `yaml:"token_uri_timeout" env:"NFT_TOKEN_URI_TIMEOUT" env-default:"5s"`
	FeedTimeout     time.Duration `yaml:"feed_timeout"      env:"NFT_FEED_TIMEOUT"      env-default:"9s"`
}

// DatabaseConfig holds the sqlite audit database location.
type DatabaseConfig struct {
	Path string `yaml:"path" env:"DATABASE_PATH" env-default:"data/site.db"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// Resolve returns path joined to Root unless it is already absolute
func (c ContentConfig) Resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Root, path)
}

const maxContactTimeout = 30 * time.Second

// Validate checks value ranges that tags cannot express
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 || c.Server.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("server timeouts must be positive"))
	}
	if !slices.Contains([]string{"debug", "release", "test"}, c.Server.Mode) {
		errs = append(errs, fmt.Errorf("server.mode %q must be debug, release or test", c.Server.Mode))
	}
	if c.Contact.Timeout <= 0 || c.Contact.Timeout > maxContactTimeout {
		errs = append(errs, fmt.Errorf("contact.timeout %s must be in (0, %s]", c.Contact.Timeout, maxContactTimeout))
	}
	if c.NFT.ContractTimeout <= 0 || c.NFT.TokenURITimeout <= 0 || c.NFT.FeedTimeout <= 0 {
		errs = append(errs, errors.New("nft timeouts must be positive"))
	}
	if c.Lab.TokenTTL <= 0 {
		errs = append(errs, errors.New("lab.token_ttl must be positive"))
	}
	if !slices.Contains([]string{"debug", "info", "warn", "error"}, c.Log.Level) {
		errs = append(errs, fmt.Errorf("log.level %q must be debug, info, warn or error", c.Log.Level))
	}
	if !slices.Contains([]string{"json", "console"}, c.Log.Format) {
		errs = append(errs, fmt.Errorf("log.format %q must be json or console", c.Log.Format))
	}

	return errors.Join(errs...)
}
