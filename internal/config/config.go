package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/launchdarkly/go-sdk-common/v3/ldcontext"
	ld "github.com/launchdarkly/go-server-sdk/v7"

	"github.com/AdelereKehinde/Estate-management/internal/constants"
	"github.com/AdelereKehinde/Estate-management/internal/utils"
)

type Config struct {
	AppName        string
	AppPort        string
	AppUrl         string
	DBUrl          string
	StoreDriver    string
	JWTSecret      []byte
	JWTIssuer      string
	AccessTokenTTL time.Duration

	LDFlag_SeedDbWithTestData          bool
	LDFlag_CORSHighSecurity            bool
	LDFlag_IdempotentInvoiceGeneration bool
	LDFlag_OverdueReportCron           bool
}

const LDConnectionTimeout = 5 * time.Second

// Overridable with -ldflags "-X .../internal/config.AppName=...".
var AppName = "estate-service"

// LoadConfig reads the process configuration and exits on any error.
func LoadConfig() *Config {
	cfg, err := Load()
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to load config")
	}
	return cfg
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when one exists; variables already set win.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read .env: %w", err)
	}

	utils.Logger.Info("Loading config for app: ", AppName)

	cfg := &Config{
		AppName:     AppName,
		AppPort:     getenv("APP_PORT", "8000"),
		AppUrl:      os.Getenv("APP_URL_FROM_ANYWHERE"),
		DBUrl:       os.Getenv("DB_URL"),
		StoreDriver: strings.ToLower(getenv("STORE_DRIVER", constants.StoreDriverPostgres)),
		JWTIssuer:   getenv("JWT_ISSUER", constants.DefaultJWTIssuer),
	}

	switch cfg.StoreDriver {
	case constants.StoreDriverPostgres:
		if cfg.DBUrl == "" {
			return nil, errors.New("DB_URL env var is missing")
		}
	case constants.StoreDriverMemory:
	default:
		return nil, fmt.Errorf("STORE_DRIVER %q is not one of postgres, memory", cfg.StoreDriver)
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("JWT_SECRET env var is missing")
	}
	cfg.JWTSecret = []byte(secret)

	minutes, err := strconv.Atoi(getenv("ACCESS_TOKEN_MINUTES", strconv.Itoa(constants.DefaultAccessTokenMinutes)))
	if err != nil || minutes <= 0 {
		return nil, errors.New("ACCESS_TOKEN_MINUTES must be a positive integer")
	}
	cfg.AccessTokenTTL = time.Duration(minutes) * time.Minute

	flags, closeFlags, err := newFlagSource()
	if err != nil {
		return nil, err
	}
	defer closeFlags()

	for _, f := range []struct {
		key string
		dst *bool
	}{
		{constants.FlagSeedDbWithTestData, &cfg.LDFlag_SeedDbWithTestData},
		{constants.FlagCORSHighSecurity, &cfg.LDFlag_CORSHighSecurity},
		{constants.FlagIdempotentInvoiceGeneration, &cfg.LDFlag_IdempotentInvoiceGeneration},
		{constants.FlagOverdueReportCron, &cfg.LDFlag_OverdueReportCron},
	} {
		v, err := flags.BoolVariation(f.key, false)
		if err != nil {
			return nil, fmt.Errorf("error retrieving %s flag: %w", f.key, err)
		}
		*f.dst = v
		utils.Logger.Debugf("%s flag: %t", f.key, v)
	}

	return cfg, nil
}

func (c *Config) Close() {}

/* ───────────── feature flags ───────────── */

type flagSource interface {
	BoolVariation(key string, defaultVal bool) (bool, error)
}

// newFlagSource uses LaunchDarkly when LD_SDK_KEY is set and FLAG_* env
// vars otherwise.
func newFlagSource() (flagSource, func(), error) {
	sdkKey := os.Getenv("LD_SDK_KEY")
	if sdkKey == "" {
		utils.Logger.Info("LD_SDK_KEY not set; reading feature flags from FLAG_* env vars")
		return envFlags{}, func() {}, nil
	}

	client, err := ld.MakeClient(sdkKey, LDConnectionTimeout)
	if err != nil {
		return nil, nil, fmt.Errorf("create LaunchDarkly client: %w", err)
	}
	ctx := ldcontext.NewWithKind(
		ldcontext.Kind(getenv("LD_SERVER_CONTEXT_KIND", "service")),
		getenv("LD_SERVER_CONTEXT_KEY", AppName),
	)
	return ldFlags{client: client, ctx: ctx}, func() { _ = client.Close() }, nil
}

type ldFlags struct {
	client *ld.LDClient
	ctx    ldcontext.Context
}

func (f ldFlags) BoolVariation(key string, defaultVal bool) (bool, error) {
	return f.client.BoolVariation(key, f.ctx, defaultVal)
}

type envFlags struct{}

// BoolVariation reads FLAG_<KEY>, e.g. FLAG_SEED_DB_WITH_TEST_DATA.
func (envFlags) BoolVariation(key string, defaultVal bool) (bool, error) {
	name := "FLAG_" + strings.ToUpper(key)
	raw := os.Getenv(name)
	if raw == "" {
		return defaultVal, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s: %w", name, err)
	}
	return v, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
