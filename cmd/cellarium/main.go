package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/ougirez/cellarium/internal/api"
	"github.com/ougirez/cellarium/internal/pkg/config"
	"github.com/ougirez/cellarium/internal/pkg/constants"
	"github.com/ougirez/cellarium/internal/pkg/logger"
	"github.com/ougirez/cellarium/internal/pkg/store"
	"github.com/ougirez/cellarium/internal/pkg/store/migrations"
	"github.com/ougirez/cellarium/internal/pkg/store/xpgx"
	"github.com/ougirez/cellarium/internal/pkg/utils"
	"github.com/ougirez/cellarium/internal/service/label"
	"github.com/ougirez/cellarium/internal/service/user"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

const usage = `usage: cellarium [--config file] <command> [flags]

commands:
  serve                                 run the HTTP API
  migrate up | down [--steps N]         apply or revert schema migrations
  migrate version                       print the applied schema version
  createuser --username U --password P  create an API user
  setpassword --username U --password P change a user's password
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, "cellarium:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	fs := pflag.NewFlagSet("cellarium", pflag.ContinueOnError)
	fs.SetInterspersed(false)
	fs.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	configFile := fs.String("config", "", "path to a YAML/JSON/TOML config file")
	development := fs.Bool("dev", false, "human readable development logs")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := config.Load(*configFile); err != nil {
		return err
	}
	if err := logger.Init(viper.GetString(constants.ViperLogLevelKey), *development); err != nil {
		return fmt.Errorf("logger.Init: %w", err)
	}
	defer logger.Sync()

	rest := fs.Args()
	if len(rest) == 0 {
		fs.Usage()
		return fmt.Errorf("missing command")
	}

	switch rest[0] {
	case "serve":
		return serve(ctx, rest[1:])
	case "migrate":
		return migrate(rest[1:])
	case "createuser":
		return manageUser(ctx, "createuser", rest[1:])
	case "setpassword":
		return manageUser(ctx, "setpassword", rest[1:])
	default:
		fs.Usage()
		return fmt.Errorf("unknown command %q", rest[0])
	}
}

func serve(ctx context.Context, args []string) error {
	fs := pflag.NewFlagSet("serve", pflag.ContinueOnError)
	fs.String("addr", viper.GetString(constants.ViperHTTPAddrKey), "listen address")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := viper.BindPFlag(constants.ViperHTTPAddrKey, fs.Lookup("addr")); err != nil {
		return err
	}
	if err := config.Validate(viper.GetViper()); err != nil {
		return err
	}

	pool, err := connect(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	if viper.GetBool(constants.ViperDBMigrateKey) {
		if err = migrations.Up(viper.GetString(constants.ViperDBDSNKey)); err != nil {
			return err
		}
	}

	tokens := utils.NewTokenIssuer(
		viper.GetString(constants.ViperSecretKey),
		viper.GetDuration(constants.ViperAccessTTLKey),
		viper.GetDuration(constants.ViperRefreshTTLKey),
	)
	services := api.NewServices(store.NewStore(pool), tokens, api.ServiceConfig{
		ImportClient:  &http.Client{Timeout: viper.GetDuration(constants.ViperImportTimeoutKey)},
		ImportTimeout: viper.GetDuration(constants.ViperImportTimeoutKey),
		ImportMaxBody: viper.GetInt64(constants.ViperImportMaxBodyKey),
		LabelReader:   labelReader(),
		LabelMaxImage: viper.GetInt64(constants.ViperLabelMaxImageKey),
	})

	svc := api.NewAPIService(services, pool, api.Options{
		CORSOrigins: viper.GetStringSlice(constants.ViperCORSOriginsKey),
		RateLimit:   viper.GetFloat64(constants.ViperRateLimitKey),
	})

	addr := viper.GetString(constants.ViperHTTPAddrKey)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		logger.Infof(ctx, "listening on %s", addr)
		return svc.Serve(addr)
	})
	eg.Go(func() error {
		<-egCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), viper.GetDuration(constants.ViperShutdownTimeoutKey))
		defer cancel()

		logger.Infof(ctx, "shutting down")
		return svc.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// labelReader returns nil without an API key, which disables label analysis.
func labelReader() label.Reader {
	apiKey := viper.GetString(constants.ViperLabelAPIKeyKey)
	if apiKey == "" {
		return nil
	}
	return label.NewOpenAIReader(
		&http.Client{Timeout: viper.GetDuration(constants.ViperLabelTimeoutKey)},
		viper.GetString(constants.ViperLabelBaseURLKey),
		apiKey,
		viper.GetString(constants.ViperLabelModelKey),
	)
}

// connect retries the initial connection so the API can start before the
// database is ready.
func connect(ctx context.Context) (xpgx.Pool, error) {
	var pool xpgx.Pool
	retries := viper.GetUint64(constants.ViperDBConnectRetriesKey)

	err := backoff.RetryNotify(
		func() error {
			var err error
			pool, err = xpgx.Connect(ctx, viper.GetString(constants.ViperDBDSNKey), viper.GetInt32(constants.ViperDBMaxConnsKey))
			return err
		},
		backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), retries), ctx),
		func(err error, next time.Duration) {
			logger.Warnf(ctx, "database not ready, retrying in %s: %s", next, err.Error())
		},
	)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	return pool, nil
}

func migrate(args []string) error {
	fs := pflag.NewFlagSet("migrate", pflag.ContinueOnError)
	steps := fs.Int("steps", 1, "number of migrations to revert with down")
	if err := fs.Parse(args); err != nil {
		return err
	}

	dsn := viper.GetString(constants.ViperDBDSNKey)
	switch fs.Arg(0) {
	case "up":
		return migrations.Up(dsn)
	case "down":
		return migrations.Down(dsn, *steps)
	case "version":
		version, dirty, err := migrations.Version(dsn)
		if err != nil {
			return err
		}
		fmt.Printf("version %d (dirty: %t)\n", version, dirty)
		return nil
	default:
		return fmt.Errorf("migrate: expected up, down or version")
	}
}

func manageUser(ctx context.Context, command string, args []string) error {
	fs := pflag.NewFlagSet(command, pflag.ContinueOnError)
	username := fs.String("username", "", "user name")
	password := fs.String("password", "", "password (or CELLARIUM_PASSWORD)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *password == "" {
		*password = os.Getenv("CELLARIUM_PASSWORD")
	}

	pool, err := connect(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	users := user.NewUserService(store.NewStore(pool))
	if command == "setpassword" {
		if err = users.SetPassword(ctx, *username, *password); err != nil {
			return err
		}
		logger.Infof(ctx, "password changed for %s", *username)
		return nil
	}

	u, err := users.CreateUser(ctx, *username, *password)
	if err != nil {
		return err
	}
	logger.Infof(ctx, "created user %s (id %d)", u.Username, u.ID)
	return nil
}
