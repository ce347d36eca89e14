package cli

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/morph"
	"github.com/aretw0/morph/internal/adapters/file"
	"github.com/aretw0/morph/internal/logging"
	"github.com/aretw0/morph/pkg/adapters/redis"
	"github.com/aretw0/morph/pkg/observability"
	"github.com/aretw0/morph/pkg/persistence/middleware"
	"github.com/aretw0/morph/pkg/ports"
)

// Options are the settings shared by every command.
type Options struct {
	// Dir is the document directory used when no Redis address is set.
	Dir string
	// Debug lowers the log level and logs every animation event.
	Debug bool
	// LogFormat is "text" or "json".
	LogFormat string
	// RedisAddr switches document storage and locking to Redis.
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
	// EncryptionKey, when set, encrypts documents at rest with AES-256-GCM.
	EncryptionKey string
	// Metrics, when set, receives animation activity.
	Metrics *observability.Metrics
}

// CreateLogger builds the CLI logger. Logs always go to stderr so that
// stdout stays clean for sample output and JSON-RPC.
func CreateLogger(opts Options) (*slog.Logger, error) {
	format, err := logging.ParseFormat(opts.LogFormat)
	if err != nil {
		return nil, err
	}
	level := slog.LevelInfo
	if opts.Debug {
		level = slog.LevelDebug
	}
	return logging.NewWriter(logWriter, level, format), nil
}

// CreateEngine initializes a morph engine with standard CLI conventions.
func CreateEngine(opts Options, logger *slog.Logger) (*morph.Engine, error) {
	engineOpts := []morph.Option{morph.WithLogger(logger)}

	// 1. Storage: Redis when configured, the document directory otherwise.
	var store ports.DocumentStore
	if opts.RedisAddr != "" {
		var storeOpts []redis.Option
		if opts.RedisPrefix != "" {
			storeOpts = append(storeOpts, redis.WithPrefix(opts.RedisPrefix))
		}
		rs := redis.New(opts.RedisAddr, opts.RedisPassword, opts.RedisDB, storeOpts...)
		store = rs
		engineOpts = append(engineOpts, morph.WithLocker(redis.NewLocker(rs.Client(), "morph:")))
		logger.Debug("using redis document store", "addr", opts.RedisAddr)
	} else {
		if opts.Dir == "" {
			return nil, fmt.Errorf("document directory is required")
		}
		store = file.New(opts.Dir)
	}

	if opts.EncryptionKey != "" {
		key, err := middleware.ParseKey(opts.EncryptionKey)
		if err != nil {
			return nil, err
		}
		store = middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key})(store)
	}
	engineOpts = append(engineOpts, morph.WithStore(store))

	// 2. Hooks
	if opts.Debug {
		engineOpts = append(engineOpts, morph.WithLifecycleHooks(observability.LogHooks(logger)))
	}
	if opts.Metrics != nil {
		engineOpts = append(engineOpts, morph.WithLifecycleHooks(opts.Metrics.Hooks()))
	}

	return morph.New(engineOpts...), nil
}
