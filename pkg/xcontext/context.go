package xcontext

import (
	"context"
	"net/http"

	"github.com/pitchlucy/lucy/config"
	"github.com/pitchlucy/lucy/pkg/logger"
)

type (
	configsKey    struct{}
	loggerKey     struct{}
	httpClientKey struct{}
	attemptIDKey  struct{}
)

func WithConfigs(ctx context.Context, cfg config.Configs) context.Context {
	return context.WithValue(ctx, configsKey{}, cfg)
}

// Configs returns the configurations stored in ctx, or the defaults if none were set.
func Configs(ctx context.Context) config.Configs {
	cfg, ok := ctx.Value(configsKey{}).(config.Configs)
	if !ok {
		return config.Default()
	}

	return cfg
}

func WithLogger(ctx context.Context, l logger.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// Logger never returns nil; a context without a logger gets a silent one.
func Logger(ctx context.Context) logger.Logger {
	l, ok := ctx.Value(loggerKey{}).(logger.Logger)
	if !ok || l == nil {
		return logger.NewNopLogger()
	}

	return l
}

func WithHTTPClient(ctx context.Context, client *http.Client) context.Context {
	return context.WithValue(ctx, httpClientKey{}, client)
}

func HTTPClient(ctx context.Context) *http.Client {
	client, ok := ctx.Value(httpClientKey{}).(*http.Client)
	if !ok || client == nil {
		return http.DefaultClient
	}

	return client
}

// WithAttemptID tags every log line of one pitch submission.
func WithAttemptID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, attemptIDKey{}, id)
}

func AttemptID(ctx context.Context) string {
	id, _ := ctx.Value(attemptIDKey{}).(string)
	return id
}
