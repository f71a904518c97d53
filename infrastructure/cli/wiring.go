package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/fixora/auditguard/application/usecase"
	"github.com/fixora/auditguard/domain/audit"
	"github.com/fixora/auditguard/domain/entity"
	"github.com/fixora/auditguard/infrastructure/config"
	"github.com/fixora/auditguard/infrastructure/service/logger"
	"github.com/fixora/auditguard/infrastructure/sink"
)

// app is everything one command run needs
type app struct {
	ctx      context.Context
	logger   logger.Logger
	sink     audit.Sink
	memory   *sink.MemorySink
	closers  []io.Closer
	products *usecase.ProductUseCase
}

func newApp(ctx context.Context, cfg *config.Config, stderr io.Writer) (*app, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	log := logger.NewStructuredLogger(logger.LoggerConfig{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		ServiceName: cfg.ServiceName,
		Output:      stderr,
	})
	ctx = logger.WithRunID(ctx, uuid.NewString())

	a := &app{ctx: ctx, logger: log}

	switch cfg.Sink {
	case config.SinkMemory:
		a.memory = sink.NewMemorySink()
		a.sink = a.memory
	case config.SinkRedis:
		redisSink, err := sink.NewRedisSink(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		a.sink = redisSink
		a.closers = append(a.closers, redisSink)
	default:
		a.sink = sink.NewFileSink(cfg.LogDir)
	}
	if cfg.MirrorLogs {
		a.sink = sink.NewLoggingSink(a.sink, log)
	}

	rules, err := config.LoadProductRules(cfg.RulesFile)
	if err != nil {
		a.Close()
		return nil, err
	}
	class, err := entity.DefineProductClass(a.sink, rules)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.products = usecase.NewProductUseCase(class, log)

	log.Info(ctx, "auditguard started", map[string]interface{}{
		"sink":  cfg.Sink,
		"rules": cfg.RulesFile,
	})
	return a, nil
}

// finish dumps in-memory logs and releases resources
func (a *app) finish(out io.Writer) error {
	defer a.Close()
	if a.memory != nil {
		return a.memory.Dump(out)
	}
	return nil
}

func (a *app) Close() {
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			a.logger.Warn(a.ctx, "close failed", map[string]interface{}{"error": err.Error()})
		}
	}
	a.closers = nil
}
