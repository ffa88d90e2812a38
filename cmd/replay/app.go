package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"corvid/internal/dispatch"
	"corvid/internal/gateway"
	"corvid/pkg/corvid"
	"corvid/pkg/corvid/state"
)

const (
	envLogLevel   = "CORVID_LOG_LEVEL"
	envCacheFlags = "CORVID_CACHE_FLAGS"

	defaultSubscriptionBuffer = 256
	defaultHandlerTimeout     = 5 * time.Second
	defaultShutdownTimeout    = 10 * time.Second

	// Oversized dispatch frames exist; guild create payloads carry whole
	// member and channel lists.
	maxFrameBytes = 16 << 20
)

type appConfig struct {
	logLevel  slog.Level
	flags     state.Flags
	inputPath string
}

type replayStats struct {
	frames  int
	events  int
	skipped int
}

func run() error {
	cfg, err := loadConfig(os.Args[1:])
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.logLevel}))

	input := os.Stdin
	if cfg.inputPath != "-" {
		file, err := os.Open(cfg.inputPath)
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer file.Close()
		input = file
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine, err := state.New(
		state.WithFlags(cfg.flags),
		state.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("new cache engine: %w", err)
	}

	stats, err := replay(ctx, logger, engine, input)
	if err != nil {
		return err
	}

	logger.Info("replay finished",
		"frames", stats.frames,
		"events", stats.events,
		"skipped", stats.skipped,
		"flags", cfg.flags.String(),
		"guilds", engine.Guilds().Len(),
		"users", engine.Users().Len(),
		"members", engine.AllMembers().Len(),
		"roles", engine.AllRoles().Len(),
		"channels", engine.AllChannels().Len(),
		"emoji", engine.AllEmojis().Len(),
		"presences", engine.Presences().Len(),
		"voice_states", engine.AllVoiceStates().Len(),
	)

	return nil
}

// replay feeds every dispatch frame on input through the bus into the cache
// engine. The cache consumes with a single worker and blocking backpressure
// so events apply in file order.
func replay(ctx context.Context, logger *slog.Logger, engine *state.Engine, input io.Reader) (replayStats, error) {
	bus := dispatch.NewBus(defaultSubscriptionBuffer, 1, defaultHandlerTimeout, func(ctx context.Context, scope string, err error) {
		logger.Warn("async dispatch failure", "scope", scope, "error", err)
	})
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
		defer cancel()
		if err := bus.Close(shutdownCtx); err != nil {
			logger.Warn("bus close failed", "error", err)
		}
	}()

	var applied atomic.Int64
	applyErrs := make(chan error, 1)
	_, err := bus.Subscribe(ctx, corvid.SubscriptionSpec{
		Name:         "entity-cache",
		Workers:      1,
		Buffer:       defaultSubscriptionBuffer,
		Backpressure: corvid.BackpressureBlock,
	}, func(ctx context.Context, event *corvid.Event) error {
		err := engine.Apply(ctx, event)
		applied.Add(1)
		if err != nil {
			select {
			case applyErrs <- err:
			default:
			}
			return err
		}
		return nil
	})
	if err != nil {
		return replayStats{}, fmt.Errorf("subscribe cache: %w", err)
	}

	var stats replayStats
	scanner := bufio.NewScanner(input)
	scanner.Buffer(make([]byte, 64<<10), maxFrameBytes)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return stats, fmt.Errorf("replay interrupted: %w", err)
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		stats.frames++

		event, err := gateway.DecodeFrame([]byte(line))
		if err != nil {
			if errors.Is(err, corvid.ErrUnknownEvent) {
				stats.skipped++
				continue
			}
			return stats, fmt.Errorf("frame %d: %w", stats.frames, err)
		}
		if event == nil {
			stats.skipped++
			continue
		}

		if err := bus.Publish(ctx, event); err != nil {
			return stats, fmt.Errorf("frame %d: %w", stats.frames, err)
		}
		stats.events++
	}
	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("read input: %w", err)
	}

	// Workers stop on close without draining their queue, so wait for the
	// cache subscription to catch up before reading final store sizes.
	deadline := time.Now().Add(defaultShutdownTimeout)
	for applied.Load() < int64(stats.events) {
		if err := ctx.Err(); err != nil {
			return stats, fmt.Errorf("replay interrupted: %w", err)
		}
		if time.Now().After(deadline) {
			return stats, fmt.Errorf("drain cache subscription: %d of %d events applied",
				applied.Load(), stats.events)
		}
		time.Sleep(5 * time.Millisecond)
	}

	select {
	case err := <-applyErrs:
		return stats, fmt.Errorf("apply event: %w", err)
	default:
	}

	return stats, nil
}

func loadConfig(args []string) (appConfig, error) {
	cfg := appConfig{
		logLevel:  slog.LevelInfo,
		inputPath: "-",
	}

	if rawLevel := strings.TrimSpace(os.Getenv(envLogLevel)); rawLevel != "" {
		level, err := parseLogLevel(rawLevel)
		if err != nil {
			return appConfig{}, fmt.Errorf("parse %s: %w", envLogLevel, err)
		}
		cfg.logLevel = level
	}

	if rawFlags := strings.TrimSpace(os.Getenv(envCacheFlags)); rawFlags != "" {
		flags, err := parseCacheFlags(rawFlags)
		if err != nil {
			return appConfig{}, fmt.Errorf("parse %s: %w", envCacheFlags, err)
		}
		cfg.flags = flags
	}

	switch len(args) {
	case 0:
	case 1:
		if path := strings.TrimSpace(args[0]); path != "" {
			cfg.inputPath = path
		}
	default:
		return appConfig{}, fmt.Errorf("usage: replay [frames.ndjson]")
	}

	return cfg, nil
}

func parseLogLevel(value string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", value)
	}
}

// parseCacheFlags reads a comma-separated list of entity kinds to drop.
func parseCacheFlags(value string) (state.Flags, error) {
	var flags state.Flags
	for _, part := range strings.Split(value, ",") {
		switch strings.ToLower(strings.TrimSpace(part)) {
		case "":
		case "presences":
			flags |= state.DropPresences
		case "voice_states":
			flags |= state.DropVoiceStates
		case "emoji":
			flags |= state.DropEmoji
		default:
			return 0, fmt.Errorf("unknown cache flag %q", part)
		}
	}

	return flags, nil
}
