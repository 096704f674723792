package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/recipehub/home-proxy/internal/config"
	"github.com/recipehub/home-proxy/internal/server"
	"github.com/recipehub/home-proxy/pkg/cache"
	"github.com/recipehub/home-proxy/pkg/logging"
	"github.com/recipehub/home-proxy/pkg/upstream"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.LoadFile(*configPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", *configPath).Msg("Failed to load config file")
		}
		cfg = loaded
	}
	cfg = config.FromEnv(cfg)

	logger := logging.Setup(logging.Config{
		Level:  logging.LogLevel(cfg.LogLevel),
		Pretty: cfg.LogPretty,
		Output: os.Stderr,
	})

	// Redis is optional. When unreachable the proxy degrades to pass-through
	// rather than refusing to start.
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisURL})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := client.Ping(ctx).Err()
		cancel()
		if err != nil {
			logger.Warn().Err(err).Str("redis_url", cfg.RedisURL).Msg("Redis unavailable, caching disabled")
			client.Close()
		} else {
			logger.Info().Str("redis_url", cfg.RedisURL).Msg("Connected to Redis")
			redisClient = client
		}
	} else {
		logger.Info().Msg("No Redis configured, caching disabled")
	}

	srv := server.New(server.Options{
		Cache:       cache.NewManager(redisClient),
		Backend:     upstream.NewClient(cfg.JavaAPIURL),
		Recommender: upstream.NewRecommender(cfg.MLAPIURL),
		PingMessage: cfg.PingMessage,
	})

	addr := ":" + cfg.Port
	logger.Info().
		Str("addr", addr).
		Str("backend", cfg.JavaAPIURL).
		Bool("cache_enabled", redisClient != nil).
		Msg("Starting home proxy")

	if err := http.ListenAndServe(addr, srv); err != nil {
		logger.Fatal().Err(err).Msg("Server failed")
	}
}
