package suite

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/arcade-backend/internal/repository/storage"
)

const (
	expireSeconds   = 300
	maxWaitDuration = 120 * time.Second
)

const (
	redisPort  = "6379/tcp"
	redisImage = "redis"
	redisTag   = "alpine"

	// addrEnv points the suite at a running redis instead of a container.
	addrEnv = "REDIS_TEST_ADDR"
)

// one container serves every test of the binary, docker removes it on expiry
var shared struct {
	sync.Mutex
	addr string
	err  error
}

type Suite struct {
	*testing.T
	Logger *slog.Logger

	Storage *redis.Client
}

// New - connects to the shared redis and flushes it. Tests are skipped when docker is unavailable.
func New(t *testing.T) (context.Context, *Suite) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), maxWaitDuration)
	t.Cleanup(cancel)

	addr, err := redisAddr()
	if err != nil {
		t.Skipf("redis is not available: %v", err)
	}

	client, err := storage.New(ctx, addr, "", 0)
	if err != nil {
		t.Fatalf("could not connect to redis: %v", err)
	}

	t.Cleanup(func() {
		if err = client.Close(); err != nil {
			t.Errorf("could not close redis client: %v", err)
		}
	})

	if err = client.FlushDB(ctx).Err(); err != nil {
		t.Fatalf("could not flush database: %v", err)
	}

	return ctx, &Suite{
		T:       t,
		Logger:  slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})),
		Storage: client,
	}
}

func redisAddr() (string, error) {
	shared.Lock()
	defer shared.Unlock()

	if shared.addr != "" || shared.err != nil {
		return shared.addr, shared.err
	}

	if addr := os.Getenv(addrEnv); addr != "" {
		shared.addr = addr
		return addr, nil
	}

	shared.addr, shared.err = startRedis()

	return shared.addr, shared.err
}

func startRedis() (string, error) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		return "", fmt.Errorf("failed to connect to docker: %w", err)
	}

	if err = pool.Client.Ping(); err != nil {
		return "", fmt.Errorf("failed to ping docker: %w", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: redisImage,
		Tag:        redisTag,
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		return "", fmt.Errorf("failed to start redis: %w", err)
	}

	// never returns error
	_ = resource.Expire(expireSeconds)

	addr := resource.GetHostPort(redisPort)

	// the container accepts connections a little after it starts
	pool.MaxWait = maxWaitDuration
	if err = pool.Retry(func() error {
		client, connErr := storage.New(context.Background(), addr, "", 0)
		if connErr != nil {
			return connErr
		}
		return client.Close()
	}); err != nil {
		_ = pool.Purge(resource)
		return "", fmt.Errorf("failed to reach redis: %w", err)
	}

	return addr, nil
}
