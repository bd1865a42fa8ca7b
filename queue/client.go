package queue

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client defines the interface for interacting with Redis-based solve queues.
type Client interface {
	// Push adds a solve job to the end of a queue (LPUSH).
	Push(ctx context.Context, queue string, job SolveJob) error

	// Pop removes and returns a solve job from the front of a queue (BRPOP).
	// Blocks until a job is available or context is cancelled.
	Pop(ctx context.Context, queue string) (*SolveJob, error)

	// Publish sends a result to a pub/sub channel.
	Publish(ctx context.Context, channel string, result SolveResult) error

	// Subscribe creates a subscription to a pub/sub channel.
	// Returns a channel that receives results until the subscription is closed.
	Subscribe(ctx context.Context, channel string) (<-chan SolveResult, error)

	// RegisterEngine writes engine metadata to Redis and adds to available set.
	RegisterEngine(ctx context.Context, meta EngineMeta) error

	// ListEngines returns metadata for all registered engines.
	ListEngines(ctx context.Context) ([]EngineMeta, error)

	// Heartbeat updates the health key for an engine with a 30s TTL.
	Heartbeat(ctx context.Context, engineName string) error

	// GetWorkerCount returns the current worker count for an engine.
	GetWorkerCount(ctx context.Context, engineName string) (int, error)

	// IncrementWorkerCount increments the worker count for an engine.
	IncrementWorkerCount(ctx context.Context, engineName string) error

	// DecrementWorkerCount decrements the worker count for an engine.
	DecrementWorkerCount(ctx context.Context, engineName string) error

	// Close closes the Redis connection.
	Close() error
}

// RedisOptions configures the Redis connection.
type RedisOptions struct {
	// URL is the Redis connection string (e.g., "redis://localhost:6379")
	URL string

	// TLS configuration for secure connections
	TLS *tls.Config

	// ConnectTimeout is the maximum time to wait for connection establishment
	ConnectTimeout time.Duration

	// ReadTimeout is the maximum time to wait for read operations
	ReadTimeout time.Duration

	// WriteTimeout is the maximum time to wait for write operations
	WriteTimeout time.Duration
}

// RedisClient implements the Client interface using go-redis/v9.
type RedisClient struct {
	client *redis.Client
}

// NewRedisClient creates a new Redis queue client with the given options.
func NewRedisClient(opts RedisOptions) (*RedisClient, error) {
	if opts.URL == "" {
		opts.URL = "redis://localhost:6379"
	}

	if opts.ConnectTimeout == 0 {
		opts.ConnectTimeout = 5 * time.Second
	}

	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = 30 * time.Second
	}

	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = 5 * time.Second
	}

	redisOpts, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	redisOpts.TLSConfig = opts.TLS
	redisOpts.DialTimeout = opts.ConnectTimeout
	redisOpts.ReadTimeout = opts.ReadTimeout
	redisOpts.WriteTimeout = opts.WriteTimeout

	client := redis.NewClient(redisOpts)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), opts.ConnectTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisClient{client: client}, nil
}

// Push adds a solve job to the end of a queue.
func (c *RedisClient) Push(ctx context.Context, queue string, job SolveJob) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal solve job: %w", err)
	}

	if err := c.client.LPush(ctx, queue, data).Err(); err != nil {
		return fmt.Errorf("failed to push to queue %s: %w", queue, err)
	}

	return nil
}

// Pop removes and returns a solve job from the front of a queue.
// Blocks until a job is available or context is cancelled.
func (c *RedisClient) Pop(ctx context.Context, queue string) (*SolveJob, error) {
	// BRPOP returns [queue_name, value] or empty if timeout
	result, err := c.client.BRPop(ctx, 0, queue).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to pop from queue %s: %w", queue, err)
	}

	if len(result) != 2 {
		return nil, fmt.Errorf("unexpected BRPOP result length: %d", len(result))
	}

	var job SolveJob
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		return nil, fmt.Errorf("failed to unmarshal solve job: %w", err)
	}

	return &job, nil
}

// Publish sends a result to a pub/sub channel.
func (c *RedisClient) Publish(ctx context.Context, channel string, result SolveResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	if err := c.client.Publish(ctx, channel, data).Err(); err != nil {
		return fmt.Errorf("failed to publish to channel %s: %w", channel, err)
	}

	return nil
}

// Subscribe creates a subscription to a pub/sub channel.
func (c *RedisClient) Subscribe(ctx context.Context, channel string) (<-chan SolveResult, error) {
	pubsub := c.client.Subscribe(ctx, channel)

	// Wait for subscription confirmation
	if _, err := pubsub.Receive(ctx); err != nil {
		return nil, fmt.Errorf("failed to subscribe to channel %s: %w", channel, err)
	}

	resultChan := make(chan SolveResult)

	go func() {
		defer close(resultChan)
		defer pubsub.Close()

		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}

				var result SolveResult
				if err := json.Unmarshal([]byte(msg.Payload), &result); err != nil {
					// Log error but continue processing
					continue
				}

				select {
				case resultChan <- result:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return resultChan, nil
}

// RegisterEngine writes engine metadata to Redis and adds to available set.
func (c *RedisClient) RegisterEngine(ctx context.Context, meta EngineMeta) error {
	// Convert slice fields to JSON strings for Redis storage
	capsJSON, err := json.Marshal(meta.Capabilities)
	if err != nil {
		return fmt.Errorf("failed to marshal capabilities: %w", err)
	}
	plansJSON, err := json.Marshal(meta.PlanKinds)
	if err != nil {
		return fmt.Errorf("failed to marshal plan kinds: %w", err)
	}

	// Build a flat map for HSET - all values must be strings for go-redis
	metaMap := map[string]string{
		"name":         meta.Name,
		"version":      meta.Version,
		"description":  meta.Description,
		"capabilities": string(capsJSON),
		"plan_kinds":   string(plansJSON),
		"worker_count": strconv.Itoa(meta.WorkerCount),
	}

	// Write metadata to hash using individual field-value pairs
	metaKey := formatKeyName("engine", meta.Name, "meta")
	args := make([]interface{}, 0, len(metaMap)*2)
	for k, v := range metaMap {
		args = append(args, k, v)
	}
	if err := c.client.HSet(ctx, metaKey, args...).Err(); err != nil {
		return fmt.Errorf("failed to set engine metadata: %w", err)
	}

	// Add to available engines set
	if err := c.client.SAdd(ctx, "engines:available", meta.Name).Err(); err != nil {
		return fmt.Errorf("failed to add engine to available set: %w", err)
	}

	return nil
}

// ListEngines returns metadata for all registered engines.
func (c *RedisClient) ListEngines(ctx context.Context) ([]EngineMeta, error) {
	// Get all engine names from the set
	engineNames, err := c.client.SMembers(ctx, "engines:available").Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get available engines: %w", err)
	}

	engines := make([]EngineMeta, 0, len(engineNames))

	for _, name := range engineNames {
		metaKey := formatKeyName("engine", name, "meta")
		metaMap, err := c.client.HGetAll(ctx, metaKey).Result()
		if err != nil {
			// Skip engines with missing metadata
			continue
		}

		if len(metaMap) == 0 {
			// Skip empty metadata
			continue
		}

		meta := EngineMeta{
			Name:        metaMap["name"],
			Version:     metaMap["version"],
			Description: metaMap["description"],
		}

		// Slice fields are stored as JSON strings
		if capsStr, ok := metaMap["capabilities"]; ok {
			var caps []string
			if err := json.Unmarshal([]byte(capsStr), &caps); err == nil {
				meta.Capabilities = caps
			}
		}
		if plansStr, ok := metaMap["plan_kinds"]; ok {
			var plans []string
			if err := json.Unmarshal([]byte(plansStr), &plans); err == nil {
				meta.PlanKinds = plans
			}
		}

		// Handle worker_count conversion
		if countStr, ok := metaMap["worker_count"]; ok {
			if count, err := strconv.Atoi(countStr); err == nil {
				meta.WorkerCount = count
			}
		}

		engines = append(engines, meta)
	}

	return engines, nil
}

// Heartbeat updates the health key for an engine with a 30s TTL.
func (c *RedisClient) Heartbeat(ctx context.Context, engineName string) error {
	healthKey := formatKeyName("engine", engineName, "health")
	if err := c.client.Set(ctx, healthKey, "ok", 30*time.Second).Err(); err != nil {
		return fmt.Errorf("failed to set heartbeat for engine %s: %w", engineName, err)
	}
	return nil
}

// GetWorkerCount returns the current worker count for an engine.
func (c *RedisClient) GetWorkerCount(ctx context.Context, engineName string) (int, error) {
	workerKey := formatKeyName("engine", engineName, "workers")
	countStr, err := c.client.Get(ctx, workerKey).Result()
	if err != nil {
		if err == redis.Nil {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get worker count for engine %s: %w", engineName, err)
	}

	count, err := strconv.Atoi(countStr)
	if err != nil {
		return 0, fmt.Errorf("invalid worker count value: %w", err)
	}

	return count, nil
}

// IncrementWorkerCount increments the worker count for an engine.
func (c *RedisClient) IncrementWorkerCount(ctx context.Context, engineName string) error {
	workerKey := formatKeyName("engine", engineName, "workers")
	if err := c.client.Incr(ctx, workerKey).Err(); err != nil {
		return fmt.Errorf("failed to increment worker count for engine %s: %w", engineName, err)
	}
	return nil
}

// DecrementWorkerCount decrements the worker count for an engine.
func (c *RedisClient) DecrementWorkerCount(ctx context.Context, engineName string) error {
	workerKey := formatKeyName("engine", engineName, "workers")
	if err := c.client.Decr(ctx, workerKey).Err(); err != nil {
		return fmt.Errorf("failed to decrement worker count for engine %s: %w", engineName, err)
	}
	return nil
}

// Close closes the Redis connection.
func (c *RedisClient) Close() error {
	return c.client.Close()
}

// formatKeyName ensures consistent key naming with engine:<name>:* pattern.
func formatKeyName(parts ...string) string {
	return strings.Join(parts, ":")
}
