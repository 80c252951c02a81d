package directory

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	redis "github.com/redis/go-redis/v9"
	"github.com/redis/go-redis/v9/maintnotifications"
)

// DefaultRedisKey is the key holding the directory when none is configured.
const DefaultRedisKey = "users"

// RedisOptions configures a RedisDirectory.
type RedisOptions struct {
	Addr     string
	Password string // empty string means no auth
	DB       int
	Key      string
	TLS      *tls.Config
}

// RedisDirectory is an implementation of Directory backed by a single
// Redis key.  All records are stored as one JSON array, so insertion
// order survives a round trip.  Every mutation fetches the array,
// modifies it and writes it back.  A process-local lock serialises
// those read-modify-write cycles; writers in other processes sharing
// the key are not coordinated.
type RedisDirectory struct {
	mu     sync.Mutex
	client *redis.Client
	key    string
}

// NewRedisDirectory connects to the Redis instance described by opts and
// verifies connectivity with a ping.  When the key does not exist yet it
// is initialised with seed.
func NewRedisDirectory(ctx context.Context, opts RedisOptions, seed []User) (*RedisDirectory, error) {
	ropts := &redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
		MaintNotificationsConfig: &maintnotifications.Config{
			Mode: maintnotifications.ModeDisabled,
		},
	}
	if opts.TLS != nil {
		ropts.TLSConfig = opts.TLS
	}

	client := redis.NewClient(ropts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	key := opts.Key
	if key == "" {
		key = DefaultRedisKey
	}
	d := &RedisDirectory{client: client, key: key}
	if err := d.seed(ctx, seed); err != nil {
		_ = client.Close()
		return nil, err
	}
	return d, nil
}

// Close releases the underlying connection pool.
func (d *RedisDirectory) Close() error {
	return d.client.Close()
}

// List returns all records stored in Redis in insertion order.
func (d *RedisDirectory) List(ctx context.Context) ([]User, error) {
	return d.fetchAll(ctx)
}

// Get retrieves a record by id from Redis.
func (d *RedisDirectory) Get(ctx context.Context, id int32) (User, error) {
	users, err := d.fetchAll(ctx)
	if err != nil {
		return User{}, err
	}
	if i := indexOf(users, id); i >= 0 {
		return users[i], nil
	}
	return User{}, &NotFoundError{ID: id}
}

// Create appends candidate under the next max-plus-one id and writes the
// array back.
func (d *RedisDirectory) Create(ctx context.Context, candidate *User) (User, error) {
	if err := validateCandidate(candidate); err != nil {
		return User{}, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	users, err := d.fetchAll(ctx)
	if err != nil {
		return User{}, err
	}
	user := User{
		ID:    nextID(users),
		Name:  candidate.Name,
		Email: candidate.Email,
	}
	if err := d.saveAll(ctx, append(users, user)); err != nil {
		return User{}, err
	}
	return user, nil
}

// Update overwrites name and email of an existing record.
func (d *RedisDirectory) Update(ctx context.Context, id int32, patch User) (User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	users, err := d.fetchAll(ctx)
	if err != nil {
		return User{}, err
	}
	i := indexOf(users, id)
	if i < 0 {
		return User{}, &NotFoundError{ID: id}
	}
	users[i].Name = patch.Name
	users[i].Email = patch.Email
	if err := d.saveAll(ctx, users); err != nil {
		return User{}, err
	}
	return users[i], nil
}

// Delete removes a record and writes the remaining array back.
func (d *RedisDirectory) Delete(ctx context.Context, id int32) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	users, err := d.fetchAll(ctx)
	if err != nil {
		return err
	}
	i := indexOf(users, id)
	if i < 0 {
		return &NotFoundError{ID: id}
	}
	return d.saveAll(ctx, append(users[:i], users[i+1:]...))
}

// seed writes the initial records only if the key is absent, so a
// restart against an existing key keeps its contents.
func (d *RedisDirectory) seed(ctx context.Context, seed []User) error {
	if seed == nil {
		seed = []User{}
	}
	data, err := json.Marshal(seed)
	if err != nil {
		return fmt.Errorf("failed to marshal seed users: %w", err)
	}
	if err := d.client.SetNX(ctx, d.key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis setnx failed: %w", err)
	}
	return nil
}

// fetchAll reads the JSON array from Redis.  A missing key is an empty
// directory.
func (d *RedisDirectory) fetchAll(ctx context.Context) ([]User, error) {
	raw, err := d.client.Get(ctx, d.key).Result()
	if errors.Is(err, redis.Nil) {
		return []User{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}
	var users []User
	if err := json.Unmarshal([]byte(raw), &users); err != nil {
		return nil, fmt.Errorf("failed to unmarshal users json: %w", err)
	}
	if users == nil {
		users = []User{}
	}
	return users, nil
}

// saveAll replaces the stored array with users.
func (d *RedisDirectory) saveAll(ctx context.Context, users []User) error {
	data, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("failed to marshal users: %w", err)
	}
	if err := d.client.Set(ctx, d.key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}
