// ABOUTME: OS credential store backend using zalando/go-keyring
// ABOUTME: Keeps the settings record, which carries the OpenAI key, out of plain files

package keyring

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"reader-assist/core/interfaces"

	gokeyring "github.com/zalando/go-keyring"
)

// DefaultService is the keyring service name entries are stored under
const DefaultService = "reader-assist"

// envelope wraps a value with its expiry; the keyring has no TTL of its own
type envelope struct {
	Value  []byte `json:"v"`
	Expiry int64  `json:"e,omitempty"`
}

// Client implements interfaces.Cache on top of the OS keyring
type Client struct {
	service string
}

// NewKeyringCache creates a keyring-backed store for the given service name
func NewKeyringCache(service string) *Client {
	if service == "" {
		service = DefaultService
	}
	return &Client{service: service}
}

// Get retrieves a value from the keyring
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	secret, err := gokeyring.Get(c.service, key)
	if err != nil {
		if errors.Is(err, gokeyring.ErrNotFound) {
			return nil, interfaces.ErrCacheMiss
		}
		return nil, fmt.Errorf("keyring get: %w", err)
	}

	var env envelope
	if err := json.Unmarshal([]byte(secret), &env); err != nil {
		return nil, fmt.Errorf("keyring entry %s is corrupt: %w", key, err)
	}

	if env.Expiry > 0 && time.Now().UnixNano() >= env.Expiry {
		_ = gokeyring.Delete(c.service, key)
		return nil, interfaces.ErrCacheMiss
	}

	return env.Value, nil
}

// Set stores a value in the keyring. A zero ttl never expires.
func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := envelope{Value: value}
	if ttl > 0 {
		env.Expiry = time.Now().Add(ttl).UnixNano()
	}

	data, err := json.Marshal(env)
	if err != nil {
		return err
	}

	if err := gokeyring.Set(c.service, key, string(data)); err != nil {
		return fmt.Errorf("keyring set: %w", err)
	}
	return nil
}

// Delete removes a value. Missing entries are not an error.
func (c *Client) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := gokeyring.Delete(c.service, key)
	if err != nil && !errors.Is(err, gokeyring.ErrNotFound) {
		return fmt.Errorf("keyring delete: %w", err)
	}
	return nil
}
