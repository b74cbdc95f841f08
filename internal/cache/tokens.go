package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrTokenNotFound is returned when no entry exists for the given key.
var ErrTokenNotFound = errors.New("token not found")

// RefreshTokenStore keeps at most one refresh token per user, expiring after
// the configured TTL. Concurrent writes for the same user are last-write-wins:
// only the most recently issued refresh token stays valid, which is the
// intended behavior for reissue races.
type RefreshTokenStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRefreshTokenStore returns a store writing entries with the given TTL.
func NewRefreshTokenStore(client *redis.Client, ttl time.Duration) *RefreshTokenStore {
	return &RefreshTokenStore{client: client, ttl: ttl}
}

func refreshKey(userID uint) string {
	return fmt.Sprintf("refresh_token:%d", userID)
}

// Save overwrites the stored refresh token for the user and resets its TTL.
func (s *RefreshTokenStore) Save(ctx context.Context, userID uint, token string) error {
	return s.client.Set(ctx, refreshKey(userID), token, s.ttl).Err()
}

// Get returns the stored refresh token for the user.
func (s *RefreshTokenStore) Get(ctx context.Context, userID uint) (string, error) {
	val, err := s.client.Get(ctx, refreshKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrTokenNotFound
	}
	return val, err
}

// Delete removes the stored refresh token, ending the session.
func (s *RefreshTokenStore) Delete(ctx context.Context, userID uint) error {
	return s.client.Del(ctx, refreshKey(userID)).Err()
}

// TokenPair is an access/refresh token pair parked behind a one-time code.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// ExchangeCodeStore holds one-time codes minted at the end of a social login,
// exchanged exactly once for the real token pair.
type ExchangeCodeStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewExchangeCodeStore returns a store writing codes with the given TTL.
func NewExchangeCodeStore(client *redis.Client, ttl time.Duration) *ExchangeCodeStore {
	return &ExchangeCodeStore{client: client, ttl: ttl}
}

func exchangeKey(code string) string {
	return "oauth2_code:" + code
}

// Save parks the token pair behind the code.
func (s *ExchangeCodeStore) Save(ctx context.Context, code string, pair TokenPair) error {
	if err := s.client.HSet(ctx, exchangeKey(code),
		"access", pair.AccessToken,
		"refresh", pair.RefreshToken,
	).Err(); err != nil {
		return err
	}
	return s.client.Expire(ctx, exchangeKey(code), s.ttl).Err()
}

// Consume returns the pair for the code and deletes it, so a code can be
// redeemed at most once.
func (s *ExchangeCodeStore) Consume(ctx context.Context, code string) (TokenPair, error) {
	vals, err := s.client.HGetAll(ctx, exchangeKey(code)).Result()
	if err != nil {
		return TokenPair{}, err
	}
	if len(vals) == 0 {
		return TokenPair{}, ErrTokenNotFound
	}
	if err := s.client.Del(ctx, exchangeKey(code)).Err(); err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: vals["access"], RefreshToken: vals["refresh"]}, nil
}
