// Copyright (c) 2026 Veloura. All rights reserved.
// Author: engineering@veloura.shop

package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/veloura/veloura/internal/platform/apperr"
	"github.com/veloura/veloura/internal/platform/constants"
)

// RedisOTPRepository implements OTPRepository using Redis.
//
// # Key Layout
//
//   - auth:reset_otp:<email>          → hashed code (TTL bound)
//   - auth:reset_otp:<email>:attempts → failed guess counter (same TTL)
//   - auth:reset_ticket:<ticket>      → userID (TTL bound)
type RedisOTPRepository struct {
	client *redis.Client
}

// NewOTPRepository creates a new Redis-backed OTPRepository.
func NewOTPRepository(client *redis.Client) *RedisOTPRepository {
	return &RedisOTPRepository{client: client}
}

/*
SetCode stores a hashed reset code for an email address with a TTL.

Description: Replaces any earlier code and clears the attempt counter so a
re-requested code starts with a fresh budget.

Parameters:
  - context: context.Context
  - email: string
  - codeHash: string
  - ttl: time.Duration

Returns:
  - error: Execution errors
*/
func (repository *RedisOTPRepository) SetCode(context context.Context, email, codeHash string, ttl time.Duration) error {

	// Key derived from the constants prefix
	key := constants.RedisPrefixResetOTP + email

	// Set the code with TTL
	if err := repository.client.Set(context, key, codeHash, ttl).Err(); err != nil {
		return fmt.Errorf("redis_otp_set_code_failed: %w", err)
	}

	// Reset the attempt counter alongside
	if err := repository.client.Del(context, key+":attempts").Err(); err != nil {
		return fmt.Errorf("redis_otp_reset_attempts_failed: %w", err)
	}

	// Return nil on success
	return nil
}

/*
GetCode retrieves the stored code hash for an email address.

Description: Returns apperr.NotFound if the code is absent or expired.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - string: Stored code hash
  - error: apperr.NotFound or connectivity errors
*/
func (repository *RedisOTPRepository) GetCode(context context.Context, email string) (string, error) {

	// Key derived from the constants prefix
	key := constants.RedisPrefixResetOTP + email

	// Get the code hash from Redis
	codeHash, err := repository.client.Get(context, key).Result()

	// Handle errors
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperr.NotFound("Reset code is invalid or expired")
		}
		return "", fmt.Errorf("redis_otp_get_code_failed: %w", err)
	}

	// Return the code hash
	return codeHash, nil
}

/*
IncrementAttempts bumps the failed-verification counter for an email.

Description: The counter inherits the remaining TTL from the code key so the
budget and the code expire together.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - int64: Attempts so far
  - error: Execution errors
*/
func (repository *RedisOTPRepository) IncrementAttempts(context context.Context, email string) (int64, error) {

	key := constants.RedisPrefixResetOTP + email

	attempts, err := repository.client.Incr(context, key+":attempts").Result()
	if err != nil {
		return 0, fmt.Errorf("redis_otp_incr_attempts_failed: %w", err)
	}

	// Align the counter's lifetime with the code on the first guess
	if attempts == 1 {
		if ttl, err := repository.client.TTL(context, key).Result(); err == nil && ttl > 0 {
			_ = repository.client.Expire(context, key+":attempts", ttl).Err()
		}
	}

	return attempts, nil
}

/*
DeleteCode removes the code and its attempt counter.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - error: Deletion failures
*/
func (repository *RedisOTPRepository) DeleteCode(context context.Context, email string) error {

	key := constants.RedisPrefixResetOTP + email

	// Delete the code and its counter from Redis
	if err := repository.client.Del(context, key, key+":attempts").Err(); err != nil {
		return fmt.Errorf("redis_otp_delete_code_failed: %w", err)
	}

	// Return nil on success
	return nil
}

// # Reset Tickets

/*
SetTicket stores a verified reset ticket bound to a userID.

Parameters:
  - context: context.Context
  - ticket: string
  - userID: int64
  - ttl: time.Duration

Returns:
  - error: Storage failures
*/
func (repository *RedisOTPRepository) SetTicket(context context.Context, ticket string, userID int64, ttl time.Duration) error {

	// Key derived from the constants prefix
	key := constants.RedisPrefixResetTicket + ticket

	// Set the ticket with TTL
	if err := repository.client.Set(context, key, userID, ttl).Err(); err != nil {
		return fmt.Errorf("redis_otp_set_ticket_failed: %w", err)
	}

	// Return nil on success
	return nil
}

/*
GetTicket resolves a reset ticket back to its userID.

Description: Returns apperr.NotFound if the ticket is not present.

Parameters:
  - context: context.Context
  - ticket: string

Returns:
  - int64: UserID
  - error: Resolution failures
*/
func (repository *RedisOTPRepository) GetTicket(context context.Context, ticket string) (int64, error) {

	// Key derived from the constants prefix
	key := constants.RedisPrefixResetTicket + ticket

	// Get the ticket from Redis
	raw, err := repository.client.Get(context, key).Result()

	// Handle errors
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, apperr.NotFound("Reset ticket is invalid or expired")
		}
		return 0, fmt.Errorf("redis_otp_get_ticket_failed: %w", err)
	}

	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("redis_otp_ticket_corrupt: %w", err)
	}

	// Return the userID
	return userID, nil
}

/*
DeleteTicket removes the ticket from Redis.

Parameters:
  - context: context.Context
  - ticket: string

Returns:
  - error: Execution failures
*/
func (repository *RedisOTPRepository) DeleteTicket(context context.Context, ticket string) error {

	// Key derived from the constants prefix
	key := constants.RedisPrefixResetTicket + ticket

	// Delete the ticket from Redis
	if err := repository.client.Del(context, key).Err(); err != nil {
		return fmt.Errorf("redis_otp_delete_ticket_failed: %w", err)
	}

	// Return nil on success
	return nil
}
