// Copyright (c) 2026 Veloura. All rights reserved.
// Author: engineering@veloura.shop

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// Security-sensitive code (hashing, JWT signing, random tokens) lives here,
// isolated from domain logic. Services consume it through narrow interfaces
// such as the auth package's TokenProvider.
package sec

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthClaims represents the payload embedded inside a JWT access token.
//
// # Why custom claims?
//
// Embedding the user ID, email, and role directly in the token lets the
// middleware reconstruct the request identity without a database round trip
// on every API call.
type AuthClaims struct {
	jwt.RegisteredClaims

	// Claim names are abbreviated to keep the token payload small.
	UserID int64  `json:"uid"`
	Email  string `json:"eml"`
	Role   string `json:"rol"`
}

// TokenService signs and verifies JWT access tokens using HMAC-SHA256.
//
// A symmetric secret keeps the deployment story simple: the API is the only
// party that ever signs or verifies, so an RSA key pair buys nothing here.
type TokenService struct {
	secret []byte
	issuer string
}

// NewTokenService creates a TokenService from a shared secret.
func NewTokenService(secret, issuer string) (*TokenService, error) {
	if len(secret) < 32 {
		return nil, fmt.Errorf("sec: jwt secret must be at least 32 bytes, got %d", len(secret))
	}
	return &TokenService{secret: []byte(secret), issuer: issuer}, nil
}

// GenerateAccessToken creates a new signed JWT access token for a user.
func (service *TokenService) GenerateAccessToken(userID int64, email, role string, timeToLive time.Duration) (string, error) {
	currentTime := time.Now()
	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
		},
		UserID: userID,
		Email:  email,
		Role:   role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// VerifyToken checks the signature and validity of a JWT string.
func (service *TokenService) VerifyToken(tokenString string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.secret, nil
	})

	if err != nil {
		return nil, fmt.Errorf("sec: invalid token: %w", err)
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("sec: invalid token claims")
	}

	return claims, nil
}
