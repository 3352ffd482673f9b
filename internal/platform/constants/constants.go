// Copyright (c) 2026 Modhaven. All rights reserved.

/*
Package constants provides centralized, immutable values shared across layers.

It defines default timeouts, rate limits, gallery layout breakpoints, and
cross-cutting keys used by both the interaction engine and the dev server.

Using this package ensures magic strings and magic numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "modhaven-gallery"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 150

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute

	// DailySubmissionLimit is how many videos one user may submit per day.
	DailySubmissionLimit = 3
)

// # Authentication

const (
	// AuthIssuer is the standard 'iss' claim in session JWTs.
	AuthIssuer = "modhaven.app"

	// SessionTokenTTL is the lifetime of a dev server session token.
	SessionTokenTTL = 24 * time.Hour
)

// # HTTP Headers

const (
	HeaderXRequestID = "X-Request-ID"
)

// # Gallery Layout

const (
	// LayoutBreakpointPx separates the narrow and wide thumbnail layouts.
	LayoutBreakpointPx = 768

	// NarrowVisibleThumbs is the thumbnail cap below the breakpoint.
	NarrowVisibleThumbs = 3

	// WideVisibleThumbs is the thumbnail cap at or above the breakpoint.
	WideVisibleThumbs = 5
)

// # Countdown

const (
	// SuccessDialogCountdown is how long a success dialog stays open before
	// auto-dismissing, unless the user pauses it.
	SuccessDialogCountdown = 7 * time.Second
)

// # Redis Prefixes (Cache Taxonomy)

const (
	RedisPrefixSession = "site:session:"
)
