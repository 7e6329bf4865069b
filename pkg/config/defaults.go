package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "rumahstay"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultPropertiesServiceURL = "http://localhost:8081"

	DefaultRateLimitRequests = 30
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	// Pricing defaults, amounts in sen (RM cents).
	DefaultServiceFeePercent = 10
	DefaultCleaningFeeSen    = 5000 // RM50 flat per booking

	// A selection session lives as long as one booking-widget mount
	// plausibly does.
	DefaultSessionTTL = 30 * time.Minute

	DefaultMaxAdvanceDays = 365
	DefaultMaxStayNights  = 90

	DefaultPaginationLimit = 20
	MaxPaginationLimit     = 100
)

// NormalizePaginationLimit clamps a requested page size into the allowed range.
func NormalizePaginationLimit(limit int) int {
	if limit <= 0 {
		return DefaultPaginationLimit
	}
	if limit > MaxPaginationLimit {
		return MaxPaginationLimit
	}
	return limit
}

func NormalizeOffset(offset int64) int64 {
	if offset < 0 {
		return 0
	}
	return offset
}
