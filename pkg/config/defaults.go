package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "aulario"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultRateLimitRequests = 30
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	// One canonical fallback for lessons saved without an end time. The
	// legacy system mixed 60 and 90 minute fallbacks depending on the
	// screen; 60 is the value the conflict path used and is what we keep.
	DefaultDefaultLessonDurationMin = 60

	DefaultGridFirstHour = 8
	DefaultGridLastHour  = 19

	DefaultLessonEventsTopic = "lesson-events"

	DefaultPaginationLimit = 100
)
