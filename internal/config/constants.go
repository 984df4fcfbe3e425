package config

import (
	"time"

	"moviedash/pkg/contracts"
)

// Application constants
const (
	AppName    = "Movie Dashboard"
	AppVersion = contracts.Version

	// Data defaults
	DefaultDataFile      = "movies.csv"
	DefaultHistogramBins = 30
	DefaultDensityPoints = 200
	DefaultTopN          = 10
	DefaultVoteThreshold = 100_000

	// Server defaults
	DefaultPort           = 8080
	DefaultRequestTimeout = 30 * time.Second
	DefaultLogFile        = "logs/moviedash.log"

	// Rate Limiting
	DefaultRateLimit = 100 // requests per second
	DefaultBurstSize = 50

	// WebSocket timing
	WebSocketWriteWait  = 10 * time.Second
	WebSocketPingPeriod = 30 * time.Second
	WebSocketPongWait   = 60 * time.Second
)
