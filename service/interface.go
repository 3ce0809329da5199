package service

import "context"

// Service defines the lifecycle of long-lived infrastructure next to the game:
// the leaderboard writer, the audio output, the metrics endpoint
//
// Lifecycle:
//  1. Construction with explicit configuration
//  2. Init(ctx) - acquire resources that may fail (devices, listeners, preload)
//  3. Start() - launch background goroutines
//  4. [runtime operation]
//  5. Stop() - drain, halt goroutines, release resources
type Service interface {
	// Name returns the unique identifier for this service
	Name() string

	// Dependencies returns names of services that must Init before this one
	Dependencies() []string

	// Init prepares the service; a non-nil error aborts startup
	Init(ctx context.Context) error

	// Start begins service operation; called after every service has initialized
	Start() error

	// Stop halts the service; must be idempotent
	Stop() error
}
