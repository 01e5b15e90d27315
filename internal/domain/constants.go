package domain

// Business validation constants
const (
	MaxNameLength        = 200
	MaxDescriptionLength = 2000
	MaxReasonLength      = 500
)

// Default configuration values
const (
	DefaultFinalizerIntervalSeconds = 300 // 5 minutes
)
