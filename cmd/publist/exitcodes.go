package main

// Exit codes
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (unknown operation, runtime failure)
	ExitConfigError = 2 // Configuration error (missing or invalid config file)
	ExitDataError   = 3 // Dataset error (malformed record, unresolved key); nothing is written
)
