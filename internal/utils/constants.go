package utils

// LoggerInitializationFailedMessageFormat wraps logger construction failures that
// surface before any logger exists.
const LoggerInitializationFailedMessageFormat = "logger initialization failed: %w"

// ApplicationExecutionFailedMessage prefixes the fatal error emitted when a run fails.
const ApplicationExecutionFailedMessage = "application execution failed"
