package api

import (
	"log"
	"net/http"
	"strings"
)

// =============================================================================
// ERROR SANITIZER
// Internal errors (database details, file paths, driver messages) are never
// leaked to API consumers. 5xx responses carry generic messages while the
// full error is logged server-side.
// =============================================================================

// respondSafeError logs the internal error and sends a sanitized JSON error
// response to the client.
func respondSafeError(w http.ResponseWriter, code int, internalErr error, publicMsg string) {
	if internalErr != nil {
		log.Printf("ERROR [%d]: %s: %v", code, publicMsg, internalErr)
	}
	respondError(w, code, publicMsg)
}

// safeErrorMessage maps internal error patterns to public-safe messages.
// 4xx messages describe user input and pass through; 5xx messages are
// replaced wholesale.
func safeErrorMessage(code int, internalErr error) string {
	if code < 500 {
		if internalErr != nil {
			return internalErr.Error()
		}
		return "Bad request"
	}

	if internalErr == nil {
		return "An internal error occurred"
	}

	errStr := strings.ToLower(internalErr.Error())

	switch {
	case strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "connection reset") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "dial tcp"):
		return "Service temporarily unavailable"

	case strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "deadline exceeded") ||
		strings.Contains(errStr, "context canceled"):
		return "Request timed out"

	case strings.Contains(errStr, "sql") ||
		strings.Contains(errStr, "pq:") ||
		strings.Contains(errStr, "query") ||
		strings.Contains(errStr, "scan") ||
		strings.Contains(errStr, "transaction") ||
		strings.Contains(errStr, "database"):
		return "A database error occurred"

	case strings.Contains(errStr, "json") ||
		strings.Contains(errStr, "unmarshal") ||
		strings.Contains(errStr, "marshal") ||
		strings.Contains(errStr, "decode") ||
		strings.Contains(errStr, "parse"):
		return "Invalid request format"

	default:
		return "An internal error occurred"
	}
}
