package handlers

import (
	"errors"
	"net/http"
)

// statusFor is the single place an error is inspected to pick an HTTP status.
// Domain errors carry their own hint; everything else is a storage or
// infrastructure failure and becomes a 500.
func statusFor(err error) int {
	var hinted interface{ Status() int }
	if errors.As(err, &hinted) {
		return hinted.Status()
	}
	return http.StatusInternalServerError
}
