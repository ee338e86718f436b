package utils

import (
	"fmt"
	"net/http"
)

// RequestBaseURL reconstrói a origem (scheme://host) da requisição. Usado
// para derivar a URL de callback do OAuth a partir da própria requisição.
func RequestBaseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}

	return fmt.Sprintf("%s://%s", scheme, r.Host)
}
