package emulator

import (
	"crypto/tls"
	"net/http"
)

// insecureTransport builds a transport that skips TLS verification, used
// only when the operator explicitly passes --use-https --verify-ssl=false
// (a lab-emulator convenience; never the default).
func insecureTransport() http.RoundTripper {
	return &http.Transport{
		TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, //nolint:gosec // explicit opt-in, lab use
	}
}
