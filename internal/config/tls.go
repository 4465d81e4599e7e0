package config

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
)

// APITLS builds a *tls.Config trusting the configured CA for the backend.
// Returns nil, nil if no CA is configured (system roots).
func (c *Config) APITLS() (*tls.Config, error) {
	if c.APICACert == "" {
		return nil, nil
	}

	caPEM, err := os.ReadFile(c.APICACert)
	if err != nil {
		return nil, fmt.Errorf("read API CA cert: %w", err)
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(caPEM) {
		return nil, fmt.Errorf("failed to parse API CA cert")
	}

	tlsConfig := &tls.Config{
		RootCAs:    pool,
		MinVersion: tls.VersionTLS12,
	}
	if c.APITLSServerName != "" {
		tlsConfig.ServerName = c.APITLSServerName
	}
	return tlsConfig, nil
}
