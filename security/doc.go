// Package security builds client TLS settings for restkit transports from
// file-based configuration.
//
//	cfg := security.TLSConfig{CAFile: "/etc/restkit/ca.pem", MinVersion: "1.3"}
//	tlsCfg, err := cfg.Build()
package security
