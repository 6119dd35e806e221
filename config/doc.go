// Package config loads service configuration from a YAML file, an optional
// .env file and the process environment.
//
// Values are layered in that order, so the environment wins. Nested keys map
// to upper-case variables joined by underscores: http.base_url is read from
// HTTP_BASE_URL, or from RESTKIT_HTTP_BASE_URL when WithEnvPrefix("restkit")
// is given.
//
//	var cfg bootstrap.Config
//	err := config.Load("forms", &cfg, config.WithConfigFile("config.yml"))
package config
