// Package validation checks configuration structs with go-playground
// validator tags.
//
//	type Config struct {
//	    BaseURL  string `mapstructure:"base_url" validate:"omitempty,url"`
//	    RetryMax int    `mapstructure:"retry_max" validate:"gte=0,lte=10"`
//	}
//	if err := validation.Struct(cfg); err != nil {
//	    for key, msgs := range validation.Fields(err) { ... }
//	}
//
// Besides the built-in tags, "header" accepts a valid HTTP header name and
// "method" accepts one of the verbs restkit dispatches.
package validation
