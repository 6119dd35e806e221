// Package httpclient is the HTTP implementation of rest.Transport.
//
// It sends requests through hashicorp/go-retryablehttp (no retries unless
// RetryMax is set), optionally throttles them with a token bucket, traces
// them with otelhttp and keeps cookies for requests flagged Credentials.
//
//	adapter, err := httpclient.New(httpclient.Config{
//	    BaseURL: "https://api.example.com",
//	    Timeout: 10 * time.Second,
//	})
//	handler := rest.NewHandler(adapter)
//
// Outcomes follow the rest conventions: 2xx is a success, any other HTTP
// status is a failure carrying the body, a cancelled or timed out request
// reports -1 and a request that never reached the server reports 0.
package httpclient
