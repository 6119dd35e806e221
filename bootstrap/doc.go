// Package bootstrap assembles a restkit service from its configuration.
//
// NewApp builds the logger, the header chain, the HTTP transport, the
// notification publisher, the telemetry observers, the dispatch handler and
// the scoped and verb clients on top of it. Start and Stop drive the
// component registry.
//
//	cfg, err := bootstrap.LoadConfig("forms")
//	app, err := bootstrap.NewApp(cfg)
//	if err := app.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package bootstrap
