// internal/app/bootstrap/hooks.go
package bootstrap

import (
	"github.com/dalemusser/waffle/app"
)

// Hooks wires this app into the WAFFLE lifecycle.
// Each function is called in order by app.Run, from configuration
// loading through backend setup, one-time startup work, HTTP handler
// construction, and finally graceful shutdown.
//
// The app owns no schema, so EnsureSchema is left nil.
var Hooks = app.Hooks[AppConfig, DBDeps]{
	Name:           "stratametrics", // used only for logging/diagnostics
	LoadConfig:     LoadConfig,      // load core + app config
	ValidateConfig: ValidateConfig,  // validate backend URL, panel windows, keys
	ConnectDB:      ConnectDB,       // build the analytics API client
	Startup:        Startup,         // load shared templates, start the probe job
	BuildHandler:   BuildHandler,    // build the HTTP router + middleware stack
	Shutdown:       Shutdown,        // stop jobs, release backend connections
}
