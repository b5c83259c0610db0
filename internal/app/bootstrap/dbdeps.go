// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/dalemusser/stratametrics/internal/app/system/apiclient"
)

// DBDeps holds backend dependencies for this WAFFLE app.
//
// It is created in ConnectDB and passed to Startup, BuildHandler, and
// Shutdown. The app has no database of its own; its one backend is the
// analytics REST API.
type DBDeps struct {
	API *apiclient.Client
}
