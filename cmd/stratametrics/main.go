// cmd/stratametrics/main.go
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dalemusser/stratametrics/internal/app/bootstrap"
	"github.com/dalemusser/waffle/app"
)

func main() {
	if err := app.Run(context.Background(), bootstrap.Hooks); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
