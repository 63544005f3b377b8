// Command pitchctl is a local evoa client. It keeps one profile, the pitch
// catalog, likes, comments and cached analyses in a SQLite file and calls
// the evoa server for analyses and uploads.
package main

import (
	"os"

	"github.com/soaringjerry/evoa/internal/config"
)

func main() {
	config.LoadDotEnv()
	a := newApp()
	err := newRootCmd(a).Execute()
	_ = a.close()
	if err != nil {
		os.Exit(1)
	}
}
