// Command enso-predict runs a single prediction from the terminal, either
// locally with the mock predictor or against a remote /predict backend.
//
// Usage:
//
//	enso-predict --lat -6.2 --lon 106.8
//	enso-predict --lat 12 --lon -70 --remote http://localhost:8080 --json
//
// Every flag can also be set through an ENSO_ prefixed environment variable,
// e.g. ENSO_REMOTE or ENSO_SEED.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
