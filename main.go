// Copyright (c) 2026 Trustgen Team
// Trustgen - trust-fixture generation utility
// This source code is licensed under the MIT license found in the LICENSE file.

// Command-line entrypoint for Trustgen.
//
// Usage:
//
//	go run . [flags]
//	./trustgen [flags]
//
// This launches the Trustgen CLI. See --help for options.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/qureni/trustgen/internal/cli"
)

// version is set at build time using -ldflags, e.g.:
// go build -ldflags "-X main.version=1.2.3"
var version = "dev"

// main is the entrypoint for the Trustgen CLI.
func main() {
	if os.Getenv("TRUSTGEN_SHOW_VERSION") == "1" {
		fmt.Fprintf(os.Stderr, "Trustgen version: %s\n", version)
	}

	if err := cli.Execute(); err != nil {
		log.Printf("Trustgen CLI error: %v", err)
		os.Exit(1)
	}
}
