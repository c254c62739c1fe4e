// Roomies - Roommate and Room Listing Marketplace
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roomies

// Command roomctl inspects and maintains a Roomies deployment from the
// command line. It reads the same configuration as the server (defaults,
// config.yaml, environment) and opens the catalog and peer index directly.
//
//	roomctl vocab
//	roomctl recommend --user alice --limit 5
//	roomctl index prune
//	roomctl token --user alice --ttl 1h
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(defaultEnv()).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
