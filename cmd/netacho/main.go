// netacho is the neta-cho authoring assistant: an MCP tool server for
// manzai and conte writing, plus local commands over the same tools.
//
// Usage:
//
//	netacho serve [--http] [--http-addr=:8765]
//	netacho call <tool> [json-args]
//	netacho auto --theme=<theme> [--genre=manzai|conte]
//	netacho sessions
//	netacho view <session-id> [--raw]
//	netacho tools
package main

import (
	"fmt"
	"os"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
