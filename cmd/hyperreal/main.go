// Command hyperreal evaluates formulas with exact derivatives, finds roots,
// integrates, and serves those tools over HTTP and MCP.
//
// Usage:
//
//	hyperreal eval 'x*sin(x)' --at 5
//	hyperreal newton 'x^2*cos(x) - 0.5' --x0 -1
//	hyperreal integrate 'exp(-x^2)' --from 0 --to 1
//	hyperreal serve --mode http --addr :8080
package main

import (
	"context"
	"os"

	"github.com/njchilds90/hyperreal/internal/cli"
)

func main() {
	os.Exit(cli.Execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}
