// simwire CLI - validate, convert, and merge simulation documents.
package main

import (
	"os"

	"github.com/simwire/simwire/pkg/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
