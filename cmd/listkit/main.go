// Command listkit inspects and exercises listkit collection models.
package main

import (
	"os"

	"github.com/go-drift/listkit/cmd/listkit/cmd"
)

func main() {
	if err := cmd.New().Execute(); err != nil {
		os.Exit(1)
	}
}
