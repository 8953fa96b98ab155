// Command smauto loads a SmAuto model document and either validates it or
// runs the automation engine against it.
package main

import (
	"fmt"
	"os"

	"github.com/smauto-dev/engine/cmd/smauto/cli"
)

var version = "dev"

func main() {
	if err := cli.Execute(version); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
