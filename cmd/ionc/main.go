// Command ionc is the build driver around the ion compiler core: source
// discovery, feature-flag configuration, and diagnostic printing live
// here, outside the pure core packages.
package main

import (
	"os"

	"github.com/ion-lang/ionc/cmd/ionc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(cmd.ExitCode(err))
	}
}
