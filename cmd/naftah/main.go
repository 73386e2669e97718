// Command naftah is the batch CLI driver for the Naftah language core.
package main

import (
	"os"

	"github.com/naftah-lang/naftah/cmd/naftah/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
