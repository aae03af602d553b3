// Command harmonogram browses the construction schedule from the terminal.
//
//	harmonogram departments --search ozarovny
//	harmonogram timeline row-2 --file harmonogram.csv
//	harmonogram notes
//	harmonogram classify "Vystěhování skladu"
package main

import (
	"fmt"
	"os"

	"github.com/JonMunkholm/onkofaze/internal/core"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if core.IsUserFacing(err) {
			fmt.Fprintln(os.Stderr, core.FormatUserError(err))
		} else {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
