// Command odorsearch runs and inspects odor recipe searches.
//
//	odorsearch simulate --channels 3 --journal ./runs --archive file://./reports
//	odorsearch replay ./runs/<run>.journal
//	odorsearch reports list --archive file://./reports
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
