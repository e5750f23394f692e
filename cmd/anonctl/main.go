// Command anonctl inspects a running or stopped bot: the session outcome
// ledger, the live admin stats and operator tokens.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
