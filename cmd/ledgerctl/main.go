// Command ledgerctl inspects and settles groups in a ledger database.
package main

import (
	"os"

	"github.com/mmynk/groupledger/cmd/ledgerctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
