// Command utxomatch decodes matcher error codes and runs declarations against
// UTXO fixtures.
//
// Usage:
//
//	utxomatch decode 6010
//	utxomatch decode MISSING_REQUIRED_UTXO
//	utxomatch inspect --decl swap.yaml
//	utxomatch match --decl swap.yaml --utxos utxos.json [--strict] [--detailed]
//	utxomatch fee --vsize 250 --rate 1000 [--per 1000] [--total 10000 --spent 9000]
//	utxomatch share --amount 1000 --part 1 --whole 3
package main

import (
	"fmt"
	"os"

	"github.com/bsv-blockchain/utxomatch/errors"
)

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// exitCode is 2 when a match was rejected and 1 for anything else.
func exitCode(err error) int {
	code := errors.CodeOf(err)
	if code >= errors.ERR_MISSING_REQUIRED_UTXO && code < errors.ERR_UTXO_NOT_FOUND {
		return 2
	}

	return 1
}
