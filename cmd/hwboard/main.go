// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Command hwboard checks board layouts and component books and prints truth
// tables.
//
//	hwboard check xor.yaml
//	hwboard truth xor.yaml
//	hwboard truth --book adders.hwb FullAdder
//	hwboard book adders.hwb
//
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"
)

func main() {
	err := newRootCmd().Execute()
	_ = zap.L().Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
