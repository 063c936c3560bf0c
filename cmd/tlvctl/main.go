package main

import (
	"fmt"
	"os"

	"github.com/danmuck/tlvcodec/internal/logging"
	"github.com/danmuck/tlvcodec/internal/observability"
)

func main() {
	logging.ConfigureRuntime()
	observability.InitLogger("tlvctl")
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "tlvctl: %v\n", err)
		os.Exit(1)
	}
}
