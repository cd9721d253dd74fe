package main

import (
	"fmt"
	"os"

	"github.com/teranos/rpctypegen/cmd/rpctypegen/cmd"
	"github.com/teranos/rpctypegen/errors"
	"github.com/teranos/rpctypegen/logger"
)

func main() {
	defer logger.Cleanup()

	if err := cmd.NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		for _, hint := range errors.GetAllHints(err) {
			fmt.Fprintf(os.Stderr, "Hint: %s\n", hint)
		}
		os.Exit(1)
	}
}
