// Command contacts-api runs the contacts HTTP API and its maintenance tasks.
package main

import (
	"context"
	"os"
)

func main() {
	if err := NewRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
