// tcpinspect prints the raw chunks that TCP clients send, one client
// at a time.  It exists to watch firmware talk before a real server is
// in place.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"tcpinspect/cmd"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := cmd.Execute(ctx, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "tcpinspect: %v\n", err)
		os.Exit(1)
	}
}
