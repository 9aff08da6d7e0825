package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"
)

// getPassword reads a line from the terminal without echoing it. The
// terminal state is restored if the prompt is interrupted.
func getPassword(prompt string) []byte {
	initialTermState, err := term.GetState(int(syscall.Stdin))
	if err != nil {
		printErrorAndExit(err, "Failed to read the terminal state")
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	go func() {
		if _, ok := <-c; ok {
			_ = term.Restore(int(syscall.Stdin), initialTermState)
			os.Exit(1)
		}
	}()
	defer func() {
		signal.Stop(c)
		close(c)
	}()

	fmt.Print(prompt)
	p, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		printErrorAndExit(err, "Failed to read the passphrase")
	}
	return p
}
