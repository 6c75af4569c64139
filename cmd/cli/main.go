package main

import (
	"fmt"
	"os"
)

func main() {
	a := newApp()

	if err := a.rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	os.Exit(a.exitCode)
}
