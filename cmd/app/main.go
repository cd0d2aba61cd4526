package main

import (
	"os"

	_ "github.com/osse101/QuizDuel_Go/docs"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
