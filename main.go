package main

import "github.com/racelogiq/strategy-engine/cmd"

func main() {
	cmd.Execute()
}
