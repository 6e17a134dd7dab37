package main

import "github.com/they4kman/stonesweep/cmd"

func main() {
	cmd.Execute()
}
