package main

import "github.com/joshwmy/record-management/cmd"

func main() {
	cmd.Execute()
}
