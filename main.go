package main

import "github.com/moyu-x/desktop-automation/cmd"

func main() {
	cmd.Execute()
}
