package main

import "github.com/dotcommander/gradegate/cmd"

func main() {
	cmd.Execute()
}
