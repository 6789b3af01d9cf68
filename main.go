package main

import "github.com/kamal-hamza/brandkit/cmd"

func main() {
	cmd.Execute()
}
