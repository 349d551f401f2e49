package main

import "github.com/allbin/ctsmon/cmd"

func main() {
	cmd.Execute()
}
