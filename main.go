package main

import "github.com/ramcloud-tools/rcprofile/cmd"

func main() {
	cmd.Execute()
}
