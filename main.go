package main

import "github.com/rskv-p/huff/cmd"

func main() {
	cmd.Execute()
}
