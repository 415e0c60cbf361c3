package main

import "github.com/theirongolddev/burnrate/cmd"

func main() {
	cmd.Execute()
}
