package main

import "github.com/theirongolddev/moolah/cmd"

func main() {
	cmd.Execute()
}
