package main

import "github.com/linktrace/linktrace/cmd"

func main() {
	cmd.Execute()
}
