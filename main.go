package main

import "github.com/debbugs/go-debbugs/cmd"

func main() {
	cmd.Execute()
}
