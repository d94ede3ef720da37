package main

import "github.com/coreh/linkshare/cmd"

func main() {
	cmd.Execute()
}
