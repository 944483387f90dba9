package main

import "github.com/jsphweid/flattenmidi/cmd"

func main() {
	cmd.Execute()
}
