package main

import "github.com/edp1096/nport/cmd/nport/cmd"

func main() {
	cmd.Execute()
}
