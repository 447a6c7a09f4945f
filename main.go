package main

import "github.com/meysamhadeli/teamboard/cmd"

func main() {
	cmd.Execute()
}
