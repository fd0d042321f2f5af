package main

import (
	_ "time/tzdata"

	"github.com/chrisdamba/commutetracker/cmd"
)

func main() {
	cmd.Execute()
}
