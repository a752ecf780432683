package main

import (
	"github.com/MeKo-Tech/ergsnap/cmd/ergsnap/cmd"
)

func main() {
	cmd.Execute()
}
