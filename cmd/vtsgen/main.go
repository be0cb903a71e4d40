package main

import (
	"github.com/mirabox/vtsgen/cmd/vtsgen/cmd"
	"github.com/mirabox/vtsgen/pkg/osSpecific"
)

func main() {
	osSpecific.SetupConsole()
	cmd.Execute()
}
