package main

import (
	"os"

	"mipssim/cmd/mipsctl"
)

func main() {
	os.Exit(mipsctl.Run())
}
