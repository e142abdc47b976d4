package main

import "github.com/SilverFire/flysystem/pkg/flysystem"

// Set by the linker at release time
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	flysystem.Version = version
	Execute()
}
