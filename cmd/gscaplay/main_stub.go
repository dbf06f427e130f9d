//go:build !sdl2

// Command gscaplay requires SDL2 development libraries and is excluded
// from the default build, matching the teacher repo's own sdl2-tagged
// backend. Build with -tags sdl2 to get the real player.
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Fprintln(os.Stderr, "gscaplay: built without SDL2 support; rebuild with -tags sdl2")
	os.Exit(1)
}
