//go:build arm64

package vec

import "golang.org/x/sys/cpu"

func init() {
	// Check if vectorization is disabled via environment variable
	if NoSimdEnv() {
		currentLevel = DispatchScalar
		currentWidth = 16
		currentName = "scalar"
		return
	}

	// NEON (ASIMD) is part of the ARMv8-A base architecture, so the check
	// only matters for exotic configurations.
	if cpu.ARM64.HasASIMD {
		currentLevel = DispatchNEON
		currentWidth = 16 // NEON is 128-bit (16 bytes)
		currentName = "neon"
	} else {
		currentLevel = DispatchScalar
		currentWidth = 16
		currentName = "scalar"
	}
}
