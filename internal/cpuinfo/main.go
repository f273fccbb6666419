// Copyright 2025 The quadmul Authors. SPDX-License-Identifier: Apache-2.0

// Package main prints the vector capability the engine's probe selected,
// alongside the raw CPU feature flags it was derived from. Useful when a
// benchmark number looks wrong for the hardware.
package main

import (
	"fmt"
	"runtime"

	"golang.org/x/sys/cpu"

	"github.com/blockwise/quadmul/vec"
)

func main() {
	fmt.Printf("GOOS: %s\n", runtime.GOOS)
	fmt.Printf("GOARCH: %s\n", runtime.GOARCH)
	fmt.Printf("NumCPU: %d\n", runtime.NumCPU())
	fmt.Println()

	fmt.Printf("quadmul dispatch level: %s\n", vec.CurrentLevel())
	fmt.Printf("quadmul dispatch width: %d bytes\n", vec.CurrentWidth())
	fmt.Printf("quadmul float64 lanes:  %d\n", vec.MaxLanes[float64]())
	fmt.Printf("quadmul float32 lanes:  %d\n", vec.MaxLanes[float32]())
	fmt.Printf("QUADMUL_NO_SIMD set:    %v\n", vec.NoSimdEnv())
	fmt.Println()

	switch runtime.GOARCH {
	case "arm64":
		printARM64Features()
	case "amd64":
		printAMD64Features()
	}
}

func printARM64Features() {
	fmt.Println("=== golang.org/x/sys/cpu.ARM64 ===")
	fmt.Printf("  HasASIMD: %v (NEON baseline)\n", cpu.ARM64.HasASIMD)
	fmt.Printf("  HasFP:    %v (floating point)\n", cpu.ARM64.HasFP)
	fmt.Printf("  HasSVE:   %v (Scalable Vector Extension)\n", cpu.ARM64.HasSVE)
	fmt.Printf("  HasSVE2:  %v (SVE2)\n", cpu.ARM64.HasSVE2)
}

func printAMD64Features() {
	fmt.Println("=== golang.org/x/sys/cpu.X86 ===")
	fmt.Printf("  HasSSE2:   %v\n", cpu.X86.HasSSE2)
	fmt.Printf("  HasAVX:    %v\n", cpu.X86.HasAVX)
	fmt.Printf("  HasAVX2:   %v\n", cpu.X86.HasAVX2)
	fmt.Printf("  HasAVX512: %v\n", cpu.X86.HasAVX512)
	fmt.Printf("  HasFMA:    %v\n", cpu.X86.HasFMA)
}
