// Package cpuinfo reports the CPU features available at startup. It does
// not affect search or move-generation behavior; it exists purely so the
// engine can log what instruction-set extensions it could, in principle,
// take advantage of.
package cpuinfo

import "github.com/klauspost/cpuid/v2"

// Summary is a short, loggable description of the host CPU.
type Summary struct {
	BrandName string
	Cores     int
	AVX2      bool
	AVX512    bool
	SSE4      bool
}

// Probe reads the current process's CPU feature set.
func Probe() Summary {
	return Summary{
		BrandName: cpuid.CPU.BrandName,
		Cores:     cpuid.CPU.PhysicalCores,
		AVX2:      cpuid.CPU.Supports(cpuid.AVX2),
		AVX512:    cpuid.CPU.Supports(cpuid.AVX512F),
		SSE4:      cpuid.CPU.Supports(cpuid.SSE4) || cpuid.CPU.Supports(cpuid.SSE42),
	}
}
