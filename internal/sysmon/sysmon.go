// Package sysmon reports the host the calculator runs on: system-wide CPU
// and memory usage, and the CPU features the word kernels can benefit from.
package sysmon

import (
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
	xcpu "golang.org/x/sys/cpu"
)

// Stats holds a single snapshot of system-wide resource usage.
type Stats struct {
	CPUPercent float64 // 0.0 .. 100.0
	MemPercent float64 // 0.0 .. 100.0
}

// Sample collects a single system-wide CPU and memory snapshot.
// CPU uses interval=0 (delta since last call). Returns zero values on error.
func Sample() Stats {
	var s Stats
	cpuPcts, err := cpu.Percent(0, false)
	if err == nil && len(cpuPcts) > 0 {
		s.CPUPercent = cpuPcts[0]
	}
	vmem, err := mem.VirtualMemory()
	if err == nil && vmem != nil {
		s.MemPercent = vmem.UsedPercent
	}
	return s
}

// Feature is one CPU capability relevant to multi-word arithmetic.
type Feature struct {
	Name    string
	Present bool
}

// Features lists the arithmetic-related features of the running CPU: BMI2
// and ADX (carry-chain multiply) on amd64, ASIMD and PMULL on arm64. Other
// architectures return nil.
func Features() []Feature {
	switch runtime.GOARCH {
	case "amd64", "386":
		return []Feature{
			{"bmi2", xcpu.X86.HasBMI2},
			{"adx", xcpu.X86.HasADX},
			{"avx2", xcpu.X86.HasAVX2},
			{"popcnt", xcpu.X86.HasPOPCNT},
		}
	case "arm64":
		return []Feature{
			{"asimd", xcpu.ARM64.HasASIMD},
			{"pmull", xcpu.ARM64.HasPMULL},
		}
	}
	return nil
}

// FeatureSummary renders Features as "bmi2 adx -avx2", prefixing missing
// features with a minus sign, or "none" when nothing is reported.
func FeatureSummary() string {
	features := Features()
	if len(features) == 0 {
		return "none"
	}
	parts := make([]string, len(features))
	for i, f := range features {
		if f.Present {
			parts[i] = f.Name
		} else {
			parts[i] = "-" + f.Name
		}
	}
	return strings.Join(parts, " ")
}
