package report

import (
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
)

// System is a best-effort snapshot of host resources at capture time.
type System struct {
	CPUThreads *int     `toml:"cpu_threads,omitempty"`
	MemTotalMB *float64 `toml:"mem_total_mb,omitempty"`
	MemUsedMB  *float64 `toml:"mem_used_mb,omitempty"`
	MemPercent *float64 `toml:"mem_percent,omitempty"`
	LoadAvg1   *float64 `toml:"load_avg_1,omitempty"`
	LoadAvg5   *float64 `toml:"load_avg_5,omitempty"`
	LoadAvg15  *float64 `toml:"load_avg_15,omitempty"`
}

// snapshotSystem collects whatever host metrics are available. Any lookup
// failure yields absent fields; if nothing is available the snapshot is
// omitted entirely. Load averages are unavailable on Windows, which is
// fine: absent, not failed.
func snapshotSystem() *System {
	var s System
	populated := false

	if threads, err := cpu.Counts(true); err == nil {
		s.CPUThreads = &threads
		populated = true
	}

	if vm, err := mem.VirtualMemory(); err == nil && vm != nil {
		total := float64(vm.Total) / 1024 / 1024
		used := float64(vm.Used) / 1024 / 1024
		pct := vm.UsedPercent
		s.MemTotalMB = &total
		s.MemUsedMB = &used
		s.MemPercent = &pct
		populated = true
	}

	if avg, err := load.Avg(); err == nil && avg != nil {
		s.LoadAvg1 = &avg.Load1
		s.LoadAvg5 = &avg.Load5
		s.LoadAvg15 = &avg.Load15
		populated = true
	}

	if !populated {
		return nil
	}
	return &s
}
