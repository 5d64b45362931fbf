package diagnose

import (
	"context"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/mdcognizant/cursor-sub001/internal/domain"
)

const categoryResources = "System resources"

const (
	resourceWarnPercent = 90.0
	resourceFailPercent = 95.0
)

// ResourcesProbe samples memory and disk availability; scarcity of either
// makes every process spawn and page-in slower.
type ResourcesProbe struct{}

func (p *ResourcesProbe) Category() string { return categoryResources }

func (p *ResourcesProbe) Run(ctx context.Context, cfg domain.Config) []domain.DiagnosticResult {
	return []domain.DiagnosticResult{p.memory(ctx), p.disk(ctx)}
}

func (p *ResourcesProbe) memory(ctx context.Context) domain.DiagnosticResult {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return fail(categoryResources, "memory", fmt.Sprintf("could not sample memory: %v", err), "")
	}
	result := pass(categoryResources, "memory",
		fmt.Sprintf("%s of %s used (%.1f%%)", humanize.IBytes(vm.Used), humanize.IBytes(vm.Total), vm.UsedPercent))
	result.Value = fmt.Sprintf("%.1f%%", vm.UsedPercent)
	classifyUsage(&result, vm.UsedPercent, "close applications or add swap; memory pressure stalls process spawns")
	return result
}

func (p *ResourcesProbe) disk(ctx context.Context) domain.DiagnosticResult {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "/"
	}
	usage, err := disk.UsageWithContext(ctx, cwd)
	if err != nil {
		return fail(categoryResources, "disk", fmt.Sprintf("could not sample disk: %v", err), "")
	}
	result := pass(categoryResources, "disk",
		fmt.Sprintf("%s free of %s on %s (%.1f%% used)", humanize.IBytes(usage.Free), humanize.IBytes(usage.Total), usage.Path, usage.UsedPercent))
	result.Value = fmt.Sprintf("%.1f%%", usage.UsedPercent)
	classifyUsage(&result, usage.UsedPercent, "free disk space; near-full volumes degrade write latency")
	return result
}

func classifyUsage(result *domain.DiagnosticResult, usedPercent float64, recommendation string) {
	switch {
	case usedPercent >= resourceFailPercent:
		result.Status = domain.DiagnosticFail
		result.Recommendation = recommendation
	case usedPercent >= resourceWarnPercent:
		result.Status = domain.DiagnosticWarn
		result.Recommendation = recommendation
	}
}
