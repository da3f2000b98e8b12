package gpu

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/cogentcore/webgpu/wgpu"
)

var ErrMissingEntryPoint = errors.New("gpu: shader entry point missing")

var entryPointRe = regexp.MustCompile(`@(vertex|fragment|compute)\s+fn\s+([A-Za-z_][A-Za-z0-9_]*)\s*\(`)

// EntryPoints lists the stage entry points declared in a WGSL source.
func EntryPoints(source string) []string {
	var names []string
	for _, m := range entryPointRe.FindAllStringSubmatch(source, -1) {
		names = append(names, m[2])
	}
	return names
}

// CheckEntryPoints fails with ErrMissingEntryPoint unless every name is declared in source.
func CheckEntryPoints(source string, names ...string) error {
	declared := make(map[string]bool)
	for _, n := range EntryPoints(source) {
		declared[n] = true
	}
	for _, n := range names {
		if !declared[n] {
			return fmt.Errorf("%w: %s", ErrMissingEntryPoint, n)
		}
	}
	return nil
}

// NewProgram compiles source after checking its entry points. Any failure is fatal to the
// caller's setup.
func NewProgram(device *wgpu.Device, label, source string, entryPoints ...string) (*wgpu.ShaderModule, error) {
	if err := CheckEntryPoints(source, entryPoints...); err != nil {
		return nil, fmt.Errorf("%s: %w", label, err)
	}
	mod, err := device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          label,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: source},
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", label, err)
	}
	return mod, nil
}
