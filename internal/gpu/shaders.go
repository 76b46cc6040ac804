//go:build !nogpu

package gpu

import (
	_ "embed"
	"fmt"
	"strconv"
	"strings"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

// Entry points shared between the WGSL sources and the pipeline descriptors.
const (
	computeEntryPoint  = "computeMain"
	vertexEntryPoint   = "vertexMain"
	fragmentEntryPoint = "fragmentMain"
)

// workgroupSizePlaceholder is replaced with the configured tile size.
const workgroupSizePlaceholder = "WORKGROUP_SIZE"

//go:embed shaders/simulation.wgsl
var simulationShaderTemplate string

//go:embed shaders/cell.wgsl
var cellShaderSource string

// simulationShaderSource returns the compute shader with its workgroup
// size set to tile x tile.
func simulationShaderSource(tile int) string {
	return strings.ReplaceAll(simulationShaderTemplate, workgroupSizePlaceholder, strconv.Itoa(tile))
}

// compileToSPIRV compiles WGSL with naga and packs the little-endian
// output into 32-bit words.
func compileToSPIRV(wgsl string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(wgsl)
	if err != nil {
		return nil, err
	}
	if len(spirvBytes)%4 != 0 {
		return nil, fmt.Errorf("SPIR-V length %d is not a multiple of 4", len(spirvBytes))
	}
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return words, nil
}

// createShaderModule hands WGSL to the device, or SPIR-V compiled by naga
// when precompile is set.
func createShaderModule(device hal.Device, label, wgsl string, precompile bool) (hal.ShaderModule, error) {
	source := hal.ShaderSource{WGSL: wgsl}
	if precompile {
		words, err := compileToSPIRV(wgsl)
		if err != nil {
			return nil, fmt.Errorf("%w: compile %s to SPIR-V: %w", ErrResourceCreation, label, err)
		}
		source = hal.ShaderSource{SPIRV: words}
		slogger().Debug("life: shader precompiled", "label", label, "words", len(words))
	}
	module, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  label,
		Source: source,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: shader %s: %w", ErrResourceCreation, label, err)
	}
	return module, nil
}
