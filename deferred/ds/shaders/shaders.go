package shaders

import (
	_ "embed"
)

// LightingCommonWGSL declares the light records shared by the deferred and forward
// lighting shaders. It is prepended to either of them before compilation.
//
//go:embed lighting_common.wgsl
var LightingCommonWGSL string

//go:embed gbuffer.wgsl
var GBufferWGSL string

//go:embed deferred_lighting.wgsl
var DeferredLightingWGSL string

//go:embed forward.wgsl
var ForwardWGSL string

//go:embed composite.wgsl
var CompositeWGSL string

//go:embed light_marker.wgsl
var LightMarkerWGSL string

//go:embed text.wgsl
var TextWGSL string

// DeferredLighting is the complete source of the screen-space lighting shader.
func DeferredLighting() string {
	return LightingCommonWGSL + "\n" + DeferredLightingWGSL
}

// Forward is the complete source of the single-pass forward shader.
func Forward() string {
	return LightingCommonWGSL + "\n" + ForwardWGSL
}
