package render

// Tolerances and limits of the light transport model. The bias values assume
// scene units of roughly 1-20; very large or very small scenes need them
// rescaled.
const (
	// MaxDepth is the number of reflection bounces after which the
	// background color is returned instead of tracing further.
	MaxDepth = 4

	// MaxVisibleDistance is the hit distance at or beyond which a ray is
	// treated as escaping the scene.
	MaxVisibleDistance = 1000

	// ShadowBias offsets shadow-ray origins off the surface along the normal
	// so they do not re-hit the surface they start on.
	ShadowBias = 1e-4

	// ReflectionBias offsets reflected-ray origins the same way.
	ReflectionBias = 1e-4

	// DirectWeight and ReflectedWeight blend a reflective surface's own
	// shading with the color seen in the mirror direction. They are a fixed
	// stylized split and do not sum to an energy-conserving BRDF.
	DirectWeight    = 0.3
	ReflectedWeight = 0.7

	// OutputScale converts [0,1] colors to the [0,255] output range.
	OutputScale = 255
)
