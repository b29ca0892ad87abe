package protoc

// Policy is the fixed code-generation customization applied to every
// invocation. It is translated into options for the generator plugins
// rather than passed to the compiler directly.
type Policy struct {
	// LiteRuntime strips the generated bindings down to the smaller,
	// reflection-light API surface. When false (the default for this
	// project) bindings keep the full introspection metadata.
	LiteRuntime bool

	// ZeroCopyBuffers makes decoded byte and string payload fields alias
	// the input buffer instead of owning copies, removing allocations on
	// the request/response hot path.
	ZeroCopyBuffers bool
}

// vtproto feature sets. The unsafe variant aliases the source buffer on
// unmarshal, which is the zero-copy contract the client library relies on.
const (
	vtFeatures         = "features=marshal+size+unmarshal"
	vtFeaturesZeroCopy = "features=marshal+size+unmarshal_unsafe"
)

// PluginOptions renders the policy as extra option strings for the named
// plugin. Plugins the policy does not affect get nothing.
func (p Policy) PluginOptions(plugin string) []string {
	switch plugin {
	case "go":
		if p.LiteRuntime {
			return []string{"default_api_level=API_OPAQUE"}
		}
	case "go-vtproto":
		if p.ZeroCopyBuffers {
			return []string{vtFeaturesZeroCopy}
		}
		return []string{vtFeatures}
	}
	return nil
}
