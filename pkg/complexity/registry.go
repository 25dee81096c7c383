package complexity

// Registry maps file extensions to the Parser that handles them, matching
// the language table.
type Registry struct {
	byExtension map[string]*Parser
}

// NewRegistry builds the registry for every supported language.
func NewRegistry() *Registry {
	r := &Registry{byExtension: make(map[string]*Parser)}

	r.register(newPython(), ".py")
	r.register(newJavaScriptLike("JavaScript"), ".js", ".jsx")
	r.register(newJavaScriptLike("TypeScript"), ".ts", ".tsx")
	r.register(newJava(), ".java")
	r.register(newCSharp(), ".cs")
	r.register(newC(), ".c", ".h")
	r.register(newCpp(), ".cpp", ".cc", ".cxx", ".hpp")
	r.register(newGo(), ".go")
	r.register(newAda(), ".adb", ".ads")

	return r
}

func (r *Registry) register(p *Parser, extensions ...string) {
	for _, ext := range extensions {
		r.byExtension[ext] = p
	}
}

// Lookup returns the Parser for an extension (including the leading dot) and
// whether one is registered.
func (r *Registry) Lookup(extension string) (*Parser, bool) {
	p, ok := r.byExtension[extension]
	return p, ok
}

// Extensions returns the set of extensions this registry recognizes, for
// handing to the scanner.
func (r *Registry) Extensions() map[string]bool {
	out := make(map[string]bool, len(r.byExtension))
	for ext := range r.byExtension {
		out[ext] = true
	}
	return out
}
