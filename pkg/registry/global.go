package registry

// DefaultKey names the store used when no register key is given.
const DefaultKey = "__redist_default_register__"

// process is the namespace behind every global-scope registry that was not
// given its own namespace.
var process *Namespace

func init() {
	process = NewNamespace()
}

// Process returns the process-wide namespace. It is created once and never
// reset.
func Process() *Namespace {
	return process
}
