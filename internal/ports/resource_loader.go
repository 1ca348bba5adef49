package ports

// ResourceLoader gives access to the bundled JSON resources.
type ResourceLoader interface {
	// Load returns the raw bytes of <name>.json. Missing or unreadable
	// resources are reported as *domain.ResourceError.
	Load(name string) ([]byte, error)
}
