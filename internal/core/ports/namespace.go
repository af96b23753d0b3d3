package ports

// NamespaceLayout discovers implicit namespace packages and turns them into
// pkgutil-style namespace packages.
//
//go:generate go run go.uber.org/mock/mockgen -source=namespace.go -destination=mocks/mock_namespace.go -package=mocks
type NamespaceLayout interface {
	// ImplicitNamespacePackages returns the sorted directories under dir that
	// python would treat as implicit namespace packages. Directories listed in
	// ignored, and everything below them, are never returned.
	ImplicitNamespacePackages(dir string, ignored []string) ([]string, error)

	// AddPkgutilNamespaceInit writes a pkgutil __init__.py shim into dir.
	AddPkgutilNamespaceInit(dir string) error
}
