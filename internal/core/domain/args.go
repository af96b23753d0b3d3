package domain

// InstallArgs are the fully decoded arguments of one install invocation.
type InstallArgs struct {
	// Requirement is the requirement line, including any --hash options.
	Requirement string
	// Isolated runs pip in isolated mode.
	Isolated bool
	// ExtraPipArgs are appended to the pip command line.
	ExtraPipArgs []string
	// Platforms are the target platform tags, before expansion.
	Platforms []string
	// PipDataExclude holds glob patterns of wheel files not to extract.
	PipDataExclude []string
	// EnableImplicitNamespacePkgs disables writing pkgutil namespace shims.
	EnableImplicitNamespacePkgs bool
	// Environment overrides the environment pip runs with.
	Environment map[string]string
	// DownloadOnly uses "pip download --only-binary=:all:" instead of "pip wheel".
	DownloadOnly bool
	// WheelFile switches to extract mode when set.
	WheelFile string
	// InstallationDir is where wheels are fetched and extracted.
	InstallationDir string
	// Python is the interpreter that runs pip.
	Python string
}

// ExtractMode reports whether a pre-fetched wheel should be extracted.
func (a InstallArgs) ExtractMode() bool {
	return a.WheelFile != ""
}
