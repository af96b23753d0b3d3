package config

// Whlfile represents the structure of the whl.yaml settings file.
type Whlfile struct {
	// Python is the interpreter that runs pip.
	Python string `yaml:"python"`
	// PythonVersion pins the interpreter version, e.g. "3.11", instead of probing it.
	PythonVersion string `yaml:"python_version"`
	// Platforms are the default target platform tags.
	Platforms []string `yaml:"platforms"`
	// PipArgs is a shell-quoted string of extra pip arguments.
	PipArgs string `yaml:"pip_args"`
	// Environment is applied to the pip subprocess.
	Environment map[string]string `yaml:"environment"`
}
