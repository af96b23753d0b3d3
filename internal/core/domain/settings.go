package domain

import "maps"

// DefaultPython is the interpreter used when neither flags nor settings name one.
const DefaultPython = "python3"

// Settings are the project defaults read from whl.yaml.
type Settings struct {
	// Python is the interpreter that runs pip.
	Python string
	// PythonVersion pins the host interpreter version and skips probing it.
	PythonVersion Version
	// Platforms are the default target platform tags.
	Platforms []string
	// PipArgs are passed to pip before any --extra_pip_args.
	PipArgs []string
	// Environment is applied before any --environment override.
	Environment map[string]string
}

// DefaultSettings returns the settings used when no whl.yaml exists.
func DefaultSettings() *Settings {
	return &Settings{Python: DefaultPython}
}

// Apply fills the unset fields of args from s. Explicit arguments win:
// pip args are appended after the settings' and environment entries override them.
func (s *Settings) Apply(args InstallArgs) InstallArgs {
	if args.Python == "" {
		args.Python = s.Python
	}
	if args.Python == "" {
		args.Python = DefaultPython
	}
	if len(args.Platforms) == 0 {
		args.Platforms = s.Platforms
	}
	if len(s.PipArgs) > 0 {
		args.ExtraPipArgs = append(append([]string{}, s.PipArgs...), args.ExtraPipArgs...)
	}
	if len(s.Environment) > 0 {
		env := make(map[string]string, len(s.Environment)+len(args.Environment))
		maps.Copy(env, s.Environment)
		maps.Copy(env, args.Environment)
		args.Environment = env
	}
	if args.InstallationDir == "" {
		args.InstallationDir = "."
	}
	return args
}
