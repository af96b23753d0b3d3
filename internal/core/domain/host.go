package domain

import (
	"runtime"
	"strings"

	"go.trai.ch/zerr"
)

// Host describes the machine running the tool and the python interpreter
// that drives pip on it.
type Host struct {
	OS     OS
	Arch   Arch
	Python Version
}

// goosNames maps GOOS values onto the spellings python reports in sys.platform.
var goosNames = map[string]string{
	"linux":   "linux",
	"darwin":  "darwin",
	"windows": "win32",
}

// goarchMachines maps GOARCH values onto the spellings python reports in
// platform.machine().
var goarchMachines = map[string]string{
	"amd64":   "x86_64",
	"386":     "i686",
	"arm64":   "aarch64",
	"ppc64le": "ppc64le",
	"s390x":   "s390x",
	"arm":     "arm",
}

// DetectHost builds a Host from a python-style sys.platform and machine
// string. An empty machine string defaults to x86_64, which is what some
// hermetic Windows interpreters report.
func DetectHost(sysPlatform, machine string, python Version) (Host, error) {
	os, err := ParseOS(strings.ToLower(sysPlatform))
	if err != nil {
		return Host{}, err
	}

	machine = strings.ToLower(machine)
	if machine == "" {
		machine = "x86_64"
	}
	arch, err := ParseArch(machine)
	if err != nil {
		return Host{}, err
	}

	return Host{OS: os, Arch: arch, Python: python}, nil
}

// HostFromRuntime detects the Host from the Go runtime.
func HostFromRuntime(python Version) (Host, error) {
	sysPlatform, ok := goosNames[runtime.GOOS]
	if !ok {
		return Host{}, zerr.With(ErrUnknownOS, "os", runtime.GOOS)
	}
	machine, ok := goarchMachines[runtime.GOARCH]
	if !ok {
		machine = runtime.GOARCH
	}
	return DetectHost(sysPlatform, machine, python)
}

// Platform returns the host as a fully specified Platform.
func (h Host) Platform() Platform {
	return Platform(h)
}

// Platforms returns the single host platform as a list.
func (h Host) Platforms() []Platform {
	return []Platform{h.Platform()}
}

// EnvMarkers returns the PEP 508 environment of the host.
func (h Host) EnvMarkers(extra string) map[string]string {
	return h.Platform().EnvMarkers(extra, h.Python)
}
