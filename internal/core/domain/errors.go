package domain

import "go.trai.ch/zerr"

var (
	// ErrUnknownOS is returned when an OS token is not a recognized spelling.
	ErrUnknownOS = zerr.New("unknown os")

	// ErrUnknownArch is returned when an architecture token is not a recognized spelling.
	ErrUnknownArch = zerr.New("unknown arch")

	// ErrMalformedTag is returned when a compatibility tag does not follow the tag grammar.
	ErrMalformedTag = zerr.New("malformed platform tag")

	// ErrInvalidVersion is returned when a python version string cannot be parsed.
	ErrInvalidVersion = zerr.New("invalid python version")

	// ErrInvalidRequirement is returned when a requirement line cannot be parsed.
	ErrInvalidRequirement = zerr.New("invalid requirement")

	// ErrInvalidMarker is returned when an environment marker cannot be parsed.
	ErrInvalidMarker = zerr.New("invalid environment marker")

	// ErrUndefinedComparison is returned when a marker comparison has no defined meaning.
	ErrUndefinedComparison = zerr.New("undefined marker comparison")

	// ErrMixedPythonVersions is returned when target platforms mix explicit and unset python versions.
	ErrMixedPythonVersions = zerr.New("all python versions need to be specified explicitly")

	// ErrNoWheelFound is returned when pip did not leave a wheel behind.
	ErrNoWheelFound = zerr.New("no wheel found")

	// ErrAmbiguousWheel is returned when more than one wheel matches after pip ran.
	ErrAmbiguousWheel = zerr.New("more than one wheel found")

	// ErrInvalidWheel is returned when a wheel archive lacks the required dist-info metadata.
	ErrInvalidWheel = zerr.New("invalid wheel")

	// ErrUnsafeArchivePath is returned when a wheel entry would be written outside the destination.
	ErrUnsafeArchivePath = zerr.New("archive entry escapes destination")

	// ErrInitAlreadyExists is returned when a namespace shim would overwrite a real package marker.
	ErrInitAlreadyExists = zerr.New("directory already contains an __init__.py file")

	// ErrInvalidStructuredArg is returned when a JSON-encoded {"arg": ...} flag cannot be decoded.
	ErrInvalidStructuredArg = zerr.New("invalid structured argument")

	// ErrMissingRequirement is returned when the install command is run without a requirement.
	ErrMissingRequirement = zerr.New("requirement is required")
)
