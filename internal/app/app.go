// Package app implements the application layer for whl.
package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/whl/internal/core/domain"
	"go.trai.ch/whl/internal/core/ports"
	"go.trai.ch/whl/internal/engine/deps"
	"go.trai.ch/whl/internal/engine/pep508"
	"go.trai.ch/whl/internal/engine/targets"
	"go.trai.ch/zerr"
)

const (
	// WheelFileName is written into the installation directory after a fetch.
	WheelFileName = "whl_file.json"
	// MetadataFileName is written into the installation directory after an extraction.
	MetadataFileName = "metadata.json"

	sitePackagesDir = "site-packages"
)

// App represents the main application logic.
type App struct {
	logger    ports.Logger
	config    ports.ConfigLoader
	python    ports.Interpreter
	wheels    ports.WheelArchive
	layout    ports.NamespaceLayout
	state     ports.ExtractionStore
	telemetry ports.Telemetry
	settings  *domain.Settings
}

// New creates a new App instance.
func New(
	logger ports.Logger,
	config ports.ConfigLoader,
	python ports.Interpreter,
	wheels ports.WheelArchive,
	layout ports.NamespaceLayout,
	state ports.ExtractionStore,
	telemetry ports.Telemetry,
) *App {
	return &App{
		logger:    logger,
		config:    config,
		python:    python,
		wheels:    wheels,
		layout:    layout,
		state:     state,
		telemetry: telemetry,
		settings:  domain.DefaultSettings(),
	}
}

// Configure loads the settings file at path. Settings supply the defaults of
// every later operation.
func (a *App) Configure(path string) error {
	settings, err := a.config.Load(path)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}
	a.settings = settings
	return nil
}

// Close flushes the telemetry recording.
func (a *App) Close() error {
	return a.telemetry.Close()
}

// Install fetches a wheel with pip, or extracts a fetched wheel when
// args.WheelFile is set.
func (a *App) Install(ctx context.Context, args domain.InstallArgs) error {
	args = a.settings.Apply(args)
	if strings.TrimSpace(args.Requirement) == "" {
		return domain.ErrMissingRequirement
	}

	if args.ExtractMode() {
		ctx, v := a.telemetry.Record(ctx, "extract "+filepath.Base(args.WheelFile))
		err := a.extract(ctx, args)
		v.Complete(err)
		return err
	}

	ctx, v := a.telemetry.Record(ctx, "fetch "+pep508.StripHashes(args.Requirement))
	err := a.fetch(ctx, args)
	v.Complete(err)
	return err
}

// fetch runs pip to leave exactly one wheel in the installation directory.
func (a *App) fetch(ctx context.Context, args domain.InstallArgs) (err error) {
	dir, err := filepath.Abs(args.InstallationDir)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to resolve installation directory"), "dir", args.InstallationDir)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:gosec // installation dir is world readable
		return zerr.With(zerr.Wrap(err, "failed to create installation directory"), "dir", dir)
	}

	reqFile, err := writeRequirementFile(args.Requirement)
	if err != nil {
		return err
	}
	defer func() {
		if rmErr := removeTemp(reqFile); rmErr != nil && err == nil {
			err = rmErr
		}
	}()

	err = a.python.Run(ctx, ports.Invocation{
		Python: args.Python,
		Args:   pipArgs(args, reqFile),
		Env:    pipEnvironment(os.Environ(), args.Environment),
		Dir:    dir,
	})
	if err != nil {
		return zerr.Wrap(err, "pip failed")
	}

	whl, err := findWheel(dir)
	if err != nil {
		return err
	}
	a.logFingerprint("fetched", whl)

	return writeJSON(filepath.Join(dir, WheelFileName), domain.WheelFile{Path: whl})
}

// pipArgs builds the interpreter arguments of the pip invocation.
func pipArgs(args domain.InstallArgs, reqFile string) []string {
	argv := []string{"-m", "pip"}
	if args.DownloadOnly {
		argv = append(argv, "download", "--only-binary=:all:")
	} else {
		argv = append(argv, "wheel")
	}
	argv = append(argv, "--no-deps")
	if args.Isolated {
		argv = append(argv, "--isolated")
	}
	argv = append(argv, args.ExtraPipArgs...)
	return append(argv, "-r", reqFile)
}

// writeRequirementFile writes the requirement line to a new temporary file.
func writeRequirementFile(requirement string) (string, error) {
	f, err := os.CreateTemp("", "whl-requirement-*.txt")
	if err != nil {
		return "", zerr.Wrap(err, "failed to create requirement file")
	}
	if _, err := f.WriteString(requirement + "\n"); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", zerr.With(zerr.Wrap(err, "failed to write requirement file"), "path", f.Name())
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return "", zerr.With(zerr.Wrap(err, "failed to close requirement file"), "path", f.Name())
	}
	return f.Name(), nil
}

// removeTemp deletes path. A file that is already gone is not an error.
func removeTemp(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return zerr.With(zerr.Wrap(err, "failed to remove requirement file"), "path", path)
	}
	return nil
}

// findWheel returns the single *.whl in dir.
func findWheel(dir string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.whl"))
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to glob wheels"), "dir", dir)
	}
	switch len(matches) {
	case 0:
		return "", zerr.With(domain.ErrNoWheelFound, "dir", dir)
	case 1:
		return matches[0], nil
	default:
		slices.Sort(matches)
		return "", zerr.With(zerr.With(domain.ErrAmbiguousWheel, "dir", dir), "wheels", strings.Join(matches, ","))
	}
}

// extract unpacks a fetched wheel and writes its metadata document. An
// extraction recorded with the same inputs is not repeated.
func (a *App) extract(ctx context.Context, args domain.InstallArgs) error {
	dist, err := a.wheels.Inspect(args.WheelFile)
	if err != nil {
		return zerr.Wrap(err, "failed to inspect wheel")
	}
	fp, fingerprinted := a.logFingerprint("extracting", args.WheelFile)

	host, err := a.host(ctx, args.Python)
	if err != nil {
		return err
	}
	platforms, err := PlatformsFromArgs(args.Platforms, host)
	if err != nil {
		return err
	}

	base := filepath.Base(args.WheelFile)
	var key string
	if fingerprinted {
		key = extractionKey(fp, args, host)
		if a.upToDate(args.InstallationDir, base, key) {
			if v, ok := ports.VertexFromContext(ctx); ok {
				v.Cached()
			}
			a.logger.Info(base + " is up to date")
			return nil
		}
	}

	if err := a.wheels.Extract(args.WheelFile, args.InstallationDir, args.PipDataExclude); err != nil {
		return zerr.Wrap(err, "failed to extract wheel")
	}

	if !args.EnableImplicitNamespacePkgs {
		if err := a.addNamespaceShims(filepath.Join(args.InstallationDir, sitePackagesDir)); err != nil {
			return err
		}
	}

	selection, err := deps.New(dist.Name, dist.RequiresDist, requestedExtras(args.Requirement, dist.Name), platforms, host)
	if err != nil {
		return zerr.Wrap(err, "failed to compute dependencies")
	}

	metadata := domain.NewWheelMetadata(dist, selection.Build())
	if err := writeJSON(filepath.Join(args.InstallationDir, MetadataFileName), metadata); err != nil {
		return err
	}

	if key != "" {
		rec := domain.Extraction{Wheel: base, InputHash: key, Timestamp: time.Now().UTC()}
		if err := a.state.Put(args.InstallationDir, rec); err != nil {
			a.logger.Warn(fmt.Sprintf("failed to record extraction of %s: %v", base, err))
		}
	}
	return nil
}

// extractionKey digests every input that shapes the installation directory.
func extractionKey(fingerprint uint64, args domain.InstallArgs, host domain.Host) string {
	h := xxhash.New()
	_, _ = fmt.Fprintf(h, "wheel %016x\nrequirement %s\nhost %s\nimplicit %t\n",
		fingerprint, args.Requirement, host.Platform(), args.EnableImplicitNamespacePkgs)
	for _, p := range args.Platforms {
		_, _ = fmt.Fprintf(h, "platform %s\n", p)
	}
	for _, e := range args.PipDataExclude {
		_, _ = fmt.Fprintf(h, "exclude %s\n", e)
	}
	return fmt.Sprintf("%016x", h.Sum64())
}

// upToDate reports whether dir already holds the extraction of wheel made
// from the inputs digested into key.
func (a *App) upToDate(dir, wheel, key string) bool {
	rec, err := a.state.Get(dir, wheel)
	if err != nil {
		a.logger.Warn(fmt.Sprintf("ignoring extraction state of %s: %v", dir, err))
		return false
	}
	if rec == nil || rec.InputHash != key {
		return false
	}
	_, err = os.Stat(filepath.Join(dir, MetadataFileName))
	return err == nil
}

// addNamespaceShims turns every implicit namespace package below site into a
// pkgutil-style namespace package.
func (a *App) addNamespaceShims(site string) error {
	pkgs, err := a.layout.ImplicitNamespacePackages(site, []string{filepath.Join(site, "bin")})
	if err != nil {
		return zerr.Wrap(err, "failed to find namespace packages")
	}
	for _, pkg := range pkgs {
		if err := a.layout.AddPkgutilNamespaceInit(pkg); err != nil {
			return err
		}
	}
	return nil
}

// requestedExtras returns the extras of requirement when it names the wheel.
func requestedExtras(requirement, wheelName string) []string {
	name, extras, ok := pep508.ParseExtras(requirement)
	if !ok || domain.CanonicalName(name) != wheelName {
		return nil
	}
	return extras
}

// host returns the platform of the interpreter that drives pip. A pinned
// python_version skips starting the interpreter.
func (a *App) host(ctx context.Context, python string) (domain.Host, error) {
	if a.settings.PythonVersion.IsSet() {
		return domain.HostFromRuntime(a.settings.PythonVersion)
	}
	if python == "" {
		python = a.settings.Apply(domain.InstallArgs{}).Python
	}
	host, err := a.python.Probe(ctx, python)
	if err != nil {
		return domain.Host{}, zerr.Wrap(err, "failed to probe interpreter")
	}
	return host, nil
}

// logFingerprint logs the content hash of whl and reports whether it could
// be computed.
func (a *App) logFingerprint(action, whl string) (uint64, bool) {
	fp, err := a.wheels.Fingerprint(whl)
	if err != nil {
		a.logger.Warn(fmt.Sprintf("failed to fingerprint %s: %v", whl, err))
		return 0, false
	}
	a.logger.Info(fmt.Sprintf("%s %s (xxhash %016x)", action, filepath.Base(whl), fp))
	return fp, true
}

// ResolveTargets reads a JSON object of requirement lines to platform tags
// from inputPath, keeps the tags whose platform satisfies each requirement's
// marker and writes the result to outputPath.
func (a *App) ResolveTargets(ctx context.Context, inputPath, outputPath string) error {
	ctx, v := a.telemetry.Record(ctx, "resolve "+filepath.Base(inputPath))
	err := a.resolveTargets(ctx, inputPath, outputPath)
	v.Complete(err)
	return err
}

func (a *App) resolveTargets(ctx context.Context, inputPath, outputPath string) error {
	data, err := os.ReadFile(inputPath) //nolint:gosec // path is provided by user
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to read requirements"), "path", inputPath)
	}

	var reqs map[string][]string
	if err := json.Unmarshal(data, &reqs); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to parse requirements"), "path", inputPath)
	}

	host, err := a.host(ctx, "")
	if err != nil {
		return err
	}

	resolved, err := targets.Resolve(reqs, host)
	if err != nil {
		return zerr.With(err, "path", inputPath)
	}
	return writeJSON(outputPath, resolved)
}

// Platforms expands platform tags. The interpreter is only consulted when a
// tag names the host.
func (a *App) Platforms(ctx context.Context, tags []string) ([]domain.Platform, error) {
	var host domain.Host
	if slices.Contains(tags, "host") {
		h, err := a.host(ctx, "")
		if err != nil {
			return nil, err
		}
		host = h
	}
	return PlatformsFromArgs(tags, host)
}

// writeJSON writes v as indented JSON to path.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to encode json"), "path", path)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // outputs are world readable
		return zerr.With(zerr.Wrap(err, "failed to write file"), "path", path)
	}
	return nil
}
