package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/whl/internal/app"
	"go.trai.ch/whl/internal/core/domain"
)

type installFlags struct {
	requirement                 string
	isolated                    bool
	extraPipArgs                string
	platforms                   []string
	pipDataExclude              string
	enableImplicitNamespacePkgs bool
	environment                 string
	downloadOnly                bool
	wheelFile                   string
	python                      string
	installationDir             string
}

func (c *CLI) newInstallCmd() *cobra.Command {
	var f installFlags

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Fetch a wheel with pip, or extract a fetched wheel with --whl-file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			args, err := f.toArgs()
			if err != nil {
				return err
			}
			return c.app.Install(cmd.Context(), args)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.requirement, "requirement", "", "A single PEP 508 requirement line, including any --hash options")
	flags.BoolVar(&f.isolated, "isolated", false, "Run pip in isolated mode")
	flags.StringVar(&f.extraPipArgs, "extra_pip_args", "", `Extra pip arguments as JSON: {"arg": [...]}`)
	flags.StringArrayVar(&f.platforms, "platform", nil, "Target platform tag, e.g. cp311_linux_x86_64 (repeatable)")
	flags.StringVar(&f.pipDataExclude, "pip_data_exclude", "", `Globs of wheel files not to extract as JSON: {"arg": [...]}`)
	flags.BoolVar(&f.enableImplicitNamespacePkgs, "enable_implicit_namespace_pkgs", false,
		"Leave implicit namespace packages as they are instead of adding pkgutil __init__.py files")
	flags.StringVar(&f.environment, "environment", "", `Environment overrides for pip as JSON: {"arg": {...}}`)
	flags.BoolVar(&f.downloadOnly, "download_only", false, "Use 'pip download' instead of 'pip wheel'")
	flags.StringVar(&f.wheelFile, "whl-file", "", "Extract this wheel instead of fetching one")
	flags.StringVar(&f.python, "python", "", "Python interpreter that runs pip")
	flags.StringVar(&f.installationDir, "installation-dir", "", "Directory wheels are fetched to and extracted in")
	_ = cmd.MarkFlagRequired("requirement")

	return cmd
}

func (f *installFlags) toArgs() (domain.InstallArgs, error) {
	extraPipArgs, err := app.DeserializeStructuredArg[[]string]("extra_pip_args", f.extraPipArgs)
	if err != nil {
		return domain.InstallArgs{}, err
	}
	pipDataExclude, err := app.DeserializeStructuredArg[[]string]("pip_data_exclude", f.pipDataExclude)
	if err != nil {
		return domain.InstallArgs{}, err
	}
	environment, err := app.DeserializeStructuredArg[map[string]string]("environment", f.environment)
	if err != nil {
		return domain.InstallArgs{}, err
	}

	return domain.InstallArgs{
		Requirement:                 f.requirement,
		Isolated:                    f.isolated,
		ExtraPipArgs:                extraPipArgs,
		Platforms:                   f.platforms,
		PipDataExclude:              pipDataExclude,
		EnableImplicitNamespacePkgs: f.enableImplicitNamespacePkgs,
		Environment:                 environment,
		DownloadOnly:                f.downloadOnly,
		WheelFile:                   f.wheelFile,
		InstallationDir:             f.installationDir,
		Python:                      f.python,
	}, nil
}
