package cli

import (
	"fmt"
	"os"

	"github.com/enyojs/enyo-dev/internal/branding"
	"github.com/enyojs/enyo-dev/internal/config"
	"github.com/enyojs/enyo-dev/internal/fetch"
	"github.com/enyojs/enyo-dev/internal/initializer"
	"github.com/enyojs/enyo-dev/internal/library"
	"github.com/enyojs/enyo-dev/internal/project"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	initName         string
	initTitle        string
	initLibraries    string
	initLinks        string
	initLinkAllLibs  bool
	initSave         bool
	initSafe         bool
	initPackage      bool
	initConfig       bool
	initGitIgnore    bool
	initDependencies bool
	initJobs         int
)

func init() {
	bindInitFlags(initCmd.Flags())
	rootCmd.AddCommand(initCmd)
}

func bindInitFlags(f *pflag.FlagSet) {
	f.StringVar(&initName, "name", "", "Project name (defaults to the existing name, package.json or directory name)")
	f.StringVar(&initTitle, "title", "", "Project title (defaults to the name)")
	f.StringVarP(&initLibraries, "libraries", "L", "", "Comma-separated list of libraries to resolve")
	f.StringVar(&initLinks, "links", "", "Comma-separated list of libraries to link from the shared links directory")
	f.BoolVar(&initLinkAllLibs, "link-all-libs", false, "Link every library instead of copying it")
	f.BoolVar(&initSave, "save", false, "Persist the resolved library settings to "+branding.ProjectFile())
	f.BoolVar(&initSafe, "safe", false, "Never replace an existing library directory with a link")
	f.BoolVar(&initPackage, "package", true, "Create package.json when missing")
	f.BoolVar(&initConfig, "config", true, "Create "+branding.ProjectFile()+" when missing")
	f.BoolVar(&initGitIgnore, "git-ignore", true, "Add build and library directories to .gitignore")
	f.BoolVar(&initDependencies, "dependencies", true, "Resolve project libraries")
	f.IntVar(&initJobs, "jobs", 0, "Maximum concurrent library resolutions (0 uses the jobs setting, unbounded by default)")
}

var initCmd = &cobra.Command{
	Use:   "init [project]",
	Short: "Initialize a project and resolve its libraries",
	Long: `Initialize the project in the given directory (the current directory by default).

Missing starter files are created, then every library is resolved either as a
private copy in the project's library directory or, for linked libraries, as a
symbolic link into the shared links directory. A library that fails to resolve
is reported but does not fail the command.

Example:
  enyo init my-app -L enyo,layout,moonstone
  enyo init --links enyo --save
  enyo init --link-all-libs --safe`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}

		opts := buildInitOptions(cmd.Flags(), dir)
		in := &initializer.Initializer{
			NewFetcher:       newFetcher,
			LinksDir:         config.LinksDir(),
			DefaultLibraries: config.DefaultLibraries(),
			ToolVersion:      buildVersion,
			Logger:           log,
		}

		res, err := in.Run(cmd.Context(), opts)
		if err != nil {
			return fmt.Errorf("initializing project: %w", err)
		}

		out := cmd.OutOrStdout()
		if res.Plan != nil && res.Plan.Len() > 0 {
			library.PrintOutcomes(out, res.Outcomes)
		}
		for _, o := range library.Rejected(res.Outcomes) {
			log.WithLibrary(o.Name).Error(o.Err.Error())
		}
		if res.Saved {
			fmt.Fprintf(out, "Saved %s\n", project.ConfigPath(res.Root))
		}
		return nil
	},
}

// buildInitOptions converts parsed flags into initializer options. List
// flags are only honoured when given; link-all-libs is left unset unless the
// flag was changed, so the persisted value applies.
func buildInitOptions(flags *pflag.FlagSet, dir string) initializer.Options {
	opts := initializer.Options{
		ProjectDir:   dir,
		Name:         initName,
		Title:        initTitle,
		Save:         initSave,
		Safe:         initSafe,
		Package:      initPackage,
		Config:       initConfig,
		GitIgnore:    initGitIgnore,
		Dependencies: initDependencies,
		Jobs:         initJobs,
	}
	if flags.Changed("libraries") {
		opts.Libraries = config.SplitList(initLibraries)
	}
	if flags.Changed("links") {
		opts.Links = config.SplitList(initLinks)
	}
	if flags.Changed("link-all-libs") {
		v := initLinkAllLibs
		opts.LinkAllLibs = &v
	}
	if !flags.Changed("jobs") {
		opts.Jobs = config.Jobs()
	}
	return opts
}

func newFetcher(p *project.Project) library.Fetcher {
	return &fetch.Fetcher{
		Project: p.Sources,
		User:    config.Sources(),
		Base:    branding.DefaultSourceBase(),
		Git:     os.Getenv(branding.EnvVar("GIT")),
	}
}
