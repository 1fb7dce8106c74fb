package initializer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/enyojs/enyo-dev/internal/library"
	"github.com/enyojs/enyo-dev/internal/logger"
	"github.com/enyojs/enyo-dev/internal/manifest"
	"github.com/enyojs/enyo-dev/internal/project"
	"github.com/enyojs/enyo-dev/internal/scaffold"
)

// Options configures a single initialization. It is passed by value; nothing
// in it is retained after Run returns.
type Options struct {
	ProjectDir string
	Name       string
	Title      string

	// Libraries and Links are nil when not given on this invocation.
	Libraries   []string
	Links       []string
	LinkAllLibs *bool

	Save bool
	Safe bool

	Package      bool
	Config       bool
	GitIgnore    bool
	Dependencies bool

	// Jobs bounds concurrent library resolutions. Zero or less is unbounded.
	Jobs int
}

// Result reports what an initialization did.
type Result struct {
	Root     string
	Project  *project.Project
	Plan     *library.Plan // nil when dependencies were not resolved
	Outcomes []library.Outcome
	Saved    bool
}

// FetcherFactory builds the fetch collaborator for a loaded project, so that
// per-project source overrides can be honoured.
type FetcherFactory func(p *project.Project) library.Fetcher

// Initializer prepares a project directory and resolves its libraries.
type Initializer struct {
	NewFetcher       FetcherFactory
	LinksDir         string
	DefaultLibraries []string
	ToolVersion      string
	Logger           logger.Logger
}

// Run executes the initialization described by opts. Per-library failures
// are reported in Result.Outcomes; only failures to prepare the project
// directory or to load or save its configuration are returned as errors.
func (in *Initializer) Run(ctx context.Context, opts Options) (*Result, error) {
	log := in.logger()

	root, err := filepath.Abs(opts.ProjectDir)
	if err != nil {
		return nil, fmt.Errorf("resolving project directory: %w", err)
	}
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("creating project directory: %w", err)
	}

	hadConfig := project.Exists(root)
	p, err := project.Load(root)
	if err != nil {
		return nil, err
	}
	if newer, err := project.WrittenByNewerMajor(p.ToolVersion, in.ToolVersion); err != nil {
		log.Debug("ignoring unparseable tool version", logger.WithField("error", err))
	} else if newer {
		log.Warn("project configuration was written by a newer version",
			logger.WithField("saved", p.ToolVersion),
			logger.WithField("running", in.ToolVersion))
	}

	name, title := resolveIdentity(root, opts, p, log)
	result := &Result{Root: root, Project: p}

	if err := in.scaffold(root, opts, p, name, title, hadConfig); err != nil {
		return nil, err
	}

	req := library.Request{
		Libraries:   opts.Libraries,
		Links:       opts.Links,
		LinkAllLibs: opts.LinkAllLibs,
		Safe:        opts.Safe,
		Save:        opts.Save,
	}
	state := library.State{
		Libraries:   p.Libraries,
		Links:       p.Links,
		LinkAllLibs: p.LinkAllLibs,
	}

	if opts.Dependencies {
		fetcher := library.Fetcher(nil)
		if in.NewFetcher != nil {
			fetcher = in.NewFetcher(p)
		}

		libRoot := p.LibRoot(root)
		result.Plan = library.BuildPlan(req, state, library.DirInspector{Root: libRoot})
		log.Debug("library plan built",
			logger.WithField("libraries", result.Plan.Len()),
			logger.WithField("libRoot", libRoot))

		resolver := &library.Resolver{
			LibRoot:  libRoot,
			LinksDir: in.LinksDir,
			Fetcher:  fetcher,
		}
		result.Outcomes = library.Run(ctx, result.Plan, resolver, opts.Jobs)

		for _, o := range result.Outcomes {
			log.WithLibrary(o.Name).Debug("settled",
				logger.WithField("action", o.Action),
				logger.WithField("fulfilled", o.Fulfilled()))
		}
	}

	if opts.Save {
		p.Name = name
		p.Title = title
		sel := library.Select(req, state)
		p.Libraries = sel.Libraries
		p.Links = sel.Links
		p.LinkAllLibs = sel.LinkAllLibs
		if in.ToolVersion != "" {
			p.ToolVersion = in.ToolVersion
		}
		if err := project.Save(root, p); err != nil {
			return nil, err
		}
		result.Saved = true
		log.Debug("project configuration saved", logger.WithField("path", project.ConfigPath(root)))
	}

	return result, nil
}

// scaffold runs the package, git-ignore and config steps.
func (in *Initializer) scaffold(root string, opts Options, p *project.Project, name, title string, hadConfig bool) error {
	if opts.Package {
		created, err := scaffold.EnsurePackage(root, scaffold.NewData(name, title))
		if err != nil {
			return fmt.Errorf("writing package manifest: %w", err)
		}
		if created {
			in.logger().Info("created " + manifest.FileName)
		}
	}

	if opts.GitIgnore {
		added, err := scaffold.EnsureGitignore(root, scaffold.IgnoreLines(p.LibDir))
		if err != nil {
			return err
		}
		if len(added) > 0 {
			in.logger().Info("updated .gitignore", logger.WithField("added", len(added)))
		}
	}

	if opts.Config && !hadConfig {
		p.Name = name
		p.Title = title
		if p.Libraries == nil && len(in.DefaultLibraries) > 0 {
			p.Libraries = append([]string(nil), in.DefaultLibraries...)
		}
		if in.ToolVersion != "" {
			p.ToolVersion = in.ToolVersion
		}
		// A saving run writes the file once, after resolution.
		if opts.Save {
			return nil
		}
		if err := project.Save(root, p); err != nil {
			return err
		}
		in.logger().Info("created " + filepath.Base(project.ConfigPath(root)))
	}

	return nil
}

func (in *Initializer) logger() logger.Logger {
	if in.Logger == nil {
		return logger.Discard()
	}
	return in.Logger
}

// resolveIdentity picks the project name and title: explicit options first,
// then the persisted project, then the package manifest, then the directory
// name. The title falls back to the name.
func resolveIdentity(root string, opts Options, p *project.Project, log logger.Logger) (string, string) {
	name := opts.Name
	if name == "" {
		name = p.Name
	}
	if name == "" {
		pkgName, ok, err := manifest.ReadName(root)
		if err != nil {
			log.Warn("ignoring unreadable package manifest", logger.WithField("error", err))
		} else if ok {
			name = pkgName
		}
	}
	if name == "" {
		name = filepath.Base(root)
	}

	title := opts.Title
	if title == "" {
		title = p.Title
	}
	if title == "" {
		title = name
	}
	return name, title
}
