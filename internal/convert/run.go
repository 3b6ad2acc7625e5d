package convert

import (
	"context"
	"errors"
	"fmt"
	"path"

	"github.com/google/uuid"
	"github.com/lawrencefrias/M365-Copilot-Agent-Converter/internal/artifact"
	"github.com/lawrencefrias/M365-Copilot-Agent-Converter/internal/solution"
	"github.com/sirupsen/logrus"
)

// DefaultSolutionDir is where solution files go, relative to the output root.
const DefaultSolutionDir = "solution"

// SolutionZipFile is the name of the zipped solution inside the solution dir.
const SolutionZipFile = "solution.zip"

// Provisioner creates a bot on the target platform and returns its id.
type Provisioner interface {
	CreateBot(ctx context.Context, name, description string) (string, error)
}

// Options controls a conversion run.
type Options struct {
	InputPath string
	OutputDir string

	// Sink overrides the default DirSink rooted at OutputDir.
	Sink artifact.Sink

	Solution    bool
	SolutionDir string
	// Overrides is applied on top of the derived solution metadata when set.
	Overrides *solution.Overrides

	Provision   bool
	Provisioner Provisioner
}

// Result describes what a run produced.
type Result struct {
	RunID    string
	Package  *Package
	Written  []string
	Solution *solution.Package
	BotID    string
}

// Run converts the package at opts.InputPath.
func Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.Provision && opts.Provisioner == nil {
		return nil, errors.New("provisioning requested but no provisioner configured")
	}

	runID := uuid.NewString()
	log := logrus.WithFields(logrus.Fields{"run": runID, "input": opts.InputPath})

	pkg, err := LoadFile(opts.InputPath)
	if err != nil {
		return nil, err
	}
	for _, w := range pkg.Warnings {
		log.Warn(w)
	}

	set, err := artifact.Render(ctx, pkg.App, pkg.Agent)
	if err != nil {
		return nil, err
	}

	result := &Result{RunID: runID, Package: pkg}

	if opts.Solution {
		meta := solution.Derive(pkg.App, pkg.Agent)
		if opts.Overrides != nil {
			meta = opts.Overrides.Apply(meta)
		}
		result.Solution, err = solution.Build(meta)
		if err != nil {
			return nil, fmt.Errorf("building solution: %w", err)
		}
		log.WithField("unique_name", result.Solution.Metadata.UniqueName).Debug("built solution package")
	}

	sink := opts.Sink
	if sink == nil {
		sink = artifact.DirSink{Root: opts.OutputDir}
	}

	result.Written, err = artifact.WriteSet(sink, set)
	if err != nil {
		return nil, err
	}

	if result.Solution != nil {
		written, err := WriteSolution(sink, result.Solution, opts.SolutionDir)
		if err != nil {
			return nil, err
		}
		result.Written = append(result.Written, written...)
	}
	log.WithField("files", len(result.Written)).Info("wrote artifacts")

	if opts.Provision {
		name := BotName(pkg.App, pkg.Agent)
		id, err := opts.Provisioner.CreateBot(ctx, name, BotDescription(pkg.App, pkg.Agent))
		if err != nil {
			return nil, err
		}
		result.BotID = id
		log.WithFields(logrus.Fields{"bot": id, "name": name}).Info("provisioned bot")
	}

	return result, nil
}

// WriteSolution persists the zipped solution and its three documents under
// dir (DefaultSolutionDir when empty).
func WriteSolution(sink artifact.Sink, pkg *solution.Package, dir string) ([]string, error) {
	if dir == "" {
		dir = DefaultSolutionDir
	}
	if err := sink.MkdirAll(dir); err != nil {
		return nil, err
	}

	var written []string
	zipName := path.Join(dir, SolutionZipFile)
	if err := sink.WriteFile(zipName, pkg.Zip); err != nil {
		return nil, err
	}
	written = append(written, zipName)

	for _, f := range pkg.Files {
		name := path.Join(dir, f.Name)
		if err := sink.WriteFile(name, []byte(f.Content)); err != nil {
			return written, err
		}
		written = append(written, name)
	}
	return written, nil
}
