package preflight

import (
	"prompter/internal/config"
	"prompter/internal/deps"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	// Optional failures are reported as warnings.
	Optional bool
	Detail   string
}

// RunAll executes every check for cfg and the manifest at manifestPath.
func RunAll(cfg *config.Config, manifestPath string) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result
	results = append(results, CheckDirectoryAccess("Log directory", cfg.Paths.LogDir))
	results = append(results, CheckManifest(manifestPath, cfg.DocumentDir(manifestPath)))

	statuses := deps.CheckBinaries(deps.ViewerRequirements(cfg))
	statuses = append(statuses, deps.CheckSessionBus())
	for _, s := range statuses {
		results = append(results, fromStatus(s))
	}
	results = append(results, CheckRunningViewers(cfg.Viewer.Binary))
	return results
}

// Failed returns the results that failed and are not optional.
func Failed(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if !r.Passed && !r.Optional {
			out = append(out, r)
		}
	}
	return out
}

func fromStatus(s deps.Status) Result {
	r := Result{Name: s.Name, Passed: s.Available, Optional: s.Optional}
	switch {
	case s.Available && s.Path != "":
		r.Detail = s.Path
	case s.Available:
		r.Detail = s.Command
	default:
		r.Detail = s.Detail
	}
	return r
}
