// Package deps verifies that the external binaries photoforge shells out to
// are present before any work is dispatched.
package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"photoforge/internal/config"
)

// Requirement defines an external binary photoforge relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a requirement.
type Status struct {
	Requirement
	Available bool
	Path      string
	Detail    string
}

// ForConfig builds the requirement list for the configured tools. Blender is
// optional because only the preview command needs it.
func ForConfig(cfg *config.Config) []Requirement {
	return []Requirement{
		{
			Name:        "RealityScan",
			Command:     cfg.Tools.RealityScan,
			Description: "photogrammetry reconstruction (model command)",
		},
		{
			Name:        "ImageMagick",
			Command:     cfg.Tools.Magick,
			Description: "mask generation (masks command)",
		},
		{
			Name:        "Blender",
			Command:     cfg.Tools.Blender,
			Description: "preview renders (preview command)",
			Optional:    true,
		},
	}
}

// Check resolves each requirement on the current PATH and reports its
// availability.
func Check(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		status := Status{Requirement: req}
		status.Command = strings.TrimSpace(req.Command)

		if status.Command == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		path, err := exec.LookPath(status.Command)
		if err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", status.Command)
			results = append(results, status)
			continue
		}
		status.Available = true
		status.Path = path
		results = append(results, status)
	}
	return results
}

// MissingRequired returns the names of unavailable non-optional binaries.
func MissingRequired(statuses []Status) []string {
	var missing []string
	for _, status := range statuses {
		if !status.Available && !status.Optional {
			missing = append(missing, status.Name)
		}
	}
	return missing
}
