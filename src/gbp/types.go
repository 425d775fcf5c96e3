package gbp

import (
	"fmt"
	"time"
)

// Status classifies a single item in a build diff.
type Status int

const (
	Removed Status = -1
	Changed Status = 0
	Added   Status = 1
)

// ParseStatus maps the server's status string to a Status value.
// The set of statuses is closed; anything else is an error.
func ParseStatus(s string) (Status, error) {
	switch s {
	case "REMOVED":
		return Removed, nil
	case "CHANGED":
		return Changed, nil
	case "ADDED":
		return Added, nil
	}
	return 0, fmt.Errorf("unknown diff status %q", s)
}

func (s Status) String() string {
	switch s {
	case Removed:
		return "REMOVED"
	case Changed:
		return "CHANGED"
	case Added:
		return "ADDED"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// BuildInfo is metadata about a build, fetched lazily from the API.
// Optional response fields stay nil when the server omits them.
type BuildInfo struct {
	Keep      *bool
	Note      *string
	Published *bool
	Submitted time.Time
	Completed *time.Time
}

// Build is a numbered artifact produced for a machine. Identity is
// (Machine, Number). Info is nil until explicitly fetched, and when set it
// is fully populated.
type Build struct {
	Machine string
	Number  int
	Info    *BuildInfo
}

// Change is one item in a diff between two builds.
type Change struct {
	Item   string
	Status Status
}

// Machine is a named build target with its build count, as reported by the
// machines query.
type Machine struct {
	Name       string
	BuildCount int
}

// apiBuild is the wire shape of a build in GraphQL responses. Pointer
// fields distinguish absent from zero.
type apiBuild struct {
	Name      string  `json:"name"`
	Number    *int    `json:"number"`
	Submitted *string `json:"submitted"`
	Completed *string `json:"completed"`
	Keep      *bool   `json:"keep"`
	Published *bool   `json:"published"`
	Notes     *string `json:"notes"`
	Logs      *string `json:"logs"`
}

// buildFromAPI maps a decoded build payload to a Build with populated info.
// Name, number and submitted are required; submitted and completed must be
// RFC 3339 timestamps. All other fields carry over as-is, nil included.
func buildFromAPI(api apiBuild) (Build, error) {
	if api.Name == "" {
		return Build{}, fmt.Errorf("build response missing name")
	}
	if api.Number == nil {
		return Build{}, fmt.Errorf("build response missing number")
	}
	if api.Submitted == nil {
		return Build{}, fmt.Errorf("build %s: response missing submitted", api.Name)
	}

	submitted, err := time.Parse(time.RFC3339, *api.Submitted)
	if err != nil {
		return Build{}, fmt.Errorf("build %s.%d: parse submitted: %w", api.Name, *api.Number, err)
	}

	var completed *time.Time
	if api.Completed != nil {
		t, err := time.Parse(time.RFC3339, *api.Completed)
		if err != nil {
			return Build{}, fmt.Errorf("build %s.%d: parse completed: %w", api.Name, *api.Number, err)
		}
		completed = &t
	}

	return Build{
		Machine: api.Name,
		Number:  *api.Number,
		Info: &BuildInfo{
			Keep:      api.Keep,
			Note:      api.Notes,
			Published: api.Published,
			Submitted: submitted,
			Completed: completed,
		},
	}, nil
}
