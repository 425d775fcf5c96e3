package render

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gbpcli/src/gbp"
)

func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }

func buildWithInfo(number int, keep, published bool, note *string) gbp.Build {
	return gbp.Build{
		Machine: "lighthouse",
		Number:  number,
		Info: &gbp.BuildInfo{
			Keep:      boolPtr(keep),
			Published: boolPtr(published),
			Note:      note,
			Submitted: time.Date(2021, 5, 22, 13, 28, 48, 0, time.UTC),
		},
	}
}

func TestBuildFlags(t *testing.T) {
	tests := []struct {
		name  string
		build gbp.Build
		want  string
	}{
		{"all set", buildWithInfo(1, true, true, strPtr("note")), "[K*N]"},
		{"published only", buildWithInfo(2, false, true, nil), "[ * ]"},
		{"keep only", buildWithInfo(3, true, false, nil), "[K  ]"},
		{"none", buildWithInfo(4, false, false, nil), "[   ]"},
		{"no info", gbp.Build{Machine: "lighthouse", Number: 5}, "[   ]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildFlags(tt.build))
		})
	}
}

func TestBuildList(t *testing.T) {
	r := New()
	builds := []gbp.Build{
		buildWithInfo(281, false, false, nil),
		buildWithInfo(282, false, true, nil),
	}

	out := r.BuildList(builds)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "281")
	assert.Contains(t, lines[1], "282")
	assert.Contains(t, lines[1], "[ * ]")
}

func TestMachinesKeepsOrder(t *testing.T) {
	r := New()
	out := r.Machines([]gbp.Machine{
		{Name: "lighthouse", BuildCount: 14},
		{Name: "babette", BuildCount: 3},
	})

	lighthouse := strings.Index(out, "lighthouse")
	babette := strings.Index(out, "babette")
	require.GreaterOrEqual(t, lighthouse, 0)
	require.GreaterOrEqual(t, babette, 0)
	assert.Less(t, lighthouse, babette)
	assert.Contains(t, out, "14")
	assert.Contains(t, out, "3")
}

func TestBuildDetail(t *testing.T) {
	b := buildWithInfo(282, true, false, strPtr("uploaded by hand"))

	out := New().BuildDetail(b)
	assert.Contains(t, out, "lighthouse/282")
	assert.Contains(t, out, "Completed: in progress")
	assert.Contains(t, out, "Keep: yes")
	assert.Contains(t, out, "Published: no")
	assert.Contains(t, out, "uploaded by hand")
}

func TestDiffPrefixes(t *testing.T) {
	left := buildWithInfo(10, false, false, nil)
	right := buildWithInfo(11, false, false, nil)
	changes := []gbp.Change{
		{Item: "a", Status: gbp.Added},
		{Item: "b", Status: gbp.Removed},
		{Item: "c", Status: gbp.Changed},
	}

	out := New().Diff(left, right, changes)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	assert.Contains(t, lines[0], "diff -r lighthouse/10 lighthouse/11")
	assert.Contains(t, out, "+a")
	assert.Contains(t, out, "-b")
	assert.Contains(t, out, "*c")

	// Server ordering is preserved.
	assert.Less(t, strings.Index(out, "+a"), strings.Index(out, "-b"))
}

func TestPackages(t *testing.T) {
	out := New().Packages([]string{"app-shells/bash-5.1", "sys-apps/coreutils-8.32"})
	assert.Equal(t, "app-shells/bash-5.1\nsys-apps/coreutils-8.32\n", out)
}
