package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gbpcli/src/gbp"
	"gbpcli/src/render"
)

// errNotFound is the user-facing message for builds the server does not
// know.
var errNotFound = errors.New("Not Found")

var renderer = render.New()

func runMachines(ctx context.Context, client *gbp.Client, w io.Writer) error {
	machines, err := client.Machines(ctx)
	if err != nil {
		return err
	}
	fmt.Fprint(w, renderer.Machines(machines))
	return nil
}

func runList(ctx context.Context, client *gbp.Client, w io.Writer, machine string) error {
	builds, err := client.Builds(ctx, machine)
	if err != nil {
		return err
	}
	fmt.Fprint(w, renderer.BuildList(builds))
	return nil
}

func runLatest(ctx context.Context, client *gbp.Client, w io.Writer, machine string) error {
	build, err := client.Latest(ctx, machine)
	if err != nil {
		return err
	}
	if build == nil {
		return fmt.Errorf("no builds for machine %s", machine)
	}
	fmt.Fprintf(w, "%d\n", build.Number)
	return nil
}

func runStatus(ctx context.Context, client *gbp.Client, w io.Writer, machine, number string) error {
	build, err := resolveBuild(ctx, client, machine, number)
	if err != nil {
		return err
	}

	withInfo, err := client.GetBuildInfo(ctx, build)
	if err != nil {
		return err
	}
	if withInfo == nil {
		return errNotFound
	}
	fmt.Fprint(w, renderer.BuildDetail(*withInfo))
	return nil
}

func runDiff(ctx context.Context, client *gbp.Client, w io.Writer, machine, leftArg, rightArg string) error {
	left, err := parseBuildNumber(leftArg)
	if err != nil {
		return err
	}
	right, err := parseBuildNumber(rightArg)
	if err != nil {
		return err
	}

	leftBuild, rightBuild, changes, err := client.Diff(ctx, machine, left, right)
	if err != nil {
		return err
	}
	fmt.Fprint(w, renderer.Diff(leftBuild, rightBuild, changes))
	return nil
}

func runLogs(ctx context.Context, client *gbp.Client, w io.Writer, machine, number string) error {
	build, err := buildArg(machine, number)
	if err != nil {
		return err
	}

	logs, found, err := client.Logs(ctx, build)
	if err != nil {
		return err
	}
	if !found {
		return errNotFound
	}
	fmt.Fprint(w, logs)
	return nil
}

func runPublish(ctx context.Context, client *gbp.Client, machine, number string) error {
	build, err := resolveBuild(ctx, client, machine, number)
	if err != nil {
		return err
	}
	return client.Publish(ctx, build)
}

func runScheduleBuild(ctx context.Context, client *gbp.Client, w io.Writer, machine string) error {
	token, err := client.ScheduleBuild(ctx, machine)
	if err != nil {
		return err
	}
	if token != "" {
		fmt.Fprintln(w, token)
	}
	return nil
}

func runPackages(ctx context.Context, client *gbp.Client, w io.Writer, machine, number string) error {
	build, err := buildArg(machine, number)
	if err != nil {
		return err
	}

	packages, err := client.Packages(ctx, build)
	if err != nil {
		return err
	}
	if packages == nil {
		return errNotFound
	}
	fmt.Fprint(w, renderer.Packages(packages))
	return nil
}

func runKeep(ctx context.Context, client *gbp.Client, machine, number string) error {
	build, err := buildArg(machine, number)
	if err != nil {
		return err
	}
	_, err = client.Keep(ctx, build)
	return err
}

func runRelease(ctx context.Context, client *gbp.Client, machine, number string) error {
	build, err := buildArg(machine, number)
	if err != nil {
		return err
	}
	_, err = client.Release(ctx, build)
	return err
}

func runTag(ctx context.Context, client *gbp.Client, args []string, remove bool) error {
	machine, number, tag, err := parseTagArgs(args, remove)
	if err != nil {
		return err
	}

	if remove {
		return client.Untag(ctx, machine, tag)
	}

	build, err := resolveBuild(ctx, client, machine, number)
	if err != nil {
		return err
	}
	return client.Tag(ctx, build, tag)
}

func runPull(ctx context.Context, client *gbp.Client, machine, number string) error {
	build, err := buildArg(machine, number)
	if err != nil {
		return err
	}
	return client.Pull(ctx, build)
}

// parseTagArgs splits the tag command's positional arguments. Two args
// are MACHINE TAG, three are MACHINE NUMBER TAG. Removal must not name a
// build number. A leading tag symbol on the tag is tolerated and
// stripped.
func parseTagArgs(args []string, remove bool) (machine, number, tag string, err error) {
	machine = args[0]
	switch len(args) {
	case 2:
		tag = args[1]
	case 3:
		if remove {
			return "", "", "", errors.New("When removing a tag, omit the build number")
		}
		number = args[1]
		tag = args[2]
	}
	return machine, number, strings.TrimPrefix(tag, "@"), nil
}

// resolveBuild turns MACHINE plus an optional number argument into a
// Build, falling back to the machine's latest build when the number is
// empty.
func resolveBuild(ctx context.Context, client *gbp.Client, machine, number string) (gbp.Build, error) {
	if number != "" {
		return buildArg(machine, number)
	}

	latest, err := client.Latest(ctx, machine)
	if err != nil {
		return gbp.Build{}, err
	}
	if latest == nil {
		return gbp.Build{}, fmt.Errorf("no builds for machine %s", machine)
	}
	return *latest, nil
}

func buildArg(machine, number string) (gbp.Build, error) {
	n, err := parseBuildNumber(number)
	if err != nil {
		return gbp.Build{}, err
	}
	return gbp.Build{Machine: machine, Number: n}, nil
}

func parseBuildNumber(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid build number %q", s)
	}
	return n, nil
}
