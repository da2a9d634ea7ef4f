package cmd

import (
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/ajxudir/bagpack/pkg/constants"
)

// Version information set at build time via ldflags.
// Example: go build -ldflags="-X github.com/ajxudir/bagpack/cmd.Version=1.0.0"
var (
	// Version is the semantic version of the build.
	Version = "dev"
	// BuildTime is the timestamp of the build.
	BuildTime = ""
	// GitCommit is the git commit hash of the build.
	GitCommit = ""
	// BuildOS is the target OS the binary was built for.
	BuildOS = ""
	// BuildArch is the target architecture the binary was built for.
	BuildArch = ""
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version and build information",
	Run: func(cmd *cobra.Command, args []string) {
		printVersion(cmd.OutOrStdout())
	},
}

// printVersion writes the build target, runtime (when different), Go
// version, build date, commit, and version.
func printVersion(w io.Writer) {
	buildOS, buildArch := getBuildTarget()
	fmt.Fprintf(w, "  Build:   %s/%s\n", buildOS, buildArch)
	if buildOS != runtime.GOOS || buildArch != runtime.GOARCH {
		fmt.Fprintf(w, "  Runtime: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	}
	fmt.Fprintf(w, "  Go:      %s\n", runtime.Version())
	if BuildTime != "" {
		fmt.Fprintf(w, "  Date:    %s\n", BuildTime)
	}
	if GitCommit != "" {
		fmt.Fprintf(w, "  Git:     %s\n", GitCommit)
	}
	fmt.Fprintf(w, "  Version: %s\n", Version)
}

// getBuildTarget returns the OS and architecture the binary was built for,
// falling back to the runtime values for dev builds.
func getBuildTarget() (string, string) {
	buildOS, buildArch := BuildOS, BuildArch
	if buildOS == "" {
		buildOS = runtime.GOOS
	}
	if buildArch == "" {
		buildArch = runtime.GOARCH
	}
	return buildOS, buildArch
}

// HasArchMismatch reports whether the binary was built for another platform
// than the one it runs on. Dev builds never mismatch.
func HasArchMismatch() bool {
	if BuildOS == "" && BuildArch == "" {
		return false
	}
	buildOS, buildArch := getBuildTarget()
	return buildOS != runtime.GOOS || buildArch != runtime.GOARCH
}

// IsDevBuild reports whether the binary was built without a release version.
func IsDevBuild() bool {
	return Version == "dev"
}

// GetBuildWarnings returns the architecture mismatch and dev build warnings,
// or "" when there are none.
func GetBuildWarnings() string {
	var warnings string
	if HasArchMismatch() {
		buildOS, buildArch := getBuildTarget()
		warnings += fmt.Sprintf("%s  Architecture mismatch: binary built for %s/%s but running on %s/%s\n",
			constants.IconWarn, buildOS, buildArch, runtime.GOOS, runtime.GOARCH)
	}
	if IsDevBuild() {
		warnings += constants.IconWarn + "  Development build: this is an unreleased version without a version tag.\n"
	}
	return warnings
}
