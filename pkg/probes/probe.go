// Package probes collects installed packages from individual package managers.
//
// Every probe follows the same two-step shape: list what is installed (a
// failure here fails the probe), then, only when something is installed,
// ask which packages are outdated. Blank outdated output means nothing is
// outdated. Individual malformed entries are skipped and logged; only output
// whose top-level structure is wrong fails the probe with a ParseError.
package probes

import (
	"context"
	"time"

	"github.com/ajxudir/bagpack/pkg/cmdexec"
	"github.com/ajxudir/bagpack/pkg/config"
	"github.com/ajxudir/bagpack/pkg/errors"
	"github.com/ajxudir/bagpack/pkg/inventory"
	"github.com/ajxudir/bagpack/pkg/verbose"
)

// Probe produces the package records of one package manager.
type Probe interface {
	// Manager returns the manager every produced record is tagged with.
	Manager() inventory.PackageManager

	// Collect lists installed packages and their latest versions.
	Collect(ctx context.Context) ([]inventory.PackageRecord, error)
}

// Factory builds a probe from its manager settings.
type Factory func(mc config.ManagerCfg, run cmdexec.RunFunc) Probe

// Entry registers a probe factory for one manager.
type Entry struct {
	Manager inventory.PackageManager
	Factory Factory
}

// Registry lists every supported manager in collection order.
//
// Supporting a new manager means adding a Probe implementation and an entry
// here; the collector iterates whatever this list produces.
var Registry = []Entry{
	{
		Manager: inventory.ManagerBrew,
		Factory: func(mc config.ManagerCfg, run cmdexec.RunFunc) Probe {
			return NewBrewProbe(mc.Command, mc.Env, run)
		},
	},
	{
		Manager: inventory.ManagerNpm,
		Factory: func(mc config.ManagerCfg, run cmdexec.RunFunc) Probe {
			return NewNpmProbe(mc.Command, mc.Env, run)
		},
	},
	{
		Manager: inventory.ManagerPip,
		Factory: func(mc config.ManagerCfg, run cmdexec.RunFunc) Probe {
			return NewPipProbe(mc.Command, mc.Env, run)
		},
	},
}

// FromConfig builds the probes for every enabled manager, in registry order.
//
// Managers with a timeout_seconds setting are wrapped with WithTimeout.
//
// Parameters:
//   - cfg: Loaded configuration
//   - run: Command runner; nil uses cmdexec.Run
//
// Returns:
//   - []Probe: Enabled probes in collection order
func FromConfig(cfg *config.Config, run cmdexec.RunFunc) []Probe {
	var probes []Probe
	for _, entry := range Registry {
		mc, ok := cfg.Manager(entry.Manager)
		if !ok || !mc.IsEnabled() {
			verbose.Printf("Manager %s: disabled", entry.Manager)
			continue
		}
		probe := entry.Factory(mc, run)
		if timeout := mc.Timeout(); timeout > 0 {
			probe = WithTimeout(probe, timeout)
		}
		probes = append(probes, probe)
	}
	return probes
}

// WithTimeout bounds every Collect call of p by d.
//
// When the deadline passes the running command's process group is killed
// and Collect fails with an error wrapping context.DeadlineExceeded.
func WithTimeout(p Probe, d time.Duration) Probe {
	return &timeoutProbe{Probe: p, timeout: d}
}

type timeoutProbe struct {
	Probe
	timeout time.Duration
}

func (t *timeoutProbe) Collect(ctx context.Context) ([]inventory.PackageRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.Probe.Collect(ctx)
}

// runner is the command plumbing shared by all probes.
type runner struct {
	manager inventory.PackageManager
	program string
	env     map[string]string
	run     cmdexec.RunFunc
}

func newRunner(manager inventory.PackageManager, program string, env map[string]string, run cmdexec.RunFunc) runner {
	if program == "" {
		program = string(manager)
	}
	if run == nil {
		run = cmdexec.Run
	}
	return runner{manager: manager, program: program, env: env, run: run}
}

// command builds the invocation of the manager's program with args.
func (r runner) command(args []string, allowed ...int) cmdexec.Command {
	return cmdexec.Command{
		Program:          r.program,
		Args:             args,
		Env:              r.env,
		AllowedExitCodes: allowed,
	}
}

// exec runs cmd and wraps any failure in a CommandError.
func (r runner) exec(ctx context.Context, cmd cmdexec.Command) (*cmdexec.Result, error) {
	res, err := r.run(ctx, cmd)
	if err != nil {
		return nil, errors.NewCommandError(string(r.manager), err)
	}
	return res, nil
}

func (r runner) parseError(cmd cmdexec.Command, err error) error {
	return errors.NewParseError(string(r.manager), cmd.Label(), err)
}

func (r runner) skip(entry, reason string) {
	verbose.EntrySkipped(string(r.manager), entry, reason)
}

// installed is one entry of a manager's installed list.
type installed struct {
	name    string
	version string
}

// buildRecords pairs every installed package with its latest version.
//
// Installed order is preserved. A package missing from latest is current.
func buildRecords(manager inventory.PackageManager, packages []installed, latest map[string]string) []inventory.PackageRecord {
	records := make([]inventory.PackageRecord, 0, len(packages))
	for _, p := range packages {
		records = append(records, inventory.NewRecord(manager, p.name, p.version, latest[p.name]))
	}
	return records
}
