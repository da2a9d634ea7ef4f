package probes

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ajxudir/bagpack/pkg/cmdexec"
	"github.com/ajxudir/bagpack/pkg/inventory"
)

var (
	brewListArgs     = []string{"list", "--versions"}
	brewOutdatedArgs = []string{"outdated", "--json=v2"}
)

// BrewProbe collects Homebrew formulae.
type BrewProbe struct {
	runner
}

// NewBrewProbe creates a Homebrew probe.
//
// Parameters:
//   - program: The brew executable; "" means "brew"
//   - env: Extra environment for both commands
//   - run: Command runner; nil uses cmdexec.Run
func NewBrewProbe(program string, env map[string]string, run cmdexec.RunFunc) *BrewProbe {
	return &BrewProbe{runner: newRunner(inventory.ManagerBrew, program, env, run)}
}

// Manager implements Probe.
func (p *BrewProbe) Manager() inventory.PackageManager {
	return inventory.ManagerBrew
}

// Collect implements Probe.
func (p *BrewProbe) Collect(ctx context.Context) ([]inventory.PackageRecord, error) {
	res, err := p.exec(ctx, p.command(brewListArgs))
	if err != nil {
		return nil, err
	}

	packages := p.parseList(res.Stdout)
	if len(packages) == 0 {
		return []inventory.PackageRecord{}, nil
	}

	cmd := p.command(brewOutdatedArgs)
	res, err = p.exec(ctx, cmd)
	if err != nil {
		return nil, err
	}

	latest, err := p.parseOutdated(res.Stdout)
	if err != nil {
		return nil, p.parseError(cmd, err)
	}

	return buildRecords(inventory.ManagerBrew, packages, latest), nil
}

// parseList parses `brew list --versions` output.
//
// Each line is "<name> <version> [<version>...]"; the last token is the
// version in use. Blank lines and lines without a version are skipped.
func (p *BrewProbe) parseList(output string) []installed {
	var packages []installed
	for _, line := range strings.Split(output, "\n") {
		fields := strings.Fields(line)
		switch len(fields) {
		case 0:
			continue
		case 1:
			p.skip(fields[0], "no version on list line")
			continue
		}
		packages = append(packages, installed{name: fields[0], version: fields[len(fields)-1]})
	}
	return packages
}

// brewFormula is one entry of the "formulae" list.
type brewFormula struct {
	Name           string  `json:"name"`
	CurrentVersion *string `json:"current_version"`
	LatestVersion  *string `json:"latest_version"`
}

// latest returns latest_version, or current_version when latest_version is
// missing or blank. Blank values are never used.
func (f brewFormula) latest() string {
	for _, candidate := range []*string{f.LatestVersion, f.CurrentVersion} {
		if candidate == nil {
			continue
		}
		if v := strings.TrimSpace(*candidate); v != "" {
			return v
		}
	}
	return ""
}

// parseOutdated parses `brew outdated --json=v2` output into name→latest.
//
// Blank output means nothing is outdated. The document must be an object;
// a missing "formulae" key (e.g. only casks are outdated) is treated as an
// empty list.
func (p *BrewProbe) parseOutdated(output string) (map[string]string, error) {
	latest := make(map[string]string)
	if strings.TrimSpace(output) == "" {
		return latest, nil
	}

	var doc struct {
		Formulae []json.RawMessage `json:"formulae"`
	}
	if err := json.Unmarshal([]byte(output), &doc); err != nil {
		return nil, fmt.Errorf("expected an object with a formulae list: %w", err)
	}

	for i, raw := range doc.Formulae {
		var formula brewFormula
		if err := json.Unmarshal(raw, &formula); err != nil {
			p.skip(fmt.Sprintf("formulae[%d]", i), err.Error())
			continue
		}
		if formula.Name == "" {
			p.skip(fmt.Sprintf("formulae[%d]", i), "missing name")
			continue
		}
		version := formula.latest()
		if version == "" {
			p.skip(formula.Name, "no latest or current version")
			continue
		}
		latest[formula.Name] = version
	}
	return latest, nil
}
