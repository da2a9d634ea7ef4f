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
	pipListArgs     = []string{"list", "--format=json"}
	pipOutdatedArgs = []string{"list", "--outdated", "--format=json"}
)

// PipProbe collects Python packages visible to pip.
type PipProbe struct {
	runner
}

// NewPipProbe creates a pip probe.
//
// Parameters:
//   - program: The pip executable, e.g. "pip3"; "" means "pip"
//   - env: Extra environment for both commands
//   - run: Command runner; nil uses cmdexec.Run
func NewPipProbe(program string, env map[string]string, run cmdexec.RunFunc) *PipProbe {
	return &PipProbe{runner: newRunner(inventory.ManagerPip, program, env, run)}
}

// Manager implements Probe.
func (p *PipProbe) Manager() inventory.PackageManager {
	return inventory.ManagerPip
}

// Collect implements Probe.
func (p *PipProbe) Collect(ctx context.Context) ([]inventory.PackageRecord, error) {
	cmd := p.command(pipListArgs)
	res, err := p.exec(ctx, cmd)
	if err != nil {
		return nil, err
	}

	packages, err := p.parseList(res.Stdout)
	if err != nil {
		return nil, p.parseError(cmd, err)
	}
	if len(packages) == 0 {
		return []inventory.PackageRecord{}, nil
	}

	cmd = p.command(pipOutdatedArgs)
	res, err = p.exec(ctx, cmd)
	if err != nil {
		return nil, err
	}

	latest, err := p.parseOutdated(res.Stdout)
	if err != nil {
		return nil, p.parseError(cmd, err)
	}

	return buildRecords(inventory.ManagerPip, packages, latest), nil
}

type pipEntry struct {
	Name          *string `json:"name"`
	Version       *string `json:"version"`
	LatestVersion *string `json:"latest_version"`
}

// decodeArray decodes a JSON array into its raw elements.
// Blank output is an empty array.
func decodeArray(output string) ([]json.RawMessage, error) {
	if strings.TrimSpace(output) == "" {
		return nil, nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal([]byte(output), &items); err != nil {
		return nil, fmt.Errorf("expected a JSON array: %w", err)
	}
	return items, nil
}

// decodeEntries decodes each element, skipping those that are not objects
// or lack a name or the field picked by value.
func (p *PipProbe) decodeEntries(items []json.RawMessage, field string, value func(pipEntry) *string) []installed {
	var out []installed
	for i, raw := range items {
		var entry pipEntry
		if err := json.Unmarshal(raw, &entry); err != nil {
			p.skip(fmt.Sprintf("[%d]", i), err.Error())
			continue
		}
		if entry.Name == nil || strings.TrimSpace(*entry.Name) == "" {
			p.skip(fmt.Sprintf("[%d]", i), "missing name")
			continue
		}
		v := value(entry)
		if v == nil || strings.TrimSpace(*v) == "" {
			p.skip(*entry.Name, "missing "+field)
			continue
		}
		out = append(out, installed{name: *entry.Name, version: *v})
	}
	return out
}

// parseList parses `pip list --format=json` output, an array of {name, version}.
// Unlike the outdated list, blank output is not a valid installed list.
func (p *PipProbe) parseList(output string) ([]installed, error) {
	if strings.TrimSpace(output) == "" {
		return nil, fmt.Errorf("expected a JSON array, got empty output")
	}
	items, err := decodeArray(output)
	if err != nil {
		return nil, err
	}
	return p.decodeEntries(items, "version", func(e pipEntry) *string { return e.Version }), nil
}

// parseOutdated parses `pip list --outdated --format=json` output into
// name→latest_version. Blank output means nothing is outdated.
func (p *PipProbe) parseOutdated(output string) (map[string]string, error) {
	items, err := decodeArray(output)
	if err != nil {
		return nil, err
	}
	latest := make(map[string]string, len(items))
	for _, e := range p.decodeEntries(items, "latest_version", func(e pipEntry) *string { return e.LatestVersion }) {
		latest[e.name] = e.version
	}
	return latest, nil
}
