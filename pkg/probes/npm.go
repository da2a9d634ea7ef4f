package probes

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/iancoleman/orderedmap"

	"github.com/ajxudir/bagpack/pkg/cmdexec"
	"github.com/ajxudir/bagpack/pkg/inventory"
)

var (
	npmListArgs     = []string{"ls", "-g", "--depth=0", "--json"}
	npmOutdatedArgs = []string{"outdated", "-g", "--json"}
)

// npmOutdatedExitCodes are accepted besides 0: npm exits 1 when anything is outdated.
var npmOutdatedExitCodes = []int{1}

// NpmProbe collects globally installed npm packages.
type NpmProbe struct {
	runner
}

// NewNpmProbe creates an npm probe.
//
// Parameters:
//   - program: The npm executable; "" means "npm"
//   - env: Extra environment for both commands
//   - run: Command runner; nil uses cmdexec.Run
func NewNpmProbe(program string, env map[string]string, run cmdexec.RunFunc) *NpmProbe {
	return &NpmProbe{runner: newRunner(inventory.ManagerNpm, program, env, run)}
}

// Manager implements Probe.
func (p *NpmProbe) Manager() inventory.PackageManager {
	return inventory.ManagerNpm
}

// Collect implements Probe.
func (p *NpmProbe) Collect(ctx context.Context) ([]inventory.PackageRecord, error) {
	cmd := p.command(npmListArgs)
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

	cmd = p.command(npmOutdatedArgs, npmOutdatedExitCodes...)
	res, err = p.exec(ctx, cmd)
	if err != nil {
		return nil, err
	}

	latest, err := p.parseOutdated(res.Stdout)
	if err != nil {
		return nil, p.parseError(cmd, err)
	}

	return buildRecords(inventory.ManagerNpm, packages, latest), nil
}

// parseList parses `npm ls -g --depth=0 --json` output.
//
// Packages are returned in the order the "dependencies" object lists them.
// Entries without a string "version" are skipped. Blank output lists nothing.
func (p *NpmProbe) parseList(output string) ([]installed, error) {
	if strings.TrimSpace(output) == "" {
		return nil, nil
	}
	doc := orderedmap.New()
	if err := json.Unmarshal([]byte(output), doc); err != nil {
		return nil, fmt.Errorf("expected a JSON object: %w", err)
	}

	raw, ok := doc.Get("dependencies")
	if !ok || raw == nil {
		return nil, nil
	}
	deps, ok := asOrderedMap(raw)
	if !ok {
		return nil, fmt.Errorf("dependencies is %T, expected an object", raw)
	}

	var packages []installed
	for _, name := range deps.Keys() {
		value, _ := deps.Get(name)
		entry, ok := asOrderedMap(value)
		if !ok {
			p.skip(name, "dependency entry is not an object")
			continue
		}
		version, _ := entry.Get("version")
		v, ok := version.(string)
		if !ok || strings.TrimSpace(v) == "" {
			p.skip(name, "missing version")
			continue
		}
		packages = append(packages, installed{name: name, version: v})
	}
	return packages, nil
}

// asOrderedMap converts a decoded JSON object into an ordered map.
// orderedmap decodes nested objects as values, not pointers.
func asOrderedMap(v any) (*orderedmap.OrderedMap, bool) {
	switch m := v.(type) {
	case orderedmap.OrderedMap:
		return &m, true
	case *orderedmap.OrderedMap:
		return m, true
	default:
		return nil, false
	}
}

// npmOutdatedEntry is one value of the `npm outdated --json` object.
type npmOutdatedEntry struct {
	Latest *string `json:"latest"`
}

// parseOutdated parses `npm outdated -g --json` output into name→latest.
//
// Blank output means nothing is outdated. Entries without a "latest"
// field are skipped.
func (p *NpmProbe) parseOutdated(output string) (map[string]string, error) {
	latest := make(map[string]string)
	if strings.TrimSpace(output) == "" {
		return latest, nil
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal([]byte(output), &doc); err != nil {
		return nil, fmt.Errorf("expected a JSON object keyed by package name: %w", err)
	}

	for name, raw := range doc {
		var entry npmOutdatedEntry
		if err := json.Unmarshal(raw, &entry); err != nil {
			p.skip(name, err.Error())
			continue
		}
		if entry.Latest == nil || strings.TrimSpace(*entry.Latest) == "" {
			p.skip(name, "missing latest")
			continue
		}
		latest[name] = *entry.Latest
	}
	return latest, nil
}
