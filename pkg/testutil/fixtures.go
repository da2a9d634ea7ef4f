package testutil

import (
	"github.com/ajxudir/bagpack/pkg/inventory"
)

// Scripted command output for a machine with a few packages per manager.
// wget and typescript are outdated; jq and requests are current.
const (
	BrewListOutput     = "wget 1.24.5\njq 1.7.1\n"
	BrewOutdatedOutput = `{"formulae":[{"name":"wget","installed_versions":["1.24.5"],"current_version":"1.24.6","latest_version":"1.24.6"}],"casks":[]}`
	NpmListOutput      = `{"dependencies":{"typescript":{"version":"5.5.2"}}}`
	NpmOutdatedOutput  = `{"typescript":{"current":"5.5.2","wanted":"5.6.3","latest":"5.6.3"}}`
	PipListOutput      = `[{"name":"requests","version":"2.32.3"}]`
	PipOutdatedOutput  = `[]`
)

// ScriptedManagers returns a FakeRunner answering every command the default
// configuration runs with healthy output. npm outdated exits 1 as the real
// command does when something is outdated.
//
// Example:
//
//	runner := testutil.ScriptedManagers().OnError("npm ls -g --depth=0 --json", errors.New("boom"))
func ScriptedManagers() *FakeRunner {
	return NewFakeRunner().
		OnStdout("brew list --versions", BrewListOutput).
		OnStdout("brew outdated --json=v2", BrewOutdatedOutput).
		OnStdout("npm ls -g --depth=0 --json", NpmListOutput).
		On("npm outdated -g --json", FakeResponse{ExitCode: 1, Stdout: NpmOutdatedOutput}).
		OnStdout("pip3 list --format=json", PipListOutput).
		OnStdout("pip3 list --outdated --format=json", PipOutdatedOutput)
}

// SampleSummary returns the summary ScriptedManagers produces, stamped with
// generatedAt, or unstamped when generatedAt is empty.
func SampleSummary(generatedAt string, warnings ...inventory.CollectionWarning) inventory.CollectionSummary {
	snapshot := inventory.NewSnapshot()
	if generatedAt != "" {
		snapshot.SetGeneratedAt(generatedAt)
	}
	snapshot.Push(
		inventory.NewRecord(inventory.ManagerBrew, "wget", "1.24.5", "1.24.6"),
		inventory.NewRecord(inventory.ManagerBrew, "jq", "1.7.1", ""),
		inventory.NewRecord(inventory.ManagerNpm, "typescript", "5.5.2", "5.6.3"),
		inventory.NewRecord(inventory.ManagerPip, "requests", "2.32.3", ""),
	)
	return inventory.NewSummary(snapshot, warnings)
}
