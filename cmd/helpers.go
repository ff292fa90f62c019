package cmd

import (
	"github.com/cellvision/trainctl/internal/audit"
	"github.com/cellvision/trainctl/internal/config"
	"github.com/cellvision/trainctl/internal/workspace"
)

// openWorkspace opens the workspace named by a command's --workspace flag.
func openWorkspace(root string) (*workspace.Workspace, error) {
	return workspace.Open(root)
}

// loadRun loads a run from the given workspace root.
// Returns a RunNotFound error when the run does not exist.
func loadRun(root, name string) (*workspace.Run, error) {
	ws, err := openWorkspace(root)
	if err != nil {
		return nil, err
	}
	return ws.LoadRun(name)
}

// auditLogger returns the audit logger for a workspace.
func auditLogger(ws *workspace.Workspace) *audit.Logger {
	return audit.NewLogger(ws.RunsDir())
}

// loadDocument loads a configuration document and surfaces its non-fatal
// validation warnings to the user.
func loadDocument(path string) (*config.Document, error) {
	doc, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	for _, w := range doc.Warnings {
		logWarning("  %s", w)
	}
	return doc, nil
}
