// Package tui provides terminal user interface components for trainctl.
//
// This package uses the Bubble Tea framework to create interactive terminal
// interfaces: the run picker and the configuration wizard.
//
// # Run Picker
//
// The picker displays training runs grouped by derived status and allows
// selection:
//
//	result, err := tui.RunPicker(runs)
//	switch result.Action {
//	case tui.ActionShow:
//	    // Display result.Run
//	case tui.ActionMonitor:
//	    // Watch result.Run
//	case tui.ActionDelete:
//	    // Remove result.Run
//	case tui.ActionQuit:
//	    // Exit
//	}
//
// # Picker Features
//
//   - Lists all runs grouped by status (running, stale, created, ...)
//   - Keyboard navigation (j/k or arrows), headers auto-skipped
//   - Quick actions: Enter (show), m (monitor), d (delete), q (quit)
//   - Color-coded status indicators
//
// # Configuration Wizard
//
// RunWizard walks through workspace path, model architecture, name and
// training options, and returns ScaffoldOptions for writing a starter
// configuration document.
//
// # Dependencies
//
// Uses the Charm libraries:
//   - github.com/charmbracelet/bubbletea - TUI framework
//   - github.com/charmbracelet/bubbles - UI components
//   - github.com/charmbracelet/lipgloss - Styling
package tui
