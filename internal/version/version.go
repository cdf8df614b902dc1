// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.4.0"

// Milestones:
// 0.4.0 - Settings file with live reload, label modes, mini globe export
// 0.3.0 - Hover and click selection, side panel, interaction event log
// 0.2.0 - Drag-to-rotate and wheel zoom, pulsing bloom markers
// 0.1.0 - Initial release: half-block globe renderer, static bloom catalog
