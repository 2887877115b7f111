// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// DefinedFieldsCount represents the total cardinality of the application configuration schema.
const DefinedFieldsCount = 16

// Playback Engine - these keys configure how the external engine process is launched and polled.
const (
	PlayerBinary         = "player.binary"
	PlayerAutoStart      = "player.autostart"
	PlayerPollIntervalMs = "player.poll_interval_ms"
	PlayerStartTimeoutMs = "player.start_timeout_ms"
	PlayerWindow         = "player.window"
	PlayerExtraArgs      = "player.extra_args"
	PlayerDefaultSource  = "player.default_source"
)

// Host Lifecycle - these keys decide which host transitions are forwarded to the active session.
const (
	LifecyclePauseOnBlur    = "lifecycle.pause_on_blur"
	LifecyclePauseOnSuspend = "lifecycle.pause_on_suspend"
)

// History Tracking - these keys configure the persistence of playback positions.
const (
	HistorySave = "history.save"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// CLI Execution Environment - these flags and settings govern the non-TUI application behavior.
const (
	CliColored = "cli.colored"
)

// Terminal User Interface (TUI) - these keys define the interactive screen.
const (
	TUIShowHelp = "tui.show_help"
)
