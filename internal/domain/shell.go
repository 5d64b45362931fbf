package domain

// ShellName enumerates shells the diagnostics understand.
type ShellName string

const (
	ShellUnknown ShellName = "unknown"
	ShellSh      ShellName = "sh"
	ShellBash    ShellName = "bash"
	ShellZsh     ShellName = "zsh"
	ShellFish    ShellName = "fish"
)

// ShellProfile describes one startup script belonging to a shell.
type ShellProfile struct {
	Shell  ShellName
	Path   string
	Exists bool
	Bytes  int64
}
