// Package shellinfo detects the active shell and locates its startup
// scripts for the diagnostic probes.
package shellinfo

import (
	"os"
	"path/filepath"
	"strings"

	gops "github.com/shirou/gopsutil/v3/process"

	"github.com/mdcognizant/cursor-sub001/internal/domain"
	"github.com/mdcognizant/cursor-sub001/internal/pkg/filesystem"
)

// Detect resolves the active shell, preferring $SHELL and falling back to
// the parent process name.
func Detect() domain.ShellName {
	if env := os.Getenv("SHELL"); env != "" {
		if name := normalize(filepath.Base(env)); name != domain.ShellUnknown {
			return name
		}
	}
	if parent, err := gops.NewProcess(int32(os.Getppid())); err == nil {
		if name, err := parent.Name(); err == nil {
			if shell := normalize(name); shell != domain.ShellUnknown {
				return shell
			}
		}
	}
	return domain.ShellUnknown
}

// ShellPath returns the executable named by $SHELL, empty when unset.
func ShellPath() string {
	return os.Getenv("SHELL")
}

func normalize(name string) domain.ShellName {
	name = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(name)), ".exe")
	name = strings.TrimPrefix(name, "-") // login shells report as "-zsh"
	switch name {
	case "sh", "dash", "ash":
		return domain.ShellSh
	case "bash":
		return domain.ShellBash
	case "zsh":
		return domain.ShellZsh
	case "fish":
		return domain.ShellFish
	}
	return domain.ShellUnknown
}

// ProfilesFor lists the startup scripts a shell reads, with existence and
// size filled in for those present.
func ProfilesFor(shell domain.ShellName) []domain.ShellProfile {
	home := filesystem.UserHomeDir()
	var paths []string
	switch shell {
	case domain.ShellBash:
		paths = []string{".bashrc", ".bash_profile", ".profile"}
	case domain.ShellZsh:
		paths = []string{".zshrc", ".zprofile", ".zshenv"}
	case domain.ShellFish:
		paths = []string{filepath.Join(".config", "fish", "config.fish")}
	default:
		paths = []string{".profile"}
	}

	profiles := make([]domain.ShellProfile, 0, len(paths))
	for _, rel := range paths {
		full := filepath.Join(home, rel)
		profile := domain.ShellProfile{Shell: shell, Path: full}
		if info, err := os.Stat(full); err == nil && !info.IsDir() {
			profile.Exists = true
			profile.Bytes = info.Size()
		}
		profiles = append(profiles, profile)
	}
	return profiles
}
