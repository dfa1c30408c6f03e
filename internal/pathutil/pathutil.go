// ABOUTME: Path helpers shared by the editor and expansion resolvers: NFC normalization, prefix stripping
// ABOUTME: Normalizes both sides so NFD paths (macOS) match their NFC workspace roots

package pathutil

import (
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizePath cleans p and converts it to Unicode NFC.
func NormalizePath(p string) string {
	if p == "" {
		return ""
	}
	return norm.NFC.String(filepath.Clean(p))
}

// StripPrefix returns p relative to base when p lies strictly inside base.
// Otherwise it returns p unchanged and false.
func StripPrefix(p, base string) (string, bool) {
	if p == "" || base == "" {
		return p, false
	}
	np, nb := NormalizePath(p), NormalizePath(base)
	rel, err := filepath.Rel(nb, np)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return p, false
	}
	if !filepath.IsAbs(np) || !filepath.IsAbs(nb) {
		return p, false
	}
	return rel, true
}

// Absolute resolves p against dir when p is relative.
func Absolute(p, dir string) string {
	if p == "" {
		return ""
	}
	if strings.HasPrefix(p, "~"+string(filepath.Separator)) || p == "~" {
		if home := homeDir(); home != "" {
			p = filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	if !filepath.IsAbs(p) {
		p = filepath.Join(dir, p)
	}
	return NormalizePath(p)
}

// homeDir returns the user home directory, or "" when it cannot be determined.
var homeDir = func() string {
	h, _ := os.UserHomeDir()
	return h
}
