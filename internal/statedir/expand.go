package statedir

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
)

// ErrNoHome is returned by Expand for a ~ path when the process has no
// home directory.
var ErrNoHome = errors.New("no home directory")

// percentVar matches Windows-style %NAME% references.
var percentVar = regexp.MustCompile(`%([A-Za-z_][A-Za-z0-9_()]*)%`)

// Expand resolves environment references and a leading ~ in a state
// directory path. $VAR and ${VAR} are expanded everywhere; %VAR% and ~\
// only on Windows. On ErrNoHome the env-expanded path is returned with its
// ~ intact.
func Expand(p string) (string, error) {
	if p == "" {
		return "", nil
	}

	p = os.ExpandEnv(p)
	if runtime.GOOS == "windows" {
		p = percentVar.ReplaceAllStringFunc(p, func(ref string) string {
			if v, ok := os.LookupEnv(ref[1 : len(ref)-1]); ok {
				return v
			}
			return ref
		})
	}

	rest, ok := underHome(p)
	if !ok {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return p, ErrNoHome
	}
	return filepath.Join(home, rest), nil
}

// underHome reports whether p is ~ or starts with ~/ and returns the rest.
func underHome(p string) (string, bool) {
	switch {
	case p == "~":
		return "", true
	case strings.HasPrefix(p, "~/"):
		return p[2:], true
	case runtime.GOOS == "windows" && strings.HasPrefix(p, `~\`):
		return p[2:], true
	}
	return "", false
}
