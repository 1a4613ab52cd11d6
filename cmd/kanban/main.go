package main

import (
	"os"
	"strings"

	"kanban-cli/internal/cli"
)

// lookupCommand returns the `<noun> show` command for a pasted entity id.
func lookupCommand(s string) (string, bool) {
	s = strings.TrimSpace(s)
	for prefix, noun := range map[string]string{"card-": "cards", "list-": "lists"} {
		if strings.HasPrefix(s, prefix) && len(s) > len(prefix) {
			return noun, true
		}
	}
	return "", false
}

func rewriteDirectLookupArgs(argv []string) []string {
	// Convenience: `kanban <card-id>` works like `kanban cards show <card-id>` (same for lists).
	//
	// Cobra treats the first non-flag token as a subcommand, so we rewrite argv before parsing.
	// Persistent flags may come first (`kanban --backend file card-...`), so we look for the
	// first positional token rather than argv[1].
	if len(argv) < 2 {
		return argv
	}

	valueFlags := map[string]bool{
		"--config-dir": true,
		"--backend":    true,
		"--path":       true,
		"--format":     true,
	}
	boolFlags := map[string]bool{
		"--pretty":  true,
		"--verbose": true,
		"-v":        true,
	}

	insert := func(at int, noun string) []string {
		out := make([]string, 0, len(argv)+2)
		out = append(out, argv[:at]...)
		out = append(out, noun, "show")
		return append(out, argv[at:]...)
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			if i+1 < len(argv) {
				if noun, ok := lookupCommand(argv[i+1]); ok {
					return insert(i+1, noun)
				}
			}
			return argv
		}

		if strings.HasPrefix(a, "-") {
			if strings.Contains(a, "=") || boolFlags[a] {
				continue
			}
			if valueFlags[a] {
				i++
			}
			continue
		}

		if noun, ok := lookupCommand(a); ok {
			return insert(i, noun)
		}
		return argv
	}

	return argv
}

func main() {
	os.Args = rewriteDirectLookupArgs(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
