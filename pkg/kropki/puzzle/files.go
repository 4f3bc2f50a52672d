package puzzle

import (
	"path/filepath"
	"regexp"
	"strings"
)

// The batch pipeline names puzzles InputN.txt and their solutions
// OutputN.txt, N carried over verbatim.
var (
	inputName  = regexp.MustCompile(`^Input(.*)\.txt$`)
	outputName = regexp.MustCompile(`^Output(.*)\.txt$`)
)

// IsInputName reports whether name follows the InputN.txt convention.
func IsInputName(name string) bool {
	return inputName.MatchString(filepath.Base(name))
}

// SolutionFileName maps InputN.txt to OutputN.txt. Names outside the
// convention keep their stem and get a _solution.txt suffix.
func SolutionFileName(name string) string {
	base := filepath.Base(name)
	if m := inputName.FindStringSubmatch(base); m != nil {
		return "Output" + m[1] + ".txt"
	}
	return strings.TrimSuffix(base, filepath.Ext(base)) + "_solution.txt"
}

// PuzzleFileName maps OutputN.txt back to InputN.txt, reporting whether
// the name followed the convention.
func PuzzleFileName(name string) (string, bool) {
	m := outputName.FindStringSubmatch(filepath.Base(name))
	if m == nil {
		return "", false
	}
	return "Input" + m[1] + ".txt", true
}
