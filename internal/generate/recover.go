package generate

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/abhisek/certquiz/internal/content"
	"github.com/abhisek/certquiz/internal/files"
)

// warnf reports non-fatal generation problems. Tests swap it out.
var warnf = func(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "warning: "+format+"\n", args...)
}

// RecoverPending merges any interim fragments a crashed run left behind
// into tree and deletes them. It runs before a new generation pass so
// paid-for results are never regenerated. Returns the number of fragments
// recovered; unreadable fragments are skipped with a warning and left on
// disk for inspection.
func RecoverPending(dir files.Dir, tree *content.Tree) (int, error) {
	interimDir, err := dir.InterimDir()
	if err != nil {
		return 0, err
	}
	matches, err := filepath.Glob(filepath.Join(interimDir, "*.json"))
	if err != nil {
		return 0, fmt.Errorf("scan interim dir: %w", err)
	}
	if len(matches) == 0 {
		return 0, nil
	}

	recovered := 0
	for _, path := range matches {
		var fragment content.Tree
		if err := files.LoadJSON(path, &fragment); err != nil {
			warnf("skipping unreadable interim fragment %s: %v", path, err)
			continue
		}
		content.Merge(tree, &fragment)
		if err := os.Remove(path); err != nil {
			warnf("could not remove interim file %s: %v", path, err)
		}
		recovered++
	}
	return recovered, nil
}
