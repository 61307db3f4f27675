package content

import (
	"fmt"
	"os"

	"github.com/abhisek/certquiz/internal/files"
)

// warnf reports non-fatal content problems. Tests swap it out.
var warnf = func(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "warning: "+format+"\n", args...)
}

// Load reads the content tree from path. A missing or unparseable file
// yields an empty tree with a warning rather than an error, so a first run
// against a fresh content file still works.
func Load(path string) *Tree {
	var tree Tree
	if err := files.LoadJSON(path, &tree); err != nil {
		switch {
		case files.IsNotExist(err):
			warnf("content file %s not found, starting empty", path)
		default:
			warnf("content file %s unreadable (%v), starting empty", path, err)
		}
		return NewTree()
	}
	if tree.exams == nil {
		tree.exams = make(map[string]*Exam)
	}
	return &tree
}

// Save writes the tree atomically.
func Save(path string, t *Tree) error {
	if err := files.SaveJSON(path, t); err != nil {
		return fmt.Errorf("save content: %w", err)
	}
	return nil
}
