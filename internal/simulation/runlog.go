package simulation

import (
	"fmt"
	"os"

	"github.com/abhisek/certquiz/internal/files"
)

// warnf reports non-fatal run-log problems. Tests swap it out.
var warnf = func(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "warning: "+format+"\n", args...)
}

// LoadRuns reads the exam's run log. A missing file is an empty history; a
// corrupt file is treated the same with a warning, so one bad write never
// blocks future simulations.
func LoadRuns(dir files.Dir, examCode string) []Run {
	var runs []Run
	path := dir.ResultsFile(examCode)
	if err := files.LoadJSON(path, &runs); err != nil {
		if !files.IsNotExist(err) {
			warnf("run log %s unreadable (%v), starting fresh", path, err)
		}
		return nil
	}
	return runs
}

// LatestRun returns the most recent run for the exam, or an error telling
// the user what to do first.
func LatestRun(dir files.Dir, examCode string) (Run, error) {
	runs := LoadRuns(dir, examCode)
	if len(runs) == 0 {
		return Run{}, fmt.Errorf("no simulation results for %s yet; run `certquiz simulate --exam %s` first", examCode, examCode)
	}
	return runs[len(runs)-1], nil
}

// AppendRun adds a run to the exam's log, preserving prior entries.
func AppendRun(dir files.Dir, run Run) error {
	runs := LoadRuns(dir, run.ExamCode)
	runs = append(runs, run)
	if err := files.SaveJSON(dir.ResultsFile(run.ExamCode), runs); err != nil {
		return fmt.Errorf("append run: %w", err)
	}
	return nil
}
