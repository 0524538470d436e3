package diag

import (
	"context"
	"fmt"
	"io"
	"strings"

	"grimm.is/netctl/internal/logging"
)

// Status is the outcome of a Check.
type Status int

const (
	StatusPass Status = iota
	StatusWarn
	StatusFail
)

func (s Status) String() string {
	switch s {
	case StatusPass:
		return "PASS"
	case StatusWarn:
		return "WARN"
	}
	return "FAIL"
}

// Result is what a Check reports.
type Result struct {
	Name    string
	Status  Status
	Summary string
	Details []string
}

// Check is one named probe.
type Check struct {
	Name string
	Run  func(ctx context.Context) Result
}

// Pass, Warn and Fail build results.
func Pass(summary string, details ...string) Result {
	return Result{Status: StatusPass, Summary: summary, Details: details}
}

func Warn(summary string, details ...string) Result {
	return Result{Status: StatusWarn, Summary: summary, Details: details}
}

func Fail(summary string, details ...string) Result {
	return Result{Status: StatusFail, Summary: summary, Details: details}
}

// Report is the ordered outcome of RunChecks.
type Report struct {
	Results []Result
}

// Counts returns how many results have each status.
func (r *Report) Counts() (pass, warn, fail int) {
	for _, res := range r.Results {
		switch res.Status {
		case StatusPass:
			pass++
		case StatusWarn:
			warn++
		default:
			fail++
		}
	}
	return
}

// OK reports whether nothing failed.
func (r *Report) OK() bool {
	_, _, fail := r.Counts()
	return fail == 0
}

// RunChecks runs checks in order and stops early if ctx is cancelled.
func RunChecks(ctx context.Context, checks []Check, logger *logging.Logger) *Report {
	if logger == nil {
		logger = logging.Default()
	}
	logger = logger.WithComponent("diag")

	rep := &Report{}
	for _, c := range checks {
		if err := ctx.Err(); err != nil {
			rep.Results = append(rep.Results, Result{Name: c.Name, Status: StatusFail, Summary: err.Error()})
			break
		}
		res := c.Run(ctx)
		res.Name = c.Name
		logger.Debug("check finished", "check", c.Name, "status", res.Status.String(), "summary", res.Summary)
		rep.Results = append(rep.Results, res)
	}
	return rep
}

// Write prints the report. Details are shown only when verbose, except for
// results that did not pass.
func (r *Report) Write(w io.Writer, verbose bool) {
	for _, res := range r.Results {
		fmt.Fprintf(w, "[%s] %s: %s\n", res.Status, res.Name, res.Summary)
		if verbose || res.Status != StatusPass {
			for _, d := range res.Details {
				fmt.Fprintf(w, "       %s\n", d)
			}
		}
	}
	pass, warn, fail := r.Counts()
	fmt.Fprintln(w, strings.Repeat("=", 60))
	fmt.Fprintf(w, "%d passed, %d warnings, %d failed\n", pass, warn, fail)
}
