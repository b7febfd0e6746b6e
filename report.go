package inputschema

// Report accumulates instance validation issues for one Validate call. The
// zero value is ready to use; an empty report is the sole success signal.
type Report struct {
	issues Issues
}

// OK reports whether the instance passed every applicable check.
func (r *Report) OK() bool { return len(r.issues) == 0 }

// Len returns the number of accumulated issues.
func (r *Report) Len() int { return len(r.issues) }

// Issues returns the accumulated issues in evaluation order. The returned
// slice is owned by the report; callers must not mutate it.
func (r *Report) Issues() Issues { return r.issues }

// At returns the issues recorded for an exact document path.
func (r *Report) At(path string) Issues {
	var out Issues
	for _, it := range r.issues {
		if it.Path == path {
			out = AppendIssues(out, it)
		}
	}
	return out
}

// Err returns the issues as an error, or nil when the report is empty. This
// bridges report-style callers to error-style callers.
func (r *Report) Err() error {
	if len(r.issues) == 0 {
		return nil
	}
	return r.issues
}

func (r *Report) add(more ...Issue) {
	if len(more) == 0 {
		return
	}
	r.issues = AppendIssues(r.issues, more...)
}
