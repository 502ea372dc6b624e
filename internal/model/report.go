package model

// DeletionResult is the outcome of deleting one selected map.
type DeletionResult struct {
	Name    string
	Path    Path
	Missing bool  // the file was already gone, which counts as success
	Err     error // non-nil when the deletion failed
}

// DeletionReport collects the per-file outcomes of a deletion batch.
type DeletionReport struct {
	Results []DeletionResult
}

// Deleted returns the names that are no longer on disk.
func (r DeletionReport) Deleted() []string {
	names := make([]string, 0, len(r.Results))

	for _, res := range r.Results {
		if res.Err == nil {
			names = append(names, res.Name)
		}
	}

	return names
}

// Failed returns the results whose deletion did not succeed.
func (r DeletionReport) Failed() []DeletionResult {
	var failed []DeletionResult

	for _, res := range r.Results {
		if res.Err != nil {
			failed = append(failed, res)
		}
	}

	return failed
}
