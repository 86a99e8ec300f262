package layer

// Resolve collapses candidate regions into the final ordered partition.
//
// Two per-offset arrays record the winning layer and its priority. A
// candidate overwrites an offset only when its priority is strictly
// greater than the recorded one, so equal-priority overlaps keep the
// first-emitted candidate. A final left-to-right pass merges maximal runs
// of identical layer into single regions; offsets no candidate claimed are
// gaps and produce no region.
//
// Runs in O(total candidate span length) time and O(docLen) space.
func Resolve(candidates []Candidate, docLen int) []Region {
	if docLen <= 0 {
		return nil
	}

	layers := make([]Layer, docLen)
	priorities := make([]int, docLen)

	for _, cand := range candidates {
		start, end := cand.Start, cand.End
		if start < 0 {
			start = 0
		}

		if end > docLen {
			end = docLen
		}

		if start >= end {
			continue
		}

		for pos := start; pos < end; pos++ {
			if cand.Priority > priorities[pos] {
				priorities[pos] = cand.Priority
				layers[pos] = cand.Layer
			}
		}
	}

	return mergeRuns(layers)
}

// mergeRuns converts the per-offset layer array into maximal-run regions,
// skipping unclaimed (None) positions.
func mergeRuns(layers []Layer) []Region {
	var regions []Region

	runStart := -1
	runLayer := None

	for pos, l := range layers {
		if l == runLayer {
			continue
		}

		if runLayer != None {
			regions = append(regions, Region{Start: runStart, End: pos, Layer: runLayer})
		}

		runStart = pos
		runLayer = l
	}

	if runLayer != None {
		regions = append(regions, Region{Start: runStart, End: len(layers), Layer: runLayer})
	}

	return regions
}
