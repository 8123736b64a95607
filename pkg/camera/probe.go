package camera

// ProbeResult reports what happened when one device index was tried.
type ProbeResult struct {
	Index    int    `json:"index"`
	Opened   bool   `json:"opened"`
	Captured bool   `json:"captured"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
	Err      string `json:"error,omitempty"`
}

// OK reports whether the index both opened and produced a frame.
func (r ProbeResult) OK() bool {
	return r.Opened && r.Captured
}

// Probe tries every index, reading one frame from each, and closes every
// device it opened. Unlike Source it does not stop at the first success.
func Probe(open Opener, indices []int) []ProbeResult {
	results := make([]ProbeResult, 0, len(indices))

	for _, idx := range indices {
		res := ProbeResult{Index: idx}

		dev, err := open(idx)
		if err != nil {
			res.Err = err.Error()
			results = append(results, res)
			continue
		}
		res.Opened = true

		frame, err := dev.Read()
		switch {
		case err != nil:
			res.Err = err.Error()
		case frame == nil:
			res.Err = "empty frame"
		default:
			res.Captured = true
			b := frame.Bounds()
			res.Width, res.Height = b.Dx(), b.Dy()
		}

		if cerr := dev.Close(); cerr != nil && res.Err == "" {
			res.Err = cerr.Error()
		}
		results = append(results, res)
	}

	return results
}

// FirstWorking returns the first result that opened and captured.
func FirstWorking(results []ProbeResult) (ProbeResult, bool) {
	for _, r := range results {
		if r.OK() {
			return r, true
		}
	}
	return ProbeResult{}, false
}
