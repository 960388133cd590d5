package models

// MaxSamples is the number of matching lines kept for inspection.
const MaxSamples = 10

// Sample is one captured matching line.
type Sample struct {
	File   string `json:"file" yaml:"file"`     // Absolute path of the file
	LineNo int    `json:"lineNo" yaml:"lineNo"` // 1-based line number within File
	Text   string `json:"text" yaml:"text"`     // Line content without its terminator
}

// FileError records a file that could not be scanned completely.
type FileError struct {
	File    string `json:"file" yaml:"file"`       // Absolute path (or the raw path if it could not be resolved)
	Message string `json:"message" yaml:"message"` // Human-readable cause
}

// ScanResult is the accumulated outcome of one scan pass.
// Field order is the serialized key order.
type ScanResult struct {
	TotalLines   int         `json:"totalLines" yaml:"totalLines"`
	MatchedCount int         `json:"matchedCount" yaml:"matchedCount"`
	Samples      []Sample    `json:"samples" yaml:"samples"`
	Errors       []FileError `json:"errors" yaml:"errors"`
}

// NewScanResult returns an empty result whose lists serialize as [] rather than null.
func NewScanResult() *ScanResult {
	return &ScanResult{
		Samples: make([]Sample, 0, MaxSamples),
		Errors:  make([]FileError, 0),
	}
}

// AddLine counts one line read from file. Matching lines are counted and
// sampled until MaxSamples samples have been captured.
func (r *ScanResult) AddLine(file string, lineNo int, text string, matched bool) {
	r.TotalLines++
	if !matched {
		return
	}
	r.MatchedCount++
	if len(r.Samples) < MaxSamples {
		r.Samples = append(r.Samples, Sample{File: file, LineNo: lineNo, Text: text})
	}
}

// AddError records a per-file failure.
func (r *ScanResult) AddError(file, message string) {
	r.Errors = append(r.Errors, FileError{File: file, Message: message})
}

// HasSamples returns true if at least one matching line was captured.
func (r *ScanResult) HasSamples() bool {
	return len(r.Samples) > 0
}

// HasErrors returns true if any file failed.
func (r *ScanResult) HasErrors() bool {
	return len(r.Errors) > 0
}
