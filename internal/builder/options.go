package builder

// Global hard caps, independent of anything BuildOptions requests.
const (
	StringCaptureHardCap = 2000
	StringLengthHardCap  = 32768
)

// BuildOptions configures one Build call. Every field is independent; the
// zero value disables the corresponding capture except where noted.
type BuildOptions struct {
	// MaxStringsToCapture upper-bounds stack-root string aggregates. 0 disables.
	MaxStringsToCapture int
	// MaxStringLength is the per-string character cap before head+tail
	// truncation; hard-capped internally to StringLengthHardCap.
	MaxStringLength int
	// HeapStringLimit upper-bounds *additional* heap-object string captures. 0 disables.
	HeapStringLimit int
	// HeapHistogramCount is the top-N heap types to surface. 0 disables the heap walk.
	HeapHistogramCount int
	// MaxStackFrames is the per-thread frame cap.
	MaxStackFrames int
	// TopStackThreads is the per-run display cap for threads carrying
	// stacks. Actual capture uses max(TopStackThreads, 10).
	TopStackThreads int
}

// effectiveStringCaptureLimit returns min(opts, StringCaptureHardCap).
func (o BuildOptions) effectiveStringCaptureLimit() int {
	return minInt(o.MaxStringsToCapture, StringCaptureHardCap)
}

// effectiveMaxStringLength returns min(opts, StringLengthHardCap).
func (o BuildOptions) effectiveMaxStringLength() int {
	return minInt(o.MaxStringLength, StringLengthHardCap)
}

// captureThreadCount returns max(TopStackThreads, 10), the number of
// threads actually kept and stack-read.
func (o BuildOptions) captureThreadCount() int {
	n := o.TopStackThreads
	if n < 10 {
		n = 10
	}
	return n
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
