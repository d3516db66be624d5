package recorder

import "PriceSentinel/internal/model"

// Recorder persists pricing runs for later analysis.
type Recorder interface {
	RecordRun(run *model.RunSummary) error
	Close() error
}
