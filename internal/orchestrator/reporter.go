package orchestrator

import (
	"go.uber.org/zap"
)

// StatusReporter receives a status label at the start of each workflow state.
// Implementations must return promptly; the workflow never waits on them.
type StatusReporter interface {
	Notify(phaseLabel string)
}

// StatusReporterFunc adapts a function to StatusReporter.
type StatusReporterFunc func(phaseLabel string)

// Notify calls f.
func (f StatusReporterFunc) Notify(phaseLabel string) {
	f(phaseLabel)
}

type noopReporter struct{}

// NewNoopReporter returns a reporter that ignores every update.
func NewNoopReporter() StatusReporter {
	return noopReporter{}
}

func (noopReporter) Notify(string) {}

// LogReporter writes status labels to a zap logger.
type LogReporter struct {
	log *zap.Logger
}

// NewLogReporter creates a reporter that logs each label at info level.
func NewLogReporter(log *zap.Logger) *LogReporter {
	if log == nil {
		log = zap.NewNop()
	}
	return &LogReporter{log: log.Named("status")}
}

// Notify logs the label.
func (r *LogReporter) Notify(phaseLabel string) {
	r.log.Info(phaseLabel)
}
