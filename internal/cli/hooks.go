package cli

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/matrixrain/pkg/observability"
)

// logHooks reports engine events to the CLI logger. While the rain is on
// screen the logger points at the log file or nowhere.
type logHooks struct {
	observability.NoopEngineHooks
	logger *log.Logger
}

func newLogHooks(l *log.Logger) *logHooks {
	return &logHooks{logger: l}
}

func (h *logHooks) OnSubmit(column, length int) {
	h.logger.Debug("line placed", "column", column, "length", length)
}

func (h *logHooks) OnPrune(count int) {
	h.logger.Debug("trails finished", "count", count)
}

func (h *logHooks) OnTickError(tick uint64, err error) {
	h.logger.Warn("frame dropped", "tick", tick, "err", err)
}
