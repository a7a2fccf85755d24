package notifier

import (
	"github.com/frankb2024/Bad-kids-sub000/internal/constants"
	"github.com/frankb2024/Bad-kids-sub000/internal/logger"
	"github.com/frankb2024/Bad-kids-sub000/internal/models"
)

// LogNotifier satisfies Notifier by writing to the application log only.
// Used when no display shell is configured.
type LogNotifier struct{}

func (LogNotifier) TaskFired(inst *models.TaskInstance, displayText, speechText string) {
	logger.Info("task fired", "person", inst.Assigned, "action", inst.Entry.Action, "text", displayText)
}

func (LogNotifier) NextTaskChanged(summary *models.TaskSummary) {
	if summary == nil {
		logger.Debug("no further tasks today")
		return
	}
	logger.Debug("next task", "at", summary.At.Format(constants.TimeFormat), "person", summary.Person, "label", summary.Label)
}

func (LogNotifier) LastTaskChanged(summary *models.TaskSummary) {
	if summary == nil {
		return
	}
	logger.Debug("last task", "at", summary.At.Format(constants.TimeFormat), "person", summary.Person, "label", summary.Label)
}
