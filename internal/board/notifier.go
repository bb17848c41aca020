package board

import (
	"planejao/internal/infrastructure/logging"

	"github.com/sirupsen/logrus"
)

// Notifier surfaces board outcomes to the user.
type Notifier interface {
	Success(msg string)
	Error(msg string, err error)
}

// LogNotifier writes notifications through logrus. A nil Logger means the
// process-wide one.
type LogNotifier struct {
	Logger *logrus.Logger
}

func (n LogNotifier) logger() *logrus.Logger {
	if n.Logger != nil {
		return n.Logger
	}
	return logging.Logger
}

func (n LogNotifier) Success(msg string) {
	n.logger().Info(msg)
}

func (n LogNotifier) Error(msg string, err error) {
	n.logger().WithError(err).Error(msg)
}
