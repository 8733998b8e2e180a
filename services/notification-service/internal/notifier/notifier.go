package notifier

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// Notifier delivers a human-readable notification. Email or SMS senders
// can replace the log sink behind this interface.
type Notifier interface {
	Notify(subject, message string) error
}

type LogNotifier struct {
	log logrus.FieldLogger
}

func NewLog(log logrus.FieldLogger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notify(subject, message string) error {
	n.log.WithField("subject", subject).Info(message)
	return nil
}

func HumanTimeRange(startUnix, endUnix int64) string {
	st := time.Unix(startUnix, 0).UTC()
	et := time.Unix(endUnix, 0).UTC()
	return fmt.Sprintf("%s to %s UTC", st.Format("2006-01-02 15:04"), et.Format("15:04"))
}
