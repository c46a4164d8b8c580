package system

import (
	"io"

	"github.com/sirupsen/logrus"
)

func systemLog(log *logrus.Entry, name string) *logrus.Entry {
	if log == nil {
		logger := logrus.New()
		logger.SetOutput(io.Discard)
		log = logrus.NewEntry(logger)
	}
	return log.WithField("system", name)
}
