package config

import (
	"os"

	"github.com/sirupsen/logrus"
)

var (
	logg *logrus.Logger
)

func GetLogger() *logrus.Logger {
	return logg
}

func init() {
	logg = logrus.New()
	logg.SetFormatter(&logrus.JSONFormatter{})
	logg.SetLevel(logrus.ErrorLevel)
	logg.SetOutput(os.Stdout)
}

func LogError(logger *logrus.Logger, moduleName string, funcName string, context string, data any, err error) {
	if data != nil {
		logger.WithFields(logrus.Fields{
			"module":   moduleName,
			"funcName": funcName,
			"context":  context,
			"data":     data,
		}).Error(err.Error())
	} else {
		logger.WithFields(logrus.Fields{
			"module":   moduleName,
			"funcName": funcName,
			"context":  context,
		}).Error(err.Error())
	}
}

// LogPostingFailure records a ledger posting that failed after its source
// business record was already committed. These are reconciled manually, so
// they must always be visible in the logs even when posting is best-effort.
func LogPostingFailure(logger *logrus.Logger, sourceTag string, sourceId int, tenantId string, err error) {
	logger.WithFields(logrus.Fields{
		"module":     "posting",
		"source_tag": sourceTag,
		"source_id":  sourceId,
		"tenant_id":  tenantId,
	}).Error("ledger posting failed: " + err.Error())
}
