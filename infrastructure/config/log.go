package config

import (
	"path/filepath"

	"github.com/satoshilab/scriptcore/infrastructure/logger"
)

const (
	defaultLogLevel = "info"
)

// LogFlags holds where and how verbosely commands log.
type LogFlags struct {
	LogDir   string `long:"logdir" description:"Directory to log output. Logs go to stdout only when empty"`
	LogLevel string `short:"d" long:"loglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical} -- You may also specify <subsystem>=<level>,<subsystem2>=<level>,... to set the log level for individual subsystems"`
}

// InitLogging starts the log backend for the command appName and applies the
// requested log levels.
func (logFlags *LogFlags) InitLogging(appName string) error {
	if logFlags.LogDir == "" {
		logger.InitLogStdout(logger.LevelInfo)
	} else {
		logFile := filepath.Join(logFlags.LogDir, appName+".log")
		errLogFile := filepath.Join(logFlags.LogDir, appName+"_err.log")
		logger.InitLog(logFile, errLogFile)
	}

	logLevel := logFlags.LogLevel
	if logLevel == "" {
		logLevel = defaultLogLevel
	}
	return logger.ParseAndSetLogLevels(logLevel)
}
