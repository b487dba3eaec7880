package vlogger

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"
)

// muLogger serializes the writes to the sink
var muLogger sync.Mutex
var logger io.Writer

var processName string
var logSeverity = DEBUG
var logFileName string
var hostname string
var processID int
var consoleLog bool

// LogError logs all the error level statements
func LogError(requestID string, v ...interface{}) {
	doLog(requestID, 2, ERROR, v...)
}

// LogCritical logs all the critical level statements
func LogCritical(requestID string, v ...interface{}) {
	doLog(requestID, 2, CRITICAL, v...)
}

// LogInfo logs all the info level statements
func LogInfo(requestID string, v ...interface{}) {
	doLog(requestID, 2, INFO, v...)
}

// LogDebug logs all the debug level statements
func LogDebug(requestID string, v ...interface{}) {
	doLog(requestID, 2, DEBUG, v...)
}

// LogErrorf logs all the error level statements in given format
func LogErrorf(requestID string, format string, v ...interface{}) {
	doLogf(requestID, 2, ERROR, format, v...)
}

// LogCriticalf logs all the critical level statements in given format
func LogCriticalf(requestID string, format string, v ...interface{}) {
	doLogf(requestID, 2, CRITICAL, format, v...)
}

// LogInfof logs all the info level statements in given format
func LogInfof(requestID string, format string, v ...interface{}) {
	doLogf(requestID, 2, INFO, format, v...)
}

// LogDebugf logs all the debug level statements in given format
func LogDebugf(requestID string, format string, v ...interface{}) {
	doLogf(requestID, 2, DEBUG, format, v...)
}

func doLog(requestID string, stackLevel int, logLevel LogLevel, v ...interface{}) {
	var msg = ""
	if len(v) > 0 {
		msg = fmt.Sprint(v...)
	}
	if _, filename, line, ok := runtime.Caller(stackLevel); ok {
		writeLine(requestID, filename, line, logLevel, msg)
		return
	}
	writeLine(requestID, "", 0, logLevel, msg)
}

func doLogf(requestID string, stackLevel int, logLevel LogLevel, format string, v ...interface{}) {
	msg := fmt.Sprintf(format, v...)
	if _, filename, line, ok := runtime.Caller(stackLevel); ok {
		writeLine(requestID, filename, line, logLevel, msg)
		return
	}
	writeLine(requestID, "", 0, logLevel, msg)
}

func writeLine(
	requestID string,
	filename string,
	line int,
	level LogLevel,
	msg string,
) {
	if level < logSeverity {
		return
	}
	entry := LogData{
		RequestID:   requestID,
		LogTime:     time.Now(),
		Hostname:    hostname,
		ProcessName: processName,
		ProcessID:   processID,
		Level:       level.String(),
		FileName:    filepath.Base(filename),
		LineNum:     line,
		Msg:         msg,
	}
	byteStream, err := json.Marshal(entry)
	if err != nil {
		log.Println("Logger: Unable to marshal the JSON")
		return
	}

	/* When init doesn't happen before the logger gets called */
	if logger == nil {
		initSink()
		if logger == nil {
			log.Println("Logger: sink couldn't be initialised")
			return
		}
	}

	muLogger.Lock()
	_, err = logger.Write(append(byteStream, "\n"...))
	muLogger.Unlock()
	if err != nil {
		log.Printf("Got error while logging. Cause: %s", err.Error())
	}
}

// InitLogger initializes the logger with service specific config
func InitLogger(l LoggerConf) error {
	processName = l.ProcessName
	logFileName = l.LogFileName
	consoleLog = l.ConsoleLog
	logSeverity = logSeverity.FromString(l.LogSeverity)
	hostname, _ = os.Hostname()
	processID = os.Getpid()
	return initSink()
}

func initSink() (err error) {
	if logFileName == "" {
		logger = os.Stdout
		return nil
	}
	logger, err = os.OpenFile(logFileName, os.O_APPEND|os.O_CREATE|os.O_RDWR, 0666)
	if err != nil {
		log.Println("Unable to open the log file", logFileName)
		if consoleLog {
			logger = os.Stdout
			err = nil
		}
	}
	return err
}
