package logger

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"
	"sync"
	"time"
)

// Level represents the severity of a log entry.
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

var levelNames = map[Level]string{
	DEBUG: "DEBUG",
	INFO:  "INFO",
	WARN:  "WARN",
	ERROR: "ERROR",
}

// ParseLevel converts a config string into a Level, defaulting to INFO.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DEBUG
	case "warn", "warning":
		return WARN
	case "error":
		return ERROR
	default:
		return INFO
	}
}

// Logger provides structured JSON logging with credential redaction.
type Logger struct {
	level       Level
	mu          sync.Mutex
	redactCreds bool
}

var defaultLogger = &Logger{level: INFO, redactCreds: true}

// SetLevel sets the minimum log level for the default logger.
func SetLevel(l Level) { defaultLogger.level = l }

// SetRedactCredentials enables or disables credential redaction for the
// default logger.
func SetRedactCredentials(r bool) { defaultLogger.redactCreds = r }

// Debug emits a DEBUG-level structured log entry.
func Debug(msg string, fields ...interface{}) { defaultLogger.log(DEBUG, msg, fields...) }

// Info emits an INFO-level structured log entry.
func Info(msg string, fields ...interface{}) { defaultLogger.log(INFO, msg, fields...) }

// Warn emits a WARN-level structured log entry.
func Warn(msg string, fields ...interface{}) { defaultLogger.log(WARN, msg, fields...) }

// Error emits an ERROR-level structured log entry.
func Error(msg string, fields ...interface{}) { defaultLogger.log(ERROR, msg, fields...) }

// Fatal emits an ERROR-level entry and exits the process.
func Fatal(msg string, fields ...interface{}) {
	defaultLogger.log(ERROR, msg, fields...)
	os.Exit(1)
}

func (l *Logger) log(level Level, msg string, fields ...interface{}) {
	if level < l.level {
		return
	}

	entry := map[string]interface{}{
		"time":  time.Now().UTC().Format(time.RFC3339),
		"level": levelNames[level],
		"msg":   msg,
	}

	// Parse key-value pairs from fields
	for i := 0; i < len(fields)-1; i += 2 {
		key := fmt.Sprintf("%v", fields[i])
		val := fmt.Sprintf("%v", fields[i+1])
		if l.redactCreds {
			val = redactCredentialValue(key, val)
		}
		entry[key] = val
	}

	// JSON output
	data, _ := json.Marshal(entry)
	l.mu.Lock()
	fmt.Fprintln(os.Stderr, string(data))
	l.mu.Unlock()
}

var credentialKeys = []string{"api_key", "apikey", "token", "secret", "authorization", "credential", "password"}

var bearerRegex = regexp.MustCompile(`(?i)bearer\s+\S+`)

func redactCredentialValue(key, val string) string {
	key = strings.ToLower(key)
	for _, k := range credentialKeys {
		if strings.Contains(key, k) {
			return MaskCredential(val)
		}
	}
	// Redact any embedded bearer tokens in generic fields
	return bearerRegex.ReplaceAllString(val, "Bearer ***")
}
