package logging

import (
	"strings"

	log "github.com/sirupsen/logrus"
)

// ConfigureLogrusJSON sets the logger to emit JSON logs with a GCP severity
// field and credential-bearing fields masked.
func ConfigureLogrusJSON(logger *log.Logger) {
	if logger == nil {
		return
	}

	logger.SetFormatter(&log.JSONFormatter{})
	logger.AddHook(OtelSeverityHook{})
	logger.AddHook(RedactHook{})
}

// OtelSeverityHook adds a GCP-compatible severity field to log entries.
type OtelSeverityHook struct{}

func (OtelSeverityHook) Levels() []log.Level {
	return log.AllLevels
}

func (OtelSeverityHook) Fire(entry *log.Entry) error {
	if entry == nil {
		return nil
	}
	if _, ok := entry.Data["severity"]; ok {
		return nil
	}

	entry.Data["severity"] = severityForLevel(entry.Level)
	return nil
}

func severityForLevel(level log.Level) string {
	switch level {
	case log.PanicLevel:
		return "emergency"
	case log.FatalLevel:
		return "critical"
	case log.ErrorLevel:
		return "error"
	case log.WarnLevel:
		return "warning"
	case log.InfoLevel:
		return "info"
	case log.DebugLevel, log.TraceLevel:
		return "debug"
	default:
		return "default"
	}
}

// Redacted replaces the value of sensitive fields
const Redacted = "[REDACTED]"

var sensitiveKeyParts = []string{"secret", "token", "password", "authorization"}

// RedactHook masks string fields whose key names a credential, e.g.
// "ovm.connect.secret" or "Authorization". Non-string values such as flags
// saying whether a token is present are left alone.
type RedactHook struct{}

func (RedactHook) Levels() []log.Level {
	return log.AllLevels
}

func (RedactHook) Fire(entry *log.Entry) error {
	if entry == nil {
		return nil
	}

	for k, v := range entry.Data {
		if !isSensitiveKey(k) {
			continue
		}
		switch s := v.(type) {
		case string:
			if s != "" {
				entry.Data[k] = Redacted
			}
		case []byte:
			entry.Data[k] = Redacted
		}
	}

	return nil
}

func isSensitiveKey(key string) bool {
	key = strings.ToLower(key)
	for _, part := range sensitiveKeyParts {
		if strings.Contains(key, part) {
			return true
		}
	}
	return false
}
