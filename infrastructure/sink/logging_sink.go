package sink

import (
	"context"

	"github.com/fixora/auditguard/domain/audit"
	"github.com/fixora/auditguard/infrastructure/service/logger"
)

// LoggingSink mirrors every append of the wrapped sink into the structured
// logger at debug level, and reports failed appends at error level.
type LoggingSink struct {
	next   audit.Sink
	logger logger.Logger
}

func NewLoggingSink(next audit.Sink, log logger.Logger) *LoggingSink {
	return &LoggingSink{next: next, logger: log}
}

func (s *LoggingSink) AppendLine(className, text string) error {
	fields := map[string]interface{}{
		"class": className,
		"log":   audit.LogName(className),
	}
	if err := s.next.AppendLine(className, text); err != nil {
		s.logger.Error(context.Background(), "audit append failed", err, fields)
		return err
	}
	fields["line"] = text
	s.logger.Debug(context.Background(), "audit line appended", fields)
	return nil
}
