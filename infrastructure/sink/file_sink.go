package sink

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fixora/auditguard/domain/audit"
)

// FileSink appends audit lines to log_<Class>.log files in one directory.
// Each append opens the file in append mode and closes it before returning;
// there is no locking between concurrent writers.
type FileSink struct {
	dir  string
	perm os.FileMode
}

// NewFileSink creates a file sink rooted at dir. An empty dir means the
// working directory.
func NewFileSink(dir string) *FileSink {
	return &FileSink{dir: dir, perm: 0o644}
}

// Path returns the log file used for className
func (s *FileSink) Path(className string) string {
	return filepath.Join(s.dir, audit.LogName(className))
}

func (s *FileSink) AppendLine(className, text string) (err error) {
	path := s.Path(className)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, s.perm)
	if err != nil {
		return fmt.Errorf("open audit log %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close audit log %s: %w", path, cerr)
		}
	}()

	if _, err = io.WriteString(f, text+"\n"); err != nil {
		return fmt.Errorf("write audit log %s: %w", path, err)
	}
	return nil
}
