package response

import (
	"fmt"
	"log/slog"
	"regexp"
	"runtime"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	faultLoggerKey = "response.fault_logger"
	faultBodyKey   = "response.fault_body"

	appModulePath  = "github.com/pharmago/pharmago_backend"
	maxStackFrames = 8
)

// SetFaultContext stores the request-scoped logger and a truncated copy of
// the request body so server faults can be recorded with their context.
func SetFaultContext(c *gin.Context, logger *slog.Logger, bodyExcerpt []byte) {
	c.Set(faultLoggerKey, logger)
	c.Set(faultBodyKey, bodyExcerpt)
}

// secretFieldPattern matches credential-bearing JSON fields whose values must
// never reach the logs.
var secretFieldPattern = regexp.MustCompile(`"([^"]*(?:password|token|secret)[^"]*)"\s*:\s*"(?:[^"\\]|\\.)*"`)

// RedactSecrets masks the values of password and token fields in a JSON body.
func RedactSecrets(body string) string {
	return secretFieldPattern.ReplaceAllString(body, `"$1":"[REDACTED]"`)
}

// condensedStack collects up to max application frames of the current call
// stack. Runtime and third-party frames are dropped so the log line stays
// short.
func condensedStack(skip, max int) []string {
	pcs := make([]uintptr, 32)
	n := runtime.Callers(skip, pcs)
	frames := runtime.CallersFrames(pcs[:n])

	stack := make([]string, 0, max)
	for len(stack) < max {
		frame, more := frames.Next()
		if strings.HasPrefix(frame.Function, appModulePath) {
			fn := strings.TrimPrefix(frame.Function, appModulePath+"/")
			stack = append(stack, fmt.Sprintf("%s:%d", fn, frame.Line))
		}
		if !more {
			break
		}
	}
	return stack
}

// logFault records a server fault on the request-scoped logger with the full
// error chain, a condensed stack and the redacted request body. The envelope
// hides this detail from the client.
func logFault(c *gin.Context, err error) {
	logger := slog.Default()
	if v, ok := c.Get(faultLoggerKey); ok {
		if l, ok := v.(*slog.Logger); ok && l != nil {
			logger = l
		}
	}

	attrs := []any{
		slog.String("error", err.Error()),
		slog.Any("stack", condensedStack(3, maxStackFrames)),
	}
	if v, ok := c.Get(faultBodyKey); ok {
		if body, ok := v.([]byte); ok && len(body) > 0 {
			attrs = append(attrs, slog.String("request_body", RedactSecrets(string(body))))
		}
	}
	logger.Error("server fault", attrs...)
}
