// internal/pkg/notify/notice.go
package notify

// Notice levels
const (
	LevelSuccess = "success"
	LevelError   = "error"
	LevelInfo    = "info"
)

// Notice is a fire-and-forget user-visible message. The core only ever writes
// notices; it never reads them back.
type Notice struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// Success creates a success notice
func Success(message string) Notice {
	return Notice{Level: LevelSuccess, Message: message}
}

// Error creates an error notice
func Error(message string) Notice {
	return Notice{Level: LevelError, Message: message}
}

// Info creates an informational notice
func Info(message string) Notice {
	return Notice{Level: LevelInfo, Message: message}
}
