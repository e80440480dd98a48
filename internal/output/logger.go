package output

import (
	"fmt"
	"time"

	"github.com/fatih/color"
)

// Logger defines the interface for colored terminal output
type Logger interface {
	Info(format string, args ...interface{})
	Success(format string, args ...interface{})
	Warning(format string, args ...interface{})
	Error(format string, args ...interface{})
	GroupMessage(chat, sender, message string)
	DirectMessage(sender, message string)
}

// ColorLogger implements Logger with colored terminal output
type ColorLogger struct {
	infoColor    *color.Color
	successColor *color.Color
	warningColor *color.Color
	errorColor   *color.Color
	groupColor   *color.Color
	dmColor      *color.Color
	senderColor  *color.Color
}

// NewColorLogger creates a new ColorLogger with default color scheme
func NewColorLogger() *ColorLogger {
	return &ColorLogger{
		infoColor:    color.New(color.FgCyan),
		successColor: color.New(color.FgGreen, color.Bold),
		warningColor: color.New(color.FgYellow, color.Bold),
		errorColor:   color.New(color.FgRed, color.Bold),
		groupColor:   color.New(color.FgBlue, color.Bold),
		dmColor:      color.New(color.FgMagenta, color.Bold),
		senderColor:  color.New(color.FgGreen),
	}
}

// Info prints an informational message in cyan
func (l *ColorLogger) Info(format string, args ...interface{}) {
	timestamp := time.Now().Format("15:04:05")
	message := fmt.Sprintf(format, args...)
	_, _ = l.infoColor.Printf("[%s] INFO: %s\n", timestamp, message)
}

// Success prints a success message in bold green
func (l *ColorLogger) Success(format string, args ...interface{}) {
	timestamp := time.Now().Format("15:04:05")
	message := fmt.Sprintf(format, args...)
	_, _ = l.successColor.Printf("[%s] SUCCESS: %s\n", timestamp, message)
}

// Warning prints a warning message in bold yellow
func (l *ColorLogger) Warning(format string, args ...interface{}) {
	timestamp := time.Now().Format("15:04:05")
	message := fmt.Sprintf(format, args...)
	_, _ = l.warningColor.Printf("[%s] WARNING: %s\n", timestamp, message)
}

// Error prints an error message in bold red
func (l *ColorLogger) Error(format string, args ...interface{}) {
	timestamp := time.Now().Format("15:04:05")
	message := fmt.Sprintf(format, args...)
	_, _ = l.errorColor.Printf("[%s] ERROR: %s\n", timestamp, message)
}

// GroupMessage prints a group chat message with color-coded formatting
// Format: [HH:MM:SS] group <sender> message
func (l *ColorLogger) GroupMessage(chat, sender, message string) {
	timestamp := time.Now().Format("15:04:05")
	fmt.Printf("[%s] ", timestamp)
	_, _ = l.groupColor.Printf("%s ", chat)
	_, _ = l.senderColor.Printf("<%s> ", sender)
	fmt.Printf("%s\n", message)
}

// DirectMessage prints a one-to-one chat message with distinct color formatting
// Format: [HH:MM:SS] DM from sender: message
func (l *ColorLogger) DirectMessage(sender, message string) {
	timestamp := time.Now().Format("15:04:05")
	fmt.Printf("[%s] ", timestamp)
	_, _ = l.dmColor.Printf("DM from ")
	_, _ = l.senderColor.Printf("%s: ", sender)
	fmt.Printf("%s\n", message)
}
