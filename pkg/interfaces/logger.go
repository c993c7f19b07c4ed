package interfaces

// Logger is the leveled console logger shared by every component.
type Logger interface {
	Info(message string)
	Error(message string)
	Warn(message string)
	Debug(message string)
}
