package logger

// Type selects the slog handler used to format records.
type Type int

const (
	TypeText Type = iota
	TypeJSON
)
