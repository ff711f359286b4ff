package session

// Level is the severity of an operator notification.
type Level int

const (
	LevelInfo Level = iota
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Prompter is the operator dialog provider. Every call is synchronous: the
// session makes no other state change until it returns.
type Prompter interface {
	// AskLengthAndUnits asks for a physical length and its unit label.
	// ok is false when the operator cancels.
	AskLengthAndUnits(title string) (length float64, units string, ok bool)

	// AskScaleBarLength asks for the scale bar length in units.
	AskScaleBarLength(units string) (length float64, ok bool)

	// Notify shows a message.
	Notify(level Level, title, message string)
}

// nopPrompter cancels every question and drops every message.
type nopPrompter struct{}

func (nopPrompter) AskLengthAndUnits(string) (float64, string, bool) { return 0, "", false }
func (nopPrompter) AskScaleBarLength(string) (float64, bool)         { return 0, false }
func (nopPrompter) Notify(Level, string, string)                     {}
