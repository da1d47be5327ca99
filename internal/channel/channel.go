package channel

// Name identifies one of the three bot channels
type Name string

const (
	Customer   Name = "customer"
	Executor   Name = "executor"
	Dispatcher Name = "dispatcher"
)

// Button is an inline button carrying callback data
type Button struct {
	Text string
	Data string
}

// Keyboard is a grid of inline buttons, one slice per row
type Keyboard [][]Button

// Row is a convenience constructor for a keyboard row
func Row(buttons ...Button) []Button {
	return buttons
}

// Chunk lays buttons out perRow to a row
func Chunk(buttons []Button, perRow int) Keyboard {
	if perRow < 1 {
		perRow = 1
	}
	var kb Keyboard
	for start := 0; start < len(buttons); start += perRow {
		end := start + perRow
		if end > len(buttons) {
			end = len(buttons)
		}
		row := make([]Button, end-start)
		copy(row, buttons[start:end])
		kb = append(kb, row)
	}
	return kb
}

// MessageRef points at a delivered message so its controls can be changed later
type MessageRef struct {
	ChatID    int64
	MessageID int
}

// Sender delivers outbound messages on one channel
type Sender interface {
	Send(to int64, text string, kb Keyboard) (MessageRef, error)
	DisableControls(ref MessageRef) error
}
