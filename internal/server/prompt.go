package server

import "github.com/ironsheep/hsv-wizard/internal/session"

// Answer is the operator's reply to a length prompt, carried on the tool
// call that triggers the prompt.
type Answer struct {
	Length float64 `json:"length"`
	Units  string  `json:"units,omitempty"`
}

// Message is a notification raised while a tool call ran.
type Message struct {
	Level   string `json:"level"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// toolPrompter answers session prompts from the current tool call. A call
// without an answer cancels any prompt it raises. Each answer is used at
// most once.
type toolPrompter struct {
	answer   *Answer
	messages []Message
}

// arm prepares the prompter for one tool call.
func (p *toolPrompter) arm(a *Answer) {
	p.answer = a
	p.messages = nil
}

// drain returns the messages raised since arm.
func (p *toolPrompter) drain() []Message {
	m := p.messages
	p.messages = nil
	p.answer = nil
	return m
}

func (p *toolPrompter) take() (*Answer, bool) {
	a := p.answer
	p.answer = nil
	return a, a != nil
}

func (p *toolPrompter) AskLengthAndUnits(string) (float64, string, bool) {
	a, ok := p.take()
	if !ok {
		return 0, "", false
	}
	return a.Length, a.Units, true
}

func (p *toolPrompter) AskScaleBarLength(string) (float64, bool) {
	a, ok := p.take()
	if !ok {
		return 0, false
	}
	return a.Length, true
}

func (p *toolPrompter) Notify(level session.Level, title, message string) {
	p.messages = append(p.messages, Message{Level: level.String(), Title: title, Message: message})
}
