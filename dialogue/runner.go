package dialogue

import (
	"errors"
	"fmt"
	"log"
	"strings"
)

var (
	ErrNoProgram       = errors.New("dialogue: no program loaded")
	ErrDialogueRunning = errors.New("dialogue: a dialogue is already running")
	ErrNodeNotFound    = errors.New("dialogue: node not found")
	ErrNotRunning      = errors.New("dialogue: no dialogue running")
	ErrAwaitingOption  = errors.New("dialogue: waiting for an option to be selected")
	ErrInvalidOption   = errors.New("dialogue: invalid option")
	ErrCommandExists   = errors.New("dialogue: command handler already registered")
	ErrStepLimit       = errors.New("dialogue: step limit reached")
)

// stepBudget bounds the non-blocking steps run by one advance.
const stepBudget = 1000

// CommandHandler runs a command issued by dialogue content. args excludes the
// command name.
type CommandHandler func(args []string) error

type Line struct {
	Node    string
	Speaker string
	Text    string
}

type Option struct {
	ID          int
	Text        string
	Destination string
}

// Runner executes a Program one blocking step (line or option set) at a time.
type Runner struct {
	name     string
	program  *Program
	storage  VariableStorage
	gate     *SessionGate
	commands map[string]CommandHandler

	OnDialogueStart    Event
	OnDialogueComplete Event

	running bool
	node    *Node
	pc      int
	line    *Line
	options []Option
}

// NewRunner creates a runner. A nil storage gets an in-memory store; a nil
// gate gets a private one.
func NewRunner(name string, program *Program, storage VariableStorage, gate *SessionGate) *Runner {
	if storage == nil {
		storage = NewMemoryVariableStorage()
	}
	if gate == nil {
		gate = &SessionGate{}
	}
	return &Runner{
		name:     name,
		program:  program,
		storage:  storage,
		gate:     gate,
		commands: make(map[string]CommandHandler),
	}
}

func (r *Runner) Name() string { return r.name }

func (r *Runner) VariableStorage() VariableStorage { return r.storage }

func (r *Runner) Gate() *SessionGate { return r.gate }

func (r *Runner) Program() *Program { return r.program }

// SetProgram swaps the program. It is refused while a dialogue runs.
func (r *Runner) SetProgram(p *Program) error {
	if r.running {
		return ErrDialogueRunning
	}
	r.program = p
	return nil
}

// AddCommandHandler registers a handler for a command name.
func (r *Runner) AddCommandHandler(name string, h CommandHandler) error {
	if _, ok := r.commands[name]; ok {
		return fmt.Errorf("%w: %q", ErrCommandExists, name)
	}
	r.commands[name] = h
	return nil
}

func (r *Runner) RemoveCommandHandler(name string) {
	delete(r.commands, name)
}

// IsDialogueRunning reports whether this runner, or any runner sharing its
// gate, is in a session.
func (r *Runner) IsDialogueRunning() bool {
	return r.running || r.gate.Active()
}

// StartDialogue begins a session at node. OnDialogueStart fires before the
// first step runs.
func (r *Runner) StartDialogue(node string) error {
	if r.program == nil {
		return ErrNoProgram
	}
	n, ok := r.program.Nodes[node]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNodeNotFound, node)
	}
	if r.running || !r.gate.Acquire(r.name) {
		return ErrDialogueRunning
	}

	r.running = true
	r.node = n
	r.pc = 0
	r.line = nil
	r.options = nil

	r.OnDialogueStart.Invoke()
	r.advance()
	return nil
}

// CurrentLine returns the line awaiting Continue.
func (r *Runner) CurrentLine() (Line, bool) {
	if !r.running || r.line == nil {
		return Line{}, false
	}
	return *r.line, true
}

// CurrentOptions returns the options awaiting SelectOption.
func (r *Runner) CurrentOptions() []Option {
	if !r.running {
		return nil
	}
	return append([]Option(nil), r.options...)
}

// Continue dismisses the current line and runs until the next blocking step.
func (r *Runner) Continue() error {
	if !r.running {
		return ErrNotRunning
	}
	if len(r.options) > 0 {
		return ErrAwaitingOption
	}
	r.advance()
	return nil
}

// SelectOption picks one of the current options by ID.
func (r *Runner) SelectOption(id int) error {
	if !r.running {
		return ErrNotRunning
	}
	for _, opt := range r.options {
		if opt.ID != id {
			continue
		}
		if !r.jump(opt.Destination) {
			return nil
		}
		r.advance()
		return nil
	}
	return fmt.Errorf("%w: %d", ErrInvalidOption, id)
}

func (r *Runner) advance() {
	r.line = nil
	r.options = nil

	for budget := stepBudget; budget > 0; budget-- {
		if !r.running {
			return
		}
		if r.pc >= len(r.node.Steps) {
			r.complete()
			return
		}
		step := r.node.Steps[r.pc]
		r.pc++

		if step.When != "" {
			ok, err := EvaluateCondition(step.When, r.storage)
			if err != nil {
				log.Printf("dialogue: node=%s step=%d condition error: %v", r.node.Name, r.pc-1, err)
				continue
			}
			if !ok {
				continue
			}
		}

		switch {
		case step.Line != "":
			r.line = &Line{
				Node:    r.node.Name,
				Speaker: step.Speaker,
				Text:    Interpolate(step.Line, r.storage),
			}
			return
		case len(step.Options) > 0:
			if r.offer(step.Options) {
				return
			}
		case step.Command != "":
			r.runCommand(step.Command)
		case step.Set != nil:
			r.assign(step.Set)
		case step.Jump != "":
			if !r.jump(step.Jump) {
				return
			}
		case step.Stop:
			r.complete()
			return
		}
	}

	log.Printf("dialogue: node=%s: %v", r.node.Name, ErrStepLimit)
	r.complete()
}

func (r *Runner) offer(specs []OptionSpec) bool {
	for i, spec := range specs {
		if spec.When != "" {
			ok, err := EvaluateCondition(spec.When, r.storage)
			if err != nil {
				log.Printf("dialogue: node=%s option=%d condition error: %v", r.node.Name, i, err)
				continue
			}
			if !ok {
				continue
			}
		}
		r.options = append(r.options, Option{
			ID:          i,
			Text:        Interpolate(spec.Text, r.storage),
			Destination: spec.Jump,
		})
	}
	return len(r.options) > 0
}

func (r *Runner) jump(node string) bool {
	n, ok := r.program.Nodes[node]
	if !ok {
		log.Printf("dialogue: node=%s jump to unknown node %q", r.node.Name, node)
		r.complete()
		return false
	}
	r.node = n
	r.pc = 0
	r.line = nil
	r.options = nil
	return true
}

func (r *Runner) runCommand(text string) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return
	}
	h, ok := r.commands[fields[0]]
	if !ok {
		log.Printf("dialogue: node=%s no handler for command %q", r.node.Name, fields[0])
		return
	}
	if err := h(fields[1:]); err != nil {
		log.Printf("dialogue: node=%s command %q: %v", r.node.Name, fields[0], err)
	}
}

func (r *Runner) assign(a *Assignment) {
	v, err := Evaluate(a.Value, r.storage)
	if err != nil {
		log.Printf("dialogue: node=%s set %s: %v", r.node.Name, a.Var, err)
		return
	}
	r.storage.SetValue(VariableName(a.Var), v)
}

// complete ends the session. The gate is released before OnDialogueComplete
// fires so listeners observe IsDialogueRunning() == false.
func (r *Runner) complete() {
	if !r.running {
		return
	}
	r.running = false
	r.node = nil
	r.pc = 0
	r.line = nil
	r.options = nil
	r.gate.Release(r.name)
	r.OnDialogueComplete.Invoke()
}
