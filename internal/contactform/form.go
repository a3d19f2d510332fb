// Package contactform holds the contact form's validation gate and its
// submission state machine. Nothing reaches the backend until the gate passes.
package contactform

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/SebasPM15/landing-personal/internal/leads"
)

// SuccessDisplay is how long the success banner stays before the form
// returns to idle.
const SuccessDisplay = 5 * time.Second

// GenericErrorMessage is shown when a failed submission carries no text.
const GenericErrorMessage = "Ocurrió un error al enviar el mensaje. Por favor intenta nuevamente."

// ErrBusy is returned when a submission is already in flight.
var ErrBusy = errors.New("contactform: submission in progress")

// State is the lifecycle position of a Form.
type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateSuccess
	StateError
)

func (s State) String() string {
	switch s {
	case StateSubmitting:
		return "submitting"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	default:
		return "idle"
	}
}

// Submitter sends a validated lead to the backend.
type Submitter interface {
	CreateLead(ctx context.Context, lead leads.Lead) (string, error)
}

// Snapshot is a point-in-time copy of a Form.
type Snapshot struct {
	State        State
	Fields       Fields
	Error        string
	Confirmation string
}

// Option customizes a Form.
type Option func(*Form)

// WithSuccessDisplay overrides how long the success state is held.
func WithSuccessDisplay(d time.Duration) Option {
	return func(f *Form) {
		if d > 0 {
			f.successDisplay = d
		}
	}
}

// Form tracks the values of one contact form and the outcome of its last
// submission. It is safe for concurrent use.
type Form struct {
	submitter      Submitter
	successDisplay time.Duration

	mu           sync.Mutex
	fields       Fields
	state        State
	errMsg       string
	confirmation string
	dismiss      *time.Timer
	generation   uint64
}

// New returns an idle Form that submits through s.
func New(s Submitter, opts ...Option) *Form {
	f := &Form{submitter: s, successDisplay: SuccessDisplay}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Set replaces the current input values.
func (f *Form) Set(fields Fields) {
	f.mu.Lock()
	f.fields = fields
	f.mu.Unlock()
}

// Snapshot returns the current values and state.
func (f *Form) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return Snapshot{
		State:        f.state,
		Fields:       f.fields,
		Error:        f.errMsg,
		Confirmation: f.confirmation,
	}
}

// Submit validates the current values and, when they pass, sends the trimmed
// lead. Any earlier outcome is cleared first; a rejected form returns a
// *ValidationError and leaves the form idle.
// On success the inputs are cleared and the form returns to idle after the
// success display period. On failure the inputs are kept.
func (f *Form) Submit(ctx context.Context) (string, error) {
	f.mu.Lock()
	if f.state == StateSubmitting {
		f.mu.Unlock()
		return "", ErrBusy
	}
	f.stopDismissLocked()
	f.errMsg = ""
	f.confirmation = ""
	if errs := Validate(f.fields); errs != nil {
		f.state = StateIdle
		f.mu.Unlock()
		return "", &ValidationError{Fields: errs}
	}
	f.state = StateSubmitting
	lead := toLead(f.fields.Trimmed())
	f.mu.Unlock()

	confirmation, err := f.submitter.CreateLead(ctx, lead)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.state = StateError
		f.errMsg = err.Error()
		if f.errMsg == "" {
			f.errMsg = GenericErrorMessage
		}
		return "", err
	}

	f.fields = Fields{}
	f.state = StateSuccess
	f.confirmation = confirmation
	f.generation++
	gen := f.generation
	f.dismiss = time.AfterFunc(f.successDisplay, func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.generation == gen && f.state == StateSuccess {
			f.state = StateIdle
			f.confirmation = ""
			f.dismiss = nil
		}
	})
	return confirmation, nil
}

// Close stops a pending success dismissal.
func (f *Form) Close() {
	f.mu.Lock()
	f.stopDismissLocked()
	f.mu.Unlock()
}

func (f *Form) stopDismissLocked() {
	if f.dismiss != nil {
		f.dismiss.Stop()
		f.dismiss = nil
	}
	f.generation++
}

func toLead(f Fields) leads.Lead {
	return leads.Lead{
		Name:    f.Name,
		Email:   f.Email,
		Phone:   f.Phone,
		Message: f.Message,
	}
}
