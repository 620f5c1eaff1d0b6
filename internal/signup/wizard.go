package signup

import (
	"context"
	"fmt"
	"maps"
	"sync"
	"time"

	"devhub/internal/models"
)

type Step int

const (
	StepAccount Step = iota + 1
	StepRoleDetails
	StepContact
)

// RedirectDelay is how long a client waits before leaving for its dashboard
// after a successful signup.
const RedirectDelay = time.Second

type Registrar interface {
	Register(ctx context.Context, payload map[string]string) (*models.AuthResponse, error)
}

// Wizard is the three step signup flow of one browser. It owns the draft
// until a submission succeeds or the flow is closed.
type Wizard struct {
	mu         sync.Mutex
	step       Step
	draft      map[string]string
	submitting bool
}

func NewWizard() *Wizard {
	return &Wizard{step: StepAccount, draft: map[string]string{}}
}

// State is a snapshot safe to hand to a renderer. The password is left out.
type State struct {
	Step       Step              `json:"step"`
	UserType   string            `json:"userType,omitempty"`
	Draft      map[string]string `json:"draft"`
	Submitting bool              `json:"submitting"`
	Schema     Schema            `json:"schema"`
}

func (w *Wizard) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()

	draft := maps.Clone(w.draft)
	delete(draft, "password")
	return State{
		Step:       w.step,
		UserType:   w.draft["userType"],
		Draft:      draft,
		Submitting: w.submitting,
		Schema:     SchemaFor(w.draft["userType"]),
	}
}

func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

func (w *Wizard) Submitting() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.submitting
}

// Draft returns a copy of the collected values.
func (w *Wizard) Draft() map[string]string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return maps.Clone(w.draft)
}

// Advance moves one step forward with the values entered on the current step.
// Leaving step 1 requires the account gate and replaces the draft; leaving
// step 2 merges the selected role's fields. A failed gate changes nothing.
func (w *Wizard) Advance(to Step, values map[string]string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.submitting {
		return ErrSubmitInProgress
	}
	if to != w.step+1 || to > StepContact {
		return fmt.Errorf("%w: %d to %d", ErrInvalidTransition, w.step, to)
	}

	switch w.step {
	case StepAccount:
		account := collect(AccountFields, values)
		if err := ValidateAccount(account); err != nil {
			return err
		}
		delete(account, "confirmPassword")
		w.draft = account
	case StepRoleDetails:
		fields := RoleFields(w.draft["userType"])
		for _, f := range fields {
			delete(w.draft, f.Key)
		}
		maps.Copy(w.draft, collect(fields, values))
	}
	w.step = to
	return nil
}

// Retreat moves back to an earlier step without validating anything.
func (w *Wizard) Retreat(to Step) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.submitting {
		return ErrSubmitInProgress
	}
	if to < StepAccount || to >= w.step {
		return fmt.Errorf("%w: %d to %d", ErrInvalidTransition, w.step, to)
	}
	w.step = to
	return nil
}

// Close abandons the flow. Nothing entered so far survives.
func (w *Wizard) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.reset()
}

func (w *Wizard) reset() {
	w.step = StepAccount
	w.draft = map[string]string{}
}

// Payload flattens the draft and the step 3 values into a registration
// record, checking required fields.
func (w *Wizard) Payload(values map[string]string) (map[string]string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.payload(values)
}

func (w *Wizard) payload(values map[string]string) (map[string]string, error) {
	if w.step != StepContact {
		return nil, fmt.Errorf("%w: submit from step %d", ErrInvalidTransition, w.step)
	}
	payload := maps.Clone(w.draft)
	maps.Copy(payload, collect(ContactFields, values))

	if err := missingRequired(RoleFields(payload["userType"]), payload); err != nil {
		return nil, err
	}
	if err := missingRequired(ContactFields, payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// Submit registers the account. Only one submission runs at a time; a second
// call while one is outstanding fails fast with ErrSubmitInProgress. On
// success the wizard resets, on failure it stays on step 3 so the user can
// retry.
func (w *Wizard) Submit(ctx context.Context, values map[string]string, reg Registrar) (*models.AuthResponse, error) {
	w.mu.Lock()
	if w.submitting {
		w.mu.Unlock()
		return nil, ErrSubmitInProgress
	}
	payload, err := w.payload(values)
	if err != nil {
		w.mu.Unlock()
		return nil, err
	}
	w.submitting = true
	w.mu.Unlock()

	resp, err := reg.Register(ctx, payload)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.submitting = false
	if err != nil {
		return nil, err
	}
	w.reset()
	return resp, nil
}
