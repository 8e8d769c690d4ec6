package view

import (
	"sort"
	"strings"
	"sync"
)

// Memory is an in-memory FormView. Field order follows the order in which
// names were first declared or written. It is safe for concurrent use because
// a lookup may resolve on a different goroutine than the one reading fields.
type Memory struct {
	mu       sync.RWMutex
	order    []string
	values   map[string]string
	errors   []FieldError
	feedback string
	success  []string
}

var _ FormView = (*Memory)(nil)

// NewMemory declares the named fields, in order, with empty values.
func NewMemory(names ...string) *Memory {
	m := &Memory{values: make(map[string]string, len(names))}
	for _, name := range names {
		m.declare(strings.TrimSpace(name))
	}
	return m
}

// NewMemoryFrom seeds a view with names in order and their prefilled values.
// Prefill entries for names not listed are appended in sorted order.
func NewMemoryFrom(names []string, prefill map[string]string) *Memory {
	m := NewMemory(names...)
	for _, name := range names {
		if value, ok := prefill[name]; ok {
			m.values[name] = value
		}
	}
	extra := make([]string, 0, len(prefill))
	for name := range prefill {
		if _, ok := m.values[name]; !ok {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	for _, name := range extra {
		m.declare(name)
		m.values[name] = prefill[name]
	}
	return m
}

func (m *Memory) declare(name string) {
	if name == "" {
		return
	}
	if _, ok := m.values[name]; ok {
		return
	}
	m.order = append(m.order, name)
	m.values[name] = ""
}

func (m *Memory) Value(name string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.values[name]
}

func (m *Memory) SetValue(name, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.values == nil {
		m.values = make(map[string]string)
	}
	m.declare(name)
	if _, ok := m.values[name]; ok {
		m.values[name] = value
	}
}

func (m *Memory) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.order...)
}

func (m *Memory) Values() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]string, len(m.order))
	for _, name := range m.order {
		out[name] = m.values[name]
	}
	return out
}

func (m *Memory) SetFeedback(message string) {
	m.mu.Lock()
	m.feedback = message
	m.mu.Unlock()
}

func (m *Memory) Feedback() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.feedback
}

func (m *Memory) AddError(field, message string) {
	m.mu.Lock()
	m.errors = append(m.errors, FieldError{Field: field, Message: message})
	m.mu.Unlock()
}

func (m *Memory) ClearErrors() {
	m.mu.Lock()
	m.errors = nil
	m.mu.Unlock()
}

func (m *Memory) Errors() []FieldError {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]FieldError(nil), m.errors...)
}

// ErrorsFor returns the messages attached to field, in insertion order.
func (m *Memory) ErrorsFor(field string) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []string
	for _, fe := range m.errors {
		if fe.Field == field {
			out = append(out, fe.Message)
		}
	}
	return out
}

func (m *Memory) AppendSuccess(message string) {
	m.mu.Lock()
	m.success = append(m.success, message)
	m.mu.Unlock()
}

// Successes returns every success message appended so far.
func (m *Memory) Successes() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.success...)
}
