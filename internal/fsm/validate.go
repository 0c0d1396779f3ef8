package fsm

import (
	"fmt"
	"strings"
)

// ValidationReport is the outcome of a reachability check.
type ValidationReport struct {
	Initial     StateID
	Reachable   []StateID
	Unreachable []StateID
}

// OK reports whether every registered state is reachable.
func (r *ValidationReport) OK() bool {
	return len(r.Unreachable) == 0
}

// Err returns a combined error naming every unreachable state, or nil.
func (r *ValidationReport) Err() error {
	if r.OK() {
		return nil
	}
	names := make([]string, len(r.Unreachable))
	for i, id := range r.Unreachable {
		names[i] = fmt.Sprintf("state %q is unreachable from %q", id, r.Initial)
	}
	return fmt.Errorf("state graph validation failed:\n  %s", strings.Join(names, "\n  "))
}

// Validate walks the transition graph depth-first from initial and reports
// every registered state it cannot reach. Both lists follow registration
// order. It is a startup and test-time check; it does not touch the
// machine's current state.
func (m *Machine) Validate(initial StateID) (*ValidationReport, error) {
	if _, ok := m.states[initial]; !ok {
		return nil, &UnknownStateError{State: initial}
	}

	visited := map[StateID]bool{initial: true}
	stack := []StateID{initial}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, next := range m.Transitions(id) {
			if !visited[next] {
				visited[next] = true
				stack = append(stack, next)
			}
		}
	}

	report := &ValidationReport{Initial: initial}
	for _, id := range m.order {
		if visited[id] {
			report.Reachable = append(report.Reachable, id)
		} else {
			report.Unreachable = append(report.Unreachable, id)
		}
	}
	return report, nil
}
