package recurrence

import "fmt"

// InvalidRuleError signals a malformed recurrence rule. It is raised before any
// instance is produced, so a failed call generates nothing.
type InvalidRuleError struct {
	RuleID string
	Reason string
}

func (e *InvalidRuleError) Error() string {
	return fmt.Sprintf("invalid recurrence rule %q: %s", e.RuleID, e.Reason)
}

// UnboundedExpansionError signals that the window, the rule's end date and its
// occurrence cap are all absent. The engine refuses to run rather than risk
// unbounded generation.
type UnboundedExpansionError struct {
	RuleID     string
	TemplateID string
}

func (e *UnboundedExpansionError) Error() string {
	return fmt.Sprintf("expansion of template %q with rule %q is unbounded: no window end, no rule end date, no occurrence cap", e.TemplateID, e.RuleID)
}

// PersistenceError signals that one instance failed to save. Previously
// persisted instances in the same batch are not rolled back; the caller
// receives the partial list and may retry the remaining window.
type PersistenceError struct {
	TemplateID string
	Date       string
	Err        error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to persist instance of template %q for %s: %v", e.TemplateID, e.Date, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
