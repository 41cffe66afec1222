package domain

// Priority is the notification priority tier assigned to a subject.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityNormal   Priority = "normal"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

func (p Priority) String() string {
	return string(p)
}

func (p Priority) IsCritical() bool {
	return p == PriorityCritical
}
