package domain

// Worker is a team member: basic contact data plus workload counters
// maintained by the backend.
type Worker struct {
	ID           string
	Name         string
	Role         string // trade/position label, e.g. "Electrician"
	Phone        string
	Contact      string // email or other contact handle
	Skills       []string
	Availability string // free-form label, e.g. "Full-time", "Weekends"

	AssignedProjects []string
	TasksCompleted   int
	TasksInProgress  int
	Efficiency       float64 // 0..100 score from the backend
}

// Clone returns a copy of the worker with no shared slices.
func (w Worker) Clone() Worker {
	cp := w
	cp.Skills = append([]string(nil), w.Skills...)
	cp.AssignedProjects = append([]string(nil), w.AssignedProjects...)
	return cp
}
