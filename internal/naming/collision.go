package naming

import "sync"

// ClaimTracker records which input produced each output path in a run.
// Two jobs writing the same output are not renamed; the later one wins and
// the caller is told who it is about to overwrite. All methods are
// goroutine-safe.
type ClaimTracker struct {
	mu     sync.Mutex
	owners map[string]string // output path → input path that last claimed it
}

// NewClaimTracker creates a ready-to-use tracker.
func NewClaimTracker() *ClaimTracker {
	return &ClaimTracker{owners: make(map[string]string)}
}

// Claim registers input as the writer of output. When a different input
// had already claimed output, its path is returned with collided set.
// Re-claiming by the same input is not a collision.
func (ct *ClaimTracker) Claim(input, output string) (prior string, collided bool) {
	ct.mu.Lock()
	defer ct.mu.Unlock()

	owner, exists := ct.owners[output]
	ct.owners[output] = input
	if !exists || owner == input {
		return "", false
	}
	return owner, true
}

// Len returns the number of distinct output paths claimed.
func (ct *ClaimTracker) Len() int {
	ct.mu.Lock()
	defer ct.mu.Unlock()
	return len(ct.owners)
}
