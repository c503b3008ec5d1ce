package recursiveimport

import "sync"

// Recorder wraps a Resolver and remembers every name it was asked to resolve.
type Recorder struct {
	next Resolver

	mu    sync.Mutex
	names []string
}

// NewRecorder wraps next.
func NewRecorder(next Resolver) *Recorder {
	return &Recorder{next: next}
}

// Resolve records name and delegates to the wrapped resolver.
func (r *Recorder) Resolve(name string) (Handle, error) {
	r.mu.Lock()
	r.names = append(r.names, name)
	r.mu.Unlock()
	return r.next.Resolve(name)
}

// Names returns the recorded names in call order.
func (r *Recorder) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.names...)
}
