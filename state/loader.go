package state

import "sync"

// Loader is a busy indicator for long running media operations. Callers show
// it before starting a fetch or decode and close it when done. Nested shows
// are counted, so the indicator stays visible until the last one closes.
type Loader struct {
	mu       sync.Mutex
	depth    int
	onChange func(visible bool)
}

// NewLoader returns hidden loader. onChange, when not nil, is called every
// time visibility flips, under the loader lock.
func NewLoader(onChange func(visible bool)) *Loader {
	return &Loader{onChange: onChange}
}

func (l *Loader) Show() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.depth++
	if l.depth == 1 && l.onChange != nil {
		l.onChange(true)
	}
}

// Close hides loader. Unbalanced calls are ignored.
func (l *Loader) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.depth == 0 {
		return
	}
	l.depth--
	if l.depth == 0 && l.onChange != nil {
		l.onChange(false)
	}
}

func (l *Loader) Visible() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.depth > 0
}

// Track keeps loader visible while fn runs.
func (l *Loader) Track(fn func() error) error {
	l.Show()
	defer l.Close()
	return fn()
}
