package viz

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/algoviz/internal/engine"
)

// FrameMsg carries one engine frame into the Bubble Tea loop.
type FrameMsg engine.Frame

// Bridge is an engine.Renderer that forwards frames to a tea.Program. Frames
// rendered before Attach are discarded.
type Bridge struct {
	mu sync.Mutex
	p  *tea.Program
}

func (b *Bridge) Attach(p *tea.Program) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.p = p
}

func (b *Bridge) Render(f engine.Frame) error {
	b.mu.Lock()
	p := b.p
	b.mu.Unlock()
	if p != nil {
		p.Send(FrameMsg(f))
	}
	return nil
}

// Run drives the interactive UI until the user quits. eng must have been
// built with b as its renderer.
func Run(eng *engine.Engine, b *Bridge, m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	b.Attach(p)
	defer b.Attach(nil)

	_, err := p.Run()
	eng.Reset()
	return err
}
