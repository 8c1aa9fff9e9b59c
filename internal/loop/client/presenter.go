package client

import (
	"io"

	"github.com/tomz197/smashtennis/internal/draw"
)

// Presenter puts finished canvases on a terminal.
type Presenter interface {
	// Size reports the terminal size in cells.
	Size() (cols, rows int, err error)
	// Begin prepares the terminal (hidden cursor, cleared screen).
	Begin() error
	// Present shows canvas. clear asks for the whole terminal to be wiped
	// first, e.g. after a resize left residue outside the render area.
	Present(canvas *draw.Canvas, clear bool) error
	// End restores the terminal.
	End() error
}

// ANSIPresenter writes frames as ANSI escape sequences, batched through a
// ChunkWriter. It works on any byte stream: a raw local terminal or an SSH
// session.
type ANSIPresenter struct {
	cw   *draw.ChunkWriter
	size draw.TermSizeFunc
}

var _ Presenter = (*ANSIPresenter)(nil)

// NewANSIPresenter creates a presenter writing to w. A nil size function
// means the size of os.Stdout.
func NewANSIPresenter(w io.Writer, size draw.TermSizeFunc) *ANSIPresenter {
	if size == nil {
		size = draw.DefaultTermSizeFunc
	}
	return &ANSIPresenter{cw: draw.NewChunkWriter(w), size: size}
}

func (p *ANSIPresenter) Size() (int, int, error) {
	return p.size()
}

func (p *ANSIPresenter) Begin() error {
	p.cw.WriteString(draw.SeqHideCursor + draw.SeqClearScreen)
	return p.cw.Flush()
}

func (p *ANSIPresenter) Present(canvas *draw.Canvas, clear bool) error {
	if clear {
		p.cw.WriteString(draw.SeqClearScreen)
		canvas.ForceRedraw()
	}
	if err := canvas.Render(p.cw); err != nil {
		return err
	}
	// Draw border when terminal exceeds the render area
	canvas.RenderBorder(p.cw)
	return p.cw.Flush()
}

func (p *ANSIPresenter) End() error {
	p.cw.WriteString(draw.SeqClearScreen + draw.SeqShowCursor)
	return p.cw.Flush()
}
