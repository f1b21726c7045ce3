// Package display draws the pane tree onto a terminal screen. It is a pure
// consumer of editor state: frames come from the pane tree, text from the
// buffers, colors from the style stack each buffer carries.
package display

import (
	"github.com/gdamore/tcell/v2"

	"github.com/badred/badred/internal/buffer"
	"github.com/badred/badred/internal/editor"
	"github.com/badred/badred/internal/logger"
	"github.com/badred/badred/internal/pane"
	"github.com/badred/badred/internal/styling"
)

// Render draws every leaf pane and places the terminal cursor in the active
// one.
func Render(s tcell.Screen, st *editor.State) {
	w, h := s.Size()
	if w <= 0 || h <= 0 {
		return
	}
	root := pane.Frame{Rows: uint16(h), Cols: uint16(w)}

	s.Clear()
	s.HideCursor()
	for _, id := range st.Panes.Leaves() {
		f, err := st.Panes.Frame(id, root)
		if err != nil {
			logger.Warn("frame for leaf failed", "pane", id, "error", err.Error())
			continue
		}
		renderLeaf(s, st, id, f)
	}
	s.Show()
}

func renderLeaf(s tcell.Screen, st *editor.State, id int, f pane.Frame) {
	if f.Rows == 0 || f.Cols == 0 {
		return
	}
	bufID, err := st.Panes.BufferID(id)
	if err != nil {
		return
	}
	buf, err := st.Buffer(bufID)
	if err != nil {
		return
	}
	topLine, _, _ := st.Panes.TopLine(id)
	wrap, _, _ := st.Panes.Wrap(id)

	row := 0
	for line := int(topLine); row < int(f.Rows) && line < buf.LineCount(); line++ {
		content, err := buf.LineContent(line)
		if err != nil {
			break
		}
		rows := drawLine(s, st, buf, f, row, content, wrap)
		if id == st.ActivePane && line == buf.CursorLine() {
			placeCursor(s, st, buf, f, row, content)
		}
		row += rows
	}
	buf.ClearRenderDirty()
}

// drawLine paints one buffer line starting at the given pane row and
// returns how many rows it used (more than one only when wrapping).
func drawLine(s tcell.Screen, st *editor.State, buf *buffer.Buffer, f pane.Frame, row int, content string, wrap bool) int {
	styles := lineStyles(buf, content, st.Styles)
	cells := expand(content, int(st.Options.TabWidth), styles)

	x, used := 0, 1
	for _, c := range cells {
		if x >= int(f.Cols) {
			if !wrap || row+used >= int(f.Rows) {
				break
			}
			x = 0
			used++
		}
		s.SetContent(int(f.X)+x, int(f.Y)+row+used-1, c.r, nil, c.style)
		x++
	}
	return used
}

type cell struct {
	r     rune
	style tcell.Style
}

// expand turns a line into screen cells, widening tabs and attaching the
// resolved style per source byte.
func expand(content string, tabWidth int, styles []tcell.Style) []cell {
	if tabWidth <= 0 {
		tabWidth = 1
	}
	var cells []cell
	byteIndex := 0
	for _, r := range content {
		style := tcell.StyleDefault
		if byteIndex < len(styles) {
			style = styles[byteIndex]
		}
		if r == '\t' {
			for pad := tabWidth - len(cells)%tabWidth; pad > 0; pad-- {
				cells = append(cells, cell{r: ' ', style: style})
			}
		} else {
			cells = append(cells, cell{r: r, style: style})
		}
		byteIndex += len(string(r))
	}
	return cells
}

// lineStyles resolves the buffer's style stack against one line, producing
// a per-byte style. Later pushes win on overlap.
func lineStyles(buf *buffer.Buffer, content string, names styling.TextStyleMap) []tcell.Style {
	styles := make([]tcell.Style, len(content))
	for i := range styles {
		styles[i] = tcell.StyleDefault
	}
	for _, st := range buf.Styles() {
		resolved, ok := names[st.Name]
		if !ok {
			continue
		}
		style := toTcell(resolved)
		for i := 0; i < len(content); {
			loc := st.Regex.FindStringIndex(content[i:])
			if loc == nil {
				i++
				continue
			}
			for j := i; j < i+loc[1]; j++ {
				styles[j] = style
			}
			if loc[1] == 0 {
				i++
			} else {
				i += loc[1]
			}
		}
	}
	return styles
}

func toTcell(ts styling.TextStyle) tcell.Style {
	style := tcell.StyleDefault.Foreground(
		tcell.NewRGBColor(int32(ts.Foreground.R), int32(ts.Foreground.G), int32(ts.Foreground.B)))
	if ts.Background != nil {
		style = style.Background(
			tcell.NewRGBColor(int32(ts.Background.R), int32(ts.Background.G), int32(ts.Background.B)))
	}
	return style
}

// placeCursor positions the terminal cursor on the buffer cursor, honoring
// tab expansion. Wrapped continuation rows are not chased; the cursor sits
// on the first visual row of its line.
func placeCursor(s tcell.Screen, st *editor.State, buf *buffer.Buffer, f pane.Frame, row int, content string) {
	start, err := buf.LineStart(buf.CursorLine())
	if err != nil {
		return
	}
	tabWidth := int(st.Options.TabWidth)
	if tabWidth <= 0 {
		tabWidth = 1
	}
	col := 0
	byteIndex := start
	for _, r := range content {
		if byteIndex >= buf.Cursor() {
			break
		}
		if r == '\t' {
			col += tabWidth - col%tabWidth
		} else {
			col++
		}
		byteIndex += len(string(r))
	}
	if col >= int(f.Cols) {
		col = int(f.Cols) - 1
	}
	s.ShowCursor(int(f.X)+col, int(f.Y)+row)
}
