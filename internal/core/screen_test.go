package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(10, 5)

	if s.Width() != 10 {
		t.Errorf("Expected width 10, got %d", s.Width())
	}
	if s.Height() != 5 {
		t.Errorf("Expected height 5, got %d", s.Height())
	}

	// Screen should be filled with spaces
	for y := 0; y < 5; y++ {
		for x := 0; x < 10; x++ {
			if s.Get(x, y) != ' ' {
				t.Errorf("Expected space at (%d,%d), got %q", x, y, s.Get(x, y))
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 5)

	s.Set(3, 2, '@')
	if s.Get(3, 2) != '@' {
		t.Errorf("Expected '@' at (3,2), got %q", s.Get(3, 2))
	}

	// Out of bounds writes are silently ignored
	s.Set(-1, 0, 'x')
	s.Set(10, 0, 'x')
	s.Set(0, -1, 'x')
	s.Set(0, 5, 'x')

	// Out of bounds reads return space
	if s.Get(-1, 0) != ' ' {
		t.Error("Out of bounds read should return space")
	}
	if s.Get(10, 0) != ' ' {
		t.Error("Out of bounds read should return space")
	}
}

func TestScreenSetColored(t *testing.T) {
	s := NewScreen(10, 5)

	s.SetColored(4, 1, '*', ColorRed)
	cell := s.GetCell(4, 1)
	if cell.Rune != '*' || cell.Color != ColorRed {
		t.Errorf("Expected red '*', got %q with color %d", cell.Rune, cell.Color)
	}

	// Plain Set keeps the default color
	s.Set(5, 1, '#')
	if got := s.GetCell(5, 1).Color; got != ColorDefault {
		t.Errorf("Expected default color, got %d", got)
	}

	// Out of bounds cell read returns default space
	cell = s.GetCell(99, 99)
	if cell.Rune != ' ' || cell.Color != ColorDefault {
		t.Error("Out of bounds GetCell should return default space")
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(10, 5)

	s.SetColored(3, 2, '@', ColorGreen)
	s.Clear()

	cell := s.GetCell(3, 2)
	if cell.Rune != ' ' || cell.Color != ColorDefault {
		t.Error("Clear should reset cells to default spaces")
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 5)
	s.Set(2, 2, '@')
	s.Set(9, 4, '#')

	s.Resize(5, 3)

	if s.Width() != 5 || s.Height() != 3 {
		t.Errorf("Expected 5x3 after resize, got %dx%d", s.Width(), s.Height())
	}
	// Content within the new bounds is preserved
	if s.Get(2, 2) != '@' {
		t.Errorf("Expected '@' preserved at (2,2), got %q", s.Get(2, 2))
	}

	// Growing back leaves new area blank
	s.Resize(10, 5)
	if s.Get(2, 2) != '@' {
		t.Error("Content should survive growing resize")
	}
	if s.Get(9, 4) != ' ' {
		t.Error("Area outside previous bounds should be blank")
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(10, 3)

	s.DrawText(2, 1, "hello")
	if s.Row(1) != "  hello   " {
		t.Errorf("Unexpected row content %q", s.Row(1))
	}

	// Text is clipped at the right edge
	s.DrawText(7, 0, "world")
	if s.Row(0) != "       wor" {
		t.Errorf("Expected clipped text, got %q", s.Row(0))
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(11, 3)

	s.DrawTextCentered(1, "abc")
	if s.Get(4, 1) != 'a' || s.Get(5, 1) != 'b' || s.Get(6, 1) != 'c' {
		t.Errorf("Text not centered: row is %q", s.Row(1))
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(10, 5)

	s.DrawBox(NewRect(1, 1, 5, 3))

	if s.Get(1, 1) != '┌' || s.Get(5, 1) != '┐' {
		t.Error("Top corners not drawn")
	}
	if s.Get(1, 3) != '└' || s.Get(5, 3) != '┘' {
		t.Error("Bottom corners not drawn")
	}
	if s.Get(3, 1) != '─' || s.Get(1, 2) != '│' {
		t.Error("Edges not drawn")
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(3, 2)
	s.Set(0, 0, 'a')
	s.Set(2, 1, 'b')

	got := s.String()
	want := "a  \n  b"
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if strings.Count(got, "\n") != 1 {
		t.Errorf("Expected 1 newline, got %d", strings.Count(got, "\n"))
	}
}

func TestScreenRowBounds(t *testing.T) {
	s := NewScreen(4, 2)
	if s.Row(-1) != "    " {
		t.Error("Out of bounds row should be all spaces")
	}
	if s.Row(2) != "    " {
		t.Error("Out of bounds row should be all spaces")
	}
}
