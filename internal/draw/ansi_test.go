package draw

import (
	"bytes"
	"strings"
	"testing"
)

func TestANSIPresentsOnlyChanges(t *testing.T) {
	var buf bytes.Buffer
	display := NewANSI(&buf)
	c := newUnitCanvas(4, 2)
	c.FillRect(0, 0, 1, 2, White)

	if err := display.Present(c); err != nil {
		t.Fatal(err)
	}
	first := buf.String()
	if !strings.Contains(first, "\033[2J") {
		t.Error("first frame should clear the terminal")
	}
	if !strings.Contains(first, "\033[1;1H\033[0;38;2;255;255;255m█") {
		t.Errorf("first frame missing white block, got %q", first)
	}

	buf.Reset()
	if err := display.Present(c); err != nil {
		t.Fatal(err)
	}
	if strings.ContainsRune(buf.String(), BlockFull) || strings.Contains(buf.String(), "2J") {
		t.Errorf("unchanged frame should not repaint, got %q", buf.String())
	}

	buf.Reset()
	c.Clear()
	if err := display.Present(c); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "\033[1;1H\033[0m ") {
		t.Errorf("erased cell should be blanked, got %q", buf.String())
	}
}

func TestANSIRedrawsOnResize(t *testing.T) {
	var buf bytes.Buffer
	display := NewANSI(&buf)
	c := newUnitCanvas(4, 2)
	if err := display.Present(c); err != nil {
		t.Fatal(err)
	}
	buf.Reset()

	c.Resize(6, 3)
	c.SetOffset(1, 0)
	if err := display.Present(c); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "\033[2J") {
		t.Error("resize should trigger a full redraw")
	}
}
