package main

import (
	"testing"

	"github.com/dshills/inkwell/internal/model"
)

func TestCursorCell(t *testing.T) {
	s := model.BasicSchema()
	first, err := s.Node("paragraph", nil, s.Text("ab"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := s.Node("paragraph", nil, s.Text("c"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	doc, err := s.Node("doc", nil, first, second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name string
		pos  int
		x, y int
	}{
		{"inside first block", 2, 1, 0},
		{"opening boundary stays on screen", 0, 0, 0},
		{"second block boundary", 4, 0, 1},
		{"inside second block", 6, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := cursorCell(doc, tt.pos)
			if x != tt.x || y != tt.y {
				t.Errorf("cursorCell(%d) = (%d, %d), want (%d, %d)", tt.pos, x, y, tt.x, tt.y)
			}
		})
	}
}
