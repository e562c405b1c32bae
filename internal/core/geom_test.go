package core

import "testing"

func TestRectIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		expected bool
	}{
		{
			name:     "overlapping rects",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(5, 5, 10, 10),
			expected: true,
		},
		{
			name:     "non-overlapping horizontal",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(15, 0, 10, 10),
			expected: false,
		},
		{
			name:     "non-overlapping vertical",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(0, 15, 10, 10),
			expected: false,
		},
		{
			name:     "adjacent horizontal (no overlap)",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(10, 0, 10, 10),
			expected: false,
		},
		{
			name:     "adjacent vertical (no overlap)",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(0, 10, 10, 10),
			expected: false,
		},
		{
			name:     "contained rect",
			a:        NewRect(0, 0, 20, 20),
			b:        NewRect(5, 5, 5, 5),
			expected: true,
		},
		{
			name:     "single pixel overlap",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(9, 9, 10, 10),
			expected: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := tc.a.Intersects(tc.b)
			if result != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", result, tc.expected)
			}
			// Also test symmetry
			resultReverse := tc.b.Intersects(tc.a)
			if resultReverse != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", resultReverse, tc.expected)
			}
		})
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}
}

func TestViewportProject(t *testing.T) {
	v := NewViewport(200, 100, NewRect(1, 2, 20, 10))

	tests := []struct {
		name       string
		x, y, w, h float32
		expected   Rect
	}{
		{"origin", 0, 0, 20, 20, NewRect(1, 2, 2, 2)},
		{"whole area", 0, 0, 200, 100, NewRect(1, 2, 20, 10)},
		{"sub-cell box still covers a cell", 55, 55, 1, 1, NewRect(6, 7, 1, 1)},
		{"offscreen right", 220, 0, 10, 10, NewRect(23, 2, 1, 1)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := v.Project(tc.x, tc.y, tc.w, tc.h)
			if got != tc.expected {
				t.Errorf("Project(%v, %v, %v, %v) = %+v, expected %+v", tc.x, tc.y, tc.w, tc.h, got, tc.expected)
			}
		})
	}
}

func TestViewportDegenerateWorld(t *testing.T) {
	v := NewViewport(0, 0, NewRect(3, 4, 10, 10))
	x, y := v.Point(50, 50)
	if x != 3 || y != 4 {
		t.Errorf("Point() on empty world = (%d, %d), expected the viewport origin", x, y)
	}
}
