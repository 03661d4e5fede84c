package ui

import (
	"strings"
	"testing"
)

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "0m"},
		{45, "45m"},
		{60, "1h00m"},
		{214, "3h34m"},
	}
	for _, tt := range tests {
		if got := formatMinutes(tt.minutes); got != tt.want {
			t.Errorf("formatMinutes(%d) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}

func TestUtilizationBar(t *testing.T) {
	DisableColor()
	tests := []struct {
		name  string
		ratio float64
		want  string
	}{
		{"empty", 0, "░░░░░░░░░░"},
		{"half", 0.5, "█████░░░░░"},
		{"rounds", 0.26, "███░░░░░░░"},
		{"full", 1, "██████████"},
		{"clamped", 1.5, "██████████"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := utilizationBar(tt.ratio, 10); got != tt.want {
				t.Errorf("utilizationBar(%v) = %q, want %q", tt.ratio, got, tt.want)
			}
		})
	}
}

func TestWeek(t *testing.T) {
	e := newCLIEnv(t)

	if _, err := e.run("place", "m3", "--auditorium", "a1", "--start", "10:00"); err != nil {
		t.Fatalf("place failed: %v", err)
	}
	if _, err := e.run("place", "m5", "--auditorium", "a2", "--date", "2025-03-16", "--start", "14:00"); err != nil {
		t.Fatalf("place failed: %v", err)
	}
	if _, err := e.run("place", "m3", "--auditorium", "a3", "--date", "2025-03-17", "--start", "14:00"); err != nil {
		t.Fatalf("place failed: %v", err)
	}

	out, err := e.run("week")
	if err != nil {
		t.Fatalf("week failed: %v", err)
	}
	for _, want := range []string{
		"WEEK: Mon Mar 10 - Sun Mar 16, 2025",
		"Fri Mar 14    1 showtime(s)  2h14m",
		"Sun Mar 16    1 showtime(s)  1h54m",
		"Hall 1 (IMAX)",
		"Barbie                  1  2D",
		"Kung Fu Panda 4         1  2D",
		"2 showtime(s), 4h08m on screen",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWeek_Empty(t *testing.T) {
	e := newCLIEnv(t)

	out, err := e.run("week", "--date", "2025-03-20")
	if err != nil {
		t.Fatalf("week failed: %v", err)
	}
	if !strings.Contains(out, "WEEK: Mon Mar 17 - Sun Mar 23, 2025") || !strings.Contains(out, "No showtimes scheduled") {
		t.Errorf("unexpected output:\n%s", out)
	}
}
