package main

import (
	"bufio"
	"errors"
	"io"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/lixenwraith/maze-crawler/maze"
)

func TestDraw_MarksEndpointsAndPath(t *testing.T) {
	m, err := maze.Generate(maze.Config{Width: 11, Height: 9, Entrance: true}, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	var sb strings.Builder
	draw(&sb, m)
	lines := strings.Split(strings.TrimSuffix(sb.String(), "\n"), "\n")

	if len(lines) != m.Height() {
		t.Fatalf("Expected %d rows, got %d", m.Height(), len(lines))
	}
	for i, line := range lines {
		if n := len([]rune(line)); n != m.Width() {
			t.Errorf("Row %d: expected %d columns, got %d", i, m.Width(), n)
		}
	}

	out := sb.String()
	for _, mark := range []string{"S", "E", "○", "█"} {
		if strings.Count(out, mark) == 0 {
			t.Errorf("Missing %q in output", mark)
		}
	}
	if strings.Count(out, "S") != 1 || strings.Count(out, "E") != 1 {
		t.Error("Expected exactly one start and one end")
	}

	// Path cells exclude both endpoints
	if got, want := strings.Count(out, "•"), len(m.SolutionPath())-2; got != want {
		t.Errorf("Expected %d path marks, got %d", want, got)
	}
}

func TestGetInt(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("42\n\nabc\n"))
	for _, want := range []int{42, 7, 7} {
		v, err := getInt(r, io.Discard, "", 7)
		if err != nil {
			t.Fatalf("getInt: %v", err)
		}
		if v != want {
			t.Errorf("Expected %d, got %d", want, v)
		}
	}

	if _, err := getInt(r, io.Discard, "", 7); !errors.Is(err, io.EOF) {
		t.Errorf("Expected io.EOF once input is exhausted, got %v", err)
	}
}

func TestGetFloat_Clamps(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("1.5\n-2\n0.25\nNaN\n"))
	for _, want := range []float64{1, 0, 0.25, 0.5} {
		v, err := getFloat(r, io.Discard, "", 0.5)
		if err != nil {
			t.Fatalf("getFloat: %v", err)
		}
		if v != want {
			t.Errorf("Expected %v, got %v", want, v)
		}
	}
}

func TestReadLine_FinalLineWithoutNewline(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("n"))
	yes, err := getYesNo(r, io.Discard, "")
	if err != nil || yes {
		t.Errorf("Expected a trailing \"n\" to decline, got %v, %v", yes, err)
	}
	if _, err := getYesNo(r, io.Discard, ""); !errors.Is(err, io.EOF) {
		t.Errorf("Expected io.EOF, got %v", err)
	}
}

func TestRun_StopsAtEndOfInput(t *testing.T) {
	inputs := []string{
		"",
		"9\n",
		"9\n7\n0\n",
		"9\n7\n0\n5\ny\n",
		"9\n7\n0\n5\ny\ny\n",
	}

	for _, in := range inputs {
		in := in
		var out strings.Builder
		done := make(chan error, 1)
		go func() { done <- run(bufio.NewReader(strings.NewReader(in)), &out) }()

		select {
		case err := <-done:
			if err != nil {
				t.Errorf("input %q: run returned %v", in, err)
			}
		case <-time.After(5 * time.Second):
			t.Fatalf("input %q: run did not return at end of input", in)
		}

		if n := strings.Count(out.String(), "=== MAZE GENERATOR ==="); n > 2 {
			t.Errorf("input %q: prompt loop ran %d times", in, n)
		}
	}
}

func TestRun_GeneratesUntilDeclined(t *testing.T) {
	var out strings.Builder
	in := "9\n7\n0\n5\nn\nn\n"
	if err := run(bufio.NewReader(strings.NewReader(in)), &out); err != nil {
		t.Fatalf("run: %v", err)
	}

	got := out.String()
	if n := strings.Count(got, "=== MAZE GENERATOR ==="); n != 1 {
		t.Errorf("Expected one session, got %d", n)
	}
	if !strings.Contains(got, "Grid Dimensions: 9x7") || !strings.Contains(got, "(seed 5)") {
		t.Errorf("Missing generation summary in output:\n%s", got)
	}
	if strings.Contains(got, "○") {
		t.Error("Declined entrance was drawn")
	}
}
