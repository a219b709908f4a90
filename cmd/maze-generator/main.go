package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/lixenwraith/maze-crawler/maze"
)

func main() {
	if err := run(bufio.NewReader(os.Stdin), os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run drives the prompt loop until the user declines or input ends
func run(r *bufio.Reader, out io.Writer) error {
	for {
		err := session(r, out)
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(out)
			return nil
		}
		if err != nil {
			return err
		}

		again, err := getYesNo(r, out, "\nGenerate another? [Y/n]: ")
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(out)
			return nil
		}
		if err != nil {
			return err
		}
		if !again {
			return nil
		}
	}
}

// session prompts for one maze, generates and prints it
func session(r *bufio.Reader, out io.Writer) error {
	fmt.Fprintln(out, "\n=== MAZE GENERATOR ===")

	w, err := getInt(r, out, "Width [odd, >= 3] (default 35): ", 35)
	if err != nil {
		return err
	}
	h, err := getInt(r, out, "Height [odd, >= 3] (default 19): ", 19)
	if err != nil {
		return err
	}
	braid, err := getFloat(r, out, "Braiding Factor [0.0 - 1.0] (default 0.0): ", 0.0)
	if err != nil {
		return err
	}
	s, err := getInt(r, out, "Seed (default time-based): ", 0)
	if err != nil {
		return err
	}
	seed := int64(s)
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	entrance, err := getYesNo(r, out, "Open an entrance in the border? [Y/n]: ")
	if err != nil {
		return err
	}

	cfg := maze.Config{
		Width:    w,
		Height:   h,
		Braiding: braid,
		Entrance: entrance,
	}

	fmt.Fprintln(out, "\nGenerating...")
	startT := time.Now()
	m, err := maze.Generate(cfg, rand.New(rand.NewSource(seed)))
	dur := time.Since(startT)

	if err != nil {
		fmt.Fprintf(out, "Error: %v\n", err)
		return nil
	}

	fmt.Fprintf(out, "Done in %v (seed %d)\n", dur, seed)
	fmt.Fprintf(out, "Grid Dimensions: %dx%d, open cells: %d\n", m.Width(), m.Height(), m.OpenCount())

	if path := m.SolutionPath(); path != nil {
		fmt.Fprintf(out, "Solution Path Length: %d steps\n", len(path)-1)
	} else {
		fmt.Fprintln(out, "Status: Unsolvable (Isolated Start/End)")
	}

	draw(out, m)
	return nil
}

func draw(w io.Writer, m *maze.Map) {
	pathMap := make(map[maze.Point]bool)
	for _, p := range m.SolutionPath() {
		pathMap[p] = true
	}
	entrance, hasEntrance := m.Entrance()

	var sb strings.Builder
	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			p := maze.Point{X: x, Y: y}

			switch {
			case p == m.Start():
				sb.WriteString("S")
			case p == m.End():
				sb.WriteString("E")
			case hasEntrance && p == entrance:
				sb.WriteString("○")
			case m.At(p) == maze.Wall:
				sb.WriteString("█")
			case pathMap[p]:
				// Lighter char for the path
				sb.WriteString("•")
			default:
				sb.WriteString(" ")
			}
		}
		sb.WriteByte('\n')
	}
	io.WriteString(w, sb.String())
}

// --- Input Helpers ---

// readLine returns one trimmed line. A final line without a newline is still
// returned; io.EOF comes only once nothing is left.
func readLine(r *bufio.Reader, out io.Writer, prompt string) (string, error) {
	fmt.Fprint(out, prompt)
	s, err := r.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || s == "") {
		return "", err
	}
	return strings.TrimSpace(s), nil
}

func getInt(r *bufio.Reader, out io.Writer, prompt string, def int) (int, error) {
	s, err := readLine(r, out, prompt)
	if err != nil {
		return 0, err
	}
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def, nil
	}
	return v, nil
}

func getFloat(r *bufio.Reader, out io.Writer, prompt string, def float64) (float64, error) {
	s, err := readLine(r, out, prompt)
	if err != nil {
		return 0, err
	}
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) {
		return def, nil
	}
	// Clamp
	return math.Max(0, math.Min(1, v)), nil
}

// getYesNo defaults to yes; only an explicit "n" declines
func getYesNo(r *bufio.Reader, out io.Writer, prompt string) (bool, error) {
	s, err := readLine(r, out, prompt)
	if err != nil {
		return false, err
	}
	return strings.ToLower(s) != "n", nil
}
