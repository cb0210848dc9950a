// Package task processes surveillance datasets in batch, pairing each image
// or video with its query file and writing the evaluation results alongside
// the expected ground truth layout.
package task

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Query is one parking slot query.  Raw is the token exactly as it appeared
// in the query file, Index is the parsed one based slot index or zero when
// the token is not a valid index
type Query struct {
	Raw   string
	Index int
}

// ReadQuery reads a parking query file.  The first line holds the number of
// queries, each following line is a parking slot index starting from one.
// Malformed tokens are kept verbatim with a zero index so results keep line
// parity with the query file
func ReadQuery(file string) ([]Query, error) {

	f, err := os.Open(file)

	if err != nil {
		return nil, fmt.Errorf("error opening file: %w", err)
	}

	defer f.Close()

	scanner := bufio.NewScanner(f)

	var lines []string

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line != "" {
			lines = append(lines, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}

	if len(lines) == 0 {
		return nil, fmt.Errorf("query file %s is empty", file)
	}

	count, err := strconv.Atoi(lines[0])

	if err != nil {
		return nil, fmt.Errorf("query file %s has invalid count line %q",
			file, lines[0])
	}

	if count != len(lines)-1 {
		return nil, fmt.Errorf("query file %s declares %d queries but has %d",
			file, count, len(lines)-1)
	}

	queries := make([]Query, 0, count)

	for _, line := range lines[1:] {
		idx, err := strconv.Atoi(line)

		if err != nil || idx < 1 {
			// not a valid slot index, the token is still echoed in the
			// results file so line parity with the ground truth holds
			idx = 0
		}

		queries = append(queries, Query{Raw: line, Index: idx})
	}

	return queries, nil
}

// WriteResults writes a parking results file.  The layout mirrors the query
// file, each queried token is echoed verbatim followed by its occupancy,
// 1 for occupied and 0 for free.  Slot indices are one based and ordered
// camera nearest first, malformed and out of range queries report free
func WriteResults(file string, queries []Query, slots []bool) error {

	f, err := os.Create(file)

	if err != nil {
		return fmt.Errorf("error creating file: %w", err)
	}

	defer f.Close()

	w := bufio.NewWriter(f)

	fmt.Fprintf(w, "%d\n", len(queries))

	for _, q := range queries {
		status := 0

		if q.Index >= 1 && q.Index <= len(slots) && slots[q.Index-1] {
			status = 1
		}

		fmt.Fprintf(w, "%s %d\n", q.Raw, status)
	}

	return w.Flush()
}

// WriteCount writes a queue length results file containing the single
// vehicle count
func WriteCount(file string, count int) error {

	f, err := os.Create(file)

	if err != nil {
		return fmt.Errorf("error creating file: %w", err)
	}

	defer f.Close()

	_, err = fmt.Fprintf(f, "%d\n", count)

	return err
}
