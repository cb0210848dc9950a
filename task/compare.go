package task

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Comparison summarises a results to ground truth comparison run
type Comparison struct {
	// Matched is the number of results files identical to their ground
	// truth
	Matched int
	// Total is the number of results files with a ground truth file
	Total int
	// Mismatched lists the base names of items that differ
	Mismatched []string
}

// CompareResults compares every results file in resultsDir against the
// matching ground truth file in gtDir.  Results files end in _results.txt,
// ground truth files in _gt.txt, matched by their shared base name
func CompareResults(resultsDir, gtDir string) (Comparison, error) {

	var cmp Comparison

	entries, err := os.ReadDir(resultsDir)

	if err != nil {
		return cmp, fmt.Errorf("error reading results folder: %w", err)
	}

	for _, entry := range entries {

		if entry.IsDir() || !strings.HasSuffix(entry.Name(), "_results.txt") {
			continue
		}

		base := strings.TrimSuffix(entry.Name(), "_results.txt")
		gtPath := filepath.Join(gtDir, base+"_gt.txt")

		if _, err := os.Stat(gtPath); err != nil {
			// no ground truth for this item
			continue
		}

		cmp.Total++

		same, err := sameLines(filepath.Join(resultsDir, entry.Name()), gtPath)

		if err != nil {
			return cmp, err
		}

		if same {
			cmp.Matched++
		} else {
			cmp.Mismatched = append(cmp.Mismatched, base)
		}
	}

	return cmp, nil
}

// sameLines reports whether two files contain the same lines ignoring
// trailing whitespace
func sameLines(fileA, fileB string) (bool, error) {

	linesA, err := readLines(fileA)

	if err != nil {
		return false, err
	}

	linesB, err := readLines(fileB)

	if err != nil {
		return false, err
	}

	if len(linesA) != len(linesB) {
		return false, nil
	}

	for i := range linesA {
		if strings.TrimSpace(linesA[i]) != strings.TrimSpace(linesB[i]) {
			return false, nil
		}
	}

	return true, nil
}

func readLines(file string) ([]string, error) {

	f, err := os.Open(file)

	if err != nil {
		return nil, fmt.Errorf("error opening file: %w", err)
	}

	defer f.Close()

	scanner := bufio.NewScanner(f)

	var lines []string

	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}

	return lines, nil
}
