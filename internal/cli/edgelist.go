// SPDX-License-Identifier: MIT

package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/katalvlaran/csrkit/coo"
	"github.com/katalvlaran/csrkit/tensor"
)

// readEdgeList parses whitespace-separated "row col" lines into a COO matrix.
// Blank lines and lines starting with '#' or '%' are skipped. A dimension of 0
// is inferred as the largest id + 1.
func readEdgeList(r io.Reader, dt tensor.DType, numRows, numCols int64) (*coo.Matrix, error) {
	var rows, cols []int64
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || text[0] == '#' || text[0] == '%' {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) < 2 {
			return nil, fmt.Errorf("line %d: want \"row col\", got %q", line, text)
		}
		r, err := strconv.ParseInt(fields[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: row: %w", line, err)
		}
		c, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: col: %w", line, err)
		}
		rows = append(rows, r)
		cols = append(cols, c)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan edge list: %w", err)
	}

	if numRows == 0 {
		numRows = maxPlusOne(rows)
	}
	if numCols == 0 {
		numCols = maxPlusOne(cols)
	}
	ra, err := tensor.Own(dt, tensor.Host, rows)
	if err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	ca, err := tensor.Own(dt, tensor.Host, cols)
	if err != nil {
		return nil, fmt.Errorf("cols: %w", err)
	}

	return coo.New(numRows, numCols, ra, ca)
}

func maxPlusOne(ids []int64) int64 {
	var n int64
	for _, v := range ids {
		n = max(n, v+1)
	}

	return n
}
