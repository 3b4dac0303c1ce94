package rebalance

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// DivisorTable maps an account holder's age to the IRS distribution-period
// divisor. Retrieved from IRS publication 590-B, appendix B; may need to be
// periodically updated.
type DivisorTable map[int]float64

// ParseDivisorTable reads a delimited divisor table from r. The first
// delimited row is the header and must start with the columns "Age" and
// "Distribution Period"; rows without a delimiter are ignored.
func ParseDivisorTable(r io.Reader) (DivisorTable, error) {
	table := make(DivisorTable)
	var header []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		row := scanner.Text()
		if !strings.Contains(row, ",") {
			continue
		}
		fields := strings.Split(row, ",")
		if len(fields) < 2 {
			continue
		}
		if header == nil {
			header = fields
			if strings.TrimSpace(header[0]) != "Age" || strings.TrimSpace(header[1]) != "Distribution Period" {
				return nil, fmt.Errorf("distribution table header %q does not match [Age, Distribution Period]", row)
			}
			continue
		}
		age, err := strconv.Atoi(strings.TrimSpace(fields[0]))
		if err != nil {
			return nil, fmt.Errorf("invalid age %q: %w", fields[0], err)
		}
		divisor, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid distribution period %q: %w", fields[1], err)
		}
		table[age] = divisor
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading distribution table: %w", err)
	}
	return table, nil
}

// MinAge returns the lowest age present in the table, or 0 for an empty
// table.
func (t DivisorTable) MinAge() int {
	minAge := 0
	for age := range t {
		if minAge == 0 || age < minAge {
			minAge = age
		}
	}
	return minAge
}
