package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	customerrors "workshop-quote/errors"
	"workshop-quote/models"
)

// ParseItems reads a contractual production sheet:
//
//	name, required_prisoners, minutes_per_unit[, assigned_prisoners]
//
// Lines starting with '#' are headers/comments. A missing assigned_prisoners
// column means the item shares the workshop.
func ParseItems(r io.Reader) ([]models.ProductItem, error) {
	var items []models.ProductItem
	err := readSheet(r, func(lineNum int, record []string) error {
		if len(record) != 3 && len(record) != 4 {
			return &customerrors.ParseError{Line: lineNum, Record: record, Err: customerrors.ErrInvalidFieldCount}
		}

		item := models.ProductItem{Name: record[0]}
		var err error
		if item.RequiredPrisoners, err = atoi(lineNum, record, 1); err != nil {
			return err
		}
		if item.MinutesPerUnit, err = atof(lineNum, record, 2); err != nil {
			return err
		}
		if len(record) == 4 && record[3] != "" {
			if item.AssignedPrisoners, err = atoi(lineNum, record, 3); err != nil {
				return err
			}
		}
		items = append(items, item)
		return nil
	})
	return items, err
}

// ParseAdhocLines reads an ad-hoc job sheet:
//
//	name, units_requested, prisoners_per_item, minutes_per_item, deadline
//
// with deadlines as YYYY-MM-DD.
func ParseAdhocLines(r io.Reader) ([]models.AdhocLine, error) {
	var lines []models.AdhocLine
	err := readSheet(r, func(lineNum int, record []string) error {
		if len(record) != 5 {
			return &customerrors.ParseError{Line: lineNum, Record: record, Err: customerrors.ErrInvalidFieldCount}
		}

		line := models.AdhocLine{Name: record[0]}
		var err error
		if line.UnitsRequested, err = atoi(lineNum, record, 1); err != nil {
			return err
		}
		if line.PrisonersPerItem, err = atoi(lineNum, record, 2); err != nil {
			return err
		}
		if line.MinutesPerItem, err = atof(lineNum, record, 3); err != nil {
			return err
		}
		line.Deadline, err = time.Parse(dateLayout, record[4])
		if err != nil {
			return &customerrors.ParseError{
				Line:   lineNum,
				Record: record,
				Err:    fmt.Errorf("%w: %v", customerrors.ErrInvalidDate, err),
			}
		}
		lines = append(lines, line)
		return nil
	})
	return lines, err
}

// readSheet calls fn for every non-comment record with trimmed fields.
func readSheet(r io.Reader, fn func(lineNum int, record []string) error) error {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	reader.Comment = '#'

	for {
		record, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("error reading CSV: %w", err)
		}
		lineNum, _ := reader.FieldPos(0)
		for i := range record {
			record[i] = strings.TrimSpace(record[i])
		}
		if err := fn(lineNum, record); err != nil {
			return err
		}
	}
}

func atoi(lineNum int, record []string, field int) (int, error) {
	v, err := strconv.Atoi(record[field])
	if err != nil {
		return 0, &customerrors.ParseError{
			Line:   lineNum,
			Record: record,
			Err:    fmt.Errorf("%w: %v", customerrors.ErrInvalidNumber, err),
		}
	}
	return v, nil
}

func atof(lineNum int, record []string, field int) (float64, error) {
	v, err := strconv.ParseFloat(record[field], 64)
	if err != nil {
		return 0, &customerrors.ParseError{
			Line:   lineNum,
			Record: record,
			Err:    fmt.Errorf("%w: %v", customerrors.ErrInvalidNumber, err),
		}
	}
	return v, nil
}
