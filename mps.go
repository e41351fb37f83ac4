/*
 Copyright (C) 2024 Douglas Wayne Potter

 This program is free software: you can redistribute it and/or modify
 it under the terms of the GNU Affero General Public License as
 published by the Free Software Foundation, either version 3 of the
 License, or (at your option) any later version.

 This program is distributed in the hope that it will be useful,
 but WITHOUT ANY WARRANTY; without even the implied warranty of
 MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 GNU Affero General Public License for more details.

 You should have received a copy of the GNU Affero General Public License
 along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

package jsolve

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

type mpsSection int

const (
	sectionNone mpsSection = iota
	sectionName
	sectionObjSense
	sectionObjName
	sectionRows
	sectionColumns
	sectionRHS
	sectionBounds
	sectionEnd
)

func mpsSectionFromHeader(word string) (mpsSection, error) {
	switch word {
	case "NAME":
		return sectionName, nil
	case "OBJSENSE":
		return sectionObjSense, nil
	case "OBJNAME":
		return sectionObjName, nil
	case "ROWS":
		return sectionRows, nil
	case "COLUMNS":
		return sectionColumns, nil
	case "RHS":
		return sectionRHS, nil
	case "BOUNDS":
		return sectionBounds, nil
	case "ENDATA":
		return sectionEnd, nil
	case "RANGES":
		return sectionNone, fmt.Errorf("%w: RANGES", ErrUnsupportedSection)
	default:
		return sectionNone, fmt.Errorf("%w: %q", ErrUnknownSection, word)
	}
}

// ReadMPS reads a Model from a fixed-field MPS file at path. Only
// NAME, OBJSENSE, OBJNAME, ROWS, COLUMNS, RHS, BOUNDS and ENDATA are
// supported; RANGES is rejected. Only one N (objective) row is
// supported. BOUNDS supports LO, UP, FX and FR; UP with a negative
// value is rejected, matching the revised simplex driver's assumption
// that every variable's domain starts at a finite, non-negative point
// (see internal/preprocess).
func ReadMPS(path string) (*Model, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var model *Model
	section := sectionNone
	objectiveRow := ""

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "*") {
			continue
		}

		isHeader := !strings.HasPrefix(line, " ") && !strings.HasPrefix(line, "\t")
		fields := strings.Fields(line)

		if isHeader {
			header, err := mpsSectionFromHeader(fields[0])
			if err != nil {
				return nil, err
			}
			section = header
			slog.Debug("mps reader", "section", fields[0])

			if section == sectionName {
				name := ""
				if len(fields) > 1 {
					name = fields[1]
				}
				model = NewModel(Min, name)
			}
			if section == sectionEnd {
				break
			}
			continue
		}

		if model == nil {
			return nil, fmt.Errorf("%w: data record before NAME section", ErrMalformedRecord)
		}

		switch section {
		case sectionObjSense:
			if err := processObjSense(model, fields); err != nil {
				return nil, err
			}
		case sectionObjName:
			if len(fields) != 1 {
				return nil, fmt.Errorf("%w: OBJNAME entry %q", ErrMalformedRecord, line)
			}
			objectiveRow = fields[0]
		case sectionRows:
			if err := processRows(model, fields, &objectiveRow); err != nil {
				return nil, err
			}
		case sectionColumns:
			if err := processColumns(model, fields, objectiveRow); err != nil {
				return nil, err
			}
		case sectionRHS:
			if err := processRHS(model, fields); err != nil {
				return nil, err
			}
		case sectionBounds:
			if err := processBounds(model, fields); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("%w: data record outside a data section: %q", ErrMalformedRecord, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if model == nil {
		return nil, ErrNoModel
	}
	model.SetObjectiveName(objectiveRow)

	return model, nil
}

func processObjSense(model *Model, fields []string) error {
	if len(fields) != 1 {
		return fmt.Errorf("%w: OBJSENSE entry %v", ErrMalformedRecord, fields)
	}
	switch strings.ToUpper(fields[0]) {
	case "MAX", "MAXIMIZE":
		model.sense = Max
	case "MIN", "MINIMIZE":
		model.sense = Min
	default:
		return fmt.Errorf("%w: OBJSENSE value %q", ErrMalformedRecord, fields[0])
	}
	return nil
}

func processRows(model *Model, fields []string, objectiveRow *string) error {
	if len(fields) != 2 {
		return fmt.Errorf("%w: ROWS entry %v", ErrMalformedRecord, fields)
	}
	rowType, name := fields[0], fields[1]

	switch rowType {
	case "N":
		if *objectiveRow == "" {
			*objectiveRow = name
		}
	case "L":
		_, err := model.MakeConstraint(Less, name)
		return err
	case "G":
		_, err := model.MakeConstraint(Great, name)
		return err
	case "E":
		_, err := model.MakeConstraint(Equal, name)
		return err
	default:
		return fmt.Errorf("%w: ROWS type %q", ErrMalformedRecord, rowType)
	}
	return nil
}

func processColumns(model *Model, fields []string, objectiveRow string) error {
	if len(fields) == 0 {
		return fmt.Errorf("%w: empty COLUMNS entry", ErrMalformedRecord)
	}
	if strings.Contains(strings.Join(fields, " "), "MARKER") {
		return nil
	}
	if len(fields) != 3 && len(fields) != 5 {
		return fmt.Errorf("%w: COLUMNS entry %v", ErrMalformedRecord, fields)
	}

	varName := fields[0]
	v := model.GetVariable(varName)
	if v == nil {
		var err error
		v, err = model.MakeVariable(Linear, varName)
		if err != nil {
			return err
		}
	}

	for i := 1; i < len(fields); i += 2 {
		rowName := fields[i]
		value, err := strconv.ParseFloat(fields[i+1], 64)
		if err != nil {
			return fmt.Errorf("%w: COLUMNS value %q", ErrMalformedRecord, fields[i+1])
		}

		if rowName == objectiveRow {
			v.SetCost(value)
			continue
		}

		c := model.GetConstraint(rowName)
		if c == nil {
			return fmt.Errorf("%w: %q", ErrUnknownRow, rowName)
		}
		c.AddToLHS(value, v)
	}
	return nil
}

// processRHS expects fields[0] to be the RHS vector name, followed by
// one or two (row, value) pairs.
func processRHS(model *Model, fields []string) error {
	if len(fields) != 3 && len(fields) != 5 {
		return fmt.Errorf("%w: RHS entry %v", ErrMalformedRecord, fields)
	}

	for i := 1; i < len(fields)-1; i += 2 {
		rowName := fields[i]
		value, err := strconv.ParseFloat(fields[i+1], 64)
		if err != nil {
			return fmt.Errorf("%w: RHS value %q", ErrMalformedRecord, fields[i+1])
		}
		c := model.GetConstraint(rowName)
		if c == nil {
			return fmt.Errorf("%w: %q", ErrUnknownRow, rowName)
		}
		c.SetRHS(value)
	}
	return nil
}

func processBounds(model *Model, fields []string) error {
	if len(fields) != 3 && len(fields) != 4 {
		return fmt.Errorf("%w: BOUNDS entry %v", ErrMalformedRecord, fields)
	}

	boundType := strings.ToUpper(fields[0])
	colName := fields[1]
	if len(fields) == 4 || (boundType == "FR" && len(fields) == 3) {
		colName = fields[2]
	}

	v := model.GetVariable(colName)
	if v == nil {
		return fmt.Errorf("%w: %q", ErrUnknownColumn, colName)
	}

	valueField := ""
	if len(fields) == 4 {
		valueField = fields[3]
	} else if boundType != "FR" {
		valueField = fields[2]
	}

	var value float64
	var err error
	if valueField != "" {
		value, err = strconv.ParseFloat(valueField, 64)
		if err != nil {
			return fmt.Errorf("%w: BOUNDS value %q", ErrMalformedRecord, valueField)
		}
	}

	switch boundType {
	case "LO":
		v.SetLowerBound(value)
	case "UP":
		if value < 0 {
			return fmt.Errorf("%w: negative UP bound for %q", ErrUnsupportedBound, colName)
		}
		v.SetUpperBound(value)
	case "FX":
		if value < 0 {
			return fmt.Errorf("%w: negative FX bound for %q", ErrUnsupportedBound, colName)
		}
		v.SetLowerBound(value)
		v.SetUpperBound(value)
	case "FR":
		v.SetFree()
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedBound, boundType)
	}
	return nil
}
