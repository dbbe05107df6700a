package pmpsdb

import (
	"fmt"
	"strconv"
	"strings"
)

// BeamClass is one row of the accelerator's beam class table. Beam
// classes index the permission levels stored in the database exports;
// the table itself is fixed reference data for presentation layers.
// A nil field means the table has no limit for that column.
type BeamClass struct {
	Index       int
	Name        string
	ChargeTime  *float64 // integration window, s
	PulsePeriod *float64 // s
	Charge      *int     // pC
	RateMax     *int     // Hz
	Current     *float64 // nA
	Power       *float64 // W at 4 GeV
	IntEnergy   *float64 // J at 4 GeV
	Notes       string
}

// Columns: index, name, charge time, pulse period, charge, max rate,
// current, power, integrated energy, notes. A dash is "no limit".
const beamClassTable = `
0	Beam Off	0.5	-	0	0	0	0	0	Beam off, Kickers off
1	Kicker STBY	0.5	-	0	0	0	0	0	Beam off, Kickers standby
2	BC1Hz	1	1	350	1	0.35	1.4	1.4	350 pC x 1 Hz
3	BC10Hz	1	0.1	3500	10	3.5	14	14	350 pC X 10 Hz
4	Diagnostic	0.5	-	5000	-	10	40	20	50 pC x 200 Hz
5	BC120Hz	0.2	0.0083	6000	120	30	120	24	250 pC x 120 Hz
6	Tuning	0.2	-	7000	-	35	140	28	100 pC X 350 Hz
7	1% MAP	0.01	-	3000	-	300	1200	12	100 pC X 3 kHz
8	5% MAP	0.003	-	4500	-	1500	6000	18	100 pC x 15 kHz
9	10% MAP	0.001	-	3000	-	3000	12000	12	100 pC X 30 kHz
10	25% MAP	4e-4	-	3000	-	7500	30000	12	100 pC x 75 kHz
11	50% MAP	2e-1	-	3000	-	15000	60000	12	100 pC x 150 kHz
12	100% MAP	2e-4	-	6000	-	30000	120000	24	100 pC x 300 kHz
13	Unlimited	-	-	-	-	-	-	-	-
`

// BeamClasses holds every defined beam class, ordered by index.
var BeamClasses = mustParseBeamClasses(beamClassTable)

// LookupBeamClass returns the beam class with the given index.
func LookupBeamClass(index int) (BeamClass, bool) {
	for _, bc := range BeamClasses {
		if bc.Index == index {
			return bc, true
		}
	}
	return BeamClass{}, false
}

func mustParseBeamClasses(table string) []BeamClass {
	var classes []BeamClass
	for _, line := range strings.Split(table, "\n") {
		if line == "" {
			continue
		}
		bc, err := parseBeamClassLine(line)
		if err != nil {
			panic(fmt.Sprintf("pmpsdb: bad beam class table: %v", err))
		}
		classes = append(classes, bc)
	}
	return classes
}

func parseBeamClassLine(line string) (BeamClass, error) {
	cells := strings.Split(line, "\t")
	if len(cells) != 10 {
		return BeamClass{}, fmt.Errorf("expected 10 cells, got %d in %q", len(cells), line)
	}
	index, err := strconv.Atoi(cells[0])
	if err != nil {
		return BeamClass{}, err
	}
	bc := BeamClass{Index: index, Name: cells[1]}
	if bc.ChargeTime, err = optFloat(cells[2]); err != nil {
		return BeamClass{}, err
	}
	if bc.PulsePeriod, err = optFloat(cells[3]); err != nil {
		return BeamClass{}, err
	}
	if bc.Charge, err = optInt(cells[4]); err != nil {
		return BeamClass{}, err
	}
	if bc.RateMax, err = optInt(cells[5]); err != nil {
		return BeamClass{}, err
	}
	if bc.Current, err = optFloat(cells[6]); err != nil {
		return BeamClass{}, err
	}
	if bc.Power, err = optFloat(cells[7]); err != nil {
		return BeamClass{}, err
	}
	if bc.IntEnergy, err = optFloat(cells[8]); err != nil {
		return BeamClass{}, err
	}
	if cells[9] != "-" {
		bc.Notes = cells[9]
	}
	return bc, nil
}

func optFloat(cell string) (*float64, error) {
	if cell == "-" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func optInt(cell string) (*int, error) {
	if cell == "-" {
		return nil, nil
	}
	v, err := strconv.Atoi(cell)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
