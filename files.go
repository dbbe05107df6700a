package pmpsdb

import (
	"context"
	"strconv"
	"strings"
	"time"
)

// FileRecord describes one file stored on a PLC, as learned from the
// FTP LIST command. For database exports the create time is the last
// time the file was uploaded.
type FileRecord struct {
	Filename   string
	CreateTime time.Time
	Size       int64
}

// ParseListLine builds a FileRecord from one line of LIST output.
//
// The PLCs report DOS-style lines with exactly four fields:
//
//	11-04-22  13:59                16439 kfe-motion.json
//
// Two-digit years are interpreted as 2000+YY; the devices will not
// outlive the century this breaks in. Any deviation from the format is
// a *ParseError rather than a guess.
func ParseListLine(line string) (FileRecord, error) {
	fields := strings.Fields(line)
	if len(fields) != 4 {
		return FileRecord{}, &ParseError{
			Input:  line,
			Reason: "expected 4 fields (date, time, size, filename), got " + strconv.Itoa(len(fields)),
		}
	}

	month, day, year, err := parseListDate(fields[0])
	if err != nil {
		return FileRecord{}, &ParseError{Input: line, Reason: "bad date field", Err: err}
	}
	hour, minute, err := parseListTime(fields[1])
	if err != nil {
		return FileRecord{}, &ParseError{Input: line, Reason: "bad time field", Err: err}
	}
	size, err := strconv.ParseInt(fields[2], 10, 64)
	if err != nil || size < 0 {
		return FileRecord{}, &ParseError{Input: line, Reason: "bad size field", Err: err}
	}

	return FileRecord{
		Filename:   fields[3],
		CreateTime: time.Date(2000+year, time.Month(month), day, hour, minute, 0, 0, time.Local),
		Size:       size,
	}, nil
}

func parseListDate(s string) (month, day, year int, err error) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return 0, 0, 0, &ParseError{Input: s, Reason: "expected MM-DD-YY"}
	}
	if month, err = atoiRange(parts[0], 1, 12); err != nil {
		return 0, 0, 0, err
	}
	if day, err = atoiRange(parts[1], 1, 31); err != nil {
		return 0, 0, 0, err
	}
	if year, err = atoiRange(parts[2], 0, 99); err != nil {
		return 0, 0, 0, err
	}
	return month, day, year, nil
}

func parseListTime(s string) (hour, minute int, err error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, &ParseError{Input: s, Reason: "expected HH:MM"}
	}
	if hour, err = atoiRange(parts[0], 0, 23); err != nil {
		return 0, 0, err
	}
	if minute, err = atoiRange(parts[1], 0, 59); err != nil {
		return 0, 0, err
	}
	return hour, minute, nil
}

func atoiRange(s string, lo, hi int) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < lo || n > hi {
		return 0, &ParseError{Input: s, Reason: "out of range"}
	}
	return n, nil
}

// ListFilenames returns the filenames currently saved on the PLC, in
// the order the PLC reports them.
func (c *Client) ListFilenames(ctx context.Context, host, dir string) ([]string, error) {
	var names []string
	err := c.withSession(ctx, host, dir, func(conn serverConn) error {
		var err error
		names, err = conn.NameList()
		return err
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}

// ListFileInfo returns a FileRecord for every file on the PLC. The
// first unparseable listing line fails the whole call; tolerating bad
// lines is the caller's decision.
func (c *Client) ListFileInfo(ctx context.Context, host, dir string) ([]FileRecord, error) {
	var lines []string
	err := c.withSession(ctx, host, dir, func(conn serverConn) error {
		var err error
		lines, err = conn.List()
		return err
	})
	if err != nil {
		return nil, err
	}

	records := make([]FileRecord, 0, len(lines))
	for _, line := range lines {
		rec, err := ParseListLine(line)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}
