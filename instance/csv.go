package instance

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/voltroute/voltroute/genome"
)

// RowError describes one CSV row that could not be turned into a node.
// Malformed rows are reported, not silently dropped: the caller decides
// whether a partially loaded table is acceptable.
type RowError struct {
	// Line is the 1-based line number in the input (header included).
	Line int

	// Reason is a short human-readable description of the defect.
	Reason string
}

func (e RowError) String() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

// LoadNodesCSV reads a nodes table from CSV. Header names are matched
// case-insensitively and permissively: the identifier column may be named
// index/id/node/name, coordinates x/lon/longitude and y/lat/latitude, demand
// demand/d. Decimal commas (common in the source spreadsheets) are
// normalized to dots, as are non-breaking spaces.
//
// Node roles resolve from the identifier prefix — D depot, S station,
// anything else customer — once, here.
//
// comma selects the field delimiter (';' for the original spreadsheets,
// ',' for standard CSV). The returned RowError list covers every skipped
// row; err is reserved for unreadable input (missing header, broken reader).
func LoadNodesCSV(r io.Reader, comma rune) ([]Node, []RowError, error) {
	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("instance: csv header: %w", err)
	}
	cols := columnIndex(header)
	if cols.id < 0 || cols.x < 0 || cols.y < 0 {
		return nil, nil, fmt.Errorf("instance: csv header %v: %w", header, ErrBadHeader)
	}

	var (
		nodes []Node
		bad   []RowError
		line  = 1 // header consumed
	)
	for {
		rec, errRead := cr.Read()
		if errRead == io.EOF {
			break
		}
		line++
		if errRead != nil {
			bad = append(bad, RowError{Line: line, Reason: errRead.Error()})

			continue
		}
		if cols.max() >= len(rec) {
			bad = append(bad, RowError{Line: line, Reason: "too few fields"})

			continue
		}

		id := strings.TrimSpace(rec[cols.id])
		if id == "" {
			bad = append(bad, RowError{Line: line, Reason: "empty identifier"})

			continue
		}
		x, errX := parseDecimal(rec[cols.x])
		y, errY := parseDecimal(rec[cols.y])
		if errX != nil || errY != nil {
			bad = append(bad, RowError{Line: line, Reason: "unparsable coordinate"})

			continue
		}

		n := Node{ID: id, X: x, Y: y, Kind: roleFromID(id)}
		if cols.demand >= 0 && cols.demand < len(rec) {
			if dm, errD := parseDecimal(rec[cols.demand]); errD == nil {
				n.Demand = int(dm)
			}
		}
		nodes = append(nodes, n)
	}

	return nodes, bad, nil
}

// columns holds resolved header positions; -1 means absent.
type columns struct {
	id, x, y, demand int
}

func (c columns) max() int {
	m := c.id
	if c.x > m {
		m = c.x
	}
	if c.y > m {
		m = c.y
	}

	return m
}

func columnIndex(header []string) columns {
	cols := columns{id: -1, x: -1, y: -1, demand: -1}
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "index", "id", "node", "name":
			if cols.id < 0 {
				cols.id = i
			}
		case "x", "lon", "longitude":
			if cols.x < 0 {
				cols.x = i
			}
		case "y", "lat", "latitude":
			if cols.y < 0 {
				cols.y = i
			}
		case "demand", "d":
			if cols.demand < 0 {
				cols.demand = i
			}
		}
	}

	return cols
}

// parseDecimal parses a float tolerating decimal commas, plain spaces and
// non-breaking spaces (artifacts of the source spreadsheets).
func parseDecimal(s string) (float64, error) {
	s = strings.NewReplacer(" ", "", " ", "", ",", ".").Replace(s)

	return strconv.ParseFloat(s, 64)
}

// roleFromID resolves a node role from its identifier prefix. This is the
// single place string prefixes are ever inspected; everything downstream
// carries the resolved Kind.
func roleFromID(id string) genome.Kind {
	switch {
	case strings.HasPrefix(id, "D") || strings.HasPrefix(id, "d"):
		return genome.KindDepot
	case strings.HasPrefix(id, "S") || strings.HasPrefix(id, "s"):
		return genome.KindStation
	default:
		return genome.KindCustomer
	}
}
