package statement

import (
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/etnz/statement/date"
	"github.com/rs/zerolog"
)

// row is a table row matched in a section.
type row struct {
	line  int      // line is the index of the last line of the row.
	text  string   // text is the matched text, two lines joined by a space if the row was wrapped.
	match []string // match are the submatches of the expression that matched.
	re    *regexp.Regexp
	alt   bool // alt is true when text matched the alternative expression.
}

// get returns a named field of the row.
func (r row) get(name string) string { return group(r.re, r.match, name) }

// mismatch returns the error reporting an unparsable row.
func (r row) mismatch(account string, t *Table, reason string) error {
	return &RowError{Account: account, Table: t.Name, Line: r.line, Text: r.text, Reason: reason}
}

// locate returns the index of the header line of t in lines, or -1.
func locate(lines []string, t *Table) int {
	for i, line := range lines {
		if line != t.Header {
			continue
		}
		if in := t.Intro; in != nil {
			if i < in.Offset || !strings.HasPrefix(lines[i-in.Offset], in.Prefix) {
				continue
			}
		}
		return i
	}
	return -1
}

func (t *Table) stop(line string) bool {
	return slices.ContainsFunc(t.Stops, func(p string) bool { return strings.HasPrefix(line, p) })
}

func (t *Table) repeated(line string) bool { return line == t.Header || slices.Contains(t.Repeats, line) }

// scan reads the rows of table t in section s, up to one of its Stops or the end of
// the section. A missing table has no rows.
//
// A line that does not match t.Row (nor alt, when not nil) is assumed to be the first
// half of a wrapped row and is joined with the next line. If the joined text does not
// match either, the table is not in the expected format and scan fails.
//
// When a page of the section reprints the table header, the lines printed before it
// on that page are page furniture and are ignored.
func scan(s *section, t *Table, alt *regexp.Regexp, account string, log zerolog.Logger) ([]row, error) {
	lines := s.lines
	start := locate(lines, t)
	if start < 0 {
		return nil, nil
	}
	var (
		rows      []row
		pending   string
		pendingAt int
	)
	fail := func(line int, text string) error {
		return row{line: line, text: text}.mismatch(account, t, "")
	}
	for i := start + 1; i < len(lines); i++ {
		if h, ok := s.reprinted(i, t); ok && h > i {
			log.Debug().Str("table", t.Name).Int("from", i).Int("to", h).Msg("page furniture skipped")
			i = h
		}
		line := lines[i]
		switch {
		case strings.TrimSpace(line) == "":
			continue
		case t.stop(line):
			if pending != "" {
				return nil, fail(pendingAt, pending)
			}
			return rows, nil
		case t.repeated(line):
			if pending != "" {
				log.Debug().Str("table", t.Name).Str("line", pending).Msg("unfinished row dropped at page break")
			}
			pending = ""
			continue
		}
		text := line
		if pending != "" {
			text = pending + " " + line
		}
		if m := t.Row.FindStringSubmatch(text); m != nil {
			if pending != "" {
				log.Debug().Str("table", t.Name).Str("row", text).Msg("wrapped row joined")
			}
			rows = append(rows, row{line: i, text: text, match: m, re: t.Row})
			pending = ""
			continue
		}
		if alt != nil {
			if m := alt.FindStringSubmatch(text); m != nil {
				rows = append(rows, row{line: i, text: text, match: m, re: alt, alt: true})
				pending = ""
				continue
			}
		}
		if pending != "" {
			return nil, fail(i, text)
		}
		pending, pendingAt = line, i
	}
	if pending != "" {
		return nil, fail(pendingAt, pending)
	}
	return rows, nil
}

// reprinted returns the index of the repeated header of t on the page starting at i.
func (s *section) reprinted(i int, t *Table) (int, bool) {
	p, ok := slices.BinarySearch(s.pages, i)
	if !ok {
		return 0, false
	}
	end := len(s.lines)
	if p+1 < len(s.pages) {
		end = s.pages[p+1]
	}
	for h := i; h < end; h++ {
		switch line := s.lines[h]; {
		case t.stop(line):
			return 0, false
		case t.repeated(line):
			return h, true
		}
	}
	return 0, false
}

// fields reads the typed fields of a row, keeping the first error.
type fields struct {
	r   row
	cfg Config
	err error
}

func (f *fields) text(name string) string { return strings.TrimSpace(f.r.get(name)) }

// token reads a numeric field. A field the layout does not print is empty.
func (f *fields) token(name string) Token {
	t := f.cfg.Notation.Token(f.r.get(name))
	if t == "" || f.err != nil {
		return t
	}
	if _, err := t.Decimal(); err != nil {
		f.err = err
	}
	return t
}

// date reads a date field and returns the UTC instant of its local midnight.
func (f *fields) date(name string) time.Time {
	if f.err != nil {
		return time.Time{}
	}
	t, err := date.Instant(f.r.get(name), f.cfg.Zone)
	if err != nil {
		f.err = err
	}
	return t
}

// check returns the error of the first unreadable field.
func (f *fields) check(account string, t *Table) error {
	if f.err == nil {
		return nil
	}
	return f.r.mismatch(account, t, f.err.Error())
}
