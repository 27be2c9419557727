package bib

import "fmt"

// Row is one flat literal tuple. Fields are strings, ints, or nested
// sequences of either.
type Row []any

// Tables holds the literal tuples for every entity kind in declaration order.
type Tables struct {
	Authors      []Row
	Conferences  []Row
	Journals     []Row
	Universities []Row
	Papers       []Row
	Articles     []Row
	Books        []Row
	News         []Row
	Talks        []Row
	BestPapers   []Row

	Capitalize   []string
	Replacements []Row // [old, new]

	Owner       string // author key, may be empty
	Affiliation string
}

// reader maps positional fields to values, recording the first failure.
type reader struct {
	kind  string
	index int
	row   Row
	err   error
}

func newReader(kind string, index int, row Row, arities ...int) *reader {
	r := &reader{kind: kind, index: index, row: row}
	for _, n := range arities {
		if len(row) == n {
			return r
		}
	}
	want := fmt.Sprint(arities[0])
	if len(arities) > 1 {
		want = fmt.Sprint(arities)
	}
	r.err = &MalformedRecordError{
		Kind:   kind,
		Index:  index,
		Reason: fmt.Sprintf("expected %s fields, got %d", want, len(row)),
	}
	return r
}

func (r *reader) fail(field, format string, args ...any) {
	if r.err != nil {
		return
	}
	r.err = &MalformedRecordError{
		Kind:   r.kind,
		Index:  r.index,
		Field:  field,
		Reason: fmt.Sprintf(format, args...),
	}
}

func (r *reader) text(i int, field string) string {
	if r.err != nil {
		return ""
	}
	s, ok := r.row[i].(string)
	if !ok {
		r.fail(field, "want string, got %T", r.row[i])
	}
	return s
}

func (r *reader) integer(i int, field string) int {
	if r.err != nil {
		return 0
	}
	switch v := r.row[i].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case uint64:
		return int(v)
	default:
		r.fail(field, "want integer, got %T", r.row[i])
		return 0
	}
}

func (r *reader) month(i int, field string, allowEmpty bool) string {
	m := r.text(i, field)
	if r.err != nil || (m == "" && allowEmpty) || IsMonth(m) {
		return m
	}
	r.fail(field, "unknown month %q", m)
	return ""
}

func (r *reader) keys(i int, field string) []string {
	if r.err != nil {
		return nil
	}
	switch v := r.row[i].(type) {
	case []string:
		return v
	case []any:
		keys := make([]string, len(v))
		for j, k := range v {
			s, ok := k.(string)
			if !ok {
				r.fail(field, "element %d: want string, got %T", j, k)
				return nil
			}
			keys[j] = s
		}
		return keys
	default:
		r.fail(field, "want list of keys, got %T", r.row[i])
		return nil
	}
}

func (r *reader) tuple(i int, field string) Row {
	if r.err != nil {
		return nil
	}
	t, ok := asRow(r.row[i])
	if !ok {
		r.fail(field, "want tuple, got %T", r.row[i])
	}
	return t
}

func (r *reader) tuples(i int, field string) []Row {
	if r.err != nil {
		return nil
	}
	switch v := r.row[i].(type) {
	case []Row:
		return v
	case []any:
		rows := make([]Row, len(v))
		for j, e := range v {
			t, ok := asRow(e)
			if !ok {
				r.fail(field, "element %d: want tuple, got %T", j, e)
				return nil
			}
			rows[j] = t
		}
		return rows
	default:
		r.fail(field, "want list of tuples, got %T", r.row[i])
		return nil
	}
}

func asRow(v any) (Row, bool) {
	switch t := v.(type) {
	case Row:
		return t, true
	case []any:
		return Row(t), true
	default:
		return nil, false
	}
}
