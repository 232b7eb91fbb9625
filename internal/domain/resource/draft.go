package resource

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Attachment tri-state. A draft's file field is exactly one of: unset,
// referencing the file already stored on the server, or replaced with a
// newly chosen local file.
const (
	AttachmentUnset       = "unset"
	AttachmentExisting    = "existing"
	AttachmentReplacement = "replacement"
)

// Domain errors
var (
	ErrLastRow        = errors.New("a sub-list always keeps at least one row")
	ErrUnknownField   = errors.New("unknown field")
	ErrUnknownSubList = errors.New("unknown sub-list")
)

// Upload is a newly chosen local file backing an attachment replacement.
type Upload struct {
	Filename string
	MIME     string
	Size     int64
	Content  []byte
}

// Attachment is the tagged tri-state of a draft's file field.
// Path is set only in the existing state; Upload only in the replacement state.
type Attachment struct {
	State  string
	Path   string  // server-relative path of the stored file
	Upload *Upload // newly chosen local file
}

// Row is one sub-list entry. Scalar sub-lists use the single "value" column.
type Row map[string]string

// ScalarColumn is the column name used by scalar sub-list rows.
const ScalarColumn = "value"

// Empty reports whether every column of the row is blank.
func (r Row) Empty() bool {
	for _, v := range r {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// Draft is a client-local, uncommitted copy of a resource's fields backing a
// create or edit form. It has no identity until a create submission succeeds;
// an edit draft carries the identifier of the resource it was copied from.
type Draft struct {
	ID       string // empty for create drafts
	Fields   map[string]string
	SubLists map[string][]Row
	Attachment Attachment

	// RemoveAttachment explicitly requests deletion of the server-side file.
	// Removal is never inferred from an absent attachment value.
	RemoveAttachment bool
}

// NewDraft returns a create draft with field defaults and one empty row in
// every sub-list, so each form always has a row to edit.
// PRE: schema is a valid Schema
// POST: every sub-list holds exactly one empty row; attachment is unset
func NewDraft(schema Schema) *Draft {
	d := &Draft{
		Fields:     make(map[string]string, len(schema.Fields)),
		SubLists:   make(map[string][]Row, len(schema.SubLists)),
		Attachment: Attachment{State: AttachmentUnset},
	}
	for _, f := range schema.Fields {
		d.Fields[f.Name] = ""
	}
	for _, sl := range schema.SubLists {
		d.SubLists[sl.Name] = []Row{emptyRow(sl)}
	}
	return d
}

// FromResource returns an edit draft with every schema field copied verbatim
// from the source record. An existing attachment path moves the attachment
// into the existing state.
// PRE: src was returned by the API (server-assigned id present)
// POST: scalar fields equal src's; sub-lists copied, padded to one row
func FromResource(schema Schema, src Resource) *Draft {
	d := &Draft{
		ID:         src.ID(),
		Fields:     make(map[string]string, len(schema.Fields)),
		SubLists:   make(map[string][]Row, len(schema.SubLists)),
		Attachment: Attachment{State: AttachmentUnset},
	}
	for _, f := range schema.Fields {
		d.Fields[f.Name] = src.String(f.Name)
	}
	for _, sl := range schema.SubLists {
		var rows []Row
		if len(sl.Columns) == 0 {
			for _, v := range src.StringList(sl.Name) {
				rows = append(rows, Row{ScalarColumn: v})
			}
		} else {
			for _, rec := range src.RecordList(sl.Name) {
				row := make(Row, len(sl.Columns))
				for _, col := range sl.Columns {
					row[col] = rec[col]
				}
				rows = append(rows, row)
			}
		}
		if len(rows) == 0 {
			rows = []Row{emptyRow(sl)}
		}
		d.SubLists[sl.Name] = rows
	}
	if schema.Attachment != nil {
		if path := src.String(schema.Attachment.Field); path != "" {
			d.Attachment = Attachment{State: AttachmentExisting, Path: path}
		}
	}
	return d
}

// IsCreate reports whether submitting this draft targets the create endpoint.
func (d *Draft) IsCreate() bool {
	return d.ID == ""
}

// SetField assigns a scalar field. Pure assignment; validation happens at
// submit time.
func (d *Draft) SetField(name, value string) {
	if d.Fields == nil {
		d.Fields = make(map[string]string)
	}
	d.Fields[name] = value
}

// AddRow appends an empty row to the named sub-list.
// PRE: name is declared in the schema
// POST: sub-list has one more row
func (d *Draft) AddRow(schema Schema, name string) error {
	sl, ok := schema.SubListByName(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSubList, name)
	}
	d.SubLists[name] = append(d.SubLists[name], emptyRow(sl))
	return nil
}

// RemoveRow deletes the row at index from the named sub-list. Removal is
// refused when it would leave zero rows.
// PRE: name is declared in the schema
// POST: sub-list keeps at least one row
func (d *Draft) RemoveRow(schema Schema, name string, index int) error {
	if _, ok := schema.SubListByName(name); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSubList, name)
	}
	rows := d.SubLists[name]
	if len(rows) <= 1 {
		return ErrLastRow
	}
	if index < 0 || index >= len(rows) {
		return fmt.Errorf("sub-list %s has no row %d", name, index)
	}
	d.SubLists[name] = append(rows[:index:index], rows[index+1:]...)
	return nil
}

// SetRow assigns one column of a sub-list row, growing the list as needed so
// posted form indices always land on a row.
func (d *Draft) SetRow(schema Schema, name string, index int, column, value string) error {
	sl, ok := schema.SubListByName(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSubList, name)
	}
	if index < 0 {
		return fmt.Errorf("sub-list %s has no row %d", name, index)
	}
	if d.SubLists == nil {
		d.SubLists = make(map[string][]Row)
	}
	rows := d.SubLists[name]
	for len(rows) <= index {
		rows = append(rows, emptyRow(sl))
	}
	rows[index][column] = value
	d.SubLists[name] = rows
	return nil
}

// ChooseAttachment validates a newly chosen file against the schema's MIME
// allow-list and size ceiling. On violation the attachment state is left
// unchanged and a field-level error is returned; otherwise the attachment
// moves to the replacement state.
// PRE: schema declares an attachment
// POST: on success Attachment.State == AttachmentReplacement
func (d *Draft) ChooseAttachment(schema Schema, up Upload) error {
	spec := schema.Attachment
	if spec == nil {
		return errors.New("resource has no attachment field")
	}
	if !spec.AllowedMIME(up.MIME) {
		return fmt.Errorf("%s: file type %s is not allowed", spec.Field, up.MIME)
	}
	if up.Size > spec.MaxSize() {
		return fmt.Errorf("%s: file exceeds the %s limit", spec.Field, sizeLabel(spec.MaxSize()))
	}
	d.Attachment = Attachment{State: AttachmentReplacement, Upload: &up}
	d.RemoveAttachment = false
	return nil
}

// Prune returns a copy of the sub-lists with empty rows dropped. The draft
// itself is untouched so the form keeps its editable rows.
func (d *Draft) Prune() map[string][]Row {
	pruned := make(map[string][]Row, len(d.SubLists))
	for name, rows := range d.SubLists {
		kept := make([]Row, 0, len(rows))
		for _, row := range rows {
			if !row.Empty() {
				kept = append(kept, row)
			}
		}
		pruned[name] = kept
	}
	return pruned
}

// Validate checks required fields, enum membership and numeric kinds.
// Returned map is keyed by field name; empty map means the draft may submit.
// PRE: schema matches the draft's shape
// POST: draft is unchanged
func (d *Draft) Validate(schema Schema) map[string]string {
	errs := make(map[string]string)
	for _, f := range schema.Fields {
		v := strings.TrimSpace(d.Fields[f.Name])
		if f.Required && v == "" {
			errs[f.Name] = f.Label + " is required"
			continue
		}
		if v == "" {
			continue
		}
		switch f.Kind {
		case KindNumber:
			if _, err := strconv.ParseFloat(v, 64); err != nil {
				errs[f.Name] = f.Label + " must be a number"
			}
		case KindEnum:
			if !contains(f.Enum, v) {
				errs[f.Name] = f.Label + " has an invalid value"
			}
		}
	}
	if spec := schema.Attachment; spec != nil && spec.Required && d.IsCreate() {
		if d.Attachment.State != AttachmentReplacement {
			errs[spec.Field] = "a file is required"
		}
	}
	return errs
}

func emptyRow(sl SubList) Row {
	if len(sl.Columns) == 0 {
		return Row{ScalarColumn: ""}
	}
	row := make(Row, len(sl.Columns))
	for _, col := range sl.Columns {
		row[col] = ""
	}
	return row
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func sizeLabel(n int64) string {
	if n >= 1<<20 {
		return fmt.Sprintf("%d MB", n/(1<<20))
	}
	return fmt.Sprintf("%d KB", n/(1<<10))
}
