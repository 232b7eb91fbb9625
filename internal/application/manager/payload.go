package manager

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/AMINUL200/huberslaw-sub000/internal/adapters/api"
	"github.com/AMINUL200/huberslaw-sub000/internal/domain/resource"
)

// JSONPayload builds the structured body for a mutation with no file part.
// Sub-lists are pruned of empty rows; number fields are sent as numbers.
// The attachment key is written only as the explicit removal flag — an
// update that neither replaces nor removes the file carries no attachment
// key at all, so the server's stored file is untouched.
func JSONPayload(schema resource.Schema, d *resource.Draft) map[string]any {
	payload := make(map[string]any, len(schema.Fields)+len(schema.SubLists)+1)
	for _, f := range schema.Fields {
		payload[f.Name] = fieldValue(f, d.Fields[f.Name])
	}

	pruned := d.Prune()
	for _, sl := range schema.SubLists {
		rows := pruned[sl.Name]
		if len(sl.Columns) == 0 {
			values := make([]string, 0, len(rows))
			for _, row := range rows {
				values = append(values, strings.TrimSpace(row[resource.ScalarColumn]))
			}
			payload[sl.Name] = values
		} else {
			records := make([]map[string]string, 0, len(rows))
			for _, row := range rows {
				rec := make(map[string]string, len(sl.Columns))
				for _, col := range sl.Columns {
					rec[col] = row[col]
				}
				records = append(records, rec)
			}
			payload[sl.Name] = records
		}
	}

	if schema.Attachment != nil && d.RemoveAttachment {
		payload["remove_attachment"] = true
	}
	return payload
}

// MultipartPayload builds the flattened form fields and file parts for a
// mutation carrying a replacement attachment. Array-valued fields become
// indexed keys: field[0], field[0][sub].
func MultipartPayload(schema resource.Schema, d *resource.Draft) (url.Values, []api.File) {
	fields := url.Values{}
	for _, f := range schema.Fields {
		fields.Set(f.Name, d.Fields[f.Name])
	}

	pruned := d.Prune()
	for _, sl := range schema.SubLists {
		rows := pruned[sl.Name]
		for i, row := range rows {
			if len(sl.Columns) == 0 {
				fields.Set(indexedKey(sl.Name, i, ""), strings.TrimSpace(row[resource.ScalarColumn]))
				continue
			}
			for _, col := range sl.Columns {
				fields.Set(indexedKey(sl.Name, i, col), row[col])
			}
		}
	}

	if schema.Attachment != nil && d.RemoveAttachment {
		fields.Set("remove_attachment", "1")
	}

	var files []api.File
	if d.Attachment.State == resource.AttachmentReplacement && d.Attachment.Upload != nil {
		up := d.Attachment.Upload
		files = append(files, api.File{
			Field:    schema.Attachment.Field,
			Filename: up.Filename,
			MIME:     up.MIME,
			Content:  up.Content,
		})
	}
	return fields, files
}

func indexedKey(name string, i int, col string) string {
	key := name + "[" + strconv.Itoa(i) + "]"
	if col != "" {
		key += "[" + col + "]"
	}
	return key
}

func fieldValue(f resource.Field, v string) any {
	if f.Kind == resource.KindNumber && v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return n
		}
	}
	return v
}
