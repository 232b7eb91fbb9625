package web

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/AMINUL200/huberslaw-sub000/internal/adapters/api"
	"github.com/AMINUL200/huberslaw-sub000/internal/application/listutil"
	"github.com/AMINUL200/huberslaw-sub000/internal/application/manager"
	"github.com/AMINUL200/huberslaw-sub000/internal/domain/catalog"
	"github.com/AMINUL200/huberslaw-sub000/internal/domain/resource"
)

// maxFormMemory bounds multipart form parsing; the largest allowed upload
// is a 5 MB document.
const maxFormMemory = 8 << 20

// resourceManager resolves the {resource} path segment. Unknown names 404.
func resourceManager(w http.ResponseWriter, r *http.Request) (*manager.Manager, bool) {
	name := r.PathValue("resource")
	m, ok := managers[name]
	if !ok {
		http.NotFound(w, r)
		return nil, false
	}
	return m, true
}

// handleAdminDashboard handles GET /admin.
func handleAdminDashboard(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, r, "admin_dashboard.html", map[string]any{
		"Schemas": catalog.All(),
	})
}

// handleAdminResourceList handles GET /admin/{resource}. A fetch failure
// keeps whatever list is already in memory and shows the error alongside it.
func handleAdminResourceList(w http.ResponseWriter, r *http.Request) {
	m, ok := resourceManager(w, r)
	if !ok {
		return
	}
	schema := m.Schema()

	// Singletons have no list; go straight to the form.
	if schema.Singleton {
		item, err := m.GetSingleton(r.Context())
		if err != nil {
			upstreamError(w, r, err)
			return
		}
		renderResourceForm(w, r, m, resource.FromResource(schema, item), nil, "")
		return
	}

	list, fetchErr := m.FetchList(r.Context())
	var errMsg string
	if fetchErr != nil {
		errMsg = api.UserMessage(fetchErr)
	}

	lp := listutil.ParseListParams(r.URL.Query(), schema.ListColumns, nil)
	rows, pageInfo := listutil.Apply(list, lp, schema.ListColumns)

	renderTemplate(w, r, "admin_list.html", map[string]any{
		"Schema":         schema,
		"Rows":           rows,
		"PageInfo":       pageInfo,
		"Sort":           lp.Sort,
		"Dir":            lp.Dir,
		"Search":         lp.Search,
		"PerPageOptions": listutil.PerPageOptions,
		"Error":          errMsg,
	})
}

// handleAdminResourceNew handles GET /admin/{resource}/new.
func handleAdminResourceNew(w http.ResponseWriter, r *http.Request) {
	m, ok := resourceManager(w, r)
	if !ok {
		return
	}
	renderResourceForm(w, r, m, m.OpenCreate(), nil, "")
}

// handleAdminResourceEdit handles GET /admin/{resource}/edit/{id}.
func handleAdminResourceEdit(w http.ResponseWriter, r *http.Request) {
	m, ok := resourceManager(w, r)
	if !ok {
		return
	}
	draft, err := m.OpenEdit(r.Context(), r.PathValue("id"))
	if err != nil {
		upstreamError(w, r, err)
		return
	}
	renderResourceForm(w, r, m, draft, nil, "")
}

// handleAdminResourceSave handles POST /admin/{resource}/save. The form can
// request structural edits (add or remove a sub-list row) which re-render
// without submitting; the save action validates and forwards to the API.
func handleAdminResourceSave(w http.ResponseWriter, r *http.Request) {
	m, ok := resourceManager(w, r)
	if !ok {
		return
	}
	schema := m.Schema()

	draft, attachMsg, err := parseDraft(r, schema)
	if err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	action := formString(r, "action")
	switch {
	case action == "" || action == "save":
		// fall through to submit below
	case strings.HasPrefix(action, "add_row:"):
		if err := draft.AddRow(schema, strings.TrimPrefix(action, "add_row:")); err != nil {
			http.Error(w, "unknown section", http.StatusBadRequest)
			return
		}
		renderResourceForm(w, r, m, draft, nil, "")
		return
	case strings.HasPrefix(action, "remove_row:"):
		rest := strings.TrimPrefix(action, "remove_row:")
		name, idxStr, found := strings.Cut(rest, ":")
		idx, err := strconv.Atoi(idxStr)
		if !found || err != nil {
			http.Error(w, "bad row reference", http.StatusBadRequest)
			return
		}
		if err := draft.RemoveRow(schema, name, idx); err != nil {
			if errors.Is(err, resource.ErrLastRow) {
				renderResourceForm(w, r, m, draft, nil, "At least one row is required.")
				return
			}
			http.Error(w, "bad row reference", http.StatusBadRequest)
			return
		}
		renderResourceForm(w, r, m, draft, nil, "")
		return
	default:
		http.Error(w, "unknown action", http.StatusBadRequest)
		return
	}

	if attachMsg != "" {
		renderResourceForm(w, r, m, draft, nil, attachMsg)
		return
	}

	err = m.Submit(r.Context(), draft)
	switch {
	case err == nil:
		// Singletons re-enter through the list route, which re-fetches the
		// server copy and shows the form again.
		http.Redirect(w, r, "/admin/"+schema.Name, http.StatusSeeOther)
	case errors.Is(err, manager.ErrBusy):
		renderResourceForm(w, r, m, draft, nil, "Another save is already in progress.")
	default:
		var vErr *manager.ValidationError
		if errors.As(err, &vErr) {
			renderResourceForm(w, r, m, draft, vErr.Fields, "")
			return
		}
		renderResourceForm(w, r, m, draft, nil, api.UserMessage(err))
	}
}

// handleAdminResourceDelete handles POST /admin/{resource}/delete/{id}.
func handleAdminResourceDelete(w http.ResponseWriter, r *http.Request) {
	m, ok := resourceManager(w, r)
	if !ok {
		return
	}
	if err := m.Remove(r.Context(), r.PathValue("id")); err != nil {
		slog.Warn("resource_delete_failed", "resource", m.Schema().Name, "id", r.PathValue("id"))
		upstreamError(w, r, err)
		return
	}
	http.Redirect(w, r, "/admin/"+m.Schema().Name, http.StatusSeeOther)
}

// handleAdminResourceToggle handles POST /admin/{resource}/toggle/{id}.
// The new status comes from re-fetching the item; the page never guesses.
func handleAdminResourceToggle(w http.ResponseWriter, r *http.Request) {
	m, ok := resourceManager(w, r)
	if !ok {
		return
	}
	if !m.Schema().HasStatusToggle {
		http.Error(w, "resource has no status", http.StatusBadRequest)
		return
	}
	if _, err := m.ToggleStatus(r.Context(), r.PathValue("id")); err != nil {
		upstreamError(w, r, err)
		return
	}
	http.Redirect(w, r, "/admin/"+m.Schema().Name, http.StatusSeeOther)
}

// renderResourceForm renders the generic create/edit form for a draft.
func renderResourceForm(w http.ResponseWriter, r *http.Request, m *manager.Manager, d *resource.Draft, fieldErrors map[string]string, errMsg string) {
	schema := m.Schema()
	renderTemplate(w, r, "admin_form.html", map[string]any{
		"Schema":        schema,
		"Draft":         d,
		"IsCreate":      d.IsCreate(),
		"FieldErrors":   fieldErrors,
		"Error":         errMsg,
		"AttachmentURL": m.AttachmentURL(d),
	})
}

// parseDraft rebuilds a Draft from the posted form. Sub-list rows arrive as
// indexed keys (features[0], education[0][degree]); the attachment arrives
// as a file part plus hidden state fields. A chosen file that fails the
// schema's type or size rules comes back as a non-empty rejection message
// rather than an error, so the form re-renders with everything else intact.
func parseDraft(r *http.Request, schema resource.Schema) (*resource.Draft, string, error) {
	var parseErr error
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		parseErr = r.ParseMultipartForm(maxFormMemory)
	} else {
		parseErr = r.ParseForm()
	}
	if parseErr != nil {
		return nil, "", parseErr
	}

	d := resource.NewDraft(schema)
	d.ID = formString(r, "id")

	for _, f := range schema.Fields {
		d.SetField(f.Name, r.FormValue(f.Name))
	}

	for _, sl := range schema.SubLists {
		var rows []resource.Row
		for i := 0; ; i++ {
			row, present := readRow(r, sl, i)
			if !present {
				break
			}
			rows = append(rows, row)
		}
		if len(rows) > 0 {
			d.SubLists[sl.Name] = rows
		}
	}

	if schema.Attachment == nil {
		return d, "", nil
	}

	if path := formString(r, "existing_attachment"); path != "" {
		d.Attachment = resource.Attachment{State: resource.AttachmentExisting, Path: path}
	}
	if v := r.FormValue("remove_attachment"); v == "1" || v == "on" {
		d.RemoveAttachment = true
	}

	file, header, err := r.FormFile(schema.Attachment.Field)
	if err == http.ErrMissingFile || errors.Is(err, http.ErrNotMultipart) {
		return d, "", nil
	}
	if err != nil {
		return nil, "", err
	}
	defer file.Close()

	bodyBytes, err := io.ReadAll(io.LimitReader(file, schema.Attachment.MaxSize()+1))
	if err != nil {
		return nil, "", err
	}
	upload := resource.Upload{
		Filename: header.Filename,
		MIME:     header.Header.Get("Content-Type"),
		Size:     int64(len(bodyBytes)),
		Content:  bodyBytes,
	}
	if err := d.ChooseAttachment(schema, upload); err != nil {
		return d, err.Error(), nil
	}
	return d, "", nil
}

// readRow extracts one indexed sub-list row from the form. The second return
// reports whether any key for that index exists at all.
func readRow(r *http.Request, sl resource.SubList, i int) (resource.Row, bool) {
	prefix := fmt.Sprintf("%s[%d]", sl.Name, i)
	if len(sl.Columns) == 0 {
		values, present := r.Form[prefix]
		if !present {
			return nil, false
		}
		v := ""
		if len(values) > 0 {
			v = values[0]
		}
		return resource.Row{resource.ScalarColumn: v}, true
	}
	row := resource.Row{}
	present := false
	for _, col := range sl.Columns {
		if values, ok := r.Form[prefix+"["+col+"]"]; ok {
			present = true
			if len(values) > 0 {
				row[col] = values[0]
			}
		}
	}
	if !present {
		return nil, false
	}
	return row, true
}
