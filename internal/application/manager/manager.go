// Package manager implements the generic admin resource manager: list,
// create, edit, delete and status toggling for one resource type against the
// content API. One Manager is instantiated per catalog schema; every admin
// page is this pattern with different configuration.
package manager

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/AMINUL200/huberslaw-sub000/internal/adapters/api"
	"github.com/AMINUL200/huberslaw-sub000/internal/domain/resource"
)

// Page states. A page starts Loading, settles Idle once the first fetch
// resolves, moves through FormOpen/Submitting during edits, and returns to
// Idle. Errors return the manager to its prior state with a message surfaced.
const (
	StateLoading    = "loading"
	StateIdle       = "idle"
	StateFormOpen   = "form_open"
	StateSubmitting = "submitting"
)

// ErrBusy is returned when Submit is called while a submission is already in
// flight. The UI disables the submit control in that window; this is the
// backstop.
var ErrBusy = errors.New("a submission is already in progress")

// ValidationError carries field-level messages from a failed local
// validation. No network call is issued when validation fails.
type ValidationError struct {
	Fields map[string]string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %d field(s)", len(e.Fields))
}

// Manager drives one resource type's admin page. It holds that page's only
// shared state: the in-memory copy of the last successfully fetched list.
type Manager struct {
	schema resource.Schema
	client *api.Client

	mu    sync.Mutex
	state string
	list  []resource.Resource
}

// New creates a Manager for the given schema. The page starts in Loading.
func New(schema resource.Schema, client *api.Client) *Manager {
	return &Manager{
		schema: schema,
		client: client,
		state:  StateLoading,
	}
}

// Schema returns the schema this manager was parameterised with.
func (m *Manager) Schema() resource.Schema { return m.schema }

// State returns the current page state.
func (m *Manager) State() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// List returns the in-memory copy of the last successful fetch.
func (m *Manager) List() []resource.Resource {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]resource.Resource, len(m.list))
	copy(out, m.list)
	return out
}

// FetchList issues one GET for the resource list. On success the in-memory
// list is replaced; on failure it is left intact and the error is returned
// for the caller to surface. Never retried, never cached beyond this copy.
// PRE: m.schema is not a singleton
// POST: on success state is Idle and the list reflects the server
func (m *Manager) FetchList(ctx context.Context) ([]resource.Resource, error) {
	var items []resource.Resource
	if err := m.client.GetJSON(ctx, m.schema.ListPath(), nil, &items); err != nil {
		slog.Warn("resource_list_failed", "resource", m.schema.Name, "error", err)
		m.mu.Lock()
		prior := m.list
		m.mu.Unlock()
		return prior, err
	}
	m.mu.Lock()
	m.list = items
	m.state = StateIdle
	m.mu.Unlock()
	return items, nil
}

// Get fetches a single resource by its server-assigned identifier.
func (m *Manager) Get(ctx context.Context, id string) (resource.Resource, error) {
	var item resource.Resource
	if err := m.client.GetJSON(ctx, fmt.Sprintf("%s/%s", m.schema.Name, id), nil, &item); err != nil {
		return nil, err
	}
	return item, nil
}

// GetSingleton fetches a singleton resource (site settings, email settings).
func (m *Manager) GetSingleton(ctx context.Context) (resource.Resource, error) {
	var item resource.Resource
	if err := m.client.GetJSON(ctx, m.schema.ListPath(), nil, &item); err != nil {
		return nil, err
	}
	return item, nil
}

// OpenCreate resets a fresh draft with field defaults and opens the form.
func (m *Manager) OpenCreate() *resource.Draft {
	m.mu.Lock()
	m.state = StateFormOpen
	m.mu.Unlock()
	return resource.NewDraft(m.schema)
}

// OpenEdit fetches the resource and copies every field verbatim into a new
// draft. An existing attachment path is kept as-is with a viewable URL
// resolved through the client's asset base.
func (m *Manager) OpenEdit(ctx context.Context, id string) (*resource.Draft, error) {
	src, err := m.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	m.state = StateFormOpen
	m.mu.Unlock()
	return resource.FromResource(m.schema, src), nil
}

// AttachmentURL resolves a draft's existing attachment path for viewing.
func (m *Manager) AttachmentURL(d *resource.Draft) string {
	if d.Attachment.State != resource.AttachmentExisting {
		return ""
	}
	return m.client.AssetURL(d.Attachment.Path)
}

// Submit validates the draft, prunes empty sub-list rows and posts it to the
// create or update endpoint. A multipart payload is used when a replacement
// attachment is present, a plain structured payload otherwise. On success the
// list is re-fetched; on failure the caller keeps the draft so the form
// retains the entered data.
// PRE: d was produced by OpenCreate or OpenEdit on this manager's schema
// POST: on success state is Idle and the list reflects the server
func (m *Manager) Submit(ctx context.Context, d *resource.Draft) error {
	m.mu.Lock()
	if m.state == StateSubmitting {
		m.mu.Unlock()
		return ErrBusy
	}
	m.state = StateSubmitting
	m.mu.Unlock()

	err := m.submit(ctx, d)

	m.mu.Lock()
	if err != nil {
		m.state = StateFormOpen
	} else {
		m.state = StateIdle
	}
	m.mu.Unlock()
	return err
}

func (m *Manager) submit(ctx context.Context, d *resource.Draft) error {
	if errs := d.Validate(m.schema); len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}

	path := m.schema.CreatePath()
	if !d.IsCreate() || m.schema.Singleton {
		path = m.schema.UpdatePath(d.ID)
	}

	var err error
	if d.Attachment.State == resource.AttachmentReplacement {
		fields, files := MultipartPayload(m.schema, d)
		_, err = m.client.PostMultipart(ctx, path, fields, files)
	} else {
		_, err = m.client.Post(ctx, path, JSONPayload(m.schema, d))
	}
	if err != nil {
		slog.Warn("resource_submit_failed", "resource", m.schema.Name, "id", d.ID, "error", err)
		return err
	}

	if !m.schema.Singleton {
		// Refresh failures after a successful write are surfaced separately;
		// the write itself stands.
		if _, err := m.FetchList(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Remove issues the DELETE for one resource. The UI requires an explicit
// confirmation step before calling this. On success the list is re-fetched.
func (m *Manager) Remove(ctx context.Context, id string) error {
	if err := m.client.Delete(ctx, m.schema.DeletePath(id)); err != nil {
		slog.Warn("resource_delete_failed", "resource", m.schema.Name, "id", id, "error", err)
		return err
	}
	_, err := m.FetchList(ctx)
	return err
}

// ToggleStatus flips the resource's status via its dedicated endpoint, then
// re-fetches the specific item and patches it into the in-memory list. No
// optimistic update.
// PRE: the schema declares a status toggle
func (m *Manager) ToggleStatus(ctx context.Context, id string) (resource.Resource, error) {
	if !m.schema.HasStatusToggle {
		return nil, fmt.Errorf("%s has no status toggle", m.schema.Name)
	}
	if _, err := m.client.Post(ctx, m.schema.StatusPath(id), nil); err != nil {
		return nil, err
	}
	item, err := m.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	for i, existing := range m.list {
		if existing.ID() == id {
			m.list[i] = item
			break
		}
	}
	m.mu.Unlock()
	return item, nil
}
