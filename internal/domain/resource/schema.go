package resource

import (
	"fmt"
	"strings"
)

// Field kinds
const (
	KindText     = "text"
	KindLongText = "longtext"
	KindRichText = "richtext"
	KindNumber   = "number"
	KindEnum     = "enum"
	KindDate     = "date"
	KindEmail    = "email"
)

// Attachment kinds
const (
	AttachmentImage    = "image"
	AttachmentDocument = "document"
)

// Size ceilings for uploaded attachments, in bytes.
const (
	MaxImageSize    = 1 << 20     // 1 MB
	MaxDocumentSize = 5 * 1 << 20 // 5 MB
)

// imageMIMETypes is the allow-list for image attachments.
var imageMIMETypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// documentMIMETypes is the allow-list for document attachments.
var documentMIMETypes = map[string]bool{
	"application/pdf": true,
}

// Field describes one scalar field of a managed resource.
type Field struct {
	Name     string // API/payload key
	Label    string // human-readable form label
	Kind     string // text, longtext, richtext, number, enum, date, email
	Required bool
	Enum     []string // allowed values when Kind is enum
}

// SubList describes an ordered sub-list field of a managed resource.
// Columns is empty for scalar lists (e.g. "features"); record lists
// (e.g. "education" entries) name their columns.
type SubList struct {
	Name    string
	Label   string
	Columns []string
}

// AttachmentSpec describes a resource's single optional binary attachment.
type AttachmentSpec struct {
	Field    string // payload key, e.g. "image" or "resume"
	Kind     string // image or document
	Required bool   // must be present on create
}

// AllowedMIME reports whether a MIME type is acceptable for this attachment.
// PRE: mime is non-empty
// POST: returns true only for allow-listed types
func (a AttachmentSpec) AllowedMIME(mime string) bool {
	if a.Kind == AttachmentDocument {
		return documentMIMETypes[mime]
	}
	return imageMIMETypes[mime]
}

// MaxSize returns the size ceiling in bytes for this attachment kind.
func (a AttachmentSpec) MaxSize() int64 {
	if a.Kind == AttachmentDocument {
		return MaxDocumentSize
	}
	return MaxImageSize
}

// Schema describes one admin-managed resource type: its REST paths, scalar
// fields, sub-lists and optional attachment. One Schema parameterises one
// resource manager instance; there is no per-resource manager code.
type Schema struct {
	Name     string // plural identifier, e.g. "banners" (also the REST base path)
	Singular string // e.g. "Banner", used in form headings and messages

	// Singleton resources (site settings, email settings) have no list or
	// delete; they are edited in place via the update endpoint without an id.
	Singleton bool

	// HasStatusToggle marks resources with a dedicated status endpoint
	// (banners, vacancies, contact messages).
	HasStatusToggle bool

	Fields     []Field
	SubLists   []SubList
	Attachment *AttachmentSpec

	// ListColumns names the fields shown in the admin list view.
	ListColumns []string
	// SlugField, when set, names the field used for public detail URLs.
	SlugField string
}

// Title returns the human-readable heading for the resource, derived from
// its name: "contact-messages" becomes "Contact Messages".
func (s Schema) Title() string {
	words := strings.Split(s.Name, "-")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// ListPath returns the path for listing resources (GET).
func (s Schema) ListPath() string { return s.Name }

// CreatePath returns the path for creating a resource (POST).
func (s Schema) CreatePath() string { return s.Name }

// UpdatePath returns the path for updating a resource (POST).
// Singletons update without an identifier.
func (s Schema) UpdatePath(id string) string {
	if s.Singleton {
		return s.Name + "/update"
	}
	return fmt.Sprintf("%s/update/%s", s.Name, id)
}

// DeletePath returns the path for deleting a resource (DELETE).
func (s Schema) DeletePath(id string) string {
	return fmt.Sprintf("%s/%s", s.Name, id)
}

// StatusPath returns the path of the dedicated status-toggle endpoint (POST).
func (s Schema) StatusPath(id string) string {
	return fmt.Sprintf("%s/status/%s", s.Name, id)
}

// FieldByName returns the field spec with the given name.
func (s Schema) FieldByName(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// SubListByName returns the sub-list spec with the given name.
func (s Schema) SubListByName(name string) (SubList, bool) {
	for _, sl := range s.SubLists {
		if sl.Name == name {
			return sl, true
		}
	}
	return SubList{}, false
}
