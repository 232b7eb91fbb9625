// Package catalog declares the admin-managed resource types. Each entry is a
// resource.Schema; the admin back office instantiates one generic manager per
// entry instead of carrying per-resource page code.
package catalog

import "github.com/AMINUL200/huberslaw-sub000/internal/domain/resource"

// Resource type names, matching the REST base paths.
const (
	Banners         = "banners"
	Services        = "services"
	TeamMembers     = "team-members"
	Vacancies       = "vacancies"
	ContactMessages = "contact-messages"
	Terms           = "terms"
	SiteSettings    = "site-settings"
	EmailSettings   = "email-settings"
	Bookings        = "bookings"
)

// Banner statuses
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Contact message statuses
const (
	ContactNew      = "new"
	ContactReplied  = "replied"
	ContactResolved = "resolved"
)

// Vacancy statuses
const (
	VacancyOpen   = "open"
	VacancyClosed = "closed"
)

var schemas = []resource.Schema{
	{
		Name:            Banners,
		Singular:        "Banner",
		HasStatusToggle: true,
		Fields: []resource.Field{
			{Name: "title", Label: "Title", Kind: resource.KindText, Required: true},
			{Name: "subtitle", Label: "Subtitle", Kind: resource.KindText},
			{Name: "link", Label: "Link", Kind: resource.KindText},
			{Name: "order", Label: "Order", Kind: resource.KindNumber},
			{Name: "status", Label: "Status", Kind: resource.KindEnum, Enum: []string{StatusActive, StatusInactive}},
		},
		Attachment:  &resource.AttachmentSpec{Field: "image", Kind: resource.AttachmentImage, Required: true},
		ListColumns: []string{"title", "subtitle", "status"},
	},
	{
		Name:     Services,
		Singular: "Service",
		Fields: []resource.Field{
			{Name: "title", Label: "Title", Kind: resource.KindText, Required: true},
			{Name: "slug", Label: "Slug", Kind: resource.KindText, Required: true},
			{Name: "summary", Label: "Summary", Kind: resource.KindLongText},
			{Name: "description", Label: "Description", Kind: resource.KindRichText, Required: true},
		},
		SubLists: []resource.SubList{
			{Name: "features", Label: "Features"},
		},
		Attachment:  &resource.AttachmentSpec{Field: "image", Kind: resource.AttachmentImage},
		ListColumns: []string{"title", "slug"},
		SlugField:   "slug",
	},
	{
		Name:     TeamMembers,
		Singular: "Team Member",
		Fields: []resource.Field{
			{Name: "name", Label: "Name", Kind: resource.KindText, Required: true},
			{Name: "slug", Label: "Slug", Kind: resource.KindText, Required: true},
			{Name: "designation", Label: "Designation", Kind: resource.KindText, Required: true},
			{Name: "bio", Label: "Biography", Kind: resource.KindRichText},
			{Name: "email", Label: "Email", Kind: resource.KindEmail},
			{Name: "phone", Label: "Phone", Kind: resource.KindText},
		},
		SubLists: []resource.SubList{
			{Name: "education", Label: "Education", Columns: []string{"degree", "institution", "year"}},
			{Name: "specialties", Label: "Specialties"},
		},
		Attachment:  &resource.AttachmentSpec{Field: "image", Kind: resource.AttachmentImage},
		ListColumns: []string{"name", "designation"},
		SlugField:   "slug",
	},
	{
		Name:            Vacancies,
		Singular:        "Vacancy",
		HasStatusToggle: true,
		Fields: []resource.Field{
			{Name: "title", Label: "Title", Kind: resource.KindText, Required: true},
			{Name: "location", Label: "Location", Kind: resource.KindText},
			{Name: "employment_type", Label: "Employment Type", Kind: resource.KindEnum, Enum: []string{"full-time", "part-time", "contract"}},
			{Name: "description", Label: "Description", Kind: resource.KindRichText, Required: true},
			{Name: "closing_date", Label: "Closing Date", Kind: resource.KindDate},
			{Name: "status", Label: "Status", Kind: resource.KindEnum, Enum: []string{VacancyOpen, VacancyClosed}},
		},
		SubLists: []resource.SubList{
			{Name: "requirements", Label: "Requirements"},
			{Name: "responsibilities", Label: "Responsibilities"},
		},
		ListColumns: []string{"title", "location", "status"},
	},
	{
		Name:            ContactMessages,
		Singular:        "Contact Message",
		HasStatusToggle: true,
		Fields: []resource.Field{
			{Name: "name", Label: "Name", Kind: resource.KindText, Required: true},
			{Name: "email", Label: "Email", Kind: resource.KindEmail, Required: true},
			{Name: "phone", Label: "Phone", Kind: resource.KindText},
			{Name: "subject", Label: "Subject", Kind: resource.KindText},
			{Name: "message", Label: "Message", Kind: resource.KindLongText, Required: true},
			{Name: "status", Label: "Status", Kind: resource.KindEnum, Enum: []string{ContactNew, ContactReplied, ContactResolved}},
		},
		ListColumns: []string{"name", "email", "subject", "status"},
	},
	{
		Name:     Terms,
		Singular: "Terms Page",
		Fields: []resource.Field{
			{Name: "title", Label: "Title", Kind: resource.KindText, Required: true},
			{Name: "content", Label: "Content", Kind: resource.KindRichText, Required: true},
		},
		ListColumns: []string{"title"},
	},
	{
		Name:      SiteSettings,
		Singular:  "Site Settings",
		Singleton: true,
		Fields: []resource.Field{
			{Name: "site_name", Label: "Site Name", Kind: resource.KindText, Required: true},
			{Name: "tagline", Label: "Tagline", Kind: resource.KindText},
			{Name: "phone", Label: "Phone", Kind: resource.KindText},
			{Name: "email", Label: "Email", Kind: resource.KindEmail},
			{Name: "address", Label: "Address", Kind: resource.KindLongText},
			{Name: "map_embed", Label: "Map Embed", Kind: resource.KindLongText},
			{Name: "facebook", Label: "Facebook", Kind: resource.KindText},
			{Name: "linkedin", Label: "LinkedIn", Kind: resource.KindText},
			{Name: "twitter", Label: "Twitter", Kind: resource.KindText},
			{Name: "about_us", Label: "About Us", Kind: resource.KindRichText},
			{Name: "our_mission", Label: "Our Mission", Kind: resource.KindRichText},
			{Name: "our_vision", Label: "Our Vision", Kind: resource.KindRichText},
		},
		Attachment: &resource.AttachmentSpec{Field: "logo", Kind: resource.AttachmentImage},
	},
	{
		Name:      EmailSettings,
		Singular:  "Email Settings",
		Singleton: true,
		Fields: []resource.Field{
			{Name: "from_name", Label: "From Name", Kind: resource.KindText, Required: true},
			{Name: "from_address", Label: "From Address", Kind: resource.KindEmail, Required: true},
			{Name: "reply_to", Label: "Reply To", Kind: resource.KindEmail},
			{Name: "booking_subject", Label: "Booking Subject", Kind: resource.KindText},
			{Name: "contact_subject", Label: "Contact Subject", Kind: resource.KindText},
		},
	},
	{
		Name:     Bookings,
		Singular: "Booking",
		Fields: []resource.Field{
			{Name: "client_name", Label: "Client Name", Kind: resource.KindText, Required: true},
			{Name: "client_email", Label: "Client Email", Kind: resource.KindEmail, Required: true},
			{Name: "client_phone", Label: "Client Phone", Kind: resource.KindText},
			{Name: "service", Label: "Service", Kind: resource.KindText},
			{Name: "scheduled_at", Label: "Scheduled At", Kind: resource.KindDate, Required: true},
			{Name: "notes", Label: "Notes", Kind: resource.KindLongText},
		},
		ListColumns: []string{"client_name", "client_email", "service", "scheduled_at"},
	},
}

// All returns every declared schema in admin navigation order.
func All() []resource.Schema {
	out := make([]resource.Schema, len(schemas))
	copy(out, schemas)
	return out
}

// ByName returns the schema for a resource type name.
func ByName(name string) (resource.Schema, bool) {
	for _, s := range schemas {
		if s.Name == name {
			return s, true
		}
	}
	return resource.Schema{}, false
}
