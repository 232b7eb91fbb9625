// Package content gives the public site typed read models over the raw
// records served by the content API. Only fields the templates render are
// mapped; everything else stays behind in the raw record.
package content

import (
	"github.com/AMINUL200/huberslaw-sub000/internal/domain/resource"
)

// Banner is a home page hero slide.
type Banner struct {
	ID       string
	Title    string
	Subtitle string
	Image    string // path relative to the API host
	Link     string
	Status   string
}

// Service is a practice area.
type Service struct {
	ID          string
	Title       string
	Slug        string
	Summary     string
	Description string // trusted HTML from the back office editor
	Icon        string
	Features    []string
	Status      string
}

// Education is one qualification of a team member.
type Education struct {
	Degree      string
	Institution string
	Year        string
}

// TeamMember is a lawyer or staff profile.
type TeamMember struct {
	ID          string
	Name        string
	Slug        string
	Role        string
	Bio         string // trusted HTML
	Photo       string
	Email       string
	Phone       string
	Specialties []string
	Education   []Education
	Status      string
}

// Vacancy is an open position on the careers page.
type Vacancy struct {
	ID               string
	Title            string
	Location         string
	Type             string // full-time, part-time, contract
	Description      string // trusted HTML
	Requirements     []string
	Responsibilities []string
	ClosingDate      string
	Status           string
}

// Settings is the site-wide singleton: identity, contact details, socials,
// and the about page content.
type Settings struct {
	SiteName   string
	Tagline    string
	Logo       string
	Phone      string
	Email      string
	Address    string
	MapEmbed   string // trusted embed HTML
	Facebook   string
	LinkedIn   string
	Twitter    string
	AboutUs    string // trusted HTML
	OurMission string // trusted HTML
	OurVision  string // trusted HTML
}

// BannerFromResource maps a raw banner record.
func BannerFromResource(r resource.Resource) Banner {
	return Banner{
		ID:       r.ID(),
		Title:    r.String("title"),
		Subtitle: r.String("subtitle"),
		Image:    r.String("image"),
		Link:     r.String("link"),
		Status:   r.String("status"),
	}
}

// ServiceFromResource maps a raw service record.
func ServiceFromResource(r resource.Resource) Service {
	return Service{
		ID:          r.ID(),
		Title:       r.String("title"),
		Slug:        r.String("slug"),
		Summary:     r.String("summary"),
		Description: r.String("description"),
		Icon:        r.String("icon"),
		Features:    r.StringList("features"),
		Status:      r.String("status"),
	}
}

// TeamMemberFromResource maps a raw team member record.
func TeamMemberFromResource(r resource.Resource) TeamMember {
	m := TeamMember{
		ID:          r.ID(),
		Name:        r.String("name"),
		Slug:        r.String("slug"),
		Role:        r.String("designation"),
		Bio:         r.String("bio"),
		Photo:       r.String("image"),
		Email:       r.String("email"),
		Phone:       r.String("phone"),
		Specialties: r.StringList("specialties"),
		Status:      r.String("status"),
	}
	for _, rec := range r.RecordList("education") {
		m.Education = append(m.Education, Education{
			Degree:      rec["degree"],
			Institution: rec["institution"],
			Year:        rec["year"],
		})
	}
	return m
}

// VacancyFromResource maps a raw vacancy record.
func VacancyFromResource(r resource.Resource) Vacancy {
	return Vacancy{
		ID:               r.ID(),
		Title:            r.String("title"),
		Location:         r.String("location"),
		Type:             r.String("employment_type"),
		Description:      r.String("description"),
		Requirements:     r.StringList("requirements"),
		Responsibilities: r.StringList("responsibilities"),
		ClosingDate:      r.String("closing_date"),
		Status:           r.String("status"),
	}
}

// SettingsFromResource maps the site settings singleton.
func SettingsFromResource(r resource.Resource) Settings {
	return Settings{
		SiteName:   r.String("site_name"),
		Tagline:    r.String("tagline"),
		Logo:       r.String("logo"),
		Phone:      r.String("phone"),
		Email:      r.String("email"),
		Address:    r.String("address"),
		MapEmbed:   r.String("map_embed"),
		Facebook:   r.String("facebook"),
		LinkedIn:   r.String("linkedin"),
		Twitter:    r.String("twitter"),
		AboutUs:    r.String("about_us"),
		OurMission: r.String("our_mission"),
		OurVision:  r.String("our_vision"),
	}
}

// Active filters records to those with an active status. Records without a
// status field pass through.
func Active(records []resource.Resource) []resource.Resource {
	out := make([]resource.Resource, 0, len(records))
	for _, r := range records {
		if s := r.String("status"); s == "" || s == "active" || s == "open" {
			out = append(out, r)
		}
	}
	return out
}
