package manager_test

import (
	"reflect"
	"testing"

	"github.com/AMINUL200/huberslaw-sub000/internal/application/manager"
	"github.com/AMINUL200/huberslaw-sub000/internal/domain/resource"
)

func teamSchema() resource.Schema {
	return resource.Schema{
		Name:     "team-members",
		Singular: "Team Member",
		Fields: []resource.Field{
			{Name: "name", Label: "Name", Kind: resource.KindText, Required: true},
			{Name: "experience_years", Label: "Experience", Kind: resource.KindNumber},
		},
		SubLists: []resource.SubList{
			{Name: "specialties", Label: "Specialties"},
			{Name: "education", Label: "Education", Columns: []string{"degree", "institution", "year"}},
		},
		Attachment: &resource.AttachmentSpec{Field: "photo", Kind: resource.AttachmentImage},
	}
}

func TestJSONPayload(t *testing.T) {
	schema := teamSchema()
	d := resource.NewDraft(schema)
	d.SetField("name", "Jane Huber")
	d.SetField("experience_years", "12")
	d.SubLists["specialties"] = []resource.Row{
		{resource.ScalarColumn: "Family Law"},
		{resource.ScalarColumn: "  "},
	}
	d.SubLists["education"] = []resource.Row{
		{"degree": "LLB", "institution": "Victoria University", "year": "2010"},
		{"degree": "", "institution": "", "year": ""},
	}

	got := manager.JSONPayload(schema, d)

	if got["name"] != "Jane Huber" {
		t.Errorf("name = %v", got["name"])
	}
	if got["experience_years"] != float64(12) {
		t.Errorf("experience_years = %v (%T), want 12", got["experience_years"], got["experience_years"])
	}
	if !reflect.DeepEqual(got["specialties"], []string{"Family Law"}) {
		t.Errorf("specialties = %#v", got["specialties"])
	}
	wantEdu := []map[string]string{{"degree": "LLB", "institution": "Victoria University", "year": "2010"}}
	if !reflect.DeepEqual(got["education"], wantEdu) {
		t.Errorf("education = %#v", got["education"])
	}
	if _, present := got["photo"]; present {
		t.Errorf("payload carries attachment key: %#v", got)
	}
	if _, present := got["remove_attachment"]; present {
		t.Errorf("payload carries removal flag without request: %#v", got)
	}
}

func TestJSONPayload_RemoveFlag(t *testing.T) {
	schema := teamSchema()
	d := resource.NewDraft(schema)
	d.SetField("name", "Jane Huber")
	d.RemoveAttachment = true

	got := manager.JSONPayload(schema, d)
	if got["remove_attachment"] != true {
		t.Errorf("remove_attachment = %v, want true", got["remove_attachment"])
	}
}

func TestJSONPayload_NumberFallsBackToString(t *testing.T) {
	schema := teamSchema()
	d := resource.NewDraft(schema)
	d.SetField("experience_years", "a decade")

	got := manager.JSONPayload(schema, d)
	if got["experience_years"] != "a decade" {
		t.Errorf("experience_years = %v", got["experience_years"])
	}
}

func TestMultipartPayload_IndexedKeys(t *testing.T) {
	schema := teamSchema()
	d := resource.NewDraft(schema)
	d.SetField("name", "Jane Huber")
	d.SubLists["specialties"] = []resource.Row{
		{resource.ScalarColumn: "Family Law"},
		{resource.ScalarColumn: ""},
		{resource.ScalarColumn: "Mediation"},
	}
	d.SubLists["education"] = []resource.Row{
		{"degree": "LLB", "institution": "Victoria University", "year": "2010"},
	}
	if err := d.ChooseAttachment(schema, resource.Upload{
		Filename: "jane.webp", MIME: "image/webp", Size: 2048, Content: []byte("img"),
	}); err != nil {
		t.Fatalf("ChooseAttachment: %v", err)
	}

	fields, files := manager.MultipartPayload(schema, d)

	want := map[string]string{
		"name":                      "Jane Huber",
		"specialties[0]":            "Family Law",
		"specialties[1]":            "Mediation",
		"education[0][degree]":      "LLB",
		"education[0][institution]": "Victoria University",
		"education[0][year]":        "2010",
	}
	for key, value := range want {
		if got := fields.Get(key); got != value {
			t.Errorf("fields[%s] = %q, want %q", key, got, value)
		}
	}
	if fields.Has("specialties[2]") {
		t.Error("pruned row leaked into indexed keys")
	}
	if len(files) != 1 || files[0].Field != "photo" || files[0].Filename != "jane.webp" {
		t.Errorf("files = %#v", files)
	}
}
