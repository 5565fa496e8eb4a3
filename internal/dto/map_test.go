package dto

import (
	"testing"

	"github.com/openimagingdata/radelement-api/internal/models"
)

func TestMapElementValueDetailsImages(t *testing.T) {
	value := models.ElementValue{Name: "Solid", Value: "solid"}
	value.Images.JSON = []byte(`["https://example.org/a.png"]`)

	details := MapElementValueDetails(value)
	if len(details.Images) != 1 || details.Images[0] != "https://example.org/a.png" {
		t.Fatalf("Images = %v", details.Images)
	}
}

func TestMapElementValueDetailsMalformedImages(t *testing.T) {
	value := models.ElementValue{Name: "Solid", Value: "solid"}
	value.Images.JSON = []byte(`{not json`)

	// A bad images payload degrades to no images, never an error.
	details := MapElementValueDetails(value)
	if details.Images != nil {
		t.Fatalf("Images = %v, want nil", details.Images)
	}
	if details.Name != "Solid" {
		t.Errorf("other fields lost: %+v", details)
	}
}

func TestMapPersonAttributesHasEmptyRoleList(t *testing.T) {
	attrs := MapPersonAttributes(models.Person{ID: 1, Name: "Alice"})
	if attrs.Roles == nil || len(attrs.Roles) != 0 {
		t.Fatalf("Roles = %#v, want empty non-nil list", attrs.Roles)
	}
}
