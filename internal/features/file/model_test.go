package file

import "testing"

func TestListOptionsModePrecedence(t *testing.T) {
	cases := []struct {
		name string
		opts ListOptions
		want FilterMode
	}{
		{"default", ListOptions{}, FilterDefault},
		{"query alone", ListOptions{Query: "tax"}, FilterQuery},
		{"favorites alone", ListOptions{FavoritesOnly: true}, FilterFavorites},
		{"trash alone", ListOptions{TrashOnly: true}, FilterTrash},
		{"type alone", ListOptions{Type: TypePDF}, FilterType},
		{"query beats favorites", ListOptions{Query: "tax", FavoritesOnly: true}, FilterQuery},
		{"query beats everything", ListOptions{Query: "tax", FavoritesOnly: true, TrashOnly: true, Type: TypeCSV}, FilterQuery},
		{"favorites beat trash", ListOptions{FavoritesOnly: true, TrashOnly: true}, FilterFavorites},
		{"trash beats type", ListOptions{TrashOnly: true, Type: TypeImage}, FilterTrash},
	}

	for _, tc := range cases {
		if got := tc.opts.Mode(); got != tc.want {
			t.Errorf("%s: expected mode %d, got %d", tc.name, tc.want, got)
		}
	}
}

func TestTypeFromMime(t *testing.T) {
	cases := map[string]FileType{
		"image/png":       TypeImage,
		"image/jpeg":      TypeImage,
		"text/csv":        TypeCSV,
		"application/pdf": TypePDF,
	}
	for mime, want := range cases {
		got, err := TypeFromMime(mime)
		if err != nil {
			t.Errorf("%s: unexpected error %v", mime, err)
		}
		if got != want {
			t.Errorf("%s: expected %s, got %s", mime, want, got)
		}
	}

	if _, err := TypeFromMime("application/zip"); err == nil {
		t.Error("Expected error for unsupported mime type")
	}
}
