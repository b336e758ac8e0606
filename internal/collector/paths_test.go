package collector

import (
	"reflect"
	"testing"

	"rest-recon/internal/codemodel"
	"rest-recon/internal/model"
)

func TestNormalizePath(t *testing.T) {
	tests := map[string]string{
		"":             "/",
		"/":            "/",
		"users":        "/users",
		"//users///1":  "/users/1",
		" /a/b/ ":      "/a/b/",
		"/{id}/detail": "/{id}/detail",
	}
	for in, expected := range tests {
		if got := NormalizePath(in); got != expected {
			t.Errorf("NormalizePath(%q) = %q, expected %q", in, got, expected)
		}
	}
}

func mapping(paths ...string) model.EndpointMapping {
	return model.EndpointMapping{Paths: model.NewOrderedSet(paths...)}
}

func TestResolvePaths(t *testing.T) {
	tests := []struct {
		name     string
		ctx      string
		class    model.EndpointMapping
		method   model.EndpointMapping
		expected []string
	}{
		{"both empty", "", mapping(), mapping(), []string{"/"}},
		{"both empty keeps context", "/ctx", mapping(), mapping(), []string{"/ctx"}},
		{"class only", "/ctx", mapping("/a", "b"), mapping(), []string{"/ctx/a", "/ctx/b"}},
		{"method only", "", mapping(), mapping("x/"), []string{"/x/"}},
		{"cross product", "/ctx", mapping("/a", "/b"), mapping("/x", "/y"),
			[]string{"/ctx/a/x", "/ctx/a/y", "/ctx/b/x", "/ctx/b/y"}},
		{"duplicates collapse", "", mapping("/a", "/a/"), mapping("x", "/x"), []string{"/a/x"}},
		{"empty segment", "", mapping("/a"), mapping(""), []string{"/a/"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolvePaths(tt.ctx, tt.class, tt.method)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("ResolvePaths() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestParamDocs(t *testing.T) {
	doc := &codemodel.DocComment{
		BlockTags: map[string][]string{
			TagPathVar:     {"id   Identifier tag", "other Unused"},
			TagQueryParam:  {"page"},
			TagRequestBody: {"  Payload tag  ", "second is ignored"},
		},
		Params: map[string][]string{
			"id":     {"id param"},
			"size":   {"size param"},
			"body":   {"body param"},
			"pageNo": {"page param"},
		},
	}
	docs := NewParamDocs(doc)

	if got := docs.PathVar("id", "id"); got != "Identifier tag" {
		t.Errorf("PathVar(id) = %q", got)
	}
	// a tag naming the variable with no text still overrides @param
	if got := docs.QueryParam("page", "pageNo"); got != "" {
		t.Errorf("QueryParam(page) = %q", got)
	}
	if got := docs.QueryParam("size", "size"); got != "size param" {
		t.Errorf("QueryParam(size) = %q", got)
	}
	if got := docs.QueryParam("missing", "missing"); got != "" {
		t.Errorf("QueryParam(missing) = %q", got)
	}
	if got := docs.RequestBody("body"); got != "Payload tag" {
		t.Errorf("RequestBody = %q", got)
	}

	empty := NewParamDocs(nil)
	if empty.PathVar("id", "id") != "" || empty.RequestBody("body") != "" {
		t.Error("nil javadoc should document nothing")
	}
}
