package spring

import (
	"reflect"
	"testing"

	"rest-recon/internal/codemodel"
	"rest-recon/internal/collector"
	"rest-recon/internal/model"
)

func ann(name string, values map[string][]string) codemodel.Annotation {
	return codemodel.Annotation{Name: name, Values: values}
}

func TestExtractMapping(t *testing.T) {
	d := New()

	tests := []struct {
		name        string
		annotations codemodel.Annotations
		paths       []string
		verbs       []string
		produces    []string
	}{
		{
			name: "request mapping with value and path",
			annotations: codemodel.Annotations{ann(MappingAnnotation, map[string][]string{
				"value":    {"/a"},
				"path":     {"/b", "/a"},
				"method":   {"RequestMethod.POST", "org.springframework.web.bind.annotation.RequestMethod.put"},
				"produces": {"application/json"},
			})},
			paths:    []string{"/a", "/b"},
			verbs:    []string{"POST", "PUT"},
			produces: []string{"application/json"},
		},
		{
			name:        "composed mapping",
			annotations: codemodel.Annotations{ann(annotationPackage+"DeleteMapping", map[string][]string{"value": {"/{id}"}})},
			paths:       []string{"/{id}"},
			verbs:       []string{"DELETE"},
		},
		{
			name: "first mapping wins",
			annotations: codemodel.Annotations{
				ann("java.lang.Deprecated", nil),
				ann(annotationPackage+"GetMapping", map[string][]string{"value": {"/first"}}),
				ann(MappingAnnotation, map[string][]string{"value": {"/second"}}),
			},
			paths: []string{"/first"},
			verbs: []string{"GET"},
		},
		{
			name:        "no mapping",
			annotations: codemodel.Annotations{ann("java.lang.Override", nil)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := d.ExtractMapping(tt.annotations)
			if got := m.Paths.Values(); !reflect.DeepEqual(got, tt.paths) {
				t.Errorf("paths = %v, expected %v", got, tt.paths)
			}
			if got := m.HTTPMethods.Values(); !reflect.DeepEqual(got, tt.verbs) {
				t.Errorf("verbs = %v, expected %v", got, tt.verbs)
			}
			if got := m.Produces.Values(); !reflect.DeepEqual(got, tt.produces) {
				t.Errorf("produces = %v, expected %v", got, tt.produces)
			}
		})
	}
}

func TestHTTPMethods(t *testing.T) {
	d := New()
	verbs := func(v ...string) model.EndpointMapping {
		return model.EndpointMapping{HTTPMethods: model.NewOrderedSet(v...)}
	}

	if got := d.HTTPMethods(verbs("PUT"), verbs("POST")); !reflect.DeepEqual(got, []string{"POST"}) {
		t.Errorf("method level should win, got %v", got)
	}
	if got := d.HTTPMethods(verbs("PUT"), verbs()); !reflect.DeepEqual(got, []string{"PUT"}) {
		t.Errorf("class level fallback, got %v", got)
	}
	got := d.HTTPMethods(verbs(), verbs())
	if !reflect.DeepEqual(got, []string{"GET"}) {
		t.Errorf("default = %v", got)
	}
	got[0] = "changed"
	if DefaultHTTPMethods[0] != "GET" {
		t.Error("callers must not be able to change the default verbs")
	}
}

func TestQualification(t *testing.T) {
	d := New()

	rest := &codemodel.Class{Annotations: codemodel.Annotations{ann(annotationPackage+"RestController", nil)}}
	service := &codemodel.Class{Annotations: codemodel.Annotations{ann("org.springframework.stereotype.Service", nil)}}
	if !d.ClassQualifies(rest) || d.ClassQualifies(service) {
		t.Error("only controller stereotypes qualify")
	}

	mapped := &codemodel.Method{Annotations: codemodel.Annotations{ann(annotationPackage+"PatchMapping", nil)}}
	plain := &codemodel.Method{}
	if !d.MethodQualifies(mapped) || d.MethodQualifies(plain) {
		t.Error("only mapped methods qualify")
	}
}

func TestParameterBindings(t *testing.T) {
	d := New()
	m := &codemodel.Method{
		Params: []codemodel.Parameter{
			{Name: "userId", Type: model.TypeRef{Name: "long"}, Annotations: codemodel.Annotations{
				ann(PathVarAnnotation, map[string][]string{"value": {"id"}}),
			}},
			{Name: "tenant", Type: model.TypeRef{Name: "java.lang.String"}, Annotations: codemodel.Annotations{
				ann(PathVarAnnotation, map[string][]string{"name": {"t"}}),
			}},
			{Name: "sort", Type: model.TypeRef{Name: "java.lang.String"}, Annotations: codemodel.Annotations{
				ann(ParamAnnotation, map[string][]string{"required": {" FALSE "}}),
			}},
			{Name: "body", Type: model.TypeRef{Name: "com.example.Dto"}, Annotations: codemodel.Annotations{
				ann(RequestBodyAnnotation, nil),
			}},
		},
	}
	docs := collector.NewParamDocs(&codemodel.DocComment{
		Params: map[string][]string{"userId": {"the user"}, "body": {"payload"}},
	})

	vars := d.ExtractPathVars(m, docs)
	if len(vars) != 2 || vars[0].Name != "id" || vars[0].Description != "the user" || vars[1].Name != "t" {
		t.Errorf("path vars = %+v", vars)
	}

	params := d.ExtractQueryParams(m, docs)
	if len(params) != 1 || params[0].Name != "sort" || params[0].Required {
		t.Errorf("query params = %+v", params)
	}

	body := d.ExtractRequestBody(m, docs)
	if body == nil || body.ParameterName != "body" || body.Description != "payload" || body.Type.Name != "com.example.Dto" {
		t.Errorf("request body = %+v", body)
	}

	if d.ExtractRequestBody(&codemodel.Method{}, docs) != nil {
		t.Error("method without @RequestBody has no body")
	}
}
