package collector_test

import (
	"context"
	"errors"
	"reflect"
	"sort"
	"strings"
	"sync/atomic"
	"testing"

	"rest-recon/internal/codemodel"
	"rest-recon/internal/collector"
	"rest-recon/internal/collector/jaxrs"
	"rest-recon/internal/collector/spring"
	"rest-recon/internal/model"
)

const (
	springAnn   = "org.springframework.web.bind.annotation."
	controller  = "org.springframework.stereotype.Controller"
	requestMap  = springAnn + "RequestMapping"
	requestPar  = springAnn + "RequestParam"
	pathVarAnn  = springAnn + "PathVariable"
	bodyAnn     = springAnn + "RequestBody"
	jaxrsPath   = "javax.ws.rs.Path"
	jaxrsGET    = "javax.ws.rs.GET"
	jaxrsPOST   = "javax.ws.rs.POST"
	jaxrsQuery  = "javax.ws.rs.QueryParam"
	jaxrsProd   = "javax.ws.rs.Produces"
	jaxrsCtxAnn = "javax.ws.rs.core.Context"
)

// ann builds an annotation from key/value pairs; repeated keys accumulate
func ann(name string, kv ...string) codemodel.Annotation {
	a := codemodel.Annotation{Name: name, Values: make(map[string][]string)}
	for i := 0; i+1 < len(kv); i += 2 {
		a.Values[kv[i]] = append(a.Values[kv[i]], kv[i+1])
	}
	return a
}

// doc builds a javadoc; tags are written "@tag text"
func doc(body string, tags ...string) *codemodel.DocComment {
	d := &codemodel.DocComment{
		Body:      body,
		BlockTags: make(map[string][]string),
		Params:    make(map[string][]string),
	}
	if idx := strings.Index(body, ". "); idx != -1 {
		d.FirstSentence = body[:idx+1]
	} else {
		d.FirstSentence = body
	}
	for _, tag := range tags {
		name, text, _ := strings.Cut(strings.TrimPrefix(tag, "@"), " ")
		if name == "param" {
			pname, ptext, _ := strings.Cut(text, " ")
			d.Params[pname] = append(d.Params[pname], ptext)
			continue
		}
		d.BlockTags[name] = append(d.BlockTags[name], text)
	}
	return d
}

func param(name, typ string, annotations ...codemodel.Annotation) codemodel.Parameter {
	return codemodel.Parameter{Name: name, Type: model.TypeRef{Name: typ}, Annotations: annotations}
}

func method(name string, annotations ...codemodel.Annotation) codemodel.Method {
	return codemodel.Method{Name: name, Annotations: annotations, ReturnType: model.TypeRef{Name: "java.lang.String"}}
}

func keys(endpoints []model.Endpoint) []string {
	out := make([]string, 0, len(endpoints))
	for _, ep := range endpoints {
		out = append(out, ep.Key())
	}
	sort.Strings(out)
	return out
}

func describe(t *testing.T, d collector.Dialect, m codemodel.Model, c *codemodel.Class) *model.ClassDescriptor {
	t.Helper()
	desc, err := collector.DescribeClass(d, m, c)
	if err != nil {
		t.Fatalf("DescribeClass(%s) error: %v", c.QualifiedName, err)
	}
	return desc
}

func TestNonQualifyingClassProducesNothing(t *testing.T) {
	plain := &codemodel.Class{
		QualifiedName: "com.example.Plain",
		// mapping annotations alone do not make a Spring controller
		Annotations: codemodel.Annotations{ann(requestMap, "value", "/plain")},
		Methods: []codemodel.Method{
			method("get", ann(requestMap, "value", "/x")),
		},
	}
	g := codemodel.NewGraphOf(plain)

	for _, d := range []collector.Dialect{spring.New(), jaxrs.New()} {
		descs, err := collector.Collect(d, g)
		if err != nil {
			t.Fatalf("%s: Collect() error: %v", d.Name(), err)
		}
		if len(descs) != 0 {
			t.Errorf("%s: expected no descriptor, got %+v", d.Name(), descs)
		}
	}
}

func TestIgnoreTags(t *testing.T) {
	ignoredMethod := method("hidden", ann(requestMap, "value", "/hidden"))
	ignoredMethod.Doc = doc("Hidden.", "@ignore")

	c := &codemodel.Class{
		QualifiedName: "com.example.Mixed",
		Annotations:   codemodel.Annotations{ann(controller)},
		Methods: []codemodel.Method{
			ignoredMethod,
			method("shown", ann(requestMap, "value", "/shown")),
		},
	}
	desc := describe(t, spring.New(), codemodel.NewGraphOf(c), c)
	if got := keys(desc.Endpoints); !reflect.DeepEqual(got, []string{"GET /shown"}) {
		t.Errorf("endpoints = %v", got)
	}

	c.Doc = doc("Whole class hidden.", "@ignore")
	if desc := describe(t, spring.New(), codemodel.NewGraphOf(c), c); desc != nil {
		t.Errorf("ignored class produced %+v", desc)
	}
}

func TestPathCrossProduct(t *testing.T) {
	c := &codemodel.Class{
		QualifiedName: "com.example.Cross",
		Doc:           doc("Cross.", "@contextPath /ctx"),
		Annotations: codemodel.Annotations{
			ann(controller),
			ann(requestMap, "value", "/a", "value", "b/"),
		},
		Methods: []codemodel.Method{
			method("m", ann(requestMap, "value", "/x", "value", "//y")),
		},
	}
	desc := describe(t, spring.New(), codemodel.NewGraphOf(c), c)

	var paths []string
	for _, ep := range desc.Endpoints {
		paths = append(paths, ep.Path)
	}
	sort.Strings(paths)
	want := []string{"/ctx/a/x", "/ctx/a/y", "/ctx/b/x", "/ctx/b/y"}
	if !reflect.DeepEqual(paths, want) {
		t.Errorf("paths = %v, expected %v", paths, want)
	}
	if desc.ContextPath != "/ctx" {
		t.Errorf("ContextPath = %q", desc.ContextPath)
	}
}

func TestVerbFallback(t *testing.T) {
	t.Run("spring defaults to GET", func(t *testing.T) {
		c := &codemodel.Class{
			QualifiedName: "com.example.Defaults",
			Annotations:   codemodel.Annotations{ann(controller), ann(requestMap, "value", "/d")},
			Methods:       []codemodel.Method{method("m", ann(requestMap))},
		}
		desc := describe(t, spring.New(), codemodel.NewGraphOf(c), c)
		if got := keys(desc.Endpoints); !reflect.DeepEqual(got, []string{"GET /d"}) {
			t.Errorf("endpoints = %v", got)
		}
	})

	t.Run("spring class verbs apply to methods without verbs", func(t *testing.T) {
		c := &codemodel.Class{
			QualifiedName: "com.example.ClassVerb",
			Annotations:   codemodel.Annotations{ann(controller), ann(requestMap, "method", "RequestMethod.PUT")},
			Methods: []codemodel.Method{
				method("inherits", ann(requestMap, "value", "/i")),
				method("overrides", ann(requestMap, "value", "/o", "method", "RequestMethod.DELETE")),
			},
		}
		desc := describe(t, spring.New(), codemodel.NewGraphOf(c), c)
		if got := keys(desc.Endpoints); !reflect.DeepEqual(got, []string{"DELETE /o", "PUT /i"}) {
			t.Errorf("endpoints = %v", got)
		}
	})

	t.Run("jaxrs method without verb is not routable", func(t *testing.T) {
		c := &codemodel.Class{
			QualifiedName: "com.example.NoVerb",
			Annotations:   codemodel.Annotations{ann(jaxrsPath, "value", "/r")},
			Methods: []codemodel.Method{
				method("locator", ann(jaxrsPath, "value", "/sub"), ann(jaxrsProd, "value", "application/json")),
			},
		}
		if desc := describe(t, jaxrs.New(), codemodel.NewGraphOf(c), c); desc != nil {
			t.Errorf("expected no descriptor, got %+v", desc)
		}
	})

	t.Run("jaxrs ignores class-level verbs", func(t *testing.T) {
		c := &codemodel.Class{
			QualifiedName: "com.example.ClassGet",
			Annotations:   codemodel.Annotations{ann(jaxrsPath, "value", "/r"), ann(jaxrsGET)},
			Methods: []codemodel.Method{
				method("create", ann(jaxrsPOST)),
				method("untagged", ann(jaxrsPath, "value", "/u")),
			},
		}
		desc := describe(t, jaxrs.New(), codemodel.NewGraphOf(c), c)
		if got := keys(desc.Endpoints); !reflect.DeepEqual(got, []string{"POST /r"}) {
			t.Errorf("endpoints = %v", got)
		}
	})
}

func TestQueryParamRequiredFlag(t *testing.T) {
	m := method("search", ann(requestMap, "value", "/s"))
	m.Params = []codemodel.Parameter{
		param("plain", "java.lang.String", ann(requestPar)),
		param("optional", "java.lang.String", ann(requestPar, "required", "false")),
		param("defaulted", "java.lang.String", ann(requestPar, "value", "d", "required", "true", "defaultValue", "x")),
		param("emptyDefault", "java.lang.String", ann(requestPar, "defaultValue", "")),
	}
	c := &codemodel.Class{
		QualifiedName: "com.example.Search",
		Annotations:   codemodel.Annotations{ann(controller)},
		Methods:       []codemodel.Method{m},
	}
	desc := describe(t, spring.New(), codemodel.NewGraphOf(c), c)

	got := make(map[string]bool)
	for _, q := range desc.Endpoints[0].QueryParams {
		got[q.Name] = q.Required
	}
	want := map[string]bool{"plain": true, "optional": false, "d": false, "emptyDefault": false}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("required flags = %v, expected %v", got, want)
	}
}

func TestInheritanceUsesSubclassContext(t *testing.T) {
	base := &codemodel.Class{
		QualifiedName: "com.example.Base",
		Doc:           doc("Base.", "@contextPath /base"),
		Methods: []codemodel.Method{
			method("ping", ann(requestMap, "value", "/ping")),
			method("shared", ann(requestMap, "value", "/shared", "method", "POST")),
		},
	}
	override := method("shared", ann(requestMap, "value", "/shared", "method", "POST"))
	override.Doc = doc("Subclass version.")

	sub := &codemodel.Class{
		QualifiedName: "com.example.Sub",
		Doc:           doc("Sub.", "@contextPath /sub"),
		Annotations:   codemodel.Annotations{ann(controller), ann(requestMap, "value", "/api")},
		Superclass:    "com.example.Base",
		Methods:       []codemodel.Method{override},
	}
	g := codemodel.NewGraphOf(base, sub)

	desc := describe(t, spring.New(), g, sub)
	if got := keys(desc.Endpoints); !reflect.DeepEqual(got, []string{"GET /sub/api/ping", "POST /sub/api/shared"}) {
		t.Fatalf("endpoints = %v", got)
	}
	for _, ep := range desc.Endpoints {
		if ep.Path == "/sub/api/shared" && ep.Summary != "Subclass version." {
			t.Errorf("subclass declaration should win, got summary %q", ep.Summary)
		}
	}

	// the base is not a controller on its own
	if desc := describe(t, spring.New(), g, base); desc != nil {
		t.Errorf("base produced %+v", desc)
	}
}

func TestInheritanceCycleFailsPerClass(t *testing.T) {
	a := &codemodel.Class{
		QualifiedName: "com.example.A",
		Annotations:   codemodel.Annotations{ann(controller)},
		Superclass:    "com.example.B",
		Methods:       []codemodel.Method{method("a", ann(requestMap, "value", "/a"))},
	}
	b := &codemodel.Class{
		QualifiedName: "com.example.B",
		Superclass:    "com.example.A",
		Methods:       []codemodel.Method{method("b", ann(requestMap, "value", "/b"))},
	}
	ok := &codemodel.Class{
		QualifiedName: "com.example.Ok",
		Annotations:   codemodel.Annotations{ann(controller)},
		Methods:       []codemodel.Method{method("ok", ann(requestMap, "value", "/ok"))},
	}
	g := codemodel.NewGraphOf(a, b, ok)

	descs, err := collector.Collect(spring.New(), g)
	if !errors.Is(err, collector.ErrInheritanceCycle) {
		t.Fatalf("expected ErrInheritanceCycle, got %v", err)
	}
	if !strings.Contains(err.Error(), "com.example.A") {
		t.Errorf("error should name the class: %v", err)
	}
	if len(descs) != 1 || descs[0].Name != "com.example.Ok" {
		t.Errorf("other classes should still resolve, got %+v", descs)
	}
}

func TestExternalSuperclassEndsInheritance(t *testing.T) {
	// extends com.lib.web.UserController, which is not part of the sources
	shadowing := &codemodel.Class{
		QualifiedName: "com.app.api.UserController",
		Annotations:   codemodel.Annotations{ann(controller), ann(requestMap, "value", "/users")},
		Superclass:    "com.lib.web.UserController",
		Methods:       []codemodel.Method{method("list", ann(requestMap))},
	}
	// extends com.lib.web.Base through an import; com.other.Base is unrelated
	importing := &codemodel.Class{
		QualifiedName: "com.app.api.AccountController",
		Annotations:   codemodel.Annotations{ann(controller), ann(requestMap, "value", "/accounts")},
		Superclass:    "com.lib.web.Base",
		Methods:       []codemodel.Method{method("list", ann(requestMap))},
	}
	unrelated := &codemodel.Class{
		QualifiedName: "com.other.Base",
		Methods:       []codemodel.Method{method("wipe", ann(requestMap, "value", "/admin/wipe"))},
	}
	g := codemodel.NewGraphOf(shadowing, importing, unrelated)

	catalog, err := collector.NewResolver([]collector.Dialect{spring.New()}, collector.WithWorkers(1)).
		Resolve(context.Background(), g)
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if len(catalog.Classes) != 2 {
		t.Fatalf("classes = %d, want 2", len(catalog.Classes))
	}

	want := map[string][]string{
		"com.app.api.UserController":    {"GET /users"},
		"com.app.api.AccountController": {"GET /accounts"},
	}
	for _, desc := range catalog.Classes {
		if got := keys(desc.Endpoints); !reflect.DeepEqual(got, want[desc.Name]) {
			t.Errorf("%s endpoints = %v, want %v", desc.Name, got, want[desc.Name])
		}
	}
}

func TestDocumentationPrecedence(t *testing.T) {
	m := method("update", ann(requestMap, "value", "/{id}", "method", "PUT"))
	m.Doc = doc("Updates one item. Longer text follows.",
		"@param id Param text for id",
		"@param q Param text for q",
		"@param payload Param text for payload",
		"@param other Param text for other",
		"@pathVar id Tag text for id",
		"@queryParam q Tag text for q",
		"@requestBody Tag text for body",
	)
	m.Params = []codemodel.Parameter{
		param("id", "long", ann(pathVarAnn)),
		param("q", "java.lang.String", ann(requestPar)),
		param("other", "java.lang.String", ann(requestPar)),
		param("bare", "java.lang.String", ann(requestPar)),
		param("payload", "com.example.Item", ann(bodyAnn)),
	}
	c := &codemodel.Class{
		QualifiedName: "com.example.Items",
		Doc:           doc("Item endpoints.", "@name Items"),
		Annotations:   codemodel.Annotations{ann(controller)},
		Methods:       []codemodel.Method{m},
	}
	desc := describe(t, spring.New(), codemodel.NewGraphOf(c), c)

	if desc.Name != "Items" || desc.Description != "Item endpoints." {
		t.Errorf("descriptor name/description = %q / %q", desc.Name, desc.Description)
	}

	ep := desc.Endpoints[0]
	if ep.Summary != "Updates one item." || ep.Description != "Updates one item. Longer text follows." {
		t.Errorf("summary/description = %q / %q", ep.Summary, ep.Description)
	}
	if ep.PathVars[0].Description != "Tag text for id" {
		t.Errorf("path var description = %q", ep.PathVars[0].Description)
	}

	descs := make(map[string]string)
	for _, q := range ep.QueryParams {
		descs[q.Name] = q.Description
	}
	want := map[string]string{
		"q":     "Tag text for q",
		"other": "Param text for other",
		"bare":  "",
	}
	if !reflect.DeepEqual(descs, want) {
		t.Errorf("query descriptions = %v, expected %v", descs, want)
	}
	if ep.RequestBody == nil || ep.RequestBody.Description != "Tag text for body" {
		t.Errorf("request body = %+v", ep.RequestBody)
	}
}

func TestMediaTypeFallback(t *testing.T) {
	c := &codemodel.Class{
		QualifiedName: "com.example.Media",
		Annotations: codemodel.Annotations{
			ann(controller),
			ann(requestMap, "produces", "application/json", "consumes", "application/json"),
		},
		Methods: []codemodel.Method{
			method("inherit", ann(requestMap, "value", "/i")),
			method("own", ann(requestMap, "value", "/o", "produces", "text/csv")),
		},
	}
	desc := describe(t, spring.New(), codemodel.NewGraphOf(c), c)

	for _, ep := range desc.Endpoints {
		switch ep.Path {
		case "/i":
			if !reflect.DeepEqual(ep.Produces, []string{"application/json"}) {
				t.Errorf("/i produces = %v", ep.Produces)
			}
		case "/o":
			if !reflect.DeepEqual(ep.Produces, []string{"text/csv"}) {
				t.Errorf("/o produces = %v", ep.Produces)
			}
			if !reflect.DeepEqual(ep.Consumes, []string{"application/json"}) {
				t.Errorf("/o consumes = %v", ep.Consumes)
			}
		}
	}
}

func TestEndpointsDoNotShareData(t *testing.T) {
	m := method("multi", ann(requestMap, "value", "/a", "value", "/b", "method", "GET", "method", "POST"))
	m.Params = []codemodel.Parameter{param("q", "java.lang.String", ann(requestPar))}
	c := &codemodel.Class{
		QualifiedName: "com.example.Multi",
		Annotations:   codemodel.Annotations{ann(controller)},
		Methods:       []codemodel.Method{m},
	}
	desc := describe(t, spring.New(), codemodel.NewGraphOf(c), c)
	if len(desc.Endpoints) != 4 {
		t.Fatalf("expected 4 endpoints, got %v", keys(desc.Endpoints))
	}

	desc.Endpoints[0].QueryParams[0].Name = "mutated"
	for _, ep := range desc.Endpoints[1:] {
		if ep.QueryParams[0].Name != "q" {
			t.Errorf("%s shares query params with another endpoint", ep.Key())
		}
	}
}

func TestJaxRSRequestBodyHeuristic(t *testing.T) {
	m := method("create", ann(jaxrsPOST))
	m.Params = []codemodel.Parameter{
		param("ctx", "javax.ws.rs.core.UriInfo", ann(jaxrsCtxAnn)),
		param("headers", "javax.ws.rs.core.HttpHeaders"),
		param("order", "com.example.Order"),
		param("second", "com.example.Order"),
	}
	c := &codemodel.Class{
		QualifiedName: "com.example.Orders",
		Annotations:   codemodel.Annotations{ann(jaxrsPath, "value", "orders")},
		Methods:       []codemodel.Method{m},
	}
	desc := describe(t, jaxrs.New(), codemodel.NewGraphOf(c), c)

	body := desc.Endpoints[0].RequestBody
	if body == nil || body.ParameterName != "order" {
		t.Errorf("request body = %+v, expected the first candidate", body)
	}
	if desc.Endpoints[0].Path != "/orders" {
		t.Errorf("path = %q", desc.Endpoints[0].Path)
	}
}

func sampleModel() *codemodel.Graph {
	springCls := &codemodel.Class{
		QualifiedName: "com.example.S",
		Annotations:   codemodel.Annotations{ann(controller), ann(requestMap, "value", "/s")},
		Methods: []codemodel.Method{
			method("one", ann(requestMap, "value", "/1")),
			method("two", ann(requestMap, "value", "/2", "method", "POST")),
		},
	}
	jaxCls := &codemodel.Class{
		QualifiedName: "com.example.J",
		Annotations:   codemodel.Annotations{ann(jaxrsPath, "value", "/j")},
		Methods: []codemodel.Method{
			func() codemodel.Method {
				m := method("list", ann(jaxrsGET))
				m.Params = []codemodel.Parameter{param("limit", "int", ann(jaxrsQuery, "value", "limit"))}
				return m
			}(),
		},
	}
	plain := &codemodel.Class{QualifiedName: "com.example.Dto"}

	classes := []*codemodel.Class{jaxCls, plain}
	for i := 0; i < 20; i++ {
		c := *springCls
		c.QualifiedName = springCls.QualifiedName + string(rune('a'+i))
		classes = append(classes, &c)
	}
	return codemodel.NewGraphOf(classes...)
}

func TestResolverOrderingAndIdempotence(t *testing.T) {
	g := sampleModel()
	dialects := []collector.Dialect{spring.New(), jaxrs.New()}

	var ticks atomic.Int32
	r := collector.NewResolver(dialects, collector.WithWorkers(4), collector.WithProgress(func() { ticks.Add(1) }))
	first, err := r.Resolve(context.Background(), g)
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if int(ticks.Load()) != r.Steps(g) {
		t.Errorf("progress ticks = %d, expected %d", ticks.Load(), r.Steps(g))
	}

	// spring classes first in model order, then the jaxrs class
	if len(first.Classes) != 21 {
		t.Fatalf("expected 21 classes, got %d", len(first.Classes))
	}
	if first.Classes[0].Name != "com.example.Sa" || first.Classes[19].Name != "com.example.St" {
		t.Errorf("spring classes out of order: %s .. %s", first.Classes[0].Name, first.Classes[19].Name)
	}
	if first.Classes[20].Name != "com.example.J" {
		t.Errorf("last class = %s", first.Classes[20].Name)
	}

	second, err := collector.NewResolver(dialects, collector.WithWorkers(1)).Resolve(context.Background(), g)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("resolution is not deterministic across runs and worker counts")
	}

	summary := first.Summary()
	if summary.TotalEndpoints != 41 || summary.ByMethod["GET"] != 21 || summary.ByMethod["POST"] != 20 {
		t.Errorf("summary = %+v", summary)
	}
}

func TestResolverCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	catalog, err := collector.NewResolver([]collector.Dialect{spring.New()}).Resolve(ctx, sampleModel())
	if catalog != nil || !errors.Is(err, context.Canceled) {
		t.Errorf("expected nil catalog and context.Canceled, got %v / %v", catalog, err)
	}
}
