package javaparser

import "strings"

// Well-known framework names. Wildcard imports only qualify names found here;
// anything else falls back to the class package.
var knownNames = buildKnownNames(map[string][]string{
	"org.springframework.web.bind.annotation": {
		"RequestMapping", "GetMapping", "PostMapping", "PutMapping", "DeleteMapping", "PatchMapping",
		"RestController", "RequestParam", "PathVariable", "RequestBody", "RequestHeader",
		"ResponseBody", "ResponseStatus", "RequestMethod", "CookieValue", "ModelAttribute",
	},
	"org.springframework.stereotype": {"Controller", "Component", "Service", "Repository"},
	"org.springframework.http":       {"ResponseEntity", "HttpStatus", "MediaType", "HttpHeaders"},
	"javax.ws.rs":                    jaxrsAnnotations,
	"jakarta.ws.rs":                  jaxrsAnnotations,
	"javax.ws.rs.core":               jaxrsCoreTypes,
	"jakarta.ws.rs.core":             jaxrsCoreTypes,
	"javax.servlet.http":             {"HttpServletRequest", "HttpServletResponse", "HttpSession"},
	"jakarta.servlet.http":           {"HttpServletRequest", "HttpServletResponse", "HttpSession"},
	"java.util": {
		"List", "Map", "Set", "Collection", "Optional", "Date", "UUID",
		"ArrayList", "HashMap", "HashSet", "LinkedList", "Locale",
	},
})

var jaxrsAnnotations = []string{
	"Path", "GET", "POST", "PUT", "DELETE", "HEAD", "OPTIONS", "PATCH",
	"Consumes", "Produces", "PathParam", "QueryParam", "HeaderParam", "FormParam",
	"CookieParam", "MatrixParam", "BeanParam", "DefaultValue", "ApplicationPath", "Encoded",
}

var jaxrsCoreTypes = []string{
	"Context", "Response", "MediaType", "UriInfo", "HttpHeaders", "Request",
	"SecurityContext", "MultivaluedMap", "StreamingOutput",
}

// javaLang is implicitly imported in every compilation unit
var javaLang = map[string]bool{
	"String": true, "Object": true, "Integer": true, "Long": true, "Short": true,
	"Byte": true, "Double": true, "Float": true, "Boolean": true, "Character": true,
	"Number": true, "Void": true, "Iterable": true, "Enum": true, "Class": true,
	"Override": true, "Deprecated": true, "SuppressWarnings": true,
	"FunctionalInterface": true, "SafeVarargs": true, "Exception": true,
	"RuntimeException": true, "Throwable": true, "CharSequence": true,
}

var primitives = map[string]bool{
	"void": true, "boolean": true, "byte": true, "char": true, "short": true,
	"int": true, "long": true, "float": true, "double": true, "var": true,
}

func buildKnownNames(byPackage map[string][]string) map[string]bool {
	out := make(map[string]bool)
	for pkg, names := range byPackage {
		for _, name := range names {
			out[pkg+"."+name] = true
		}
	}
	return out
}

// mediaTypeConstants resolves the media type constants commonly used in
// mapping attributes, keyed by "Class.FIELD"
var mediaTypeConstants = map[string]string{
	"MediaType.APPLICATION_JSON":                  "application/json",
	"MediaType.APPLICATION_JSON_VALUE":            "application/json",
	"MediaType.APPLICATION_JSON_UTF8_VALUE":       "application/json;charset=UTF-8",
	"MediaType.APPLICATION_XML":                   "application/xml",
	"MediaType.APPLICATION_XML_VALUE":             "application/xml",
	"MediaType.TEXT_PLAIN":                        "text/plain",
	"MediaType.TEXT_PLAIN_VALUE":                  "text/plain",
	"MediaType.TEXT_HTML":                         "text/html",
	"MediaType.TEXT_HTML_VALUE":                   "text/html",
	"MediaType.TEXT_XML":                          "text/xml",
	"MediaType.TEXT_XML_VALUE":                    "text/xml",
	"MediaType.APPLICATION_FORM_URLENCODED":       "application/x-www-form-urlencoded",
	"MediaType.APPLICATION_FORM_URLENCODED_VALUE": "application/x-www-form-urlencoded",
	"MediaType.MULTIPART_FORM_DATA":               "multipart/form-data",
	"MediaType.MULTIPART_FORM_DATA_VALUE":         "multipart/form-data",
	"MediaType.APPLICATION_OCTET_STREAM":          "application/octet-stream",
	"MediaType.APPLICATION_OCTET_STREAM_VALUE":    "application/octet-stream",
	"MediaType.WILDCARD":                          "*/*",
	"MediaType.ALL_VALUE":                         "*/*",
}

// resolveConstant maps "org.springframework.http.MediaType.X" or "MediaType.X"
// to its literal value
func resolveConstant(expr string) (string, bool) {
	parts := strings.Split(expr, ".")
	if len(parts) < 2 {
		return "", false
	}
	v, ok := mediaTypeConstants[parts[len(parts)-2]+"."+parts[len(parts)-1]]
	return v, ok
}
