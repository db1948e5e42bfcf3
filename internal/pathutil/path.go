package pathutil

import "regexp"

// PathParamRegex matches route template variables like {id}.
// It captures the variable name inside the braces.
var PathParamRegex = regexp.MustCompile(`\{([^}]+)\}`)

// TemplateParams returns the variable names of a route template in order of
// appearance, so "/items/{id}/tags/{tag}" yields ["id", "tag"].
func TemplateParams(route string) []string {
	matches := PathParamRegex.FindAllStringSubmatch(route, -1)
	if len(matches) == 0 {
		return nil
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m[1])
	}
	return names
}
