package validators

import "regexp"

var slugRe = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// IsSlugValid accepts lowercase letters, digits and single hyphens,
// which keeps public salon URLs predictable.
func IsSlugValid(slug string) bool {
	if len(slug) < 3 || len(slug) > 60 {
		return false
	}
	return slugRe.MatchString(slug)
}
