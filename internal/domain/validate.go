package domain

import "fmt"

// Validate checks the structural contract of a violation entry.
func (v ViolationItem) Validate() error {
	if v.ID == "" {
		return fmt.Errorf("%w: violation without rule id", ErrMalformedResult)
	}
	if len(v.Nodes) == 0 {
		return fmt.Errorf("%w: violation %s has no affected nodes", ErrMalformedResult, v.ID)
	}
	for i, n := range v.Nodes {
		if len(n.Target) == 0 {
			return fmt.Errorf("%w: violation %s node %d has no target", ErrMalformedResult, v.ID, i)
		}
	}
	return nil
}

// Validate checks the identifying fields every result must carry.
// Individual violations are validated separately so one bad entry does not
// discard the whole page.
func (r ScanResult) Validate() error {
	if r.SiteName == "" {
		return fmt.Errorf("%w: missing siteName", ErrMalformedResult)
	}
	if r.URL == "" {
		return fmt.Errorf("%w: missing url for site %s page %q", ErrMalformedResult, r.SiteName, r.PageName)
	}
	return nil
}

// ValidViolations returns the violations that satisfy the contract and the
// errors for those that do not.
func (r ScanResult) ValidViolations() ([]ViolationItem, []error) {
	valid := make([]ViolationItem, 0, len(r.Violations))
	var errs []error
	for _, v := range r.Violations {
		if err := v.Validate(); err != nil {
			errs = append(errs, err)
			continue
		}
		valid = append(valid, v)
	}
	return valid, errs
}

// HasAnyTag reports whether the item carries any of the given tags.
func (v ViolationItem) HasAnyTag(tags []string) bool {
	for _, want := range tags {
		for _, have := range v.Tags {
			if have == want {
				return true
			}
		}
	}
	return false
}
