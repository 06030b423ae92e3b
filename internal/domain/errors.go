package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConfig marks configuration problems that abort a run before any audit.
	ErrConfig = errors.New("configuration error")

	// ErrNoSites is returned when the environment yields nothing to audit.
	ErrNoSites = fmt.Errorf("%w: no sites configured or target site not found", ErrConfig)

	// ErrPathWithoutSite is returned when a single page is requested without a site.
	ErrPathWithoutSite = fmt.Errorf("%w: a single page path requires a site (use --site)", ErrConfig)

	// ErrSiteNotFound is returned when a query names a site absent from the report.
	ErrSiteNotFound = errors.New("site not found")

	// ErrMalformedResult marks scan results that fail the boundary contract.
	ErrMalformedResult = errors.New("malformed scan result")
)

// SiteError records a failure that stopped one site but not the run.
type SiteError struct {
	Site string
	Err  error
}

func (e *SiteError) Error() string {
	return fmt.Sprintf("site %s: %v", e.Site, e.Err)
}

func (e *SiteError) Unwrap() error { return e.Err }

// SiteErrors is the aggregate failure raised after every site was attempted.
type SiteErrors struct {
	Errors []*SiteError
}

func (e *SiteErrors) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, se := range e.Errors {
		parts = append(parts, se.Error())
	}
	return fmt.Sprintf("%d site(s) failed: %s", len(e.Errors), strings.Join(parts, "; "))
}

// Unwrap exposes the individual site errors to errors.Is / errors.As.
func (e *SiteErrors) Unwrap() []error {
	out := make([]error, 0, len(e.Errors))
	for _, se := range e.Errors {
		out = append(out, se)
	}
	return out
}

// Add appends a site failure.
func (e *SiteErrors) Add(site string, err error) {
	e.Errors = append(e.Errors, &SiteError{Site: site, Err: err})
}

// ErrOrNil returns the aggregate when at least one site failed.
func (e *SiteErrors) ErrOrNil() error {
	if e == nil || len(e.Errors) == 0 {
		return nil
	}
	return e
}
