// Package version reports the restkit build, for the User-Agent header and
// the startup summary.
package version
