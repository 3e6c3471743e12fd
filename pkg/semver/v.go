// Package semver renders structured semantic versions; the CLI banner
// is its only consumer.
package semver

import (
	"strconv"
	"strings"
)

// V - a semantic version broken into its parts. The zero value renders
// as "0.0.0".
type V struct {
	Major, Minor, Patch uint
	PreRelease          string
	BuildMetadata       []string
}

// String - the canonical MAJOR.MINOR.PATCH[-PRERELEASE][+METADATA] form.
func (v V) String() string {
	buf := strings.Builder{}
	buf.WriteString(strconv.FormatUint(uint64(v.Major), 10))
	buf.WriteByte('.')
	buf.WriteString(strconv.FormatUint(uint64(v.Minor), 10))
	buf.WriteByte('.')
	buf.WriteString(strconv.FormatUint(uint64(v.Patch), 10))
	if v.PreRelease != "" {
		buf.WriteByte('-')
		buf.WriteString(v.PreRelease)
	}
	if len(v.BuildMetadata) > 0 {
		buf.WriteByte('+')
		buf.WriteString(strings.Join(v.BuildMetadata, "."))
	}
	return buf.String()
}
