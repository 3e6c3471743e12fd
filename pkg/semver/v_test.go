package semver

import "testing"

func TestV_String(test *testing.T) {
	cases := []struct {
		v        V
		expected string
	}{
		{V{}, "0.0.0"},
		{V{Minor: 2}, "0.2.0"}, // the shipped banner version
		{V{Major: 1, Minor: 2, Patch: 3}, "1.2.3"},
		{V{Minor: 3, PreRelease: "rc1"}, "0.3.0-rc1"},
		{V{Major: 2, BuildMetadata: []string{"linux", "amd64"}}, "2.0.0+linux.amd64"},
		{V{Major: 1, PreRelease: "beta", BuildMetadata: []string{"x64"}}, "1.0.0-beta+x64"},
	}
	for _, c := range cases {
		if actual := c.v.String(); actual != c.expected {
			test.Errorf("%#v: expected %q, got %q", c.v, c.expected, actual)
		}
	}
}
