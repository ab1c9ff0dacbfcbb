package core

import "testing"

func TestParseConstraintBareIsCaret(t *testing.T) {
	c, err := ParseConstraint("0.9.0")
	if err != nil {
		t.Fatalf("ParseConstraint failed: %v", err)
	}

	cases := []struct {
		version string
		want    bool
	}{
		{"0.9.0", true},
		{"0.9.5", true},
		{"0.10.0", false},
		{"1.0.0", false},
		{"0.8.9", false},
	}
	for _, tc := range cases {
		v, err := ParseVersion(tc.version)
		if err != nil {
			t.Fatalf("ParseVersion(%s): %v", tc.version, err)
		}
		if got := c.Check(v); got != tc.want {
			t.Errorf("0.9.0 accepts %s = %v, want %v", tc.version, got, tc.want)
		}
	}
}

func TestParseConstraintRange(t *testing.T) {
	c, err := ParseConstraint(">=1.0, <2")
	if err != nil {
		t.Fatalf("ParseConstraint failed: %v", err)
	}
	for version, want := range map[string]bool{
		"1.0.0": true,
		"1.9.9": true,
		"2.0.0": false,
		"0.9.0": false,
	} {
		v, _ := ParseVersion(version)
		if got := c.Check(v); got != want {
			t.Errorf(">=1.0, <2 accepts %s = %v, want %v", version, got, want)
		}
	}
}

func TestParseConstraintEmpty(t *testing.T) {
	if _, err := ParseConstraint("  "); err == nil {
		t.Fatal("expected error for empty constraint")
	}
}

func TestMaxSatisfying(t *testing.T) {
	c, err := ParseConstraint("^1.2")
	if err != nil {
		t.Fatalf("ParseConstraint failed: %v", err)
	}

	got, ok := MaxSatisfying([]string{"1.1.0", "1.2.3", "1.4.1", "2.0.0", "garbage"}, c)
	if !ok {
		t.Fatal("expected a satisfying version")
	}
	if got != "1.4.1" {
		t.Errorf("MaxSatisfying = %s, want 1.4.1", got)
	}

	if _, ok := MaxSatisfying([]string{"0.1.0"}, c); ok {
		t.Error("expected no satisfying version")
	}
}

func TestCompareVersions(t *testing.T) {
	got, err := CompareVersions("0.1.1", "0.1.0")
	if err != nil {
		t.Fatalf("CompareVersions failed: %v", err)
	}
	if got != 1 {
		t.Errorf("CompareVersions(0.1.1, 0.1.0) = %d, want 1", got)
	}
}
