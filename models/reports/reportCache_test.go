package reports

import (
	"fmt"
	"path"
	"testing"
)

// path.Match and redis glob agree for these keys: no separators, '*' spans
// anything.

func TestTenantCachePatternMatchesReportKeys(t *testing.T) {
	pattern := tenantCachePattern("mahall-1")
	keys := []string{
		fmt.Sprintf("report:daybook:%s:%d:%s:%s", "mahall-1", 0, "2026-03-01", "2026-03-31"),
		fmt.Sprintf("report:trialbalance:%s:%d:%s:%s", "mahall-1", 2, "", ""),
	}
	for _, key := range keys {
		ok, err := path.Match(pattern, key)
		if err != nil {
			t.Fatalf("bad pattern %q: %v", pattern, err)
		}
		if !ok {
			t.Errorf("pattern %q should match %q", pattern, key)
		}
	}
}

func TestTenantCachePatternScopedToTenant(t *testing.T) {
	pattern := tenantCachePattern("mahall-1")
	foreign := []string{
		fmt.Sprintf("report:daybook:%s:%d:%s:%s", "mahall-2", 0, "", ""),
		fmt.Sprintf("report:daybook:%s:%d:%s:%s", "mahall-10", 0, "", ""),
	}
	for _, key := range foreign {
		if ok, _ := path.Match(pattern, key); ok {
			t.Errorf("pattern %q must not match %q", pattern, key)
		}
	}
}
