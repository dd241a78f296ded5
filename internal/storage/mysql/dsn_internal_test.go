package mysql

import (
	"strings"
	"testing"
)

func TestNormalizeDSN_ForcesParseTimeAndUTC(t *testing.T) {
	got, err := normalizeDSN("root:root@tcp(db:3306)/goodhouse?charset=utf8mb4&loc=Local")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "parseTime=true") {
		t.Fatalf("parseTime missing: %s", got)
	}
	if strings.Contains(got, "loc=Local") {
		t.Fatalf("local time zone kept: %s", got)
	}
	if !strings.HasPrefix(got, "root:root@tcp(db:3306)/goodhouse") {
		t.Fatalf("address changed: %s", got)
	}
}

func TestNormalizeDSN_Invalid(t *testing.T) {
	if _, err := normalizeDSN("not a dsn"); err == nil {
		t.Fatal("expected parse error")
	}
}
