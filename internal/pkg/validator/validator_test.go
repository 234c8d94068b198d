package validator

import (
	"testing"
	"time"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsNumeric(t *testing.T) {
	valid := []string{"123", "0", "9876543210"}
	invalid := []string{"abc", "123a", "", "-123", "4.2", " 42"}
	for _, s := range valid {
		if !IsNumeric(s) {
			t.Errorf("IsNumeric(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsNumeric(s) {
			t.Errorf("IsNumeric(%q) = true, want false", s)
		}
	}
}

func TestIsInSlice(t *testing.T) {
	slice := []string{"memory", "sqlite", "postgres"}
	if !IsInSlice("sqlite", slice) {
		t.Errorf("IsInSlice('sqlite') = false, want true")
	}
	if IsInSlice("mysql", slice) {
		t.Errorf("IsInSlice('mysql') = true, want false")
	}
}

func TestIsDayMonthYearDate(t *testing.T) {
	cases := []struct {
		input string
		want  time.Time
		ok    bool
	}{
		{"15-03-1990", time.Date(1990, 3, 15, 0, 0, 0, 0, time.UTC), true},
		{"01-12-2005", time.Date(2005, 12, 1, 0, 0, 0, 0, time.UTC), true},
		{"1990-03-15", time.Time{}, false},
		{"32-01-1990", time.Time{}, false},
		{"15/03/1990", time.Time{}, false},
		{"", time.Time{}, false},
	}
	for _, c := range cases {
		got, ok := IsDayMonthYearDate(c.input)
		if ok != c.ok {
			t.Errorf("IsDayMonthYearDate(%q) ok = %v, want %v", c.input, ok, c.ok)
			continue
		}
		if ok && !got.Equal(c.want) {
			t.Errorf("IsDayMonthYearDate(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsISODate(t *testing.T) {
	valid := []string{"2023-01-01", "2000-12-31", "2024-02-29"}
	invalid := []string{"2023-13-01", "2023-01-32", "2023/01/01", "01-01-2023", ""}
	for _, s := range valid {
		_, ok := IsISODate(s)
		if !ok {
			t.Errorf("IsISODate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		_, ok := IsISODate(s)
		if ok {
			t.Errorf("IsISODate(%q) = true, want false", s)
		}
	}
}
