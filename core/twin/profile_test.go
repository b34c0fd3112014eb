package twin

import (
	"reflect"
	"testing"
)

func TestFormatHours(t *testing.T) {
	cases := []struct {
		hours []int
		want  string
	}{
		{nil, "no hours"},
		{[]int{9}, "9:00-10:00"},
		{[]int{9, 10, 11}, "9:00-12:00"},
		{[]int{17, 9, 10, 11, 18}, "9:00-12:00, 17:00-19:00"},
		{[]int{0, 23}, "0:00-1:00, 23:00-24:00"},
	}
	for _, c := range cases {
		if got := FormatHours(c.hours); got != c.want {
			t.Fatalf("FormatHours(%v)=%q, want %q", c.hours, got, c.want)
		}
	}
}

func TestScheduleHelpers(t *testing.T) {
	sched := Schedule{
		"Friday": {17, 18},
		"Monday": {9, 10, 17},
	}
	if got := sched.TotalHours(); got != 5 {
		t.Fatalf("total hours %d, want 5", got)
	}
	if got := sched.Days(); !reflect.DeepEqual(got, []string{"Monday", "Friday"}) {
		t.Fatalf("days %v, want canonical week order", got)
	}
	hours := sched.Hours()
	if len(hours) != 4 {
		t.Fatalf("distinct hours %v, want 4 entries", hours)
	}
	if _, ok := hours[17]; !ok {
		t.Fatalf("hour 17 missing from %v", hours)
	}
}
