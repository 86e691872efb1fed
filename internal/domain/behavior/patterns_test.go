package behavior

import (
	"testing"

	"github.com/threatforge/insider-synth/internal/domain/employee"
)

func TestForGroupCoversAllGroups(t *testing.T) {
	for _, g := range employee.AllGroups() {
		p, err := ForGroup(g)
		if err != nil {
			t.Fatalf("ForGroup(%s) returned error: %v", g, err)
		}
		if p.PrintLikelihood <= 0 || p.PrintLikelihood > 1 {
			t.Errorf("group %s print likelihood %g outside (0,1]", g, p.PrintLikelihood)
		}
		if p.BurnLikelihood <= 0 || p.BurnLikelihood > 1 {
			t.Errorf("group %s burn likelihood %g outside (0,1]", g, p.BurnLikelihood)
		}
		if p.TravelLikelihood <= 0 || p.TravelLikelihood > 1 {
			t.Errorf("group %s travel likelihood %g outside (0,1]", g, p.TravelLikelihood)
		}
		if p.WorkHours.EndMean <= p.WorkHours.StartMean {
			t.Errorf("group %s mean end hour %g not after mean start hour %g",
				g, p.WorkHours.EndMean, p.WorkHours.StartMean)
		}
	}
}

func TestForGroupUnknown(t *testing.T) {
	if _, err := ForGroup(employee.Group("Z")); err == nil {
		t.Error("expected error for unknown group")
	}
}

func TestSecurityGroupStaffsWeekends(t *testing.T) {
	p, err := ForGroup(employee.GroupSecurity)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.WeekendWork != 0.6 {
		t.Errorf("security weekend work = %g, want 0.6", p.WeekendWork)
	}

	office, err := ForGroup(employee.GroupOffice)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if office.WeekendWork != 0 {
		t.Errorf("office weekend work = %g, want 0", office.WeekendWork)
	}
}

func TestHighClassificationGroups(t *testing.T) {
	for _, tt := range []struct {
		group employee.Group
		high  bool
	}{
		{employee.GroupExecutive, true},
		{employee.GroupSecurity, true},
		{employee.GroupEngineering, false},
		{employee.GroupOffice, false},
		{employee.GroupMarketing, false},
		{employee.GroupIT, false},
	} {
		p, err := ForGroup(tt.group)
		if err != nil {
			t.Fatalf("ForGroup(%s) returned error: %v", tt.group, err)
		}
		if p.Burn.HighClassification != tt.high {
			t.Errorf("group %s high classification = %v, want %v", tt.group, p.Burn.HighClassification, tt.high)
		}
	}
}
