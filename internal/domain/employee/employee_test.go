package employee

import "testing"

func TestNewProfile(t *testing.T) {
	tests := []struct {
		name           string
		id             string
		department     string
		group          Group
		classification int
		expectError    bool
	}{
		{
			name:           "valid profile",
			id:             "0042",
			department:     "R&D Department",
			group:          GroupEngineering,
			classification: 3,
		},
		{
			name:           "empty id",
			id:             "",
			department:     "Finance",
			group:          GroupOffice,
			classification: 1,
			expectError:    true,
		},
		{
			name:           "unknown group",
			id:             "0001",
			department:     "Finance",
			group:          Group("Z"),
			classification: 1,
			expectError:    true,
		},
		{
			name:           "classification out of range",
			id:             "0001",
			department:     "Finance",
			group:          GroupOffice,
			classification: 7,
			expectError:    true,
		},
		{
			name:           "empty department",
			id:             "0001",
			department:     "",
			group:          GroupOffice,
			classification: 2,
			expectError:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProfile(tt.id, tt.department, "Analyst", tt.group, "Campus A", tt.classification)

			if tt.expectError {
				if err == nil {
					t.Errorf("expected error but got none")
				}
				return
			}

			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			if p.ID != tt.id {
				t.Errorf("expected id %q, got %q", tt.id, p.ID)
			}
			if p.Classification.Level() != tt.classification {
				t.Errorf("expected classification %d, got %d", tt.classification, p.Classification.Level())
			}
		})
	}
}

func TestGroupValid(t *testing.T) {
	for _, g := range AllGroups() {
		if !g.Valid() {
			t.Errorf("group %s should be valid", g)
		}
	}
	if Group("X").Valid() {
		t.Error("group X should not be valid")
	}
}
