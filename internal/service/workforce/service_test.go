package workforce

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/threatforge/insider-synth/internal/domain/errors"
	"github.com/threatforge/insider-synth/internal/domain/organization"
	"github.com/threatforge/insider-synth/internal/infrastructure/random"
)

func TestService_Generate(t *testing.T) {
	ctx := context.Background()
	svc := NewService()

	wf, err := svc.Generate(ctx, random.New(42), 500, 0.05)
	require.NoError(t, err)
	require.Len(t, wf.Profiles, 500)

	assert.Equal(t, 25, len(wf.Malicious), "5%% of 500 employees")

	validDepartments := make(map[string]organization.Department, len(organization.Departments))
	for _, d := range organization.Departments {
		validDepartments[d.Name] = d
	}

	seen := make(map[string]bool, len(wf.Profiles))
	for i, p := range wf.Profiles {
		assert.Len(t, p.ID, 3, "IDs are zero padded to the population width")
		assert.False(t, seen[p.ID], "duplicate employee id %s", p.ID)
		seen[p.ID] = true

		dept, ok := validDepartments[p.Department]
		require.True(t, ok, "unknown department %q", p.Department)
		assert.Equal(t, dept.Group, p.Group)
		assert.Contains(t, dept.Positions, p.Position)

		minYears, maxYears := organization.SeniorityRange(p.Position)
		assert.GreaterOrEqual(t, p.SeniorityYears, minYears)
		assert.LessOrEqual(t, p.SeniorityYears, maxYears)

		level := p.Classification.Level()
		assert.Contains(t, organization.ClassificationFor(p.Department).Levels, level)

		assert.NotEmpty(t, p.Campus)
		assert.NotEmpty(t, p.OriginCountry)

		if i == 0 {
			assert.Equal(t, "001", p.ID)
		}
	}

	for id := range wf.Malicious {
		assert.True(t, seen[id], "malicious cohort references unknown id %s", id)
	}
}

func TestService_GenerateDeterministic(t *testing.T) {
	ctx := context.Background()
	svc := NewService()

	first, err := svc.Generate(ctx, random.New(7), 100, 0.1)
	require.NoError(t, err)
	second, err := svc.Generate(ctx, random.New(7), 100, 0.1)
	require.NoError(t, err)

	require.Equal(t, len(first.Profiles), len(second.Profiles))
	for i := range first.Profiles {
		assert.Equal(t, *first.Profiles[i], *second.Profiles[i])
	}
	assert.Equal(t, first.MaliciousIDs(), second.MaliciousIDs())
}

func TestService_GenerateDistribution(t *testing.T) {
	ctx := context.Background()
	svc := NewService()

	wf, err := svc.Generate(ctx, random.New(3), 5000, 0.05)
	require.NoError(t, err)

	counts := wf.DepartmentCounts()
	total := float64(len(wf.Profiles))

	// The largest departments should land near their configured share.
	assert.InDelta(t, 0.25, float64(counts["R&D Department"])/total, 0.03)
	assert.InDelta(t, 0.20, float64(counts["Engineering Department"])/total, 0.03)

	contractors := 0
	for _, p := range wf.Profiles {
		if p.IsContractor {
			contractors++
		}
	}
	assert.InDelta(t, 0.15, float64(contractors)/total, 0.02)
}

func TestService_GenerateValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewService()

	tests := []struct {
		name  string
		count int
		ratio float64
	}{
		{"zero employees", 0, 0.05},
		{"negative employees", -5, 0.05},
		{"ratio above one", 100, 1.5},
		{"negative ratio", 100, -0.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Generate(ctx, random.New(1), tt.count, tt.ratio)
			require.Error(t, err)
			assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))
		})
	}
}

func TestWorkforce_MaliciousIDsSorted(t *testing.T) {
	wf := &Workforce{Malicious: map[string]bool{"010": true, "002": true, "115": true}}

	ids := wf.MaliciousIDs()
	require.Len(t, ids, 3)
	assert.True(t, strings.Join(ids, ",") == "002,010,115")
}
