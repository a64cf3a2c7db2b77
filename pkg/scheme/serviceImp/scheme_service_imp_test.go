package serviceImp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kisan/entities"
	"kisan/pkg/scheme/repositoryImp"
	"kisan/pkg/scheme/service"
)

func names(s []entities.Scheme) []string {
	out := make([]string, len(s))
	for i, sc := range s {
		out[i] = sc.Name
	}
	return out
}

func TestFilter(t *testing.T) {
	c, err := repositoryImp.New()
	require.NoError(t, err)
	svc := New(c)

	cases := []struct {
		name string
		f    service.Filter
		want []string
	}{
		{"everything", service.Filter{}, []string{"PM-KISAN Samman Nidhi", "Karnataka Raitha Bandhu", "Krishi Yantra Dhare Scheme", "Soil Health Card Scheme", "Crop Insurance Scheme"}},
		{"karnataka only", service.Filter{State: "karnataka"}, []string{"Karnataka Raitha Bandhu", "Krishi Yantra Dhare Scheme"}},
		{"all states", service.Filter{State: "All"}, []string{"PM-KISAN Samman Nidhi", "Karnataka Raitha Bandhu", "Krishi Yantra Dhare Scheme", "Soil Health Card Scheme", "Crop Insurance Scheme"}},
		{"query hits description", service.Filter{Query: "MACHINERY"}, []string{"Krishi Yantra Dhare Scheme"}},
		{"query hits name", service.Filter{Query: "soil"}, []string{"Soil Health Card Scheme"}},
		{"category exact", service.Filter{Category: "insurance"}, []string{"Crop Insurance Scheme"}},
		{"category is not substring", service.Filter{Category: "subsidy"}, []string{}},
		{"combined", service.Filter{Query: "farmer", Category: "Financial Support", State: "india"}, []string{"PM-KISAN Samman Nidhi"}},
		{"no match", service.Filter{Query: "fishery"}, []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, names(svc.Filter(tc.f)))
		})
	}
}

func TestOptions(t *testing.T) {
	c, err := repositoryImp.New()
	require.NoError(t, err)
	o := New(c).Options()
	assert.Equal(t, "All", o.Categories[0])
	assert.Len(t, o.Categories, 6)
	assert.Equal(t, []string{"Karnataka", "All India"}, o.States)
}
