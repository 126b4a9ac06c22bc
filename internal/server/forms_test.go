package server

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"bloodlink/internal/directory"
	"bloodlink/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeBody_JSON(t *testing.T) {
	body := `{"bloodGroup": "O+", "location": "Dhaka", "contactInformation": "01712345678", "urgency": "Urgent"}`
	r := httptest.NewRequest("POST", "/requests", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")

	var form types.BloodRequestForm
	require.NoError(t, decodeBody(r, &form))

	assert.Equal(t, "O+", form.BloodGroup)
	assert.Equal(t, "Dhaka", form.Location)
	assert.Equal(t, "Urgent", form.Urgency)
}

func TestDecodeBody_FormEncoded(t *testing.T) {
	values := url.Values{}
	values.Set("blood_group", "AB-")
	values.Set("location", "Sylhet")
	values.Set("contact_information", "01812345678")
	values.Set("urgency", "Moderate")

	r := httptest.NewRequest("POST", "/requests", strings.NewReader(values.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var form types.BloodRequestForm
	require.NoError(t, decodeBody(r, &form))

	assert.Equal(t, "AB-", form.BloodGroup)
	assert.Equal(t, "Sylhet", form.Location)
	assert.Equal(t, "Moderate", form.Urgency)
}

func TestDecodeBody_MalformedJSON(t *testing.T) {
	r := httptest.NewRequest("POST", "/requests", strings.NewReader("{not json"))
	r.Header.Set("Content-Type", "application/json")

	var form types.BloodRequestForm
	assert.Error(t, decodeBody(r, &form))
}

func TestFilterFromQuery(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		expected directory.Filter
	}{
		{
			name:     "no params keeps defaults",
			target:   "/donors",
			expected: directory.DefaultFilter(),
		},
		{
			name:     "blood group and location",
			target:   "/donors?blood_group=O%2B&location=dhaka",
			expected: directory.Filter{BloodGroup: "O+", Location: "dhaka"},
		},
		{
			name:     "whitespace-only blood group keeps default",
			target:   "/donors?blood_group=%20%20&location=%20Dhaka%20",
			expected: directory.Filter{BloodGroup: directory.FilterAllBloodGroups, Location: "Dhaka"},
		},
		{
			name:     "explicit all passes through",
			target:   "/donors?blood_group=all",
			expected: directory.Filter{BloodGroup: "all"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.target, nil)
			assert.Equal(t, tt.expected, filterFromQuery(r))
		})
	}
}
