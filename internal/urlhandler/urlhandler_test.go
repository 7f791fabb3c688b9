package urlhandler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"already normalized", "https://epa.gov/npdes/al", "https://epa.gov/npdes/al", false},
		{"missing scheme", "epa.gov/npdes", "https://epa.gov/npdes", false},
		{"uppercase host", "https://EPA.GOV/npdes", "https://epa.gov/npdes", false},
		{"strips fragment", "https://epa.gov/npdes#section", "https://epa.gov/npdes", false},
		{"whitespace only", "   ", "", true},
		{"no host", "https:///path", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeURL(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateURLFormat(t *testing.T) {
	assert.NoError(t, ValidateURLFormat("https://www.ferc.gov/news-events/news"))
	assert.Error(t, ValidateURLFormat(""))
	assert.Error(t, ValidateURLFormat("ftp://example.com/file"))
	assert.Error(t, ValidateURLFormat("not a url"))
}

func TestHostname(t *testing.T) {
	host, err := Hostname("https://www.rrc.texas.gov/news/")
	assert.NoError(t, err)
	assert.Equal(t, "rrc.texas.gov", host)

	host, err = Hostname("https://epa.gov:8443/npdes")
	assert.NoError(t, err)
	assert.Equal(t, "epa.gov", host)
}
